package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/auth"
)

// TokenHandler exchanges the farm secret for a bearer token. The
// secret is the one credential of a food computer; there are no user
// accounts on a leaf.
func TokenHandler(issuer *auth.Issuer, secret []byte) echo.HandlerFunc {
	type request struct {
		Secret string `json:"secret"`
	}
	type response struct {
		Token string `json:"token"`
	}
	return func(c echo.Context) error {
		body := request{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&body); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if body.Secret != string(secret) {
			return apierr.Unauthorized("Invalid credentials.")
		}

		subject := "farm"
		if farm, ok := FarmFrom(c); ok && farm.Slug != "" {
			subject = farm.Slug
		}
		token, err := issuer.Issue(subject)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, response{Token: token})
	}
}
