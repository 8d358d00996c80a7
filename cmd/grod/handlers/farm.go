package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
	apifarms "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/farms"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	kfarm "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/farm"
)

// resolvedFarm returns the farm the dispatcher resolved for this
// request: the singleton on a leaf, the slug-addressed one on a root.
// When the route carries a pk, it must be that same farm's.
func resolvedFarm(c echo.Context, paramKey string) (db.Farm, error) {
	farm, ok := FarmFrom(c)
	if !ok {
		return db.Farm{}, apierr.NotFound()
	}
	if paramKey != "" {
		if id := c.Param(paramKey); id != strconv.FormatInt(farm.ID, 10) {
			return db.Farm{}, apierr.NotFound()
		}
	}
	return farm, nil
}

// ListFarmHandler serves the one-element farm collection of this
// process's view: just the resolved farm.
func ListFarmHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		farm, err := resolvedFarm(c, "")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, []apifarms.Detail{apifarms.ComposeDetail(farm)})
	}
}

func GetFarmHandler(paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		farm, err := resolvedFarm(c, paramKey)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, apifarms.ComposeDetail(farm))
	}
}

// PutFarmHandler applies a farm update through the lifecycle service.
func PutFarmHandler(service *kfarm.Service, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		farm, err := resolvedFarm(c, paramKey)
		if err != nil {
			return err
		}

		update := apifarms.Update{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&update); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}

		updated, err := service.Apply(c.Request().Context(), farm, update)
		if err != nil {
			switch {
			case errors.Is(err, kfarm.ErrLayoutChange),
				errors.Is(err, kfarm.ErrSlugChange):
				return apierr.Forbidden(err.Error())
			case errors.Is(err, kfarm.ErrNameRequired),
				errors.Is(err, kfarm.ErrUnknownLayout):
				return apierr.BadRequest(err.Error(), err)
			case errors.Is(err, db.ErrAlreadyExists):
				return apierr.BadRequest("slug is already taken", err)
			case errors.Is(err, kfarm.ErrRootServerConnectionRefused),
				errors.Is(err, kfarm.ErrRootServerMessageRejected):
				return apierr.BadGateway(err.Error(), err)
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apifarms.ComposeDetail(updated))
	}
}

// ListFarmsHandler lists every farm of a root server.
func ListFarmsHandler(farms db.FarmInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		all, err := farms.List(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		found := make([]apifarms.Detail, 0, len(all))
		for _, f := range all {
			found = append(found, apifarms.ComposeDetail(f))
		}
		return c.JSON(http.StatusOK, found)
	}
}

// RegisterFarmHandler accepts a leaf farm's registration on a root
// server. Adopting the farm provisions its per-farm store when the
// record arrives with a layout, which it does for any Configured leaf.
// The response body carries the identifier the leaf stores as its
// root id.
func RegisterFarmHandler(service *kfarm.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		reg := apifarms.Registration{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&reg); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if reg.Name == "" || reg.Slug == "" {
			return apierr.BadRequestFields(map[string][]string{
				"name": {"required"}, "slug": {"required"},
			}, nil)
		}

		created, err := service.Adopt(c.Request().Context(), db.Farm{
			Name:            reg.Name,
			Slug:            reg.Slug,
			Layout:          reg.Layout,
			ParentServerURL: reg.ParentServerURL,
			IP:              reg.IP,
		})
		if err != nil {
			switch {
			case errors.Is(err, db.ErrAlreadyExists):
				return apierr.BadRequest("slug is already taken", err)
			case errors.Is(err, kfarm.ErrUnknownLayout):
				return apierr.BadRequest(err.Error(), err)
			}
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, map[string]int64{"id": created.ID})
	}
}
