package auth_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	httptestutil "github.com/OpenAgricultureFoundation/gro-api-sub000/internal/testutils/http"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/auth"
)

func TestIssuer(t *testing.T) {

	secret := []byte("test-secret")

	t.Run("it verifies a token it issued", func(t *testing.T) {
		testee := auth.NewIssuer(secret, time.Hour)
		token, err := testee.Issue("pfc")
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		subject, err := testee.Verify(token)
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if subject != "pfc" {
			t.Errorf("unmatch subject:%s, expected:pfc", subject)
		}
	})

	t.Run("it rejects a token signed with another secret", func(t *testing.T) {
		token, err := auth.NewIssuer([]byte("other-secret"), time.Hour).Issue("pfc")
		if err != nil {
			t.Fatal(err)
		}
		testee := auth.NewIssuer(secret, time.Hour)
		if _, err := testee.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("unexpected error: %v (expected ErrInvalidToken)", err)
		}
	})

	t.Run("it rejects a garbled token", func(t *testing.T) {
		testee := auth.NewIssuer(secret, time.Hour)
		if _, err := testee.Verify("not.a.token"); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("unexpected error: %v (expected ErrInvalidToken)", err)
		}
	})

	t.Run("it rejects an expired token", func(t *testing.T) {
		issuer := auth.NewIssuer(secret, time.Millisecond)
		token, err := issuer.Issue("pfc")
		if err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
		if _, err := issuer.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("unexpected error: %v (expected ErrInvalidToken)", err)
		}
	})
}

func TestMiddleware(t *testing.T) {

	secret := []byte("test-secret")
	okHandler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("it passes a request with a valid token", func(t *testing.T) {
		issuer := auth.NewIssuer(secret, time.Hour)
		token, err := issuer.Issue("pfc")
		if err != nil {
			t.Fatal(err)
		}

		e := echo.New()
		ctx, resp := httptestutil.Get(
			e, "/api/tray/",
			httptestutil.WithHeader("Authorization", "Bearer "+token),
		)
		if err := issuer.Middleware(okHandler)(ctx); err != nil {
			t.Fatalf("middleware rejected a valid token: %v", err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("unmatch status:%d, expected:%d", resp.Code, http.StatusOK)
		}
	})

	t.Run("it rejects a request without credentials", func(t *testing.T) {
		issuer := auth.NewIssuer(secret, time.Hour)

		e := echo.New()
		ctx, _ := httptestutil.Get(e, "/api/tray/")
		err := issuer.Middleware(okHandler)(ctx)

		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusUnauthorized {
			t.Errorf("unexpected error: %v (expected 401)", err)
		}
	})

	t.Run("it rejects a request with a bad token", func(t *testing.T) {
		issuer := auth.NewIssuer(secret, time.Hour)

		e := echo.New()
		ctx, _ := httptestutil.Get(
			e, "/api/tray/",
			httptestutil.WithHeader("Authorization", "Bearer nonsense"),
		)
		err := issuer.Middleware(okHandler)(ctx)

		httperr := new(echo.HTTPError)
		if !errors.As(err, &httperr) || httperr.Code != http.StatusUnauthorized {
			t.Errorf("unexpected error: %v (expected 401)", err)
		}
	})
}
