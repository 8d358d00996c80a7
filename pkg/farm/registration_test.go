package farm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apifarms "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/farms"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/mocks"
	kfarm "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/farm"
)

func TestRegistrar_Register(t *testing.T) {

	t.Run("it posts the farm record and returns the assigned id", func(t *testing.T) {
		received := apifarms.Registration{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/farms" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
				t.Errorf("malformed registration body: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]int64{"id": 42})
		}))
		defer server.Close()

		testee := kfarm.NewRegistrar(time.Second)
		rootID, err := testee.Register(context.Background(), db.Farm{
			ID: 1, Name: "pfc", Slug: "pfc",
			Layout:          ref("tray"),
			ParentServerURL: ref(server.URL),
		})
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if rootID != 42 {
			t.Errorf("unmatch root id:%d, expected:42", rootID)
		}
		if received.Slug != "pfc" || received.Name != "pfc" {
			t.Errorf("unmatch registration body: %+v", received)
		}
	})

	t.Run("it reports an unreachable parent as connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close() // now nothing listens there

		testee := kfarm.NewRegistrar(time.Second)
		_, err := testee.Register(context.Background(), db.Farm{
			ID: 1, Name: "pfc", Slug: "pfc",
			ParentServerURL: ref(server.URL),
		})
		if !errors.Is(err, kfarm.ErrRootServerConnectionRefused) {
			t.Errorf("unexpected error: %v (expected ErrRootServerConnectionRefused)", err)
		}
	})

	t.Run("it reports a non-200 answer as rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail": "slug is already taken"}`, http.StatusBadRequest)
		}))
		defer server.Close()

		testee := kfarm.NewRegistrar(time.Second)
		_, err := testee.Register(context.Background(), db.Farm{
			ID: 1, Name: "pfc", Slug: "pfc",
			ParentServerURL: ref(server.URL),
		})
		if !errors.Is(err, kfarm.ErrRootServerMessageRejected) {
			t.Errorf("unexpected error: %v (expected ErrRootServerMessageRejected)", err)
		}
		rejected := new(kfarm.RejectedError)
		if !errors.As(err, &rejected) {
			t.Fatalf("error does not carry the verdict: %v", err)
		}
		if rejected.Status != http.StatusBadRequest {
			t.Errorf("unmatch status:%d, expected:%d", rejected.Status, http.StatusBadRequest)
		}
	})
}

func TestService_Apply_registration(t *testing.T) {

	t.Run("it registers a configured farm given a parent server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]int64{"id": 7})
		}))
		defer server.Close()

		store := farmStore(db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("tray")})
		testee := kfarm.NewService(
			store, mocks.NewAdminInterface(), testRegistry(t),
			kfarm.NewRegistrar(time.Second), nil,
		)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			ParentServerURL: ref(server.URL),
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if !updated.Registered() || *updated.RootID != 7 {
			t.Errorf("farm is not registered: %+v", updated)
		}
	})

	t.Run("it leaves the farm configured when the parent rejects it", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"detail": "slug is already taken"}`, http.StatusBadRequest)
		}))
		defer server.Close()

		store := farmStore(db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("tray")})
		testee := kfarm.NewService(
			store, mocks.NewAdminInterface(), testRegistry(t),
			kfarm.NewRegistrar(time.Second), nil,
		)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			ParentServerURL: ref(server.URL),
		})
		if !errors.Is(err, kfarm.ErrRootServerMessageRejected) {
			t.Fatalf("unexpected error: %v (expected ErrRootServerMessageRejected)", err)
		}
		if updated.Registered() {
			t.Errorf("farm got registered despite the rejection: %+v", updated)
		}
		if !updated.Configured() {
			t.Errorf("farm lost its configuration: %+v", updated)
		}
	})

	t.Run("it does not re-register an already registered farm", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]int64{"id": 7})
		}))
		defer server.Close()

		store := farmStore(db.Farm{
			ID: 1, RootID: ref(int64(7)),
			Name: "pfc", Slug: "pfc", Layout: ref("tray"),
			ParentServerURL: ref(server.URL),
		})
		testee := kfarm.NewService(
			store, mocks.NewAdminInterface(), testRegistry(t),
			kfarm.NewRegistrar(time.Second), nil,
		)

		if _, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Name: ref("renamed pfc"),
		}); err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if calls != 0 {
			t.Errorf("registration is sent %d times for a registered farm", calls)
		}
	})
}
