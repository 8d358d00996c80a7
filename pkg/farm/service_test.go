package farm_test

import (
	"context"
	"errors"
	"testing"

	apifarms "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/farms"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/mocks"
	kfarm "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/farm"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

func ref[T any](v T) *T { return &v }

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	registry := schema.NewRegistry()
	if err := registry.Register(&schema.Schema{
		Name:             "tray",
		ShortDescription: "trays in the enclosure",
		LongDescription:  "trays sit directly in the enclosure",
	}); err != nil {
		t.Fatal(err)
	}
	return registry
}

// farmStore is a FarmInterface mock backed by a single mutable row.
func farmStore(farm db.Farm) *mocks.FarmInterface {
	store := mocks.NewFarmInterface()
	current := farm
	store.Impl.Get = func(context.Context, int64) (db.Farm, error) {
		return current, nil
	}
	store.Impl.Update = func(_ context.Context, f db.Farm) (db.Farm, error) {
		current = f
		return current, nil
	}
	return store
}

func TestService_Apply(t *testing.T) {

	t.Run("it derives the slug from the name", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1})
		testee := kfarm.NewService(store, mocks.NewAdminInterface(), testRegistry(t), nil, nil)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Name: ref("My Farm #3"),
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if updated.Name != "My Farm #3" {
			t.Errorf("unmatch name:%s, expected:My Farm #3", updated.Name)
		}
		if updated.Slug != "my-farm-3" {
			t.Errorf("unmatch slug:%s, expected:my-farm-3", updated.Slug)
		}
	})

	t.Run("it keeps an explicit slug, slugified", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1})
		testee := kfarm.NewService(store, mocks.NewAdminInterface(), testRegistry(t), nil, nil)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Name: ref("My Farm"),
			Slug: ref("Greenhouse One"),
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if updated.Slug != "greenhouse-one" {
			t.Errorf("unmatch slug:%s, expected:greenhouse-one", updated.Slug)
		}
	})

	t.Run("it rejects a farm without a name", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1})
		testee := kfarm.NewService(store, mocks.NewAdminInterface(), testRegistry(t), nil, nil)

		_, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{})
		if !errors.Is(err, kfarm.ErrNameRequired) {
			t.Errorf("unexpected error: %v (expected ErrNameRequired)", err)
		}
	})

	t.Run("it provisions the farm store on the first layout", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1, Name: "pfc"})
		admin := mocks.NewAdminInterface()
		admin.Impl.InitFarmStore = func(_ context.Context, _ db.Farm, layout string) error {
			return nil
		}
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Layout: ref("tray"),
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if !updated.Configured() || *updated.Layout != "tray" {
			t.Errorf("farm is not configured with tray: %+v", updated)
		}
		if len(admin.Calls.InitFarmStore) != 1 {
			t.Fatalf("InitFarmStore is called %d times, expected once", len(admin.Calls.InitFarmStore))
		}
		if admin.Calls.InitFarmStore[0].Layout != "tray" {
			t.Errorf("unmatch layout passed to InitFarmStore: %s", admin.Calls.InitFarmStore[0].Layout)
		}
	})

	t.Run("it rejects a layout no schema is registered for", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1, Name: "pfc"})
		testee := kfarm.NewService(store, mocks.NewAdminInterface(), testRegistry(t), nil, nil)

		_, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Layout: ref("no-such-layout"),
		})
		if !errors.Is(err, kfarm.ErrUnknownLayout) {
			t.Errorf("unexpected error: %v (expected ErrUnknownLayout)", err)
		}
	})

	t.Run("it refuses to change a configured layout", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("tray")})
		testee := kfarm.NewService(store, mocks.NewAdminInterface(), testRegistry(t), nil, nil)

		_, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Layout: ref("aisle"),
		})
		if !errors.Is(err, kfarm.ErrLayoutChange) {
			t.Errorf("unexpected error: %v (expected ErrLayoutChange)", err)
		}
	})

	t.Run("it accepts re-setting the same layout as a no-op", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("tray")})
		admin := mocks.NewAdminInterface() // would panic if called
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Layout: ref("tray"),
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if *updated.Layout != "tray" {
			t.Errorf("unmatch layout:%s, expected:tray", *updated.Layout)
		}
		if len(admin.Calls.InitFarmStore) != 0 {
			t.Errorf("InitFarmStore is called for a no-op layout update")
		}
	})

	t.Run("it leaves the farm unconfigured when store provisioning fails", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1, Name: "pfc"})
		admin := mocks.NewAdminInterface()
		wantErr := errors.New("disk on fire")
		admin.Impl.InitFarmStore = func(context.Context, db.Farm, string) error {
			return wantErr
		}
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Layout: ref("tray"),
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Configured() {
			t.Errorf("farm got configured despite the provisioning failure: %+v", updated)
		}
	})

	t.Run("it refuses to change the slug of a registered farm", func(t *testing.T) {
		store := farmStore(db.Farm{
			ID: 1, RootID: ref(int64(7)),
			Name: "pfc", Slug: "pfc", Layout: ref("tray"),
		})
		testee := kfarm.NewService(store, mocks.NewAdminInterface(), testRegistry(t), nil, nil)

		_, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Slug: ref("other-slug"),
		})
		if !errors.Is(err, kfarm.ErrSlugChange) {
			t.Errorf("unexpected error: %v (expected ErrSlugChange)", err)
		}
	})

	t.Run("it accepts the unchanged slug on a registered farm", func(t *testing.T) {
		store := farmStore(db.Farm{
			ID: 1, RootID: ref(int64(7)),
			Name: "pfc", Slug: "pfc", Layout: ref("tray"),
		})
		testee := kfarm.NewService(store, mocks.NewAdminInterface(), testRegistry(t), nil, nil)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Slug: ref("pfc"),
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if updated.Slug != "pfc" {
			t.Errorf("unmatch slug:%s, expected:pfc", updated.Slug)
		}
	})

	t.Run("renaming a configured farm moves its store along", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("tray")})
		admin := mocks.NewAdminInterface()
		admin.Impl.RenameFarmStore = func(_ context.Context, oldSlug, newSlug string) error {
			return nil
		}
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Slug: ref("greenhouse"),
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if updated.Slug != "greenhouse" {
			t.Errorf("unmatch slug:%s, expected:greenhouse", updated.Slug)
		}
		if len(admin.Calls.RenameFarmStore) != 1 {
			t.Fatalf("RenameFarmStore is called %d times, expected once", len(admin.Calls.RenameFarmStore))
		}
		if moved := admin.Calls.RenameFarmStore[0]; moved.OldSlug != "pfc" || moved.NewSlug != "greenhouse" {
			t.Errorf("unmatch rename: %+v, expected pfc -> greenhouse", moved)
		}
	})

	t.Run("a failed store rename keeps the old slug", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("tray")})
		admin := mocks.NewAdminInterface()
		wantErr := errors.New("schema is gone")
		admin.Impl.RenameFarmStore = func(context.Context, string, string) error {
			return wantErr
		}
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		_, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Slug: ref("greenhouse"),
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.Calls.Update) != 0 {
			t.Errorf("the slug got persisted despite the rename failure")
		}
	})

	t.Run("renaming an unconfigured farm touches no store", func(t *testing.T) {
		store := farmStore(db.Farm{ID: 1, Name: "pfc", Slug: "pfc"})
		admin := mocks.NewAdminInterface() // would panic if called
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		updated, err := testee.Apply(context.Background(), db.Farm{ID: 1}, apifarms.Update{
			Slug: ref("greenhouse"),
		})
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		if updated.Slug != "greenhouse" {
			t.Errorf("unmatch slug:%s, expected:greenhouse", updated.Slug)
		}
		if len(admin.Calls.RenameFarmStore) != 0 {
			t.Errorf("RenameFarmStore is called for a farm without a store")
		}
	})
}

func TestService_Adopt(t *testing.T) {

	t.Run("it provisions the store of a configured registration", func(t *testing.T) {
		store := mocks.NewFarmInterface()
		store.Impl.Create = func(_ context.Context, farm db.Farm) (db.Farm, error) {
			if farm.Layout != nil {
				t.Errorf("the layout field belongs to the store init, not the insert: %v", *farm.Layout)
			}
			farm.ID = 42
			return farm, nil
		}
		admin := mocks.NewAdminInterface()
		admin.Impl.InitFarmStore = func(_ context.Context, farm db.Farm, layout string) error {
			if farm.ID != 42 {
				t.Errorf("unmatch farm id:%d, expected:42", farm.ID)
			}
			return nil
		}
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		adopted, err := testee.Adopt(context.Background(), db.Farm{
			Name: "PFC Three", Slug: "pfc-three", Layout: ref("tray"),
		})
		if err != nil {
			t.Fatalf("adopt failed: %v", err)
		}
		if adopted.ID != 42 || !adopted.Configured() {
			t.Errorf("unexpected adopted farm: %+v", adopted)
		}
		if len(admin.Calls.InitFarmStore) != 1 {
			t.Fatalf("InitFarmStore is called %d times, expected once", len(admin.Calls.InitFarmStore))
		}
		if admin.Calls.InitFarmStore[0].Layout != "tray" {
			t.Errorf("unmatch layout passed to InitFarmStore: %s", admin.Calls.InitFarmStore[0].Layout)
		}
	})

	t.Run("it stores an unconfigured registration as-is", func(t *testing.T) {
		store := mocks.NewFarmInterface()
		store.Impl.Create = func(_ context.Context, farm db.Farm) (db.Farm, error) {
			farm.ID = 42
			return farm, nil
		}
		admin := mocks.NewAdminInterface() // would panic if called
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		adopted, err := testee.Adopt(context.Background(), db.Farm{
			Name: "PFC Three", Slug: "pfc-three",
		})
		if err != nil {
			t.Fatalf("adopt failed: %v", err)
		}
		if adopted.Configured() {
			t.Errorf("adopted farm should stay unconfigured: %+v", adopted)
		}
		if len(admin.Calls.InitFarmStore) != 0 {
			t.Errorf("InitFarmStore is called without a layout")
		}
	})

	t.Run("it rejects a layout no schema is registered for", func(t *testing.T) {
		store := mocks.NewFarmInterface() // would panic if called
		testee := kfarm.NewService(store, mocks.NewAdminInterface(), testRegistry(t), nil, nil)

		_, err := testee.Adopt(context.Background(), db.Farm{
			Name: "PFC Three", Slug: "pfc-three", Layout: ref("no-such-layout"),
		})
		if !errors.Is(err, kfarm.ErrUnknownLayout) {
			t.Errorf("unexpected error: %v (expected ErrUnknownLayout)", err)
		}
		if len(store.Calls.Create) != 0 {
			t.Errorf("the farm row got created despite the unknown layout")
		}
	})

	t.Run("it removes the farm row when provisioning fails", func(t *testing.T) {
		store := mocks.NewFarmInterface()
		store.Impl.Create = func(_ context.Context, farm db.Farm) (db.Farm, error) {
			farm.ID = 42
			return farm, nil
		}
		store.Impl.Delete = func(_ context.Context, id int64) error {
			if id != 42 {
				t.Errorf("unmatch deleted id:%d, expected:42", id)
			}
			return nil
		}
		admin := mocks.NewAdminInterface()
		wantErr := errors.New("disk on fire")
		admin.Impl.InitFarmStore = func(context.Context, db.Farm, string) error {
			return wantErr
		}
		testee := kfarm.NewService(store, admin, testRegistry(t), nil, nil)

		_, err := testee.Adopt(context.Background(), db.Farm{
			Name: "PFC Three", Slug: "pfc-three", Layout: ref("tray"),
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.Calls.Delete) != 1 {
			t.Errorf("the farm row is not removed after the provisioning failure")
		}
	})
}
