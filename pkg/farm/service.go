// Package farm implements the farm aggregate: the lifecycle
// Unconfigured -> Configured -> Registered, slug derivation, and the
// locks that keep layout and slug immutable once set.
package farm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/farms"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/layout/state"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/strings"
)

var (
	// ErrLayoutChange : the layout is locked once set.
	ErrLayoutChange = errors.New("Changing the layout of a farm is not allowed")

	// ErrSlugChange : the slug is locked once the farm is registered
	// with a parent server.
	ErrSlugChange = errors.New("Changing the slug of a registered farm is not allowed")

	// ErrUnknownLayout : the requested layout has no registered schema.
	ErrUnknownLayout = errors.New("unknown layout")

	// ErrNameRequired : a farm cannot exist without a name.
	ErrNameRequired = errors.New("a farm needs a name")
)

// Service coordinates farm mutations.
type Service struct {
	farms    db.FarmInterface
	admin    db.AdminInterface
	registry *schema.Registry

	// registrar is nil when this process never registers upstream
	// (root servers do not).
	registrar *Registrar

	// provider is invalidated after a layout transition so the new
	// layout is visible without waiting for the cache TTL.
	provider *state.Provider

	locks sync.Map // farm id -> *sync.Mutex
}

func NewService(
	farmStore db.FarmInterface,
	admin db.AdminInterface,
	registry *schema.Registry,
	registrar *Registrar,
	provider *state.Provider,
) *Service {
	return &Service{
		farms:     farmStore,
		admin:     admin,
		registry:  registry,
		registrar: registrar,
		provider:  provider,
	}
}

func (s *Service) lockFor(id int64) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Apply merges update into farm and persists the result, enforcing the
// lifecycle rules:
//
//   - slug is derived from the name when absent, and locked once the
//     farm is Registered;
//   - layout, once non-null, never changes; the first transition
//     provisions the per-farm store all-or-nothing;
//   - when slug, layout and parent server are all present and the farm
//     is not yet Registered, registration is attempted. A registration
//     failure leaves the farm Configured and surfaces the error.
//
// Transitions of one farm are serialized by a per-farm lock.
func (s *Service) Apply(ctx context.Context, farm db.Farm, update farms.Update) (db.Farm, error) {
	mu := s.lockFor(farm.ID)
	mu.Lock()
	defer mu.Unlock()

	// re-read under the lock; the caller's copy may be stale
	farm, err := s.farms.Get(ctx, farm.ID)
	if err != nil {
		return db.Farm{}, err
	}

	if update.Name != nil {
		farm.Name = *update.Name
	}
	if farm.Name == "" {
		return farm, ErrNameRequired
	}

	oldSlug := farm.Slug
	if update.Slug != nil && *update.Slug != "" {
		slug := strings.Slugify(*update.Slug)
		if farm.Registered() && slug != farm.Slug {
			return farm, ErrSlugChange
		}
		farm.Slug = slug
	}
	if farm.Slug == "" {
		farm.Slug = strings.Slugify(farm.Name)
	}

	if update.ParentServerURL != nil {
		farm.ParentServerURL = update.ParentServerURL
	}

	newLayout := ""
	if update.Layout != nil && *update.Layout != "" {
		switch {
		case !farm.Configured():
			if _, err := s.registry.Get(*update.Layout); err != nil {
				return farm, fmt.Errorf("%w: %q", ErrUnknownLayout, *update.Layout)
			}
			newLayout = *update.Layout
		case *farm.Layout != *update.Layout:
			return farm, ErrLayoutChange
		}
		// setting the same layout again is a no-op
	}

	// a Configured farm's store is named after the slug; a rename has
	// to move the store along or every entity route would point at a
	// schema that no longer exists.
	renamed := false
	if farm.Configured() && oldSlug != "" && farm.Slug != oldSlug {
		if err := s.admin.RenameFarmStore(ctx, oldSlug, farm.Slug); err != nil {
			return farm, err
		}
		renamed = true
	}

	updated, err := s.farms.Update(ctx, farm)
	if err != nil {
		if renamed {
			// move the store back so the record and its store agree
			if rerr := s.admin.RenameFarmStore(ctx, farm.Slug, oldSlug); rerr != nil {
				err = errors.Join(err, rerr)
			}
		}
		return farm, err
	}
	farm = updated

	if newLayout != "" {
		// store init, initial data and the layout field are committed
		// in one transaction; on failure the farm stays Unconfigured.
		if err := s.admin.InitFarmStore(ctx, farm, newLayout); err != nil {
			return farm, err
		}
		farm.Layout = &newLayout
		if s.provider != nil {
			s.provider.Invalidate()
		}
	}

	if s.registrar != nil && farm.Configured() && !farm.Registered() &&
		farm.ParentServerURL != nil && *farm.ParentServerURL != "" {
		rootID, err := s.registrar.Register(ctx, farm)
		if err != nil {
			// the farm stays Configured; the caller reports the failure
			return farm, err
		}
		farm.RootID = &rootID
		farm, err = s.farms.Update(ctx, farm)
		if err != nil {
			return farm, err
		}
	}

	return farm, nil
}

// Adopt stores a leaf farm's registration on a root server. A leaf
// only registers once Configured, so the incoming record usually
// carries a layout; the root has to provision the per-farm store for
// it the same way a leaf does on its own configure. On a provisioning
// failure the farm row is removed again so the leaf can retry.
func (s *Service) Adopt(ctx context.Context, reg db.Farm) (db.Farm, error) {
	layout := reg.Layout
	if layout != nil && *layout != "" {
		if _, err := s.registry.Get(*layout); err != nil {
			return db.Farm{}, fmt.Errorf("%w: %q", ErrUnknownLayout, *layout)
		}
	} else {
		layout = nil
	}

	// InitFarmStore owns the null -> layout transition; insert without
	// one so the store and the field are committed together.
	reg.Layout = nil
	created, err := s.farms.Create(ctx, reg)
	if err != nil {
		return db.Farm{}, err
	}

	if layout != nil {
		if err := s.admin.InitFarmStore(ctx, created, *layout); err != nil {
			if derr := s.farms.Delete(ctx, created.ID); derr != nil {
				err = errors.Join(err, derr)
			}
			return db.Farm{}, err
		}
		created.Layout = layout
	}

	return created, nil
}
