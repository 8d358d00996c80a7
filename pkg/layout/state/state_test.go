package state_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/layout/state"
)

func TestContextValues(t *testing.T) {
	t.Run("an override holds only under its context", func(t *testing.T) {
		base := context.Background()
		if _, ok := state.CurrentLayout(base); ok {
			t.Fatal("fresh context should carry no layout")
		}

		ctx := state.WithLayout(base, "tray")
		if got, ok := state.CurrentLayout(ctx); !ok || got != "tray" {
			t.Errorf("override not visible: %q, %v", got, ok)
		}

		// the base context is untouched
		if _, ok := state.CurrentLayout(base); ok {
			t.Error("override leaked to the base context")
		}
	})

	t.Run("nested overrides shadow and restore", func(t *testing.T) {
		outer := state.WithLayout(context.Background(), "tray")
		inner := state.WithLayout(outer, "bay")

		if got, _ := state.CurrentLayout(inner); got != "bay" {
			t.Errorf("inner override unmatch: %q", got)
		}
		if got, _ := state.CurrentLayout(outer); got != "tray" {
			t.Errorf("outer override unmatch: %q", got)
		}
	})

	t.Run("farm slug travels the same way", func(t *testing.T) {
		ctx := state.WithFarm(context.Background(), "test-farm")
		if got, ok := state.CurrentFarm(ctx); !ok || got != "test-farm" {
			t.Errorf("farm slug unmatch: %q, %v", got, ok)
		}
	})
}

func TestProvider(t *testing.T) {
	t.Run("the override wins over the fallback", func(t *testing.T) {
		p := state.NewProvider(time.Minute, func(context.Context) (string, error) {
			return "tray", nil
		})

		ctx := state.WithLayout(context.Background(), "bay")
		layout, ok, err := p.Layout(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok || layout != "bay" {
			t.Errorf("override should win: %q", layout)
		}
	})

	t.Run("the fallback is cached for the TTL", func(t *testing.T) {
		calls := 0
		p := state.NewProvider(time.Hour, func(context.Context) (string, error) {
			calls += 1
			return "tray", nil
		})

		ctx := context.Background()
		for range 3 {
			layout, ok, err := p.Layout(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if !ok || layout != "tray" {
				t.Errorf("fallback unmatch: %q", layout)
			}
		}
		if calls != 1 {
			t.Errorf("fetch should run once within the TTL, ran %d times", calls)
		}
	})

	t.Run("Invalidate forces a re-fetch", func(t *testing.T) {
		calls := 0
		p := state.NewProvider(time.Hour, func(context.Context) (string, error) {
			calls += 1
			if calls == 1 {
				return "", nil // unconfigured at first
			}
			return "tray", nil
		})

		ctx := context.Background()
		if _, ok, _ := p.Layout(ctx); ok {
			t.Error("unconfigured farm should yield no layout")
		}

		p.Invalidate()
		layout, ok, err := p.Layout(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !ok || layout != "tray" {
			t.Errorf("layout should be visible after Invalidate: %q", layout)
		}
	})

	t.Run("fetch failures surface", func(t *testing.T) {
		wantErr := errors.New("store is down")
		p := state.NewProvider(time.Hour, func(context.Context) (string, error) {
			return "", wantErr
		})

		if _, _, err := p.Layout(context.Background()); !errors.Is(err, wantErr) {
			t.Errorf("error unmatch: %v", err)
		}
	})
}
