// Package filewatch derives contexts from filesystem events.
package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext derives a context that is canceled as soon as any
// of the named files changes: written, created, removed, renamed or
// chmodded. context.Cause names the file and the event.
//
// The returned stop function releases the watcher and cancels the
// context without a cause; call it even when no change ever fires.
// On error both return values are nil.
func UntilModifyContext(ctx context.Context, files ...string) (context.Context, func(), error) {
	wctx, cancel := context.WithCancelCause(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}
	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			watcher.Close()
			cancel(err)
			return nil, nil, err
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-wctx.Done():
				return
			case event, open := <-watcher.Events:
				if !open {
					return
				}
				cancel(fmt.Errorf("%s changed (%s)", event.Name, event.Op))
			case err, open := <-watcher.Errors:
				if !open {
					return
				}
				cancel(fmt.Errorf("watching failed: %w", err))
			}
		}
	}()

	return wctx, func() { cancel(nil) }, nil
}
