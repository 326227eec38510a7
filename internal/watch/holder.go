// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package watch keeps the release signing resolution current while the
// credential file is edited, created or removed.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	xglog "github.com/Aditya1156/DayPilot/internal/log"
	"github.com/Aditya1156/DayPilot/internal/signing"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

// Holder holds the current resolution and re-resolves on file changes.
type Holder struct {
	mu       sync.RWMutex
	current  signing.Resolution
	resolver *signing.Resolver
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger
	done     chan struct{}

	// Debounce is read when the watcher starts.
	Debounce time.Duration

	listenMu  sync.RWMutex
	listeners []chan<- signing.Resolution
}

// NewHolder creates a holder seeded with an initial resolution.
func NewHolder(resolver *signing.Resolver, initial signing.Resolution) *Holder {
	return &Holder{
		current:  initial,
		resolver: resolver,
		logger:   xglog.WithComponent("watch"),
		Debounce: DefaultDebounce,
	}
}

// Get returns the current resolution (thread-safe read).
func (h *Holder) Get() signing.Resolution {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload re-resolves the release identity. On failure the previous
// resolution is kept and the error returned.
func (h *Holder) Reload(ctx context.Context) error {
	res, err := h.resolver.Resolve(ctx)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "watch.reload_failed").
			Msg("keeping previous signing identity")
		return fmt.Errorf("resolve: %w", err)
	}

	h.mu.Lock()
	old := h.current
	h.current = res
	h.mu.Unlock()

	if reflect.DeepEqual(old, res) {
		h.logger.Debug().Str(xglog.FieldEvent, "watch.unchanged").Msg("signing identity unchanged")
		return nil
	}

	h.logChanges(old, res)
	h.notifyListeners(res)
	return nil
}

// StartWatcher watches the directory holding the credential file so that
// creation and removal are observed too. The loop stops when ctx is done;
// Done is closed once it has exited.
func (h *Holder) StartWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	target := h.resolver.PropertiesFile()
	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	h.watcher = watcher
	h.done = make(chan struct{})

	h.logger.Info().
		Str(xglog.FieldEvent, "watch.started").
		Str(xglog.FieldPath, target).
		Msg("watching credential file for changes")

	go h.watchLoop(ctx, target)
	return nil
}

// Done is closed when the watch loop has exited. It is nil before StartWatcher.
func (h *Holder) Done() <-chan struct{} {
	return h.done
}

func (h *Holder) watchLoop(ctx context.Context, target string) {
	defer close(h.done)
	defer func() { _ = h.watcher.Close() }()

	debounce := h.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(xglog.FieldEvent, "watch.stopped").Msg("credential watcher stopped")
			return

		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			h.logger.Debug().
				Str(xglog.FieldEvent, "watch.file_changed").
				Str("op", event.Op.String()).
				Msg("credential file changed")

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			_ = h.Reload(ctx)

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "watch.error").
				Msg("credential watcher error")
		}
	}
}

// RegisterListener registers a channel to receive changed resolutions.
// The caller is responsible for closing the channel.
func (h *Holder) RegisterListener(ch chan<- signing.Resolution) {
	h.listenMu.Lock()
	defer h.listenMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

// notifyListeners sends the new resolution to all registered listeners (non-blocking).
func (h *Holder) notifyListeners(res signing.Resolution) {
	h.listenMu.RLock()
	defer h.listenMu.RUnlock()

	for _, ch := range h.listeners {
		select {
		case ch <- res:
		default:
			h.logger.Warn().
				Str(xglog.FieldEvent, "watch.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}

func (h *Holder) logChanges(old, res signing.Resolution) {
	h.logger.Info().
		Str(xglog.FieldEvent, "watch.identity_changed").
		Str("old_state", old.State.String()).
		Str("new_state", res.State.String()).
		Str("old_identity", old.Identity.Name).
		Str(xglog.FieldIdentity, res.Identity.Name).
		Str(xglog.FieldOrigin, res.Identity.Origin).
		Msg("release signing identity changed")
}
