package settings

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrNilSettings is returned by Replace when the supplied instance is nil.
var ErrNilSettings = errors.New("settings instance must not be nil")

var (
	slotMu sync.Mutex
	slot   atomic.Pointer[Settings]
)

// Default returns the process-wide Settings instance, constructing it on the
// first call. Construction runs at most once even under concurrent first-time
// callers; subsequent calls take the lock-free fast path. If the override file
// is malformed, the error is logged and a defaults-only instance is installed
// so later callers are not re-exposed to the failure.
func Default() *Settings {
	if s := slot.Load(); s != nil {
		return s
	}

	slotMu.Lock()
	defer slotMu.Unlock()

	if s := slot.Load(); s != nil {
		return s
	}

	s, err := New()
	if err != nil {
		zap.L().Error("loading override settings failed, using defaults", zap.Error(err))
		s = &Settings{logger: zap.L()}
	}
	slot.Store(s)
	return s
}

// Replace installs the supplied instance as the process-wide Settings. This is
// the only way to reconfigure the process: instances themselves are immutable.
// The existing instance is left in place when s is nil.
func Replace(s *Settings) error {
	if s == nil {
		return ErrNilSettings
	}

	slotMu.Lock()
	slot.Store(s)
	slotMu.Unlock()

	return nil
}
