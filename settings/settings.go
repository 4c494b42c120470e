package settings

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Recognized setting keys.
const (
	KeyConnectTimeoutSeconds = "connect_timeout_seconds"
	KeyReadTimeoutSeconds    = "read_timeout_seconds"
	KeyMaxRetryAttempts      = "max_retry_attempts"
	KeyMaxPoolConnections    = "max_pool_connections"
	KeyBaseBackoffMS         = "base_backoff_ms"
	KeyRegion                = "region"

	KeyAllowRateLimitedScanWithoutConsumedCapacity = "allow_rate_limited_scan_without_consumed_capacity"
)

// defaultTable maps every recognized key to its built-in value. Never mutated
// after package initialization.
var defaultTable = map[string]any{
	KeyConnectTimeoutSeconds: 15,
	KeyReadTimeoutSeconds:    30,
	KeyMaxRetryAttempts:      3,
	KeyMaxPoolConnections:    10,
	KeyBaseBackoffMS:         25,
	KeyRegion:                "us-east-1",

	KeyAllowRateLimitedScanWithoutConsumedCapacity: false,
}

// Settings resolves setting values by consulting the override source first and
// the default table second. Instances are immutable after construction and
// safe for unbounded concurrent readers; reconfiguration happens by installing
// a new instance via Replace, never by mutating an existing one.
type Settings struct {
	overrides map[string]any
	logger    *zap.Logger
}

type options struct {
	path   string
	logger *zap.Logger
}

// Option configures construction of a Settings instance.
type Option func(*options)

// WithPath points construction at an explicit override file, bypassing the
// environment variable and the default path.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithLogger routes construction-time logging (path resolution, deprecation
// warnings) to the given logger instead of the zap global.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New constructs a Settings instance, loading the override file if one exists
// at the resolved path. A missing file is not an error; the instance then
// serves defaults only. A file that exists but does not parse yields an error
// wrapping ErrMalformedOverride.
func New(opts ...Option) (*Settings, error) {
	o := options{logger: zap.L()}
	for _, opt := range opts {
		opt(&o)
	}

	overrides, err := loadOverrides(resolvePath(o.path), o.logger)
	if err != nil {
		return nil, err
	}

	return &Settings{overrides: overrides, logger: o.logger}, nil
}

// Lookup resolves key against the override source, then the default table.
// The second return value reports whether the key was found in either.
func (s *Settings) Lookup(key string) (any, bool) {
	if s.overrides != nil {
		if v, ok := s.overrides[key]; ok {
			return v, true
		}
	}
	if v, ok := defaultTable[key]; ok {
		return v, true
	}
	return nil, false
}

// Get resolves key like Lookup but returns nil for an unknown key. Absence is
// not an error.
func (s *Settings) Get(key string) any {
	v, _ := s.Lookup(key)
	return v
}

// Int returns the value for key coerced to int, or 0 if the key is absent or
// not numeric. YAML decodes integers as int but other sources may not, so the
// wider numeric types are accepted too.
func (s *Settings) Int(key string) int {
	switch v := s.Get(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// String returns the value for key if it is a string, else "".
func (s *Settings) String(key string) string {
	v, _ := s.Get(key).(string)
	return v
}

// Bool returns the value for key if it is a bool, else false.
func (s *Settings) Bool(key string) bool {
	v, _ := s.Get(key).(bool)
	return v
}

// ConnectTimeout returns the network connect timeout as a duration.
func (s *Settings) ConnectTimeout() time.Duration {
	return time.Duration(s.Int(KeyConnectTimeoutSeconds)) * time.Second
}

// ReadTimeout returns the network read timeout as a duration.
func (s *Settings) ReadTimeout() time.Duration {
	return time.Duration(s.Int(KeyReadTimeoutSeconds)) * time.Second
}

// BaseBackoff returns the base retry backoff as a duration.
func (s *Settings) BaseBackoff() time.Duration {
	return time.Duration(s.Int(KeyBaseBackoffMS)) * time.Millisecond
}

// Keys returns the recognized setting keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaultTable))
	for k := range defaultTable {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
