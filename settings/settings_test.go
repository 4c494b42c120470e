package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newWithFile(t *testing.T, contents string) *Settings {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write override file: %v", err)
	}

	s, err := New(WithPath(path), WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return s
}

func newWithoutFile(t *testing.T) *Settings {
	t.Helper()

	s, err := New(
		WithPath(filepath.Join(t.TempDir(), "missing.yaml")),
		WithLogger(zap.NewNop()),
	)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return s
}

func TestDefaults(t *testing.T) {
	s := newWithoutFile(t)

	want := map[string]any{
		KeyConnectTimeoutSeconds: 15,
		KeyReadTimeoutSeconds:    30,
		KeyMaxRetryAttempts:      3,
		KeyMaxPoolConnections:    10,
		KeyBaseBackoffMS:         25,
		KeyRegion:                "us-east-1",

		KeyAllowRateLimitedScanWithoutConsumedCapacity: false,
	}

	for key, value := range want {
		if got := s.Get(key); got != value {
			t.Fatalf("Get(%q) = %v, want %v", key, got, value)
		}
	}
}

func TestOverridePrecedence(t *testing.T) {
	s := newWithFile(t, "region: eu-west-1\nmax_pool_connections: 20\n")

	if got := s.Get(KeyRegion); got != "eu-west-1" {
		t.Fatalf("expected overridden region, got %v", got)
	}
	if got := s.Get(KeyMaxPoolConnections); got != 20 {
		t.Fatalf("expected overridden pool size, got %v", got)
	}
	if got := s.Get(KeyMaxRetryAttempts); got != 3 {
		t.Fatalf("expected default retry attempts, got %v", got)
	}
}

func TestUnknownKeyAbsent(t *testing.T) {
	s := newWithoutFile(t)

	if got := s.Get("no_such_setting"); got != nil {
		t.Fatalf("expected nil for unknown key, got %v", got)
	}
	if _, ok := s.Lookup("no_such_setting"); ok {
		t.Fatalf("expected Lookup to report absence")
	}
	if _, ok := s.Lookup(KeyRegion); !ok {
		t.Fatalf("expected Lookup to find recognized key")
	}
}

func TestTypedAccessors(t *testing.T) {
	s := newWithFile(t, "connect_timeout_seconds: 5\nallow_rate_limited_scan_without_consumed_capacity: true\n")

	if got := s.Int(KeyConnectTimeoutSeconds); got != 5 {
		t.Fatalf("Int = %d, want 5", got)
	}
	if got := s.String(KeyRegion); got != "us-east-1" {
		t.Fatalf("String = %q, want us-east-1", got)
	}
	if !s.Bool(KeyAllowRateLimitedScanWithoutConsumedCapacity) {
		t.Fatalf("expected overridden feature flag to be true")
	}

	if got := s.ConnectTimeout(); got != 5*time.Second {
		t.Fatalf("ConnectTimeout = %s, want 5s", got)
	}
	if got := s.ReadTimeout(); got != 30*time.Second {
		t.Fatalf("ReadTimeout = %s, want 30s", got)
	}
	if got := s.BaseBackoff(); got != 25*time.Millisecond {
		t.Fatalf("BaseBackoff = %s, want 25ms", got)
	}

	if got := s.Int("no_such_setting"); got != 0 {
		t.Fatalf("Int of unknown key = %d, want 0", got)
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")

	if got := resolvePath(""); got != DefaultConfigPath {
		t.Fatalf("resolvePath = %q, want default path", got)
	}
	if got := resolvePath("/tmp/explicit.yaml"); got != "/tmp/explicit.yaml" {
		t.Fatalf("resolvePath ignored explicit path, got %q", got)
	}

	t.Setenv(EnvConfigPath, "/tmp/from-env.yaml")
	if got := resolvePath(""); got != "/tmp/from-env.yaml" {
		t.Fatalf("resolvePath ignored environment variable, got %q", got)
	}
	if got := resolvePath("/tmp/explicit.yaml"); got != "/tmp/explicit.yaml" {
		t.Fatalf("explicit path must win over environment variable, got %q", got)
	}
}

func TestEnvConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("region: ap-southeast-2\n"), 0o600); err != nil {
		t.Fatalf("write override file: %v", err)
	}
	t.Setenv(EnvConfigPath, path)

	s, err := New(WithLogger(zap.NewNop()))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got := s.Get(KeyRegion); got != "ap-southeast-2" {
		t.Fatalf("expected region from env-resolved file, got %v", got)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != len(defaultTable) {
		t.Fatalf("Keys returned %d entries, want %d", len(keys), len(defaultTable))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("Keys not sorted: %q before %q", keys[i-1], keys[i])
		}
	}
}
