package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, k := range []string{"API_BASE_URL", "VITE_API_URL", "VITE_API_BASE_URL", "API_TIMEOUT", "API_LOGGING", "WARM_HOTEL_IDS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.APIBase != "http://localhost:8080" {
		t.Fatalf("base %q", c.APIBase)
	}
	if c.APITimeout != 30*time.Second || c.APILogging {
		t.Fatalf("timeout/logging: %v %v", c.APITimeout, c.APILogging)
	}
	if c.WarmHotelIDs != nil {
		t.Fatalf("ids %v", c.WarmHotelIDs)
	}
}

func TestLoad_BaseURLFallbackChain(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("API_BASE_URL", "")
	t.Setenv("VITE_API_URL", "")
	t.Setenv("VITE_API_BASE_URL", "http://backend:9000")
	if got := Load().APIBase; got != "http://backend:9000" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("VITE_API_URL", "http://vite:1")
	if got := Load().APIBase; got != "http://vite:1" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("API_BASE_URL", "http://api:2")
	if got := Load().APIBase; got != "http://api:2" {
		t.Fatalf("got %q", got)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "test.env")
	body := "API_TIMEOUT=1500\nAPI_LOGGING=true\nWARM_HOTEL_IDS=3, 7,x,-1,12\n"
	if err := os.WriteFile(f, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_FILE", f)
	// godotenv never overrides variables that are already set, so clear them
	for _, k := range []string{"API_TIMEOUT", "API_LOGGING", "WARM_HOTEL_IDS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		os.Unsetenv("API_TIMEOUT")
		os.Unsetenv("API_LOGGING")
		os.Unsetenv("WARM_HOTEL_IDS")
	})

	c := Load()
	if c.APITimeout != 1500*time.Millisecond || !c.APILogging {
		t.Fatalf("timeout/logging: %v %v", c.APITimeout, c.APILogging)
	}
	if diff := cmp.Diff([]int64{3, 7, 12}, c.WarmHotelIDs); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
}
