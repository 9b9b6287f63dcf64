package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHome(t *testing.T) {
	got := Home()
	want, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("os.UserHomeDir() failed: %v", err)
	}
	if got != want {
		t.Errorf("Home() = %q, want %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home := Home()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tilde slash prefix",
			in:   "~/.mcp/config.json",
			want: filepath.Join(home, ".mcp", "config.json"),
		},
		{
			name: "bare tilde",
			in:   "~",
			want: home,
		},
		{
			name: "absolute path unchanged",
			in:   "/etc/mcp/config.json",
			want: "/etc/mcp/config.json",
		},
		{
			name: "tilde in middle unchanged",
			in:   "/data/~backup",
			want: "/data/~backup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.in); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir, 0); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir did not create a directory")
	}

	// Idempotent
	if err := EnsureDir(dir, 0); err != nil {
		t.Errorf("second EnsureDir() error = %v", err)
	}
}

func TestUvCacheDirEnvOverride(t *testing.T) {
	t.Setenv("UV_CACHE_DIR", "/tmp/uv-cache-test")
	if got := UvCacheDir(); got != "/tmp/uv-cache-test" {
		t.Errorf("UvCacheDir() = %q, want env override", got)
	}
}

func TestToolConfigDir(t *testing.T) {
	got := ToolConfigDir()
	if !filepath.IsAbs(got) {
		t.Errorf("ToolConfigDir() = %q, want absolute path", got)
	}
	if !strings.HasSuffix(got, "mcpup") {
		t.Errorf("ToolConfigDir() = %q, want path ending in mcpup", got)
	}
}
