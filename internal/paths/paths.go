package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0755) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// This is a thin wrapper around os.UserHomeDir for consistency.
// Note: It returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome expands a leading "~/" in path to the user's home directory.
// Returns the path unchanged when it has no tilde prefix or when the home
// directory cannot be resolved.
func ExpandHome(path string) string {
	if path == "~" {
		return Home()
	}
	if strings.HasPrefix(path, "~/") {
		home := Home()
		if home == "" {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// CacheHome returns the XDG cache home directory.
// On Linux: ~/.cache
// On macOS: ~/Library/Caches
// On Windows: %LOCALAPPDATA%\cache
func CacheHome() string {
	return xdg.CacheHome
}

// AppData returns the Windows roaming application data directory,
// or an empty string when the APPDATA environment variable is unset.
func AppData() string {
	return os.Getenv("APPDATA")
}

// UvCacheDir returns the cache directory used for ephemeral uvx runs.
// Honors UV_CACHE_DIR when set, falling back to <CacheHome>/uv.
func UvCacheDir() string {
	if dir := os.Getenv("UV_CACHE_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(CacheHome(), "uv")
}

// ToolConfigDir returns the directory holding mcpup's own configuration.
// Returns: <ConfigHome>/mcpup/
func ToolConfigDir() string {
	return filepath.Join(ConfigHome(), "mcpup")
}
