package capability

import (
	"os"
	"runtime"
)

// Platform identifies the host a detection run was taken on.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// Environment is the host context behind a detection run: the platform
// plus the environment variables that steer where package managers look
// for and place things. Unset variables are reported with an empty
// value so the full set always appears.
type Environment struct {
	Platform Platform          `json:"platform"`
	Vars     map[string]string `json:"vars"`
}

// envVarsOfInterest are the variables that influence package manager
// and runtime resolution.
var envVarsOfInterest = []string{
	"PATH",
	"NODE_PATH",
	"NPM_CONFIG_PREFIX",
	"UV_CACHE_DIR",
	"UV_CONFIG_FILE",
}

// CurrentEnvironment captures the platform and the package-manager
// related environment variables as they are right now.
func CurrentEnvironment() Environment {
	vars := make(map[string]string, len(envVarsOfInterest))
	for _, name := range envVarsOfInterest {
		vars[name] = os.Getenv(name)
	}
	return Environment{
		Platform: Platform{OS: runtime.GOOS, Arch: runtime.GOARCH},
		Vars:     vars,
	}
}
