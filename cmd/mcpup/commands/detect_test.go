package commands

import (
	"encoding/json"
	"runtime"
	"testing"

	"mcpup/internal/capability"
)

func TestDetectReportCarriesEnvironment(t *testing.T) {
	t.Setenv("NODE_PATH", "/opt/node/lib")

	data, err := json.Marshal(detectReport{Environment: capability.CurrentEnvironment()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got struct {
		Environment struct {
			Platform struct {
				OS   string `json:"os"`
				Arch string `json:"arch"`
			} `json:"platform"`
			Vars map[string]string `json:"vars"`
		} `json:"environment"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Environment.Platform.OS != runtime.GOOS {
		t.Errorf("platform os = %q, want %q", got.Environment.Platform.OS, runtime.GOOS)
	}
	if got.Environment.Vars["NODE_PATH"] != "/opt/node/lib" {
		t.Errorf("NODE_PATH = %q, want /opt/node/lib", got.Environment.Vars["NODE_PATH"])
	}
	for _, name := range []string{"PATH", "NPM_CONFIG_PREFIX", "UV_CACHE_DIR", "UV_CONFIG_FILE"} {
		if _, ok := got.Environment.Vars[name]; !ok {
			t.Errorf("vars missing %s", name)
		}
	}
}
