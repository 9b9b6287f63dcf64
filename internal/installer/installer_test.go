package installer

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpup/internal/capability"
	"mcpup/internal/logging"
	"mcpup/internal/plan"
)

var testPackages = Packages{
	Runtime: "acme-runtime",
	Bridge:  "acme-bridge",
	Command: "acme-server",
}

func bridgeCandidate(name, path string, installArgs ...string) capability.Candidate {
	return capability.Candidate{Name: name, Family: capability.FamilyBridge, Path: path, InstallArgs: installArgs}
}

func TestInstallCommandUvx(t *testing.T) {
	argv, err := InstallCommand(bridgeCandidate("uvx", "/bin/uvx"), testPackages, plan.ModeEphemeral)
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/uvx", "--from", "acme-bridge", "acme-server", "--version"}, argv)
}

func TestInstallCommandUvProject(t *testing.T) {
	argv, err := InstallCommand(bridgeCandidate("uv", "/bin/uv"), testPackages, plan.ModeProject)
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/uv", "add", "acme-bridge"}, argv)
}

func TestInstallCommandUvGlobal(t *testing.T) {
	argv, err := InstallCommand(bridgeCandidate("uv", "/bin/uv"), testPackages, plan.ModeGlobal)
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/uv", "tool", "install", "acme-bridge"}, argv)
}

func TestInstallCommandPip(t *testing.T) {
	argv, err := InstallCommand(bridgeCandidate("pip", "/bin/pip", "install"), testPackages, plan.ModeGlobal)
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/pip", "install", "acme-bridge"}, argv)
}

func TestInstallCommandNpmGlobal(t *testing.T) {
	c := capability.Candidate{
		Name:        "npm",
		Family:      capability.FamilyRuntime,
		Path:        "/bin/npm",
		InstallArgs: []string{"install"},
		GlobalFlag:  "-g",
	}
	argv, err := InstallCommand(c, testPackages, plan.ModeGlobal)
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/npm", "install", "-g", "acme-runtime"}, argv)
}

func TestInstallCommandNpmProject(t *testing.T) {
	c := capability.Candidate{
		Name:        "npm",
		Family:      capability.FamilyRuntime,
		Path:        "/bin/npm",
		InstallArgs: []string{"install"},
		GlobalFlag:  "-g",
	}
	argv, err := InstallCommand(c, testPackages, plan.ModeProject)
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/npm", "install", "acme-runtime"}, argv)
}

func TestInstallCommandYarn(t *testing.T) {
	c := capability.Candidate{
		Name:        "yarn",
		Family:      capability.FamilyRuntime,
		Path:        "/bin/yarn",
		InstallArgs: []string{"global", "add"},
	}
	argv, err := InstallCommand(c, testPackages, plan.ModeGlobal)
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/yarn", "global", "add", "acme-runtime"}, argv)
}

func TestInstallCommandUnknownFamily(t *testing.T) {
	c := capability.Candidate{Name: "mystery", Path: "/bin/mystery"}
	_, err := InstallCommand(c, testPackages, plan.ModeAuto)
	require.Error(t, err)
}

func TestAttemptRunsCommand(t *testing.T) {
	var got []string
	inst := New(logging.ForTest(t), WithRunner(func(ctx context.Context, argv []string) ([]byte, error) {
		got = argv
		return []byte("installed"), nil
	}))

	attempt := inst.Attempt(testPackages, plan.ModeGlobal, []string{"--quiet"})
	err := attempt(context.Background(), bridgeCandidate("pip", "/bin/pip", "install"))
	require.NoError(t, err)
	assert.Equal(t, []string{"/bin/pip", "install", "acme-bridge", "--quiet"}, got)
}

func TestAttemptReportsFailureOutput(t *testing.T) {
	inst := New(logging.ForTest(t), WithRunner(func(ctx context.Context, argv []string) ([]byte, error) {
		return []byte("ERESOLVE unable to resolve dependency tree"), errors.New("exit status 1")
	}))

	attempt := inst.Attempt(testPackages, plan.ModeGlobal, nil)
	err := attempt(context.Background(), bridgeCandidate("pip", "/bin/pip", "install"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ERESOLVE")
	assert.Contains(t, err.Error(), "pip install failed")
}

func TestTailTruncatesLongOutput(t *testing.T) {
	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	s := tail(long, 100)
	assert.LessOrEqual(t, len(s), 103)
	assert.Contains(t, s, "...")
}
