package launcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "mcpup/internal/errors"
	"mcpup/internal/logging"
)

func writeFixturePackage(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "dist"), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"fixture"}`), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "dist", "index.js"), []byte("// entry\n"), 0o644)
}

func fakeLookPath(found map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if p, ok := found[name]; ok {
			return p, nil
		}
		return "", errors.Newf("%s: not found", name)
	}
}

func TestNodeDetect(t *testing.T) {
	d := NewNodeDetector(logging.ForTest(t),
		WithNodeLookPath(fakeLookPath(map[string]string{
			"node": "/usr/bin/node",
			"npm":  "/usr/bin/npm",
		})),
		WithNodeRunner(func(ctx context.Context, path string, args ...string) (string, error) {
			if path == "/usr/bin/node" {
				return "v20.11.1\n", nil
			}
			return "/usr/lib/node_modules\n", nil
		}),
	)

	info, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/node", info.Path)
	assert.Equal(t, "20.11.1", info.Version)
	assert.Equal(t, "/usr/bin/npm", info.NPMPath)
	assert.Equal(t, "/usr/lib/node_modules", info.GlobalRoot)
}

func TestNodeDetectMissing(t *testing.T) {
	d := NewNodeDetector(logging.ForTest(t),
		WithNodeLookPath(fakeLookPath(nil)),
	)

	_, err := d.Detect(context.Background())
	require.ErrorIs(t, err, mcperrors.ErrNodeNotFound)
}

func TestNodeDetectTooOld(t *testing.T) {
	d := NewNodeDetector(logging.ForTest(t),
		WithNodeLookPath(fakeLookPath(map[string]string{"node": "/usr/bin/node"})),
		WithNodeRunner(func(ctx context.Context, path string, args ...string) (string, error) {
			return "v16.20.0\n", nil
		}),
	)

	_, err := d.Detect(context.Background())
	require.ErrorIs(t, err, mcperrors.ErrNodeNotFound)
	assert.Contains(t, err.Error(), "below minimum")
}

func TestNodeDetectCustomMinimum(t *testing.T) {
	d := NewNodeDetector(logging.ForTest(t),
		WithMinVersion("16.0.0"),
		WithNodeLookPath(fakeLookPath(map[string]string{"node": "/usr/bin/node"})),
		WithNodeRunner(func(ctx context.Context, path string, args ...string) (string, error) {
			return "v16.20.0\n", nil
		}),
	)

	info, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "16.20.0", info.Version)
}

func TestNodeDetectGarbageVersion(t *testing.T) {
	d := NewNodeDetector(logging.ForTest(t),
		WithNodeLookPath(fakeLookPath(map[string]string{"node": "/usr/bin/node"})),
		WithNodeRunner(func(ctx context.Context, path string, args ...string) (string, error) {
			return "not a version", nil
		}),
	)

	_, err := d.Detect(context.Background())
	require.ErrorIs(t, err, mcperrors.ErrNodeNotFound)
}

func TestNodeDetectWithoutNPM(t *testing.T) {
	d := NewNodeDetector(logging.ForTest(t),
		WithNodeLookPath(fakeLookPath(map[string]string{"node": "/usr/bin/node"})),
		WithNodeRunner(func(ctx context.Context, path string, args ...string) (string, error) {
			return "v20.0.0", nil
		}),
	)

	info, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, info.NPMPath)
	assert.Empty(t, info.GlobalRoot)
}

func TestFindPackageDirGlobalRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, writeFixturePackage(filepath.Join(root, "acme-runtime")))

	dir := findPackageDir("acme-runtime", &NodeInfo{GlobalRoot: root}, "linux", "/home/u", "")
	assert.Equal(t, filepath.Join(root, "acme-runtime"), dir)
}

func TestFindPackageDirFallbackRoots(t *testing.T) {
	home := t.TempDir()
	pkgDir := filepath.Join(home, ".npm-global", "lib", "node_modules", "acme-runtime")
	require.NoError(t, writeFixturePackage(pkgDir))

	dir := findPackageDir("acme-runtime", nil, "linux", home, "")
	assert.Equal(t, pkgDir, dir)
}

func TestFindPackageDirNotInstalled(t *testing.T) {
	dir := findPackageDir("acme-runtime", &NodeInfo{GlobalRoot: t.TempDir()}, "linux", t.TempDir(), "")
	assert.Empty(t, dir)
}
