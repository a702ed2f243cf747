package regsvr

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZenLiuCN/fn"
	"github.com/stretchr/testify/require"
)

func fakeRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, sdkInternal, "gcprog")
	fn.Panic(os.MkdirAll(dir, 0o755))
	fn.Panic(os.WriteFile(filepath.Join(dir, "gcprog.go"), []byte("package gcprog\n"), 0o644))
	fn.Panic(os.WriteFile(filepath.Join(root, sdkInternal, "README"), []byte("internal"), 0o600))
	return root
}

func TestPrepareAndCleanSDK(t *testing.T) {
	root := fakeRoot(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	copied := fn.Panic1(PrepareSDK(root, log))
	require.True(t, copied)
	b := fn.Panic1(os.ReadFile(filepath.Join(root, sdkObjfile, "gcprog", "gcprog.go")))
	require.Equal(t, "package gcprog\n", string(b))
	info := fn.Panic1(os.Stat(filepath.Join(root, sdkObjfile, "README")))
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	copied = fn.Panic1(PrepareSDK(root, log))
	require.False(t, copied, "second prepare is a no-op")

	removed := fn.Panic1(CleanSDK(root, log))
	require.True(t, removed)
	_, err := os.Stat(filepath.Join(root, sdkObjfile))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, sdkInternal, "README"))
	require.NoError(t, err, "source untouched")

	removed = fn.Panic1(CleanSDK(root, log))
	require.False(t, removed)
}

func TestPrepareSDKMissingSource(t *testing.T) {
	_, err := PrepareSDK(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
