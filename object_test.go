package regsvr

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/ZenLiuCN/fn"
	"github.com/stretchr/testify/require"
)

const sampleSource = "testdata/sample.go"

func sampleEntry() int32 {
	return 7
}

func TestAsEntryPoint(t *testing.T) {
	ep := asEntryPoint(reflect.ValueOf(sampleEntry).Pointer())
	require.Equal(t, int32(7), Invoke(ep))
}

func TestIsObject(t *testing.T) {
	for p, want := range map[string]bool{
		"server.o":          true,
		"server.A":          true,
		"x/server.linkable": true,
		"server.dll":        false,
		"libserver.so":      false,
		"server":            false,
	} {
		require.Equal(t, want, IsObject(p), p)
	}
}

func TestDispatch(t *testing.T) {
	var got string
	loader := func(tag string) Loader {
		return LoaderFunc(func(string) (Library, error) {
			got = tag
			return nil, errors.New(tag)
		})
	}
	d := Dispatch{Native: loader("native"), Object: loader("object")}
	_, _ = d.Open("server.dll")
	require.Equal(t, "native", got)
	_, _ = d.Open("server.o")
	require.Equal(t, "object", got)
	_, _ = Dispatch{Native: loader("native")}.Open("server.a")
	require.Equal(t, "native", got)
}

func TestCheckObjectHeader(t *testing.T) {
	dir := t.TempDir()
	foreign := "plan9"
	if runtime.GOOS == foreign {
		foreign = "linux"
	}
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		fn.Panic(os.WriteFile(p, []byte(content), 0o600))
		return p
	}
	err := checkObjectHeader(write("foreign.o", "!<arch>\n__.PKGDEF\ngo object "+foreign+" mips go1.21.0 X:none\n"))
	require.ErrorIs(t, err, ErrNotRelocatable)
	require.Equal(t, ArchitectureMismatch, MapLoadError(err))

	require.NoError(t, checkObjectHeader(write("host.o", "go object "+runtime.GOOS+" "+runtime.GOARCH+" go1.21.0\n")))
	require.NoError(t, checkObjectHeader(write("plain.o", "not an object")))

	err = checkObjectHeader(filepath.Join(dir, "absent.o"))
	require.Equal(t, LoadFailed, MapLoadError(err))
}

func TestObjectLoaderSample(t *testing.T) {
	obj := compileSample(t, sampleSource)
	r := New(DefaultLoader(), NoSubsystem)
	rep := r.Process(Request{Path: obj})
	require.Equal(t, Success, rep.Outcome)
	require.Equal(t, Done, rep.Reached)
	require.Zero(t, rep.Status)
	rep = r.Process(Request{Path: obj, Mode: Unregister})
	require.Equal(t, InvocationFailedUnregister, rep.Outcome)
	require.Equal(t, int32(1), rep.Status)
}

func TestObjectLoaderLookup(t *testing.T) {
	obj := compileSample(t, sampleSource)
	lib := fn.Panic1(new(ObjectLoader).Open(obj))
	ep, ok := lib.Lookup(EntryRegister)
	require.True(t, ok)
	require.Zero(t, Invoke(ep))
	_, ok = lib.Lookup("DllInstall")
	require.False(t, ok)
	require.NoError(t, lib.Close())
}

func TestObjectLoaderJunk(t *testing.T) {
	p := filepath.Join(t.TempDir(), "junk.o")
	fn.Panic(os.WriteFile(p, []byte("definitely not a go object"), 0o600))
	rep := New(DefaultLoader(), NoSubsystem).Process(Request{Path: p})
	require.Equal(t, LoadFailed, rep.Outcome)
}
