//go:build windows

package regsvr

import (
	"path/filepath"
	"testing"

	"github.com/ZenLiuCN/fn"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

func system32(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(fn.Panic1(windows.GetSystemDirectory()), name)
}

func TestNativeOle32(t *testing.T) {
	lib, err := NativeLoader().Open(system32(t, "ole32.dll"))
	require.NoError(t, err)
	ep, ok := lib.Lookup(EntryRegister)
	require.True(t, ok)
	require.NotNil(t, ep)
	_, ok = lib.Lookup("dllregisterserver")
	require.False(t, ok, "lookup is case sensitive")
	_, ok = lib.Lookup("DllFoo")
	require.False(t, ok)
	require.NoError(t, lib.Close())
}

func TestNativeMissingModule(t *testing.T) {
	_, err := NativeLoader().Open(system32(t, "surely-absent-module.dll"))
	require.Error(t, err)
	require.Equal(t, uint32(windows.ERROR_MOD_NOT_FOUND), LastError(err))
	require.Equal(t, LoadFailed, MapLoadError(err))
}

func TestNativeEntryPointNotFound(t *testing.T) {
	sub, err := NewSubsystem(SubsystemOLE)
	require.NoError(t, err)
	r := New(NativeLoader(), sub)
	rep := r.Process(Request{Path: system32(t, "kernel32.dll")})
	require.Equal(t, EntryPointNotFoundRegister, rep.Outcome)
	require.Equal(t, LibraryLoaded, rep.Reached)
}

func TestSubsystems(t *testing.T) {
	for _, kind := range []string{SubsystemOLE, SubsystemCOM} {
		t.Run(kind, func(t *testing.T) {
			sub, err := NewSubsystem(kind)
			require.NoError(t, err)
			for range 2 {
				tok, err := sub.Acquire()
				require.NoError(t, err)
				tok.Release()
			}
		})
	}
}
