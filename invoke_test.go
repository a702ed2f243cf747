package regsvr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvoke(t *testing.T) {
	require.Zero(t, Invoke(func() int32 { return 0 }))
	require.Equal(t, int32(1), Invoke(func() int32 { return 1 }))
	require.Equal(t, EUnexpected, Invoke(func() int32 { panic("entry point") }))
	status := EUnexpected
	require.Equal(t, uint32(0x8000FFFF), uint32(status))
}

func TestHResult(t *testing.T) {
	require.Zero(t, hresult(0))
	require.Equal(t, int32(1), hresult(1))
	require.Equal(t, int32(-0x7fffbffb), hresult(uintptr(0x80004005)))
}

func TestDlerrorCode(t *testing.T) {
	tests := map[string]uint32{
		"/tmp/x.so: wrong ELF class: ELFCLASS32": ErrorBadExeFormat,
		"dlopen(x.dylib, 0x0002): tried: 'x.dylib' (mach-o file, but is an incompatible architecture (have 'x86_64', need 'arm64'))": ErrorBadExeFormat,
		"/tmp/x.so: invalid ELF header":                                   0,
		"x.so: cannot open shared object file: No such file or directory": 0,
	}
	for msg, want := range tests {
		require.Equal(t, want, dlerrorCode(msg), msg)
	}
}
