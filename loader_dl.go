//go:build darwin || linux

package regsvr

import "github.com/ebitengine/purego"

type sharedObject struct {
	handle uintptr
}

func openNative(path string) (Library, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, &LoadError{Path: path, Code: dlerrorCode(err.Error()), Err: err}
	}
	return &sharedObject{handle: h}, nil
}

func (l *sharedObject) Lookup(name string) (EntryPoint, bool) {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil || addr == 0 {
		return nil, false
	}
	return func() int32 {
		r, _, _ := purego.SyscallN(addr)
		return hresult(r)
	}, true
}

func (l *sharedObject) Close() error {
	return purego.Dlclose(l.handle)
}
