package regsvr

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"github.com/ZenLiuCN/fn"
	"github.com/pkujhd/goloader"
)

// runtimeSymbols is the symbol table of the host executable, resolved once.
var runtimeSymbols = sync.OnceValues(func() (map[string]uintptr, error) {
	s := make(map[string]uintptr)
	if err := goloader.RegSymbol(s); err != nil {
		return nil, err
	}
	return s, nil
})

// ObjectLoader links Go relocatable objects into the running process.
//
// The entry points are looked up as Package + "." + name, so a module compiled from
//
//	package main
//
//	func DllRegisterServer() int32 { return 0 }
//
// exports main.DllRegisterServer.
type ObjectLoader struct {
	Package string // package path the object was compiled with, default main
	Types   []any  // types to register before linking, see goloader.RegTypes
}

type objectLibrary struct {
	pkg    string
	linker *goloader.Linker
	module *goloader.CodeModule
}

func (o *ObjectLoader) pkg() string {
	if o.Package == "" {
		return "main"
	}
	return o.Package
}

func (o *ObjectLoader) Open(path string) (Library, error) {
	global, err := runtimeSymbols()
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("resolve host symbols: %w", err)}
	}
	sym := maps.Clone(global)
	if len(o.Types) > 0 {
		goloader.RegTypes(sym, o.Types...)
	}
	l := &objectLibrary{pkg: o.pkg()}
	if strings.EqualFold(filepath.Ext(path), ".linkable") {
		var f *os.File
		if f, err = os.Open(path); err != nil {
			return nil, &LoadError{Path: path, Code: LastError(err), Err: err}
		}
		defer fn.IgnoreClose(f)
		l.linker, err = goloader.UnSerialize(f)
	} else {
		if err = checkObjectHeader(path); err != nil {
			return nil, err
		}
		l.linker, err = goloader.ReadObj(path, l.pkg)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if l.module, err = goloader.Load(l.linker, sym); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return l, nil
}

func (l *objectLibrary) Lookup(name string) (EntryPoint, bool) {
	p, ok := l.module.Syms[l.pkg+"."+name]
	if !ok || p == 0 {
		return nil, false
	}
	return asEntryPoint(p), true
}

func (l *objectLibrary) Close() error {
	_ = os.Stdout.Sync()
	l.module.Unload()
	l.module = nil
	l.linker = nil
	return nil
}

// asEntryPoint wraps a code address into a func value, the container must escape to the heap.
func asEntryPoint(addr uintptr) EntryPoint {
	container := &addr
	return *(*func() int32)(unsafe.Pointer(&container))
}

const objectMagic = "go object "

// checkObjectHeader rejects objects compiled for another GOOS or GOARCH.
func checkObjectHeader(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &LoadError{Path: path, Code: LastError(err), Err: err}
	}
	defer fn.IgnoreClose(f)
	head := make([]byte, 4096)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return &LoadError{Path: path, Err: err}
	}
	head = head[:n]
	i := bytes.Index(head, []byte(objectMagic))
	if i < 0 {
		return nil
	}
	line := head[i+len(objectMagic):]
	if j := bytes.IndexByte(line, '\n'); j >= 0 {
		line = line[:j]
	}
	fields := strings.Fields(string(line))
	if len(fields) < 2 {
		return nil
	}
	if fields[0] != runtime.GOOS || fields[1] != runtime.GOARCH {
		return &LoadError{
			Path: path,
			Code: ErrorBadExeFormat,
			Err:  fmt.Errorf("%w: %s/%s, host %s/%s", ErrNotRelocatable, fields[0], fields[1], runtime.GOOS, runtime.GOARCH),
		}
	}
	return nil
}
