/*
Package regsvr registers and unregisters COM server modules, the way regsvr32 does.

# Lifecycle

A module is processed by a [Registrar] as one ordered sequence:

 1. Acquire the process-wide subsystem (OLE on windows, nothing elsewhere).
 2. Load the module with a [Loader].
 3. Resolve DllRegisterServer or DllUnregisterServer with [Library.Lookup].
 4. Invoke the entry point, zero is success.
 5. Release the module, then release the subsystem.

Every exit path releases what was acquired, exactly once, and yields one [Outcome].
The outcome is also the exit status of the regsvr command.

# Backends

  - windows DLL, loaded with LoadLibraryEx and LOAD_WITH_ALTERED_SEARCH_PATH.
  - linux and darwin shared objects, loaded through [purego].
  - Go relocatable objects (.o, .a, .linkable), linked at runtime by [goloader].
    The entry points are plain exported functions `func DllRegisterServer() int32`.

# Build requirements

goloader imports the compiler internals of the Go SDK under cmd/objfile, so the SDK needs preparing before
anything importing this package compiles:

 1. Prepare the SDK: `go run ./cmd/regsvr-obj prepare`, it copies $GOROOT/src/cmd/internal to $GOROOT/src/cmd/objfile.
    Prepare does nothing when the copy exists, run it again after each SDK upgrade once cleaned.
 2. Build and test with `-ldflags=-checklinkname=0` on go1.23 and later, goloader pulls runtime symbols with go:linkname:
    `go build -ldflags=-checklinkname=0 ./cmd/regsvr` or `go test -ldflags=-checklinkname=0 ./...`.
 3. Restore the SDK when done: `regsvr-obj clean`.

The same applies to modules built by `regsvr-obj build`, they must come from the same SDK as the regsvr binary.

# Notes

 1. Invocation is a single blocking call, a hanging entry point hangs the process.
 2. A crash inside native module code can not be recovered, a panic inside a Go object module is.

[goloader]: https://github.com/pkujhd/goloader
[purego]: https://github.com/ebitengine/purego
*/
package regsvr
