package main

// Compile with no imports, the object links against the test binary:
//
//go:generate go tool compile -p main -o sample.o sample.go

func DllRegisterServer() int32 {
	return 0
}

func DllUnregisterServer() int32 {
	return 1
}
