package main

// Only the register entry point, unregistering it fails with a missing entry point.

func DllRegisterServer() int32 {
	return 0
}
