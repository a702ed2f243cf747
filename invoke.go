package regsvr

// EUnexpected is the HRESULT E_UNEXPECTED, reported when an entry point panics.
const EUnexpected int32 = -0x7fff0001

// Invoke call the entry point once. Zero means success, any other value is an opaque failure.
func Invoke(ep EntryPoint) (status int32) {
	defer func() {
		if recover() != nil {
			status = EUnexpected
		}
	}()
	return ep()
}

// hresult keeps the low 32 bits of a native return register.
func hresult(r uintptr) int32 {
	return int32(uint32(r))
}
