package regsvr

// Mode selects the entry point of a module.
type Mode int

const (
	Register Mode = iota
	Unregister
)

const (
	EntryRegister   = "DllRegisterServer"
	EntryUnregister = "DllUnregisterServer"
)

// ModeOf returns [Unregister] when unregister is set.
func ModeOf(unregister bool) Mode {
	if unregister {
		return Unregister
	}
	return Register
}

// EntryPoint name exported by the module for this mode.
func (m Mode) EntryPoint() string {
	if m == Unregister {
		return EntryUnregister
	}
	return EntryRegister
}

// NotFound is the outcome when the entry point is missing.
func (m Mode) NotFound() Outcome {
	if m == Unregister {
		return EntryPointNotFoundUnregister
	}
	return EntryPointNotFoundRegister
}

// Failed is the outcome when the entry point returns non-zero.
func (m Mode) Failed() Outcome {
	if m == Unregister {
		return InvocationFailedUnregister
	}
	return InvocationFailedRegister
}

func (m Mode) String() string {
	if m == Unregister {
		return "unregister"
	}
	return "register"
}

// Request to process one module.
type Request struct {
	Path   string
	Mode   Mode
	Silent bool
}
