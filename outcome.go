package regsvr

import "strconv"

// Outcome is the terminal result of processing one module.
// The integer identity is stable, it is the exit status of the process.
type Outcome int

const (
	Success Outcome = iota
	LoadFailed
	EntryPointNotFoundRegister
	EntryPointNotFoundUnregister
	InvocationFailedRegister
	InvocationFailedUnregister
	InvalidArguments
	SubsystemError
	ArchitectureMismatch
)

// ErrorBadExeFormat is the windows ERROR_BAD_EXE_FORMAT, reported when the module
// does not match the architecture of the process.
const ErrorBadExeFormat uint32 = 193

var outcomeNames = [...]string{
	Success:                      "Success",
	LoadFailed:                   "LoadFailed",
	EntryPointNotFoundRegister:   "EntryPointNotFoundRegister",
	EntryPointNotFoundUnregister: "EntryPointNotFoundUnregister",
	InvocationFailedRegister:     "InvocationFailedRegister",
	InvocationFailedUnregister:   "InvocationFailedUnregister",
	InvalidArguments:             "InvalidArguments",
	SubsystemError:               "SubsystemError",
	ArchitectureMismatch:         "ArchitectureMismatch",
}

// Outcomes list every outcome in order of identity.
func Outcomes() []Outcome {
	v := make([]Outcome, len(outcomeNames))
	for i := range v {
		v[i] = Outcome(i)
	}
	return v
}

func (o Outcome) Valid() bool {
	return o >= Success && int(o) < len(outcomeNames)
}

func (o Outcome) String() string {
	if o.Valid() {
		return outcomeNames[o]
	}
	return "Outcome(" + strconv.Itoa(int(o)) + ")"
}

// ExitCode of the process for this outcome, 0 only for [Success].
func (o Outcome) ExitCode() int {
	return int(o)
}

// MapLastError translate the last-error of a failed load.
func MapLastError(code uint32) Outcome {
	if code == ErrorBadExeFormat {
		return ArchitectureMismatch
	}
	return LoadFailed
}

// MapLoadError translate any error returned by [Loader.Open].
func MapLoadError(err error) Outcome {
	return MapLastError(LastError(err))
}
