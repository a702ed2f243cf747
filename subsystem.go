package regsvr

import (
	"fmt"
	"strings"
)

type (
	// Subsystem is the process-wide runtime a module needs while it is registered.
	// Acquire and Token.Release must be strictly paired and never overlap.
	Subsystem interface {
		Acquire() (Token, error)
	}
	// Token is an acquired subsystem session.
	Token interface {
		Release()
	}
	// SubsystemFunc adapts a function to [Subsystem].
	SubsystemFunc func() (Token, error)
	// TokenFunc adapts a function to [Token].
	TokenFunc func()
)

func (f SubsystemFunc) Acquire() (Token, error) { return f() }
func (f TokenFunc) Release()                    { f() }

// Subsystem kinds accepted by [NewSubsystem].
const (
	SubsystemOLE  = "ole"
	SubsystemCOM  = "com"
	SubsystemNone = "none"
)

// NoSubsystem acquires nothing.
var NoSubsystem Subsystem = SubsystemFunc(func() (Token, error) {
	return TokenFunc(func() {}), nil
})

// NewSubsystem create the subsystem of kind for the running platform.
// Platforms without OLE or COM get [NoSubsystem] for every kind.
func NewSubsystem(kind string) (Subsystem, error) {
	switch strings.ToLower(kind) {
	case "", SubsystemOLE:
		return platformSubsystem(SubsystemOLE), nil
	case SubsystemCOM:
		return platformSubsystem(SubsystemCOM), nil
	case SubsystemNone:
		return NoSubsystem, nil
	default:
		return nil, fmt.Errorf("%w: unknown subsystem %q", ErrConfig, kind)
	}
}
