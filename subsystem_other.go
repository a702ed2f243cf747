//go:build !windows

package regsvr

func platformSubsystem(string) Subsystem {
	return NoSubsystem
}
