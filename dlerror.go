package regsvr

import "strings"

var badFormat = []string{
	"wrong ELF class",
	"incompatible architecture",
	"wrong architecture",
	"ELF file's machine",
}

// dlerrorCode classify a dlerror message into a windows style last-error.
func dlerrorCode(msg string) uint32 {
	for _, s := range badFormat {
		if strings.Contains(msg, s) {
			return ErrorBadExeFormat
		}
	}
	return 0
}
