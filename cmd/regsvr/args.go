package main

import "strings"

// switches known to the command, also accepted with a '/' prefix.
var switches = map[string]bool{
	"s": false, "silent": false,
	"u": false, "unregister": false,
	"d": false, "debug": false,
	"?": false, "h": false, "help": false,
	"c": true, "config": true,
}

// help spellings, all passed on as -? so they never reach the built-in help of urfave/cli.
var help = map[string]bool{"?": true, "h": true, "help": true}

// switchName returns the name of a switch token, '/' prefixed tokens must name a known switch.
func switchName(a string) (string, bool) {
	switch {
	case len(a) > 1 && a[0] == '-':
		return strings.TrimLeft(a, "-"), true
	case len(a) > 1 && a[0] == '/':
		n := a[1:]
		if i := strings.IndexByte(n, '='); i >= 0 {
			n = n[:i]
		}
		if _, ok := switches[strings.ToLower(n)]; ok {
			return strings.ToLower(n) + a[1+len(n):], true
		}
	}
	return "", false
}

// normalize moves switches before module paths and rewrites '/x' as '-x'.
func normalize(args []string) []string {
	var flags, paths []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			paths = append(paths, args[i+1:]...)
			break
		}
		name, ok := switchName(a)
		if !ok {
			paths = append(paths, a)
			continue
		}
		if help[strings.ToLower(name)] {
			name = "?"
		}
		flags = append(flags, "-"+name)
		if switches[strings.ToLower(name)] && !strings.Contains(name, "=") && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	out := append(flags, "--")
	return append(out, paths...)
}
