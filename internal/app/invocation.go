package app

import "strings"

// Invocation is a cargo command line together with the options kiln reads
// from it. Args is handed to cargo unchanged.
type Invocation struct {
	Args         []string
	Target       string
	ManifestPath string
	Verbose      bool
	Quiet        bool
}

// ParseInvocation sniffs the options kiln cares about from cargo args.
// Everything after "--" belongs to the compiled program and is ignored.
func ParseInvocation(args []string) Invocation {
	inv := Invocation{Args: args}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		switch {
		case arg == "--target" && i+1 < len(args):
			i++
			inv.Target = args[i]
		case strings.HasPrefix(arg, "--target="):
			inv.Target = strings.TrimPrefix(arg, "--target=")
		case arg == "--manifest-path" && i+1 < len(args):
			i++
			inv.ManifestPath = args[i]
		case strings.HasPrefix(arg, "--manifest-path="):
			inv.ManifestPath = strings.TrimPrefix(arg, "--manifest-path=")
		case arg == "-v" || arg == "-vv" || arg == "--verbose":
			inv.Verbose = true
		case arg == "-q" || arg == "--quiet":
			inv.Quiet = true
		}
	}

	return inv
}
