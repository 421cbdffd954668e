package main

import (
	"strings"

	"github.com/agusx1211/recap/internal/config"
)

// optionalValueFlags take an optional value that may also be given as the
// following argument, e.g. "-g .dockerignore" or "--clear build".
var optionalValueFlags = map[string]string{
	"-g":      "--git",
	"--git":   "--git",
	"-C":      "--clear",
	"--clear": "--clear",
}

// attachedShorthands map a shorthand with an attached value ("-pKEY") to
// its long form.
var attachedShorthands = map[string]string{
	"-g": "--git",
	"-C": "--clear",
	"-p": "--paste",
}

// preprocessArgs rewrites the argument forms pflag cannot parse on its own
// into "--flag=value":
//
//   - an optional value given as the next argument of -g/--git and
//     -C/--clear (the next argument is taken unless it starts with "-");
//   - a value attached to -g, -C or -p;
//   - the two values of --strip-scope PATH STRIP.
//
// Everything after "--" is left untouched.
func preprocessArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}

		if long, ok := optionalValueFlags[arg]; ok {
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				out = append(out, long+"="+args[i+1])
				i++
			} else {
				out = append(out, long)
			}
			continue
		}

		if arg == "--strip-scope" && i+2 < len(args) {
			out = append(out, "--strip-scope="+args[i+1], "--strip-scope="+args[i+2])
			i += 2
			continue
		}

		if len(arg) > 2 && !strings.HasPrefix(arg, "--") {
			if long, ok := attachedShorthands[arg[:2]]; ok {
				out = append(out, long+"="+strings.TrimPrefix(arg[2:], "="))
				continue
			}
		}

		out = append(out, arg)
	}
	return out
}

// pairStripScopes turns the flattened --strip-scope values back into
// rules. An odd count leaves the last rule without a strip regex, which
// validation reports.
func pairStripScopes(values []string) []config.StripScope {
	scopes := make([]config.StripScope, 0, (len(values)+1)/2)
	for i := 0; i < len(values); i += 2 {
		s := config.StripScope{Path: values[i]}
		if i+1 < len(values) {
			s.Strip = values[i+1]
		}
		scopes = append(scopes, s)
	}
	return scopes
}
