package cli

import (
	"os"
	"strings"

	"github.com/ardnew/allot/pkg"
)

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// mkdirAllRequired creates the given runtime directories.
func mkdirAllRequired(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// scanStore returns the preference store path named on the command line,
// or [pkg.StorePath] when there is none. The path is needed before parsing
// because the store supplies flag defaults.
func scanStore(args []string) string {
	path := pkg.StorePath()

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}

		if !strings.HasPrefix(arg, "-") {
			if i > 0 && isValueOf(args[i-1]) {
				continue
			}

			// Flags after the command belong to the command.
			break
		}

		name, value, assigned := strings.Cut(arg, "=")
		if name != "--store" && name != "-S" {
			continue
		}

		if !assigned {
			if i+1 >= len(args) {
				break
			}

			i++
			value = args[i]
		}

		path = value
	}

	return path
}

// isValueOf reports whether flag takes the following argument as its value.
func isValueOf(flag string) bool {
	if strings.Contains(flag, "=") {
		return false
	}

	switch flag {
	case "--store", "-S", "--log-level", "--log-format", "--log-time-layout",
		"--pprof-mode", "-p", "--pprof-dir":
		return true
	}

	return false
}
