package environmentmanager

import (
	"os"
	"strings"
)

// DefaultPathPrefixes are prepended to PATH so that GUI-launched processes,
// which do not inherit a login shell's PATH, still find Homebrew (first),
// MacPorts (second) and then the system binaries.
var DefaultPathPrefixes = []string{
	"/usr/local/bin",
	"/usr/local/sbin",
	"/opt/local/bin",
	"/opt/local/sbin",
}

// ProcessEnvironmentManager reads and writes the environment of the current
// process, which is inherited by every command it spawns.
type ProcessEnvironmentManager struct{}

func (ProcessEnvironmentManager) Get(key string) (string, error) {
	return os.Getenv(key), nil
}

func (ProcessEnvironmentManager) Set(key, value string) error {
	return os.Setenv(key, value)
}

// WidenPath prepends prefixes to PATH, in order, skipping those already
// present.
func WidenPath(e EnvironmentManager, prefixes []string) error {
	current, err := e.Get("PATH")
	if err != nil {
		return err
	}

	var existing []string
	if current != "" {
		existing = strings.Split(current, string(os.PathListSeparator))
	}
	seen := make(map[string]bool, len(existing))
	for _, entry := range existing {
		seen[entry] = true
	}

	var widened []string
	for _, prefix := range prefixes {
		if prefix == "" || seen[prefix] {
			continue
		}
		seen[prefix] = true
		widened = append(widened, prefix)
	}
	if len(widened) == 0 {
		return nil
	}

	return e.Set("PATH", strings.Join(append(widened, existing...), string(os.PathListSeparator)))
}
