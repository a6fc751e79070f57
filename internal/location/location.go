// ABOUTME: Resolves where the briefcase store lives on disk
// ABOUTME: Home-anchored policy for the sqlite backend, temp-anchored policy for the files backend

package location

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fixed fallbacks for the temp-anchored policy.
const (
	DefaultTempRoot = "/tmp"
	DefaultDirName  = "briefcase"
)

// DBFileName is the store file name under the home-anchored policy.
const DBFileName = "briefcase.db"

// SourceDefault is the provenance reported when no environment variable
// supplied the location.
const SourceDefault = "default"

// tempRootVars is the priority order of environment variables consulted
// for the temp-anchored root.
var tempRootVars = []string{"BRIEFCASE_DIR", "TEMP", "TMPDIR"}

// dirNameVar overrides the briefcase directory name.
const dirNameVar = "BRIEFCASE_DIRNAME"

// Lookup returns the value of an environment variable, or "" if unset.
// Tests inject map-backed lookups; production callers pass os.Getenv.
type Lookup func(string) string

// Location is a resolved store path plus the source that determined it,
// evaluated once per process so the info command can report provenance.
type Location struct {
	Path   string
	Source string // env var name, or SourceDefault
}

// ResolveHome resolves the home-anchored policy:
// <home>/.briefcase/briefcase.db. Fails if the home directory cannot be
// determined.
func ResolveHome(lookup Lookup) (Location, error) {
	home := lookup("HOME")
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return Location{}, fmt.Errorf("determining home directory: %w", err)
		}
	}

	return Location{
		Path:   filepath.Join(home, ".briefcase", DBFileName),
		Source: SourceDefault,
	}, nil
}

// ResolveTemp resolves the temp-anchored policy: the first defined temp
// root variable (BRIEFCASE_DIR, TEMP, TMPDIR) joined with the briefcase
// directory name (BRIEFCASE_DIRNAME, default "briefcase"). Falls back to
// /tmp when no variable is set.
func ResolveTemp(lookup Lookup) Location {
	root := DefaultTempRoot
	source := SourceDefault

	for _, v := range tempRootVars {
		if dir := lookup(v); dir != "" {
			root = dir
			source = v
			break
		}
	}

	return Location{
		Path:   filepath.Join(root, dirName(lookup)),
		Source: source,
	}
}

func dirName(lookup Lookup) string {
	if name := lookup(dirNameVar); name != "" {
		return name
	}
	return DefaultDirName
}
