// Package hookenv provides the explicit build environment handed to each hook.
//
// An Environment holds the construction variables the build orchestrator
// exposes to its hooks (PROJECT_DIR, PROGNAME, ...) and performs the same
// variable substitution on paths. It is not safe for concurrent mutation.
package hookenv

import (
	"os"
	"path/filepath"
	"sort"
)

const (
	// ProjectDir names the variable holding the project's root directory.
	ProjectDir = "PROJECT_DIR"
	// ProgName names the variable holding the base name of the output artifact.
	ProgName = "PROGNAME"
)

// An Environment is a set of build variables.
type Environment struct {
	vars map[string]string
}

// New creates an environment rooted at projectDir. The entries in vars are copied; a PROJECT_DIR entry in vars is
// ignored in favor of projectDir.
func New(projectDir string, vars map[string]string) *Environment {
	env := &Environment{vars: make(map[string]string, len(vars)+1)}
	for k, v := range vars {
		env.vars[k] = v
	}
	env.vars[ProjectDir] = projectDir
	return env
}

// Get returns the value of the named variable.
func (env *Environment) Get(name string) (string, bool) {
	v, ok := env.vars[name]
	return v, ok
}

// Replace sets the named variable, overwriting any existing value.
func (env *Environment) Replace(name, value string) {
	env.vars[name] = value
}

// ProjectDir returns the project's root directory.
func (env *Environment) ProjectDir() string {
	return env.vars[ProjectDir]
}

// ProgName returns the base name of the output artifact, or the empty string if none has been set.
func (env *Environment) ProgName() string {
	return env.vars[ProgName]
}

// SetProgName sets the base name of the output artifact.
func (env *Environment) SetProgName(name string) {
	env.Replace(ProgName, name)
}

// Names returns the names of all variables in sorted order.
func (env *Environment) Names() []string {
	names := make([]string, 0, len(env.vars))
	for k := range env.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Subst expands $NAME and ${NAME} references in s. $$ expands to a literal $. Unknown variables expand to the
// empty string.
func (env *Environment) Subst(s string) string {
	return os.Expand(s, func(name string) string {
		if name == "$" {
			return "$"
		}
		return env.vars[name]
	})
}

// ResolveEmbedPath resolves an embed-file entry to a filesystem path. Relative entries are taken relative to
// $PROJECT_DIR.
func (env *Environment) ResolveEmbedPath(entry string) string {
	if !filepath.IsAbs(entry) {
		entry = filepath.Join("$"+ProjectDir, entry)
	}
	return env.Subst(entry)
}
