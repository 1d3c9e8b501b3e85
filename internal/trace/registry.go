package trace

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Registry maps trace names to corpus files.
// It is declared in the [corpus] section of the run configuration.
type Registry struct {
	// Dir is the corpus directory; relative file entries resolve against it.
	Dir string `toml:"dir"`

	// Files maps trace names to file paths.
	Files map[string]string `toml:"files"`
}

// DefaultRegistry returns the registry of the standard workload corpus.
func DefaultRegistry() *Registry {
	return &Registry{
		Dir: "traces",
		Files: map[string]string{
			"automerge-paper": "automerge-paper.json.gz",
			"rustcode":        "rustcode.json.gz",
			"sveltecomponent": "sveltecomponent.json.gz",
			"seph-blog1":      "seph-blog1.json.gz",
		},
	}
}

// Names returns the registered trace names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Files))
	for name := range r.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path resolves a trace name to its corpus file path.
func (r *Registry) Path(name string) (string, error) {
	file, ok := r.Files[name]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownTrace)
	}
	if !filepath.IsAbs(file) && r.Dir != "" {
		file = filepath.Join(r.Dir, file)
	}
	return file, nil
}

// Load loads a registered trace by name.
func (r *Registry) Load(name string) (*Trace, error) {
	path, err := r.Path(name)
	if err != nil {
		return nil, err
	}
	return Load(name, path)
}
