package engine

import "fmt"

// engines holds every registered adapter in presentation order, naive
// baseline first.
var engines = []Engine{
	bytesEngine{},
	ropeEngine{},
	causalEngine{},
	deltaEngine{},
}

// Lookup resolves an engine by name.
func Lookup(name string) (Engine, error) {
	for _, e := range engines {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownEngine)
}

// Downstream resolves an engine by name and requires downstream capability.
// Naming an upstream-only engine is a composition error, reported here
// rather than skipped.
func Downstream(name string) (DownstreamEngine, error) {
	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	de, ok := e.(DownstreamEngine)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotDownstream)
	}
	return de, nil
}

// Names returns all registered engine names in registry order.
func Names() []string {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name()
	}
	return names
}

// DownstreamNames returns the names of engines with downstream capability,
// in registry order.
func DownstreamNames() []string {
	var names []string
	for _, e := range engines {
		if _, ok := e.(DownstreamEngine); ok {
			names = append(names, e.Name())
		}
	}
	return names
}

// Info describes one registered engine's fixed properties.
type Info struct {
	Name          string `json:"name"`
	Unit          string `json:"unit"`
	Downstream    bool   `json:"downstream"`
	NativeReplace bool   `json:"nativeReplace"`
}

// Infos lists every registered engine's properties in registry order.
func Infos() []Info {
	infos := make([]Info, len(engines))
	for i, e := range engines {
		infos[i] = Info{
			Name: e.Name(),
			Unit: UnitOf(e),
		}
		_, infos[i].Downstream = e.(DownstreamEngine)
		if d, err := e.New(""); err == nil {
			_, infos[i].NativeReplace = d.(Replacer)
		}
	}
	return infos
}
