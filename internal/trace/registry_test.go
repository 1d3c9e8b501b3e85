package trace

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultRegistryNames(t *testing.T) {
	r := DefaultRegistry()

	want := []string{"automerge-paper", "rustcode", "seph-blog1", "sveltecomponent"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRegistryPath(t *testing.T) {
	r := &Registry{
		Dir: "corpus",
		Files: map[string]string{
			"rel": "rel.json.gz",
			"abs": filepath.Join(string(filepath.Separator), "data", "abs.json"),
		},
	}

	got, err := r.Path("rel")
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if want := filepath.Join("corpus", "rel.json.gz"); got != want {
		t.Errorf("Path(rel) = %q, want %q", got, want)
	}

	got, err = r.Path("abs")
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if want := filepath.Join(string(filepath.Separator), "data", "abs.json"); got != want {
		t.Errorf("Path(abs) = %q, want %q", got, want)
	}
}

func TestRegistryPathUnknown(t *testing.T) {
	r := &Registry{Files: map[string]string{}}

	_, err := r.Path("nope")
	if !errors.Is(err, ErrUnknownTrace) {
		t.Errorf("Path() error = %v, want ErrUnknownTrace", err)
	}
}

func TestRegistryLoad(t *testing.T) {
	r := &Registry{
		Dir:   "testdata",
		Files: map[string]string{"hello": "hello.json.gz"},
	}

	tr, err := r.Load("hello")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tr.Name != "hello" || tr.EndContent != "hello" {
		t.Errorf("loaded trace = %+v", tr)
	}

	if _, err := r.Load("missing"); !errors.Is(err, ErrUnknownTrace) {
		t.Errorf("Load(missing) error = %v, want ErrUnknownTrace", err)
	}
}
