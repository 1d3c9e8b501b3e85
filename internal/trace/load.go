package trace

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Load reads a trace from a gzip-compressed or plain JSON file.
// The name identifies the trace in errors and results.
func Load(name, path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace %s: %w", name, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br

	// Sniff the gzip magic so plain .json files load too.
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream of trace %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading trace %s: %w", name, err)
	}

	return Decode(name, data)
}

// NameFromPath derives a trace name from a corpus file path.
func NameFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".json")
	return name
}

// Decode parses the JSON trace format.
func Decode(name string, data []byte) (*Trace, error) {
	if !gjson.ValidBytes(data) {
		return nil, &FormatError{Name: name, Txn: -1, Patch: -1, Reason: "invalid JSON"}
	}

	root := gjson.ParseBytes(data)

	start := root.Get("startContent")
	if !start.Exists() || start.Type != gjson.String {
		return nil, &FormatError{Name: name, Txn: -1, Patch: -1, Reason: "missing or non-string startContent"}
	}
	end := root.Get("endContent")
	if !end.Exists() || end.Type != gjson.String {
		return nil, &FormatError{Name: name, Txn: -1, Patch: -1, Reason: "missing or non-string endContent"}
	}
	rawTxns := root.Get("txns")
	if !rawTxns.IsArray() {
		return nil, &FormatError{Name: name, Txn: -1, Patch: -1, Reason: "missing or non-array txns"}
	}

	var txns []Txn
	var ferr *FormatError

	rawTxns.ForEach(func(_, txn gjson.Result) bool {
		ti := len(txns)

		rawPatches := txn.Get("patches")
		if !rawPatches.IsArray() {
			ferr = &FormatError{Name: name, Txn: ti, Patch: -1, Reason: "missing or non-array patches"}
			return false
		}

		var patches []Patch
		rawPatches.ForEach(func(_, raw gjson.Result) bool {
			pi := len(patches)

			p, reason := decodePatch(raw)
			if reason != "" {
				ferr = &FormatError{Name: name, Txn: ti, Patch: pi, Reason: reason}
				return false
			}
			patches = append(patches, p)
			return true
		})
		if ferr != nil {
			return false
		}

		txns = append(txns, Txn{Patches: patches})
		return true
	})
	if ferr != nil {
		return nil, ferr
	}

	return &Trace{
		Name:         name,
		StartContent: start.String(),
		EndContent:   end.String(),
		Txns:         txns,
	}, nil
}

// decodePatch validates one [pos, del, "ins"] triple.
// Returns a non-empty reason on failure.
func decodePatch(raw gjson.Result) (Patch, string) {
	if !raw.IsArray() {
		return Patch{}, "patch is not an array"
	}

	triple := raw.Array()
	if len(triple) != 3 {
		return Patch{}, fmt.Sprintf("patch has %d elements, want 3", len(triple))
	}
	if triple[0].Type != gjson.Number || triple[1].Type != gjson.Number {
		return Patch{}, "patch position and delete count must be numbers"
	}
	if triple[2].Type != gjson.String {
		return Patch{}, "patch insert text must be a string"
	}

	pos := triple[0].Int()
	del := triple[1].Int()
	if pos < 0 || del < 0 {
		return Patch{}, "patch position and delete count must be non-negative"
	}

	return Patch{Pos: int(pos), Del: int(del), Ins: triple[2].String()}, ""
}
