package trace

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/sjson"
)

// Save writes a trace back to disk in the corpus format.
// The output is gzip-compressed when the path ends in ".gz".
func Save(t *Trace, path string) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file for %s: %w", t.Name, err)
	}

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		if _, err := gz.Write(data); err != nil {
			f.Close()
			return fmt.Errorf("writing trace %s: %w", t.Name, err)
		}
		if err := gz.Close(); err != nil {
			f.Close()
			return fmt.Errorf("writing trace %s: %w", t.Name, err)
		}
	} else if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing trace %s: %w", t.Name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("writing trace %s: %w", t.Name, err)
	}
	return nil
}

// Encode renders a trace as corpus-format JSON.
func Encode(t *Trace) ([]byte, error) {
	// Transactions are joined by hand so encoding stays linear in trace
	// size; sjson rewrites the whole document on every append.
	var txns bytes.Buffer
	txns.WriteByte('[')
	for ti := range t.Txns {
		if ti > 0 {
			txns.WriteByte(',')
		}
		txnJSON, err := encodeTxn(&t.Txns[ti])
		if err != nil {
			return nil, fmt.Errorf("encoding trace %s txn %d: %w", t.Name, ti, err)
		}
		txns.Write(txnJSON)
	}
	txns.WriteByte(']')

	out := []byte(`{}`)
	out, err := sjson.SetBytes(out, "startContent", t.StartContent)
	if err != nil {
		return nil, fmt.Errorf("encoding trace %s: %w", t.Name, err)
	}
	out, err = sjson.SetBytes(out, "endContent", t.EndContent)
	if err != nil {
		return nil, fmt.Errorf("encoding trace %s: %w", t.Name, err)
	}
	out, err = sjson.SetRawBytes(out, "txns", txns.Bytes())
	if err != nil {
		return nil, fmt.Errorf("encoding trace %s: %w", t.Name, err)
	}
	return out, nil
}

func encodeTxn(txn *Txn) ([]byte, error) {
	out := []byte(`{"patches":[]}`)
	for _, p := range txn.Patches {
		triple := []byte(`[]`)
		var err error
		if triple, err = sjson.SetBytes(triple, "-1", p.Pos); err != nil {
			return nil, err
		}
		if triple, err = sjson.SetBytes(triple, "-1", p.Del); err != nil {
			return nil, err
		}
		if triple, err = sjson.SetBytes(triple, "-1", p.Ins); err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "patches.-1", triple); err != nil {
			return nil, err
		}
	}
	return out, nil
}
