package trace

import (
	"reflect"
	"testing"
)

func FuzzDecode(f *testing.F) {
	f.Add(`{"startContent":"","endContent":"hello","txns":[{"patches":[[0,0,"hello"]]}]}`)
	f.Add(`{"startContent":"日本","endContent":"日","txns":[{"patches":[[1,1,""]]}]}`)
	f.Add(`{"startContent":"a","endContent":"a","txns":[]}`)
	f.Add(`{`)
	f.Add(`[]`)
	f.Add(`{"startContent":0,"endContent":"","txns":[[]]}`)

	f.Fuzz(func(t *testing.T, data string) {
		tr, err := Decode("fuzz", []byte(data))
		if err != nil {
			return
		}

		// Anything that decodes must survive an encode/decode cycle.
		out, err := Encode(tr)
		if err != nil {
			t.Fatalf("Encode() error = %v on decoded trace %+v", err, tr)
		}
		back, err := Decode("fuzz", out)
		if err != nil {
			t.Fatalf("Decode() error = %v on re-encoded trace %s", err, out)
		}
		if !reflect.DeepEqual(back, tr) {
			t.Errorf("round trip = %+v, want %+v", back, tr)
		}
	})
}
