package trace

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Stats summarizes a trace's workload shape.
// Inserted and Deleted are expressed in the trace's offset unit; the
// end-content sizes are reported in all three text units since engines
// disagree about which one "length" means.
type Stats struct {
	Txns    int `json:"txns"`
	Patches int `json:"patches"`

	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`

	StartLen     int `json:"startLen"`
	EndBytes     int `json:"endBytes"`
	EndRunes     int `json:"endRunes"`
	EndGraphemes int `json:"endGraphemes"`
}

// Stats computes workload statistics for the trace.
func (t *Trace) Stats() Stats {
	s := Stats{
		Txns:         len(t.Txns),
		StartLen:     t.StartLen(),
		EndBytes:     len(t.EndContent),
		EndRunes:     utf8.RuneCountInString(t.EndContent),
		EndGraphemes: uniseg.GraphemeClusterCount(t.EndContent),
	}

	for i := range t.Txns {
		s.Patches += len(t.Txns[i].Patches)
		for _, p := range t.Txns[i].Patches {
			s.Deleted += p.Del
			if t.ByteOffsets {
				s.Inserted += len(p.Ins)
			} else {
				s.Inserted += utf8.RuneCountInString(p.Ins)
			}
		}
	}

	return s
}
