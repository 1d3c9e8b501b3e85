package bench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textbench/internal/engine"
	"github.com/dshills/textbench/internal/trace"
)

func helloTrace() *trace.Trace {
	return &trace.Trace{
		Name:       "hello",
		EndContent: "hello",
		Txns:       []trace.Txn{{Patches: []trace.Patch{{Pos: 0, Del: 0, Ins: "hello"}}}},
	}
}

func helloWorldTrace() *trace.Trace {
	return &trace.Trace{
		Name:         "hello-world",
		StartContent: "hello world",
		EndContent:   "hello there",
		Txns:         []trace.Txn{{Patches: []trace.Patch{{Pos: 6, Del: 5, Ins: "there"}}}},
	}
}

func unicodeTrace() *trace.Trace {
	return &trace.Trace{
		Name:         "unicode",
		StartContent: "héllo",
		EndContent:   "¡hello 世界",
		Txns: []trace.Txn{
			{Patches: []trace.Patch{{Pos: 5, Del: 0, Ins: " 世界"}}},
			{Patches: []trace.Patch{{Pos: 1, Del: 1, Ins: "e"}, {Pos: 0, Del: 0, Ins: "¡"}}},
		},
	}
}

// corruptTrace claims an end content the patches never produce.
func corruptTrace() *trace.Trace {
	return &trace.Trace{
		Name:       "corrupt",
		EndContent: "hello!!!",
		Txns:       []trace.Txn{{Patches: []trace.Patch{{Pos: 0, Del: 0, Ins: "hello"}}}},
	}
}

func TestPrepareTrace(t *testing.T) {
	byteEngine, err := engine.Lookup("bytes")
	require.NoError(t, err)
	runeEngine, err := engine.Lookup("causal-tree")
	require.NoError(t, err)

	t.Run("codepoint engine keeps trace", func(t *testing.T) {
		tr := unicodeTrace()
		got, err := PrepareTrace(runeEngine, tr)
		require.NoError(t, err)
		assert.Same(t, tr, got)
	})

	t.Run("byte engine converts offsets", func(t *testing.T) {
		got, err := PrepareTrace(byteEngine, unicodeTrace())
		require.NoError(t, err)
		assert.True(t, got.ByteOffsets)
		assert.Equal(t, 6, got.Txns[0].Patches[0].Pos, "é widens the prefix by one byte")
	})

	t.Run("byte trace rejected by codepoint engine", func(t *testing.T) {
		tr := unicodeTrace()
		converted, err := tr.CharsToBytes()
		require.NoError(t, err)

		_, err = PrepareTrace(runeEngine, converted)
		require.ErrorIs(t, err, ErrUnitMismatch)
	})
}

func TestReplayUpstreamAllEngines(t *testing.T) {
	traces := []*trace.Trace{helloTrace(), helloWorldTrace(), unicodeTrace()}

	for _, name := range engine.Names() {
		e, err := engine.Lookup(name)
		require.NoError(t, err)

		for _, tr := range traces {
			t.Run(name+"/"+tr.Name, func(t *testing.T) {
				prepared, err := PrepareTrace(e, tr)
				require.NoError(t, err)
				assert.NoError(t, ReplayUpstream(e, prepared))
			})
		}
	}
}

func TestReplayUpstreamLengthMismatch(t *testing.T) {
	for _, name := range engine.Names() {
		e, err := engine.Lookup(name)
		require.NoError(t, err)

		t.Run(name, func(t *testing.T) {
			prepared, err := PrepareTrace(e, corruptTrace())
			require.NoError(t, err)

			err = ReplayUpstream(e, prepared)
			require.Error(t, err)

			var lerr *LengthError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, name, lerr.Engine)
			assert.Equal(t, "corrupt", lerr.Trace)
			assert.Equal(t, 5, lerr.Got)
			assert.Equal(t, 8, lerr.Want)
			assert.Contains(t, lerr.Error(), name)
			assert.Contains(t, lerr.Error(), "corrupt")
		})
	}
}

func TestReplayUpstreamBadPatch(t *testing.T) {
	tr := &trace.Trace{
		Name:       "oob",
		EndContent: "x",
		Txns:       []trace.Txn{{Patches: []trace.Patch{{Pos: 3, Del: 0, Ins: "x"}}}},
	}

	e, err := engine.Lookup("bytes")
	require.NoError(t, err)
	prepared, err := PrepareTrace(e, tr)
	require.NoError(t, err)

	err = ReplayUpstream(e, prepared)
	require.ErrorIs(t, err, engine.ErrOffsetOutOfRange)
	assert.Contains(t, err.Error(), "txn 0 patch 0")

	var lerr *LengthError
	assert.False(t, errors.As(err, &lerr), "an aborted replay is not a length mismatch")
}
