package eventheader

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eventheader-go/eventheader/decoder"
)

// buildU32Event assembles a minimal little-endian event with one named
// Value32 field, for exercising the root package's convenience wrappers
// without depending on decoder's own internal test fixtures.
func buildU32Event(t *testing.T, eventName, fieldName string, value uint32) ([]byte, string) {
	t.Helper()

	meta := append([]byte(eventName), 0)
	meta = append(meta, fieldName...)
	meta = append(meta, 0, 0x03) // encoding=Value32 (3), no array, no chain

	var valBuf [4]byte
	binary.LittleEndian.PutUint32(valBuf[:], value)

	extSize := len(meta)
	data := []byte{
		0x06, // LittleEndian | Extension
		0,
		0, 0,
		0, 0,
		0,
		0, // level 0
		byte(extSize), byte(extSize >> 8),
		0x01, 0x00, // ExtKindMetadata, no chain
	}
	data = append(data, meta...)
	data = append(data, valBuf[:]...)

	return data, "p_L0K0"
}

// TestItemsYieldsSingleField verifies Items ranges over one scalar field
// and stops cleanly at end of event.
func TestItemsYieldsSingleField(t *testing.T) {
	data, name := buildU32Event(t, "Evt", "F", 0xCAFEBABE)

	var e decoder.Enumerator
	require.True(t, e.StartEvent(name, data, 0))

	var seen []string
	for item := range Items(&e) {
		seen = append(seen, string(item.Name))
		require.Equal(t, uint32(0xCAFEBABE), item.U32(0))
	}

	require.Equal(t, []string{"F"}, seen)
	require.NoError(t, e.LastError())
}

// TestItemsStopsOnFailure verifies a malformed event surfaces through
// LastError rather than a panic or silent truncation.
func TestItemsStopsOnFailure(t *testing.T) {
	var e decoder.Enumerator
	ok := e.StartEvent("p_L0K0", make([]byte, 4), 0)
	require.False(t, ok)

	count := 0
	for range Items(&e) {
		count++
	}
	require.Equal(t, 0, count)
	require.Error(t, e.LastError())
}

// TestPoolReusesEnumerator verifies Get/Put round-trips an Enumerator and
// that it remains usable across cycles.
func TestPoolReusesEnumerator(t *testing.T) {
	pool := NewPool()

	data1, name1 := buildU32Event(t, "Evt1", "A", 1)
	e := pool.Get()
	require.True(t, e.StartEvent(name1, data1, 0))
	count := 0
	for range Items(e) {
		count++
	}
	require.Equal(t, 1, count)
	pool.Put(e)

	data2, name2 := buildU32Event(t, "Evt2", "B", 2)
	e2 := pool.Get()
	require.True(t, e2.StartEvent(name2, data2, 0))
	for item := range Items(e2) {
		require.Equal(t, "B", string(item.Name))
		require.Equal(t, uint32(2), item.U32(0))
	}
	pool.Put(e2)
}

// TestPoolAppliesOptions verifies options passed to NewPool reach freshly
// constructed Enumerators.
func TestPoolAppliesOptions(t *testing.T) {
	pool := NewPool(decoder.WithMoveNextLimit(1))

	data, name := buildU32Event(t, "Evt", "A", 1)
	e := pool.Get()
	require.True(t, e.StartEvent(name, data, 0))

	require.True(t, e.MoveNext())
	require.False(t, e.MoveNext())
	require.Equal(t, decoder.StateError, e.State())
}
