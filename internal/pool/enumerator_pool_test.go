package pool

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eventheader-go/eventheader/decoder"
)

func buildU32Event(eventName, fieldName string, value uint32) ([]byte, string) {
	meta := append([]byte(eventName), 0)
	meta = append(meta, fieldName...)
	meta = append(meta, 0, 0x03) // encoding=Value32, no array, no chain

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

func TestEnumeratorPoolReusesAcrossEvents(t *testing.T) {
	p := New()

	data1, name1 := buildU32Event("Evt1", "A", 1)
	e := p.Get()
	require.True(t, e.StartEvent(name1, data1, 0))
	require.True(t, e.MoveNext())
	p.Put(e)

	data2, name2 := buildU32Event("Evt2", "B", 2)
	e2 := p.Get()
	require.Equal(t, decoder.StateNone, e2.State())
	require.True(t, e2.StartEvent(name2, data2, 0))
	p.Put(e2)
}

func TestEnumeratorPoolAppliesOptions(t *testing.T) {
	p := New(decoder.WithMoveNextLimit(1))

	data, name := buildU32Event("Evt", "A", 1)
	e := p.Get()
	require.True(t, e.StartEvent(name, data, 0))

	require.True(t, e.MoveNext())
	require.False(t, e.MoveNext())
	require.Equal(t, decoder.StateError, e.State())
}

func TestEnumeratorPoolConcurrentGetPut(t *testing.T) {
	p := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			data, name := buildU32Event("Evt", "A", uint32(n))
			e := p.Get()
			require.True(t, e.StartEvent(name, data, 0))
			p.Put(e)
		}(i)
	}
	wg.Wait()
}
