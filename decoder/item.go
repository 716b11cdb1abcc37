package decoder

import (
	"github.com/eventheader-go/eventheader/endian"
	"github.com/eventheader-go/eventheader/format"
)

// Item is the borrowed view of one decoded step: a
// scalar value, an array/struct boundary, or a metadata-only declaration.
// Bytes aliases the caller's event buffer, so the alias is
// valid only until the next mutating call (StartEvent, MoveNext,
// MoveNextSibling, MoveNextMetadata) on the Enumerator that produced it.
type Item struct {
	// Name is the field name span from metadata, without its terminator.
	// For ArrayEnd/StructEnd it is the name of the field that opened them.
	Name []byte

	// Bytes is the item's raw payload bytes. Empty for Struct/ArrayBegin of
	// complex element types/ArrayEnd/StructEnd, and for a VArray of
	// variable-size elements.
	Bytes []byte

	Encoding    format.Encoding
	ArrayFlags  format.ArrayFlags
	Format      format.Format
	Tag         uint16
	ElementSize int // fixed per-element size for Value8..Value128, else 0
	ArrayCount  int // element count of the enclosing array, or 1 for scalars

	reader endian.Reader
}

// ByteOrder returns the event's byte order reader, for callers that need to
// interpret Bytes themselves (e.g. a fixed-size array's raw bulk slice).
func (it Item) ByteOrder() endian.Reader { return it.reader }

// elem returns the element-index'th ElementSize-wide slice of Bytes, for
// fixed-size encodings. No bounds check is made beyond Go's own: index must
// address an element held in Bytes (only 0 for a single array element),
// and an out-of-range index panics.
func (it Item) elem(index int) []byte {
	start := index * it.ElementSize
	return it.Bytes[start : start+it.ElementSize]
}

func (it Item) U8(index int) uint8   { return it.elem(index)[0] }
func (it Item) I8(index int) int8    { return int8(it.elem(index)[0]) } //nolint:gosec
func (it Item) U16(index int) uint16 { return it.reader.Uint16(it.elem(index)) }
func (it Item) I16(index int) int16  { return it.reader.Int16(it.elem(index)) }
func (it Item) U32(index int) uint32 { return it.reader.Uint32(it.elem(index)) }
func (it Item) I32(index int) int32  { return it.reader.Int32(it.elem(index)) }
func (it Item) U64(index int) uint64 { return it.reader.Uint64(it.elem(index)) }
func (it Item) I64(index int) int64  { return it.reader.Int64(it.elem(index)) }

func (it Item) F32(index int) float32 { return it.reader.Float32(it.elem(index)) }
func (it Item) F64(index int) float64 { return it.reader.Float64(it.elem(index)) }

// Bool32 reads a 4-byte element as a boolean: zero is false, anything else
// is true (FormatBoolean over EncodingValue32, the common case).
func (it Item) Bool32(index int) bool { return it.U32(index) != 0 }

// Port reads a 2-byte element as a network port. Ports are carried
// big-endian on the wire regardless of the event's own byte order (they
// are already in network order when captured), so Port always reads
// big-endian rather than using it.reader.
func (it Item) Port(index int) uint16 {
	b := it.elem(index)
	return uint16(b[0])<<8 | uint16(b[1])
}

// IPv4 reads a 4-byte element as an IPv4 address (network byte order, 4
// bytes, address order preserved as captured).
func (it Item) IPv4(index int) [4]byte {
	b := it.elem(index)
	return [4]byte{b[0], b[1], b[2], b[3]}
}

// IPv6 reads a 16-byte element as an IPv6 address.
func (it Item) IPv6(index int) [16]byte {
	var a [16]byte
	copy(a[:], it.elem(index))
	return a
}

// GUID reads a 16-byte element as a big-endian GUID/UUID, regardless of the
// event's own byte order: GUIDs are a structured value (time_low,
// time_mid, time_hi_and_version, clock_seq, node) rendered in RFC 4122
// order, not a plain integer subject to the event's endianness.
func (it Item) GUID(index int) [16]byte {
	var g [16]byte
	copy(g[:], it.elem(index))
	return g
}

// StringContent classifies Bytes for a string-encoded item into the
// caller-visible (slice, charSize, declared format) triple, without
// copying. No byte-order-mark detection is performed: a leading BOM, if
// present, stays in the returned slice, and charSize comes from the
// encoding alone. This is intentionally the
// full extent of string handling the core performs — decoding the bytes
// into text is a formatter's job.
func (it Item) StringContent() (data []byte, charSize int, f format.Format) {
	return it.Bytes, it.Encoding.CharSize(), it.Format
}
