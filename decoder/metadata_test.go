package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eventheader-go/eventheader/endian"
	"github.com/eventheader-go/eventheader/errs"
	"github.com/eventheader-go/eventheader/format"
)

func littleEndianReader() endian.Reader {
	return endian.NewReader(endian.GetLittleEndianEngine())
}

func TestParseEventHeaderRejectsShortBuffer(t *testing.T) {
	_, _, err := parseEventHeader(make([]byte, 7))
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)
}

func TestParseEventHeaderRejectsUnknownFlags(t *testing.T) {
	b := make([]byte, format.HeaderSize)
	b[0] = 0x08 // bit 3, not in headerFlagsKnownMask
	_, _, err := parseEventHeader(b)
	require.ErrorIs(t, err, errs.ErrUnsupportedFlags)
}

func TestParseEventHeaderReadsFields(t *testing.T) {
	b := []byte{
		0x02, // LittleEndian only
		7,    // version
		0x34, 0x12, // id = 0x1234
		0x78, 0x56, // tag = 0x5678
		9,  // opcode
		11, // level
	}
	h, r, err := parseEventHeader(b)
	require.NoError(t, err)
	require.True(t, r.Engine() == endian.GetLittleEndianEngine())
	require.Equal(t, uint8(7), h.Version)
	require.Equal(t, uint16(0x1234), h.ID)
	require.Equal(t, uint16(0x5678), h.Tag)
	require.Equal(t, format.Opcode(9), h.Opcode)
	require.Equal(t, format.Level(11), h.Level)
}

func TestParseExtensionsNoExtensions(t *testing.T) {
	set, pos, err := parseExtensions(nil, littleEndianReader(), 8, false)
	require.NoError(t, err)
	require.Equal(t, 8, pos)
	require.False(t, set.HasMetadata)
}

// extBlock packs one extension header + payload at the given little-endian
// layout, returning the bytes appended to dst.
func extBlock(dst []byte, kind format.ExtKind, chain bool, payload []byte) []byte {
	kindAndChain := uint16(kind)
	if chain {
		kindAndChain |= 0x8000
	}
	size := uint16(len(payload))
	dst = append(dst, byte(size), byte(size>>8))
	dst = append(dst, byte(kindAndChain), byte(kindAndChain>>8))
	dst = append(dst, payload...)
	return dst
}

func TestParseExtensionsSingleMetadata(t *testing.T) {
	meta := []byte("Evt\x00F\x00\x03")
	var b []byte
	b = extBlock(b, format.ExtKindMetadata, false, meta)

	set, pos, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.NoError(t, err)
	require.True(t, set.HasMetadata)
	require.Equal(t, format.ExtHeaderSize, set.MetaBegin)
	require.Equal(t, format.ExtHeaderSize+len(meta), set.MetaEnd)
	require.Equal(t, len(b), pos)
}

func TestParseExtensionsDuplicateMetadata(t *testing.T) {
	var b []byte
	b = extBlock(b, format.ExtKindMetadata, true, []byte("a\x00"))
	b = extBlock(b, format.ExtKindMetadata, false, []byte("b\x00"))

	_, _, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.ErrorIs(t, err, errs.ErrDuplicateMetadata)
}

func TestParseExtensionsReservedKind(t *testing.T) {
	var b []byte
	b = extBlock(b, format.ExtKindInvalid, false, nil)

	_, _, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.ErrorIs(t, err, errs.ErrReservedExtKind)
}

func TestParseExtensionsUnknownKindTolerated(t *testing.T) {
	var b []byte
	b = extBlock(b, format.ExtKind(17), true, []byte{1, 2, 3})
	b = extBlock(b, format.ExtKindMetadata, false, []byte("n\x00"))

	set, pos, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.NoError(t, err)
	require.True(t, set.HasMetadata)
	require.Equal(t, len(b), pos)
}

func TestParseExtensionsActivityIDOnly(t *testing.T) {
	var activity [16]byte
	for i := range activity {
		activity[i] = byte(i + 1)
	}

	var b []byte
	b = extBlock(b, format.ExtKindActivityID, false, activity[:])

	set, _, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.NoError(t, err)
	require.True(t, set.HasActivityID)
	require.False(t, set.HasRelatedID)
	require.Equal(t, activity, set.ActivityID)
}

func TestParseExtensionsActivityAndRelated(t *testing.T) {
	var payload [32]byte
	for i := range payload {
		payload[i] = byte(i + 1)
	}

	var b []byte
	b = extBlock(b, format.ExtKindActivityID, false, payload[:])

	set, _, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.NoError(t, err)
	require.True(t, set.HasActivityID)
	require.True(t, set.HasRelatedID)
	require.Equal(t, payload[:16], set.ActivityID[:])
	require.Equal(t, payload[16:], set.RelatedID[:])
}

func TestParseExtensionsInvalidActivitySize(t *testing.T) {
	var b []byte
	b = extBlock(b, format.ExtKindActivityID, false, make([]byte, 8))

	_, _, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.ErrorIs(t, err, errs.ErrInvalidActivitySize)
}

func TestParseExtensionsDuplicateActivityID(t *testing.T) {
	var b []byte
	b = extBlock(b, format.ExtKindActivityID, true, make([]byte, 16))
	b = extBlock(b, format.ExtKindActivityID, false, make([]byte, 16))

	_, _, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.ErrorIs(t, err, errs.ErrDuplicateActivityID)
}

func TestParseExtensionsTruncatedHeader(t *testing.T) {
	b := []byte{1, 0, 1} // 3 bytes, less than ExtHeaderSize
	_, _, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.ErrorIs(t, err, errs.ErrTruncatedExtension)
}

func TestParseExtensionsTruncatedPayload(t *testing.T) {
	b := []byte{5, 0, byte(format.ExtKindMetadata), 0, 'a'} // declares size 5, only 1 byte present
	_, _, err := parseExtensions(b, littleEndianReader(), 0, true)
	require.ErrorIs(t, err, errs.ErrTruncatedExtension)
}

func TestReadEventNameFindsTerminator(t *testing.T) {
	meta := []byte("MyEvent\x00rest")
	set := extensionSet{MetaBegin: 0, MetaEnd: len(meta), HasMetadata: true}

	offset, length, fieldsStart, err := readEventName(meta, set)
	require.NoError(t, err)
	require.Equal(t, 0, offset)
	require.Equal(t, len("MyEvent"), length)
	require.Equal(t, len("MyEvent")+1, fieldsStart)
}

func TestReadEventNameUnterminated(t *testing.T) {
	meta := []byte("NoTerminator")
	set := extensionSet{MetaBegin: 0, MetaEnd: len(meta), HasMetadata: true}

	_, _, _, err := readEventName(meta, set)
	require.ErrorIs(t, err, errs.ErrUnterminatedName)
}

func TestReadFieldNameAndTypeScalar(t *testing.T) {
	meta := []byte("F\x00\x03") // name "F", encoding=Value32 (3), no chain
	ft, pos, err := readFieldNameAndType(meta, 0, littleEndianReader())
	require.NoError(t, err)
	require.Equal(t, 0, ft.NameOffset)
	require.Equal(t, 1, ft.NameLen)
	require.Equal(t, format.EncodingValue32, ft.Encoding)
	require.Equal(t, format.ArrayFlagsNone, ft.ArrayFlags)
	require.Equal(t, format.FormatDefault, ft.Format)
	require.Equal(t, len(meta), pos)
}

func TestReadFieldNameAndTypeWithFormatNoTag(t *testing.T) {
	// encoding=Value32 with chain bit, format=HexInt(3) without its own chain bit
	meta := []byte("F\x00\x83\x03")
	ft, pos, err := readFieldNameAndType(meta, 0, littleEndianReader())
	require.NoError(t, err)
	require.Equal(t, format.EncodingValue32, ft.Encoding)
	require.Equal(t, format.FormatHexInt, ft.Format)
	require.Equal(t, uint16(0), ft.Tag)
	require.Equal(t, len(meta), pos)
}

func TestReadFieldNameAndTypeWithTag(t *testing.T) {
	// encoding chain -> format chain -> 2-byte tag (little-endian 0xBEEF)
	meta := []byte("F\x00\x83\x83\xEF\xBE")
	ft, pos, err := readFieldNameAndType(meta, 0, littleEndianReader())
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), ft.Tag)
	require.Equal(t, len(meta), pos)
}

func TestReadFieldNameAndTypeUnterminatedName(t *testing.T) {
	meta := []byte("NoNul")
	_, _, err := readFieldNameAndType(meta, 0, littleEndianReader())
	require.ErrorIs(t, err, errs.ErrUnterminatedName)
}

func TestReadFieldNameAndTypeTruncatedAfterName(t *testing.T) {
	meta := []byte("F\x00") // name terminated, no encoding byte follows
	_, _, err := readFieldNameAndType(meta, 0, littleEndianReader())
	require.ErrorIs(t, err, errs.ErrTruncatedType)
}

func TestReadFieldNameAndTypeTruncatedFormat(t *testing.T) {
	meta := []byte("F\x00\x83") // encoding chain bit set, no format byte follows
	_, _, err := readFieldNameAndType(meta, 0, littleEndianReader())
	require.ErrorIs(t, err, errs.ErrTruncatedType)
}

func TestReadFieldNameAndTypeTruncatedTag(t *testing.T) {
	meta := []byte("F\x00\x83\x83\x01") // format chain bit set, only 1 of 2 tag bytes present
	_, _, err := readFieldNameAndType(meta, 0, littleEndianReader())
	require.ErrorIs(t, err, errs.ErrTruncatedType)
}

func TestParseTracepointNameValid(t *testing.T) {
	tp, err := parseTracepointName("MyProvider_L5K3")
	require.NoError(t, err)
	require.Equal(t, len("MyProvider"), tp.ProviderLen)
	require.Equal(t, format.Level(5), tp.Level)
	require.Equal(t, uint64(3), tp.Keyword)
	require.Equal(t, len("MyProvider_L5K3"), tp.OptionsStart)
}

func TestParseTracepointNameWithOptions(t *testing.T) {
	tp, err := parseTracepointName("MyProvider_L5K3Gr1Stack")
	require.NoError(t, err)
	require.Equal(t, format.Level(5), tp.Level)
	require.Equal(t, uint64(3), tp.Keyword)
	require.Equal(t, "Gr1Stack", "MyProvider_L5K3Gr1Stack"[tp.OptionsStart:])
}

func TestParseTracepointNameHexKeyword(t *testing.T) {
	tp, err := parseTracepointName("P_L1Kff")
	require.NoError(t, err)
	require.Equal(t, uint64(0xff), tp.Keyword)
}

func TestParseTracepointNameMissingUnderscore(t *testing.T) {
	_, err := parseTracepointName("ProviderL5K3")
	require.ErrorIs(t, err, errs.ErrMalformedName)
}

func TestParseTracepointNameMissingL(t *testing.T) {
	_, err := parseTracepointName("Provider_X5K3")
	require.ErrorIs(t, err, errs.ErrMalformedName)
}

func TestParseTracepointNameMissingK(t *testing.T) {
	_, err := parseTracepointName("Provider_L5X3")
	require.ErrorIs(t, err, errs.ErrMalformedName)
}

func TestParseTracepointNameMissingKeywordDigits(t *testing.T) {
	_, err := parseTracepointName("Provider_L5K")
	require.ErrorIs(t, err, errs.ErrMalformedName)
}

func TestParseTracepointNameBadOptionStart(t *testing.T) {
	// option attribute must start with an uppercase letter
	_, err := parseTracepointName("Provider_L5K31lower")
	require.ErrorIs(t, err, errs.ErrMalformedName)
}

func TestParseTracepointNameTrailingUnderscoreOnly(t *testing.T) {
	_, err := parseTracepointName("Provider_")
	require.ErrorIs(t, err, errs.ErrMalformedName)
}

func TestParseTracepointNameLevelOverflow(t *testing.T) {
	_, err := parseTracepointName("P_L100K1") // 0x100 > 0xFF
	require.ErrorIs(t, err, errs.ErrMalformedName)
}
