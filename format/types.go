// Package format defines the wire-level constants used by EventHeader
// metadata: field encodings, semantic formats, extension kinds, and the
// event opcode/level bytes. These are pure value types with no decode
// logic of their own; decoder uses them to interpret bytes it has already
// bounds-checked.
package format

// Encoding is the base physical representation of a field, as read from
// metadata after the chain bit has been masked off. Bits 5-6 of the raw
// metadata byte carry the array flags (see ArrayFlags); bit 7 is the chain
// bit consumed by the caller before constructing an Encoding.
type Encoding uint8

const (
	EncodingInvalid Encoding = iota
	EncodingValue8
	EncodingValue16
	EncodingValue32
	EncodingValue64
	EncodingValue128
	EncodingZStringChar8
	EncodingZStringChar16
	EncodingZStringChar32
	EncodingStringLength16Char8
	EncodingStringLength16Char16
	EncodingStringLength16Char32
	EncodingStruct
)

const (
	// encodingValueMask isolates the base encoding bits (0-4) from the raw
	// metadata byte, discarding the array-flag and chain bits.
	encodingValueMask = 0x1F
	// encodingChainBit marks that a format byte follows in metadata.
	encodingChainBit = 0x80
	// encodingArrayShift is the bit offset of the two array-flag bits.
	encodingArrayShift = 5
	encodingArrayMask  = 0x03 << encodingArrayShift
)

// ArrayFlags describes whether, and how, a field repeats.
type ArrayFlags uint8

const (
	ArrayFlagsNone  ArrayFlags = 0
	ArrayFlagCArray ArrayFlags = 1 << 0 // fixed length, stored in metadata
	ArrayFlagVArray ArrayFlags = 1 << 1 // runtime length, stored in payload
)

// SplitEncoding masks the chain bit off raw and separates the base Encoding
// from its ArrayFlags. The caller is responsible for having already
// determined whether a format byte follows (via HasChain on the raw byte).
func SplitEncoding(raw byte) (Encoding, ArrayFlags) {
	enc := Encoding(raw & encodingValueMask)
	arr := ArrayFlags((raw & encodingArrayMask) >> encodingArrayShift)
	return enc, arr
}

// HasChain reports whether the chain bit is set on a raw metadata byte
// (encoding or format), meaning another descriptor byte follows.
func HasChain(raw byte) bool {
	return raw&encodingChainBit != 0
}

// IsArray reports whether either array flag is set.
func (a ArrayFlags) IsArray() bool {
	return a != ArrayFlagsNone
}

// Reserved reports whether both CArray and VArray are set, a combination
// that must be rejected as NotSupported.
func (a ArrayFlags) Reserved() bool {
	return a&ArrayFlagCArray != 0 && a&ArrayFlagVArray != 0
}

// String implements fmt.Stringer.
func (e Encoding) String() string {
	switch e {
	case EncodingInvalid:
		return "Invalid"
	case EncodingValue8:
		return "Value8"
	case EncodingValue16:
		return "Value16"
	case EncodingValue32:
		return "Value32"
	case EncodingValue64:
		return "Value64"
	case EncodingValue128:
		return "Value128"
	case EncodingZStringChar8:
		return "ZStringChar8"
	case EncodingZStringChar16:
		return "ZStringChar16"
	case EncodingZStringChar32:
		return "ZStringChar32"
	case EncodingStringLength16Char8:
		return "StringLength16Char8"
	case EncodingStringLength16Char16:
		return "StringLength16Char16"
	case EncodingStringLength16Char32:
		return "StringLength16Char32"
	case EncodingStruct:
		return "Struct"
	default:
		return "Unknown"
	}
}

// ElementSize returns the fixed per-element byte size for Value8..Value128,
// or 0 for variable-length or complex encodings.
func (e Encoding) ElementSize() int {
	switch e {
	case EncodingValue8:
		return 1
	case EncodingValue16:
		return 2
	case EncodingValue32:
		return 4
	case EncodingValue64:
		return 8
	case EncodingValue128:
		return 16
	default:
		return 0
	}
}

// IsFixedSize reports whether every instance of e occupies ElementSize
// bytes, with no scan or length prefix required.
func (e Encoding) IsFixedSize() bool {
	return e.ElementSize() > 0
}

// CharSize returns the byte width of one character unit for the Z-string
// and length-prefixed string encodings (1, 2, or 4), or 0 if e is not a
// string encoding.
func (e Encoding) CharSize() int {
	switch e {
	case EncodingZStringChar8, EncodingStringLength16Char8:
		return 1
	case EncodingZStringChar16, EncodingStringLength16Char16:
		return 2
	case EncodingZStringChar32, EncodingStringLength16Char32:
		return 4
	default:
		return 0
	}
}

// IsZString reports whether e is one of the NUL-terminated string encodings.
func (e Encoding) IsZString() bool {
	switch e {
	case EncodingZStringChar8, EncodingZStringChar16, EncodingZStringChar32:
		return true
	default:
		return false
	}
}

// IsLength16String reports whether e is one of the u16-length-prefixed
// string encodings.
func (e Encoding) IsLength16String() bool {
	switch e {
	case EncodingStringLength16Char8, EncodingStringLength16Char16, EncodingStringLength16Char32:
		return true
	default:
		return false
	}
}

// Format names the semantic interpretation of a field. For EncodingStruct
// the low bits instead hold the struct's field count (see Format.FieldCount).
type Format uint8

const (
	formatValueMask = 0x7F
)

const (
	FormatDefault Format = iota
	FormatUnsignedInt
	FormatSignedInt
	FormatHexInt
	FormatErrno
	FormatPid
	FormatTime
	FormatBoolean
	FormatFloat
	FormatHexBytes
	FormatString8
	FormatStringUtf
	FormatStringUtfBom
	FormatStringXml
	FormatStringJson
	FormatUuid
	FormatPort
	FormatIPv4
	FormatIPv6
)

// SplitFormat masks the chain bit off a raw format byte.
func SplitFormat(raw byte) Format {
	return Format(raw & formatValueMask)
}

// FieldCount interprets this Format as a Struct's field count (valid only
// when the owning field's Encoding is EncodingStruct).
func (f Format) FieldCount() int {
	return int(f)
}

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatDefault:
		return "Default"
	case FormatUnsignedInt:
		return "UnsignedInt"
	case FormatSignedInt:
		return "SignedInt"
	case FormatHexInt:
		return "HexInt"
	case FormatErrno:
		return "Errno"
	case FormatPid:
		return "Pid"
	case FormatTime:
		return "Time"
	case FormatBoolean:
		return "Boolean"
	case FormatFloat:
		return "Float"
	case FormatHexBytes:
		return "HexBytes"
	case FormatString8:
		return "String8"
	case FormatStringUtf:
		return "StringUtf"
	case FormatStringUtfBom:
		return "StringUtfBom"
	case FormatStringXml:
		return "StringXml"
	case FormatStringJson:
		return "StringJson"
	case FormatUuid:
		return "Uuid"
	case FormatPort:
		return "Port"
	case FormatIPv4:
		return "IPv4"
	case FormatIPv6:
		return "IPv6"
	default:
		return "Unknown"
	}
}

// ExtKind identifies the kind of a header extension block.
type ExtKind uint16

const (
	ExtKindInvalid ExtKind = iota
	ExtKindMetadata
	ExtKindActivityID
	// Any other value is a kind this decoder does not recognize but must
	// tolerate and skip.
)

const (
	// extKindChainBit is the high bit of the 16-bit ExtKindAndChain field,
	// meaning another extension follows this one.
	extKindChainBit uint16 = 0x8000
)

// SplitExtKind masks the chain bit off a raw ExtKindAndChain value and
// reports whether another extension follows.
func SplitExtKind(raw uint16) (ExtKind, bool) {
	return ExtKind(raw &^ extKindChainBit), raw&extKindChainBit != 0
}

func (k ExtKind) String() string {
	switch k {
	case ExtKindInvalid:
		return "Invalid"
	case ExtKindMetadata:
		return "Metadata"
	case ExtKindActivityID:
		return "ActivityId"
	default:
		return "Unknown"
	}
}

// HeaderFlags is the first byte of an EventHeader event.
type HeaderFlags uint8

const (
	HeaderFlagPointer64    HeaderFlags = 1 << 0
	HeaderFlagLittleEndian HeaderFlags = 1 << 1
	HeaderFlagExtension    HeaderFlags = 1 << 2

	// headerFlagsKnownMask is the set of bits this decoder understands; any
	// other bit set makes the event NotSupported.
	headerFlagsKnownMask = HeaderFlagPointer64 | HeaderFlagLittleEndian | HeaderFlagExtension
)

// Known reports whether f contains only recognized bits.
func (f HeaderFlags) Known() bool {
	return f&^headerFlagsKnownMask == 0
}

func (f HeaderFlags) Pointer64() bool     { return f&HeaderFlagPointer64 != 0 }
func (f HeaderFlags) LittleEndian() bool  { return f&HeaderFlagLittleEndian != 0 }
func (f HeaderFlags) HasExtensions() bool { return f&HeaderFlagExtension != 0 }

// Opcode is the event's opcode byte; this decoder treats it as an opaque
// passthrough value (interpretation belongs to a downstream formatter).
type Opcode uint8

// Level is the event's severity/verbosity level byte.
type Level uint8

// Header byte layout constants.
const (
	HeaderSize    = 8
	ExtHeaderSize = 4

	MaxNameLength = 255

	MaxStructDepth = 8

	DefaultMoveNextLimit = 4096

	ActivityIDSize         = 16
	ActivityAndRelatedSize = 32
)
