package decoder

import (
	"github.com/eventheader-go/eventheader/endian"
	"github.com/eventheader-go/eventheader/errs"
	"github.com/eventheader-go/eventheader/format"
)

// eventHeader is the parsed 8-byte EventHeader prefix.
type eventHeader struct {
	Flags   format.HeaderFlags
	Version uint8
	ID      uint16
	Tag     uint16
	Opcode  format.Opcode
	Level   format.Level
}

// parseEventHeader reads the fixed 8-byte prefix and returns a Reader
// selected by its little-endian bit, for every later read of this event.
func parseEventHeader(b []byte) (eventHeader, endian.Reader, error) {
	if len(b) < format.HeaderSize {
		return eventHeader{}, endian.Reader{}, errs.ErrBufferTooSmall
	}

	flags := format.HeaderFlags(b[0])
	if !flags.Known() {
		return eventHeader{}, endian.Reader{}, errs.ErrUnsupportedFlags
	}

	r := endian.NewReader(endian.GetEngine(flags.LittleEndian()))
	h := eventHeader{
		Flags:   flags,
		Version: b[1],
		ID:      r.Uint16(b[2:4]),
		Tag:     r.Uint16(b[4:6]),
		Opcode:  format.Opcode(b[6]),
		Level:   format.Level(b[7]),
	}
	return h, r, nil
}

// extensionSet is the accumulated effect of walking the header's extension
// chain: the Metadata extension's span, plus an
// optional activity/related identifier pair.
type extensionSet struct {
	MetaBegin   int
	MetaEnd     int
	HasMetadata bool

	ActivityID    [16]byte
	RelatedID     [16]byte
	HasActivityID bool
	HasRelatedID  bool
}

// parseExtensions walks the extension chain starting at pos, the offset
// immediately after the 8-byte header. It returns the accumulated
// extensionSet and the offset where payload begins: the end of the chain,
// or pos unchanged if hasExtensions is false.
func parseExtensions(b []byte, r endian.Reader, pos int, hasExtensions bool) (extensionSet, int, error) {
	var set extensionSet
	if !hasExtensions {
		return set, pos, nil
	}

	for {
		if pos+format.ExtHeaderSize > len(b) {
			return extensionSet{}, 0, errs.ErrTruncatedExtension
		}

		extSize := int(r.Uint16(b[pos : pos+2]))
		extKindAndChain := r.Uint16(b[pos+2 : pos+4])
		kind, chain := format.SplitExtKind(extKindAndChain)

		payloadStart := pos + format.ExtHeaderSize
		if payloadStart+extSize > len(b) {
			return extensionSet{}, 0, errs.ErrTruncatedExtension
		}

		switch kind {
		case format.ExtKindInvalid:
			return extensionSet{}, 0, errs.ErrReservedExtKind
		case format.ExtKindMetadata:
			if set.HasMetadata {
				return extensionSet{}, 0, errs.ErrDuplicateMetadata
			}
			set.HasMetadata = true
			set.MetaBegin = payloadStart
			set.MetaEnd = payloadStart + extSize
		case format.ExtKindActivityID:
			if set.HasActivityID {
				return extensionSet{}, 0, errs.ErrDuplicateActivityID
			}
			if extSize != format.ActivityIDSize && extSize != format.ActivityAndRelatedSize {
				return extensionSet{}, 0, errs.ErrInvalidActivitySize
			}
			set.HasActivityID = true
			copy(set.ActivityID[:], b[payloadStart:payloadStart+format.ActivityIDSize])
			if extSize == format.ActivityAndRelatedSize {
				set.HasRelatedID = true
				copy(set.RelatedID[:], b[payloadStart+format.ActivityIDSize:payloadStart+format.ActivityAndRelatedSize])
			}
		default:
			// Unknown, nonzero kind: tolerated and skipped.
		}

		pos = payloadStart + extSize
		if !chain {
			break
		}
	}

	return set, pos, nil
}

// readEventName scans the Metadata extension payload for its NUL
// terminator and returns the event name span plus the offset of the first
// field descriptor that follows it.
func readEventName(b []byte, set extensionSet) (nameOffset, nameLen, fieldsStart int, err error) {
	for i := set.MetaBegin; i < set.MetaEnd; i++ {
		if b[i] == 0 {
			return set.MetaBegin, i - set.MetaBegin, i + 1, nil
		}
	}
	return 0, 0, 0, errs.ErrUnterminatedName
}

// fieldType is the (name, encoding, array-flags, format, tag) tuple C2
// parses from one field descriptor in the metadata stream.
type fieldType struct {
	NameOffset int
	NameLen    int
	Encoding   format.Encoding
	ArrayFlags format.ArrayFlags
	Format     format.Format
	Tag        uint16
}

// readFieldNameAndType parses one field descriptor from meta starting at
// pos and returns the parsed descriptor plus the offset of the byte
// following it. r is used only if a tag is present, since
// the tag is the lone multi-byte, endian-sensitive value in a descriptor.
func readFieldNameAndType(meta []byte, pos int, r endian.Reader) (fieldType, int, error) {
	nameOffset := pos
	nameLen := -1
	for i := pos; i < len(meta); i++ {
		if meta[i] == 0 {
			nameLen = i - pos
			pos = i + 1
			break
		}
	}
	if nameLen < 0 {
		return fieldType{}, 0, errs.ErrUnterminatedName
	}
	if pos >= len(meta) {
		return fieldType{}, 0, errs.ErrTruncatedType
	}

	encodingRaw := meta[pos]
	pos++
	enc, arr := format.SplitEncoding(encodingRaw)

	var fmtByte byte
	var tag uint16
	if format.HasChain(encodingRaw) {
		if pos >= len(meta) {
			return fieldType{}, 0, errs.ErrTruncatedType
		}
		fmtByte = meta[pos]
		pos++

		if format.HasChain(fmtByte) {
			if len(meta)-pos < 2 {
				return fieldType{}, 0, errs.ErrTruncatedType
			}
			tag = r.Uint16(meta[pos : pos+2])
			pos += 2
		}
	}

	return fieldType{
		NameOffset: nameOffset,
		NameLen:    nameLen,
		Encoding:   enc,
		ArrayFlags: arr,
		Format:     format.SplitFormat(fmtByte),
		Tag:        tag,
	}, pos, nil
}

// tracepointName is the parsed Provider_L{level}K{keyword}[Options] name
//.
type tracepointName struct {
	ProviderLen  int
	Level        format.Level
	Keyword      uint64
	OptionsStart int
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexDigitValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'f':
		return uint64(c-'a') + 10
	default:
		return uint64(c-'A') + 10
	}
}

func isUpperASCII(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLowerOrDigit(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// parseHexRun reads consecutive hex digits from s starting at i, folding
// them into a uint64 (overflow wraps, mirroring the u64/u8 truncation the
// source's own hex parse performs). It returns the offset just past the
// last digit consumed; i itself if no digit was present.
func parseHexRun(s string, i int) (uint64, int) {
	var v uint64
	start := i
	for i < len(s) && isHexDigit(s[i]) {
		v = v<<4 | hexDigitValue(s[i])
		i++
	}
	if i == start {
		return 0, start
	}
	return v, i
}

// parseTracepointName parses name against the grammar
// Provider_L{level-hex}K{keyword-hex}[Options], where Options is zero or
// more attributes of the form [A-Z][0-9a-z]*.
func parseTracepointName(name string) (tracepointName, error) {
	underscore := -1
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '_' {
			underscore = i
			break
		}
	}
	if underscore < 0 || underscore+1 >= len(name) {
		return tracepointName{}, errs.ErrMalformedName
	}

	i := underscore + 1
	if name[i] != 'L' {
		return tracepointName{}, errs.ErrMalformedName
	}
	i++

	levelVal, next := parseHexRun(name, i)
	if next == i || levelVal > 0xFF {
		return tracepointName{}, errs.ErrMalformedName
	}
	i = next

	if i >= len(name) || name[i] != 'K' {
		return tracepointName{}, errs.ErrMalformedName
	}
	i++

	keyword, next := parseHexRun(name, i)
	if next == i {
		return tracepointName{}, errs.ErrMalformedName
	}
	i = next

	optionsStart := i
	for i < len(name) {
		if !isUpperASCII(name[i]) {
			return tracepointName{}, errs.ErrMalformedName
		}
		i++
		for i < len(name) && isLowerOrDigit(name[i]) {
			i++
		}
	}

	return tracepointName{
		ProviderLen:  underscore,
		Level:        format.Level(levelVal),
		Keyword:      keyword,
		OptionsStart: optionsStart,
	}, nil
}
