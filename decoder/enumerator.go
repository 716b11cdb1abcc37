package decoder

import (
	"github.com/eventheader-go/eventheader/endian"
	"github.com/eventheader-go/eventheader/errs"
	"github.com/eventheader-go/eventheader/format"
	"github.com/eventheader-go/eventheader/internal/cache"
	"github.com/eventheader-go/eventheader/internal/stack"
)

// Enumerator is the pull-style, zero-copy, borrow-safe state machine that
// walks one EventHeader event's metadata and payload.
//
// The zero value is ready to use: call StartEvent before any other method.
// An Enumerator is a plain value with no heap allocation of its own; the
// caller may keep one per goroutine and reuse it across events via
// StartEvent or Reset.
type Enumerator struct {
	bytes  []byte
	name   string
	reader endian.Reader

	header eventHeader
	tp     tracepointName
	ext    extensionSet

	eventNameOffset int
	eventNameLen    int

	payloadStart int
	payloadEnd   int
	dataPosRaw   int

	stk stack.Stack

	state    State
	subState SubState
	lastErr  error

	moveNextLimit     uint32
	moveNextRemaining uint32

	// Descriptor of the field currently in transit: set by nextProperty (or
	// MoveNextMetadata), consumed by startValue/startArray/startStruct, and
	// retained afterward so GetItemInfo can describe the yielded item.
	curNameOffset int
	curNameLen    int
	curEncoding   format.Encoding
	curArrayFlags format.ArrayFlags
	curFormat     format.Format
	curTag        uint16

	elementSize int

	itemBytes       []byte
	itemSizeRaw     int
	reportArrayCount int

	// Scratch for a struct-typed array: the position of its (shared, visited
	// once) nested field descriptors and their count, reused to restart
	// StructBegin for each element without re-parsing metadata.
	structArrayMetaStart  int
	structArrayFieldCount int

	// Set when an ArrayBegin with arrayCount==0 over a Struct element
	// transitions straight to ArrayEnd: the next MoveNext call must still
	// walk (and skip) the struct's descriptors before resuming NextProperty,
	// since no element visited them.
	pendingStructArraySkip bool

	// lastPoppedMetaEnd is the metadata offset just past a struct's field
	// descriptors, captured at Pop time so the StructEnd dispatch can fold
	// it into the parent's NextMetaOffset once an array of structs finishes.
	lastPoppedMetaEnd int

	// defaultMoveNextLimit is used by StartEvent and Reset when called with limit==0;
	// set by NewWithOptions, otherwise format.DefaultMoveNextLimit.
	defaultMoveNextLimit uint32

	// layoutCache, if set by NewWithOptions, lets StartEvent skip the event
	// name scan for metadata bytes it has already seen.
	layoutCache *cache.Layouts
}

// New returns a ready-to-use Enumerator.
func New() *Enumerator { return &Enumerator{} }

// StartEvent parses name and the event header at the start of data,
// locates the Metadata extension, and resets traversal to BeforeFirstItem.
// It returns false (leaving state None) if the input is malformed; inspect
// LastError for the cause.
func (e *Enumerator) StartEvent(name string, data []byte, moveNextLimit uint32) bool {
	defaultLimit := e.defaultMoveNextLimit
	layoutCache := e.layoutCache
	*e = Enumerator{}
	e.defaultMoveNextLimit = defaultLimit
	e.layoutCache = layoutCache
	e.name = name

	if moveNextLimit == 0 {
		if defaultLimit != 0 {
			moveNextLimit = defaultLimit
		} else {
			moveNextLimit = format.DefaultMoveNextLimit
		}
	}

	if len(data) < format.HeaderSize {
		e.lastErr = errs.ErrBufferTooSmall
		return false
	}
	if len(name) > format.MaxNameLength {
		e.lastErr = errs.ErrNameTooLong
		return false
	}

	h, r, err := parseEventHeader(data)
	if err != nil {
		e.lastErr = err
		return false
	}

	tp, err := parseTracepointName(name)
	if err != nil {
		e.lastErr = err
		return false
	}
	if tp.Level != h.Level {
		e.lastErr = errs.ErrLevelMismatch
		return false
	}

	ext, payloadStart, err := parseExtensions(data, r, format.HeaderSize, h.Flags.HasExtensions())
	if err != nil {
		e.lastErr = err
		return false
	}
	if !ext.HasMetadata {
		e.lastErr = errs.ErrMissingMetadata
		return false
	}

	nameOffset, nameLen, fieldsStart, err := e.resolveEventName(data, ext)
	if err != nil {
		e.lastErr = err
		return false
	}

	e.bytes = data
	e.reader = r
	e.header = h
	e.tp = tp
	e.ext = ext
	e.eventNameOffset = nameOffset
	e.eventNameLen = nameLen
	e.payloadStart = payloadStart
	e.payloadEnd = len(data)
	e.dataPosRaw = payloadStart

	e.stk.Reset(stack.Frame{
		NextMetaOffset:      fieldsStart,
		RemainingFieldCount: stack.RootRemainingFieldCount,
	})

	e.moveNextLimit = moveNextLimit
	e.moveNextRemaining = moveNextLimit
	e.state = StateBeforeFirstItem
	e.subState = SubStateBeforeFirstItem
	return true
}

// resolveEventName returns the event name span and field-descriptors start
// offset within data's Metadata extension, consulting e.layoutCache first
// when set. A cache hit skips the NUL-terminator scan readEventName would
// otherwise perform; a miss falls through to it and stores the result.
func (e *Enumerator) resolveEventName(data []byte, ext extensionSet) (nameOffset, nameLen, fieldsStart int, err error) {
	if e.layoutCache == nil {
		return readEventName(data, ext)
	}

	key := cache.Hash(data[ext.MetaBegin:ext.MetaEnd])
	if layout, ok := e.layoutCache.Lookup(key); ok {
		return ext.MetaBegin, layout.NameLen, ext.MetaBegin + layout.FieldsStart, nil
	}

	nameOffset, nameLen, fieldsStart, err = readEventName(data, ext)
	if err != nil {
		return 0, 0, 0, err
	}
	e.layoutCache.Store(key, cache.Layout{
		NameLen:     nameLen,
		FieldsStart: fieldsStart - ext.MetaBegin,
	})
	return nameOffset, nameLen, fieldsStart, nil
}

// Reset restarts traversal of the event already loaded by StartEvent, with
// a fresh moveNextLimit; a limit of 0 selects the same default StartEvent
// uses. It returns false if no event is loaded.
func (e *Enumerator) Reset(moveNextLimit uint32) bool {
	if e.state == StateNone {
		return false
	}

	if moveNextLimit == 0 {
		if e.defaultMoveNextLimit != 0 {
			moveNextLimit = e.defaultMoveNextLimit
		} else {
			moveNextLimit = format.DefaultMoveNextLimit
		}
	}

	e.dataPosRaw = e.payloadStart
	e.stk.Reset(stack.Frame{
		NextMetaOffset:      e.eventNameOffset + e.eventNameLen + 1,
		RemainingFieldCount: stack.RootRemainingFieldCount,
	})
	e.moveNextLimit = moveNextLimit
	e.moveNextRemaining = moveNextLimit
	e.itemBytes = nil
	e.lastErr = nil
	e.pendingStructArraySkip = false
	e.state = StateBeforeFirstItem
	e.subState = SubStateBeforeFirstItem
	return true
}

// Clear discards the loaded event (dropping its reference to the event
// buffer, so the buffer can be garbage collected even if this Enumerator is
// kept around, e.g. in a Pool) and returns State to StateNone. Construction
// options set via NewWithOptions survive Clear, the same way they survive
// StartEvent.
func (e *Enumerator) Clear() {
	defaultLimit := e.defaultMoveNextLimit
	layoutCache := e.layoutCache
	*e = Enumerator{}
	e.defaultMoveNextLimit = defaultLimit
	e.layoutCache = layoutCache
}

// State returns the current observable state.
func (e *Enumerator) State() State { return e.state }

// LastError returns the cause of the most recent failure, or nil.
func (e *Enumerator) LastError() error { return e.lastErr }

// RawDataPosition returns the unconsumed tail of the payload from the
// current cursor.
func (e *Enumerator) RawDataPosition() []byte {
	return e.bytes[e.dataPosRaw:e.payloadEnd]
}

// GetEventInfo returns a snapshot of the event's identity fields. Valid
// whenever State is not StateNone.
func (e *Enumerator) GetEventInfo() EventInfo {
	return EventInfo{
		Name:            e.bytes[e.eventNameOffset : e.eventNameOffset+e.eventNameLen],
		TracepointName:  e.name,
		ProviderNameLen: e.tp.ProviderLen,
		OptionsStart:    e.tp.OptionsStart,
		ActivityID:      e.ext.ActivityID,
		RelatedID:       e.ext.RelatedID,
		HasActivityID:   e.ext.HasActivityID,
		HasRelatedID:    e.ext.HasRelatedID,
		ID:              e.header.ID,
		Tag:             e.header.Tag,
		Opcode:          e.header.Opcode,
		Level:           e.header.Level,
		Version:         e.header.Version,
		Keyword:         e.tp.Keyword,
		LittleEndian:    e.header.Flags.LittleEndian(),
		Pointer64:       e.header.Flags.Pointer64(),
	}
}

// GetItemInfo returns the item at the current position. Valid whenever
// State is greater than StateBeforeFirstItem.
func (e *Enumerator) GetItemInfo() Item {
	return Item{
		Name:        e.bytes[e.curNameOffset : e.curNameOffset+e.curNameLen],
		Bytes:       e.itemBytes,
		Encoding:    e.curEncoding,
		ArrayFlags:  e.curArrayFlags,
		Format:      e.curFormat,
		Tag:         e.curTag,
		ElementSize: e.elementSize,
		ArrayCount:  e.reportArrayCount,
		reader:      e.reader,
	}
}

func (e *Enumerator) fail(err error) bool {
	e.state = StateError
	e.subState = SubStateError
	e.lastErr = err
	return false
}

// advance converts a helper's error result into MoveNext's bool return,
// entering Error on failure.
func (e *Enumerator) advance(err error) bool {
	if err != nil {
		return e.fail(err)
	}
	return true
}

func reportCount(arrayCount int) int {
	if arrayCount == 0 {
		return 1
	}
	return arrayCount
}

// MoveNext advances to the next item. The call that reaches
// StateAfterLastItem returns true; a call made once enumeration has ended,
// or one that fails, returns false. Distinguish the cases via
// State/LastError.
func (e *Enumerator) MoveNext() bool {
	switch e.state {
	case StateNone, StateError, StateAfterLastItem:
		return false
	}

	if e.moveNextRemaining == 0 {
		return e.advance(errs.ErrMoveNextLimit)
	}
	e.moveNextRemaining--

	switch e.subState {
	case SubStateBeforeFirstItem, SubStateStructBegin:
		return e.advance(e.nextProperty())

	case SubStateValueScalar:
		e.dataPosRaw += e.itemSizeRaw
		return e.advance(e.nextProperty())

	case SubStateValueSimpleArrayElement:
		e.dataPosRaw += e.itemSizeRaw
		top := e.stk.Top()
		top.ArrayIndex++
		if top.ArrayIndex >= top.ArrayCount {
			e.emitArrayEnd(top.ArrayCount)
			return true
		}
		e.itemBytes = e.bytes[e.dataPosRaw : e.dataPosRaw+e.itemSizeRaw]
		return true

	case SubStateValueComplexArrayElement:
		e.dataPosRaw += e.itemSizeRaw
		top := e.stk.Top()
		top.ArrayIndex++
		if top.ArrayIndex >= top.ArrayCount {
			e.emitArrayEnd(top.ArrayCount)
			return true
		}
		return e.advance(e.startValue(SubStateValueComplexArrayElement))

	case SubStateArrayBegin:
		top := e.stk.Top()
		if top.ArrayCount == 0 {
			if e.curEncoding == format.EncodingStruct {
				e.pendingStructArraySkip = true
			}
			e.emitArrayEnd(0)
			return true
		}
		if e.curEncoding == format.EncodingStruct {
			return e.advance(e.startStruct(e.structArrayFieldCount, e.structArrayMetaStart))
		}
		if e.curEncoding.IsFixedSize() {
			e.itemSizeRaw = e.elementSize
			e.itemBytes = e.bytes[e.dataPosRaw : e.dataPosRaw+e.elementSize]
			e.state, e.subState = StateValue, SubStateValueSimpleArrayElement
			return true
		}
		return e.advance(e.startValue(SubStateValueComplexArrayElement))

	case SubStateArrayEnd:
		if e.pendingStructArraySkip {
			e.pendingStructArraySkip = false
			next, err := e.skipStructMetadata(e.structArrayMetaStart, e.structArrayFieldCount)
			if err != nil {
				return e.advance(err)
			}
			e.stk.Top().NextMetaOffset = next
		}
		return e.advance(e.nextProperty())

	case SubStateStructEnd:
		top := e.stk.Top()
		top.ArrayIndex++
		if top.ArrayIndex < top.ArrayCount {
			return e.advance(e.startStruct(e.structArrayFieldCount, e.structArrayMetaStart))
		}
		if top.ArrayCount > 0 {
			top.NextMetaOffset = e.lastPoppedMetaEnd
			e.emitArrayEnd(top.ArrayCount)
			return true
		}
		return e.advance(e.nextProperty())

	default:
		return false
	}
}

// MoveNextSibling behaves like MoveNext but skips over the children of a
// container item, landing on the next item at the same nesting depth.
func (e *Enumerator) MoveNextSibling() bool {
	depth := 0

	for {
		switch e.state {
		case StateNone, StateError, StateAfterLastItem:
			return false
		}

		if e.subState == SubStateArrayBegin && e.curEncoding != format.EncodingStruct &&
			e.curEncoding.IsFixedSize() && e.moveNextRemaining >= 1 {
			top := e.stk.Top()
			e.moveNextRemaining--
			e.dataPosRaw += e.elementSize * top.ArrayCount
			if !e.advance(e.nextProperty()) {
				return false
			}
			if depth == 0 {
				return true
			}
			continue
		}

		opening := e.subState == SubStateArrayBegin || e.subState == SubStateStructBegin
		closing := e.subState == SubStateArrayEnd || e.subState == SubStateStructEnd
		if opening {
			depth++
		}

		if !e.MoveNext() {
			return false
		}

		if closing {
			depth--
		}
		if depth <= 0 {
			return true
		}
	}
}

// MoveNextMetadata traverses metadata only, emitting a flattened view where
// arrays appear as a single ArrayBegin (never followed by ArrayEnd) and
// structs appear as a single Value with encoding Struct; it never descends
// into array or struct contents. The payload cursor is left at the end of
// the payload, so yielded items carry no bytes.
func (e *Enumerator) MoveNextMetadata() bool {
	switch e.state {
	case StateNone, StateError, StateAfterLastItem:
		return false
	}

	if e.moveNextRemaining == 0 {
		return e.advance(errs.ErrMoveNextLimit)
	}
	e.moveNextRemaining--

	top := e.stk.Top()
	if top.NextMetaOffset >= e.ext.MetaEnd {
		e.emitAfterLastItem()
		return true
	}

	ft, next, err := readFieldNameAndType(e.bytes[:e.ext.MetaEnd], top.NextMetaOffset, e.reader)
	if err != nil {
		return e.advance(err)
	}
	top.NextMetaOffset = next

	e.curNameOffset = ft.NameOffset
	e.curNameLen = ft.NameLen
	e.curEncoding = ft.Encoding
	e.curArrayFlags = ft.ArrayFlags
	e.curFormat = ft.Format
	e.curTag = ft.Tag
	e.itemBytes = nil
	e.dataPosRaw = e.payloadEnd

	if ft.ArrayFlags.Reserved() {
		return e.advance(errs.ErrReservedArrayFlags)
	}

	isStruct := ft.Encoding == format.EncodingStruct
	structFieldCount := 0
	if isStruct {
		structFieldCount = ft.Format.FieldCount()
		if structFieldCount == 0 {
			return e.advance(errs.ErrEmptyStruct)
		}
	}
	e.elementSize = ft.Encoding.ElementSize()

	if !ft.ArrayFlags.IsArray() {
		e.reportArrayCount = 1
		if isStruct {
			skipped, err := e.skipStructMetadata(top.NextMetaOffset, structFieldCount)
			if err != nil {
				return e.advance(err)
			}
			top.NextMetaOffset = skipped
		}
		e.state, e.subState = StateValue, SubStateValueMetadata
		return true
	}

	var count int
	if ft.ArrayFlags == format.ArrayFlagVArray {
		count = 0
	} else {
		if top.NextMetaOffset+2 > e.ext.MetaEnd {
			return e.advance(errs.ErrTruncatedArrayCount)
		}
		count = int(e.reader.Uint16(e.bytes[top.NextMetaOffset : top.NextMetaOffset+2]))
		top.NextMetaOffset += 2
		if count == 0 {
			return e.advance(errs.ErrZeroLengthArray)
		}
	}

	if isStruct {
		skipped, err := e.skipStructMetadata(top.NextMetaOffset, structFieldCount)
		if err != nil {
			return e.advance(err)
		}
		top.NextMetaOffset = skipped
	}

	e.reportArrayCount = count
	e.state, e.subState = StateArrayBegin, SubStateArrayBegin
	return true
}

// nextProperty is the field loop: start the next sibling field of the
// current container (a struct body, or the implicit root), or close it.
func (e *Enumerator) nextProperty() error {
	top := e.stk.Top()

	if top.RemainingFieldCount > 0 && top.NextMetaOffset < e.ext.MetaEnd {
		ft, next, err := readFieldNameAndType(e.bytes[:e.ext.MetaEnd], top.NextMetaOffset, e.reader)
		if err != nil {
			return err
		}

		if top.RemainingFieldCount != stack.RootRemainingFieldCount {
			top.RemainingFieldCount--
		}
		top.NextMetaOffset = next
		top.NameOffset = ft.NameOffset
		top.NameSize = ft.NameLen
		top.Encoding = ft.Encoding
		top.ArrayFlags = ft.ArrayFlags
		top.Format = ft.Format
		top.Tag = ft.Tag

		e.curNameOffset = ft.NameOffset
		e.curNameLen = ft.NameLen
		e.curEncoding = ft.Encoding
		e.curArrayFlags = ft.ArrayFlags
		e.curFormat = ft.Format
		e.curTag = ft.Tag

		if ft.ArrayFlags.Reserved() {
			return errs.ErrReservedArrayFlags
		}

		if !ft.ArrayFlags.IsArray() {
			top.ArrayIndex, top.ArrayCount = 0, 0
			if ft.Encoding == format.EncodingStruct {
				fieldCount := ft.Format.FieldCount()
				if fieldCount == 0 {
					return errs.ErrEmptyStruct
				}
				e.reportArrayCount = 1
				return e.startStruct(fieldCount, top.NextMetaOffset)
			}
			e.reportArrayCount = 1
			return e.startValue(SubStateValueScalar)
		}

		var count int
		if ft.ArrayFlags == format.ArrayFlagVArray {
			if e.payloadEnd-e.dataPosRaw < 2 {
				return errs.ErrTruncatedArrayCount
			}
			count = int(e.reader.Uint16(e.bytes[e.dataPosRaw : e.dataPosRaw+2]))
			e.dataPosRaw += 2
		} else {
			if top.NextMetaOffset+2 > e.ext.MetaEnd {
				return errs.ErrTruncatedArrayCount
			}
			count = int(e.reader.Uint16(e.bytes[top.NextMetaOffset : top.NextMetaOffset+2]))
			top.NextMetaOffset += 2
			if count == 0 {
				return errs.ErrZeroLengthArray
			}
		}

		return e.startArray(count, top.NextMetaOffset)
	}

	if !e.stk.Empty() {
		childEnd := e.stk.Top().NextMetaOffset
		e.stk.Pop()
		e.lastPoppedMetaEnd = childEnd

		parent := e.stk.Top()
		e.curNameOffset = parent.NameOffset
		e.curNameLen = parent.NameSize
		e.curEncoding = parent.Encoding
		e.curArrayFlags = parent.ArrayFlags
		e.curFormat = parent.Format
		e.curTag = parent.Tag

		e.emitStructEnd(reportCount(parent.ArrayCount))
		return nil
	}

	if top.NextMetaOffset < e.ext.MetaEnd {
		return errs.ErrTrailingMetadata
	}

	e.emitAfterLastItem()
	return nil
}

// startStruct pushes a new frame for a struct body (fieldCount fields,
// starting at nestedMetaStart) and emits StructBegin. It reports
// StackOverflow if the fixed-capacity stack is already full.
func (e *Enumerator) startStruct(fieldCount, nestedMetaStart int) error {
	if !e.stk.Push(stack.Frame{
		NextMetaOffset:      nestedMetaStart,
		RemainingFieldCount: fieldCount,
	}) {
		return errs.ErrStackOverflow
	}
	e.itemBytes = nil
	e.elementSize = 0
	e.state, e.subState = StateStructBegin, SubStateStructBegin
	return nil
}

// startValue computes the cooked/raw extents of a scalar value at the
// current payload cursor, per the current field's encoding, and reports it
// under the given substate.
func (e *Enumerator) startValue(sub SubState) error {
	raw := e.bytes[e.dataPosRaw:e.payloadEnd]

	switch e.curEncoding {
	case format.EncodingValue8, format.EncodingValue16, format.EncodingValue32,
		format.EncodingValue64, format.EncodingValue128:
		size := e.curEncoding.ElementSize()
		if len(raw) < size {
			return errs.ErrTruncatedPayload
		}
		e.itemSizeRaw = size
		e.itemBytes = raw[:size]

	case format.EncodingZStringChar8, format.EncodingZStringChar16, format.EncodingZStringChar32:
		stride := e.curEncoding.CharSize()
		n := 0
		for n+stride <= len(raw) {
			allZero := true
			for k := 0; k < stride; k++ {
				if raw[n+k] != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				break
			}
			n += stride
		}
		if n+stride <= len(raw) {
			e.itemBytes = raw[:n]
			e.itemSizeRaw = n + stride
		} else {
			e.itemBytes = raw
			e.itemSizeRaw = len(raw)
		}

	case format.EncodingStringLength16Char8, format.EncodingStringLength16Char16, format.EncodingStringLength16Char32:
		if len(raw) < 2 {
			return errs.ErrTruncatedPayload
		}
		length := int(e.reader.Uint16(raw[:2]))
		byteLen := length * e.curEncoding.CharSize()
		if len(raw)-2 < byteLen {
			return errs.ErrTruncatedPayload
		}
		e.itemBytes = raw[2 : 2+byteLen]
		e.itemSizeRaw = 2 + byteLen

	default:
		return errs.ErrUnsupportedEncoding
	}

	e.elementSize = e.curEncoding.ElementSize()
	e.state, e.subState = StateValue, sub
	return nil
}

// startArray resolves an array field's element kind, performs the bulk
// bounds check for fixed-size elements, and emits ArrayBegin. count==0 is
// still emitted as ArrayBegin; the transition to ArrayEnd happens on the
// following MoveNext call.
func (e *Enumerator) startArray(count, metaPos int) error {
	top := e.stk.Top()
	top.NextMetaOffset = metaPos
	top.ArrayCount = count
	top.ArrayIndex = 0
	e.reportArrayCount = count

	switch {
	case e.curEncoding == format.EncodingStruct:
		fieldCount := e.curFormat.FieldCount()
		if fieldCount == 0 {
			return errs.ErrEmptyStruct
		}
		e.structArrayFieldCount = fieldCount
		e.structArrayMetaStart = metaPos
		e.elementSize = 0
		e.itemBytes = nil

	case e.curEncoding.IsFixedSize():
		size := e.curEncoding.ElementSize()
		e.elementSize = size
		bulk := size * count
		if bulk > e.payloadEnd-e.dataPosRaw {
			return errs.ErrTruncatedPayload
		}
		e.itemBytes = e.bytes[e.dataPosRaw : e.dataPosRaw+bulk]

	default:
		e.elementSize = 0
		e.itemBytes = nil
	}

	e.state, e.subState = StateArrayBegin, SubStateArrayBegin
	return nil
}

// skipStructMetadata walks fieldCount field descriptors starting at pos,
// flattening nested structs into the same counted loop (a nested struct
// contributes its own field count to the remaining total rather than
// recursing), and returns the offset just past them. Used when an array of
// structs has zero elements, so no element visited the shared descriptors.
func (e *Enumerator) skipStructMetadata(pos, fieldCount int) (int, error) {
	meta := e.bytes[:e.ext.MetaEnd]
	remaining := fieldCount

	for remaining > 0 {
		ft, next, err := readFieldNameAndType(meta, pos, e.reader)
		if err != nil {
			return 0, err
		}
		pos = next
		remaining--

		if ft.ArrayFlags.Reserved() {
			return 0, errs.ErrReservedArrayFlags
		}
		if ft.ArrayFlags == format.ArrayFlagCArray {
			if pos+2 > len(meta) {
				return 0, errs.ErrTruncatedArrayCount
			}
			pos += 2
		}
		if ft.Encoding == format.EncodingStruct {
			nested := ft.Format.FieldCount()
			if nested == 0 {
				return 0, errs.ErrEmptyStruct
			}
			remaining += nested
		}
	}

	return pos, nil
}

func (e *Enumerator) emitStructEnd(arrayCount int) {
	e.itemBytes = nil
	e.elementSize = 0
	e.reportArrayCount = arrayCount
	e.state, e.subState = StateStructEnd, SubStateStructEnd
}

func (e *Enumerator) emitArrayEnd(arrayCount int) {
	e.itemBytes = nil
	e.elementSize = 0
	e.reportArrayCount = arrayCount
	e.state, e.subState = StateArrayEnd, SubStateArrayEnd
}

func (e *Enumerator) emitAfterLastItem() {
	e.itemBytes = nil
	e.state, e.subState = StateAfterLastItem, SubStateAfterLastItem
}
