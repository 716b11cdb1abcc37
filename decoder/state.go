package decoder

// State is the enumerator's outward-visible position, used to guard which
// methods may be called.
type State uint8

const (
	// StateNone means no event has been started, or the last StartEvent
	// failed. GetEventInfo and GetItemInfo are both invalid.
	StateNone State = iota
	// StateError means a MoveNext* call failed after StartEvent succeeded.
	// GetEventInfo remains valid; GetItemInfo still refers to the
	// last-yielded item.
	StateError
	// StateBeforeFirstItem is the position immediately after a successful
	// StartEvent, before the first MoveNext call.
	StateBeforeFirstItem
	// StateAfterLastItem means enumeration of the event completed
	// successfully; no more items remain.
	StateAfterLastItem
	// StateValue means the enumerator is positioned on a scalar or array
	// element value; see SubState for which kind.
	StateValue
	// StateArrayBegin means the enumerator is positioned on the start of an
	// array (of any element kind), with ArrayCount and ElementSize (if
	// fixed) already known.
	StateArrayBegin
	// StateArrayEnd means the enumerator is positioned on the end of an
	// array, mirroring the StateArrayBegin that opened it.
	StateArrayEnd
	// StateStructBegin means the enumerator is positioned on the start of a
	// struct (scalar struct field, or a struct-typed array element).
	StateStructBegin
	// StateStructEnd means the enumerator is positioned on the end of a
	// struct, mirroring the StateStructBegin that opened it.
	StateStructEnd
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateError:
		return "Error"
	case StateBeforeFirstItem:
		return "BeforeFirstItem"
	case StateAfterLastItem:
		return "AfterLastItem"
	case StateValue:
		return "Value"
	case StateArrayBegin:
		return "ArrayBegin"
	case StateArrayEnd:
		return "ArrayEnd"
	case StateStructBegin:
		return "StructBegin"
	case StateStructEnd:
		return "StructEnd"
	default:
		return "Unknown"
	}
}

// SubState refines StateValue (and tags the other states with their own
// name) into the cases MoveNext's dispatch switches on. Collapsing
// (State, condition) into one tag keeps MoveNext a single flat switch
// instead of nested branches — this is the hot path.
type SubState uint8

const (
	SubStateNone SubState = iota
	SubStateError
	SubStateBeforeFirstItem
	SubStateAfterLastItem
	// SubStateValueMetadata is MoveNextMetadata's flattened value: a
	// scalar or struct declaration visited without touching payload.
	SubStateValueMetadata
	// SubStateValueScalar is an ordinary, non-array scalar value.
	SubStateValueScalar
	// SubStateValueSimpleArrayElement is one element of a fixed-size-type
	// array; MoveNext advances it without re-parsing metadata, a fast path
	// that avoids a per-element descriptor re-read.
	SubStateValueSimpleArrayElement
	// SubStateValueComplexArrayElement is one element of a variable-size
	// (string) array; each element requires a fresh StartValue.
	SubStateValueComplexArrayElement
	SubStateArrayBegin
	SubStateArrayEnd
	SubStateStructBegin
	SubStateStructEnd
)
