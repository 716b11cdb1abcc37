package decoder

import "github.com/eventheader-go/eventheader/format"

// EventInfo is a snapshot of the event-identity fields captured by
// StartEvent. Name is a borrow into the caller's
// payload; it is valid only until the next mutating call on the
// Enumerator that produced it.
type EventInfo struct {
	// Name is the event name read from the Metadata extension, without
	// its NUL terminator.
	Name []byte
	// TracepointName is the name the caller passed to StartEvent.
	TracepointName string
	// ProviderNameLen is the length of the provider portion of
	// TracepointName (the prefix up to, but not including, the final '_').
	ProviderNameLen int
	// OptionsStart is the index into TracepointName where the trailing
	// Options substring begins, or len(TracepointName) if there are none.
	OptionsStart int

	// ActivityID and RelatedID are big-endian 128-bit identifiers carried
	// by an optional ActivityId extension. HasActivityID is
	// false if no such extension was present; HasRelatedID is false if
	// the extension held only 16 bytes.
	ActivityID    [16]byte
	RelatedID     [16]byte
	HasActivityID bool
	HasRelatedID  bool

	ID      uint16
	Tag     uint16
	Opcode  format.Opcode
	Level   format.Level
	Version uint8
	Keyword uint64

	LittleEndian bool
	Pointer64    bool
}

// ProviderName returns the provider portion of TracepointName: the prefix
// up to (not including) the final '_' before the level/keyword suffix.
func (ei EventInfo) ProviderName() string {
	return ei.TracepointName[:ei.ProviderNameLen]
}

// Options returns the Options substring of TracepointName, or "" if none.
func (ei EventInfo) Options() string {
	return ei.TracepointName[ei.OptionsStart:]
}

// EventNameString returns the Metadata-extension event name as a string.
// It copies Name; callers on a hot path that only need to compare bytes
// should use Name directly instead.
func (ei EventInfo) EventNameString() string {
	return string(ei.Name)
}
