// Package stack implements the enumerator's fixed-capacity frame stack.
//
// Struct nesting is bounded at 8 (format.MaxStructDepth); a dynamic
// structure here would let an adversarial event force unbounded heap
// growth. Instead the stack is a fixed [8]Frame array plus one scratch
// "top" frame kept outside the array: push copies top into arr[depth] and
// bumps depth, pop does the reverse. This keeps the hot path (read/modify
// top) free of array indexing.
package stack

import "github.com/eventheader-go/eventheader/format"

// Frame records one level of struct/array nesting: position within the
// metadata stream, the current field's descriptor, array progress, and how
// many sibling fields remain to be visited in the enclosing struct.
type Frame struct {
	// NextMetaOffset is the next unread byte in the metadata stream.
	NextMetaOffset int
	// NameOffset, NameSize bound the current field's name within metadata.
	NameOffset int
	NameSize   int
	// Encoding, ArrayFlags, Format, Tag are the current field's type
	// descriptor, preserved here so a StructEnd/ArrayEnd reported after a
	// child frame unwinds can still describe the field that opened it,
	// without the child's own field traversal having clobbered it.
	Encoding   format.Encoding
	ArrayFlags format.ArrayFlags
	Format     format.Format
	Tag        uint16
	// ArrayIndex, ArrayCount track position within an enclosing array.
	ArrayIndex int
	ArrayCount int
	// RemainingFieldCount counts fields left to yield in the enclosing
	// struct. The root frame uses 255 to mean "until metadata ends".
	RemainingFieldCount int
}

// RootRemainingFieldCount is the sentinel RemainingFieldCount for the
// implicit root "struct" that is the whole event: the root has no declared
// field count, so the enumerator instead keeps going until metadata is
// exhausted.
const RootRemainingFieldCount = 255

// Stack is a fixed-capacity (format.MaxStructDepth) stack of Frame values,
// plus the live "top" frame that Push/Pop exchange with the array.
//
// The zero value is not ready for use; call Reset before StartEvent.
type Stack struct {
	frames [format.MaxStructDepth]Frame
	top    Frame
	depth  int
}

// Reset reinitializes the stack to depth 0 with the given root frame as
// the live top frame.
func (s *Stack) Reset(root Frame) {
	s.top = root
	s.depth = 0
}

// Top returns a pointer to the live top frame for in-place mutation.
func (s *Stack) Top() *Frame {
	return &s.top
}

// Depth returns the number of frames pushed below the live top frame (0 at
// the root).
func (s *Stack) Depth() int {
	return s.depth
}

// Push saves the current top frame onto the array and installs next as the
// new live top. It reports false (and leaves the stack unchanged) if doing
// so would exceed format.MaxStructDepth, the caller's cue to fail with
// errs.ErrStackOverflow.
func (s *Stack) Push(next Frame) bool {
	if s.depth >= format.MaxStructDepth {
		return false
	}

	s.frames[s.depth] = s.top
	s.depth++
	s.top = next

	return true
}

// Pop restores the frame below the live top as the new top, reporting
// false if the stack is already at the root (depth 0) and there is
// nothing to pop.
func (s *Stack) Pop() bool {
	if s.depth == 0 {
		return false
	}

	s.depth--
	s.top = s.frames[s.depth]

	return true
}

// Empty reports whether the stack holds only the root frame.
func (s *Stack) Empty() bool {
	return s.depth == 0
}
