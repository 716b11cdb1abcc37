// Package endian provides byte-order-aware fixed-width reads over a byte
// slice.
//
// This package extends Go's standard encoding/binary package by combining
// the ByteOrder interface with the small set of additional reads an
// EventHeader field needs (signed integers, floats) into a single Reader
// value. Decoder selects a Reader once per event, from the event's own
// little-endian flag, and uses it for every field read in
// that event.
//
// # Basic usage
//
//	engine := endian.GetLittleEndianEngine()
//	r := endian.NewReader(engine)
//	v := r.Uint32(data[0:4])
//
// # Thread safety
//
// Reader is an immutable value; the same Reader may be shared across
// goroutines decoding different events.
package endian

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// EndianEngine is the byte-order contract a Reader is built from. It is
// satisfied by binary.LittleEndian and binary.BigEndian from the standard
// library.
type EndianEngine interface {
	binary.ByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host's native byte
// order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the little- or big-endian engine per littleEndian,
// matching the sense of the EventHeader flags byte's bit 1.
func GetEngine(littleEndian bool) EndianEngine {
	if littleEndian {
		return GetLittleEndianEngine()
	}

	return GetBigEndianEngine()
}

// Reader performs fixed-width reads from a byte slice using a fixed byte
// order, with no internal state beyond that order: it is constructed once
// from a from-little-endian boolean and reused for every field read.
//
// Every method requires len(b) to be at least the width being read; this is
// a precondition the caller (decoder) enforces before the call, not a
// recoverable error the Reader reports.
type Reader struct {
	engine EndianEngine
}

// NewReader returns a Reader that reads using engine.
func NewReader(engine EndianEngine) Reader {
	return Reader{engine: engine}
}

// NewReaderFromBigEndian returns a Reader for fromBigEndian's sense.
func NewReaderFromBigEndian(fromBigEndian bool) Reader {
	if fromBigEndian {
		return Reader{engine: GetBigEndianEngine()}
	}

	return Reader{engine: GetLittleEndianEngine()}
}

// Engine returns the underlying byte-order engine.
func (r Reader) Engine() EndianEngine { return r.engine }

func (r Reader) Uint16(b []byte) uint16 { return r.engine.Uint16(b) }
func (r Reader) Uint32(b []byte) uint32 { return r.engine.Uint32(b) }
func (r Reader) Uint64(b []byte) uint64 { return r.engine.Uint64(b) }

func (r Reader) Int16(b []byte) int16 { return int16(r.engine.Uint16(b)) } //nolint:gosec
func (r Reader) Int32(b []byte) int32 { return int32(r.engine.Uint32(b)) } //nolint:gosec
func (r Reader) Int64(b []byte) int64 { return int64(r.engine.Uint64(b)) } //nolint:gosec

func (r Reader) Float32(b []byte) float32 {
	return math.Float32frombits(r.engine.Uint32(b))
}

func (r Reader) Float64(b []byte) float64 {
	return math.Float64frombits(r.engine.Uint64(b))
}
