package stealth

import (
	"encoding/binary"
	"fmt"
)

// MaxBitCount is the largest number of prefix bits a BitField may cover.
const MaxBitCount = 32

// BitField is a prefix filter over the little-endian encoding of a 32-bit
// value.  The mask covers bitCount bits, eight per byte starting from the
// least significant bits of byte zero.  Raw form bits outside of the mask are
// ignored when matching.
//
// A BitField is immutable once created and safe for concurrent use.
type BitField struct {
	bitCount int
	raw      []byte
	mask     []byte
}

// PrefixByteLength returns the number of raw form bytes carried for a prefix
// of bitCount bits.  This is zero for an empty prefix and bitCount/8+1
// otherwise, capped at four.
func PrefixByteLength(bitCount int) (int, error) {
	if bitCount < 0 || bitCount > MaxBitCount {
		return 0, ErrBitCountRange
	}
	if bitCount == 0 {
		return 0, nil
	}
	n := bitCount/8 + 1
	if n > 4 {
		n = 4
	}
	return n, nil
}

// NewBitField returns a BitField covering bitCount bits of rawForm.
//
// A short rawForm is zero padded.  An over-long rawForm keeps all but its
// trailing PrefixByteLength(bitCount) bytes, which is the historical
// behavior stealth addresses were created with.  Use NewBitFieldTruncated to
// keep the leading bytes instead.
func NewBitField(rawForm []byte, bitCount int) (*BitField, error) {
	byteCount, err := PrefixByteLength(bitCount)
	if err != nil {
		return nil, err
	}

	var raw []byte
	switch {
	case len(rawForm) == byteCount:
		raw = append([]byte(nil), rawForm...)
	case len(rawForm) < byteCount:
		raw = make([]byte, byteCount)
		copy(raw, rawForm)
	default:
		raw = append([]byte(nil), rawForm[:len(rawForm)-byteCount]...)
	}

	return &BitField{
		bitCount: bitCount,
		raw:      raw,
		mask:     prefixMask(bitCount, byteCount),
	}, nil
}

// NewBitFieldTruncated is like NewBitField but an over-long rawForm keeps
// its leading PrefixByteLength(bitCount) bytes, so the raw form always has
// exactly ByteCount bytes.
func NewBitFieldTruncated(rawForm []byte, bitCount int) (*BitField, error) {
	byteCount, err := PrefixByteLength(bitCount)
	if err != nil {
		return nil, err
	}
	if len(rawForm) > byteCount {
		rawForm = rawForm[:byteCount]
	}
	return NewBitField(rawForm, bitCount)
}

// NewBitFieldFromUint32 returns a BitField built from the little-endian
// encoding of value.
func NewBitFieldFromUint32(value uint32, bitCount int) (*BitField, error) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	return NewBitField(b[:], bitCount)
}

// NewBitFieldFromUint32Truncated is like NewBitFieldFromUint32 but keeps the
// leading bytes of the encoding, so the prefix covers the low bitCount bits
// of value.
func NewBitFieldFromUint32Truncated(value uint32, bitCount int) (*BitField, error) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	return NewBitFieldTruncated(b[:], bitCount)
}

func prefixMask(bitCount, byteCount int) []byte {
	mask := make([]byte, byteCount)
	left := bitCount
	for i := range mask {
		n := left
		if n > 8 {
			n = 8
		}
		mask[i] = byte(1<<uint(n) - 1)
		left -= n
		if left == 0 {
			break
		}
	}
	return mask
}

// BitCount returns the number of bits covered by the prefix.
func (b *BitField) BitCount() int {
	return b.bitCount
}

// ByteCount returns the number of bytes the prefix occupies in an address
// payload.
func (b *BitField) ByteCount() int {
	return len(b.mask)
}

// RawForm returns a copy of the stored prefix bytes.
func (b *BitField) RawForm() []byte {
	return append([]byte(nil), b.raw...)
}

// Mask returns a copy of the prefix mask.
func (b *BitField) Mask() []byte {
	return append([]byte(nil), b.mask...)
}

// rawByte returns raw form byte i, treating missing bytes as zero.
func (b *BitField) rawByte(i int) byte {
	if i < len(b.raw) {
		return b.raw[i]
	}
	return 0
}

// payloadPrefix returns the raw form normalized to exactly ByteCount bytes.
func (b *BitField) payloadPrefix() []byte {
	p := make([]byte, len(b.mask))
	for i := range p {
		p[i] = b.rawByte(i)
	}
	return p
}

// Uint32 returns the raw form as a little-endian value, zero padded to four
// bytes.
func (b *BitField) Uint32() uint32 {
	var v [4]byte
	copy(v[:], b.raw)
	return binary.LittleEndian.Uint32(v[:])
}

// Match returns whether the masked bytes of the little-endian encoding of
// value equal the masked raw form.  An empty prefix matches every value.
func (b *BitField) Match(value uint32) bool {
	var data [4]byte
	binary.LittleEndian.PutUint32(data[:], value)
	for i, m := range b.mask {
		if data[i]&m != b.rawByte(i)&m {
			return false
		}
	}
	return true
}

// MatchMetadata returns whether the filter value carried by metadata matches
// the prefix.
func (b *BitField) MatchMetadata(metadata *Metadata) bool {
	return b.Match(metadata.BitFieldValue)
}

// String returns the prefix as its bit count and raw form in hex.
func (b *BitField) String() string {
	return fmt.Sprintf("%d:%x", b.bitCount, b.raw)
}
