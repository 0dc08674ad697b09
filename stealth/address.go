package stealth

import (
	"bytes"
	"io"

	"github.com/ltcsuite/ltcd/btcec/v2"
)

const (
	// PubKeyBytesLen is the size of a compressed public key in an address
	// payload.
	PubKeyBytesLen = btcec.PubKeyBytesLenCompressed

	// MaxSpendKeys is the largest number of spend keys an address can
	// carry.
	MaxSpendKeys = 255
)

// Address is the decoded form of a stealth address payload.  The payload
// layout is:
//
//	options (1) | scan key (33) | spend key count N (1) | spend keys (33*N) |
//	signature count (1) | prefix bit count (1) | prefix (PrefixByteLength)
//
// An Address is immutable once created.
type Address struct {
	options        byte
	scanPubKey     *btcec.PublicKey
	spendPubKeys   []*btcec.PublicKey
	signatureCount byte
	prefix         *BitField
}

// NewAddress returns a stealth address for the given keys with a zero
// options byte.  A nil prefix is the empty prefix, which matches every
// payment.
func NewAddress(scanPubKey *btcec.PublicKey, spendPubKeys []*btcec.PublicKey,
	signatureCount byte, prefix *BitField) (*Address, error) {

	return NewAddressWithOptions(0, scanPubKey, spendPubKeys,
		signatureCount, prefix)
}

// NewAddressWithOptions is like NewAddress but sets the reserved options
// byte.
func NewAddressWithOptions(options byte, scanPubKey *btcec.PublicKey,
	spendPubKeys []*btcec.PublicKey, signatureCount byte,
	prefix *BitField) (*Address, error) {

	if scanPubKey == nil {
		return nil, ErrMissingScanKey
	}
	if len(spendPubKeys) > MaxSpendKeys {
		return nil, ErrTooManySpendKeys
	}
	for _, key := range spendPubKeys {
		if key == nil {
			return nil, ErrMissingSpendKey
		}
	}
	if prefix == nil {
		prefix = &BitField{}
	}

	return &Address{
		options:        options,
		scanPubKey:     scanPubKey,
		spendPubKeys:   append([]*btcec.PublicKey(nil), spendPubKeys...),
		signatureCount: signatureCount,
		prefix:         prefix,
	}, nil
}

// Options returns the reserved options byte.  It is zero unless set with
// NewAddressWithOptions or read from a payload.
func (a *Address) Options() byte {
	return a.options
}

// ScanPubKey returns the key used to detect payments.
func (a *Address) ScanPubKey() *btcec.PublicKey {
	return a.scanPubKey
}

// SpendPubKeys returns the keys that authorize spending, in payload order.
func (a *Address) SpendPubKeys() []*btcec.PublicKey {
	return append([]*btcec.PublicKey(nil), a.spendPubKeys...)
}

// SignatureCount returns the number of spend key signatures required.
func (a *Address) SignatureCount() byte {
	return a.signatureCount
}

// Prefix returns the payment filter prefix.
func (a *Address) Prefix() *BitField {
	return a.prefix
}

// IsEqual returns whether a and other encode to the same payload.
func (a *Address) IsEqual(other *Address) bool {
	return bytes.Equal(a.Bytes(), other.Bytes())
}

// SerializeSize returns the number of bytes it would take to serialize the
// address payload.
func (a *Address) SerializeSize() int {
	return 1 + PubKeyBytesLen + 1 + PubKeyBytesLen*len(a.spendPubKeys) +
		1 + 1 + a.prefix.ByteCount()
}

// Serialize writes the address payload to w.
func (a *Address) Serialize(w io.Writer) error {
	_, err := w.Write([]byte{a.options})
	if err != nil {
		return err
	}

	_, err = w.Write(a.scanPubKey.SerializeCompressed())
	if err != nil {
		return err
	}

	_, err = w.Write([]byte{byte(len(a.spendPubKeys))})
	if err != nil {
		return err
	}
	for _, key := range a.spendPubKeys {
		if _, err = w.Write(key.SerializeCompressed()); err != nil {
			return err
		}
	}

	_, err = w.Write([]byte{a.signatureCount, byte(a.prefix.BitCount())})
	if err != nil {
		return err
	}

	_, err = w.Write(a.prefix.payloadPrefix())
	return err
}

// Bytes returns the serialized address payload.
func (a *Address) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(a.SerializeSize())
	a.Serialize(&buf)
	return buf.Bytes()
}

// payloadReader reads address fields off a payload, recording the offset of
// each field for error reporting.
type payloadReader struct {
	buf []byte
	off int
}

func (r *payloadReader) next(n int, field string) ([]byte, error) {
	if len(r.buf)-r.off < n {
		return nil, &DecodeError{
			ErrorCode: ErrTruncated,
			Field:     field,
			Offset:    r.off,
			Err:       io.ErrUnexpectedEOF,
		}
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *payloadReader) readByte(field string) (byte, error) {
	b, err := r.next(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *payloadReader) readPubKey(field string) (*btcec.PublicKey, error) {
	off := r.off
	b, err := r.next(PubKeyBytesLen, field)
	if err != nil {
		return nil, err
	}
	key, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, &DecodeError{
			ErrorCode: ErrInvalidPubKey,
			Field:     field,
			Offset:    off,
			Err:       err,
		}
	}
	return key, nil
}

// DecodePayload parses an address payload and returns the address together
// with the number of bytes consumed.  Bytes after the prefix are not read.
// Any failure is returned as a *DecodeError.
func DecodePayload(payload []byte) (*Address, int, error) {
	r := &payloadReader{buf: payload}

	options, err := r.readByte("options")
	if err != nil {
		return nil, 0, err
	}

	scanPubKey, err := r.readPubKey("scan key")
	if err != nil {
		return nil, 0, err
	}

	count, err := r.readByte("spend key count")
	if err != nil {
		return nil, 0, err
	}
	spendPubKeys := make([]*btcec.PublicKey, 0, count)
	for i := 0; i < int(count); i++ {
		key, err := r.readPubKey("spend key")
		if err != nil {
			return nil, 0, err
		}
		spendPubKeys = append(spendPubKeys, key)
	}

	signatureCount, err := r.readByte("signature count")
	if err != nil {
		return nil, 0, err
	}

	bitCountOff := r.off
	bitCount, err := r.readByte("prefix bit count")
	if err != nil {
		return nil, 0, err
	}
	byteCount, err := PrefixByteLength(int(bitCount))
	if err != nil {
		return nil, 0, &DecodeError{
			ErrorCode: ErrBitCountOutOfRange,
			Field:     "prefix bit count",
			Offset:    bitCountOff,
			Err:       err,
		}
	}
	raw, err := r.next(byteCount, "prefix")
	if err != nil {
		return nil, 0, err
	}
	prefix, err := NewBitField(raw, int(bitCount))
	if err != nil {
		return nil, 0, err
	}

	return &Address{
		options:        options,
		scanPubKey:     scanPubKey,
		spendPubKeys:   spendPubKeys,
		signatureCount: signatureCount,
		prefix:         prefix,
	}, r.off, nil
}

// ParseAddress parses an address payload, ignoring any trailing bytes.
func ParseAddress(payload []byte) (*Address, error) {
	addr, _, err := DecodePayload(payload)
	if err != nil {
		log.Debugf("Invalid stealth address payload: %v", err)
		return nil, err
	}
	return addr, nil
}

// IsValidPayload returns whether payload parses as a stealth address.
func IsValidPayload(payload []byte) bool {
	_, _, err := DecodePayload(payload)
	return err == nil
}
