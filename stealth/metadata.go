package stealth

import (
	"encoding/binary"
	"math"

	"github.com/ltcsuite/ltcd/btcec/v2"
	"github.com/ltcsuite/ltcd/chaincfg/chainhash"
	"github.com/ltcsuite/ltcd/txscript"
)

const (
	// MetadataVersion is the version byte leading stealth metadata.
	MetadataVersion = 6

	// metadataLen is the size of the data pushed by a metadata script:
	// version, nonce and compressed ephemeral key.
	metadataLen = 1 + 4 + PubKeyBytesLen
)

// Metadata is the stealth data carried in a null data output ahead of a
// stealth payment output.
type Metadata struct {
	Nonce        uint32
	EphemeralKey *btcec.PublicKey

	// Script is the full OP_RETURN script the metadata was read from.
	Script []byte

	// BitFieldValue is the value matched against address prefixes.  It is
	// the first four bytes, little-endian, of the double SHA256 of the
	// pushed data.
	BitFieldValue uint32
}

func metadataPayload(ephemeralKey *btcec.PublicKey, nonce uint32) []byte {
	data := make([]byte, metadataLen)
	data[0] = MetadataVersion
	binary.BigEndian.PutUint32(data[1:5], nonce)
	copy(data[5:], ephemeralKey.SerializeCompressed())
	return data
}

func bitFieldValue(data []byte) uint32 {
	return binary.LittleEndian.Uint32(chainhash.DoubleHashB(data)[:4])
}

// NewMetadata returns the metadata for an ephemeral key and nonce.
func NewMetadata(ephemeral *btcec.PrivateKey, nonce uint32) (*Metadata, error) {
	pub := ephemeral.PubKey()
	data := metadataPayload(pub, nonce)
	script, err := txscript.NullDataScript(data)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Nonce:         nonce,
		EphemeralKey:  pub,
		Script:        script,
		BitFieldValue: bitFieldValue(data),
	}, nil
}

// CreateMetadata searches nonces from zero upward for metadata whose filter
// value matches prefix.  A nil prefix accepts the first nonce.
func CreateMetadata(ephemeral *btcec.PrivateKey, prefix *BitField) (*Metadata, error) {
	data := metadataPayload(ephemeral.PubKey(), 0)
	for nonce := uint32(0); ; nonce++ {
		binary.BigEndian.PutUint32(data[1:5], nonce)
		if prefix == nil || prefix.Match(bitFieldValue(data)) {
			log.Tracef("Found stealth metadata nonce %d for prefix %v",
				nonce, prefix)
			return NewMetadata(ephemeral, nonce)
		}
		if nonce == math.MaxUint32 {
			return nil, ErrNoNonce
		}
	}
}

// ParseMetadata recovers stealth metadata from an output script.  It returns
// false unless the script is OP_RETURN followed by a single push of a
// version 6 payload holding a valid ephemeral key.
func ParseMetadata(pkScript []byte) (*Metadata, bool) {
	tokenizer := txscript.MakeScriptTokenizer(0, pkScript)
	if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_RETURN {
		return nil, false
	}
	if !tokenizer.Next() {
		return nil, false
	}
	data := tokenizer.Data()
	if len(data) != metadataLen || !tokenizer.Done() || tokenizer.Err() != nil {
		return nil, false
	}
	if data[0] != MetadataVersion {
		return nil, false
	}

	key, err := btcec.ParsePubKey(data[5:])
	if err != nil {
		return nil, false
	}

	return &Metadata{
		Nonce:         binary.BigEndian.Uint32(data[1:5]),
		EphemeralKey:  key,
		Script:        append([]byte(nil), pkScript...),
		BitFieldValue: bitFieldValue(data),
	}, true
}
