// Package paymentdb stores detected stealth payments in a leveldb database
// keyed by the outpoint of the payment output.
package paymentdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ltcsuite/ltcd/chaincfg/chainhash"
	"github.com/ltcsuite/ltcd/wire"
	"github.com/ltcsuite/ltcstealth/stealth"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// maxScriptSize bounds scripts read back from the database.
const maxScriptSize = 10000

var (
	// ErrNotFound is returned when no payment is stored for an outpoint.
	ErrNotFound = errors.New("payment not found")

	// ErrCorrupt is returned when a stored payment can't be decoded.
	ErrCorrupt = errors.New("corrupt payment record")

	// paymentKeyPrefix leads every payment key.
	paymentKeyPrefix = []byte("sp")
)

// DB is a store of stealth payments.  It is safe for concurrent use.
type DB struct {
	ldb *leveldb.DB
}

// Open opens or creates the database at path.
func Open(path string) (*DB, error) {
	ldb, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	log.Infof("Opened stealth payment database at %s", path)
	return &DB{ldb: ldb}, nil
}

// New returns a database backed by stor, such as storage.NewMemStorage.
func New(stor storage.Storage) (*DB, error) {
	ldb, err := leveldb.Open(stor, nil)
	if err != nil {
		return nil, err
	}
	return &DB{ldb: ldb}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return db.ldb.Close()
}

// paymentKey returns the key for op: the prefix, the transaction hash and
// the big-endian output index.
func paymentKey(op *wire.OutPoint) []byte {
	key := make([]byte, len(paymentKeyPrefix)+chainhash.HashSize+4)
	n := copy(key, paymentKeyPrefix)
	n += copy(key[n:], op.Hash[:])
	binary.BigEndian.PutUint32(key[n:], op.Index)
	return key
}

func outPointFromKey(key []byte) (wire.OutPoint, error) {
	var op wire.OutPoint
	key = key[len(paymentKeyPrefix):]
	if len(key) != chainhash.HashSize+4 {
		return op, ErrCorrupt
	}
	copy(op.Hash[:], key[:chainhash.HashSize])
	op.Index = binary.BigEndian.Uint32(key[chainhash.HashSize:])
	return op, nil
}

func serializePayment(p *stealth.Payment) ([]byte, error) {
	var buf bytes.Buffer
	if err := wire.WriteVarBytes(&buf, 0, p.Metadata.Script); err != nil {
		return nil, err
	}
	if err := wire.WriteVarBytes(&buf, 0, p.ScriptPubKey); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deserializePayment(op *wire.OutPoint, v []byte) (*stealth.Payment, error) {
	r := bytes.NewReader(v)
	metadataScript, err := wire.ReadVarBytes(r, 0, maxScriptSize, "metadata")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	script, err := wire.ReadVarBytes(r, 0, maxScriptSize, "script")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	metadata, ok := stealth.ParseMetadata(metadataScript)
	if !ok {
		return nil, fmt.Errorf("%w: bad metadata script", ErrCorrupt)
	}
	return &stealth.Payment{
		Index:        op.Index,
		ScriptPubKey: script,
		Metadata:     metadata,
	}, nil
}

// Put stores a payment found in the transaction with hash txHash.
func (db *DB) Put(txHash *chainhash.Hash, p *stealth.Payment) error {
	op := wire.NewOutPoint(txHash, p.Index)
	v, err := serializePayment(p)
	if err != nil {
		return err
	}
	if err := db.ldb.Put(paymentKey(op), v, nil); err != nil {
		return err
	}
	log.Debugf("Stored stealth payment %v", op)
	return nil
}

// Fetch returns the payment stored for op.
func (db *DB) Fetch(op *wire.OutPoint) (*stealth.Payment, error) {
	v, err := db.ldb.Get(paymentKey(op), nil)
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return deserializePayment(op, v)
}

// Has returns whether a payment is stored for op.
func (db *DB) Has(op *wire.OutPoint) (bool, error) {
	return db.ldb.Has(paymentKey(op), nil)
}

// Delete removes the payment stored for op, if any.
func (db *DB) Delete(op *wire.OutPoint) error {
	return db.ldb.Delete(paymentKey(op), nil)
}

// ForEach calls fn for every stored payment in key order.  Iteration stops
// at the first error returned by fn.
func (db *DB) ForEach(fn func(op wire.OutPoint, p *stealth.Payment) error) error {
	iter := db.ldb.NewIterator(util.BytesPrefix(paymentKeyPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		op, err := outPointFromKey(iter.Key())
		if err != nil {
			return err
		}
		p, err := deserializePayment(&op, iter.Value())
		if err != nil {
			return err
		}
		if err := fn(op, p); err != nil {
			return err
		}
	}
	return iter.Error()
}
