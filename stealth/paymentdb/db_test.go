package paymentdb

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ltcsuite/ltcd/btcec/v2"
	"github.com/ltcsuite/ltcd/chaincfg/chainhash"
	"github.com/ltcsuite/ltcd/wire"
	"github.com/ltcsuite/ltcstealth/stealth"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(storage.NewMemStorage())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testPayment(t *testing.T, seed byte, index uint32) *stealth.Payment {
	t.Helper()
	var b [32]byte
	b[0], b[31] = 0x22, seed
	ephemeral, _ := btcec.PrivKeyFromBytes(b[:])
	metadata, err := stealth.NewMetadata(ephemeral, uint32(seed))
	require.NoError(t, err)
	return &stealth.Payment{
		Index:        index,
		ScriptPubKey: bytes.Repeat([]byte{seed}, 25),
		Metadata:     metadata,
	}
}

func requirePaymentEqual(t *testing.T, want, got *stealth.Payment) {
	t.Helper()
	require.Equal(t, want.Index, got.Index)
	require.Equal(t, want.ScriptPubKey, got.ScriptPubKey)
	require.Equal(t, want.Metadata.Script, got.Metadata.Script)
	require.Equal(t, want.Metadata.Nonce, got.Metadata.Nonce)
	require.Equal(t, want.Metadata.BitFieldValue, got.Metadata.BitFieldValue)
	require.True(t, want.Metadata.EphemeralKey.IsEqual(got.Metadata.EphemeralKey))
}

func TestPutFetch(t *testing.T) {
	db := newTestDB(t)
	txHash := chainhash.DoubleHashH([]byte("tx"))
	p := testPayment(t, 1, 3)

	require.NoError(t, db.Put(&txHash, p))

	op := wire.NewOutPoint(&txHash, 3)
	got, err := db.Fetch(op)
	require.NoError(t, err)
	requirePaymentEqual(t, p, got)

	has, err := db.Has(op)
	require.NoError(t, err)
	require.True(t, has)

	_, err = db.Fetch(wire.NewOutPoint(&txHash, 4))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.Delete(op))
	_, err = db.Fetch(op)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestForEach(t *testing.T) {
	db := newTestDB(t)
	hashA := chainhash.DoubleHashH([]byte("a"))
	hashB := chainhash.DoubleHashH([]byte("b"))

	want := map[wire.OutPoint]*stealth.Payment{
		*wire.NewOutPoint(&hashA, 1): testPayment(t, 1, 1),
		*wire.NewOutPoint(&hashA, 5): testPayment(t, 2, 5),
		*wire.NewOutPoint(&hashB, 1): testPayment(t, 3, 1),
	}
	for op, p := range want {
		op := op
		require.NoError(t, db.Put(&op.Hash, p))
	}

	seen := 0
	err := db.ForEach(func(op wire.OutPoint, p *stealth.Payment) error {
		w, ok := want[op]
		require.True(t, ok, "unexpected outpoint %v", op)
		requirePaymentEqual(t, w, p)
		seen++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, len(want), seen)

	errStop := errors.New("stop")
	calls := 0
	err = db.ForEach(func(wire.OutPoint, *stealth.Payment) error {
		calls++
		return errStop
	})
	require.ErrorIs(t, err, errStop)
	require.Equal(t, 1, calls)
}

func TestCorruptRecord(t *testing.T) {
	db := newTestDB(t)
	txHash := chainhash.DoubleHashH([]byte("tx"))
	op := wire.NewOutPoint(&txHash, 0)

	require.NoError(t, db.ldb.Put(paymentKey(op), []byte{0x05, 0x01}, nil))
	_, err := db.Fetch(op)
	require.ErrorIs(t, err, ErrCorrupt)

	// A readable record whose metadata is not a stealth script.
	p := testPayment(t, 1, 0)
	p.Metadata = &stealth.Metadata{Script: []byte{0x6a}}
	v, err := serializePayment(p)
	require.NoError(t, err)
	require.NoError(t, db.ldb.Put(paymentKey(op), v, nil))
	_, err = db.Fetch(op)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payments")
	db, err := Open(path)
	require.NoError(t, err)

	txHash := chainhash.DoubleHashH([]byte("tx"))
	p := testPayment(t, 7, 2)
	require.NoError(t, db.Put(&txHash, p))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Fetch(wire.NewOutPoint(&txHash, 2))
	require.NoError(t, err)
	requirePaymentEqual(t, p, got)
}
