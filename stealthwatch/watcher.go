// Package stealthwatch scans transactions for payments to a set of watched
// stealth addresses.
package stealthwatch

import (
	"sync"

	"github.com/decred/dcrd/lru"
	"github.com/ltcsuite/ltcd/chaincfg/chainhash"
	"github.com/ltcsuite/ltcd/wire"
	"github.com/ltcsuite/ltcstealth/stealth"
	"github.com/ltcsuite/ltcstealth/stealth/paymentdb"
)

// DefaultSeenCacheSize is the number of transaction hashes remembered when
// Config.SeenCacheSize is zero.
const DefaultSeenCacheSize = 10000

// Config holds the watcher settings.
type Config struct {
	// SeenCacheSize bounds the number of recently processed transactions
	// that are skipped when seen again.
	SeenCacheSize uint

	// DB, when set, receives every detected payment.
	DB *paymentdb.DB
}

// Match is a payment found for a watched address.
type Match struct {
	Address *stealth.Address
	TxHash  chainhash.Hash
	Payment *stealth.Payment
}

// Watcher matches transactions against watched stealth addresses.  It is
// safe for concurrent use.
type Watcher struct {
	mtx   sync.Mutex
	addrs []*stealth.Address
	seen  lru.Cache
	db    *paymentdb.DB
}

// New returns a watcher with no addresses.
func New(cfg *Config) *Watcher {
	size := cfg.SeenCacheSize
	if size == 0 {
		size = DefaultSeenCacheSize
	}
	return &Watcher{
		seen: lru.NewCache(size),
		db:   cfg.DB,
	}
}

// AddAddress starts watching addr.  Adding an address already watched is a
// no-op.
func (w *Watcher) AddAddress(addr *stealth.Address) {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	for _, a := range w.addrs {
		if a.IsEqual(addr) {
			return
		}
	}
	w.addrs = append(w.addrs, addr)
	log.Debugf("Watching stealth address %v", addr)
}

// Addresses returns the watched addresses.
func (w *Watcher) Addresses() []*stealth.Address {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	return append([]*stealth.Address(nil), w.addrs...)
}

// ProcessTx returns the payments in tx to watched addresses, in address then
// output order.  A transaction already processed recently yields nothing.
// Each matched output is written once to the configured database before the
// transaction is marked as seen, so a failed write can be retried.
func (w *Watcher) ProcessTx(tx *wire.MsgTx) ([]*Match, error) {
	txHash := tx.TxHash()

	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.seen.Contains(txHash) {
		log.Tracef("Skipping already processed transaction %v", txHash)
		return nil, nil
	}

	var matches []*Match
	for _, addr := range w.addrs {
		for _, p := range addr.GetPayments(tx) {
			matches = append(matches, &Match{
				Address: addr,
				TxHash:  txHash,
				Payment: p,
			})
		}
	}

	if w.db != nil {
		// An output matched by several addresses is stored once.
		stored := make(map[uint32]struct{}, len(matches))
		for _, m := range matches {
			if _, ok := stored[m.Payment.Index]; ok {
				continue
			}
			if err := w.db.Put(&txHash, m.Payment); err != nil {
				return nil, err
			}
			stored[m.Payment.Index] = struct{}{}
		}
	}

	for _, m := range matches {
		log.Infof("Found stealth payment %v:%d for %v", txHash,
			m.Payment.Index, m.Address)
	}

	w.seen.Add(txHash)
	return matches, nil
}
