package stealth

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/ltcsuite/ltcd/btcec/v2"
	"github.com/ltcsuite/ltcd/wire"
)

// newEphemeralKey generates the one-time key for a payment when the caller
// does not supply one.
var newEphemeralKey = btcec.NewPrivateKey

// Payment is a stealth payment found in a transaction: the output paying
// the address and the metadata that announced it.
type Payment struct {
	// Index is the index of the payment output in its transaction.
	Index        uint32
	ScriptPubKey []byte
	Metadata     *Metadata
}

// PaymentRequest bundles what a sender needs to pay a stealth address.
type PaymentRequest struct {
	SignatureCount byte
	SpendPubKeys   []*btcec.PublicKey
	EphemeralKey   *btcec.PrivateKey
	ScanPubKey     *btcec.PublicKey
	Metadata       *Metadata
}

// MetadataTxOut returns the null data output announcing the payment.  It must
// be placed directly before the payment output.
func (p *PaymentRequest) MetadataTxOut() *wire.TxOut {
	return wire.NewTxOut(0, p.Metadata.Script)
}

// CreatePayment returns a payment request for the address.  When ephemeral
// is nil a fresh key is generated.  Ephemeral keys must never be reused
// across payments.
func (a *Address) CreatePayment(ephemeral *btcec.PrivateKey) (*PaymentRequest, error) {
	if ephemeral == nil {
		var err error
		ephemeral, err = newEphemeralKey()
		if err != nil {
			return nil, err
		}
	}

	metadata, err := CreateMetadata(ephemeral, a.prefix)
	if err != nil {
		return nil, err
	}

	return &PaymentRequest{
		SignatureCount: a.signatureCount,
		SpendPubKeys:   a.SpendPubKeys(),
		EphemeralKey:   ephemeral,
		ScanPubKey:     a.scanPubKey,
		Metadata:       metadata,
	}, nil
}

// GetPayments returns the stealth payments in tx whose metadata matches the
// prefix, in output order.  Each payment is the output following its
// metadata output.  Metadata in the final output has no payment to pair with
// and is skipped.
func (b *BitField) GetPayments(tx *wire.MsgTx) []*Payment {
	var payments []*Payment
	txHash := newLogClosure(func() string {
		return tx.TxHash().String()
	})
	for i, txOut := range tx.TxOut {
		metadata, ok := ParseMetadata(txOut.PkScript)
		if !ok || !b.MatchMetadata(metadata) {
			continue
		}
		if i+1 >= len(tx.TxOut) {
			log.Debugf("Skipping stealth metadata in final output %v:%d",
				txHash, i)
			continue
		}

		log.Tracef("Matched stealth metadata in %v:%d: %v", txHash, i,
			newLogClosure(func() string {
				return spew.Sdump(metadata)
			}))

		payments = append(payments, &Payment{
			Index:        uint32(i + 1),
			ScriptPubKey: append([]byte(nil), tx.TxOut[i+1].PkScript...),
			Metadata:     metadata,
		})
	}
	return payments
}

// GetPayments returns the payments in tx matching the address prefix.
func (a *Address) GetPayments(tx *wire.MsgTx) []*Payment {
	return a.prefix.GetPayments(tx)
}
