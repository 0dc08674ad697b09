package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ltcsuite/ltcd/btcec/v2"
	"github.com/ltcsuite/ltcd/wire"
	"github.com/ltcsuite/ltcstealth/stealth"
	"github.com/ltcsuite/ltcstealth/stealth/paymentdb"
	"github.com/ltcsuite/ltcstealth/stealthwatch"
)

type newCommand struct {
	SpendKeys  int    `long:"spendkeys" default:"1" description:"Number of spend keys"`
	Sigs       uint8  `long:"sigs" default:"1" description:"Required spend signatures"`
	PrefixBits int    `long:"prefixbits" default:"0" description:"Prefix length in bits (0-32)"`
	Prefix     string `long:"prefix" default:"0" description:"Prefix value in hex"`
}

func (c *newCommand) Execute(args []string) error {
	return c.run(os.Stdout)
}

// run creates the address and writes it and its secret keys to w.
func (c *newCommand) run(w io.Writer) error {
	if c.SpendKeys < 1 || c.SpendKeys > stealth.MaxSpendKeys {
		return fmt.Errorf("spendkeys must be between 1 and %d",
			stealth.MaxSpendKeys)
	}
	value, err := strconv.ParseUint(c.Prefix, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid prefix: %v", err)
	}
	prefix, err := stealth.NewBitFieldFromUint32Truncated(uint32(value),
		c.PrefixBits)
	if err != nil {
		return err
	}

	scanKey, err := btcec.NewPrivateKey()
	if err != nil {
		return err
	}
	spendKeys := make([]*btcec.PrivateKey, c.SpendKeys)
	spendPubKeys := make([]*btcec.PublicKey, c.SpendKeys)
	for i := range spendKeys {
		spendKeys[i], err = btcec.NewPrivateKey()
		if err != nil {
			return err
		}
		spendPubKeys[i] = spendKeys[i].PubKey()
	}

	addr, err := stealth.NewAddress(scanKey.PubKey(), spendPubKeys, c.Sigs,
		prefix)
	if err != nil {
		return err
	}
	encoded, err := addr.Encode(activeNet)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "address:   %s\n", encoded)
	fmt.Fprintf(w, "scan key:  %x\n", scanKey.Serialize())
	for i, key := range spendKeys {
		fmt.Fprintf(w, "spend key %d: %x\n", i, key.Serialize())
	}
	return nil
}

type decodeCommand struct{}

func (c *decodeCommand) Execute(args []string) error {
	if len(args) != 1 {
		return errors.New("decode takes exactly one address")
	}
	return decodeAddress(os.Stdout, args[0])
}

// decodeAddress writes the components of encoded to w.
func decodeAddress(w io.Writer, encoded string) error {
	addr, err := stealth.DecodeAddress(encoded, activeNet)
	if err != nil {
		return err
	}
	printAddress(w, addr)
	return nil
}

func printAddress(w io.Writer, addr *stealth.Address) {
	fmt.Fprintf(w, "options:         %d\n", addr.Options())
	fmt.Fprintf(w, "scan pubkey:     %x\n", addr.ScanPubKey().SerializeCompressed())
	for i, key := range addr.SpendPubKeys() {
		fmt.Fprintf(w, "spend pubkey %d:  %x\n", i, key.SerializeCompressed())
	}
	fmt.Fprintf(w, "signatures:      %d\n", addr.SignatureCount())
	fmt.Fprintf(w, "prefix bits:     %d\n", addr.Prefix().BitCount())
	fmt.Fprintf(w, "prefix:          %x\n", addr.Prefix().RawForm())
}

type scanCommand struct {
	Addr string `long:"addr" required:"true" description:"Stealth address to scan for"`
}

func (c *scanCommand) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("scan needs at least one raw transaction")
	}
	return c.run(os.Stdout, args)
}

// run scans each hex encoded transaction and writes found payments to w.
func (c *scanCommand) run(w io.Writer, txHexes []string) error {
	addr, err := stealth.DecodeAddress(c.Addr, activeNet)
	if err != nil {
		return err
	}

	wcfg := &stealthwatch.Config{}
	if cfg.DBPath != "" {
		db, err := paymentdb.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		wcfg.DB = db
	}
	watcher := stealthwatch.New(wcfg)
	watcher.AddAddress(addr)

	for _, txHex := range txHexes {
		rawTx, err := hex.DecodeString(txHex)
		if err != nil {
			return fmt.Errorf("invalid transaction hex: %v", err)
		}
		var tx wire.MsgTx
		if err := tx.Deserialize(bytes.NewReader(rawTx)); err != nil {
			return fmt.Errorf("invalid transaction: %v", err)
		}

		matches, err := watcher.ProcessTx(&tx)
		if err != nil {
			return err
		}
		for _, m := range matches {
			fmt.Fprintf(w, "%v:%d nonce=%d script=%x ephemeral=%x\n",
				m.TxHash, m.Payment.Index, m.Payment.Metadata.Nonce,
				m.Payment.ScriptPubKey,
				m.Payment.Metadata.EphemeralKey.SerializeCompressed())
		}
	}
	return nil
}
