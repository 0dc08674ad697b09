package stealth

import (
	"fmt"

	"github.com/ltcsuite/ltcd/chaincfg"
	"github.com/ltcsuite/ltcd/ltcutil/base58"
	"github.com/ltcsuite/ltcd/wire"
)

const (
	mainNetVersion = 0x2a
	testNetVersion = 0x2b
)

// versions maps each network to the base58check version byte of its
// stealth addresses.
var versions = map[wire.BitcoinNet]byte{
	chaincfg.MainNetParams.Net:       mainNetVersion,
	chaincfg.TestNet4Params.Net:      testNetVersion,
	chaincfg.RegressionNetParams.Net: testNetVersion,
	chaincfg.SimNetParams.Net:        testNetVersion,
}

// Version returns the stealth address version byte for the network.
func Version(params *chaincfg.Params) (byte, error) {
	version, ok := versions[params.Net]
	if !ok {
		return 0, ErrUnknownNet
	}
	return version, nil
}

// Encode returns the base58check encoding of the address for the network.
func (a *Address) Encode(params *chaincfg.Params) (string, error) {
	version, err := Version(params)
	if err != nil {
		return "", err
	}
	return base58.CheckEncode(a.Bytes(), version), nil
}

// String returns the main network encoding of the address.
func (a *Address) String() string {
	return base58.CheckEncode(a.Bytes(), mainNetVersion)
}

// DecodeAddress decodes a base58check stealth address for the network.
func DecodeAddress(addr string, params *chaincfg.Params) (*Address, error) {
	want, err := Version(params)
	if err != nil {
		return nil, err
	}

	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, fmt.Errorf("decoding stealth address: %w", err)
	}
	if version != want {
		return nil, ErrWrongNet
	}

	return ParseAddress(payload)
}
