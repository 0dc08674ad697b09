package stealth

import (
	"testing"

	"github.com/ltcsuite/ltcd/chaincfg"
	"github.com/ltcsuite/ltcd/ltcutil/base58"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeAddress(t *testing.T) {
	prefix, err := NewBitFieldFromUint32(0x1234, 16)
	require.NoError(t, err)
	addr := testAddress(t, prefix)

	for _, params := range []*chaincfg.Params{
		&chaincfg.MainNetParams,
		&chaincfg.TestNet4Params,
		&chaincfg.RegressionNetParams,
		&chaincfg.SimNetParams,
	} {
		encoded, err := addr.Encode(params)
		require.NoError(t, err, params.Name)

		decoded, err := DecodeAddress(encoded, params)
		require.NoError(t, err, params.Name)
		requireAddressEqual(t, addr, decoded)
	}

	encoded, err := addr.Encode(&chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, encoded, addr.String())

	payload, version, err := base58.CheckDecode(encoded)
	require.NoError(t, err)
	require.Equal(t, byte(mainNetVersion), version)
	require.Equal(t, addr.Bytes(), payload)
}

func TestDecodeAddressErrors(t *testing.T) {
	addr := testAddress(t, nil)
	encoded := addr.String()

	_, err := DecodeAddress(encoded, &chaincfg.TestNet4Params)
	require.ErrorIs(t, err, ErrWrongNet)

	last := encoded[len(encoded)-1]
	swap := byte('z')
	if last == 'z' {
		swap = 'y'
	}
	corrupt := encoded[:len(encoded)-1] + string(swap)
	_, err = DecodeAddress(corrupt, &chaincfg.MainNetParams)
	require.ErrorIs(t, err, base58.ErrChecksum)

	_, err = DecodeAddress("1", &chaincfg.MainNetParams)
	require.ErrorIs(t, err, base58.ErrInvalidFormat)

	unknown := &chaincfg.Params{Name: "unknown", Net: 0x0badf00d}
	_, err = addr.Encode(unknown)
	require.ErrorIs(t, err, ErrUnknownNet)
	_, err = DecodeAddress(encoded, unknown)
	require.ErrorIs(t, err, ErrUnknownNet)

	// A well formed base58check string with a bad payload.
	bad := base58.CheckEncode([]byte{0, 1, 2}, mainNetVersion)
	_, err = DecodeAddress(bad, &chaincfg.MainNetParams)
	require.True(t, IsErrorCode(err, ErrTruncated))
}
