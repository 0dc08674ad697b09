package stealth

import (
	"bytes"
	"testing"

	"github.com/ltcsuite/ltcd/txscript"
	"github.com/stretchr/testify/require"
)

func TestMetadataScript(t *testing.T) {
	ephemeral := testKey(9)
	m, err := NewMetadata(ephemeral, 0x01020304)
	require.NoError(t, err)

	require.Len(t, m.Script, 2+metadataLen)
	require.Equal(t, byte(txscript.OP_RETURN), m.Script[0])
	require.Equal(t, byte(txscript.OP_DATA_38), m.Script[1])
	require.Equal(t, byte(MetadataVersion), m.Script[2])
	require.Equal(t, []byte{1, 2, 3, 4}, m.Script[3:7])
	require.Equal(t, ephemeral.PubKey().SerializeCompressed(), m.Script[7:])
	require.Equal(t, bitFieldValue(m.Script[2:]), m.BitFieldValue)

	parsed, ok := ParseMetadata(m.Script)
	require.True(t, ok)
	require.Equal(t, m.Nonce, parsed.Nonce)
	require.True(t, m.EphemeralKey.IsEqual(parsed.EphemeralKey))
	require.Equal(t, m.Script, parsed.Script)
	require.Equal(t, m.BitFieldValue, parsed.BitFieldValue)
}

func TestMetadataNonceChangesValue(t *testing.T) {
	a, err := NewMetadata(testKey(9), 0)
	require.NoError(t, err)
	b, err := NewMetadata(testKey(9), 1)
	require.NoError(t, err)
	require.NotEqual(t, a.BitFieldValue, b.BitFieldValue)
}

func nullData(t *testing.T, data []byte) []byte {
	t.Helper()
	script, err := txscript.NullDataScript(data)
	require.NoError(t, err)
	return script
}

func TestParseMetadataRejects(t *testing.T) {
	good := metadataPayload(testKey(9).PubKey(), 7)

	wrongVersion := append([]byte(nil), good...)
	wrongVersion[0] = 5

	badKey := append([]byte(nil), good...)
	badKey[5] = 0x07

	trailing, err := txscript.NewScriptBuilder().AddOp(txscript.OP_RETURN).
		AddData(good).AddOp(txscript.OP_TRUE).Script()
	require.NoError(t, err)

	noReturn, err := txscript.NewScriptBuilder().AddData(good).Script()
	require.NoError(t, err)

	p2pkh, err := txscript.NewScriptBuilder().AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).AddData(bytes.Repeat([]byte{1}, 20)).
		AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG).Script()
	require.NoError(t, err)

	tests := []struct {
		name   string
		script []byte
	}{
		{"empty", nil},
		{"bare return", []byte{txscript.OP_RETURN}},
		{"short push", nullData(t, good[:len(good)-1])},
		{"long push", nullData(t, append(good, 0))},
		{"wrong version", nullData(t, wrongVersion)},
		{"bad key", nullData(t, badKey)},
		{"trailing opcode", trailing},
		{"no op_return", noReturn},
		{"p2pkh", p2pkh},
		{"truncated push", nullData(t, good)[:20]},
	}
	for _, test := range tests {
		_, ok := ParseMetadata(test.script)
		require.False(t, ok, test.name)
	}

	_, ok := ParseMetadata(nullData(t, good))
	require.True(t, ok)
}

func TestCreateMetadata(t *testing.T) {
	ephemeral := testKey(9)

	m, err := CreateMetadata(ephemeral, nil)
	require.NoError(t, err)
	require.Equal(t, uint32(0), m.Nonce)

	empty, err := NewBitField(nil, 0)
	require.NoError(t, err)
	m, err = CreateMetadata(ephemeral, empty)
	require.NoError(t, err)
	require.Equal(t, uint32(0), m.Nonce)

	for _, bitCount := range []int{4, 8, 12} {
		prefix, err := NewBitFieldFromUint32(0x00000abc, bitCount)
		require.NoError(t, err)

		m, err := CreateMetadata(ephemeral, prefix)
		require.NoError(t, err)
		require.True(t, prefix.MatchMetadata(m), "bits %d", bitCount)

		// The first matching nonce is chosen.
		for nonce := uint32(0); nonce < m.Nonce; nonce++ {
			data := metadataPayload(ephemeral.PubKey(), nonce)
			require.False(t, prefix.Match(bitFieldValue(data)))
		}
	}
}
