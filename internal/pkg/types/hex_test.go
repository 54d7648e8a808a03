package types

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex_UnmarshalJSON(t *testing.T) {
	t.Run("valid lowercase hex", func(t *testing.T) {
		input := `"0x1a"`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.NoError(t, err)
		assert.Equal(t, Hex("0x1a"), h)
	})

	t.Run("valid uppercase hex", func(t *testing.T) {
		input := `"0X2F"`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.NoError(t, err)
		assert.Equal(t, Hex("0X2F"), h)
	})

	t.Run("missing 0x prefix", func(t *testing.T) {
		input := `"1a"`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.Error(t, err)
	})

	t.Run("invalid hex characters", func(t *testing.T) {
		input := `"0xZZZ"`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.Error(t, err)
	})

	t.Run("not a string", func(t *testing.T) {
		input := `42`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.Error(t, err)
	})
}

func TestHex_Uint64(t *testing.T) {
	t.Run("0x0a should be 10", func(t *testing.T) {
		var h Hex = "0x0a"

		v, err := h.Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(10), v)
	})

	t.Run("0xff should be 255", func(t *testing.T) {
		var h Hex = "0xff"

		v, err := h.Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(255), v)
	})

	t.Run("0X10 should be 16", func(t *testing.T) {
		var h Hex = "0X10"

		v, err := h.Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(16), v)
	})

	t.Run("matches base 16 parse of the suffix", func(t *testing.T) {
		for _, s := range []string{"0x0", "0x1", "0x64", "0x32", "0xdeadbeef", "0xffffffffffffffff"} {
			h := Hex(s)

			v, err := h.Uint64()
			require.NoError(t, err, s)

			want, serr := strconv.ParseUint(s[2:], 16, 64)
			require.NoError(t, serr, s)
			assert.Equal(t, want, v, s)
		}
	})

	t.Run("missing prefix fails", func(t *testing.T) {
		var h Hex = "1a"

		_, err := h.Uint64()
		require.Error(t, err)
	})

	t.Run("invalid hex fails without panicking", func(t *testing.T) {
		var h Hex = "0xZZZ"

		_, err := h.Uint64()
		require.Error(t, err)
	})

	t.Run("empty value fails", func(t *testing.T) {
		var h Hex

		_, err := h.Uint64()
		require.Error(t, err)
	})
}

func TestHexFromUint64(t *testing.T) {
	t.Run("round trips through Uint64", func(t *testing.T) {
		h := HexFromUint64(1_000_000)
		assert.Equal(t, Hex("0xf4240"), h)

		v, err := h.Uint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(1_000_000), v)
	})
}
