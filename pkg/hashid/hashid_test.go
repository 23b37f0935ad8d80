package hashid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	ids := []uint64{1, 42, 1849273412345678848}
	for _, id := range ids {
		s, err := Encode(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(s), minLength)

		got, err := Decode(s)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode("!!not-a-hash!!")
	assert.Error(t, err)
}
