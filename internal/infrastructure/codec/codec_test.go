package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type save struct {
	Stage  string    `msgpack:"stage"`
	Tick   int       `msgpack:"tick"`
	Points []float64 `msgpack:"points"`
}

func newCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newCodec(t)
	in := save{Stage: "demo", Tick: 600, Points: []float64{1.5, -2, 300}}

	data, err := c.Encode(&in)
	require.NoError(t, err)
	assert.Equal(t, "LKS", string(data[:3]))

	var out save
	require.NoError(t, c.Decode(data, &out))
	assert.Equal(t, in, out)
}

func TestCodec_Compresses(t *testing.T) {
	c := newCodec(t)
	in := save{Points: make([]float64, 4096)}

	data, err := c.Encode(&in)
	require.NoError(t, err)
	assert.Less(t, len(data), 4096)
}

func TestCodec_DecodeErrors(t *testing.T) {
	c := newCodec(t)
	good, err := c.Encode(&save{Stage: "demo"})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong magic", []byte("XYZ\x01abc")},
		{"future version", append([]byte("LKS\x09"), good[4:]...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out save
			assert.ErrorIs(t, c.Decode(tt.data, &out), ErrBadFormat)
		})
	}

	t.Run("corrupt payload", func(t *testing.T) {
		bad := append([]byte{}, good[:4]...)
		bad = append(bad, 0xde, 0xad, 0xbe, 0xef)
		var out save
		err := c.Decode(bad, &out)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrBadFormat)
	})
}
