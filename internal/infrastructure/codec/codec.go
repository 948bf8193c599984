// Package codec frames save data as zstd-compressed msgpack.
package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// magic prefixes every encoded blob; the byte after it is the format version
var magic = []byte("LKS")

const formatVersion byte = 1

// ErrBadFormat is returned for blobs that were not written by Encode
var ErrBadFormat = errors.New("unrecognized save format")

// Codec is safe for concurrent use
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New creates a codec. Close releases the compressor goroutines.
func New() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Encode marshals v with msgpack and compresses the result
func (c *Codec) Encode(v any) ([]byte, error) {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	out := make([]byte, 0, len(magic)+1+len(raw)/2)
	out = append(out, magic...)
	out = append(out, formatVersion)
	return c.enc.EncodeAll(raw, out), nil
}

// Decode reverses Encode into v
func (c *Codec) Decode(data []byte, v any) error {
	if len(data) <= len(magic) || !bytes.HasPrefix(data, magic) {
		return ErrBadFormat
	}
	if ver := data[len(magic)]; ver != formatVersion {
		return fmt.Errorf("%w: version %d", ErrBadFormat, ver)
	}
	raw, err := c.dec.DecodeAll(data[len(magic)+1:], nil)
	if err != nil {
		return fmt.Errorf("failed to decompress: %w", err)
	}
	if err := msgpack.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to unmarshal: %w", err)
	}
	return nil
}

// Close releases the encoder and decoder
func (c *Codec) Close() {
	_ = c.enc.Close()
	c.dec.Close()
}
