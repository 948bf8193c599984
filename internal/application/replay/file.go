package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// compressed reports whether filename should be zstd-framed
func compressed(filename string) bool {
	return strings.HasSuffix(filename, ".zst")
}

// Save writes the replay data to a file. Names ending in .zst are
// zstd-compressed JSON; anything else is indented JSON.
func Save(filename string, data ReplayData) (err error) {
	if len(data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close replay: %w", cerr)
		}
	}()

	var w io.Writer = file
	if compressed(filename) {
		enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("failed to open compressor: %w", err)
		}
		defer func() {
			if cerr := enc.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("failed to flush compressor: %w", cerr)
			}
		}()
		w = enc
	}

	encoder := json.NewEncoder(w)
	if !compressed(filename) {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// LoadReplay loads replay data from a file written by Save
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var r io.Reader = file
	if compressed(filename) {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open decompressor: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if len(data.Frames) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoFrames)
	}
	return &data, nil
}
