package codec

import "github.com/pierrec/lz4/v4"

// LZ4 is an LZ4 block codec backed by github.com/pierrec/lz4/v4.
type LZ4 struct{}

// Encode compresses src as a single LZ4 block.
func (LZ4) Encode(src []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return dst[:n], nil
}

// Decode decompresses a single LZ4 block.
func (LZ4) Decode(src []byte, rawLen int) ([]byte, error) {
	dst := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	if n != rawLen {
		return nil, ErrSizeMismatch
	}
	return dst, nil
}

// Type returns TypeLZ4.
func (LZ4) Type() Type { return TypeLZ4 }

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }
