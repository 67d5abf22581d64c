// Package codec compresses exported prime set bodies.
//
// Three block codecs are built in: None, LZ4 (fast) and Zstd (better ratio,
// the default). Exported files record the codec Type in their header, so
// changing the default never breaks reading older exports.
package codec

import (
	"errors"
	"fmt"
)

// Type identifies a codec in persisted headers.
type Type uint8

const (
	TypeNone Type = 0
	TypeLZ4  Type = 1
	TypeZstd Type = 2
)

func (t Type) String() string {
	if c, ok := ByType(t); ok {
		return c.Name()
	}
	return fmt.Sprintf("codec(%d)", uint8(t))
}

// ErrSizeMismatch is returned when a block decodes to an unexpected length.
var ErrSizeMismatch = errors.New("decompressed size mismatch")

// Codec compresses and decompresses whole blocks.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode compresses src. It returns nil if src does not compress.
	Encode(src []byte) ([]byte, error)
	// Decode decompresses src into a block of exactly rawLen bytes.
	Decode(src []byte, rawLen int) ([]byte, error)
	Type() Type
	Name() string
}

// Default is the codec used when none is configured.
var Default Codec = Zstd{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "none", "":
		return None{}, true
	case "lz4":
		return LZ4{}, true
	case "zstd":
		return Zstd{}, true
	default:
		return nil, false
	}
}

// ByType returns the built-in codec recorded as t.
func ByType(t Type) (Codec, bool) {
	switch t {
	case TypeNone:
		return None{}, true
	case TypeLZ4:
		return LZ4{}, true
	case TypeZstd:
		return Zstd{}, true
	default:
		return nil, false
	}
}

// Compress encodes data with c and falls back to None when the result would
// not be at least 10% smaller. It returns the body and the codec actually used.
func Compress(c Codec, data []byte) ([]byte, Type, error) {
	if c == nil {
		c = Default
	}
	if c.Type() == TypeNone || len(data) == 0 {
		return data, TypeNone, nil
	}
	out, err := c.Encode(data)
	if err != nil {
		return nil, 0, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	if len(out) == 0 || float64(len(out)) > float64(len(data))*0.9 {
		return data, TypeNone, nil
	}
	return out, c.Type(), nil
}

// Decompress reverses Compress for a body written with codec type t.
func Decompress(t Type, body []byte, rawLen int) ([]byte, error) {
	c, ok := ByType(t)
	if !ok {
		return nil, fmt.Errorf("unknown codec type %d", t)
	}
	out, err := c.Decode(body, rawLen)
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	return out, nil
}

// None stores blocks as is.
type None struct{}

// Encode returns src unchanged.
func (None) Encode(src []byte) ([]byte, error) { return src, nil }

// Decode returns src after checking its length.
func (None) Decode(src []byte, rawLen int) ([]byte, error) {
	if len(src) != rawLen {
		return nil, ErrSizeMismatch
	}
	return src, nil
}

// Type returns TypeNone.
func (None) Type() Type { return TypeNone }

// Name returns "none".
func (None) Name() string { return "none" }
