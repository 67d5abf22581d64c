package primesieve

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hupe1980/primesieve/blobstore"
	"github.com/hupe1980/primesieve/codec"
	"github.com/hupe1980/primesieve/internal/hash"
	"github.com/hupe1980/primesieve/internal/resource"
)

// Exported prime set layout, little endian:
//
//	magic   [4]byte "PSET"
//	version uint8
//	codec   uint8
//	_       uint16
//	bound   uint64
//	count   uint64
//	rawLen  uint32  encoded bitmap length
//	bodyLen uint32  stored (compressed) length
//	crc     uint32  CRC32C of the 32 bytes above followed by body
//	body    [bodyLen]byte
const (
	primeSetMagic      = "PSET"
	primeSetVersion    = 1
	primeSetHeaderSize = 36
	primeSetCRCOffset  = 32
)

// PrimeSetHeader describes an exported prime set.
type PrimeSetHeader struct {
	Version uint8
	Codec   codec.Type
	Bound   uint64
	Count   uint64
	RawLen  uint32
	BodyLen uint32
	CRC     uint32
}

func (h PrimeSetHeader) appendTo(b []byte) []byte {
	b = append(b, primeSetMagic...)
	b = append(b, h.Version, byte(h.Codec), 0, 0)
	b = binary.LittleEndian.AppendUint64(b, h.Bound)
	b = binary.LittleEndian.AppendUint64(b, h.Count)
	b = binary.LittleEndian.AppendUint32(b, h.RawLen)
	b = binary.LittleEndian.AppendUint32(b, h.BodyLen)
	b = binary.LittleEndian.AppendUint32(b, h.CRC)
	return b
}

// primeSetChecksum covers the header fields before the CRC and the body.
func primeSetChecksum(header, body []byte) uint32 {
	h := hash.NewCRC32C()
	_, _ = h.Write(header[:primeSetCRCOffset])
	_, _ = h.Write(body)
	return h.Sum32()
}

func parsePrimeSetHeader(b []byte) (PrimeSetHeader, error) {
	if len(b) < primeSetHeaderSize {
		return PrimeSetHeader{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptPrimeSet, len(b))
	}
	if string(b[:4]) != primeSetMagic {
		return PrimeSetHeader{}, fmt.Errorf("%w: bad magic %q", ErrCorruptPrimeSet, b[:4])
	}
	h := PrimeSetHeader{
		Version: b[4],
		Codec:   codec.Type(b[5]),
		Bound:   binary.LittleEndian.Uint64(b[8:]),
		Count:   binary.LittleEndian.Uint64(b[16:]),
		RawLen:  binary.LittleEndian.Uint32(b[24:]),
		BodyLen: binary.LittleEndian.Uint32(b[28:]),
		CRC:     binary.LittleEndian.Uint32(b[primeSetCRCOffset:]),
	}
	if h.Version != primeSetVersion {
		return h, fmt.Errorf("%w: unsupported version %d", ErrCorruptPrimeSet, h.Version)
	}
	return h, nil
}

// ExportInfo describes a completed export.
type ExportInfo struct {
	Name        string
	Bound       uint64
	Count       uint64
	Codec       codec.Type
	RawBytes    int
	StoredBytes int
}

// Export sieves up to n and writes the primes to store under name. The body
// is compressed with the configured codec unless that does not pay off.
// Writes are throttled by ResourceLimits.ExportBytesPerSec.
func (s *Sieve) Export(ctx context.Context, store blobstore.BlobStore, name string, n uint64) (ExportInfo, error) {
	start := time.Now()
	info, err := s.export(ctx, store, name, n)
	s.opts.metricsCollector.RecordExport(info.StoredBytes, time.Since(start), err)
	s.opts.logger.LogExport(ctx, name, info, err)
	return info, translateError(err)
}

func (s *Sieve) export(ctx context.Context, store blobstore.BlobStore, name string, n uint64) (ExportInfo, error) {
	info := ExportInfo{Name: name, Bound: n}

	set, err := s.collect(ctx, n)
	if err != nil {
		return info, err
	}
	info.Count = set.Len()

	raw, err := set.MarshalBinary()
	if err != nil {
		return info, fmt.Errorf("encode prime set: %w", err)
	}
	body, typ, err := codec.Compress(s.opts.codec, raw)
	if err != nil {
		return info, err
	}
	if uint64(len(raw)) > math.MaxUint32 || uint64(len(body)) > math.MaxUint32 {
		return info, fmt.Errorf("prime set for bound %d too large to export (%d bytes)", n, len(raw))
	}
	info.Codec = typ
	info.RawBytes = len(raw)

	hdr := PrimeSetHeader{
		Version: primeSetVersion,
		Codec:   typ,
		Bound:   n,
		Count:   info.Count,
		RawLen:  uint32(len(raw)),
		BodyLen: uint32(len(body)),
	}
	header := hdr.appendTo(make([]byte, 0, primeSetHeaderSize))
	binary.LittleEndian.PutUint32(header[primeSetCRCOffset:], primeSetChecksum(header, body))

	size := int64(primeSetHeaderSize + len(body))
	r := resource.NewRateLimitedReader(ctx, io.MultiReader(bytes.NewReader(header), bytes.NewReader(body)), s.res)
	if err := store.PutReader(ctx, name, r, size); err != nil {
		return info, fmt.Errorf("store %q: %w", name, err)
	}
	info.StoredBytes = int(size)
	return info, nil
}

// ReadPrimeSet loads a prime set written by Export and checks it against its
// header.
func ReadPrimeSet(ctx context.Context, store blobstore.BlobStore, name string) (*PrimeSet, PrimeSetHeader, error) {
	data, err := blobstore.Get(ctx, store, name)
	if err != nil {
		return nil, PrimeSetHeader{}, translateError(fmt.Errorf("read %q: %w", name, err))
	}
	return decodePrimeSet(data)
}

func decodePrimeSet(data []byte) (*PrimeSet, PrimeSetHeader, error) {
	hdr, err := parsePrimeSetHeader(data)
	if err != nil {
		return nil, hdr, err
	}

	body := data[primeSetHeaderSize:]
	if uint64(len(body)) != uint64(hdr.BodyLen) {
		return nil, hdr, fmt.Errorf("%w: body is %d bytes, header says %d", ErrCorruptPrimeSet, len(body), hdr.BodyLen)
	}
	if sum := primeSetChecksum(data, body); sum != hdr.CRC {
		return nil, hdr, fmt.Errorf("%w: checksum %08x, header says %08x", ErrCorruptPrimeSet, sum, hdr.CRC)
	}

	raw, err := codec.Decompress(hdr.Codec, body, int(hdr.RawLen))
	if err != nil {
		return nil, hdr, fmt.Errorf("%w: %w", ErrCorruptPrimeSet, err)
	}

	set, err := unmarshalPrimeSet(hdr.Bound, raw)
	if err != nil {
		return nil, hdr, fmt.Errorf("%w: %w", ErrCorruptPrimeSet, err)
	}
	if set.Len() != hdr.Count {
		return nil, hdr, fmt.Errorf("%w: %d primes, header says %d", ErrCorruptPrimeSet, set.Len(), hdr.Count)
	}
	if m, ok := set.Max(); ok && m > hdr.Bound {
		return nil, hdr, fmt.Errorf("%w: prime %d above bound %d", ErrCorruptPrimeSet, m, hdr.Bound)
	}
	return set, hdr, nil
}
