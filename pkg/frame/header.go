package frame

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/rawbytedev/arrayref"
)

const (
	VersionV1  = 1
	HeaderSize = 60
	NonceSize  = chacha20poly1305.NonceSizeX
	Overhead   = chacha20poly1305.Overhead
	sumOffset  = 52

	FlagCompressed = 0x0001 // payload is zstd-compressed before sealing
	FlagFinal      = 0x0002 // last frame of a stream
)

var magicV1 = [4]byte{'A', 'R', 'F', '1'}

var (
	ErrShortFrame = errors.New("frame too short")
	ErrBadMagic   = errors.New("invalid magic")
	ErrVersion    = errors.New("unsupported version")
	ErrChecksum   = errors.New("header checksum mismatch")
	ErrLength     = errors.New("length mismatch")
	ErrAuth       = errors.New("authentication failed")
	ErrKeySize    = errors.New("invalid key size")
	ErrSequence   = errors.New("frame out of sequence")
	ErrTrailing   = errors.New("data after final frame")
)

// Header is the fixed 60-byte frame header:
//
//	magic[4] | version u16, flags u16 | schema u64, seq u64 | length u32 | nonce[24] | xxhash64[8]
//
// Length counts the sealed body (ciphertext and tag). The checksum covers
// everything before it. Seq is the frame's position in its stream; the whole
// header is authenticated with the body, so reordering frames or moving the
// final flag breaks Open.
type Header struct {
	Version  uint16
	Flags    uint16
	SchemaID uint64
	Seq      uint64
	Length   uint32
	Nonce    [NonceSize]byte
}

func (h Header) Compressed() bool {
	return h.Flags&FlagCompressed != 0
}

func (h Header) Final() bool {
	return h.Flags&FlagFinal != 0
}

// putHeader writes h into dst, which must be exactly HeaderSize bytes.
func putHeader(dst []byte, h *Header) {
	magic, meta, ids, length, nonce, sum := arrayref.MutRefs6[[4]byte, [4]byte, [16]byte, [4]byte, [NonceSize]byte, [8]byte](dst)
	*magic = magicV1
	binary.LittleEndian.PutUint16(meta[0:], h.Version)
	binary.LittleEndian.PutUint16(meta[2:], h.Flags)
	schema, seq := arrayref.MutRefs2[[8]byte, [8]byte](ids[:])
	binary.LittleEndian.PutUint64(schema[:], h.SchemaID)
	binary.LittleEndian.PutUint64(seq[:], h.Seq)
	binary.LittleEndian.PutUint32(length[:], h.Length)
	*nonce = h.Nonce
	binary.LittleEndian.PutUint64(sum[:], xxhash.Sum64(dst[:sumOffset]))
}

// ParseHeader decodes the header at the start of buf without copying the
// frame. Trailing bytes after the header are ignored.
func ParseHeader(buf []byte) (Header, error) {
	if !arrayref.Fits[[HeaderSize]byte](buf, 0) {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrShortFrame, len(buf))
	}
	magic, meta, ids, length, nonce, sum := arrayref.Refs6[[4]byte, [4]byte, [16]byte, [4]byte, [NonceSize]byte, [8]byte](buf[:HeaderSize])
	if magic.Array() != magicV1 {
		return Header{}, ErrBadMagic
	}
	want := sum.Array()
	if xxhash.Sum64(buf[:sumOffset]) != binary.LittleEndian.Uint64(want[:]) {
		return Header{}, ErrChecksum
	}
	m := meta.Array()
	i := ids.Array()
	l := length.Array()
	h := Header{
		Version:  binary.LittleEndian.Uint16(m[0:]),
		Flags:    binary.LittleEndian.Uint16(m[2:]),
		SchemaID: binary.LittleEndian.Uint64(i[0:]),
		Seq:      binary.LittleEndian.Uint64(i[8:]),
		Length:   binary.LittleEndian.Uint32(l[:]),
		Nonce:    nonce.Array(),
	}
	if h.Version != VersionV1 {
		return Header{}, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return h, nil
}
