package frame

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/rawbytedev/arrayref"
)

const KeySize = chacha20poly1305.KeySize

// Key is the XChaCha20-Poly1305 key.
type Key = [KeySize]byte

// KeyFrom views b as a Key without copying. b must be exactly KeySize bytes
// and must outlive the returned key.
func KeyFrom(b []byte) (*Key, error) {
	if len(b) != KeySize {
		return nil, fmt.Errorf("%w: %d bytes", ErrKeySize, len(b))
	}
	return arrayref.MutRef[Key](b, 0), nil
}

type Options struct {
	SchemaID uint64
	Compress bool
	Level    zstd.EncoderLevel // zero means zstd.SpeedDefault
	// MaxPayload bounds the decompressed size accepted by Open.
	// Zero means 64 MiB.
	MaxPayload uint64
	Rand       io.Reader // nonce source; crypto/rand when nil
}

// Sealer seals and opens frames under one key. It is safe for concurrent use.
type Sealer struct {
	Opts Options
	aead cipher.AEAD
	enc  *zstd.Encoder
	dec  *zstd.Decoder
}

func NewSealer(key *Key, opts Options) (*Sealer, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}
	if opts.Level == 0 {
		opts.Level = zstd.SpeedDefault
	}
	if opts.MaxPayload == 0 {
		opts.MaxPayload = 64 << 20
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(opts.Level), zstd.WithZeroFrames(true))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(opts.MaxPayload))
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &Sealer{Opts: opts, aead: aead, enc: enc, dec: dec}, nil
}

// Seal appends a sealed frame carrying payload to dst. The frame stands
// alone: it is sequence zero and final.
func (s *Sealer) Seal(dst, payload []byte) ([]byte, error) {
	return s.seal(dst, payload, 0, true)
}

func (s *Sealer) seal(dst, payload []byte, seq uint64, final bool) ([]byte, error) {
	body := payload
	h := Header{Version: VersionV1, SchemaID: s.Opts.SchemaID, Seq: seq}
	if final {
		h.Flags |= FlagFinal
	}
	if s.Opts.Compress {
		body = s.enc.EncodeAll(payload, nil)
		h.Flags |= FlagCompressed
	}
	sealed := uint64(len(body)) + uint64(s.aead.Overhead())
	if sealed > math.MaxUint32 {
		return nil, fmt.Errorf("%w: body of %d bytes", ErrLength, len(body))
	}
	h.Length = uint32(sealed)
	if _, err := io.ReadFull(s.Opts.Rand, h.Nonce[:]); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	start := len(dst)
	dst = slices.Grow(dst, HeaderSize+int(sealed))[:start+HeaderSize]
	hdr := dst[start:]
	putHeader(hdr, &h)
	return s.aead.Seal(dst, h.Nonce[:], body, hdr), nil
}

// Open authenticates frame, which must hold exactly one frame, and appends
// its payload to dst.
func (s *Sealer) Open(dst, frame []byte) ([]byte, Header, error) {
	h, err := ParseHeader(frame)
	if err != nil {
		return nil, Header{}, err
	}
	body := frame[HeaderSize:]
	if int(h.Length) != len(body) || int(h.Length) < s.aead.Overhead() {
		return nil, h, fmt.Errorf("%w: header says %d, body is %d", ErrLength, h.Length, len(body))
	}
	if !h.Compressed() {
		out, err := s.aead.Open(dst, h.Nonce[:], body, frame[:HeaderSize])
		if err != nil {
			return nil, h, fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return out, h, nil
	}
	plain, err := s.aead.Open(nil, h.Nonce[:], body, frame[:HeaderSize])
	if err != nil {
		return nil, h, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	out, err := s.dec.DecodeAll(plain, dst)
	if err != nil {
		return nil, h, fmt.Errorf("decompress: %w", err)
	}
	return out, h, nil
}

// Close releases the compression state.
func (s *Sealer) Close() error {
	s.dec.Close()
	return s.enc.Close()
}

// Next splits the first frame off *buf, advances *buf past it and returns
// the frame with its decoded header.
func Next(buf *[]byte) ([]byte, Header, error) {
	h, err := ParseHeader(*buf)
	if err != nil {
		return nil, Header{}, err
	}
	n := HeaderSize + int(h.Length)
	if n > len(*buf) {
		return nil, h, fmt.Errorf("%w: need %d bytes, have %d", ErrShortFrame, n, len(*buf))
	}
	return arrayref.Reserve(buf, n), h, nil
}
