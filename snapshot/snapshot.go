// Package snapshot wraps an encoded list in a self-describing envelope so
// that it can be stored or shipped without out-of-band metadata.
//
// Layout:
//
//	[4]  magic "PLST"
//	[1]  version
//	[1]  element kind (primlist.Kind)
//	[1]  encoding
//	[1]  compression
//	[4]  uncompressed payload size, big endian
//	[..] payload
package snapshot

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/rony4d/go-primlist/primlist"
)

// Version is the envelope version written by Encode.
const Version = 1

// HeaderSize is the size of the fixed envelope header.
const HeaderSize = 12

// MaxPayloadSize bounds the uncompressed payload accepted by Decode.
const MaxPayloadSize = 64 << 20

var magic = []byte("PLST")

var (
	ErrBadMagic       = errors.New("snapshot: bad magic")
	ErrBadVersion     = errors.New("snapshot: unsupported version")
	ErrKindMismatch   = errors.New("snapshot: element kind mismatch")
	ErrUnknownFormat  = errors.New("snapshot: unknown encoding or compression")
	ErrTruncated      = errors.New("snapshot: truncated")
	ErrPayloadTooLong = errors.New("snapshot: payload too large")
)

// Encoding selects the list serialization inside the envelope.
type Encoding uint8

const (
	// EncodingParcel is the fixed-width layout of List.MarshalBinary.
	EncodingParcel Encoding = 0
	// EncodingCSER is the compact layout of List.MarshalCompact.
	EncodingCSER Encoding = 1
	// EncodingRLP is List.EncodeRLP.
	EncodingRLP Encoding = 2
)

var encodingNames = map[Encoding]string{
	EncodingParcel: "parcel",
	EncodingCSER:   "cser",
	EncodingRLP:    "rlp",
}

func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("encoding(%d)", uint8(e))
}

// ParseEncoding maps a name accepted on the command line to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	for e, name := range encodingNames {
		if name == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: encoding %q", ErrUnknownFormat, s)
}

// Header is the decoded envelope header.
type Header struct {
	Version     uint8
	Kind        primlist.Kind
	Encoding    Encoding
	Compression Compression
	Size        uint32
}

// Encode serializes l with enc, compresses the result with comp and
// prepends the header. If comp does not shrink the payload it is stored
// uncompressed and the header says so.
func Encode[T primlist.Element](l *primlist.List[T], enc Encoding, comp Compression) ([]byte, error) {
	payload, err := marshal(l, enc)
	if err != nil {
		return nil, err
	}
	if len(payload) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLong, len(payload))
	}

	body, usedComp, err := compress(payload, comp)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(body))
	out = append(out, magic...)
	out = append(out, Version, byte(l.Kind()), byte(enc), byte(usedComp))
	out = append(out, bigendian.Uint32ToBytes(uint32(len(payload)))...)
	out = append(out, body...)
	return out, nil
}

// ReadHeader parses and validates the envelope header of data.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}
	if !bytes.Equal(data[:4], magic) {
		return Header{}, ErrBadMagic
	}
	h := Header{
		Version:     data[4],
		Kind:        primlist.Kind(data[5]),
		Encoding:    Encoding(data[6]),
		Compression: Compression(data[7]),
		Size:        bigendian.BytesToUint32(data[8:12]),
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	if h.Kind != primlist.KindInt && h.Kind != primlist.KindLong {
		return Header{}, fmt.Errorf("%w: kind %d", ErrUnknownFormat, h.Kind)
	}
	if _, ok := encodingNames[h.Encoding]; !ok {
		return Header{}, fmt.Errorf("%w: %s", ErrUnknownFormat, h.Encoding)
	}
	if _, ok := compressionNames[h.Compression]; !ok {
		return Header{}, fmt.Errorf("%w: %s", ErrUnknownFormat, h.Compression)
	}
	if h.Size > MaxPayloadSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrPayloadTooLong, h.Size)
	}
	return h, nil
}

// Decode reverses Encode. The envelope must hold elements of kind T.
func Decode[T primlist.Element](data []byte) (*primlist.List[T], Header, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, Header{}, err
	}
	if want := primlist.KindOf[T](); h.Kind != want {
		return nil, h, fmt.Errorf("%w: have %s, want %s", ErrKindMismatch, h.Kind, want)
	}

	payload, err := decompress(data[HeaderSize:], h.Compression, int(h.Size))
	if err != nil {
		return nil, h, err
	}

	l := primlist.New[T]()
	if err := unmarshal(l, h.Encoding, payload); err != nil {
		return nil, h, err
	}
	return l, h, nil
}

func marshal[T primlist.Element](l *primlist.List[T], enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingParcel:
		return l.MarshalBinary()
	case EncodingCSER:
		return l.MarshalCompact()
	case EncodingRLP:
		return rlp.EncodeToBytes(l)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, enc)
	}
}

func unmarshal[T primlist.Element](l *primlist.List[T], enc Encoding, payload []byte) error {
	switch enc {
	case EncodingParcel:
		return l.UnmarshalBinary(payload)
	case EncodingCSER:
		return l.UnmarshalCompact(payload)
	case EncodingRLP:
		return rlp.DecodeBytes(payload, l)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, enc)
	}
}
