package pdu

import (
	"bytes"
	"encoding/binary"
)

// pduReader wraps a byte buffer with the C-octet string, counted octet
// string and big-endian integer read primitives the PDU bodies are built
// from.
type pduReader struct {
	*bytes.Buffer
}

func newBuffer(buf []byte) *pduReader {
	return &pduReader{
		Buffer: bytes.NewBuffer(buf),
	}
}

// ReadCString reads ASCII bytes up to and including a terminating 0x00, and
// returns the bytes without the terminator. limit bounds the C-string
// length (0 means unbounded) and guards against a missing terminator
// running past pdu_length.
func (r *pduReader) ReadCString(limit int) ([]byte, error) {
	var out []byte
	i := 0
	for {
		i++
		b, err := r.ReadByte()
		if err != nil {
			return nil, wrapf(ErrMissingTerminator, "after %d bytes", len(out))
		}
		if b == 0x0 {
			return out, nil
		}
		if limit > 0 && i == limit {
			return nil, wrapf(ErrMissingTerminator, "exceeded limit %d", limit)
		}
		out = append(out, b)
	}
}

// ReadOctetString reads a length byte followed by that many raw bytes
// (counted octet string). If the last byte is 0x00 it is stripped,
// since some peers NUL-terminate counted strings.
func (r *pduReader) ReadOctetString(limit int) ([]byte, error) {
	l, err := r.ReadByte()
	if err != nil {
		return nil, wrapf(ErrTruncatedPdu, "missing octet string length")
	}
	if limit > 0 && int(l) > limit {
		return nil, wrapf(ErrTruncatedPdu, "octet string length %d exceeds limit %d", l, limit)
	}
	out := make([]byte, l)
	n, err := r.Read(out)
	if err != nil && l > 0 {
		return nil, wrapf(ErrTruncatedPdu, "octet string: %v", err)
	}
	if n != int(l) {
		return nil, wrapf(ErrTruncatedPdu, "octet string short read: got %d want %d", n, l)
	}
	if len(out) > 0 && out[len(out)-1] == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

// ReadUint8/16/32 read fixed-width big-endian unsigned integers.
func (r *pduReader) ReadUint8() (uint8, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, wrapf(ErrTruncatedPdu, "missing uint8")
	}
	return b, nil
}

func (r *pduReader) ReadUint16() (uint16, error) {
	var b [2]byte
	n, err := r.Read(b[:])
	if err != nil || n != 2 {
		return 0, wrapf(ErrTruncatedPdu, "missing uint16")
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func (r *pduReader) ReadUint32() (uint32, error) {
	var b [4]byte
	n, err := r.Read(b[:])
	if err != nil || n != 4 {
		return 0, wrapf(ErrTruncatedPdu, "missing uint32")
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadFixed reads exactly n bytes, failing with ErrTruncatedPdu if fewer
// remain.
func (r *pduReader) ReadFixed(n int) ([]byte, error) {
	b := r.Next(n)
	if len(b) != n {
		return nil, wrapf(ErrTruncatedPdu, "need %d bytes, got %d", n, len(b))
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// writeCString appends a NUL-terminated ASCII string.
func writeCString(s string) []byte {
	return append([]byte(s), 0)
}

// writeOctetString prefixes raw bytes with their length as a single byte.
func writeOctetString(b []byte) []byte {
	return append([]byte{byte(len(b))}, b...)
}

func cStringOptsUnmarshal(body []byte) (string, *Options, error) {
	n := -1
	for i := 0; i < len(body); i++ {
		if body[i] == 0 {
			n = i + 1
			break
		}
	}
	if n < 0 {
		return "", nil, wrapf(ErrMissingTerminator, "response body")
	}
	var opts *Options
	if len(body[n:]) > 0 {
		opts = NewOptions()
		if err := opts.UnmarshalBinary(body[n:]); err != nil {
			return "", nil, err
		}
	}
	return string(body[:n-1]), opts, nil
}

func cStringOptsMarshal(str string, opts *Options) ([]byte, error) {
	out := writeCString(str)
	if opts == nil {
		return out, nil
	}
	o, err := opts.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(out, o...), nil
}
