package pdu

import (
	"encoding"
	"encoding/binary"
)

// Header represents the fixed 16-byte PDU header.
type Header interface {
	encoding.BinaryUnmarshaler
	Length() uint32
	CommandID() CommandID
	Status() Status
	Sequence() uint32
}

type header struct {
	length    uint32
	commandID CommandID
	status    Status
	sequence  uint32
}

func (h header) Length() uint32 {
	return h.length
}
func (h header) CommandID() CommandID {
	return h.commandID
}
func (h header) Status() Status {
	return h.status
}
func (h header) Sequence() uint32 {
	return h.sequence
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (h *header) UnmarshalBinary(body []byte) error {
	if len(body) < 16 {
		return wrapf(ErrTruncatedHeader, "got %d bytes", len(body))
	}
	h.length = binary.BigEndian.Uint32(body[:4])
	if h.length < 16 {
		return wrapf(ErrTruncatedPdu, "pdu_length %d under header size", h.length)
	}
	if h.length > MaxPDUSize {
		return wrapf(ErrTruncatedPdu, "pdu_length %d over MaxPDUSize", h.length)
	}
	h.commandID = CommandID(binary.BigEndian.Uint32(body[4:8]))
	if !h.commandID.Known() {
		return wrapf(ErrUnknownCommand, "0x%08x", uint32(h.commandID))
	}
	h.status = Status(binary.BigEndian.Uint32(body[8:12]))
	if !h.status.Known() {
		return wrapf(ErrUnknownStatus, "0x%08x", uint32(h.status))
	}
	h.sequence = binary.BigEndian.Uint32(body[12:16])
	return nil
}

// ParseHeader parses the first 16 bytes of a PDU into a Header.
func ParseHeader(b []byte) (Header, error) {
	h := &header{}
	if err := h.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return h, nil
}
