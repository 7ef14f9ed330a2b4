package pdu

// Unbind requests an orderly close of the session; it
// carries no body.
type Unbind struct {
	Envelope
}

// CommandID implements Message.
func (u *Unbind) CommandID() CommandID { return UnbindID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (u *Unbind) MarshalBinary() ([]byte, error) { return nil, nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (u *Unbind) UnmarshalBinary(body []byte) error { return nil }

// UnbindResp acknowledges an Unbind; it carries no body.
type UnbindResp struct {
	Envelope
}

// CommandID implements Message.
func (u *UnbindResp) CommandID() CommandID { return UnbindRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (u *UnbindResp) MarshalBinary() ([]byte, error) { return nil, nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (u *UnbindResp) UnmarshalBinary(body []byte) error { return nil }

// EnquireLink is a session keep-alive probe; it carries no body.
type EnquireLink struct {
	Envelope
}

// CommandID implements Message.
func (e *EnquireLink) CommandID() CommandID { return EnquireLinkID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *EnquireLink) MarshalBinary() ([]byte, error) { return nil, nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *EnquireLink) UnmarshalBinary(body []byte) error { return nil }

// EnquireLinkResp acknowledges an EnquireLink; it carries no body.
type EnquireLinkResp struct {
	Envelope
}

// CommandID implements Message.
func (e *EnquireLinkResp) CommandID() CommandID { return EnquireLinkRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *EnquireLinkResp) MarshalBinary() ([]byte, error) { return nil, nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *EnquireLinkResp) UnmarshalBinary(body []byte) error { return nil }

// GenericNack rejects a PDU the peer could not parse or dispatch; it
// carries no body beyond the header status code.
type GenericNack struct {
	Envelope
	Trackable
}

// CommandID implements Message.
func (g *GenericNack) CommandID() CommandID { return GenericNackID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (g *GenericNack) MarshalBinary() ([]byte, error) { return nil, nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (g *GenericNack) UnmarshalBinary(body []byte) error { return nil }
