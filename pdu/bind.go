package pdu

// bindBody holds the fields shared by the bind request variants:
// BindTransceiver, BindTx, BindRx.
type bindBody struct {
	SystemID         string
	Password         string
	SystemType       string
	InterfaceVersion byte
	AddrTon          TON
	AddrNpi          NPI
	AddressRange     string
}

func marshalBindBody(b *bindBody) []byte {
	out := writeCString(b.SystemID)
	out = append(out, writeCString(b.Password)...)
	out = append(out, writeCString(b.SystemType)...)
	out = append(out, byte(b.InterfaceVersion), byte(b.AddrTon), byte(b.AddrNpi))
	out = append(out, writeCString(b.AddressRange)...)
	return out
}

func unmarshalBindBody(body []byte, b *bindBody) error {
	r := newBuffer(body)
	systemID, err := r.ReadCString(16)
	if err != nil {
		return wrapf(ErrInvalidArgument, "system_id: %v", err)
	}
	b.SystemID = string(systemID)
	password, err := r.ReadCString(9)
	if err != nil {
		return wrapf(ErrInvalidArgument, "password: %v", err)
	}
	b.Password = string(password)
	systemType, err := r.ReadCString(13)
	if err != nil {
		return wrapf(ErrInvalidArgument, "system_type: %v", err)
	}
	b.SystemType = string(systemType)
	ver, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.InterfaceVersion = ver
	ton, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.AddrTon = TON(ton)
	npi, err := r.ReadUint8()
	if err != nil {
		return err
	}
	b.AddrNpi = NPI(npi)
	addrRange, err := r.ReadCString(41)
	if err != nil {
		return wrapf(ErrInvalidArgument, "address_range: %v", err)
	}
	b.AddressRange = string(addrRange)
	return nil
}

// BindTransceiver opens a session in transceiver mode, able to both submit
// and receive short messages.
type BindTransceiver struct {
	Envelope
	bindBody
}

// CommandID implements Message.
func (b *BindTransceiver) CommandID() CommandID { return BindTransceiverID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *BindTransceiver) MarshalBinary() ([]byte, error) {
	return marshalBindBody(&b.bindBody), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *BindTransceiver) UnmarshalBinary(body []byte) error {
	return unmarshalBindBody(body, &b.bindBody)
}

// RedactedView renders b as a map with Password redacted, suitable for
// logging a bind attempt without leaking credentials.
func (b *BindTransceiver) RedactedView() map[string]any {
	return map[string]any{
		"system_id":         b.SystemID,
		"password":          "[redacted]",
		"system_type":       b.SystemType,
		"interface_version": b.InterfaceVersion,
		"addr_ton":          b.AddrTon,
		"addr_npi":          b.AddrNpi,
		"address_range":     b.AddressRange,
	}
}

// BindTransceiverResp acknowledges a BindTransceiver with the SMSC's
// system_id and, optionally, an sc_interface_version TLV. Any trailing
// optional parameters are parsed leniently rather than rejected.
type BindTransceiverResp struct {
	Envelope
	SystemID string
	Options  *Options
}

// CommandID implements Message.
func (b *BindTransceiverResp) CommandID() CommandID { return BindTransceiverRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *BindTransceiverResp) MarshalBinary() ([]byte, error) {
	return cStringOptsMarshal(b.SystemID, b.Options)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *BindTransceiverResp) UnmarshalBinary(body []byte) error {
	var err error
	b.SystemID, b.Options, err = cStringOptsUnmarshal(body)
	return err
}

// ScInterfaceVersion returns the negotiated sc_interface_version TLV, if
// the SMSC sent one.
func (b *BindTransceiverResp) ScInterfaceVersion() (int, bool) {
	if b.Options == nil {
		return 0, false
	}
	return b.Options.ScInterfaceVersion()
}

// BindTx opens a session in transmitter mode, able only to submit short
// messages.
type BindTx struct {
	Envelope
	bindBody
}

// CommandID implements Message.
func (b *BindTx) CommandID() CommandID { return BindTransmitterID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *BindTx) MarshalBinary() ([]byte, error) {
	return marshalBindBody(&b.bindBody), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *BindTx) UnmarshalBinary(body []byte) error {
	return unmarshalBindBody(body, &b.bindBody)
}

// RedactedView renders b as a map with Password redacted.
func (b *BindTx) RedactedView() map[string]any {
	return map[string]any{
		"system_id":         b.SystemID,
		"password":          "[redacted]",
		"system_type":       b.SystemType,
		"interface_version": b.InterfaceVersion,
		"addr_ton":          b.AddrTon,
		"addr_npi":          b.AddrNpi,
		"address_range":     b.AddressRange,
	}
}

// BindTxResp acknowledges a BindTx.
type BindTxResp struct {
	Envelope
	SystemID string
	Options  *Options
}

// CommandID implements Message.
func (b *BindTxResp) CommandID() CommandID { return BindTransmitterRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *BindTxResp) MarshalBinary() ([]byte, error) {
	return cStringOptsMarshal(b.SystemID, b.Options)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *BindTxResp) UnmarshalBinary(body []byte) error {
	var err error
	b.SystemID, b.Options, err = cStringOptsUnmarshal(body)
	return err
}

// BindRx opens a session in receiver mode, able only to receive short
// messages.
type BindRx struct {
	Envelope
	bindBody
}

// CommandID implements Message.
func (b *BindRx) CommandID() CommandID { return BindReceiverID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *BindRx) MarshalBinary() ([]byte, error) {
	return marshalBindBody(&b.bindBody), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *BindRx) UnmarshalBinary(body []byte) error {
	return unmarshalBindBody(body, &b.bindBody)
}

// RedactedView renders b as a map with Password redacted.
func (b *BindRx) RedactedView() map[string]any {
	return map[string]any{
		"system_id":         b.SystemID,
		"password":          "[redacted]",
		"system_type":       b.SystemType,
		"interface_version": b.InterfaceVersion,
		"addr_ton":          b.AddrTon,
		"addr_npi":          b.AddrNpi,
		"address_range":     b.AddressRange,
	}
}

// BindRxResp acknowledges a BindRx.
type BindRxResp struct {
	Envelope
	SystemID string
	Options  *Options
}

// CommandID implements Message.
func (b *BindRxResp) CommandID() CommandID { return BindReceiverRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *BindRxResp) MarshalBinary() ([]byte, error) {
	return cStringOptsMarshal(b.SystemID, b.Options)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *BindRxResp) UnmarshalBinary(body []byte) error {
	var err error
	b.SystemID, b.Options, err = cStringOptsUnmarshal(body)
	return err
}
