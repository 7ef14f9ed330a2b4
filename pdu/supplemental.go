package pdu

import (
	"github.com/smppkit/smpp/charset"
	"github.com/smppkit/smpp/smpptime"
)

// ReplaceSm replaces the short message, schedule and validity of a
// previously submitted message identified by message_id.
type ReplaceSm struct {
	Envelope
	MessageID            string
	Source               PhoneNumber
	ScheduleDeliveryTime smpptime.Value
	ValidityPeriod       smpptime.Value
	RegisteredDelivery   RegisteredDelivery
	SmDefaultMsgID       byte
	ShortMessage         string
}

// CommandID implements Message.
func (r *ReplaceSm) CommandID() CommandID { return ReplaceSmID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *ReplaceSm) MarshalBinary() ([]byte, error) {
	out := writeCString(r.MessageID)
	out = append(out, byte(r.Source.Ton), byte(r.Source.Npi))
	out = append(out, writeCString(r.Source.Number)...)
	schedBytes, err := timeToCString(r.ScheduleDeliveryTime)
	if err != nil {
		return nil, err
	}
	out = append(out, schedBytes...)
	validBytes, err := timeToCString(r.ValidityPeriod)
	if err != nil {
		return nil, err
	}
	out = append(out, validBytes...)
	out = append(out, r.RegisteredDelivery.Byte(), r.SmDefaultMsgID)
	sm := []byte(r.ShortMessage)
	if len(sm) > 254 {
		return nil, wrapf(ErrShortMessageTooLong, "%d bytes", len(sm))
	}
	out = append(out, byte(len(sm)))
	out = append(out, sm...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *ReplaceSm) UnmarshalBinary(body []byte) error {
	buf := newBuffer(body)
	id, err := buf.ReadCString(65)
	if err != nil {
		return wrapf(ErrInvalidArgument, "message_id: %v", err)
	}
	r.MessageID = string(id)
	ton, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	npi, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	num, err := buf.ReadCString(21)
	if err != nil {
		return wrapf(ErrInvalidArgument, "source_addr: %v", err)
	}
	r.Source = PhoneNumber{Number: string(num), Ton: TON(ton), Npi: NPI(npi)}
	schedBytes, err := buf.ReadCString(17)
	if err != nil {
		return err
	}
	r.ScheduleDeliveryTime, err = smpptime.Parse(schedBytes)
	if err != nil {
		return wrapf(ErrInvalidArgument, "schedule_delivery_time: %v", err)
	}
	validBytes, err := buf.ReadCString(17)
	if err != nil {
		return err
	}
	r.ValidityPeriod, err = smpptime.Parse(validBytes)
	if err != nil {
		return wrapf(ErrInvalidArgument, "validity_period: %v", err)
	}
	regDel, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	r.RegisteredDelivery = ParseRegisteredDelivery(regDel)
	r.SmDefaultMsgID, err = buf.ReadUint8()
	if err != nil {
		return err
	}
	smLen, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	sm, err := buf.ReadFixed(int(smLen))
	if err != nil {
		return err
	}
	r.ShortMessage = string(sm)
	return nil
}

// ReplaceSmResp acknowledges a ReplaceSm; it carries no body.
type ReplaceSmResp struct {
	Envelope
}

// CommandID implements Message.
func (r *ReplaceSmResp) CommandID() CommandID { return ReplaceSmRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *ReplaceSmResp) MarshalBinary() ([]byte, error) { return nil, nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *ReplaceSmResp) UnmarshalBinary(body []byte) error { return nil }

// CancelSm cancels a previously submitted short message that has not yet
// reached a final state.
type CancelSm struct {
	Envelope
	ServiceType string
	MessageID   string
	Source      PhoneNumber
	Destination PhoneNumber
}

// CommandID implements Message.
func (c *CancelSm) CommandID() CommandID { return CancelSmID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *CancelSm) MarshalBinary() ([]byte, error) {
	out := writeCString(c.ServiceType)
	out = append(out, writeCString(c.MessageID)...)
	out = append(out, byte(c.Source.Ton), byte(c.Source.Npi))
	out = append(out, writeCString(c.Source.Number)...)
	out = append(out, byte(c.Destination.Ton), byte(c.Destination.Npi))
	out = append(out, writeCString(c.Destination.Number)...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *CancelSm) UnmarshalBinary(body []byte) error {
	buf := newBuffer(body)
	serviceType, err := buf.ReadCString(6)
	if err != nil {
		return wrapf(ErrInvalidArgument, "service_type: %v", err)
	}
	c.ServiceType = string(serviceType)
	id, err := buf.ReadCString(65)
	if err != nil {
		return wrapf(ErrInvalidArgument, "message_id: %v", err)
	}
	c.MessageID = string(id)
	srcTon, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	srcNpi, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	srcNum, err := buf.ReadCString(21)
	if err != nil {
		return wrapf(ErrInvalidArgument, "source_addr: %v", err)
	}
	c.Source = PhoneNumber{Number: string(srcNum), Ton: TON(srcTon), Npi: NPI(srcNpi)}
	dstTon, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	dstNpi, err := buf.ReadUint8()
	if err != nil {
		return err
	}
	dstNum, err := buf.ReadCString(21)
	if err != nil {
		return wrapf(ErrInvalidArgument, "destination_addr: %v", err)
	}
	c.Destination = PhoneNumber{Number: string(dstNum), Ton: TON(dstTon), Npi: NPI(dstNpi)}
	return nil
}

// CancelSmResp acknowledges a CancelSm; it carries no body.
type CancelSmResp struct {
	Envelope
}

// CommandID implements Message.
func (c *CancelSmResp) CommandID() CommandID { return CancelSmRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *CancelSmResp) MarshalBinary() ([]byte, error) { return nil, nil }

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *CancelSmResp) UnmarshalBinary(body []byte) error { return nil }

// Outbind is sent by an SMSC to request that an ESME bind as a receiver,
// outside of the usual ESME-initiated bind flow. It has no response.
type Outbind struct {
	Envelope
	SystemID string
	Password string
}

// CommandID implements Message.
func (o *Outbind) CommandID() CommandID { return OutbindID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (o *Outbind) MarshalBinary() ([]byte, error) {
	out := writeCString(o.SystemID)
	out = append(out, writeCString(o.Password)...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (o *Outbind) UnmarshalBinary(body []byte) error {
	buf := newBuffer(body)
	systemID, err := buf.ReadCString(16)
	if err != nil {
		return wrapf(ErrInvalidArgument, "system_id: %v", err)
	}
	o.SystemID = string(systemID)
	password, err := buf.ReadCString(9)
	if err != nil {
		return wrapf(ErrInvalidArgument, "password: %v", err)
	}
	o.Password = string(password)
	return nil
}

// DestAddress is one entry of a SubmitMulti destination list: either a
// direct SME address or a previously-defined distribution list name.
type DestAddress struct {
	IsDistList bool
	Address    PhoneNumber
	DlName     string
}

func (d DestAddress) marshal() []byte {
	if d.IsDistList {
		out := []byte{0x02}
		return append(out, writeCString(d.DlName)...)
	}
	out := []byte{0x01, byte(d.Address.Ton), byte(d.Address.Npi)}
	return append(out, writeCString(d.Address.Number)...)
}

func readDestAddress(r *pduReader) (DestAddress, error) {
	flag, err := r.ReadUint8()
	if err != nil {
		return DestAddress{}, err
	}
	switch flag {
	case 0x01:
		ton, err := r.ReadUint8()
		if err != nil {
			return DestAddress{}, err
		}
		npi, err := r.ReadUint8()
		if err != nil {
			return DestAddress{}, err
		}
		num, err := r.ReadCString(21)
		if err != nil {
			return DestAddress{}, wrapf(ErrInvalidArgument, "dest_address: %v", err)
		}
		return DestAddress{Address: PhoneNumber{Number: string(num), Ton: TON(ton), Npi: NPI(npi)}}, nil
	case 0x02:
		name, err := r.ReadCString(21)
		if err != nil {
			return DestAddress{}, wrapf(ErrInvalidArgument, "dl_name: %v", err)
		}
		return DestAddress{IsDistList: true, DlName: string(name)}, nil
	default:
		return DestAddress{}, wrapf(ErrInvalidArgument, "dest_flag: 0x%02x", flag)
	}
}

// SubmitMulti submits one short message for delivery to multiple
// destinations or distribution lists.
type SubmitMulti struct {
	Envelope
	Sm
	Destinations []DestAddress
}

// CommandID implements Message.
func (s *SubmitMulti) CommandID() CommandID { return SubmitMultiID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *SubmitMulti) MarshalBinary() ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	encName, smBytes, err := s.encodeText(s.ShortMessage)
	if err != nil {
		return nil, err
	}
	dataCoding := charset.DataCodingForName(encName)
	if len(smBytes) > 254 {
		return nil, wrapf(ErrShortMessageTooLong, "%d bytes", len(smBytes))
	}

	scheduleBytes, err := timeToCString(s.ScheduleDeliveryTime)
	if err != nil {
		return nil, err
	}
	validityBytes, err := timeToCString(s.ValidityPeriod)
	if err != nil {
		return nil, err
	}

	out := writeCString(s.ServiceType)
	out = append(out, byte(s.Source.Ton), byte(s.Source.Npi))
	out = append(out, writeCString(s.Source.Number)...)
	out = append(out, byte(len(s.Destinations)))
	for _, d := range s.Destinations {
		out = append(out, d.marshal()...)
	}
	out = append(out, s.EsmClass.Byte(), s.ProtocolID, s.PriorityFlag)
	out = append(out, scheduleBytes...)
	out = append(out, validityBytes...)
	out = append(out, s.RegisteredDelivery.Byte(), s.ReplaceIfPresentFlag, dataCoding, s.SmDefaultMsgID)
	out = append(out, byte(len(smBytes)))
	out = append(out, smBytes...)

	opts := NewOptions()
	if err := opts.SetParams(s.OptionalParams); err != nil {
		return nil, err
	}
	optBytes, err := opts.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out = append(out, optBytes...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *SubmitMulti) UnmarshalBinary(body []byte) error {
	r := newBuffer(body)
	serviceType, err := r.ReadCString(6)
	if err != nil {
		return wrapf(ErrInvalidArgument, "service_type: %v", err)
	}
	s.ServiceType = string(serviceType)
	srcTon, err := r.ReadUint8()
	if err != nil {
		return err
	}
	srcNpi, err := r.ReadUint8()
	if err != nil {
		return err
	}
	srcNum, err := r.ReadCString(21)
	if err != nil {
		return wrapf(ErrInvalidArgument, "source_addr: %v", err)
	}
	s.Source = PhoneNumber{Number: string(srcNum), Ton: TON(srcTon), Npi: NPI(srcNpi)}
	numDests, err := r.ReadUint8()
	if err != nil {
		return err
	}
	s.Destinations = make([]DestAddress, 0, numDests)
	for i := 0; i < int(numDests); i++ {
		d, err := readDestAddress(r)
		if err != nil {
			return err
		}
		s.Destinations = append(s.Destinations, d)
	}

	esmByte, err := r.ReadUint8()
	if err != nil {
		return err
	}
	s.EsmClass = ParseEsmClass(esmByte)
	s.ProtocolID, err = r.ReadUint8()
	if err != nil {
		return err
	}
	s.PriorityFlag, err = r.ReadUint8()
	if err != nil {
		return err
	}
	schedBytes, err := r.ReadCString(17)
	if err != nil {
		return err
	}
	s.ScheduleDeliveryTime, err = smpptime.Parse(schedBytes)
	if err != nil {
		return wrapf(ErrInvalidArgument, "schedule_delivery_time: %v", err)
	}
	validBytes, err := r.ReadCString(17)
	if err != nil {
		return err
	}
	s.ValidityPeriod, err = smpptime.Parse(validBytes)
	if err != nil {
		return wrapf(ErrInvalidArgument, "validity_period: %v", err)
	}
	regDel, err := r.ReadUint8()
	if err != nil {
		return err
	}
	s.RegisteredDelivery = ParseRegisteredDelivery(regDel)
	s.ReplaceIfPresentFlag, err = r.ReadUint8()
	if err != nil {
		return err
	}
	dataCoding, err := r.ReadUint8()
	if err != nil {
		return err
	}
	s.SmDefaultMsgID, err = r.ReadUint8()
	if err != nil {
		return err
	}
	smLength, err := r.ReadUint8()
	if err != nil {
		return err
	}
	smBytes, err := r.ReadFixed(int(smLength))
	if err != nil {
		return err
	}

	opts := NewOptions()
	if rest := r.Bytes(); len(rest) > 0 {
		if err := opts.UnmarshalBinary(rest); err != nil {
			return err
		}
	}

	encName := charset.NameForDataCoding(dataCoding)
	if dataCoding == 0 {
		encName = s.DefaultEncoding
	}
	codec, err := charset.Resolve(encName, s.Overrides)
	if err != nil {
		return err
	}
	text, err := codec.Decode(smBytes)
	if err != nil {
		return err
	}
	s.ShortMessage = text
	s.Encoding = encName

	params, err := opts.Params()
	if err != nil {
		return err
	}
	s.OptionalParams = params
	s.rawOptions = opts
	return nil
}

// unmarshalSmBody implements smMessage so SubmitMulti can go through the
// same Decode dispatch as SubmitSm/DeliverSm despite its differently
// shaped, multi-destination body.
func (s *SubmitMulti) unmarshalSmBody(body []byte, defaultEncoding string, overrides charset.Overrides) error {
	s.DefaultEncoding = defaultEncoding
	s.Overrides = overrides
	return s.UnmarshalBinary(body)
}

// SmeUnsuccess records a destination that SubmitMulti failed to reach.
type SmeUnsuccess struct {
	Address   PhoneNumber
	ErrorCode uint32
}

// SubmitMultiResp acknowledges a SubmitMulti with the assigned message_id
// and any destinations it could not reach.
type SubmitMultiResp struct {
	Envelope
	MessageID string
	Unsuccess []SmeUnsuccess
}

// CommandID implements Message.
func (s *SubmitMultiResp) CommandID() CommandID { return SubmitMultiRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *SubmitMultiResp) MarshalBinary() ([]byte, error) {
	out := writeCString(s.MessageID)
	out = append(out, byte(len(s.Unsuccess)))
	for _, u := range s.Unsuccess {
		out = append(out, byte(u.Address.Ton), byte(u.Address.Npi))
		out = append(out, writeCString(u.Address.Number)...)
		errBytes := make([]byte, 4)
		errBytes[0] = byte(u.ErrorCode >> 24)
		errBytes[1] = byte(u.ErrorCode >> 16)
		errBytes[2] = byte(u.ErrorCode >> 8)
		errBytes[3] = byte(u.ErrorCode)
		out = append(out, errBytes...)
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *SubmitMultiResp) UnmarshalBinary(body []byte) error {
	r := newBuffer(body)
	id, err := r.ReadCString(65)
	if err != nil {
		return wrapf(ErrInvalidArgument, "message_id: %v", err)
	}
	s.MessageID = string(id)
	n, err := r.ReadUint8()
	if err != nil {
		return err
	}
	s.Unsuccess = make([]SmeUnsuccess, 0, n)
	for i := 0; i < int(n); i++ {
		ton, err := r.ReadUint8()
		if err != nil {
			return err
		}
		npi, err := r.ReadUint8()
		if err != nil {
			return err
		}
		num, err := r.ReadCString(21)
		if err != nil {
			return wrapf(ErrInvalidArgument, "unsuccess_sme addr: %v", err)
		}
		code, err := r.ReadUint32()
		if err != nil {
			return err
		}
		s.Unsuccess = append(s.Unsuccess, SmeUnsuccess{
			Address:   PhoneNumber{Number: string(num), Ton: TON(ton), Npi: NPI(npi)},
			ErrorCode: code,
		})
	}
	return nil
}

// AlertNotification is sent by an SMSC to notify a bound ESME that a
// previously inaccessible mobile subscriber has become available. It has
// no response.
type AlertNotification struct {
	Envelope
	Source PhoneNumber
	Esme   PhoneNumber
}

// CommandID implements Message.
func (a *AlertNotification) CommandID() CommandID { return AlertNotificationID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *AlertNotification) MarshalBinary() ([]byte, error) {
	out := []byte{byte(a.Source.Ton), byte(a.Source.Npi)}
	out = append(out, writeCString(a.Source.Number)...)
	out = append(out, byte(a.Esme.Ton), byte(a.Esme.Npi))
	out = append(out, writeCString(a.Esme.Number)...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *AlertNotification) UnmarshalBinary(body []byte) error {
	r := newBuffer(body)
	srcTon, err := r.ReadUint8()
	if err != nil {
		return err
	}
	srcNpi, err := r.ReadUint8()
	if err != nil {
		return err
	}
	srcNum, err := r.ReadCString(65)
	if err != nil {
		return wrapf(ErrInvalidArgument, "source_addr: %v", err)
	}
	a.Source = PhoneNumber{Number: string(srcNum), Ton: TON(srcTon), Npi: NPI(srcNpi)}
	esmeTon, err := r.ReadUint8()
	if err != nil {
		return err
	}
	esmeNpi, err := r.ReadUint8()
	if err != nil {
		return err
	}
	esmeNum, err := r.ReadCString(65)
	if err != nil {
		return wrapf(ErrInvalidArgument, "esme_addr: %v", err)
	}
	a.Esme = PhoneNumber{Number: string(esmeNum), Ton: TON(esmeTon), Npi: NPI(esmeNpi)}
	return nil
}

// DataSm is the interactive, payload-only counterpart of SubmitSm/DeliverSm
// used for data-mode transfers. It shares Sm's text/TLV
// machinery but has no schedule_delivery_time, validity_period or
// sm_default_msg_id fields on the wire.
type DataSm struct {
	Envelope
	Trackable
	Sm
}

// CommandID implements Message.
func (d *DataSm) CommandID() CommandID { return DataSmID }

// MarshalBinary implements encoding.BinaryMarshaler. data_sm has no
// message body field of its own: any text goes through MESSAGE_PAYLOAD,
// so a non-empty ShortMessage is promoted unconditionally.
func (d *DataSm) MarshalBinary() ([]byte, error) {
	out := writeCString(d.ServiceType)
	out = append(out, byte(d.Source.Ton), byte(d.Source.Npi))
	out = append(out, writeCString(d.Source.Number)...)
	out = append(out, byte(d.Destination.Ton), byte(d.Destination.Npi))
	out = append(out, writeCString(d.Destination.Number)...)
	out = append(out, d.EsmClass.Byte())
	out = append(out, d.RegisteredDelivery.Byte())

	opts := NewOptions()
	if d.ShortMessage != "" || d.MessagePayload != "" {
		text := d.MessagePayload
		if text == "" {
			text = d.ShortMessage
		}
		encName, smBytes, err := d.encodeText(text)
		if err != nil {
			return nil, err
		}
		out = append(out, charset.DataCodingForName(encName))
		opts.SetMessagePayload(smBytes)
	} else {
		out = append(out, charset.DataCodingForName(d.Encoding))
	}
	if err := opts.SetParams(d.OptionalParams); err != nil {
		return nil, err
	}
	optBytes, err := opts.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out = append(out, optBytes...)
	return out, nil
}

// unmarshalSmBody decodes data_sm's body, which omits the scheduling
// fields SubmitSm/DeliverSm carry and never inlines short_message.
func (d *DataSm) unmarshalSmBody(body []byte, defaultEncoding string, overrides charset.Overrides) error {
	r := newBuffer(body)
	serviceType, err := r.ReadCString(0)
	if err != nil {
		return err
	}
	d.ServiceType = string(serviceType)
	srcTon, err := r.ReadUint8()
	if err != nil {
		return err
	}
	srcNpi, err := r.ReadUint8()
	if err != nil {
		return err
	}
	srcNum, err := r.ReadCString(0)
	if err != nil {
		return err
	}
	d.Source = PhoneNumber{Number: string(srcNum), Ton: TON(srcTon), Npi: NPI(srcNpi)}
	dstTon, err := r.ReadUint8()
	if err != nil {
		return err
	}
	dstNpi, err := r.ReadUint8()
	if err != nil {
		return err
	}
	dstNum, err := r.ReadCString(0)
	if err != nil {
		return err
	}
	d.Destination = PhoneNumber{Number: string(dstNum), Ton: TON(dstTon), Npi: NPI(dstNpi)}
	esmByte, err := r.ReadUint8()
	if err != nil {
		return err
	}
	d.EsmClass = ParseEsmClass(esmByte)
	regDel, err := r.ReadUint8()
	if err != nil {
		return err
	}
	d.RegisteredDelivery = ParseRegisteredDelivery(regDel)
	dataCoding, err := r.ReadUint8()
	if err != nil {
		return err
	}

	opts := NewOptions()
	if rest := r.Bytes(); len(rest) > 0 {
		if err := opts.UnmarshalBinary(rest); err != nil {
			return err
		}
	}

	encName := charset.NameForDataCoding(dataCoding)
	if dataCoding == 0 {
		encName = defaultEncoding
	}
	d.DefaultEncoding = defaultEncoding
	d.Overrides = overrides
	d.Encoding = encName
	if payload, ok := opts.MessagePayload(); ok {
		codec, err := charset.Resolve(encName, overrides)
		if err != nil {
			return err
		}
		text, err := codec.Decode(payload)
		if err != nil {
			return err
		}
		d.MessagePayload = text
	}

	params, err := opts.Params()
	if err != nil {
		return err
	}
	d.OptionalParams = params
	d.rawOptions = opts
	return nil
}

// DataSmResp acknowledges a DataSm with the assigned message_id.
type DataSmResp struct {
	Envelope
	MessageID string
}

// CommandID implements Message.
func (d *DataSmResp) CommandID() CommandID { return DataSmRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (d *DataSmResp) MarshalBinary() ([]byte, error) {
	return writeCString(d.MessageID), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *DataSmResp) UnmarshalBinary(body []byte) error {
	r := newBuffer(body)
	id, err := r.ReadCString(0)
	if err != nil {
		return err
	}
	d.MessageID = string(id)
	return nil
}
