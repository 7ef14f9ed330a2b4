package pdu

import (
	"errors"

	"github.com/smppkit/smpp/charset"
	"github.com/smppkit/smpp/smpptime"
)

// Sm holds the fields SubmitSm and DeliverSm share. It is embedded by
// value in both.
type Sm struct {
	ServiceType           string
	Source                PhoneNumber
	Destination           PhoneNumber
	EsmClass              EsmClass
	ProtocolID            byte
	PriorityFlag          byte
	ScheduleDeliveryTime  smpptime.Value
	ValidityPeriod        smpptime.Value
	RegisteredDelivery    RegisteredDelivery
	ReplaceIfPresentFlag  byte
	Encoding              string // explicit override; "" means auto
	DefaultEncoding       string // fallback name; also the decode-default
	Overrides             charset.Overrides
	SmDefaultMsgID        byte
	ShortMessage          string
	MessagePayload        string
	OptionalParams        []OptionalParam
	AutoMessagePayload    bool
	ErrorHandling         string // "strict" | "replace" | "ignore", default strict

	rawOptions *Options // retained after decode for receipt TLV fallback
}

func (s *Sm) errorHandling() (charset.ErrorHandling, error) {
	if s.ErrorHandling == "" {
		return charset.Strict, nil
	}
	return charset.ParseErrorHandling(s.ErrorHandling)
}

func (s *Sm) validate() error {
	if (s.ShortMessage != "") == (s.MessagePayload != "") {
		return wrapf(ErrInvalidArgument, "exactly one of short_message or message_payload must be set")
	}
	for _, p := range s.OptionalParams {
		if p.Tag == TagMessagePayload {
			return wrapf(ErrInvalidArgument, "optional_params must not contain MESSAGE_PAYLOAD")
		}
	}
	return nil
}

// encodeText implements the auto-encoding policy: an explicit
// Encoding is used verbatim with no fallback; otherwise DefaultEncoding is
// tried first under strict handling, falling back to ucs2 (and pinning
// Encoding to "ucs2") on EncodingFailure.
func (s *Sm) encodeText(text string) (encName string, out []byte, err error) {
	eh, err := s.errorHandling()
	if err != nil {
		return "", nil, err
	}

	if s.Encoding != "" {
		codec, err := charset.Resolve(s.Encoding, s.Overrides)
		if err != nil {
			return "", nil, err
		}
		b, err := codec.Encode(text, eh)
		if err != nil {
			return "", nil, wrapf(ErrEncodingFailure, "encoding %q: %v", s.Encoding, err)
		}
		return s.Encoding, b, nil
	}

	defaultCodec, err := charset.Resolve(s.DefaultEncoding, s.Overrides)
	if err != nil {
		return "", nil, err
	}
	b, err := defaultCodec.Encode(text, charset.Strict)
	if err == nil {
		return s.DefaultEncoding, b, nil
	}
	if !errors.Is(err, charset.ErrEncodingFailure) {
		return "", nil, err
	}

	ucs2Codec, err := charset.Resolve("ucs2", s.Overrides)
	if err != nil {
		return "", nil, err
	}
	b, err = ucs2Codec.Encode(text, eh)
	if err != nil {
		return "", nil, wrapf(ErrEncodingFailure, "ucs2 fallback: %v", err)
	}
	s.Encoding = "ucs2"
	return "ucs2", b, nil
}

func timeToCString(v smpptime.Value) ([]byte, error) {
	s, err := smpptime.Format(v)
	if err != nil {
		if errors.Is(err, smpptime.ErrValidityOutOfRange) {
			return nil, wrapf(ErrValidityOutOfRange, "%v", err)
		}
		return nil, wrapf(ErrInvalidArgument, "time: %v", err)
	}
	return writeCString(s), nil
}

// marshalSmBody packs the body shared by SubmitSm/DeliverSm: text codec
// selection, message_payload promotion, and the fixed field layout.
func marshalSmBody(s *Sm) ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	text := s.ShortMessage
	alreadyPayload := false
	if text == "" && s.MessagePayload != "" {
		text = s.MessagePayload
		alreadyPayload = true
	}

	encName, smBytes, err := s.encodeText(text)
	if err != nil {
		return nil, err
	}
	dataCoding := charset.DataCodingForName(encName)

	var shortOut, payloadBytes []byte
	switch {
	case alreadyPayload:
		payloadBytes = smBytes
	case len(smBytes) > 254:
		if !s.AutoMessagePayload {
			return nil, wrapf(ErrShortMessageTooLong, "%d bytes", len(smBytes))
		}
		payloadBytes = smBytes
	default:
		shortOut = smBytes
	}

	scheduleBytes, err := timeToCString(s.ScheduleDeliveryTime)
	if err != nil {
		return nil, err
	}
	validityBytes, err := timeToCString(s.ValidityPeriod)
	if err != nil {
		return nil, err
	}

	var buf []byte
	buf = append(buf, writeCString(s.ServiceType)...)
	buf = append(buf, byte(s.Source.Ton), byte(s.Source.Npi))
	buf = append(buf, writeCString(s.Source.Number)...)
	buf = append(buf, byte(s.Destination.Ton), byte(s.Destination.Npi))
	buf = append(buf, writeCString(s.Destination.Number)...)
	buf = append(buf, s.EsmClass.Byte(), s.ProtocolID, s.PriorityFlag)
	buf = append(buf, scheduleBytes...)
	buf = append(buf, validityBytes...)
	buf = append(buf, s.RegisteredDelivery.Byte(), s.ReplaceIfPresentFlag, dataCoding, s.SmDefaultMsgID)
	buf = append(buf, byte(len(shortOut)))
	buf = append(buf, shortOut...)

	opts := NewOptions()
	if payloadBytes != nil {
		opts.SetMessagePayload(payloadBytes)
	}
	if err := opts.SetParams(s.OptionalParams); err != nil {
		return nil, err
	}
	optBytes, err := opts.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf = append(buf, optBytes...)
	return buf, nil
}

// unmarshalSmBody parses the body shared by SubmitSm/DeliverSm, the
// mirror of marshalSmBody.
func (s *Sm) unmarshalSmBody(body []byte, defaultEncoding string, overrides charset.Overrides) error {
	r := newBuffer(body)

	serviceType, err := r.ReadCString(0)
	if err != nil {
		return err
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
	srcNum, err := r.ReadCString(0)
	if err != nil {
		return err
	}
	s.Source = PhoneNumber{Number: string(srcNum), Ton: TON(srcTon), Npi: NPI(srcNpi)}

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
	s.Destination = PhoneNumber{Number: string(dstNum), Ton: TON(dstTon), Npi: NPI(dstNpi)}

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
		encName = defaultEncoding
	}
	codec, err := charset.Resolve(encName, overrides)
	if err != nil {
		return err
	}
	s.DefaultEncoding = defaultEncoding
	s.Overrides = overrides
	s.Encoding = encName

	if payload, ok := opts.MessagePayload(); ok {
		text, err := codec.Decode(payload)
		if err != nil {
			return err
		}
		s.MessagePayload = text
		s.ShortMessage = ""
	} else {
		text, err := codec.Decode(smBytes)
		if err != nil {
			return err
		}
		s.ShortMessage = text
		s.MessagePayload = ""
	}

	params, err := opts.Params()
	if err != nil {
		return err
	}
	s.OptionalParams = params
	s.rawOptions = opts
	return nil
}
