package pdu

import (
	"encoding"
	"encoding/binary"

	"github.com/smppkit/smpp/charset"
)

// Message is the tagged union of all PDU types. Every variant
// carries its command id and the header fields (sequence, status) a
// session layer assigns before encoding, and knows how to marshal its own
// body.
type Message interface {
	CommandID() CommandID
	Sequence() uint32
	Status() Status
	encoding.BinaryMarshaler
}

// Envelope holds the header fields every Message carries outside of its
// body: the sequence number assigned by the session layer and the status
// code (always StatusOK for requests).
type Envelope struct {
	Seq  uint32
	Stat Status
}

// Sequence returns the PDU's sequence number.
func (e Envelope) Sequence() uint32 { return e.Seq }

// Status returns the PDU's status code.
func (e Envelope) Status() Status { return e.Stat }

func (e *Envelope) setEnvelope(seq uint32, stat Status) {
	e.Seq = seq
	e.Stat = stat
}

type envelopeSetter interface {
	setEnvelope(seq uint32, stat Status)
}

// Trackable carries the out-of-band correlation fields for messages that
// flow end-to-end from user space: a log id and arbitrary extra data for
// collaborators to match requests with responses. Neither field is ever
// put on the wire.
type Trackable struct {
	LogID     string
	ExtraData map[string]interface{}
}

// simpleMessage is satisfied by PDU bodies whose decode needs no text codec:
// binds, enquire link, unbind, generic nack, and the supplemental types
// other than DataSm and SubmitMulti.
type simpleMessage interface {
	Message
	encoding.BinaryUnmarshaler
}

// smMessage is satisfied by SubmitSm, DeliverSm, SubmitMulti and DataSm,
// whose body decode needs the text codec registry.
type smMessage interface {
	Message
	unmarshalSmBody(body []byte, defaultEncoding string, overrides charset.Overrides) error
}

// Encode packs a Message into a complete wire PDU: header prefix (pdu_length,
// command_id, status, sequence_num, all big-endian) followed by the body.
func Encode(msg Message) ([]byte, error) {
	body, err := msg.MarshalBinary()
	if err != nil {
		return nil, err
	}
	total := len(body) + 16
	buf := make([]byte, total)
	binary.BigEndian.PutUint32(buf[:4], uint32(total))
	binary.BigEndian.PutUint32(buf[4:8], uint32(msg.CommandID()))
	binary.BigEndian.PutUint32(buf[8:12], uint32(msg.Status()))
	binary.BigEndian.PutUint32(buf[12:16], msg.Sequence())
	copy(buf[16:], body)
	return buf, nil
}

// Decode parses a complete wire PDU (header already split out by ParseHeader)
// into a typed Message, dispatching on the header's command id.
// defaultEncoding and overrides feed the Sm text codec for
// SubmitSm, DeliverSm, SubmitMulti and DataSm bodies; other message types
// ignore them.
func Decode(pduBytes []byte, header Header, defaultEncoding string, overrides charset.Overrides) (Message, error) {
	if uint32(len(pduBytes)) < header.Length() {
		return nil, wrapf(ErrTruncatedPdu, "have %d bytes, want %d", len(pduBytes), header.Length())
	}
	body := pduBytes[16:header.Length()]

	msg, err := newMessage(header.CommandID())
	if err != nil {
		return nil, err
	}

	if sm, ok := msg.(smMessage); ok {
		err = sm.unmarshalSmBody(body, defaultEncoding, overrides)
	} else if simple, ok := msg.(simpleMessage); ok {
		err = simple.UnmarshalBinary(body)
	} else {
		err = wrapf(ErrUnknownCommand, "0x%08x has no decoder", header.CommandID())
	}
	if err != nil {
		return nil, err
	}

	if es, ok := msg.(envelopeSetter); ok {
		es.setEnvelope(header.Sequence(), header.Status())
	}
	return msg, nil
}

// newMessage is the dispatch table mapping command id to a zero-valued
// Message ready for UnmarshalBinary.
func newMessage(id CommandID) (Message, error) {
	switch id {
	case GenericNackID:
		return &GenericNack{}, nil
	case BindTransceiverID:
		return &BindTransceiver{}, nil
	case BindTransceiverRespID:
		return &BindTransceiverResp{}, nil
	case BindReceiverID:
		return &BindRx{}, nil
	case BindReceiverRespID:
		return &BindRxResp{}, nil
	case BindTransmitterID:
		return &BindTx{}, nil
	case BindTransmitterRespID:
		return &BindTxResp{}, nil
	case SubmitSmID:
		return &SubmitSm{}, nil
	case SubmitSmRespID:
		return &SubmitSmResp{}, nil
	case DeliverSmID:
		return &DeliverSm{}, nil
	case DeliverSmRespID:
		return &DeliverSmResp{}, nil
	case EnquireLinkID:
		return &EnquireLink{}, nil
	case EnquireLinkRespID:
		return &EnquireLinkResp{}, nil
	case UnbindID:
		return &Unbind{}, nil
	case UnbindRespID:
		return &UnbindResp{}, nil
	case QuerySmID:
		return &QuerySm{}, nil
	case QuerySmRespID:
		return &QuerySmResp{}, nil
	case ReplaceSmID:
		return &ReplaceSm{}, nil
	case ReplaceSmRespID:
		return &ReplaceSmResp{}, nil
	case CancelSmID:
		return &CancelSm{}, nil
	case CancelSmRespID:
		return &CancelSmResp{}, nil
	case OutbindID:
		return &Outbind{}, nil
	case SubmitMultiID:
		return &SubmitMulti{}, nil
	case SubmitMultiRespID:
		return &SubmitMultiResp{}, nil
	case AlertNotificationID:
		return &AlertNotification{}, nil
	case DataSmID:
		return &DataSm{}, nil
	case DataSmRespID:
		return &DataSmResp{}, nil
	}
	return nil, wrapf(ErrUnknownCommand, "0x%08x", id)
}

// IsRequest reports whether id identifies a request PDU (as opposed to a
// response); responses are generic_nack and the *_RESP command ids.
func IsRequest(id CommandID) bool {
	switch id {
	case GenericNackID,
		BindReceiverRespID,
		BindTransmitterRespID,
		BindTransceiverRespID,
		QuerySmRespID,
		SubmitSmRespID,
		DeliverSmRespID,
		UnbindRespID,
		ReplaceSmRespID,
		CancelSmRespID,
		EnquireLinkRespID,
		SubmitMultiRespID,
		DataSmRespID:
		return false
	default:
		return true
	}
}
