package pdu

import (
	"github.com/smppkit/smpp/smpptime"
)

// QuerySm asks the SMSC for the current state of a previously submitted
// short message.
type QuerySm struct {
	Envelope
	MessageID string
	Source    PhoneNumber
}

// CommandID implements Message.
func (q *QuerySm) CommandID() CommandID { return QuerySmID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (q *QuerySm) MarshalBinary() ([]byte, error) {
	out := writeCString(q.MessageID)
	out = append(out, byte(q.Source.Ton), byte(q.Source.Npi))
	out = append(out, writeCString(q.Source.Number)...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (q *QuerySm) UnmarshalBinary(body []byte) error {
	r := newBuffer(body)
	id, err := r.ReadCString(65)
	if err != nil {
		return wrapf(ErrInvalidArgument, "message_id: %v", err)
	}
	q.MessageID = string(id)
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
		return wrapf(ErrInvalidArgument, "source_addr: %v", err)
	}
	q.Source = PhoneNumber{Number: string(num), Ton: TON(ton), Npi: NPI(npi)}
	return nil
}

// QuerySmResp answers a QuerySm with the short message's final state.
type QuerySmResp struct {
	Envelope
	MessageID    string
	FinalDate    smpptime.Value
	MessageState byte
	ErrorCode    byte
}

// CommandID implements Message.
func (q *QuerySmResp) CommandID() CommandID { return QuerySmRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (q *QuerySmResp) MarshalBinary() ([]byte, error) {
	out := writeCString(q.MessageID)
	dateBytes, err := timeToCString(q.FinalDate)
	if err != nil {
		return nil, err
	}
	out = append(out, dateBytes...)
	out = append(out, q.MessageState, q.ErrorCode)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (q *QuerySmResp) UnmarshalBinary(body []byte) error {
	r := newBuffer(body)
	id, err := r.ReadCString(65)
	if err != nil {
		return wrapf(ErrInvalidArgument, "message_id: %v", err)
	}
	q.MessageID = string(id)
	dateBytes, err := r.ReadCString(17)
	if err != nil {
		return wrapf(ErrInvalidArgument, "final_date: %v", err)
	}
	q.FinalDate, err = smpptime.Parse(dateBytes)
	if err != nil {
		return wrapf(ErrInvalidArgument, "final_date: %v", err)
	}
	q.MessageState, err = r.ReadUint8()
	if err != nil {
		return err
	}
	q.ErrorCode, err = r.ReadUint8()
	if err != nil {
		return err
	}
	return nil
}
