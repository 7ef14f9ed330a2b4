package pdu

import (
	"github.com/smppkit/smpp/charset"
)

// SubmitSm is an ESME-to-SMSC short message submission.
type SubmitSm struct {
	Envelope
	Trackable
	Sm
}

// CommandID implements Message.
func (s *SubmitSm) CommandID() CommandID { return SubmitSmID }

// MarshalBinary implements encoding.BinaryMarshaler. SubmitSm.log_id is
// required; its absence is an InvalidArgument.
func (s *SubmitSm) MarshalBinary() ([]byte, error) {
	if s.LogID == "" {
		return nil, wrapf(ErrInvalidArgument, "SubmitSm.log_id is required")
	}
	return marshalSmBody(&s.Sm)
}

func (s *SubmitSm) unmarshalSmBody(body []byte, defaultEncoding string, overrides charset.Overrides) error {
	return s.Sm.unmarshalSmBody(body, defaultEncoding, overrides)
}

// SubmitSmResp acknowledges a SubmitSm with the assigned message_id.
type SubmitSmResp struct {
	Envelope
	Trackable
	MessageID string
}

// CommandID implements Message.
func (s *SubmitSmResp) CommandID() CommandID { return SubmitSmRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *SubmitSmResp) MarshalBinary() ([]byte, error) {
	return writeCString(s.MessageID), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *SubmitSmResp) UnmarshalBinary(body []byte) error {
	r := newBuffer(body)
	id, err := r.ReadCString(0)
	if err != nil {
		return err
	}
	s.MessageID = string(id)
	return nil
}
