package pdu

import (
	"github.com/smppkit/smpp/charset"
)

// DeliverSm is an SMSC-to-ESME short message delivery, optionally carrying
// a structured delivery Receipt.
type DeliverSm struct {
	Envelope
	Trackable
	Sm
	Receipt *Receipt
}

// CommandID implements Message.
func (d *DeliverSm) CommandID() CommandID { return DeliverSmID }

// MarshalBinary implements encoding.BinaryMarshaler. If Receipt is set and
// ShortMessage is empty, short_message is synthesized from the receipt
// template and esm_class is forced to mark a delivery receipt.
func (d *DeliverSm) MarshalBinary() ([]byte, error) {
	if d.Receipt != nil && d.ShortMessage == "" {
		d.ShortMessage = FormatReceipt(d.Receipt)
		d.EsmClass = ParseEsmClass(0b00000100)
	}
	return marshalSmBody(&d.Sm)
}

// unmarshalSmBody shadows Sm.unmarshalSmBody to extract the delivery
// receipt when esm_class marks this as one.
func (d *DeliverSm) unmarshalSmBody(body []byte, defaultEncoding string, overrides charset.Overrides) error {
	if err := d.Sm.unmarshalSmBody(body, defaultEncoding, overrides); err != nil {
		return err
	}
	if d.Sm.EsmClass.IsDeliveryReceipt() {
		d.Receipt = ParseReceipt(d.Sm.ShortMessage, d.Sm.rawOptions)
	}
	return nil
}

// DeliverSmResp acknowledges a DeliverSm with the message_id it refers to.
type DeliverSmResp struct {
	Envelope
	MessageID string
}

// CommandID implements Message.
func (d *DeliverSmResp) CommandID() CommandID { return DeliverSmRespID }

// MarshalBinary implements encoding.BinaryMarshaler.
func (d *DeliverSmResp) MarshalBinary() ([]byte, error) {
	return writeCString(d.MessageID), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *DeliverSmResp) UnmarshalBinary(body []byte) error {
	r := newBuffer(body)
	id, err := r.ReadCString(0)
	if err != nil {
		return err
	}
	d.MessageID = string(id)
	return nil
}
