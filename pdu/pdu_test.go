package pdu

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/smppkit/smpp/charset"
	"github.com/smppkit/smpp/smpptime"
)

// roundTrip encodes msg, parses the resulting header, and decodes it back
// into a fresh Message, the way a session layer would.
func roundTrip(t *testing.T, msg Message, defaultEncoding string, overrides charset.Overrides) Message {
	t.Helper()
	wire, err := Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	h, err := ParseHeader(wire[:16])
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Length() != uint32(len(wire)) {
		t.Fatalf("header length %d, wire length %d", h.Length(), len(wire))
	}
	out, err := Decode(wire, h, defaultEncoding, overrides)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out
}

// TestSubmitSmShortPath checks that a short ASCII
// message stays inline in short_message and round-trips untouched.
func TestSubmitSmShortPath(t *testing.T) {
	in := &SubmitSm{
		Trackable: Trackable{LogID: "log-1"},
		Sm: Sm{
			ServiceType:     "",
			Source:          PhoneNumber{Number: "test", Ton: TONInternational, Npi: NPIISDN},
			Destination:     PhoneNumber{Number: "test2", Ton: TONInternational, Npi: NPIISDN},
			DefaultEncoding: "ascii",
			ShortMessage:    "msg",
		},
	}
	in.Seq = 1

	out := roundTrip(t, in, "ascii", nil)
	sub, ok := out.(*SubmitSm)
	if !ok {
		t.Fatalf("got %T, want *SubmitSm", out)
	}
	if sub.ShortMessage != "msg" {
		t.Errorf("ShortMessage = %q, want msg", sub.ShortMessage)
	}
	if sub.MessagePayload != "" {
		t.Errorf("MessagePayload = %q, want empty", sub.MessagePayload)
	}
	if sub.Source.Number != "test" || sub.Destination.Number != "test2" {
		t.Errorf("addresses not preserved: %+v", sub)
	}
	if sub.Sequence() != 1 {
		t.Errorf("Sequence() = %d, want 1", sub.Sequence())
	}
}

// TestSubmitSmAutoMessagePayload checks that a message
// over 254 bytes is promoted to MESSAGE_PAYLOAD when AutoMessagePayload is
// enabled, and short_message is left empty on decode.
func TestSubmitSmAutoMessagePayload(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	in := &SubmitSm{
		Trackable: Trackable{LogID: "log-2"},
		Sm: Sm{
			Source:             PhoneNumber{Number: "from"},
			Destination:        PhoneNumber{Number: "to"},
			DefaultEncoding:    "ascii",
			ShortMessage:       string(long),
			AutoMessagePayload: true,
		},
	}

	out := roundTrip(t, in, "ascii", nil)
	sub := out.(*SubmitSm)
	if sub.MessagePayload != string(long) {
		t.Errorf("MessagePayload length = %d, want %d", len(sub.MessagePayload), len(long))
	}
	if sub.ShortMessage != "" {
		t.Errorf("ShortMessage = %q, want empty when promoted", sub.ShortMessage)
	}
}

// TestSubmitSmAutoMessagePayloadDenied checks that the
// same oversized message with AutoMessagePayload disabled fails encoding.
func TestSubmitSmAutoMessagePayloadDenied(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}
	in := &SubmitSm{
		Trackable: Trackable{LogID: "log-3"},
		Sm: Sm{
			Source:          PhoneNumber{Number: "from"},
			Destination:     PhoneNumber{Number: "to"},
			DefaultEncoding: "ascii",
			ShortMessage:    string(long),
		},
	}
	_, err := Encode(in)
	if !errors.Is(err, ErrShortMessageTooLong) {
		t.Fatalf("Encode error = %v, want ErrShortMessageTooLong", err)
	}
}

// TestSubmitSmRequiresLogID checks the log_id invariant.
func TestSubmitSmRequiresLogID(t *testing.T) {
	in := &SubmitSm{
		Sm: Sm{
			Source:          PhoneNumber{Number: "from"},
			Destination:     PhoneNumber{Number: "to"},
			DefaultEncoding: "ascii",
			ShortMessage:    "hi",
		},
	}
	_, err := Encode(in)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Encode error = %v, want ErrInvalidArgument", err)
	}
}

// TestSubmitSmAutoEncodingFallback checks that a rune the default
// encoding can't represent forces a ucs2 fallback, pinning Encoding.
func TestSubmitSmAutoEncodingFallback(t *testing.T) {
	in := &SubmitSm{
		Trackable: Trackable{LogID: "log-4"},
		Sm: Sm{
			Source:          PhoneNumber{Number: "from"},
			Destination:     PhoneNumber{Number: "to"},
			DefaultEncoding: "gsm0338",
			ShortMessage:    "héllo 日本語",
		},
	}
	out := roundTrip(t, in, "gsm0338", nil)
	sub := out.(*SubmitSm)
	if sub.Encoding != "ucs2" {
		t.Errorf("Encoding = %q, want ucs2 fallback", sub.Encoding)
	}
	if sub.ShortMessage != "héllo 日本語" {
		t.Errorf("ShortMessage = %q, want round-tripped text", sub.ShortMessage)
	}
}

// TestSubmitSmExplicitEncodingNoFallback checks that an explicit Encoding
// is used verbatim even if it would fail: no fallback for explicit.
func TestSubmitSmExplicitEncodingNoFallback(t *testing.T) {
	in := &SubmitSm{
		Trackable: Trackable{LogID: "log-5"},
		Sm: Sm{
			Source:          PhoneNumber{Number: "from"},
			Destination:     PhoneNumber{Number: "to"},
			DefaultEncoding: "ascii",
			Encoding:        "gsm0338",
			ShortMessage:    "日本語",
		},
	}
	_, err := Encode(in)
	if !errors.Is(err, ErrEncodingFailure) {
		t.Fatalf("Encode error = %v, want ErrEncodingFailure (no fallback for explicit encoding)", err)
	}
}

// TestDeliverSmReceiptRoundTrip covers synthesizing
// short_message from a Receipt on encode, and re-extracting it on decode.
func TestDeliverSmReceiptRoundTrip(t *testing.T) {
	receipt := &Receipt{
		ID:    "abc123",
		Sub:   1,
		Dlvrd: 1,
		Stat:  DelStatDelivered,
		Err:   "000",
		Text:  "hello",
	}
	in := &DeliverSm{
		Trackable: Trackable{LogID: "log-6"},
		Sm: Sm{
			Source:          PhoneNumber{Number: "1234"},
			Destination:     PhoneNumber{Number: "5678"},
			DefaultEncoding: "ascii",
		},
		Receipt: receipt,
	}

	out := roundTrip(t, in, "ascii", nil)
	dlv := out.(*DeliverSm)
	if dlv.Receipt == nil {
		t.Fatal("Receipt not extracted on decode")
	}
	if dlv.Receipt.ID != "abc123" || dlv.Receipt.Stat != DelStatDelivered || dlv.Receipt.Text != "hello" {
		t.Errorf("Receipt = %+v", dlv.Receipt)
	}
	if !dlv.EsmClass.IsDeliveryReceipt() {
		t.Errorf("EsmClass = %+v, want delivery receipt type", dlv.EsmClass)
	}
}

// TestBindTransceiverRedactsPassword checks that RedactedView never
// surfaces the plaintext password.
func TestBindTransceiverRedactsPassword(t *testing.T) {
	b := &BindTransceiver{
		bindBody: bindBody{
			SystemID:         "esme1",
			Password:         "s3cret",
			InterfaceVersion: 0x34,
		},
	}
	view := b.RedactedView()
	if view["password"] == "s3cret" {
		t.Error("RedactedView leaked the password")
	}
	if view["system_id"] != "esme1" {
		t.Errorf("system_id = %v, want esme1", view["system_id"])
	}
}

// TestBindTransceiverRespHex pins the wire layout for a bind response
// carrying an sc_interface_version TLV; trailing TLVs are parsed
// leniently.
func TestBindTransceiverRespHex(t *testing.T) {
	in := &BindTransceiverResp{
		SystemID: "smsc1",
		Options:  NewOptions().SetScInterfaceVersion(0x34),
	}
	body, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	want := "736d736331" + "00" + "0210" + "0001" + "34"
	if got := hex.EncodeToString(body); got != want {
		t.Errorf("MarshalBinary() = %s, want %s", got, want)
	}

	var out BindTransceiverResp
	if err := out.UnmarshalBinary(body); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if out.SystemID != "smsc1" {
		t.Errorf("SystemID = %q, want smsc1", out.SystemID)
	}
	ver, ok := out.ScInterfaceVersion()
	if !ok || ver != 0x34 {
		t.Errorf("ScInterfaceVersion() = %d, %v, want 0x34, true", ver, ok)
	}
}

// TestUnbindRoundTrip checks the header-only PDUs carry no body.
func TestUnbindRoundTrip(t *testing.T) {
	in := &Unbind{}
	in.Seq = 7
	out := roundTrip(t, in, "", nil)
	if _, ok := out.(*Unbind); !ok {
		t.Fatalf("got %T, want *Unbind", out)
	}
	if out.Sequence() != 7 {
		t.Errorf("Sequence() = %d, want 7", out.Sequence())
	}
}

// TestEnquireLinkRoundTrip checks that the EnquireLink keep-alive probe
// decodes back to its own type.
func TestEnquireLinkRoundTrip(t *testing.T) {
	in := &EnquireLink{}
	in.Seq = 9
	out := roundTrip(t, in, "", nil)
	if _, ok := out.(*EnquireLink); !ok {
		t.Fatalf("got %T, want *EnquireLink", out)
	}
}

// TestGenericNackRoundTrip checks status propagates through the envelope.
func TestGenericNackRoundTrip(t *testing.T) {
	in := &GenericNack{}
	in.Seq = 3
	in.Stat = StatusInvCmdID
	out := roundTrip(t, in, "", nil)
	nack, ok := out.(*GenericNack)
	if !ok {
		t.Fatalf("got %T, want *GenericNack", out)
	}
	if nack.Status() != StatusInvCmdID {
		t.Errorf("Status() = %v, want StatusInvCmdID", nack.Status())
	}
}

// TestOptionsDeterministicOrder checks that MarshalBinary is reproducible
// across repeated calls despite Go's randomized map iteration.
func TestOptionsDeterministicOrder(t *testing.T) {
	opts := NewOptions()
	opts.SetSingle(TagMsMsgWaitFacilities, 1)
	opts.SetDouble(TagUserMessageReference, 2)
	opts.SetScInterfaceVersion(0x34)
	first, err := opts.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := opts.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("MarshalBinary is not deterministic: %x vs %x", first, again)
		}
	}
}

// TestQuerySmRoundTrip exercises the supplemental query_sm_resp body with
// an absolute final_date.
func TestQuerySmRoundTrip(t *testing.T) {
	at, err := time.Parse(time.RFC3339, "2024-01-01T12:00:00Z")
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	in := &QuerySmResp{
		MessageID:    "msg-1",
		FinalDate:    smpptime.Absolute(at),
		MessageState: 2,
		ErrorCode:    0,
	}
	body, err := in.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var out QuerySmResp
	if err := out.UnmarshalBinary(body); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if out.MessageID != "msg-1" || out.MessageState != 2 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

// TestSubmitSmWireLayout pins the encoded byte layout of a minimal latin_1
// submission: sm_length of 2 followed by the raw text bytes, no
// message_payload TLV.
func TestSubmitSmWireLayout(t *testing.T) {
	in := &SubmitSm{
		Trackable: Trackable{LogID: "L1"},
		Sm: Sm{
			Source:          PhoneNumber{Number: "1", Ton: TONInternational, Npi: NPIISDN},
			Destination:     PhoneNumber{Number: "2", Ton: TONInternational, Npi: NPIISDN},
			Encoding:        "latin_1",
			DefaultEncoding: "latin_1",
			ShortMessage:    "hi",
		},
	}
	in.Seq = 1
	wire, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// service_type(1) + ton/npi+src(2+2) + ton/npi+dst(2+2) + esm/proto/prio(3)
	// + sched(1) + validity(1) + reg/replace/dc/dflt(4) + sm_length(1) + "hi"(2)
	body := wire[16:]
	smLen := body[len(body)-3]
	if smLen != 2 {
		t.Errorf("sm_length = %d, want 2", smLen)
	}
	if !bytes.Equal(body[len(body)-2:], []byte{0x68, 0x69}) {
		t.Errorf("short_message bytes = %x, want 6869", body[len(body)-2:])
	}
	if bytes.Contains(body, []byte{0x04, 0x24}) {
		t.Error("unexpected message_payload TLV in short-path encode")
	}
}

// TestBoolTlvRoundTrip checks that a declared-bool tag serializes with
// length 0 and decodes back to presence.
func TestBoolTlvRoundTrip(t *testing.T) {
	in := &SubmitSm{
		Trackable: Trackable{LogID: "log-7"},
		Sm: Sm{
			Source:          PhoneNumber{Number: "from"},
			Destination:     PhoneNumber{Number: "to"},
			DefaultEncoding: "ascii",
			ShortMessage:    "hi",
			OptionalParams: []OptionalParam{
				{Tag: TagAlertOnMessageDeliv, Value: BoolValue()},
			},
		},
	}
	wire, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	tlv := []byte{0x13, 0x0C, 0x00, 0x00}
	if !bytes.Contains(wire, tlv) {
		t.Fatalf("encoded PDU %x missing zero-length TLV %x", wire, tlv)
	}
	h, err := ParseHeader(wire[:16])
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	out, err := Decode(wire, h, "ascii", nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sub := out.(*SubmitSm)
	if len(sub.OptionalParams) != 1 || sub.OptionalParams[0].Value.Kind != KindBool {
		t.Errorf("OptionalParams = %+v, want one bool param", sub.OptionalParams)
	}
}

// TestSubmitSmRejectsMessagePayloadParam checks that the message_payload
// tag cannot be smuggled in through OptionalParams.
func TestSubmitSmRejectsMessagePayloadParam(t *testing.T) {
	in := &SubmitSm{
		Trackable: Trackable{LogID: "log-8"},
		Sm: Sm{
			Source:          PhoneNumber{Number: "from"},
			Destination:     PhoneNumber{Number: "to"},
			DefaultEncoding: "ascii",
			ShortMessage:    "hi",
			OptionalParams: []OptionalParam{
				{Tag: TagMessagePayload, Value: StringValue("sneaky")},
			},
		},
	}
	_, err := Encode(in)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Encode error = %v, want ErrInvalidArgument", err)
	}
}

// TestParseHeaderErrors checks the header error kinds: short input, an
// unassigned command id and an unassigned status code.
func TestParseHeaderErrors(t *testing.T) {
	_, err := ParseHeader([]byte{0, 0, 0})
	if !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("short input error = %v, want ErrTruncatedHeader", err)
	}

	bad := make([]byte, 16)
	copy(bad, []byte{0, 0, 0, 16, 0xDE, 0xAD, 0xBE, 0xEF})
	_, err = ParseHeader(bad)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("bad command error = %v, want ErrUnknownCommand", err)
	}

	bad = make([]byte, 16)
	copy(bad, []byte{0, 0, 0, 16, 0, 0, 0, 0x04, 0, 0, 0xFF, 0x00})
	_, err = ParseHeader(bad)
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("bad status error = %v, want ErrUnknownStatus", err)
	}
}

// TestSubmitSmRequiresExactlyOneBody checks that short_message and
// message_payload are mutually exclusive and one of them is required.
func TestSubmitSmRequiresExactlyOneBody(t *testing.T) {
	base := Sm{
		Source:          PhoneNumber{Number: "from"},
		Destination:     PhoneNumber{Number: "to"},
		DefaultEncoding: "ascii",
	}

	both := base
	both.ShortMessage = "a"
	both.MessagePayload = "b"
	_, err := Encode(&SubmitSm{Trackable: Trackable{LogID: "l"}, Sm: both})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("both set: error = %v, want ErrInvalidArgument", err)
	}

	_, err = Encode(&SubmitSm{Trackable: Trackable{LogID: "l"}, Sm: base})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("neither set: error = %v, want ErrInvalidArgument", err)
	}
}
