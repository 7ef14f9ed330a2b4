package pdu

import (
	"testing"
	"time"

	"github.com/smppkit/smpp/smpptime"
)

func TestReplaceSmRoundTrip(t *testing.T) {
	in := &ReplaceSm{
		MessageID:      "msg-9",
		Source:         PhoneNumber{Number: "1234", Ton: TONInternational, Npi: NPIISDN},
		ValidityPeriod: smpptime.Relative(2 * time.Hour),
		ShortMessage:   "replacement",
	}
	in.Seq = 11
	out := roundTrip(t, in, "", nil)
	rep, ok := out.(*ReplaceSm)
	if !ok {
		t.Fatalf("got %T, want *ReplaceSm", out)
	}
	if rep.MessageID != "msg-9" || rep.ShortMessage != "replacement" {
		t.Errorf("round trip mismatch: %+v", rep)
	}
	if rep.ValidityPeriod.Kind != smpptime.KindRelative || rep.ValidityPeriod.Dur != 2*time.Hour {
		t.Errorf("ValidityPeriod = %+v, want 2h relative", rep.ValidityPeriod)
	}
}

func TestCancelSmRoundTrip(t *testing.T) {
	in := &CancelSm{
		MessageID:   "msg-10",
		Source:      PhoneNumber{Number: "1111", Ton: TONInternational, Npi: NPIISDN},
		Destination: PhoneNumber{Number: "2222", Ton: TONInternational, Npi: NPIISDN},
	}
	out := roundTrip(t, in, "", nil)
	c, ok := out.(*CancelSm)
	if !ok {
		t.Fatalf("got %T, want *CancelSm", out)
	}
	if c.MessageID != "msg-10" || c.Destination.Number != "2222" {
		t.Errorf("round trip mismatch: %+v", c)
	}
}

func TestOutbindRoundTrip(t *testing.T) {
	in := &Outbind{SystemID: "smsc1", Password: "pw"}
	out := roundTrip(t, in, "", nil)
	o, ok := out.(*Outbind)
	if !ok {
		t.Fatalf("got %T, want *Outbind", out)
	}
	if o.SystemID != "smsc1" || o.Password != "pw" {
		t.Errorf("round trip mismatch: %+v", o)
	}
}

func TestAlertNotificationRoundTrip(t *testing.T) {
	in := &AlertNotification{
		Source: PhoneNumber{Number: "555", Ton: TONNational, Npi: NPIISDN},
		Esme:   PhoneNumber{Number: "666", Ton: TONNational, Npi: NPIISDN},
	}
	out := roundTrip(t, in, "", nil)
	a, ok := out.(*AlertNotification)
	if !ok {
		t.Fatalf("got %T, want *AlertNotification", out)
	}
	if a.Source.Number != "555" || a.Esme.Number != "666" {
		t.Errorf("round trip mismatch: %+v", a)
	}
}

func TestSubmitMultiRoundTrip(t *testing.T) {
	in := &SubmitMulti{
		Sm: Sm{
			Source:          PhoneNumber{Number: "from", Ton: TONInternational, Npi: NPIISDN},
			DefaultEncoding: "ascii",
			ShortMessage:    "fanout",
		},
		Destinations: []DestAddress{
			{Address: PhoneNumber{Number: "100", Ton: TONInternational, Npi: NPIISDN}},
			{IsDistList: true, DlName: "ops-list"},
		},
	}
	out := roundTrip(t, in, "ascii", nil)
	m, ok := out.(*SubmitMulti)
	if !ok {
		t.Fatalf("got %T, want *SubmitMulti", out)
	}
	if m.ShortMessage != "fanout" {
		t.Errorf("ShortMessage = %q", m.ShortMessage)
	}
	if len(m.Destinations) != 2 {
		t.Fatalf("Destinations = %+v, want 2 entries", m.Destinations)
	}
	if m.Destinations[0].Address.Number != "100" {
		t.Errorf("dest 0 = %+v", m.Destinations[0])
	}
	if !m.Destinations[1].IsDistList || m.Destinations[1].DlName != "ops-list" {
		t.Errorf("dest 1 = %+v", m.Destinations[1])
	}
}

func TestSubmitMultiRespRoundTrip(t *testing.T) {
	in := &SubmitMultiResp{
		MessageID: "multi-1",
		Unsuccess: []SmeUnsuccess{
			{Address: PhoneNumber{Number: "300", Ton: TONInternational, Npi: NPIISDN}, ErrorCode: uint32(StatusInvDstAdr)},
		},
	}
	out := roundTrip(t, in, "", nil)
	r, ok := out.(*SubmitMultiResp)
	if !ok {
		t.Fatalf("got %T, want *SubmitMultiResp", out)
	}
	if r.MessageID != "multi-1" || len(r.Unsuccess) != 1 {
		t.Fatalf("round trip mismatch: %+v", r)
	}
	if r.Unsuccess[0].ErrorCode != uint32(StatusInvDstAdr) {
		t.Errorf("ErrorCode = %d", r.Unsuccess[0].ErrorCode)
	}
}

func TestDataSmRoundTrip(t *testing.T) {
	in := &DataSm{
		Sm: Sm{
			Source:          PhoneNumber{Number: "from", Ton: TONInternational, Npi: NPIISDN},
			Destination:     PhoneNumber{Number: "to", Ton: TONInternational, Npi: NPIISDN},
			DefaultEncoding: "ascii",
			MessagePayload:  "payload only",
		},
	}
	out := roundTrip(t, in, "ascii", nil)
	d, ok := out.(*DataSm)
	if !ok {
		t.Fatalf("got %T, want *DataSm", out)
	}
	if d.MessagePayload != "payload only" {
		t.Errorf("MessagePayload = %q", d.MessagePayload)
	}
}
