package pdu

import (
	"encoding/binary"
	"sort"
)

// ValueKind is the declared wire type of an optional parameter's value, per
// its tag. The tag set is closed: every TagID in constants.go has exactly
// one ValueKind, encoded in tagKinds below.
type ValueKind int

// Optional parameter value kinds.
const (
	KindInt ValueKind = iota
	KindBool
	KindString
)

// tagMeta is a tag's declared value kind and, for KindInt tags, its
// big-endian byte width.
type tagMeta struct {
	kind  ValueKind
	width int // only meaningful for KindInt: 1, 2 or 4
}

// tagKinds is the closed mapping from optional tag to declared value type.
// MESSAGE_PAYLOAD is present so the TLV codec can recognize and special-case
// it, but it is never surfaced as a user-visible OptionalParam.
var tagKinds = map[TagID]tagMeta{
	TagDestAddrSubUnit:        {KindInt, 1},
	TagDestNetworkType:        {KindInt, 1},
	TagDestBearerType:         {KindInt, 1},
	TagDestTelematicsID:       {KindInt, 2},
	TagSourceAddrSubunit:      {KindInt, 1},
	TagSourceNetworkType:      {KindInt, 1},
	TagSourceBearerType:       {KindInt, 1},
	TagSourceTelematicsID:     {KindInt, 1},
	TagQosTimeToLive:          {KindInt, 4},
	TagPayloadType:            {KindInt, 1},
	TagAdditionalStatusInfoTe: {KindString, 0},
	TagReceiptedMessageID:     {KindString, 0},
	TagMsMsgWaitFacilities:    {KindInt, 1},
	TagPrivacyIndicator:       {KindInt, 1},
	TagSourceSubaddress:       {KindString, 0},
	TagDestSubaddress:         {KindString, 0},
	TagUserMessageReference:   {KindInt, 2},
	TagUserResponseCode:       {KindInt, 1},
	TagSourcePort:             {KindInt, 2},
	TagDestinationPort:        {KindInt, 2},
	TagSarMsgRefNum:           {KindInt, 2},
	TagLanguageIndicator:      {KindInt, 1},
	TagSarTotalSegments:       {KindInt, 1},
	TagSarSegmentSeqnum:       {KindInt, 1},
	TagScInterfaceVersion:     {KindInt, 1},
	TagCallbackNumPresInd:     {KindInt, 1},
	TagCallbackNumA:           {KindString, 0},
	TagNumberOfMessages:       {KindInt, 1},
	TagCallbackNum:            {KindString, 0},
	TagDpfResult:              {KindInt, 1},
	TagSetDPF:                 {KindInt, 1},
	TagMsAvailabilityStatus:   {KindInt, 1},
	TagNetworkErrorCode:       {KindString, 0},
	TagMessagePayload:         {KindString, 0},
	TagDeliveryFailureReason:  {KindInt, 1},
	TagMoreMessagesToSend:     {KindInt, 1},
	TagMessageState:           {KindInt, 1},
	TagUssdServiceOp:          {KindInt, 1},
	TagDisplayTime:            {KindInt, 1},
	TagSmsSignal:              {KindInt, 2},
	TagMsValidity:             {KindInt, 1},
	TagAlertOnMessageDeliv:    {KindBool, 0},
	TagItsReplyType:           {KindInt, 1},
	TagItsSessionInfo:         {KindString, 0},
}

// OptionalValue is an optional parameter's typed value: exactly one of
// Int, Bool (presence) or Str,
// discriminated by Kind which mirrors the tag's declared type.
type OptionalValue struct {
	Kind ValueKind
	Int  uint32
	Str  string
}

// IntValue builds an integer-kinded OptionalValue.
func IntValue(v uint32) OptionalValue { return OptionalValue{Kind: KindInt, Int: v} }

// BoolValue builds the presence-only bool OptionalValue.
func BoolValue() OptionalValue { return OptionalValue{Kind: KindBool} }

// StringValue builds a string-kinded OptionalValue.
func StringValue(v string) OptionalValue { return OptionalValue{Kind: KindString, Str: v} }

// OptionalParam is a single TLV optional parameter: a tag plus its typed
// value.
type OptionalParam struct {
	Tag   TagID
	Value OptionalValue
}

// Options is the low-level TLV bag used while marshaling/unmarshaling a PDU
// body: a map from tag to raw value bytes, ordered on output by tag number
// for determinism (Go map iteration order is not stable, so this ordering
// matters for reproducible encodes).
type Options struct {
	fields map[TagID][]byte
}

// NewOptions creates new options map.
func NewOptions() *Options {
	return &Options{
		fields: make(map[TagID][]byte),
	}
}

// Set assigns new TLV field.
func (o *Options) Set(tag TagID, val []byte) *Options {
	o.fields[tag] = val
	return o
}

// SetSingle assigns new TLV field with one byte value.
func (o *Options) SetSingle(tag TagID, val int) *Options {
	o.fields[tag] = []byte{byte(val)}
	return o
}

// SetDouble assigns new TLV field with two bytes value.
func (o *Options) SetDouble(tag TagID, val int) *Options {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(val))
	o.fields[tag] = b
	return o
}

// SetQuad assigns new TLV field with four bytes value.
func (o *Options) SetQuad(tag TagID, val uint32) *Options {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, val)
	o.fields[tag] = b
	return o
}

// SetString assigns new TLV field with string value.
func (o *Options) SetString(tag TagID, val string) *Options {
	o.fields[tag] = []byte(val)
	return o
}

// SetCString assigns new TLV field with string value.
func (o *Options) SetCString(tag TagID, val string) *Options {
	o.fields[tag] = append([]byte(val), 0)
	return o
}

// SetPresence assigns a zero-length (bool) TLV field.
func (o *Options) SetPresence(tag TagID) *Options {
	o.fields[tag] = []byte{}
	return o
}

// Get tries to get byte value out of TLV field if present. If it's not it
// returns ok as false.
func (o *Options) Get(tag TagID) ([]byte, bool) {
	val, ok := o.fields[tag]
	return val, ok
}

// GetSingle returns tag value as one byte integer.
func (o *Options) GetSingle(tag TagID) (int, bool) {
	val, ok := o.fields[tag]
	if !ok || len(val) == 0 {
		return 0, false
	}
	return int(val[0]), true
}

// GetDouble returns tag value as two byte integer.
func (o *Options) GetDouble(tag TagID) (int, bool) {
	b, ok := o.fields[tag]
	if !ok || len(b) < 2 {
		return 0, false
	}
	return int(binary.BigEndian.Uint16(b)), true
}

// GetString returns tag value as string.
func (o *Options) GetString(tag TagID) (string, bool) {
	b, ok := o.fields[tag]
	if !ok {
		return "", false
	}
	return string(b), true
}

// GetCString returns tag value as string.
func (o *Options) GetCString(tag TagID) (string, bool) {
	b, ok := o.fields[tag]
	if !ok || len(b) == 0 {
		return "", false
	}
	if b[len(b)-1] == 0 {
		return string(b[:len(b)-1]), true
	}
	return string(b), true
}

// ScInterfaceVersion is helper function for getting this option.
func (o *Options) ScInterfaceVersion() (int, bool) {
	return o.GetSingle(TagScInterfaceVersion)
}

// SetScInterfaceVersion is helper function for setting this option.
func (o *Options) SetScInterfaceVersion(val int) *Options {
	return o.SetSingle(TagScInterfaceVersion, val)
}

// ReceiptedMessageID is helper function for getting this option.
func (o *Options) ReceiptedMessageID() (string, bool) {
	return o.GetCString(TagReceiptedMessageID)
}

// SetReceiptedMessageID is helper function for setting this option.
func (o *Options) SetReceiptedMessageID(val string) *Options {
	return o.SetCString(TagReceiptedMessageID, val)
}

// MessagePayload is helper function for getting the raw message_payload TLV.
func (o *Options) MessagePayload() ([]byte, bool) {
	return o.Get(TagMessagePayload)
}

// SetMessagePayload is helper function for setting the raw message_payload TLV.
func (o *Options) SetMessagePayload(val []byte) *Options {
	return o.Set(TagMessagePayload, val)
}

// MarshalBinary implements encoding.BinaryMarshaler interface. Tags are
// emitted in ascending numeric order so encodes are reproducible despite
// the underlying map having randomized iteration order.
func (o *Options) MarshalBinary() ([]byte, error) {
	tags := make([]TagID, 0, len(o.fields))
	for tag := range o.fields {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	var out []byte
	for _, tag := range tags {
		val := o.fields[tag]
		tlv := make([]byte, 4+len(val))
		binary.BigEndian.PutUint16(tlv[:2], uint16(tag))
		binary.BigEndian.PutUint16(tlv[2:4], uint16(len(val)))
		copy(tlv[4:], val)
		out = append(out, tlv...)
	}
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler interface.
func (o *Options) UnmarshalBinary(buf []byte) error {
	n := 0
	for n < len(buf) {
		if len(buf)-n < 4 {
			return wrapf(ErrTruncatedPdu, "optional field header at offset %d", n)
		}
		tag := TagID(binary.BigEndian.Uint16(buf[n : n+2]))
		l := int(binary.BigEndian.Uint16(buf[n+2 : n+4]))
		if n+4+l > len(buf) {
			return wrapf(ErrTruncatedPdu, "optional field value for tag 0x%04x (len %d)", tag, l)
		}
		o.fields[tag] = buf[n+4 : n+4+l]
		n += 4 + l
	}
	return nil
}

// Params converts the raw TLV bag into a typed OptionalParam list,
// dispatching each tag to its declared ValueKind.
// TagMessagePayload is never included: it is consumed separately by Sm
// decode and is never a user-visible optional parameter.
func (o *Options) Params() ([]OptionalParam, error) {
	tags := make([]TagID, 0, len(o.fields))
	for tag := range o.fields {
		if tag == TagMessagePayload {
			continue
		}
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })

	params := make([]OptionalParam, 0, len(tags))
	for _, tag := range tags {
		meta, ok := tagKinds[tag]
		if !ok {
			return nil, wrapf(ErrUnknownOptionalTag, "tag 0x%04x", tag)
		}
		raw := o.fields[tag]
		switch meta.kind {
		case KindInt:
			var v uint32
			switch len(raw) {
			case 1:
				v = uint32(raw[0])
			case 2:
				v = uint32(binary.BigEndian.Uint16(raw))
			case 4:
				v = binary.BigEndian.Uint32(raw)
			default:
				return nil, wrapf(ErrUnknownOptionalTag, "tag 0x%04x has unexpected width %d", tag, len(raw))
			}
			params = append(params, OptionalParam{Tag: tag, Value: IntValue(v)})
		case KindBool:
			params = append(params, OptionalParam{Tag: tag, Value: BoolValue()})
		case KindString:
			params = append(params, OptionalParam{Tag: tag, Value: StringValue(string(raw))})
		}
	}
	return params, nil
}

// SetParams loads a typed OptionalParam list into the raw TLV bag, the
// inverse of Params. MESSAGE_PAYLOAD is rejected: callers must supply it
// through the dedicated message_payload field.
func (o *Options) SetParams(params []OptionalParam) error {
	for _, p := range params {
		if p.Tag == TagMessagePayload {
			return wrapf(ErrInvalidArgument, "optional_params must not contain MESSAGE_PAYLOAD")
		}
		meta, ok := tagKinds[p.Tag]
		if !ok {
			return wrapf(ErrUnknownOptionalTag, "tag 0x%04x", p.Tag)
		}
		if meta.kind != p.Value.Kind {
			return wrapf(ErrInvalidArgument, "tag 0x%04x declared kind mismatch", p.Tag)
		}
		switch p.Value.Kind {
		case KindInt:
			switch meta.width {
			case 1:
				o.SetSingle(p.Tag, int(p.Value.Int))
			case 2:
				o.SetDouble(p.Tag, int(p.Value.Int))
			case 4:
				o.SetQuad(p.Tag, p.Value.Int)
			}
		case KindBool:
			o.SetPresence(p.Tag)
		case KindString:
			o.SetString(p.Tag, p.Value.Str)
		}
	}
	return nil
}
