package pdu

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Receipt is the structured delivery receipt embedded in a DeliverSm's
// short_message.
type Receipt struct {
	ID         string
	Sub        int
	Dlvrd      int
	SubmitDate time.Time
	DoneDate   time.Time
	Stat       string
	Err        string
	Text       string
	// Extra carries any key:value token not in the recognised set, keyed
	// by its lower-cased name.
	Extra map[string]string
}

// Delivery receipt status values (SMPP §5.2.24).
const (
	DelStatEnRoute       = "ENROUTE"
	DelStatDelivered     = "DELIVRD"
	DelStatExpired       = "EXPIRED"
	DelStatDeleted       = "DELETED"
	DelStatUndeliverable = "UNDELIV"
	DelStatAccepted      = "ACCEPTD"
	DelStatUnknown       = "UNKNOWN"
	DelStatRejected      = "REJECTD"
)

// receiptDateLayout is the %y%m%d%H%M layout used by the
// submit date / done date tokens.
const receiptDateLayout = "0601021504"

// compoundKeys are the recognised keys that themselves contain a space,
// so a naive space-delimited key:value scan would otherwise split them in
// half.
var compoundKeys = []string{"submit date", "done date"}

type receiptToken struct {
	Key   string
	Value string
}

// tokenizeReceipt walks s left to right pulling out key:value tokens
// separated by spaces. The "text" key (case-insensitive) is terminal and
// consumes the remainder of the string.
func tokenizeReceipt(s string) []receiptToken {
	var tokens []receiptToken
	i := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		if i >= len(s) {
			break
		}

		matched := ""
		for _, k := range compoundKeys {
			if strings.HasPrefix(s[i:], k+":") {
				matched = k
				break
			}
		}
		if matched != "" {
			i += len(matched) + 1
			start := i
			for i < len(s) && s[i] != ' ' {
				i++
			}
			tokens = append(tokens, receiptToken{matched, s[start:i]})
			continue
		}

		colon := strings.IndexByte(s[i:], ':')
		if colon == -1 {
			break
		}
		key := s[i : i+colon]
		if strings.Contains(key, " ") {
			break // malformed token, stop rather than loop forever
		}
		i += colon + 1
		lowerKey := strings.ToLower(key)
		if lowerKey == "text" {
			// Trailing spaces are padding from the fixed-width template,
			// not message content.
			tokens = append(tokens, receiptToken{"text", strings.TrimRight(s[i:], " ")})
			break
		}
		start := i
		for i < len(s) && s[i] != ' ' {
			i++
		}
		tokens = append(tokens, receiptToken{lowerKey, s[start:i]})
	}
	return tokens
}

// ParseReceipt parses a decoded short_message as a delivery receipt.
// If no id token is found, it falls back to the
// RECEIPTED_MESSAGE_ID TLV in opts (opts may be nil).
func ParseReceipt(text string, opts *Options) *Receipt {
	r := &Receipt{}
	for _, tok := range tokenizeReceipt(text) {
		switch tok.Key {
		case "id":
			r.ID = tok.Value
		case "sub":
			if n, err := strconv.Atoi(tok.Value); err == nil {
				r.Sub = n
			}
		case "dlvrd":
			if n, err := strconv.Atoi(tok.Value); err == nil {
				r.Dlvrd = n
			}
		case "submit date":
			if t, err := time.Parse(receiptDateLayout, tok.Value); err == nil {
				r.SubmitDate = t
			}
		case "done date":
			if t, err := time.Parse(receiptDateLayout, tok.Value); err == nil {
				r.DoneDate = t
			}
		case "stat":
			r.Stat = tok.Value
		case "err":
			r.Err = tok.Value
		case "text":
			r.Text = tok.Value
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]string)
			}
			r.Extra[tok.Key] = tok.Value
		}
	}
	if r.ID == "" && opts != nil {
		if id, ok := opts.ReceiptedMessageID(); ok {
			r.ID = id
		}
	}
	return r
}

// FormatReceipt renders r using the conventional fixed-width template,
// used to synthesize short_message when encoding a DeliverSm that carries
// a Receipt but no explicit short_message.
func FormatReceipt(r *Receipt) string {
	return fmt.Sprintf(
		"id:%s sub:%03d dlvrd:%03d submit date:%s done date:%s stat:%s err:%s Text:%-20s",
		r.ID, r.Sub, r.Dlvrd,
		r.SubmitDate.Format(receiptDateLayout),
		r.DoneDate.Format(receiptDateLayout),
		r.Stat, r.Err, r.Text,
	)
}
