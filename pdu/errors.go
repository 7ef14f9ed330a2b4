package pdu

import (
	"errors"
	"fmt"
)

// Error kinds returned by the codec. All are recoverable: decode errors
// never mutate partial output and constructor errors prevent object
// creation, so callers can always retry or fall back.
var (
	// ErrTruncatedHeader is returned when fewer than 16 bytes are available
	// for the PDU header.
	ErrTruncatedHeader = errors.New("smpp/pdu: truncated header")
	// ErrTruncatedPdu is returned when the body is shorter than pdu_length
	// declares.
	ErrTruncatedPdu = errors.New("smpp/pdu: truncated pdu")
	// ErrMissingTerminator is returned when a C-octet string lacks its NUL
	// terminator before the end of the PDU.
	ErrMissingTerminator = errors.New("smpp/pdu: missing c-string terminator")
	// ErrUnknownCommand is returned when the header's command_id does not
	// resolve to a known PDU type.
	ErrUnknownCommand = errors.New("smpp/pdu: unknown command id")
	// ErrUnknownStatus is returned when the header's status does not
	// resolve to a known SMPP status code.
	ErrUnknownStatus = errors.New("smpp/pdu: unknown status code")
	// ErrUnknownOptionalTag is returned when a TLV tag is not in the closed
	// set of recognised optional parameters.
	ErrUnknownOptionalTag = errors.New("smpp/pdu: unknown optional tag")
	// ErrEncodingFailure is returned when text cannot be encoded under the
	// chosen codec's strict error handling.
	ErrEncodingFailure = errors.New("smpp/pdu: encoding failure")
	// ErrShortMessageTooLong is returned when the encoded short_message
	// exceeds 254 bytes and automatic payload promotion is disabled.
	ErrShortMessageTooLong = errors.New("smpp/pdu: short_message exceeds 254 bytes")
	// ErrValidityOutOfRange is returned when a relative validity period
	// exceeds 63 weeks.
	ErrValidityOutOfRange = errors.New("smpp/pdu: validity period exceeds 63 weeks")
	// ErrInvalidArgument is returned when a constructor precondition fails.
	ErrInvalidArgument = errors.New("smpp/pdu: invalid argument")
)

func wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
