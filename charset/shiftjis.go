package charset

import (
	"golang.org/x/text/encoding/japanese"
)

// shiftJISCodec implements the SMPP "shift_jis" built-in.
type shiftJISCodec struct{}

func (shiftJISCodec) Encode(text string, eh ErrorHandling) ([]byte, error) {
	enc := japanese.ShiftJIS.NewEncoder()
	b, err := enc.Bytes([]byte(text))
	if err != nil {
		switch eh {
		case Strict:
			return nil, ErrEncodingFailure
		case Ignore:
			return encodeLossy(text, japanese.ShiftJIS.NewEncoder(), false)
		default:
			return encodeLossy(text, japanese.ShiftJIS.NewEncoder(), true)
		}
	}
	return b, nil
}

func (shiftJISCodec) Decode(b []byte) (string, error) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (shiftJISCodec) DataCoding() byte { return 0x0D }
