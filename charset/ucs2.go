package charset

import (
	"golang.org/x/text/encoding/unicode"
)

// ucs2Codec implements the SMPP "ucs2" built-in, which is big-endian
// UTF-16 (ISO/IEC 10646 UCS2) per SMPP §5.2.19. It is the fallback target
// of the auto-encoding policy because UTF-16 can represent any valid
// Unicode scalar value, so Encode never fails regardless of eh.
type ucs2Codec struct{}

var ucs2Encoding = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func (ucs2Codec) Encode(text string, _ ErrorHandling) ([]byte, error) {
	return ucs2Encoding.NewEncoder().Bytes([]byte(text))
}

func (ucs2Codec) Decode(b []byte) (string, error) {
	out, err := ucs2Encoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (ucs2Codec) DataCoding() byte { return 0x08 }
