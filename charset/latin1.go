package charset

import (
	"golang.org/x/text/encoding/charmap"
)

// latin1Codec implements the SMPP "latin_1" built-in (ISO-8859-1).
type latin1Codec struct{}

func (latin1Codec) Encode(text string, eh ErrorHandling) ([]byte, error) {
	enc := charmap.ISO8859_1.NewEncoder()
	b, err := enc.Bytes([]byte(text))
	if err != nil {
		switch eh {
		case Strict:
			return nil, ErrEncodingFailure
		case Ignore:
			return encodeLossy(text, charmap.ISO8859_1.NewEncoder(), false)
		default: // Replace
			return encodeLossy(text, charmap.ISO8859_1.NewEncoder(), true)
		}
	}
	return b, nil
}

func (latin1Codec) Decode(b []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (latin1Codec) DataCoding() byte { return 0x03 }

// encodeLossy encodes rune-by-rune, either dropping (replace=false) or
// substituting '?' (replace=true) for runes the encoder rejects. Used by
// codecs whose underlying x/text Encoder fails the whole buffer on the
// first unmappable rune.
func encodeLossy(text string, enc interface {
	Bytes([]byte) ([]byte, error)
}, replace bool) ([]byte, error) {
	var out []byte
	for _, r := range text {
		b, err := enc.Bytes([]byte(string(r)))
		if err != nil {
			if replace {
				out = append(out, '?')
			}
			continue
		}
		out = append(out, b...)
	}
	return out, nil
}
