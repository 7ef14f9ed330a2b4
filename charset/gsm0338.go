package charset

// gsm0338Codec implements the SMPP "gsm0338" built-in: the GSM 03.38
// default alphabet, basic (unpacked, one septet per output byte) and
// extension tables. No ecosystem Go package in the retrieval pack exposes
// this with a stable API, so the table is first-party data (see DESIGN.md).
type gsm0338Codec struct{}

const gsmEscape = 0x1B

// gsmToRune is the default alphabet: index is the GSM septet value, value
// is the Unicode code point it represents.
var gsmToRune = [128]rune{
	'@', '£', '$', '¥', 'è', 'é', 'ù', 'ì', 'ò', 'Ç', '\n', 'Ø', 'ø', '\r', 'Å', 'å',
	'Δ', '_', 'Φ', 'Γ', 'Λ', 'Ω', 'Π', 'Ψ', 'Σ', 'Θ', 'Ξ', 0x1B, 'Æ', 'æ', 'ß', 'É',
	' ', '!', '"', '#', '¤', '%', '&', '\'', '(', ')', '*', '+', ',', '-', '.', '/',
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '<', '=', '>', '?',
	'¡', 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O',
	'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z', 'Ä', 'Ö', 'Ñ', 'Ü', '§',
	'¿', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 'ä', 'ö', 'ñ', 'ü', 'à',
}

// gsmExtToRune is the extension table, keyed by the septet following an
// escape (0x1B) byte.
var gsmExtToRune = map[byte]rune{
	0x0A: '\f',
	0x14: '^',
	0x28: '{',
	0x29: '}',
	0x2F: '\\',
	0x3C: '[',
	0x3D: '~',
	0x3E: ']',
	0x40: '|',
	0x65: '€',
}

var runeToGsm map[rune]byte
var runeToGsmExt map[rune]byte

func init() {
	runeToGsm = make(map[rune]byte, len(gsmToRune))
	for i, r := range gsmToRune {
		if i == gsmEscape {
			continue // 0x1B is the escape marker, not itself printable
		}
		runeToGsm[r] = byte(i)
	}
	runeToGsmExt = make(map[rune]byte, len(gsmExtToRune))
	for septet, r := range gsmExtToRune {
		runeToGsmExt[r] = septet
	}
}

func (gsm0338Codec) Encode(text string, eh ErrorHandling) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if b, ok := runeToGsm[r]; ok {
			out = append(out, b)
			continue
		}
		if b, ok := runeToGsmExt[r]; ok {
			out = append(out, gsmEscape, b)
			continue
		}
		switch eh {
		case Strict:
			return nil, ErrEncodingFailure
		case Ignore:
			continue
		default: // Replace
			out = append(out, runeToGsm['?'])
		}
	}
	return out, nil
}

func (gsm0338Codec) Decode(b []byte) (string, error) {
	var out []rune
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == gsmEscape && i+1 < len(b) {
			i++
			if r, ok := gsmExtToRune[b[i]]; ok {
				out = append(out, r)
				continue
			}
			out = append(out, ' ')
			continue
		}
		if int(c) < len(gsmToRune) {
			out = append(out, gsmToRune[c])
		}
	}
	return string(out), nil
}

func (gsm0338Codec) DataCoding() byte { return 0x00 }
