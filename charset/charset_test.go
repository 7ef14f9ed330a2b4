package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltins(t *testing.T) {
	for _, name := range []string{"gsm0338", "ucs2", "latin_1", "ascii", "shift_jis"} {
		c, err := Resolve(name, nil)
		require.NoError(t, err)
		require.NotNil(t, c)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("nonexistent", nil)
	require.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestResolveOverridesWinOverBuiltins(t *testing.T) {
	custom := &stubCodec{dataCoding: 0x99}
	c, err := Resolve("ucs2", Overrides{"ucs2": custom})
	require.NoError(t, err)
	assert.Equal(t, byte(0x99), c.DataCoding())
}

type stubCodec struct{ dataCoding byte }

func (s *stubCodec) Encode(text string, _ ErrorHandling) ([]byte, error) { return []byte(text), nil }
func (s *stubCodec) Decode(b []byte) (string, error)                    { return string(b), nil }
func (s *stubCodec) DataCoding() byte                                   { return s.dataCoding }

func TestLatin1RoundTrip(t *testing.T) {
	c, err := Resolve("latin_1", nil)
	require.NoError(t, err)
	b, err := c.Encode("hi", Strict)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x68, 0x69}, b)
	s, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestUCS2RoundTripNeverFailsStrict(t *testing.T) {
	c, err := Resolve("ucs2", nil)
	require.NoError(t, err)
	b, err := c.Encode("héllo 世界", Strict)
	require.NoError(t, err)
	s, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "héllo 世界", s)
}

func TestAsciiStrictFailsOnNonASCII(t *testing.T) {
	c, err := Resolve("ascii", nil)
	require.NoError(t, err)
	_, err = c.Encode("héllo", Strict)
	require.ErrorIs(t, err, ErrEncodingFailure)
}

func TestAsciiReplace(t *testing.T) {
	c, err := Resolve("ascii", nil)
	require.NoError(t, err)
	b, err := c.Encode("héllo", Replace)
	require.NoError(t, err)
	assert.Equal(t, "h?llo", string(b))
}

func TestGsm0338BasicRoundTrip(t *testing.T) {
	c, err := Resolve("gsm0338", nil)
	require.NoError(t, err)
	b, err := c.Encode("Hello, World!", Strict)
	require.NoError(t, err)
	s, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", s)
}

func TestGsm0338ExtensionTable(t *testing.T) {
	c, err := Resolve("gsm0338", nil)
	require.NoError(t, err)
	b, err := c.Encode("a{b}c", Strict)
	require.NoError(t, err)
	assert.Equal(t, []byte{runeToGsm['a'], gsmEscape, 0x28, runeToGsm['b'], gsmEscape, 0x29, runeToGsm['c']}, b)
	s, err := c.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "a{b}c", s)
}

func TestGsm0338StrictFailsOnUnmappable(t *testing.T) {
	c, err := Resolve("gsm0338", nil)
	require.NoError(t, err)
	_, err = c.Encode("世界", Strict)
	require.ErrorIs(t, err, ErrEncodingFailure)
}

func TestParseErrorHandling(t *testing.T) {
	eh, err := ParseErrorHandling("strict")
	require.NoError(t, err)
	assert.Equal(t, Strict, eh)

	_, err = ParseErrorHandling("bogus")
	require.Error(t, err)
}

func TestDataCodingRoundTrip(t *testing.T) {
	assert.Equal(t, "ucs2", NameForDataCoding(0x08))
	assert.Equal(t, byte(0x08), DataCodingForName("ucs2"))
	assert.Equal(t, byte(0x00), DataCodingForName(""))
}
