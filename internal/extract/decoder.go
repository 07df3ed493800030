package extract

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Charset is one candidate encoding for .txt uploads. Decode reports false when the
// input is not valid in the charset.
type Charset struct {
	Name   string
	Decode func(data []byte) (string, bool)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	UTF8 = Charset{Name: "utf-8", Decode: func(data []byte) (string, bool) {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}}
	UTF8BOM = Charset{Name: "utf-8-sig", Decode: func(data []byte) (string, bool) {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(bytes.TrimPrefix(data, utf8BOM)), true
	}}
	ASCII = Charset{Name: "ascii", Decode: func(data []byte) (string, bool) {
		for _, b := range data {
			if b >= utf8.RuneSelf {
				return "", false
			}
		}
		return string(data), true
	}}
	Latin1      = fromEncoding("latin-1", charmap.ISO8859_1)
	Windows1252 = fromEncoding("windows-1252", charmap.Windows1252)
	UTF16       = fromEncoding("utf-16", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))
	Windows1250 = fromEncoding("windows-1250", charmap.Windows1250)
	ShiftJIS    = fromEncoding("shift_jis", japanese.ShiftJIS)
	GBK         = fromEncoding("gbk", simplifiedchinese.GBK)
	EUCKR       = fromEncoding("euc-kr", korean.EUCKR)
)

// fromEncoding adapts an x/text encoding into a strict Charset. x/text decoders
// substitute U+FFFD for invalid input instead of failing, so any replacement
// character in the output counts as a decoding failure.
func fromEncoding(name string, enc encoding.Encoding) Charset {
	return Charset{Name: name, Decode: func(data []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			return "", false
		}
		return string(out), true
	}}
}

// Decoder tries its charsets in order and keeps the first that decodes.
// An ambiguous byte sequence may decode under an earlier, semantically wrong
// charset; the order is the only tie-breaker.
type Decoder struct {
	Charsets []Charset
}

// DefaultDecoder returns the standard priority list. Latin-1 accepts any byte
// sequence, so charsets after it only matter when the list is reordered.
func DefaultDecoder() *Decoder {
	return &Decoder{Charsets: []Charset{
		UTF8, UTF8BOM, Latin1, Windows1252, ASCII,
		UTF16,
		Windows1250,
		ShiftJIS, GBK, EUCKR,
	}}
}

// Decode returns the decoded text and the name of the charset that produced it.
func (d *Decoder) Decode(data []byte) (string, string, error) {
	for _, cs := range d.Charsets {
		if text, ok := cs.Decode(data); ok {
			return text, cs.Name, nil
		}
	}
	return "", "", ErrUndecodable
}
