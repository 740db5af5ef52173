// Package encoding normalises uploaded statements to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset is the source encoding a reader was decoded from.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8 (BOM)"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO8859_9   Charset = "ISO-8859-9"
)

const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decoders maps every non-UTF-8 charset to its decoder. UTF-8 needs none.
var decoders = map[Charset]func() *encoding.Decoder{
	UTF16LE:     func() *encoding.Decoder { return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder() },
	UTF16BE:     func() *encoding.Decoder { return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder() },
	Windows1252: charmap.Windows1252.NewDecoder,
	ISO8859_9:   charmap.ISO8859_9.NewDecoder,
}

// Detect guesses the charset of the first bytes of a file: a BOM wins, then
// valid UTF-8, then chardet, then Windows-1252 as the usual bank export
// encoding.
func Detect(buf []byte) Charset {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(buf, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(buf, bomUTF16BE):
		return UTF16BE
	case utf8.Valid(trimPartialRune(buf)):
		return UTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil {
		return Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return UTF8
	case "ISO-8859-9":
		return ISO8859_9
	}

	return Windows1252
}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8, along with
// the charset it detected.
func NewUTF8Reader(r io.Reader) (io.Reader, Charset, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	cs := Detect(buf)

	if cs == UTF8BOM {
		_, _ = br.Discard(len(bomUTF8))
		return br, cs, nil
	}

	newDecoder, ok := decoders[cs]
	if !ok {
		return br, cs, nil
	}

	return transform.NewReader(br, newDecoder()), cs, nil
}

// trimPartialRune drops a multi-byte sequence cut off by the sniff window.
func trimPartialRune(buf []byte) []byte {
	for i := len(buf) - 1; i >= 0 && i >= len(buf)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(buf[i]) {
			continue
		}

		if !utf8.FullRune(buf[i:]) {
			return buf[:i]
		}

		break
	}

	return buf
}
