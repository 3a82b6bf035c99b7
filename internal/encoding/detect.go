// Package encoding turns spreadsheet exports of unknown charset into UTF-8.
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

// Charset names the source encoding that was detected.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF8BOM     Charset = "UTF-8 BOM"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Windows1252 Charset = "windows-1252"
	ISO88591    Charset = "ISO-8859-1"
)

const sniffLen = 4096

// Reader yields UTF-8 text and remembers which charset it decoded from.
type Reader struct {
	io.Reader
	Charset Charset
}

// NewUTF8Reader sniffs the head of r and wraps it in a decoder.
// A byte order mark wins, then valid UTF-8, then chardet's best guess;
// anything left over is read as Windows-1252, which is what Excel writes
// for "CSV" on most Windows locales.
func NewUTF8Reader(r io.Reader) (*Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	cs := Sniff(head)

	if cs == UTF8BOM {
		if _, err := br.Discard(3); err != nil {
			return nil, fmt.Errorf("discard bom: %w", err)
		}

		return &Reader{Reader: br, Charset: cs}, nil
	}

	dec := decoderFor(cs)
	if dec == nil {
		return &Reader{Reader: br, Charset: cs}, nil
	}

	return &Reader{Reader: transform.NewReader(br, dec), Charset: cs}, nil
}

// Sniff guesses the charset of a content prefix.
func Sniff(head []byte) Charset {
	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8BOM
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return UTF16LE
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return UTF16BE
	case validPrefix(head):
		return UTF8
	}

	res, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return Windows1252
	}

	switch res.Charset {
	case "UTF-8":
		return UTF8
	case "ISO-8859-1":
		return ISO88591
	case "UTF-16LE":
		return UTF16LE
	case "UTF-16BE":
		return UTF16BE
	}

	return Windows1252
}

// validPrefix is utf8.Valid tolerant of a rune cut at the sniff boundary.
func validPrefix(b []byte) bool {
	if utf8.Valid(b) {
		return true
	}

	for cut := 1; cut < utf8.UTFMax && cut < len(b); cut++ {
		if utf8.Valid(b[:len(b)-cut]) && !utf8.FullRune(b[len(b)-cut:]) {
			return true
		}
	}

	return false
}

func decoderFor(cs Charset) *encoding.Decoder {
	switch cs {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case ISO88591:
		return charmap.ISO8859_1.NewDecoder()
	case Windows1252:
		return charmap.Windows1252.NewDecoder()
	}

	return nil
}
