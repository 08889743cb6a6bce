package csvio

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encodings lists the accepted --encoding names.
var Encodings = []string{"utf-8", "utf-16", "utf-16le", "utf-16be", "latin1", "windows-1252"}

func lookupEncoding(name string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		// pass bytes through, dropping a BOM (and switching to UTF-16 if the BOM says so)
		return unicode.BOMOverride(transform.Nop), nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "utf-16le", "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder(), nil
	case "utf-16be", "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: unknown encoding %q (use one of %s)", ErrUnsupportedDialect, name, strings.Join(Encodings, ", "))
	}
}

// Decode wraps r so it yields UTF-8 text in the named encoding.
func Decode(r io.Reader, name string) (io.Reader, error) {
	t, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, t), nil
}

// CheckEncoding reports whether name is an accepted encoding.
func CheckEncoding(name string) error {
	_, err := lookupEncoding(name)
	return err
}
