// Package csv implements the line-level CSV dialect used by trip record files.
//
// The stdlib csv package owns the whole input stream and wants rectangular
// data; trip record dumps are dirty enough (ragged rows, embedded headers,
// stray quotes) that this package splits one line at a time instead and lets
// the caller decide what to do with each row.
package csv

import (
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Dialect describes the separator and quoting convention of a trip record
// file. The zero value is standard comma-separated, double-quoted CSV.
type Dialect struct {
	// Separator is the rune that splits fields. 0 means comma.
	Separator rune
	// Quote is the rune that wraps fields containing the separator. A doubled
	// quote inside a quoted field is a literal quote. 0 means a double quote.
	Quote rune
}

func (d Dialect) separator() rune {
	if d.Separator == 0 {
		return ','
	}
	return d.Separator
}

func (d Dialect) quote() rune {
	if d.Quote == 0 {
		return '"'
	}
	return d.Quote
}

// Split breaks one record line into its fields.
//
// Separators inside quoted fields do not split, and a doubled quote inside a
// quoted field reads as one literal quote. Quote runes themselves are not part
// of the field. Split never fails: any line, however mangled its quoting,
// produces at least one field.
func (d Dialect) Split(line string) []string {
	sep, quote := d.separator(), d.quote()
	fields := make([]string, 0, 8)
	var field strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == quote && inQuotes && i+1 < len(runes) && runes[i+1] == quote:
			field.WriteRune(quote)
			i++
		case r == quote:
			inQuotes = !inQuotes
		case r == sep && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	return append(fields, field.String())
}

// From: https://stackoverflow.com/a/76023436
//
// BOMAwareReader will detect a UTF BOM (Byte Order Mark) at the
// start of the data and transform to UTF8 accordingly.
// If there is no BOM, it will read the data without any transformation.
func BOMAwareReader(reader io.Reader) io.Reader {
	var transformer = unicode.BOMOverride(encoding.Nop.NewDecoder())
	return transform.NewReader(reader, transformer)
}
