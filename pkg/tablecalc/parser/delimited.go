package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/models"
)

// DelimitedOptions configures ReadDelimited.
type DelimitedOptions struct {
	// Charset is the input encoding name ("" or "utf-8" means no decoding).
	Charset string
	// Separator is the field separator; 0 sniffs it from the input.
	Separator rune
}

// separators are the candidates considered when sniffing, in tie-break order.
const separators = "\t,;|"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// GetEncoding returns the encoding registered under encName, or nil for UTF-8.
func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(strings.TrimSpace(encName))
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// ReadDelimited reads a tab (or otherwise) separated sheet into a Grid.
//
// Blank lines are kept as blank rows because they separate tables. All values
// stay strings; typing happens in Coerce.
func ReadDelimited(r io.Reader, sheetName string, opts DelimitedOptions) (*models.Grid, error) {
	enc, err := GetEncoding(opts.Charset)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		if errors.Is(err, io.EOF) {
			return models.NewGrid(sheetName, nil), nil
		}
		return nil, err
	}
	if bytes.HasPrefix(b, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
		b = b[len(utf8BOM):]
	}
	sep := opts.Separator
	if sep == 0 {
		sep = sniffSeparator(b)
	}

	cr := csv.NewReader(br)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	nextLine := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		// csv.Reader drops empty lines; put them back as blank rows.
		line, _ := cr.FieldPos(0)
		for ; nextLine < line; nextLine++ {
			records = append(records, nil)
		}
		last := len(rec) - 1
		endLine, _ := cr.FieldPos(last)
		nextLine = endLine + strings.Count(rec[last], "\n") + 1
		records = append(records, rec)
	}
	return models.NewStringGrid(sheetName, records), nil
}

// sniffSeparator picks TAB when any sampled line holds one outside quotes.
// Otherwise it picks the candidate found on the most lines, earlier
// candidates winning ties, and defaults to TAB.
func sniffSeparator(sample []byte) rune {
	lines := make(map[rune]int, len(separators))
	seen := make(map[rune]bool, len(separators))
	flush := func() {
		for r := range seen {
			lines[r]++
			delete(seen, r)
		}
	}
	inQuote := false
	for _, r := range string(sample) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '\n':
			flush()
		case strings.ContainsRune(separators, r):
			seen[r] = true
		}
	}
	flush()

	if lines['\t'] > 0 {
		return '\t'
	}
	best, most := '\t', 0
	for _, r := range separators {
		if lines[r] > most {
			best, most = r, lines[r]
		}
	}
	return best
}
