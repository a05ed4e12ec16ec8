// Package tablecalc loads a worksheet, discovers the tables embedded in it and
// computes aggregates over explicit or named ranges.
package tablecalc

import (
	"io"
	"log/slog"

	"github.com/ukaji3/tablecalc-go/pkg/tablecalc/parser"
)

// Options configures loading and discovery.
type Options struct {
	// Sheet selects the worksheet of an xlsx workbook. Empty means the first sheet.
	Sheet string
	// Charset is the encoding of delimited files. Empty means UTF-8.
	Charset string
	// Separator overrides the field separator of delimited files.
	// If 0, it is derived from the extension or sniffed from the content.
	Separator rune
	// Detection tunes table discovery.
	Detection parser.TableDetectionParams
	// IncludeDefinedNames specifies whether to read xlsx defined names.
	// If nil, defaults to true.
	IncludeDefinedNames *bool
	// Logger receives load and discovery events. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Detection: parser.DefaultTableParams(),
	}
}

// ShouldIncludeDefinedNames returns whether to read workbook defined names.
func (o Options) ShouldIncludeDefinedNames() bool {
	if o.IncludeDefinedNames != nil {
		return *o.IncludeDefinedNames
	}
	return true
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
