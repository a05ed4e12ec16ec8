package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadDelimitedKeepsBlankLines(t *testing.T) {
	in := "Item\tQ1\tQ2\nWidgets\t100\t150\n\n\nCosts\tQ1\nRent\t10\n"

	g, err := ReadDelimited(strings.NewReader(in), "budget", DelimitedOptions{})
	require.NoError(t, err)
	assert.Equal(t, "budget", g.Name())
	assert.Equal(t, 6, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, "Widgets", g.At(1, 0))
	assert.Nil(t, g.At(2, 0))
	assert.Nil(t, g.At(3, 2))
	assert.Equal(t, "Costs", g.At(4, 0))
	assert.Nil(t, g.At(5, 2))

	tables := DetectTables(g, DefaultTableParams())
	require.Len(t, tables, 2)
	assert.Equal(t, "Item", tables[0].Label)
	assert.Equal(t, "Costs", tables[1].Label)
}

func TestReadDelimitedQuotedNewline(t *testing.T) {
	in := "Note\tQty\n\"two\nlines\"\t3\n\nNext\t4\n"

	g, err := ReadDelimited(strings.NewReader(in), "s", DelimitedOptions{Separator: '\t'})
	require.NoError(t, err)
	require.Equal(t, 4, g.Rows())
	assert.Equal(t, "two\nlines", g.At(1, 0))
	assert.Nil(t, g.At(2, 0))
	assert.Equal(t, "Next", g.At(3, 0))
}

func TestReadDelimitedEmptyInput(t *testing.T) {
	g, err := ReadDelimited(strings.NewReader(""), "s", DelimitedOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Rows())
	assert.Equal(t, 0, g.Cols())
}

func TestReadDelimitedBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, "Item\tQty\nBolts\t5\n"...)

	g, err := ReadDelimited(bytes.NewReader(in), "s", DelimitedOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Item", g.At(0, 0))
}

func TestReadDelimitedCharset(t *testing.T) {
	in, err := charmap.Windows1252.NewEncoder().String("Café\t1\n")
	require.NoError(t, err)

	g, err := ReadDelimited(strings.NewReader(in), "s", DelimitedOptions{Charset: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, "Café", g.At(0, 0))

	_, err = ReadDelimited(strings.NewReader(in), "s", DelimitedOptions{Charset: "no-such-charset"})
	assert.Error(t, err)
}

func TestSniffSeparator(t *testing.T) {
	tests := []struct {
		sample string
		want   rune
	}{
		{"a\tb\n", '\t'},
		{"a,b\n1,2\n", ','},
		{"\"x,y\";z\n", ';'},
		{"a|b", '|'},
		{"Capital Budgeting, 2024\nItem\tQ1\tQ2\nWidgets\t100\t150\n", '\t'},
		{"Title; notes\na,b\n1,2\n", ','},
		{"a;b\n\"x,y\";1\n", ';'},
		{"single column\n", '\t'},
		{"", '\t'},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sniffSeparator([]byte(tt.sample)), "%q", tt.sample)
	}
}

func TestGetEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", " UTF8 "} {
		enc, err := GetEncoding(name)
		require.NoError(t, err)
		assert.Nil(t, enc, name)
	}
	enc, err := GetEncoding("iso-8859-1")
	require.NoError(t, err)
	assert.NotNil(t, enc)
}
