package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"itemize/internal/domain"
	"itemize/internal/parser"
)

func TestClassifier_SkipsNonItemLines(t *testing.T) {
	c := parser.NewClassifier()
	skipped := []string{
		"",
		"Tanggal: 09-09-24",
		"Jam 19:32:05",
		"Kasir: BUDI",
		"Nama Tamu: ANDI",
		"No. Meja 12",
		"SUB TOTAL 16,364",
		"TOTAL 18,000",
		"PAJAK 10% 1,636",
		"TUNAI 20,000",
		"KEMBALIAN 2,000",
		"TERIMA KASIH",
		"Follow instagram kami",
		"www.example.com",
		"16,364",
		"01/05/2025",
	}
	for _, line := range skipped {
		assert.Equal(t, domain.LineSkip, c.Classify(line), "line %q", line)
	}
}

func TestClassifier_KeepsItemLines(t *testing.T) {
	c := parser.NewClassifier()
	kept := []string{
		"ES TEKLEK: 1 x @ 6,364 = 6,364",
		"2 x MIE GACOAN 20,000",
		"UDANG KEJU",
		"ES TEKLEK 1 6,364",
	}
	for _, line := range kept {
		assert.Equal(t, domain.LineKeep, c.Classify(line), "line %q", line)
	}
}

func TestClassifier_StructuredLineNeverSkipped(t *testing.T) {
	c := parser.NewClassifier()
	// matches a summary label prefix but also the structured item pattern;
	// the item pattern wins
	assert.Equal(t, domain.LineKeep, c.Classify("CASH BACK 2 x 10,000"))
}
