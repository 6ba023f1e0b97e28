// Package parser turns corrected receipt lines into line-item candidates.
// A classifier excludes non-item lines, then five strategies run in fixed
// priority order; the first success for a line or segment wins.
package parser

import (
	"regexp"

	"itemize/internal/domain"
)

var (
	dateRe        = regexp.MustCompile(`\b\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4}\b`)
	timeRe        = regexp.MustCompile(`\b\d{1,2}:\d{2}(:\d{2})?\b`)
	datewordRe    = regexp.MustCompile(`(?i)^(tanggal|tgl|date|waktu|jam)\b`)
	cashierRe     = regexp.MustCompile(`(?i)^(kasir|cashier|kassa|operator|server)\b`)
	guestRe       = regexp.MustCompile(`(?i)^(nama\s+tamu|guest|customer|pelanggan|member|no\.?\s*(meja|struk|order|trans)|table|order\s*(no|#))\b`)
	footerRe      = regexp.MustCompile(`(?i)(terima\s*kasih|thank\s*you|sampai\s*jumpa|follow|instagram|facebook|twitter|tiktok|wifi|password|npwp|kritik|saran|selamat|silahkan|www\.|https?://|@\w+$)`)
	summaryRe     = regexp.MustCompile(`(?i)^(sub\s*total|subtotal|total|grand\s*total|pajak|ppn|tax|service|svc|rounding|pembulatan|cash|tunai|change|kembali(an)?|debit|credit|kartu|card|qris|gopay|ovo|dana|shopeepay|disc(ount)?|diskon|voucher)\b`)
	numericOnlyRe = regexp.MustCompile(`^[\d.,:=\s()-]+$`)
)

// Classifier decides which physical lines may contribute line items.
type Classifier struct{}

// NewClassifier returns the line classifier.
func NewClassifier() *Classifier { return &Classifier{} }

// Classify returns LineSkip for headers, footers, summary labels, and purely
// numeric lines. A line matching the structured single-line item pattern is
// always kept, whatever else it resembles.
func (c *Classifier) Classify(line string) domain.LineClass {
	if line == "" {
		return domain.LineSkip
	}
	if matchStructured(line) != nil {
		return domain.LineKeep
	}
	switch {
	case datewordRe.MatchString(line),
		cashierRe.MatchString(line),
		guestRe.MatchString(line),
		summaryRe.MatchString(line),
		footerRe.MatchString(line),
		numericOnlyRe.MatchString(line):
		return domain.LineSkip
	}
	// date or time stamps without an item shape
	if dateRe.MatchString(line) || timeRe.MatchString(line) {
		return domain.LineSkip
	}
	return domain.LineKeep
}
