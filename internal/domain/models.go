package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationStatus holds the reviewer-assigned state of a candidate.
// It is mutated only through explicit reviewer actions.
type ValidationStatus struct {
	IsValidated bool       `json:"is_validated"`
	IsMarked    bool       `json:"is_marked"`
	Notes       string     `json:"validation_notes,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

// LineItemCandidate is a tentative extracted product entry pending review.
// Quantity is at least 1, Price is the total price (not unit price) and never
// negative, Confidence lies in [0,1].
type LineItemCandidate struct {
	Name       string           `json:"name"`
	Quantity   int              `json:"quantity"`
	Price      decimal.Decimal  `json:"price"`
	Confidence float64          `json:"confidence"`
	Method     ExtractionMethod `json:"extraction_method"`
	// SourceSpan is the original matched text, kept for diagnostics only.
	SourceSpan string `json:"source_span,omitempty"`

	ValidationStatus
}

// ExtractionResult is the output of one extraction run. Candidates are
// created once per run and kept in document order; only their
// ValidationStatus fields change afterwards.
type ExtractionResult struct {
	ID                uuid.UUID           `json:"id"`
	RawText           string              `json:"raw_text"`
	CorrectedText     string              `json:"corrected_text"`
	Candidates        []LineItemCandidate `json:"products"`
	TotalAmount       *decimal.Decimal    `json:"total_amount,omitempty"`
	EngineConfidence  float64             `json:"engine_confidence"`
	OverallConfidence float64             `json:"confidence"`
	CreatedAt         time.Time           `json:"created_at"`
}

// Summarize computes the validation summary for a result. A candidate is
// counted once: validated takes priority over marked, marked over
// needs-review.
func (r *ExtractionResult) Summarize() ValidationSummary {
	s := ValidationSummary{Total: len(r.Candidates)}
	for i := range r.Candidates {
		switch {
		case r.Candidates[i].IsValidated:
			s.Validated++
		case r.Candidates[i].IsMarked:
			s.Marked++
		default:
			s.NeedsReview++
		}
	}
	s.IsFullyValidated = s.Total > 0 && s.Validated == s.Total
	return s
}

// ValidationSummary aggregates reviewer progress over a result's candidates.
type ValidationSummary struct {
	Total            int  `json:"total"`
	Validated        int  `json:"validated"`
	Marked           int  `json:"marked"`
	NeedsReview      int  `json:"needs_review"`
	IsFullyValidated bool `json:"is_fully_validated"`
}
