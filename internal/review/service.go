// Package review is the reviewer-facing state machine over extracted
// candidates. Every transition happens through an explicit call here, never
// automatically, and only ValidationStatus fields (plus reviewer edits) are
// touched after extraction. The package does not synchronize: callers that
// allow concurrent reviewer actions against the same result must serialize
// them.
package review

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"itemize/internal/domain"
)

// Status is the reviewer-supplied state for a single candidate.
type Status struct {
	IsValidated bool
	IsMarked    bool
	Notes       string
}

// Overrides carries reviewer corrections to a candidate's extracted fields.
// Nil fields are left untouched.
type Overrides struct {
	Name     *string
	Quantity *int
	Price    *decimal.Decimal
}

// Service applies reviewer actions to extraction results.
type Service struct {
	now func() time.Time
}

// NewService returns a reviewer action service.
func NewService() *Service {
	return &Service{now: time.Now}
}

// NewServiceWithClock returns a Service with a fixed clock, for tests.
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{now: now}
}

func checkIndex(r *domain.ExtractionResult, index int) error {
	if index < 0 || index >= len(r.Candidates) {
		return fmt.Errorf("index %d of %d candidates: %w", index, len(r.Candidates), domain.ErrIndexOutOfRange)
	}
	return nil
}

// Validate sets the full validation status of candidates[index]. An
// out-of-range index returns domain.ErrIndexOutOfRange without mutating
// anything.
func (s *Service) Validate(r *domain.ExtractionResult, index int, status Status) error {
	if err := checkIndex(r, index); err != nil {
		return err
	}
	c := &r.Candidates[index]
	c.IsValidated = status.IsValidated
	c.IsMarked = status.IsMarked
	c.Notes = status.Notes
	now := s.now().UTC()
	c.ValidatedAt = &now
	return nil
}

// Mark flags or unflags a candidate for review. Marking moves a validated
// candidate back to marked; unmarking returns it to needs-review unless it
// is validated.
func (s *Service) Mark(r *domain.ExtractionResult, index int, marked bool, notes string) error {
	if err := checkIndex(r, index); err != nil {
		return err
	}
	c := &r.Candidates[index]
	c.IsMarked = marked
	if marked {
		c.IsValidated = false
	}
	if notes != "" {
		c.Notes = notes
	}
	return nil
}

// ValidateAll sets the validated flag on every candidate in one action.
func (s *Service) ValidateAll(r *domain.ExtractionResult, isValid bool, notes string) {
	now := s.now().UTC()
	for i := range r.Candidates {
		c := &r.Candidates[i]
		c.IsValidated = isValid
		if isValid {
			c.IsMarked = false
			c.ValidatedAt = &now
		}
		if notes != "" {
			c.Notes = notes
		}
	}
}

// MarkAll flags or unflags every candidate in one action.
func (s *Service) MarkAll(r *domain.ExtractionResult, marked bool) {
	for i := range r.Candidates {
		c := &r.Candidates[i]
		c.IsMarked = marked
		if marked {
			c.IsValidated = false
		}
	}
}

// Reset clears every status field, returning all candidates to needs-review.
func (s *Service) Reset(r *domain.ExtractionResult) {
	for i := range r.Candidates {
		r.Candidates[i].ValidationStatus = domain.ValidationStatus{}
	}
}

// Edit applies reviewer overrides to a candidate's name, quantity, or price.
// The extraction invariants still hold after an edit.
func (s *Service) Edit(r *domain.ExtractionResult, index int, ov Overrides) error {
	if err := checkIndex(r, index); err != nil {
		return err
	}
	if ov.Name != nil && *ov.Name == "" {
		return domain.ErrEmptyName
	}
	if ov.Quantity != nil && *ov.Quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	if ov.Price != nil && ov.Price.IsNegative() {
		return domain.ErrInvalidPrice
	}

	c := &r.Candidates[index]
	if ov.Name != nil {
		c.Name = *ov.Name
	}
	if ov.Quantity != nil {
		c.Quantity = *ov.Quantity
	}
	if ov.Price != nil {
		c.Price = *ov.Price
	}
	return nil
}

// Summary reports reviewer progress over the result.
func (s *Service) Summary(r *domain.ExtractionResult) domain.ValidationSummary {
	return r.Summarize()
}
