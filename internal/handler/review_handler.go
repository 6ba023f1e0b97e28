package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"itemize/internal/domain"
	"itemize/internal/review"
	"itemize/internal/store"
)

// ReviewHandler exposes reviewer actions over stored extraction results.
// All mutations go through the store's Update so concurrent reviewer calls
// against the same result are serialized.
type ReviewHandler struct {
	store   *store.Memory
	service *review.Service
	log     *zap.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(st *store.Memory, svc *review.Service, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{store: st, service: svc, log: log}
}

// ValidateRequest is the per-candidate validation payload.
type ValidateRequest struct {
	IsValidated bool   `json:"is_validated"`
	IsMarked    bool   `json:"is_marked"`
	Notes       string `json:"notes"`
}

// Validate handles POST /extractions/:id/candidates/:index/validate.
func (h *ReviewHandler) Validate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request payload")
		return
	}

	result, err := h.store.Update(id, func(r *domain.ExtractionResult) error {
		return h.service.Validate(r, index, review.Status{
			IsValidated: req.IsValidated,
			IsMarked:    req.IsMarked,
			Notes:       req.Notes,
		})
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, toResponse(result))
}

// MarkRequest is the per-candidate mark payload.
type MarkRequest struct {
	IsMarked bool   `json:"is_marked"`
	Notes    string `json:"notes"`
}

// Mark handles POST /extractions/:id/candidates/:index/mark.
func (h *ReviewHandler) Mark(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request payload")
		return
	}

	result, err := h.store.Update(id, func(r *domain.ExtractionResult) error {
		return h.service.Mark(r, index, req.IsMarked, req.Notes)
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, toResponse(result))
}

// EditRequest carries reviewer overrides; absent fields stay untouched.
type EditRequest struct {
	Name     *string          `json:"name"`
	Quantity *int             `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// Edit handles PATCH /extractions/:id/candidates/:index.
func (h *ReviewHandler) Edit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request payload")
		return
	}

	result, err := h.store.Update(id, func(r *domain.ExtractionResult) error {
		return h.service.Edit(r, index, review.Overrides{
			Name:     req.Name,
			Quantity: req.Quantity,
			Price:    req.Price,
		})
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, toResponse(result))
}

// BulkValidateRequest is the validate-all payload.
type BulkValidateRequest struct {
	IsValidated bool   `json:"is_validated"`
	Notes       string `json:"notes"`
}

// ValidateAll handles POST /extractions/:id/validate-all.
func (h *ReviewHandler) ValidateAll(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req BulkValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request payload")
		return
	}

	result, err := h.store.Update(id, func(r *domain.ExtractionResult) error {
		h.service.ValidateAll(r, req.IsValidated, req.Notes)
		return nil
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, toResponse(result))
}

// BulkMarkRequest is the mark-all payload.
type BulkMarkRequest struct {
	IsMarked bool `json:"is_marked"`
}

// MarkAll handles POST /extractions/:id/mark-all.
func (h *ReviewHandler) MarkAll(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req BulkMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request payload")
		return
	}

	result, err := h.store.Update(id, func(r *domain.ExtractionResult) error {
		h.service.MarkAll(r, req.IsMarked)
		return nil
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, toResponse(result))
}

// Reset handles POST /extractions/:id/reset.
func (h *ReviewHandler) Reset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.store.Update(id, func(r *domain.ExtractionResult) error {
		h.service.Reset(r)
		return nil
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, toResponse(result))
}
