package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"itemize/internal/domain"
	"itemize/internal/export"
	"itemize/internal/store"
)

// Extractor runs the recovery pipeline over raw recognition text.
type Extractor interface {
	Extract(rawText string, engineConfidence float64) *domain.ExtractionResult
}

// ExtractionHandler exposes extraction runs and their results.
type ExtractionHandler struct {
	extractor Extractor
	store     *store.Memory
	log       *zap.Logger
}

// NewExtractionHandler creates an ExtractionHandler.
func NewExtractionHandler(extractor Extractor, st *store.Memory, log *zap.Logger) *ExtractionHandler {
	return &ExtractionHandler{extractor: extractor, store: st, log: log}
}

// CreateExtractionRequest is the POST /extractions payload.
type CreateExtractionRequest struct {
	RawText          string  `json:"raw_text"`
	EngineConfidence float64 `json:"engine_confidence"`
}

// extractionResponse is a result plus its live validation summary.
type extractionResponse struct {
	*domain.ExtractionResult
	ValidationSummary domain.ValidationSummary `json:"validation_summary"`
}

func toResponse(r *domain.ExtractionResult) extractionResponse {
	return extractionResponse{ExtractionResult: r, ValidationSummary: r.Summarize()}
}

// Create handles POST /extractions. Unparsable text is not an error: the
// response simply carries zero candidates.
func (h *ExtractionHandler) Create(c *gin.Context) {
	var req CreateExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request payload")
		return
	}
	result := h.extractor.Extract(req.RawText, req.EngineConfidence)
	h.store.Save(result)
	RespondCreated(c, toResponse(result))
}

// GetByID handles GET /extractions/:id.
func (h *ExtractionHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.store.Get(id)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, toResponse(result))
}

// Summary handles GET /extractions/:id/summary.
func (h *ExtractionHandler) Summary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.store.Get(id)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, result.Summarize())
}

// Export handles GET /extractions/:id/export?format=csv|xlsx.
func (h *ExtractionHandler) Export(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.store.Get(id)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		filename := export.BuildFilename(id.String(), "csv")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Status(http.StatusOK)
		if _, err := c.Writer.Write(export.BOM); err != nil {
			return
		}
		if err := export.NewCSVWriter(c.Writer).WriteResult(result); err != nil {
			h.log.Error("csv export failed", zap.Error(err))
		}
	case "xlsx":
		filename := export.BuildFilename(id.String(), "xlsx")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := export.WriteXLSX(c.Writer, result); err != nil {
			h.log.Error("xlsx export failed", zap.Error(err))
		}
	default:
		HandleError(c, h.log, domain.ErrUnsupportedExport)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parseIndex(c *gin.Context) (int, bool) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "index must be an integer")
		return 0, false
	}
	return idx, true
}
