package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"itemize/internal/domain"
	"itemize/internal/export"
	"itemize/internal/handler"
	"itemize/internal/store"
	"itemize/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func storedResult() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		ID:      uuid.New(),
		RawText: "ES TEKLEK: 1 x @ 6,364 = 6,364",
		Candidates: []domain.LineItemCandidate{
			{Name: "ES TEKLEK", Quantity: 1, Price: decimal.NewFromInt(6364), Confidence: 0.95, Method: domain.MethodStructuredSingleLine},
		},
		OverallConfidence: 0.95,
	}
}

func newExtractionHandler() (*handler.ExtractionHandler, *mocks.MockExtractor, *store.Memory) {
	mockEx := new(mocks.MockExtractor)
	st := store.NewMemory()
	h := handler.NewExtractionHandler(mockEx, st, zap.NewNop())
	return h, mockEx, st
}

func jsonRequest(method, path string, body any) *http.Request {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Create ---

func TestExtractionHandler_Create_Success(t *testing.T) {
	h, mockEx, st := newExtractionHandler()
	expected := storedResult()
	mockEx.On("Extract", "ES TEKLEK: 1 x @ 6,364 = 6,364", 0.9).Return(expected)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/extractions", map[string]any{
		"raw_text":          "ES TEKLEK: 1 x @ 6,364 = 6,364",
		"engine_confidence": 0.9,
	})

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	// result is persisted for later review
	stored, err := st.Get(expected.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Candidates, 1)
	mockEx.AssertExpectations(t)
}

func TestExtractionHandler_Create_InvalidJSON(t *testing.T) {
	h, _, _ := newExtractionHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/extractions", bytes.NewReader([]byte(`{"raw_text": `)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- GetByID ---

func TestExtractionHandler_GetByID_Success(t *testing.T) {
	h, _, st := newExtractionHandler()
	r := storedResult()
	st.Save(r)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/extractions/"+r.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: r.ID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestExtractionHandler_GetByID_NotFound(t *testing.T) {
	h, _, _ := newExtractionHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExtractionHandler_GetByID_BadUUID(t *testing.T) {
	h, _, _ := newExtractionHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Summary ---

func TestExtractionHandler_Summary(t *testing.T) {
	h, _, st := newExtractionHandler()
	r := storedResult()
	st.Save(r)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: r.ID.String()}}

	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"needs_review":1`)
}

// --- Export ---

func TestExtractionHandler_Export_CSV(t *testing.T) {
	h, _, st := newExtractionHandler()
	r := storedResult()
	st.Save(r)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/extractions/"+r.ID.String()+"/export?format=csv", nil)
	c.Params = gin.Params{{Key: "id", Value: r.ID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	body := w.Body.Bytes()
	assert.True(t, bytes.HasPrefix(body, export.BOM))
	assert.Contains(t, string(body), "ES TEKLEK")
}

func TestExtractionHandler_Export_UnsupportedFormat(t *testing.T) {
	h, _, st := newExtractionHandler()
	r := storedResult()
	st.Save(r)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/extractions/"+r.ID.String()+"/export?format=pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: r.ID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
