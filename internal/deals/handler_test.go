package deals

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := new(MockRepository)
	handler := NewHandler(NewService(repo, zap.NewNop()), zap.NewNop())

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(router *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSection179EndpointZeroBusinessUse(t *testing.T) {
	router := newTestRouter()

	// Zero business use binds fine and comes back as a non-qualification
	w := postJSON(router, "/api/v1/tax/section179", gin.H{
		"vehicle_price":    80000,
		"business_use_pct": 0,
		"tax_bracket":      0,
		"model":            "Ram 2500",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, false, result["qualifies"])
	assert.Contains(t, result["reason"], "at least 50%")
}

func TestSection179EndpointDefaultLoanTerm(t *testing.T) {
	router := newTestRouter()

	w := postJSON(router, "/api/v1/tax/section179", gin.H{
		"vehicle_price":    60000,
		"business_use_pct": 100,
		"tax_bracket":      30,
		"model":            "Cybertruck",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Financing *struct {
			MonthlyPayment float64 `json:"monthly_payment"`
		} `json:"financing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotNil(t, result.Financing)
	assert.Equal(t, 1000.0, result.Financing.MonthlyPayment)
}

func TestSection179EndpointRejectsOutOfRangeInputs(t *testing.T) {
	router := newTestRouter()

	w := postJSON(router, "/api/v1/tax/section179", gin.H{
		"vehicle_price":    80000,
		"business_use_pct": 100,
		"tax_bracket":      60,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, "/api/v1/tax/section179", gin.H{
		"vehicle_price":    80000,
		"business_use_pct": 100,
		"tax_bracket":      24,
		"loan_term_months": 6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
