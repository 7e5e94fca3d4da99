package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoiceqc/internal/batch"
	invoiceqcHttp "github.com/MrJamesThe3rd/invoiceqc/internal/http"
	validationHandler "github.com/MrJamesThe3rd/invoiceqc/internal/http/validation"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

func newRouter() http.Handler {
	svc := batch.NewService(validation.New(), 1)

	return invoiceqcHttp.New(validationHandler.NewHandler(svc, 1<<20), []string{"https://review.example.com"})
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_ValidateMounted(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate-json", strings.NewReader(`[]`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/validate-json", nil)
	req.Header.Set("Origin", "https://review.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "https://review.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
