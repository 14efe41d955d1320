package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/subscription_tracker/internal/core/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCurrencyRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterCurrencyRoutes(r.Group("/api/v1"), services.NewCurrencyService())
	return r
}

func TestListCurrencies(t *testing.T) {
	w := httptest.NewRecorder()
	newCurrencyRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListCurrenciesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Currencies, 3)
	assert.Equal(t, "JPY", resp.Currencies[0].CurrencyCode)
	assert.True(t, resp.Currencies[0].IsDefault)
	assert.Equal(t, 0, resp.Currencies[0].Precision)
	assert.Equal(t, 2, resp.Currencies[1].Precision)
}

func TestGetCurrency(t *testing.T) {
	r := newCurrencyRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/currencies/EUR", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CurrencyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "€", resp.Symbol)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/currencies/GBP", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
