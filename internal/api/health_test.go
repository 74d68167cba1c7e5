package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/sousie/backend/internal/testhelpers"
)

func TestHealthHandler(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	mr, client := testhelpers.SetupRedis(t)
	router := newTestRouter(NewHealthHandler(db, client))

	t.Run("should report healthy stores", func(t *testing.T) {
		w := PerformRequest(t, router, http.MethodGet, "/api/v1/health", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","database":"ok","redis":"ok"}`, w.Body.String())
	})

	t.Run("should report an unavailable redis", func(t *testing.T) {
		mr.SetError("LOADING Redis is loading the dataset in memory")
		defer mr.SetError("")

		w := PerformRequest(t, router, http.MethodGet, "/api/v1/health", nil, "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"degraded","database":"ok","redis":"unavailable"}`, w.Body.String())
	})
}
