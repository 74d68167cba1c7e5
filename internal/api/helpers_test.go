package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sousie/backend/internal/mocks"
	"github.com/pageza/sousie/backend/internal/types"
)

const testToken = "Bearer test-token"

type routeRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

func newTestRouter(h routeRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

// authAs makes every token resolve to userID
func authAs(userID uuid.UUID) *mocks.MockAuthService {
	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", "test-token").Return(&types.TokenClaims{UserID: userID, Username: "cook"}, nil)
	return auth
}

// PerformRequest sends body as JSON, authenticated when token is set
func PerformRequest(t *testing.T, r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

var anyCtx = mock.Anything
