package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sousie/backend/config"
	"github.com/pageza/sousie/backend/internal/models"
	"github.com/pageza/sousie/backend/internal/provider"
	"github.com/pageza/sousie/backend/internal/server"
	"github.com/pageza/sousie/backend/internal/service"
	"github.com/pageza/sousie/backend/internal/testhelpers"
	"github.com/pageza/sousie/backend/internal/types"
)

const surpriseReply = `Here are four menus!
[
  {"menu": "Sunset in a Bowl", "main": {"dish": "Mango Curry", "ingredients": {"mango": "2", "coconut milk": "400ml"}, "steps": ["Simmer", "Serve"]}, "side": "Jasmine Rice"},
  {"menu": "Campfire Tales", "main": "Smoky Chili", "side": "Cornbread",},
]
Have fun!`

const mealJSON = `{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole","strCategory":"Chicken","strArea":"Japanese","strInstructions":"Bake.","strMealThumb":"","strIngredient1":"soy sauce","strMeasure1":"3/4 cup","strIngredient2":""}]}`

// fakeLLM answers chat completions with the queued replies in order
type fakeLLM struct {
	mu      sync.Mutex
	replies []string
}

func (f *fakeLLM) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	f.mu.Unlock()

	_, _ = io.Copy(io.Discard, r.Body)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "llama3-70b-8192",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": reply},
		}},
	})
}

type harness struct {
	t      *testing.T
	srv    *server.Server
	token  string
	userID uuid.UUID
}

func setup(t *testing.T, replies ...string) *harness {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	_, redisClient := testhelpers.SetupRedis(t)
	log, _ := testhelpers.NullLogger()

	llmServer := httptest.NewServer(&fakeLLM{replies: replies})
	t.Cleanup(llmServer.Close)
	mealServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, mealJSON)
	}))
	t.Cleanup(mealServer.Close)

	llm, err := provider.New(context.Background(), provider.Settings{
		Provider:   provider.Groq,
		APIKey:     "test-key",
		BaseURL:    llmServer.URL,
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}, log)
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:      config.Test,
		ServerHost:       "localhost",
		ServerPort:       "0",
		RateLimitPerHour: 100,
	}
	auth := service.NewAuthService("integration-secret")
	userID := uuid.New()
	token, err := auth.GenerateToken(&types.TokenClaims{UserID: userID, Username: "cook"})
	require.NoError(t, err)

	srv := server.New(cfg, db, redisClient, server.Services{
		Auth:       auth,
		Chat:       service.NewChatService(llm, service.NewMenuCache(redisClient), db, nil, log),
		RecipeLogs: service.NewRecipeLogService(db),
		Feedback:   service.NewFeedbackService(db),
		History:    service.NewHistoryService(db),
		Surprise:   service.NewSurpriseService(mealServer.URL),
	}, log)

	return &harness{t: t, srv: srv, token: "Bearer " + token, userID: userID}
}

func (h *harness) do(method, path string, body any, out any) int {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", h.token)
	w := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestConversationFlow(t *testing.T) {
	h := setup(t, surpriseReply, "Happy cooking! Let me know if you need anything else.")

	var first types.TurnResponse
	code := h.do(http.MethodPost, "/api/v1/chat/surprise", nil, &first)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, first.Menu)
	assert.NotEqual(t, uuid.Nil, first.ConversationID)
	require.Len(t, first.Menu.Mains, 2)
	require.Len(t, first.Menu.Sides, 2)
	assert.Equal(t, "Mango Curry", first.Menu.Mains[0].Name)
	assert.Equal(t, "Sunset in a Bowl", first.Menu.Mains[0].Description)
	assert.Equal(t, "400ml", first.Menu.Mains[0].Ingredients[1].USAmount)
	assert.Equal(t, "Cornbread", first.Menu.Sides[1].Name)

	menuPath := "/api/v1/conversations/" + first.ConversationID.String() + "/menu"

	var cached types.MenuResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, menuPath, nil, &cached))
	assert.Equal(t, first.Menu, cached.Menu)

	var similar struct {
		Recipes []models.RecipeLog `json:"recipes"`
	}
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/v1/recipes/similar?q=surprise", nil, &similar))
	require.Len(t, similar.Recipes, 1)
	assert.Equal(t, first.ConversationID, similar.Recipes[0].ConversationID)

	var second types.TurnResponse
	code = h.do(http.MethodPost, "/api/v1/chat", types.ChatRequest{
		ConversationID: &first.ConversationID,
		Messages: []provider.Message{
			{Role: provider.RoleAssistant, Content: surpriseReply},
			{Role: provider.RoleUser, Content: "Thanks!"},
		},
	}, &second)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Nil(t, second.Menu)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, menuPath, nil, nil))
}

func TestResetConversation(t *testing.T) {
	h := setup(t, surpriseReply)

	var turn types.TurnResponse
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/api/v1/chat/surprise", nil, &turn))
	require.NotNil(t, turn.Menu)

	require.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/v1/conversations/"+turn.ConversationID.String(), nil, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/conversations/"+turn.ConversationID.String()+"/menu", nil, nil))
}

func TestFeedbackAndHistory(t *testing.T) {
	h := setup(t, "unused")

	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/v1/prompts", types.CreatePromptRequest{Prompt: "beef stew", Response: "Sure!"}, nil))
	for rating := 1; rating <= 4; rating++ {
		require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/v1/feedback", types.CreateFeedbackRequest{
			Prompt:   "beef stew",
			Response: "Sure!",
			Rating:   rating,
		}, nil))
	}
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/api/v1/feedback", types.CreateFeedbackRequest{
		Prompt: "beef stew", Response: "Sure!", Rating: 6,
	}, nil))

	var recent struct {
		Feedback []types.FeedbackResponse `json:"feedback"`
	}
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/v1/feedback/recent", nil, &recent))
	assert.Len(t, recent.Feedback, service.RecentFeedbackLimit)

	var history struct {
		Prompts []types.PromptResponse `json:"prompts"`
	}
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/v1/prompts", nil, &history))
	require.Len(t, history.Prompts, 1)
	assert.Equal(t, "beef stew", history.Prompts[0].Prompt)
}

func TestSurpriseMeal(t *testing.T) {
	h := setup(t, "unused")

	var resp struct {
		Meal service.Meal `json:"meal"`
	}
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/v1/surprise/meal", nil, &resp))
	assert.Equal(t, "Teriyaki Chicken Casserole", resp.Meal.Name)
	require.Len(t, resp.Meal.Ingredients, 1)
	assert.Equal(t, "soy sauce", resp.Meal.Ingredients[0].Name)
}
