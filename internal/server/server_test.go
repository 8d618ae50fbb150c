package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/teenquiz/internal/cache"
	"github.com/abhisek/teenquiz/internal/chat"
	"github.com/abhisek/teenquiz/internal/llm"
	"github.com/abhisek/teenquiz/internal/quiz"
	"github.com/abhisek/teenquiz/internal/safety"
	"github.com/abhisek/teenquiz/internal/store"
)

const mcqReply = `[
  {
    "question": "How often should teens do moderate exercise?",
    "options": [
      {"label": "A", "text": "Never", "is_correct": false},
      {"label": "B", "text": "About an hour daily", "is_correct": true},
      {"label": "C", "text": "Once a month", "is_correct": false},
      {"label": "D", "text": "Only during school sports", "is_correct": false}
    ],
    "explanation": "Health guidelines recommend around 60 minutes of activity per day.",
    "distractor_rationale": ["inactivity is harmful", "recommended amount", "far too infrequent", "activity should not be limited to school"]
  }
]`

func newTestRouter(t *testing.T, mock *llm.MockProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	c := cache.New(context.Background(), "", time.Minute, log)
	t.Cleanup(func() { c.Close() })

	filter := safety.NewFilter()
	chatSvc := chat.NewService(mock, filter, c, log, chat.DefaultConfig())
	quizSvc := quiz.NewService(mock, st, log, quiz.DefaultConfig())

	h := NewHandler(chatSvc, quizSvc, filter, c, log, "1.0.0")
	return NewRouter(h, log, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func TestRootAndHealth(t *testing.T) {
	router := newTestRouter(t, llm.NewMockProvider())

	w := doJSON(t, router, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", w.Code)
	}
	var root struct {
		Version string `json:"version"`
	}
	decode(t, w, &root)
	if root.Version != "1.0.0" {
		t.Errorf("version = %q", root.Version)
	}

	w = doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d", w.Code)
	}
	var health struct {
		Status string `json:"status"`
	}
	decode(t, w, &health)
	if health.Status != "healthy" {
		t.Errorf("status = %q", health.Status)
	}
}

func TestChatEndpoint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Fruit is a great snack choice."})
	router := newTestRouter(t, mock)

	w := doJSON(t, router, http.MethodPost, "/chat", gin.H{
		"message": "what food makes a good snack?",
		"user_id": "u1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Response  string   `json:"response"`
		Topic     string   `json:"topic"`
		FollowUps []string `json:"follow_up_questions"`
	}
	decode(t, w, &resp)
	if resp.Response != "Fruit is a great snack choice." {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.Topic != "nutrition" || len(resp.FollowUps) == 0 {
		t.Errorf("topic = %q followups = %v", resp.Topic, resp.FollowUps)
	}
}

func TestChatEndpoint_BadInput(t *testing.T) {
	router := newTestRouter(t, llm.NewMockProvider())

	tests := []struct {
		name string
		body gin.H
	}{
		{"empty message", gin.H{"message": ""}},
		{"unsafe message", gin.H{"message": "where do I buy drugs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/chat", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestTopicsEndpoint(t *testing.T) {
	router := newTestRouter(t, llm.NewMockProvider())

	w := doJSON(t, router, http.MethodGet, "/topics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Topics       []string          `json:"topics"`
		Descriptions map[string]string `json:"descriptions"`
	}
	decode(t, w, &resp)
	if len(resp.Topics) != 9 || len(resp.Descriptions) != 9 {
		t.Errorf("topics = %d descriptions = %d, want 9 each", len(resp.Topics), len(resp.Descriptions))
	}
	if resp.Topics[0] != "nutrition" {
		t.Errorf("first topic = %q", resp.Topics[0])
	}
}

func TestFollowUpEndpoint(t *testing.T) {
	router := newTestRouter(t, llm.NewMockProvider())

	w := doJSON(t, router, http.MethodGet, "/follow-up/u1?topic=nutrition", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Questions []string `json:"questions"`
		Topic     string   `json:"topic"`
	}
	decode(t, w, &resp)
	if resp.Topic != "nutrition" || len(resp.Questions) == 0 {
		t.Errorf("resp = %+v", resp)
	}

	// No topic and no history falls back to general suggestions.
	w = doJSON(t, router, http.MethodGet, "/follow-up/unknown-user", nil)
	decode(t, w, &resp)
	if resp.Topic != "general" || len(resp.Questions) == 0 {
		t.Errorf("fallback resp = %+v", resp)
	}
}

func TestMCQFlow(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: mcqReply})
	router := newTestRouter(t, mock)

	// Generate.
	w := doJSON(t, router, http.MethodPost, "/mcq/generate", gin.H{
		"topic": "Exercise", "difficulty": "easy", "count": 1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate status = %d body = %s", w.Code, w.Body.String())
	}
	var gen struct {
		Items []quiz.Item `json:"items"`
	}
	decode(t, w, &gen)
	if len(gen.Items) != 1 {
		t.Fatalf("items = %d", len(gen.Items))
	}

	// Next.
	w = doJSON(t, router, http.MethodGet, "/mcq/next?topic=Exercise&difficulty=easy", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("next status = %d body = %s", w.Code, w.Body.String())
	}
	var item quiz.Item
	decode(t, w, &item)
	if item.ID != gen.Items[0].ID {
		t.Errorf("next returned %q, want %q", item.ID, gen.Items[0].ID)
	}

	// Attempt, lowercase label normalized.
	w = doJSON(t, router, http.MethodPost, "/mcq/attempt", gin.H{
		"question_id": item.ID, "selected": "b", "user_id": "u1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("attempt status = %d body = %s", w.Code, w.Body.String())
	}
	var fb quiz.AttemptFeedback
	decode(t, w, &fb)
	if !fb.Correct || fb.CorrectLabel != "B" {
		t.Errorf("feedback = %+v", fb)
	}

	// Analytics.
	w = doJSON(t, router, http.MethodGet, "/mcq/analytics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics status = %d", w.Code)
	}
	var an store.Analytics
	decode(t, w, &an)
	if len(an.QuestionsByTopic) != 1 || len(an.AttemptStats) != 1 {
		t.Errorf("analytics = %+v", an)
	}
}

func TestMCQGenerate_Failures(t *testing.T) {
	t.Run("unsafe topic", func(t *testing.T) {
		router := newTestRouter(t, llm.NewMockProvider())
		w := doJSON(t, router, http.MethodPost, "/mcq/generate", gin.H{
			"topic": "how to buy drugs", "difficulty": "easy", "count": 1,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("invalid count", func(t *testing.T) {
		router := newTestRouter(t, llm.NewMockProvider())
		w := doJSON(t, router, http.MethodPost, "/mcq/generate", gin.H{
			"topic": "Exercise", "difficulty": "easy", "count": 99,
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("nothing usable generated", func(t *testing.T) {
		router := newTestRouter(t, llm.NewMockProvider(llm.MockResponse{Text: "no json here"}))
		w := doJSON(t, router, http.MethodPost, "/mcq/generate", gin.H{
			"topic": "Exercise", "difficulty": "easy", "count": 1,
		})
		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})
}

func TestMCQNext_NotFoundAndBadDifficulty(t *testing.T) {
	router := newTestRouter(t, llm.NewMockProvider())

	w := doJSON(t, router, http.MethodGet, "/mcq/next", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("empty store status = %d, want 404", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/mcq/next?difficulty=extreme", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad difficulty status = %d, want 400", w.Code)
	}
}

func TestMCQAttempt_NotFound(t *testing.T) {
	router := newTestRouter(t, llm.NewMockProvider())

	w := doJSON(t, router, http.MethodPost, "/mcq/attempt", gin.H{
		"question_id": "missing", "selected": "A",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestClearCache(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "Water is the best choice."},
		llm.MockResponse{Text: "Water is still the best choice."},
	)
	router := newTestRouter(t, mock)

	body := gin.H{"message": "what should I drink with meals for my diet"}
	doJSON(t, router, http.MethodPost, "/chat", body)

	w := doJSON(t, router, http.MethodPost, "/admin/clear-cache", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear-cache status = %d", w.Code)
	}

	// After the clear, the same message hits the backend again.
	doJSON(t, router, http.MethodPost, "/chat", body)
	if mock.CallCount() != 2 {
		t.Errorf("backend calls = %d, want 2", mock.CallCount())
	}
}
