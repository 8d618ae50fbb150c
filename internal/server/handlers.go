package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/teenquiz/internal/cache"
	"github.com/abhisek/teenquiz/internal/chat"
	"github.com/abhisek/teenquiz/internal/quiz"
	"github.com/abhisek/teenquiz/internal/safety"
)

// Handler carries the services the HTTP surface exposes.
type Handler struct {
	chat    *chat.Service
	quiz    *quiz.Service
	filter  *safety.Filter
	cache   *cache.Cache
	log     *zap.Logger
	version string
}

// NewHandler creates a Handler.
func NewHandler(chatSvc *chat.Service, quizSvc *quiz.Service, filter *safety.Filter, c *cache.Cache, log *zap.Logger, version string) *Handler {
	return &Handler{
		chat:    chatSvc,
		quiz:    quizSvc,
		filter:  filter,
		cache:   c,
		log:     log,
		version: version,
	}
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Teen Health Chatbot API is running",
		"version": h.version,
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"services": gin.H{
			"llm":            "available",
			"content_filter": "available",
			"cache":          h.cache.CurrentStats(c.Request.Context()),
		},
	})
}

type chatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type chatResponse struct {
	chat.Reply
	ProcessingTime float64 `json:"processing_time"`
}

func (h *Handler) postChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	start := time.Now()
	reply, err := h.chat.Respond(c.Request.Context(), req.Message, req.UserID)
	if err != nil {
		var re *chat.RequestError
		if errors.As(err, &re) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": re.Message})
			return
		}
		h.log.Error("chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		Reply:          *reply,
		ProcessingTime: time.Since(start).Seconds(),
	})
}

func (h *Handler) getTopics(c *gin.Context) {
	topics := chat.Topics()
	names := make([]string, len(topics))
	descriptions := make(map[string]string, len(topics))
	for i, t := range topics {
		names[i] = string(t)
		descriptions[string(t)] = chat.TopicDescription(t)
	}
	c.JSON(http.StatusOK, gin.H{
		"topics":       names,
		"descriptions": descriptions,
	})
}

func (h *Handler) getFollowUp(c *gin.Context) {
	userID := c.Param("user_id")
	topic := chat.Topic(c.Query("topic"))

	questions, resolved := h.chat.FollowUps(userID, topic)
	if questions == nil {
		questions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"topic":     string(resolved),
	})
}

func (h *Handler) postMCQGenerate(c *gin.Context) {
	var req quiz.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	// Topic and context feed the prompt verbatim; screen them like
	// chat input.
	if !h.filter.IsSafe(req.Topic + " " + req.Context) {
		h.log.Warn("mcq topic blocked", zap.String("topic", req.Topic))
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Topic contains inappropriate content"})
		return
	}

	items, err := h.quiz.Generate(c.Request.Context(), req)
	if err != nil {
		var ie *quiz.InputError
		if errors.As(err, &ie) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": ie.Message, "field": ie.Field})
			return
		}
		h.log.Error("mcq generate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate valid MCQs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) getMCQNext(c *gin.Context) {
	item, err := h.quiz.NextQuestion(c.Request.Context(), c.Query("topic"), c.Query("difficulty"))
	if err != nil {
		var ie *quiz.InputError
		switch {
		case errors.As(err, &ie):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid difficulty. Use: easy, medium, hard"})
		case errors.Is(err, quiz.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "No questions found for the specified criteria"})
		default:
			h.log.Error("mcq next failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

type attemptRequest struct {
	QuestionID string `json:"question_id"`
	Selected   string `json:"selected"`
	UserID     string `json:"user_id"`
}

func (h *Handler) postMCQAttempt(c *gin.Context) {
	var req attemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	req.Selected = strings.ToUpper(strings.TrimSpace(req.Selected))

	feedback, err := h.quiz.SubmitAttempt(c.Request.Context(), req.QuestionID, req.Selected, req.UserID)
	if err != nil {
		var ie *quiz.InputError
		switch {
		case errors.As(err, &ie):
			c.JSON(http.StatusBadRequest, gin.H{"detail": ie.Message, "field": ie.Field})
		case errors.Is(err, quiz.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Question not found"})
		default:
			h.log.Error("mcq attempt failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (h *Handler) getMCQAnalytics(c *gin.Context) {
	analytics, err := h.quiz.Analytics(c.Request.Context(), c.Query("topic"))
	if err != nil {
		h.log.Error("mcq analytics failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}

func (h *Handler) postClearCache(c *gin.Context) {
	h.cache.Clear(c.Request.Context())
	h.log.Info("cache cleared by admin")
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully"})
}
