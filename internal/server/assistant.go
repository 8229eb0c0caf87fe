package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solarishq/solaris/internal/assistant"
	"go.uber.org/zap"
)

// AssistantChat proxies one chat turn. The endpoint keeps its own compact
// {response}/{error} shape so the wizard UI can render failures inline.
func (s *Server) AssistantChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req assistant.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	answer, err := s.assistantsvc.Chat(c.Request.Context(), user.ID.String(), req)
	if err != nil {
		switch {
		case errors.Is(err, assistant.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		case errors.Is(err, assistant.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many questions, try again shortly"})
		default:
			s.log.Error("assistant chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "assistant is unavailable right now"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": answer})
}
