package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/solarishq/solaris/internal/observability/metrics"
	"github.com/solarishq/solaris/internal/ratelimit"
	"go.uber.org/zap"
)

const systemPrompt = `You are a rooftop solar advisor for Indian households and small businesses.
Answer briefly and practically. Cover subsidy schemes (PM Surya Ghar, PM-KUSUM,
state programmes), sizing, costs, net metering and payback when relevant.
If you are unsure, say so rather than inventing figures.`

// ChatRequest carries the user message plus the wizard context it was asked
// from.
type ChatRequest struct {
	Message  string            `json:"message"`
	Step     string            `json:"step,omitempty"`
	FormData map[string]string `json:"form_data,omitempty"`
}

type Service struct {
	log     *zap.Logger
	client  *Client
	limiter *ratelimit.AssistantLimiter
	metrics *metrics.Metrics
}

func NewService(log *zap.Logger, client *Client, limiter *ratelimit.AssistantLimiter, m *metrics.Metrics) *Service {
	return &Service{
		log:     log.Named("assistant.service"),
		client:  client,
		limiter: limiter,
		metrics: m,
	}
}

// Chat answers one user turn. Blank messages are rejected before any
// upstream spend.
func (s *Service) Chat(ctx context.Context, userID string, req ChatRequest) (string, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, userID)
		if err != nil {
			return "", err
		}
		if !allowed {
			s.metrics.RecordAssistantCall("rate_limited")
			return "", ErrRateLimited
		}
	}

	answer, err := s.client.Complete(ctx, systemPrompt, composeUserPrompt(message, req))
	if err != nil {
		s.metrics.RecordAssistantCall("error")
		s.log.Error("assistant call failed", zap.Error(err))
		return "", err
	}

	s.metrics.RecordAssistantCall("ok")
	return answer, nil
}

func composeUserPrompt(message string, req ChatRequest) string {
	var b strings.Builder

	if step := strings.TrimSpace(req.Step); step != "" {
		fmt.Fprintf(&b, "The user is on the %q step of the subsidy wizard.\n", step)
	}
	if len(req.FormData) > 0 {
		b.WriteString("Form data entered so far:\n")
		keys := make([]string, 0, len(req.FormData))
		for k := range req.FormData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, req.FormData[k])
		}
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(message)
	return b.String()
}
