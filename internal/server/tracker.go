package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	trackerdomain "github.com/solarishq/solaris/internal/tracker/domain"
)

type TrackerEntryRequest struct {
	Date       string   `json:"date"`
	EntryType  string   `json:"entry_type"`
	AmountKwh  float64  `json:"amount_kwh"`
	RevenueINR *float64 `json:"revenue_inr"`
	Notes      string   `json:"notes"`
}

func (s *Server) Tracker(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	trackerCtx, err := s.trackersvc.BuildContext(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trackerCtx)
}

func (s *Server) AddTrackerEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req TrackerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entryReq := trackerdomain.EntryRequest{
		EntryType:  req.EntryType,
		AmountKwh:  req.AmountKwh,
		RevenueINR: req.RevenueINR,
		Notes:      req.Notes,
	}
	if raw := strings.TrimSpace(req.Date); raw != "" {
		date, err := parseEntryDate(raw)
		if err != nil {
			AbortWithError(c, newValidationError("date", "invalid", "date must be YYYY-MM-DD"))
			return
		}
		entryReq.Date = &date
	}

	entry, err := s.trackersvc.AddEntry(c.Request.Context(), user.ID, entryReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func parseEntryDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
