package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dashboard summarizes the account: last estimate headline figures,
// project count and tracker totals.
func (s *Server) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	payload := gin.H{
		"user": userView(user),
		"estimate": gin.H{
			"system_kw":             user.LastSystemKw,
			"net_cost_inr":          user.LastNetCostINR,
			"estimated_savings_inr": user.LastEstimatedSavingsINR,
			"updated_at":            user.LastEstimateUpdatedAt,
		},
	}

	if projects, err := s.projectsvc.List(c.Request.Context(), user.ID); err == nil {
		payload["projects_count"] = len(projects)
	} else {
		s.log.Warn("dashboard project listing failed", zap.Error(err))
	}

	if trackerCtx, err := s.trackersvc.BuildContext(c.Request.Context(), user.ID); err == nil {
		payload["energy_totals"] = trackerCtx.Totals
	} else {
		s.log.Warn("dashboard tracker aggregation failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, payload)
}
