package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solarishq/solaris/internal/vendor"
)

// SubsidyVendors serves the installer marketplace split into recommended and
// other vendors. Sizing context comes from the journey in flight, falling
// back to the user's last saved estimate.
func (s *Server) SubsidyVendors(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var (
		systemKw float64
		state    string
	)
	if j, err := s.subsidysvc.Journey(c.Request.Context(), user.ID); err == nil && j != nil {
		state = j.State
	}
	if user.LastSystemKw != nil {
		systemKw = *user.LastSystemKw
	}

	policy := s.policy.Get()
	ranked := vendor.Recommend(systemKw, state, policy.Vendor.RecommendedShare)

	recommended := make([]vendor.Scored, 0, len(ranked))
	others := make([]vendor.Scored, 0, len(ranked))
	for _, v := range ranked {
		if v.IsRecommended {
			recommended = append(recommended, v)
		} else {
			others = append(others, v)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"recommended": recommended,
		"others":      others,
		"context": gin.H{
			"system_kw": systemKw,
			"state":     state,
		},
	})
}
