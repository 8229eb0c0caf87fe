package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
)

type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"date_of_birth"`
}

func (s *Server) Profile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userView(user)})
}

func (s *Server) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := authdomain.UpdateProfileRequest{
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.DateOfBirth != nil {
		raw := strings.TrimSpace(*req.DateOfBirth)
		if raw != "" {
			dob, err := time.Parse("2006-01-02", raw)
			if err != nil {
				AbortWithError(c, newValidationError("date_of_birth", "invalid", "date of birth must be YYYY-MM-DD"))
				return
			}
			update.DateOfBirth = &dob
		}
	}

	updated, err := s.authsvc.UpdateProfile(c.Request.Context(), user.ID, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userView(updated)})
}
