package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserView is the public shape of an account.
type UserView struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone,omitempty"`
	DateOfBirth      *string    `json:"date_of_birth,omitempty"`
	JourneyCompleted bool       `json:"journey_completed"`
	LastSystemKw     *float64   `json:"last_system_kw,omitempty"`
	LastNetCostINR   *float64   `json:"last_net_cost_inr,omitempty"`
	LastSavingsINR   *float64   `json:"last_estimated_savings_inr,omitempty"`
	LastEstimateAt   *time.Time `json:"last_estimate_updated_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func userView(u *authdomain.User) UserView {
	view := UserView{
		ID:               u.ID.String(),
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		JourneyCompleted: u.JourneyCompleted,
		LastSystemKw:     u.LastSystemKw,
		LastNetCostINR:   u.LastNetCostINR,
		LastSavingsINR:   u.LastEstimatedSavingsINR,
		LastEstimateAt:   u.LastEstimateUpdatedAt,
		CreatedAt:        u.CreatedAt,
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format("2006-01-02")
		view.DateOfBirth = &dob
	}
	return view
}

func (s *Server) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Log the fresh account straight in so the wizard is one click away.
	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     user.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		s.log.Warn("post-register login failed", zap.Error(err))
		c.JSON(http.StatusCreated, gin.H{"user": userView(user)})
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusCreated, gin.H{"user": userView(result.User)})
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:     strings.TrimSpace(req.Email),
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"user": userView(result.User)})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			s.log.Warn("logout failed", zap.Error(err))
		}
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userView(user)})
}
