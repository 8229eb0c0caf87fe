package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
	obscontext "github.com/solarishq/solaris/internal/observability/context"
)

const (
	contextUserKey   = "user"
	contextUserIDKey = "user_id"

	// wizardEntryPath is where incomplete flows bounce back to.
	wizardEntryPath = "/subsidy/"
)

// AuthRequired resolves the session cookie into a user and stores it on the
// gin context. Missing or dead sessions abort with 401.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		user, err := s.authsvc.GetUser(c.Request.Context(), sess.UserID)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := obscontext.WithUserID(c.Request.Context(), user.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Set(contextUserKey, user)
		c.Set(contextUserIDKey, user.ID.String())
		c.Next()
	}
}

// JourneyCompletedRequired gates the app shell. Until the user has run at
// least one estimate there is nothing to show, so redirect to the wizard.
func (s *Server) JourneyCompletedRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !user.JourneyCompleted {
			redirectToWizard(c)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*authdomain.User)
	return user, ok && user != nil
}

func redirectToWizard(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, wizardEntryPath)
	c.Abort()
}
