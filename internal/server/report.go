package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solarishq/solaris/internal/scheme"
	subsidydomain "github.com/solarishq/solaris/internal/subsidy/domain"
)

// SubsidyReport renders the current estimate as a downloadable PDF.
func (s *Server) SubsidyReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	bundle, err := s.subsidysvc.Results(c.Request.Context(), user.ID, scheme.ResultFilters{})
	if err != nil {
		if errors.Is(err, subsidydomain.ErrProfileIncomplete) || errors.Is(err, subsidydomain.ErrJourneyIncomplete) {
			redirectToWizard(c)
			return
		}
		AbortWithError(c, err)
		return
	}

	pdf, err := s.reports.EstimatePDF(user.Name, bundle)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := io.ReadAll(pdf)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="solar-estimate.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
