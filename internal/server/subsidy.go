package server

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/solarishq/solaris/internal/scheme"
	subsidydomain "github.com/solarishq/solaris/internal/subsidy/domain"
	"github.com/solarishq/solaris/internal/tariff"
)

var consumerSegments = []string{"residential", "commercial", "industrial", "agricultural"}

var roofTypes = []string{"rcc", "metal", "tile", "asbestos", "other"}

type ProfileForm struct {
	State           string   `json:"state"`
	ConsumerSegment string   `json:"consumer_segment"`
	MonthlyBillINR  *float64 `json:"monthly_bill_inr"`
	Provider        string   `json:"provider"`
	GridConnection  bool     `json:"grid_connection"`
}

type SiteForm struct {
	RoofAreaM2 *float64 `json:"roof_area_m2"`
	RoofType   string   `json:"roof_type"`
}

// SubsidyStart serves step one: current answers plus the form choices.
func (s *Server) SubsidyStart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	j, err := s.subsidysvc.Journey(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"journey":   j,
		"providers": tariff.Providers(),
		"segments":  consumerSegments,
	})
}

func (s *Server) SubsidySaveProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var form ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.subsidysvc.SaveProfile(c.Request.Context(), user.ID, subsidydomain.ProfileRequest{
		State:           form.State,
		ConsumerSegment: form.ConsumerSegment,
		MonthlyBillINR:  form.MonthlyBillINR,
		Provider:        form.Provider,
		GridConnection:  form.GridConnection,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"next": "/subsidy/site"})
}

// SubsidySite serves step two. Arriving without step one answered bounces
// back to the entry step rather than erroring.
func (s *Server) SubsidySite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	j, err := s.subsidysvc.Journey(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if !j.HasProfile() {
		redirectToWizard(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"journey":    j,
		"roof_types": roofTypes,
	})
}

func (s *Server) SubsidySaveSite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var form SiteForm
	if err := c.ShouldBindJSON(&form); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.subsidysvc.SaveSite(c.Request.Context(), user.ID, subsidydomain.SiteRequest{
		RoofAreaM2: form.RoofAreaM2,
		RoofType:   form.RoofType,
	})
	if err != nil {
		if errors.Is(err, subsidydomain.ErrProfileIncomplete) {
			redirectToWizard(c)
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"next": "/subsidy/results"})
}

func (s *Server) SubsidyResults(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	filters := scheme.ResultFilters{
		Coverage:  c.Query("coverage"),
		Ownership: c.Query("ownership"),
		Grid:      c.Query("grid"),
	}

	bundle, err := s.subsidysvc.Results(c.Request.Context(), user.ID, filters)
	if err != nil {
		if errors.Is(err, subsidydomain.ErrProfileIncomplete) || errors.Is(err, subsidydomain.ErrJourneyIncomplete) {
			redirectToWizard(c)
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}

func (s *Server) SubsidyRestart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.subsidysvc.Restart(c.Request.Context(), user.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"next": "/subsidy/"})
}

func (s *Server) ListSubmissions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	submissions, err := s.subsidysvc.ListSubmissions(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (s *Server) GetSubmission(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid", "invalid submission id"))
		return
	}

	submission, err := s.subsidysvc.GetSubmission(c.Request.Context(), user.ID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}
