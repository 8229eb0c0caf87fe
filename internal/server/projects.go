package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	projectdomain "github.com/solarishq/solaris/internal/project/domain"
)

func (s *Server) ListProjects(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	projects, err := s.projectsvc.List(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// CreateProject accepts a multipart form so the project image can travel
// with the metadata in one request.
func (s *Server) CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	req := projectdomain.CreateRequest{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Location:    strings.TrimSpace(c.PostForm("location")),
	}

	if raw := strings.TrimSpace(c.PostForm("capacity_kw")); raw != "" {
		capacity, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			AbortWithError(c, newValidationError("capacity_kw", "invalid", "capacity must be a number"))
			return
		}
		req.CapacityKw = &capacity
	}

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			AbortWithError(c, projectdomain.ErrInvalidImage)
			return
		}
		defer file.Close()
		req.Image = &projectdomain.Upload{
			Filename: fileHeader.Filename,
			Reader:   file,
		}
	}

	project, err := s.projectsvc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

func (s *Server) GetProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid", "invalid project id"))
		return
	}

	project, err := s.projectsvc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (s *Server) DeleteProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid", "invalid project id"))
		return
	}

	if err := s.projectsvc.Delete(c.Request.Context(), user.ID, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
