package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solarishq/solaris/internal/finance"
)

func (s *Server) FinanceBanks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"banks": finance.Banks()})
}
