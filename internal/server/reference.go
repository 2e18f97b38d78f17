package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/speedisha/speedisha/internal/reference"
)

func (s *Server) registerReferenceRoutes() {
	grp := s.engine.Group("/api")
	grp.GET("/countries", s.listCountries)
	grp.GET("/currencies", s.listCurrencies)
}

func (s *Server) listCountries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": reference.Countries()})
}

func (s *Server) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currencies": reference.Currencies()})
}
