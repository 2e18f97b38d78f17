package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	builderdomain "github.com/speedisha/speedisha/internal/builder/domain"
	onboardingdomain "github.com/speedisha/speedisha/internal/onboarding/domain"
)

func (s *Server) registerOnboardingRoutes() {
	grp := s.engine.Group("/api/onboarding", s.requireUser)
	grp.POST("", s.createProfile)
	grp.GET("", s.getProfile)
	grp.POST("/logo", s.uploadBusinessLogo)
}

func (s *Server) createProfile(c *gin.Context) {
	var req onboardingdomain.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.UserID = mustCurrentUser(c).ID

	profile, err := s.onboardingSvc.CreateProfile(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile": profile})
}

func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.onboardingSvc.GetProfile(c.Request.Context(), mustCurrentUser(c).ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (s *Server) uploadBusinessLogo(c *gin.Context) {
	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, builderdomain.MaxUploadSize+1))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	url, err := s.onboardingSvc.UploadLogo(c.Request.Context(), onboardingdomain.UploadLogoRequest{
		UserID:      mustCurrentUser(c).ID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
