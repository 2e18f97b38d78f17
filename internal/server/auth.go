package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/speedisha/speedisha/internal/auth/domain"
)

const sessionCookie = "speedisha_session"

const userContextKey = "current_user"

func (s *Server) registerAuthRoutes() {
	grp := s.engine.Group("/auth")
	grp.POST("/signin", s.signIn)
	grp.POST("/resend", s.resendSignIn)
	grp.GET("/verify", s.verifySignIn)
	grp.GET("/me", s.requireUser, s.currentUser)
	grp.POST("/logout", s.logout)
}

type signInRequest struct {
	Email string `json:"email"`
}

func (s *Server) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err := s.authSvc.SignIn(c.Request.Context(), authdomain.SignInRequest{Email: req.Email}); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (s *Server) resendSignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if err := s.authSvc.Resend(c.Request.Context(), authdomain.SignInRequest{Email: req.Email}); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (s *Server) verifySignIn(c *gin.Context) {
	result, err := s.authSvc.Verify(c.Request.Context(), authdomain.VerifyRequest{
		Email: c.Query("email"),
		Token: c.Query("token"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	maxAge := int(authdomain.SessionTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, result.SessionToken, maxAge, "/", "", s.cfg.AuthCookieSecure, true)

	// New accounts land on onboarding, returning users on the builder.
	target := "/invoice"
	if !result.User.HasOnboarded {
		target = "/onboarding"
	}
	c.Redirect(http.StatusFound, target)
}

func (s *Server) currentUser(c *gin.Context) {
	user := mustCurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) logout(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)
	if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", s.cfg.AuthCookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

// requireUser resolves the session cookie to a user and stores it on the
// context. Unauthenticated requests are rejected before the handler runs.
func (s *Server) requireUser(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	user, err := s.authSvc.CurrentUser(c.Request.Context(), token)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Set(userContextKey, user)
	c.Next()
}

func mustCurrentUser(c *gin.Context) authdomain.User {
	value, _ := c.Get(userContextKey)
	user, _ := value.(authdomain.User)
	return user
}
