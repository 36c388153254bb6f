package handler

import (
	"log"
	"net/http"
	"time"

	"ingresos_gastos/internal/middleware"
	"ingresos_gastos/internal/service"
	"ingresos_gastos/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the OAuth sign-in flow and session endpoints.
type AuthHandler struct {
	service    service.AuthService
	stateUtil  *utils.StateUtil
	sessionTTL time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(s service.AuthService, stateUtil *utils.StateUtil, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: s, stateUtil: stateUtil, sessionTTL: sessionTTL}
}

// Login redirects the browser to the provider's authorization page with a
// signed state parameter.
func (h *AuthHandler) Login(c *gin.Context) {
	state, err := h.stateUtil.Generate()
	if err != nil {
		log.Printf("Error generating OAuth state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al iniciar sesión"})
		return
	}
	c.Redirect(http.StatusFound, h.service.LoginURL(state))
}

// Callback completes the authorization-code flow and sets the session
// cookie.
func (h *AuthHandler) Callback(c *gin.Context) {
	if err := h.stateUtil.Validate(c.Query("state")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado inválido"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Código de autorización requerido"})
		return
	}

	session, err := h.service.HandleCallback(c.Request.Context(), code)
	if err != nil {
		log.Printf("Error completing OAuth callback: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al iniciar sesión"})
		return
	}

	c.SetCookie(middleware.SessionCookieName, session.Token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout deletes the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			log.Printf("Error deleting session on logout: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cerrar sesión"})
			return
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// Me returns the identity resolved for the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
		return
	}
	c.JSON(http.StatusOK, identity)
}

// RegisterAuthRoutes registers auth routes. Login and the callback are the
// only endpoints that do not require a session.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.GET("/login", h.Login)
		auth.GET("/callback", h.Callback)
		auth.POST("/logout", authMW, h.Logout)
		auth.GET("/me", authMW, h.Me)
	}
}
