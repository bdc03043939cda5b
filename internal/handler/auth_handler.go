package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mstanchev/vaxtrack/internal/middleware"
	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
	"github.com/mstanchev/vaxtrack/internal/service"
)

// AuthHandler serves the login/logout/register pages of the web
// surface. Sessions ride in an HTTP-only cookie holding the opaque
// server-side token.
type AuthHandler struct {
	auth       *service.AuthService
	sessions   *service.SessionService
	sessionTTL time.Duration
}

func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, sessionTTL: sessionTTL}
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type registerForm struct {
	Name         string `form:"name"`
	Username     string `form:"username"`
	Password     string `form:"password"`
	Confirmation string `form:"confirmation"`
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}

// revokeCurrentToken invalidates the session named by the client's
// cookie on the server side only; response headers are untouched.
func (h *AuthHandler) revokeCurrentToken(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil {
		_ = h.sessions.Destroy(c.Request.Context(), token)
	}
}

// dropCurrentSession invalidates whatever session the client currently
// holds and clears the cookie. Used on the login page and on logout.
func (h *AuthHandler) dropCurrentSession(c *gin.Context) {
	h.revokeCurrentToken(c)
	h.clearSessionCookie(c)
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.dropCurrentSession(c)
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)
	if form.Username == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{"msg": "Must submit email"})
		return
	}
	if form.Password == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{"msg": "Must submit password"})
		return
	}
	user, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"msg": "Incorrect email or password"})
		return
	}
	h.establishSession(c, user.ID)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.dropCurrentSession(c)
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	_ = c.ShouldBind(&form)
	user, err := h.auth.Register(c.Request.Context(), form.Username, form.Name, form.Password, form.Confirmation)
	if err != nil {
		if ve, ok := appErr.AsValidation(err); ok {
			c.HTML(http.StatusOK, "register.html", gin.H{"msg": ve.Message})
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	h.establishSession(c, user.ID)
}

func (h *AuthHandler) establishSession(c *gin.Context, userID string) {
	// Revoke any pre-login session server-side only. Emitting a
	// clearing Set-Cookie here as well would leave two conflicting
	// headers for the same name; the fresh cookie below already
	// replaces the client's copy.
	h.revokeCurrentToken(c)
	token, err := h.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}
