package auth

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
)

// SessionCookie is read by AuthMiddleware when no Authorization header is sent.
const SessionCookie = "jwt"

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		Domain:   config.GetEnv("COOKIE_DOMAIN", ""),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, sessionCookie(token, int(ttl.Seconds())))
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie("", -1))
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Logout only drops the cookie; issued tokens stay valid until they expire.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ClearSessionCookie(w)
	config.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
