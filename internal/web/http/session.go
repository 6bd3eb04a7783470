package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName identifica a sessão do navegador
const CookieName = "sid"

const onConnectTimeout = 5 * time.Second

type sessionKey struct{}

// SessionID devolve a sessão anexada ao contexto pelo middleware
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey{}).(string)
	return sid
}

// session garante um cookie sid válido (UUID) em toda requisição
func (s *Server) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				sid = id.String()
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sid)))
	})
}

// detached é usado fora do ciclo de uma requisição (callbacks do hub)
func detached() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), onConnectTimeout)
}
