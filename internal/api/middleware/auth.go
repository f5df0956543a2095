package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userEmailKey contextKey = "userEmail"

// HeaderUserEmail заголовок с email клиента от фронтенда/шлюза
const HeaderUserEmail = "X-User-Email"

// Auth кладет email запрашивающего из заголовка в контекст запроса.
// Пустой заголовок допустим: публичные ручки не требуют идентификации,
// защищенные проверяют email на уровне сервиса.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(HeaderUserEmail))
		if email != "" {
			r = r.WithContext(context.WithValue(r.Context(), userEmailKey, email))
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserEmail возвращает email запрашивающего из контекста, "" если не задан
func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(userEmailKey).(string); ok {
		return email
	}
	return ""
}
