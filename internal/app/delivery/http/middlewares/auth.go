package middlewares

import (
	"net/http"
	"strings"

	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/exceptions"
	"medirec-service/internal/pkg/utils"
)

func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix)
		if _, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret); err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}
