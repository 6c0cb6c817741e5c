package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medirec-service/internal/app/config"
	"medirec-service/internal/pkg/constvars"
	"medirec-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newAuthFixture(secret string) (http.Handler, *int) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		JWT: config.JWT{Secret: secret, ExpTimeInHour: 1},
	})

	reached := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached++
		w.WriteHeader(constvars.StatusNoContent)
	})
	return middlewares.Authenticate(next), &reached
}

func TestAuthenticate(t *testing.T) {
	const secret = "editor-signing-secret"

	t.Run("Valid Bearer Token Passes Through", func(t *testing.T) {
		handler, reached := newAuthFixture(secret)
		token, err := utils.GenerateJWT("editor", secret, 1)
		assert.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/patients/PAT123456001", nil)
		request.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, constvars.StatusNoContent, recorder.Code)
		assert.Equal(t, 1, *reached)
	})

	t.Run("Missing Header Is Rejected", func(t *testing.T) {
		handler, reached := newAuthFixture(secret)

		request := httptest.NewRequest(http.MethodGet, "/patients/PAT123456001", nil)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, constvars.StatusUnauthorized, recorder.Code)
		assert.Equal(t, 0, *reached)
	})

	t.Run("Token Signed With Another Secret Is Rejected", func(t *testing.T) {
		handler, reached := newAuthFixture(secret)
		token, err := utils.GenerateJWT("editor", "some-other-secret", 1)
		assert.NoError(t, err)

		request := httptest.NewRequest(http.MethodGet, "/patients/PAT123456001", nil)
		request.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, constvars.StatusUnauthorized, recorder.Code)
		assert.Equal(t, 0, *reached)
	})

	t.Run("Malformed Token Is Rejected", func(t *testing.T) {
		handler, reached := newAuthFixture(secret)

		request := httptest.NewRequest(http.MethodGet, "/patients/PAT123456001", nil)
		request.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+"not-a-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, constvars.StatusUnauthorized, recorder.Code)
		assert.Equal(t, 0, *reached)
	})
}
