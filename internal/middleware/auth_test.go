package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/errors"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[string]error

func (f fakeResolver) GetUserForToken(ctx context.Context, token string) (*model.User, error) {
	if err, ok := f[token]; ok {
		return nil, err
	}
	return &model.User{ID: "u-" + token, Email: token + "@example.com"}, nil
}

var resolver = fakeResolver{
	"forged":  apperrors.WrapError(apperrors.ErrInvalidToken, errors.New("signature is invalid")),
	"revoked": apperrors.ErrSessionExpiredOrNotFound,
	"ghost":   apperrors.ErrUserNotFound,
	"db-down": apperrors.WrapError(apperrors.ErrStorageFailure, errors.New("connection refused")),
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter() *gin.Engine {
	m := NewAuthMiddleware(resolver)
	r := gin.New()
	r.GET("/private", m.RequireAuth(), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"id":     user.ID,
			"gin_id": id,
			"ctx_id": ctxutil.GetUserID(c.Request.Context()),
		})
	})
	r.GET("/public", m.OptionalAuth(), func(c *gin.Context) {
		_, ok := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	return r
}

func do(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_Success(t *testing.T) {
	w := do(newAuthRouter(), "/private", "Bearer alice")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u-alice","gin_id":"u-alice","ctx_id":"u-alice"}`, w.Body.String())
}

func TestRequireAuth_UniformUnauthorized(t *testing.T) {
	r := newAuthRouter()

	for name, header := range map[string]string{
		"missing":       "",
		"wrong scheme":  "Basic alice",
		"no token":      "Bearer ",
		"forged":        "Bearer forged",
		"revoked":       "Bearer revoked",
		"deleted user":  "Bearer ghost",
		"extra garbage": "Token",
	} {
		t.Run(name, func(t *testing.T) {
			w := do(r, "/private", header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestRequireAuth_StorageFailureIsNotUnauthorized(t *testing.T) {
	w := do(newAuthRouter(), "/private", "Bearer db-down")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter()

	for header, want := range map[string]string{
		"":               `{"authenticated":false}`,
		"Bearer revoked": `{"authenticated":false}`,
		"Bearer db-down": `{"authenticated":false}`,
		"Bearer alice":   `{"authenticated":true}`,
	} {
		w := do(r, "/public", header)
		assert.Equal(t, http.StatusOK, w.Code, header)
		assert.JSONEq(t, want, w.Body.String(), header)
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	tok, ok = BearerToken("bearer   abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = BearerToken("Bearer")
	assert.False(t, ok)
	_, ok = BearerToken("")
	assert.False(t, ok)
}
