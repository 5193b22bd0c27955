package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	tokens map[string]int64
	seen   []string
}

func (s *stubVerifier) VerifyAccess(ctx context.Context, token string) (int64, error) {
	s.seen = append(s.seen, token)
	if id, ok := s.tokens[token]; ok {
		return id, nil
	}
	return 0, errors.New("access denied")
}

func newAuthEngine(v AccessVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", TokenAuth(v), func(c *gin.Context) {
		id, _ := c.Get(ContextUserIDKey)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return engine
}

func TestTokenAuth_Accepts(t *testing.T) {
	v := &stubVerifier{tokens: map[string]int64{"good": 5}}
	engine := newAuthEngine(v)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Auth-Token", "good")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"user_id":5}`, resp.Body.String())
	require.Equal(t, []string{"good"}, v.seen)
}

func TestTokenAuth_Rejects(t *testing.T) {
	v := &stubVerifier{tokens: map[string]int64{"good": 5}}
	engine := newAuthEngine(v)

	for _, tok := range []string{"", "bad"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if tok != "" {
			req.Header.Set(TokenHeader, tok)
		}
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
		require.JSONEq(t, `{"message":"Access denied!"}`, resp.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		id, _ := c.Get(ContextRequestIDKey)
		c.String(http.StatusOK, id.(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	require.Equal(t, "abc", resp.Body.String())
	require.Equal(t, "abc", resp.Header().Get("X-Request-Id"))

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, resp.Header().Get("X-Request-Id"), 32)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodOptions, "/user/sign-in", nil)
	CORS(nil)(c)
	require.True(t, c.IsAborted())
	require.Equal(t, "*", c.Writer.Header().Get("Access-Control-Allow-Origin"))

	rec := httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Origin", "https://evil.example")
	CORS([]string{"https://app.example"})(c)
	require.False(t, c.IsAborted())
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Origin", "https://app.example")
	CORS([]string{" https://app.example "})(c)
	require.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Auth-Token")
}
