package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc, zap.NewNop()))
	return r
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleChat_Stream(t *testing.T) {
	f := &fakeAI{chunks: []string{"Hel", "lo"}}
	rec := post(t, newTestRouter(newTestService(f, nil)), `{"message":"Hello, how are you today?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "Hello", rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestHandleChat_MissingCredential(t *testing.T) {
	rec := post(t, newTestRouter(nil), `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Missing OPENAI_API_KEY environment variable"}`, rec.Body.String())
}

func TestHandleChat_UpstreamUnavailable(t *testing.T) {
	f := &fakeAI{streamOpenErr: errUpstream}
	rec := post(t, newTestRouter(newTestService(f, nil)), `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to generate response", strings.TrimSpace(rec.Body.String()))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
}

func TestHandleChat_EmptyBodyStillOK(t *testing.T) {
	f := &fakeAI{chunks: []string{"Welcome."}}
	rec := post(t, newTestRouter(newTestService(f, nil)), `{}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome.", rec.Body.String())
}

func TestHandleChat_MalformedBodyTreatedAsEmpty(t *testing.T) {
	f := &fakeAI{chunks: []string{"Welcome."}}
	rec := post(t, newTestRouter(newTestService(f, nil)), `{not json`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.histories[0], 2)
}

func TestHandleChat_EmptyStreamCommits200(t *testing.T) {
	f := &fakeAI{}
	rec := post(t, newTestRouter(newTestService(f, nil)), `{"message":"hi"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleChat_SyncFallbackBody(t *testing.T) {
	f := &fakeAI{
		streamOpenErr: errUpstream,
		replies:       []fakeReply{{text: "[VERIFIED] Hello, and thank you for the question. How are you?"}},
	}
	rec := post(t, newTestRouter(newTestService(f, nil)), `{"messages":[{"role":"user","content":"Hello, how are you today?"}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello, and thank you for the question. How are you?", rec.Body.String())
}

func TestHandleInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, usageInfo, body["info"])
}

// A disconnected client cancels the request context; the service sees it.
func TestHandleChat_PassesRequestContext(t *testing.T) {
	var seen context.Context
	svc := serviceFunc(func(ctx context.Context, _ Request, out io.Writer) error {
		seen = ctx
		_, err := io.WriteString(out, "x")
		return err
	})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rec, req)
	cancel()

	require.NotNil(t, seen)
	assert.Error(t, seen.Err())
}

type serviceFunc func(ctx context.Context, req Request, out io.Writer) error

func (f serviceFunc) Reply(ctx context.Context, req Request, out io.Writer) error {
	return f(ctx, req, out)
}
