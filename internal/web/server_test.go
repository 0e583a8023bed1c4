package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/docassist/pkg/assistant"
	"github.com/Protocol-Lattice/docassist/pkg/credentials"
	"github.com/Protocol-Lattice/docassist/pkg/gather"
	"github.com/Protocol-Lattice/docassist/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeText struct {
	checkErr error
	genErr   error
	prompts  []string
}

func (f *fakeText) Check(context.Context, string) error { return f.checkErr }

func (f *fakeText) Generate(_ context.Context, p string) (*models.GenerationResult, error) {
	if f.genErr != nil {
		return nil, f.genErr
	}
	f.prompts = append(f.prompts, p)
	return &models.GenerationResult{Document: "# Doc"}, nil
}

type fakeImage struct {
	res *models.ImageResult
	err error
}

func (f fakeImage) Check(context.Context, string) error { return nil }

func (f fakeImage) GenerateImage(context.Context, string) (*models.ImageResult, error) {
	return f.res, f.err
}

func newTestServer(text models.TextGenerator, image models.ImageGenerator) (*Server, credentials.Store) {
	store := credentials.NewMemoryStore()
	a := assistant.New(gather.NewAggregator(nil, nil), text, image)
	return NewServer(a, store, nil, 2), store
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestRequestIDHeader(t *testing.T) {
	s, _ := newTestServer(&fakeText{}, nil)
	rec, _ := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCredentialRoutes(t *testing.T) {
	s, store := newTestServer(&fakeText{}, nil)

	rec, body := do(t, s, http.MethodGet, "/api/credentials", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"text": "", "image": ""}, body)

	rec, body = do(t, s, http.MethodPut, "/api/credentials/text", `{"value":"sk-1234567890abcd"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sk-1...abcd", body["text"])

	got, err := store.Get(context.Background(), credentials.TextProvider)
	require.NoError(t, err)
	assert.Equal(t, "sk-1234567890abcd", got)

	_, body = do(t, s, http.MethodGet, "/api/credentials", "")
	assert.Equal(t, "sk-1...abcd", body["text"])

	rec, _ = do(t, s, http.MethodDelete, "/api/credentials/text", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	got, _ = store.Get(context.Background(), credentials.TextProvider)
	assert.Empty(t, got)
}

func TestCredentialRoutesRejectBadInput(t *testing.T) {
	s, _ := newTestServer(&fakeText{}, nil)

	rec, _ := do(t, s, http.MethodPut, "/api/credentials/other", `{"value":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, s, http.MethodDelete, "/api/credentials/other", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, s, http.MethodPut, "/api/credentials/image", `{"value":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRoute(t *testing.T) {
	text := &fakeText{}
	s, _ := newTestServer(text, nil)

	rec, body := do(t, s, http.MethodPost, "/api/generate",
		`{"instruction":"summarise","files":[{"name":"notes.md","content":"hello"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "# Doc", body["document"])
	assert.Equal(t, []any{}, body["errors"])

	require.Len(t, text.prompts, 1)
	assert.Contains(t, text.prompts[0], "--- Content from notes.md ---\nhello")
	assert.True(t, strings.HasSuffix(text.prompts[0], "\n\n---\n\nsummarise"))
}

func TestGenerateRouteErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		text *fakeText
		want int
	}{
		{"missing credential", &fakeText{checkErr: models.ErrMissingCredential}, http.StatusPreconditionFailed},
		{"empty prompt", &fakeText{checkErr: models.ErrEmptyPrompt}, http.StatusBadRequest},
		{"provider", &fakeText{genErr: &models.ProviderError{Provider: "deepseek", StatusCode: 401, Message: "Authentication Fails"}}, http.StatusBadGateway},
		{"malformed", &fakeText{genErr: models.ErrMalformedResponse}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(tc.text, nil)
			rec, body := do(t, s, http.MethodPost, "/api/generate", `{"instruction":"x"}`)
			assert.Equal(t, tc.want, rec.Code)
			assert.NotEmpty(t, body["error"])
		})
	}

	s, _ := newTestServer(&fakeText{}, nil)
	rec, _ := do(t, s, http.MethodPost, "/api/generate", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContextRoute(t *testing.T) {
	s, _ := newTestServer(&fakeText{}, nil)

	rec, body := do(t, s, http.MethodPost, "/api/context", `{"files":[{"name":"a.txt","content":"alpha"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "\n\n--- Content from a.txt ---\nalpha", body["context"])
	assert.Equal(t, []any{}, body["errors"])

	_, body = do(t, s, http.MethodPost, "/api/context", `{}`)
	assert.Equal(t, []any{"No context retrieved."}, body["errors"])
	assert.Equal(t, []any{}, body["entries"])
}

func TestImageRoute(t *testing.T) {
	s, _ := newTestServer(nil, fakeImage{res: &models.ImageResult{ImageDataURI: "data:image/png;base64,QQ==", Text: "a fox"}})
	rec, body := do(t, s, http.MethodPost, "/api/image", `{"prompt":"fox"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data:image/png;base64,QQ==", body["image"])
	assert.Equal(t, "a fox", body["text"])
}

func TestImageRouteNoImage(t *testing.T) {
	s, _ := newTestServer(nil, fakeImage{err: &models.NoImageProducedError{Text: "I refuse."}})
	rec, body := do(t, s, http.MethodPost, "/api/image", `{"prompt":"fox"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "I refuse.", body["text"])
	assert.Equal(t, models.ErrNoImageProduced.Error(), body["error"])
}
