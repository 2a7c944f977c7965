package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptpad/pkg/api"
	"promptpad/pkg/api/handler"
	"promptpad/pkg/domain"
	"promptpad/pkg/repository"
	"promptpad/pkg/store"
	"promptpad/pkg/toolschema"
)

type stubGenerator struct {
	msg domain.Message
	err error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (domain.Message, error) {
	return s.msg, s.err
}

func newTestServer(t *testing.T, generator handler.Generator) (*httptest.Server, *store.Store) {
	t.Helper()

	s := store.New(repository.NewMemoryStateRepository())
	if generator == nil {
		generator = &stubGenerator{}
	}
	router := api.NewRouter(
		handler.NewState(s),
		handler.NewSessions(s),
		handler.NewMessages(s),
		handler.NewTools(s),
		handler.NewKeys(s),
		handler.NewUI(s),
		handler.NewImport(s),
		handler.NewGenerate(generator),
	)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, s
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func TestSessionLifecycle(t *testing.T) {
	ts, s := newTestServer(t, nil)

	res := do(t, http.MethodPost, ts.URL+"/api/sessions", "")
	require.Equal(t, http.StatusCreated, res.StatusCode)
	created := decode[domain.Session](t, res)
	assert.NotEmpty(t, created.ID)

	res = do(t, http.MethodPatch, ts.URL+"/api/sessions/"+created.ID, `{"name":"Renamed"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, http.MethodPatch, ts.URL+"/api/sessions/"+created.ID+"/config", `{"model":"gpt-4o-mini"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	got, ok := s.Session(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "gpt-4o-mini", got.Config.Model)

	res = do(t, http.MethodPost, ts.URL+"/api/sessions/missing/select", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = do(t, http.MethodDelete, ts.URL+"/api/sessions/"+created.ID, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, s.State().Sessions)
}

func TestExportImportRoundTrip(t *testing.T) {
	ts, s := newTestServer(t, nil)
	session := s.CreateSession()
	require.NoError(t, s.UpdateSessionName(session.ID, "Original"))

	res := do(t, http.MethodGet, ts.URL+"/api/sessions/"+session.ID+"/export", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var exported json.RawMessage
	require.NoError(t, json.NewDecoder(res.Body).Decode(&exported))

	res = do(t, http.MethodPost, ts.URL+"/api/import", string(exported))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	imported := decode[domain.Session](t, res)

	assert.NotEqual(t, session.ID, imported.ID)
	assert.Equal(t, "Original", imported.Name)
	assert.Equal(t, imported.ID, s.State().CurrentSessionID)
}

func TestImportRejectsUnknownDocument(t *testing.T) {
	ts, s := newTestServer(t, nil)

	res := do(t, http.MethodPost, ts.URL+"/api/import", `{"foo": 1}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	body := decode[map[string]string](t, res)
	assert.Contains(t, body["error"], "unknown JSON format")
	assert.Empty(t, s.State().Sessions, "a rejected import creates nothing")
}

func TestMessagesEndpoints(t *testing.T) {
	ts, s := newTestServer(t, nil)
	session := s.CreateSession()
	base := ts.URL + "/api/sessions/" + session.ID + "/messages"

	res := do(t, http.MethodPost, base, `{"content":"hi"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	msg := decode[domain.Message](t, res)
	assert.Equal(t, domain.RoleUser, msg.Role, "role defaults to user")

	res = do(t, http.MethodPatch, base+"/"+msg.ID, `{"content":"edited"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	got, _ := s.Session(session.ID)
	assert.Equal(t, "edited", got.Messages[1].Content)

	res = do(t, http.MethodDelete, base+"/missing", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestToolResultEndpoint(t *testing.T) {
	ts, s := newTestServer(t, nil)
	session := s.CreateSession()
	msg, err := s.AddMessage(session.ID, domain.Message{
		Role:      domain.RoleModel,
		ToolCalls: []domain.ToolCall{{ID: "call_1", Name: "get_weather", Args: map[string]any{}}},
	})
	require.NoError(t, err)

	url := ts.URL + "/api/sessions/" + session.ID + "/messages/" + msg.ID + "/tool-calls/call_1/result"
	res := do(t, http.MethodPut, url, `{"result":"15C"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	got, _ := s.Session(session.ID)
	assert.Equal(t, "15C", got.Messages[1].ToolCalls[0].Result)
}

func TestToolsEndpoints(t *testing.T) {
	ts, s := newTestServer(t, nil)
	session := s.CreateSession()
	base := ts.URL + "/api/sessions/" + session.ID + "/tools"

	visual := `[{"name":"get_weather","description":"Weather lookup","parameters":[{"name":"location","type":"string","description":"City"}]}]`
	res := do(t, http.MethodPut, base, visual)
	require.Equal(t, http.StatusOK, res.StatusCode)

	got, _ := s.Session(session.ID)
	assert.Contains(t, got.Config.ToolsDefinition, `"get_weather"`)

	res = do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	tools := decode[[]toolschema.Tool](t, res)
	require.Len(t, tools, 1)
	assert.Equal(t, "get_weather", tools[0].Name)
	require.Len(t, tools[0].Parameters, 1)
	assert.Equal(t, "location", tools[0].Parameters[0].Name)
}

func TestToolsEndpointUnparsableDefinition(t *testing.T) {
	ts, s := newTestServer(t, nil)
	session := s.CreateSession()
	text := "{not json"
	require.NoError(t, s.UpdateSessionConfig(session.ID, domain.ConfigPatch{ToolsDefinition: &text}))

	res := do(t, http.MethodGet, ts.URL+"/api/sessions/"+session.ID+"/tools", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	tools := decode[[]toolschema.Tool](t, res)
	assert.Empty(t, tools)

	got, _ := s.Session(session.ID)
	assert.Equal(t, "{not json", got.Config.ToolsDefinition, "the raw text stays untouched")
}

func TestToolsSampleEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	res := do(t, http.MethodGet, ts.URL+"/api/tools/sample", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	tools := decode[[]json.RawMessage](t, res)
	require.Len(t, tools, 1)
	parsed := toolschema.Parse(domain.SampleToolsDefinition)
	require.Len(t, parsed, 1)
	assert.Equal(t, "get_weather", parsed[0].Name)
}

func TestKeysEndpoints(t *testing.T) {
	ts, s := newTestServer(t, nil)

	res := do(t, http.MethodPost, ts.URL+"/api/keys", `{"name":"work"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = do(t, http.MethodPost, ts.URL+"/api/keys", `{"name":"work","key":"sk-1","baseUrl":"http://localhost:11434/v1"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	key := decode[domain.APIKeyConfig](t, res)
	assert.Equal(t, "sk-1", key.Key)
	assert.Equal(t, key.ID, s.State().SelectedAPIKeyID)

	res = do(t, http.MethodPost, ts.URL+"/api/keys/missing/select", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = do(t, http.MethodDelete, ts.URL+"/api/keys/"+key.ID, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, s.State().APIKeys)
}

func TestUIEndpoints(t *testing.T) {
	ts, s := newTestServer(t, nil)

	res := do(t, http.MethodPost, ts.URL+"/api/ui/sidebar/toggle", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.False(t, s.State().SidebarOpen)

	res = do(t, http.MethodPut, ts.URL+"/api/ui/theme", `{"theme":"light"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "light", s.State().Theme)

	res = do(t, http.MethodPut, ts.URL+"/api/ui/theme", `{"theme":"blue"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGenerateEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ts, _ := newTestServer(t, &stubGenerator{msg: domain.Message{ID: "m1", Role: domain.RoleModel, Content: "hello"}})
		res := do(t, http.MethodPost, ts.URL+"/api/sessions/s1/generate", "")
		require.Equal(t, http.StatusCreated, res.StatusCode)
		msg := decode[domain.Message](t, res)
		assert.Equal(t, "hello", msg.Content)
	})

	t.Run("unknown session", func(t *testing.T) {
		ts, _ := newTestServer(t, &stubGenerator{err: domain.ErrNotFound})
		res := do(t, http.MethodPost, ts.URL+"/api/sessions/s1/generate", "")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("no key", func(t *testing.T) {
		ts, _ := newTestServer(t, &stubGenerator{err: domain.ErrNoAPIKey})
		res := do(t, http.MethodPost, ts.URL+"/api/sessions/s1/generate", "")
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("upstream failure", func(t *testing.T) {
		ts, _ := newTestServer(t, &stubGenerator{err: errors.New("502 Bad Gateway")})
		res := do(t, http.MethodPost, ts.URL+"/api/sessions/s1/generate", "")
		assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	})
}

func TestStateEndpoint(t *testing.T) {
	ts, s := newTestServer(t, nil)
	session := s.CreateSession()

	res := do(t, http.MethodGet, ts.URL+"/api/state", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-Id"))

	state := decode[domain.AppState](t, res)
	require.Len(t, state.Sessions, 1)
	assert.Equal(t, session.ID, state.CurrentSessionID)
}
