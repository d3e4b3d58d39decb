//go:build integration

package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"charitybridge/internal/app"
	"charitybridge/internal/auth"
	"charitybridge/internal/config"
	"charitybridge/internal/dispatch"
	"charitybridge/internal/models"
	"charitybridge/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "integration-secret"

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	DB     *gorm.DB
}

// NewTestServer собирает приложение поверх тестовой БД. Фоновый воркер не
// запускается: тесты вызывают DrainOutbox явно.
func NewTestServer(ctx context.Context, db *gorm.DB) (*TestServer, error) {
	gin.SetMode(gin.TestMode)

	cfg := config.FromEnv()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Email.Enabled = false
	cfg.NATS.URL = ""
	cfg.FirstAdmin.Email = ""
	cfg.RateLimit.RPS = 1000
	cfg.RateLimit.Burst = 1000
	cfg.Notifier.Channels = []string{dispatch.ChannelDatabase, dispatch.ChannelMail, dispatch.ChannelBroadcast}

	a, err := app.New(ctx, cfg, db)
	if err != nil {
		return nil, err
	}

	return &TestServer{
		Server: httptest.NewServer(a.Router),
		App:    a,
		DB:     db,
	}, nil
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.App.Close()
}

// ClearTables очищает все таблицы между тестами.
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	err := ts.DB.Exec("TRUNCATE TABLE outbox_events, notifications, messages, claims, donations, charity_profiles, users CASCADE").Error
	require.NoError(t, err, "failed to truncate tables")
}

// Actor is a signed-in test user.
type Actor struct {
	ID    string
	Role  models.UserRole
	Token string
}

// NewActor mints a token for a fresh identity. The user row appears on the
// first authenticated request.
func NewActor(t *testing.T, role models.UserRole, name string) Actor {
	t.Helper()
	id := uuid.NewString()
	token, err := auth.GenerateToken(id, string(role), name+"@example.org", name)
	require.NoError(t, err)
	return Actor{ID: id, Role: role, Token: token}
}

// SendRequest отправляет JSON-запрос и возвращает ответ с телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body any) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(raw)
}

// DoJSON sends the request, asserts the status and decodes the body into out.
func (ts *TestServer) DoJSON(t *testing.T, method, path string, actor Actor, body any, wantStatus int, out any) {
	t.Helper()
	res, raw := ts.SendRequest(t, method, path, actor.Token, body)
	require.Equal(t, wantStatus, res.StatusCode, "%s %s: %s", method, path, raw)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(raw), out), raw)
	}
}

// ExpectError asserts the status and returns the error code of the body.
func (ts *TestServer) ExpectError(t *testing.T, method, path string, actor Actor, body any, wantStatus int) apperrors.ErrorCode {
	t.Helper()
	res, raw := ts.SendRequest(t, method, path, actor.Token, body)
	require.Equal(t, wantStatus, res.StatusCode, "%s %s: %s", method, path, raw)

	var resp struct {
		Error struct {
			Code apperrors.ErrorCode `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &resp), raw)
	return resp.Error.Code
}

// DrainOutbox delivers every due event synchronously.
func (ts *TestServer) DrainOutbox(t *testing.T) dispatch.Result {
	t.Helper()
	res, err := ts.App.Worker.Drain(context.Background())
	require.NoError(t, err)
	return res
}
