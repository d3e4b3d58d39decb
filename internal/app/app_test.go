package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"charitybridge/internal/config"
	"charitybridge/internal/dispatch"
	"charitybridge/internal/email"
	"charitybridge/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(context.Context, string, []byte) error { return nil }

func testConfig() *config.Config {
	cfg := config.FromEnv()
	cfg.JWT.Secret = "test-secret"
	cfg.FirstAdmin.Email = ""
	cfg.Email.Enabled = false
	cfg.NATS.URL = ""
	return cfg
}

func TestBuildChannels(t *testing.T) {
	mailer := email.NewLogProvider(nil)
	repos := services.NewRepositories()

	channels, err := buildChannels([]string{"database", "mail", "broadcast", "mail"}, repos, mailer, nopBroadcaster{})
	require.NoError(t, err)

	var names []string
	for _, ch := range channels {
		names = append(names, ch.Name())
	}
	assert.Equal(t, []string{dispatch.ChannelDatabase, dispatch.ChannelMail, dispatch.ChannelBroadcast}, names)

	_, err = buildChannels([]string{"sms"}, repos, mailer, nopBroadcaster{})
	assert.Error(t, err)

	_, err = buildChannels(nil, repos, mailer, nopBroadcaster{})
	assert.Error(t, err)
}

func TestNewEmailProvider(t *testing.T) {
	cfg := testConfig()

	p, err := newEmailProvider(cfg)
	require.NoError(t, err)
	assert.IsType(t, &email.LogProvider{}, p)

	cfg.Email.Enabled = true
	cfg.Email.SMTPHost = ""
	_, err = newEmailProvider(cfg)
	assert.Error(t, err)
}

func TestNew_ProtectsAPIRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	a, err := New(context.Background(), testConfig(), db)
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/donations", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
