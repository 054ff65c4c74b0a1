// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"portfolio-backend/internal/common/config"
	"portfolio-backend/internal/common/database"
	"portfolio-backend/internal/common/logger"
	"portfolio-backend/internal/common/observability"
	"portfolio-backend/internal/inquiries"
	"portfolio-backend/internal/recommend"
	"portfolio-backend/internal/server"
	"portfolio-backend/internal/session"
	"portfolio-backend/internal/tracking"
)

// The suite runs against real PostgreSQL and Redis. Set E2E_POSTGRES_HOST
// (and optionally E2E_REDIS_ADDRESS) to enable it, for example:
//
//	E2E_POSTGRES_HOST=localhost E2E_REDIS_ADDRESS=localhost:6379 go test ./test/e2e/...
var zapLog *zap.Logger

const (
	testEmail    = "e2e@example.com"
	testPassword = "e2e-password"
)

func TestMain(m *testing.M) {
	zapLog, _ = zap.NewProduction()
	code := m.Run()
	_ = zapLog.Sync()
	os.Exit(code)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadE2EConfig(t testing.TB) *config.Config {
	t.Helper()
	host := os.Getenv("E2E_POSTGRES_HOST")
	if host == "" {
		t.Skip("E2E_POSTGRES_HOST not set, skipping end-to-end suite")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &config.Config{
		App:    config.AppConfig{Name: "portfolio-backend-e2e"},
		Server: config.ServerConfig{RequestTimeout: 15000, DashboardLimit: 100},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}, AllowCredentials: true},
		Database: config.DatabaseConfig{
			Driver: config.DriverPostgres,
			Postgres: config.PostgresConfig{
				Host:           host,
				Port:           5432,
				Database:       getenv("E2E_POSTGRES_DB", "portfolio"),
				User:           getenv("E2E_POSTGRES_USER", "postgres"),
				Password:       getenv("E2E_POSTGRES_PASSWORD", "postgres"),
				MaxConnections: 5,
				MaxIdle:        2,
				SSLMode:        "disable",
			},
			Redis: config.RedisConfig{Address: os.Getenv("E2E_REDIS_ADDRESS")},
		},
		Rules: config.RulesConfig{Path: getenv("E2E_RULES_PATH", "../../configs/rules.json")},
		Auth: config.AuthConfig{
			Users:  []config.UserCredential{{Email: testEmail, PasswordHash: string(hash)}},
			Cookie: config.CookieConfig{Name: "session_token", MaxAge: 3600},
		},
	}
}

// newStack builds the full router against the configured backends.
func newStack(t testing.TB, cfg *config.Config) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	log := logger.NewZapAdapter(zapLog)

	rules, err := recommend.LoadRules(cfg.Rules.Path)
	require.NoError(t, err, "rule table must load")

	db, err := database.NewSQL(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping(ctx), "PostgreSQL must be reachable")

	trackStore := tracking.NewStore(db)
	require.NoError(t, trackStore.Migrate(ctx))
	inquiryStore := inquiries.NewStore(db)
	require.NoError(t, inquiryStore.Migrate(ctx))

	checks := map[string]server.Pinger{"database": db}
	var sessions session.Store = session.NewMemoryStore()
	if cfg.Database.Redis.Enabled() {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		require.NoError(t, err)
		t.Cleanup(func() { rdb.Close() })
		require.NoError(t, rdb.Ping(ctx), "Redis must be reachable")
		sessions = session.NewRedisStore(rdb.Client)
		checks["redis"] = rdb
	}

	obs := observability.New(observability.Config{ServiceName: cfg.App.Name}, log)
	t.Cleanup(func() { obs.Shutdown(context.Background()) })

	deps := server.Dependencies{
		Recommend: recommend.NewHandler(recommend.NewEngine(rules), obs, log),
		Session:   session.NewHandler(cfg.Auth.Cookie, session.NewAuthenticator(cfg.Auth.Users), sessions, log),
		Tracking: tracking.NewHandler(&tracking.Config{
			CookieName:     cfg.Auth.Cookie.Name,
			DashboardLimit: cfg.Server.DashboardLimit,
		}, trackStore, log),
		Inquiries: inquiries.NewHandler(&inquiries.Config{}, inquiryStore, inquiries.NoopNotifier{}, obs, log),
		Checks:    checks,
	}

	ts := httptest.NewServer(server.NewRouter(cfg, deps, log))
	t.Cleanup(ts.Close)
	return ts
}

func TestFullE2E(t *testing.T) {
	cfg := loadE2EConfig(t)
	ts := newStack(t, cfg)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}

	t.Run("Readiness", func(t *testing.T) {
		status, body := get(t, client, ts.URL+"/ready")
		assert.Equal(t, http.StatusOK, status, body)
	})

	t.Run("Recommend", func(t *testing.T) {
		testRecommend(t, client, ts.URL)
	})

	t.Run("SessionLifecycle", func(t *testing.T) {
		testSessionLifecycle(t, client, ts.URL)
	})

	t.Run("TrackingAndDashboard", func(t *testing.T) {
		testTrackingAndDashboard(t, client, ts.URL)
	})

	t.Run("Inquiries", func(t *testing.T) {
		testInquiries(t, client, ts.URL)
	})
}

func testRecommend(t *testing.T, client *http.Client, baseURL string) {
	tests := []struct {
		message string
		expect  string
	}{
		{"", "Please describe your business needs"},
		{"how much does a website cost?", "schedule a call with the boss"},
		{"I need a logo and brand identity", "The Blueprint Custom"},
		{"zzzz qqqq", "No exact plan matches your needs"},
	}

	for _, tt := range tests {
		payload, _ := json.Marshal(recommend.Request{Message: tt.message})
		status, body := post(t, client, baseURL+"/recommend", string(payload))
		require.Equal(t, http.StatusOK, status, body)

		var resp recommend.Response
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		assert.Contains(t, resp.Response, tt.expect, "message %q", tt.message)
	}
}

func testSessionLifecycle(t *testing.T, client *http.Client, baseURL string) {
	status, _ := post(t, client, baseURL+"/login", `{"email":"e2e@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := post(t, client, baseURL+"/login", fmt.Sprintf(`{"email":%q,"password":%q}`, testEmail, testPassword))
	require.Equal(t, http.StatusOK, status, body)

	_, body = get(t, client, baseURL+"/check-session")
	var check session.CheckResponse
	require.NoError(t, json.Unmarshal([]byte(body), &check))
	assert.True(t, check.LoggedIn)
	assert.True(t, strings.HasPrefix(check.Token, "user-session-"))
}

func testTrackingAndDashboard(t *testing.T, client *http.Client, baseURL string) {
	path := fmt.Sprintf("/e2e/%d", time.Now().UnixNano())
	status, body := post(t, client, baseURL+"/track", fmt.Sprintf(`{"path":%q,"timestamp":%q}`, path, time.Now().UTC().Format(time.RFC3339)))
	require.Equal(t, http.StatusOK, status, body)

	status, body = get(t, client, baseURL+"/dashboard")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, path)
	assert.Contains(t, body, "user-session-")
}

func testInquiries(t *testing.T, client *http.Client, baseURL string) {
	status, body := post(t, client, baseURL+"/project-initiations",
		`{"name":"E2E Co","email":"owner@e2e.example","business_type":"Retail","website":"e2e.example","requirements":"A new storefront"}`)
	require.Equal(t, http.StatusCreated, status, body)

	var created inquiries.CreatedResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.NotEmpty(t, created.ID)

	status, body = post(t, client, baseURL+"/meetings",
		`{"email":"owner@e2e.example","date":"2026-13-40","time":"10:00","goals":"Kickoff"}`)
	assert.Equal(t, http.StatusBadRequest, status, body)
}

func get(t testing.TB, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func post(t testing.TB, client *http.Client, url, body string) (int, string) {
	t.Helper()
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func BenchmarkRecommend(b *testing.B) {
	rules, err := recommend.LoadRules("../../configs/rules.json")
	require.NoError(b, err)
	engine := recommend.NewEngine(rules)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.Recommend("We need a website, seo, social media ads and an online store to scale")
	}
}

func BenchmarkRecommendHTTP(b *testing.B) {
	cfg := loadE2EConfig(b)
	ts := newStack(b, cfg)
	client := ts.Client()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		resp, err := client.Post(ts.URL+"/recommend", "application/json", strings.NewReader(`{"message":"logo and website"}`))
		if err != nil {
			b.Fatal(err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
