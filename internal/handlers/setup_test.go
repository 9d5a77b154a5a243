package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/travel-plans/backend/internal/repositories"
	"github.com/anonto42/travel-plans/backend/internal/router"
	"github.com/anonto42/travel-plans/backend/internal/session"
	"github.com/anonto42/travel-plans/backend/internal/storage"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type memObject struct {
	data        []byte
	contentType string
}

// memStore is an in-memory storage.Store that can also serve its objects
type memStore struct {
	mu      sync.Mutex
	objects map[string]memObject
	fail    bool
}

func newMemStore() *memStore {
	return &memStore{objects: map[string]memObject{}}
}

func (s *memStore) Upload(_ context.Context, key string, r io.Reader, contentType string) error {
	if s.fail {
		return errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memObject{data: data, contentType: contentType}
	return nil
}

func (s *memStore) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (s *memStore) Open(_ context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, nil
}

func (s *memStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

type testEnv struct {
	e     *echo.Echo
	db    *gorm.DB
	jwt   *session.JWTProvider
	store *memStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := repositories.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	env := &testEnv{
		e:     echo.New(),
		db:    db,
		jwt:   session.NewJWTProvider(testSecret),
		store: newMemStore(),
	}
	router.SetupRoutes(env.e, db, env.jwt, env.store)
	return env
}

func (env *testEnv) token(t *testing.T, userID, name string) string {
	t.Helper()
	tok, err := env.jwt.IssueToken(userID, name, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func (env *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch p := payload.(type) {
	case nil:
	case string:
		body = strings.NewReader(p)
	default:
		b, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}
	return env.do(t, method, path, token, body, echo.MIMEApplicationJSON)
}

// createPlan posts a one-day plan and returns its ID
func (env *testEnv) createPlan(t *testing.T, token, destination string, days int) string {
	t.Helper()
	rec := env.doJSON(t, http.MethodPost, "/api/plans", token, map[string]interface{}{
		"destination": destination,
		"days":        days,
		"dayList": []map[string]interface{}{
			{"dayNumber": 1, "spots": []map[string]interface{}{{"name": "station"}}},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create plan: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	decode(t, rec, &resp)
	return resp.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	if body.Error != message {
		t.Fatalf("expected error %q, got %q", message, body.Error)
	}
}

// summary mirrors the listing projection as the web client reads it
type summary struct {
	ID           string  `json:"id"`
	Destination  string  `json:"destination"`
	Days         int     `json:"days"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	CreatedAt    string  `json:"createdAt"`
	Author       struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"author"`
	Count struct {
		Likes int64 `json:"likes"`
	} `json:"_count"`
}

type detail struct {
	summary
	DayList []struct {
		ID        string `json:"id"`
		DayNumber int    `json:"dayNumber"`
		Spots     []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			Memo       string `json:"memo"`
			OrderIndex int    `json:"orderIndex"`
		} `json:"spots"`
	} `json:"dayList"`
	IsLiked      bool `json:"isLiked"`
	IsBookmarked bool `json:"isBookmarked"`
}

func destinations(list []summary) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Destination)
	}
	return out
}
