package handlers

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/teamspace/backend/internal/middleware"
	"github.com/teamspace/backend/internal/models"
	"github.com/teamspace/backend/internal/notify"
	"github.com/teamspace/backend/internal/store"
	"github.com/teamspace/backend/pkg/logger"
	"github.com/teamspace/backend/pkg/utils"
	"gorm.io/gorm"
)

const testHostPassword = "host-secret"

var (
	handlerTestSetupOnce sync.Once
	testHostPasswordHash string
)

type fakeBlobStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newFakeBlobStorage() *fakeBlobStorage {
	return &fakeBlobStorage{objects: map[string][]byte{}}
}

func (f *fakeBlobStorage) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[objectName] = data
	return nil
}

func (f *fakeBlobStorage) Delete(ctx context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectName)
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeBlobStorage) PublicObjectURL(objectName string) string {
	return "http://storage.local/files/" + objectName
}

func (f *fakeBlobStorage) objectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store *store.Store
	blob  *fakeBlobStorage
}

// setupTestEnv builds the full application against an in-memory sqlite
// database, a miniredis-backed notifier and an in-memory blob store, wiring
// the same routes as the server entrypoint.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	handlerTestSetupOnce.Do(func() {
		gosqlite.MustRegisterScalarFunction("NOW", 0, func(ctx *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			return time.Now().UTC(), nil
		})
		logger.Init()

		hash, err := utils.HashPassword(testHostPassword)
		if err != nil {
			panic(fmt.Sprintf("hashing test host password: %v", err))
		}
		testHostPasswordHash = hash
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(&models.File{}, &models.Subfolder{}, &models.TeamMember{}, &models.Session{}); err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	notifier := notify.NewRedisNotifierWithClient(client, "test:changes")

	blob := newFakeBlobStorage()
	st := store.New(db, blob, notifier, 20*time.Millisecond)
	if err := st.LoadAll(context.Background()); err != nil {
		t.Fatalf("initial store load failed: %v", err)
	}

	authHandler := NewAuthHandler(db, testHostPasswordHash)
	filesHandler := NewFilesHandler(st)
	subfoldersHandler := NewSubfoldersHandler(st)
	membersHandler := NewMembersHandler(st)
	teamsHandler := NewTeamsHandler(st)
	stateHandler := NewStateHandler(st)

	authMiddleware := middleware.NewAuthMiddleware(db)

	app := fiber.New()

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authMiddleware.RequireAuth, authHandler.Me)
	authRoutes.Post("/logout", authMiddleware.RequireAuth, authHandler.Logout)

	api.Get("/state", authMiddleware.RequireAuth, stateHandler.Get)
	api.Post("/save", authMiddleware.RequireAuth, middleware.RequireHost, stateHandler.Save)

	fileRoutes := api.Group("/files", authMiddleware.RequireAuth)
	fileRoutes.Get("/", filesHandler.List)
	fileRoutes.Post("/upload", middleware.RequireHost, filesHandler.Upload)
	fileRoutes.Post("/drive-link", middleware.RequireHost, filesHandler.AddDriveLink)
	fileRoutes.Put("/:id", middleware.RequireHost, filesHandler.Update)
	fileRoutes.Delete("/:id", middleware.RequireHost, filesHandler.Delete)

	subfolderRoutes := api.Group("/subfolders", authMiddleware.RequireAuth)
	subfolderRoutes.Get("/", subfoldersHandler.List)
	subfolderRoutes.Post("/", middleware.RequireHost, subfoldersHandler.Create)
	subfolderRoutes.Put("/:id", middleware.RequireHost, subfoldersHandler.Update)
	subfolderRoutes.Delete("/:id", middleware.RequireHost, subfoldersHandler.Delete)

	memberRoutes := api.Group("/members", authMiddleware.RequireAuth)
	memberRoutes.Get("/", membersHandler.List)
	memberRoutes.Post("/", middleware.RequireHost, membersHandler.Create)
	memberRoutes.Put("/:id", middleware.RequireHost, membersHandler.Update)
	memberRoutes.Delete("/:id", middleware.RequireHost, membersHandler.Delete)

	teamRoutes := api.Group("/teams", authMiddleware.RequireAuth)
	teamRoutes.Get("/", teamsHandler.List)
	teamRoutes.Get("/breadcrumbs", teamsHandler.Breadcrumbs)
	teamRoutes.Get("/:id", teamsHandler.Get)

	return &testEnv{app: app, db: db, store: st, blob: blob}
}

// createTestSession inserts a session row directly and returns its token.
func createTestSession(t *testing.T, env *testEnv, role models.SessionRole, name string) string {
	t.Helper()

	session := models.Session{
		Token: utils.NewSessionToken(),
		Role:  role,
	}
	if name != "" {
		session.Name = &name
	}
	if err := env.db.Create(&session).Error; err != nil {
		t.Fatalf("failed creating test session: %v", err)
	}
	return session.Token
}

func performRequest(t *testing.T, env *testEnv, req *http.Request) *http.Response {
	t.Helper()

	resp, err := env.app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func performJSONRequest(t *testing.T, env *testEnv, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed marshaling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return performRequest(t, env, req)
}

// performUpload sends a multipart upload with an explicit part content type.
func performUpload(t *testing.T, env *testEnv, token string, fields map[string]string, filename, contentType string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed writing form field %s: %v", key, err)
		}
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed creating file part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed writing file content: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return performRequest(t, env, req)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed decoding response body: %v", err)
	}
	return body
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func assertEnvelopeError(t *testing.T, resp *http.Response, wantStatus int) map[string]interface{} {
	t.Helper()

	assertStatus(t, resp, wantStatus)
	body := decodeJSONMap(t, resp)
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected error envelope, got %v", body)
	}
	if _, ok := body["error"].(string); !ok {
		t.Fatalf("expected error message in envelope, got %v", body)
	}
	return body
}

func envelopeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	body := decodeJSONMap(t, resp)
	if success, _ := body["success"].(bool); !success {
		t.Fatalf("expected success envelope, got %v", body)
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %v", body["data"])
	}
	return data
}

func envelopeList(t *testing.T, resp *http.Response) []interface{} {
	t.Helper()

	body := decodeJSONMap(t, resp)
	if success, _ := body["success"].(bool); !success {
		t.Fatalf("expected success envelope, got %v", body)
	}
	data, ok := body["data"].([]interface{})
	if !ok {
		t.Fatalf("expected array data, got %v", body["data"])
	}
	return data
}
