package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/intakedesk/internal/db"
	"github.com/terraincognita07/intakedesk/internal/security"
	"github.com/terraincognita07/intakedesk/internal/services"
	"github.com/terraincognita07/intakedesk/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "correct horse battery"

var testPNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R', 0, 0, 0, 1}

type testApp struct {
	app       *fiber.App
	handler   *Handler
	database  *gorm.DB
	store     *storage.FileStore
	clockTime time.Time
}

func (env *testApp) now() time.Time {
	return env.clockTime
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tempDir := t.TempDir()
	database, err := db.OpenSQLite(filepath.Join(tempDir, "intakedesk-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	env := &testApp{
		database:  database,
		store:     storage.NewFileStore(filepath.Join(tempDir, "uploads")),
		clockTime: time.Date(2030, time.January, 10, 9, 0, 0, 0, time.UTC),
	}

	issuer, err := security.NewTokenIssuer(security.TokenConfig{
		Secret: []byte("api-test-secret-key-with-32-plus-bytes"),
		TTL:    30 * time.Minute,
		Now:    env.now,
	})
	if err != nil {
		t.Fatalf("new token issuer: %v", err)
	}

	repos := db.NewRepositories(database)
	appointments := services.NewAppointmentService(repos.Appointments, time.UTC)
	appointments.SetClock(env.now)

	handler, err := NewHandler(Dependencies{
		Auth:         services.NewAuthService(repos.Users, security.NewPasswordHasher(bcrypt.MinCost), issuer),
		Profiles:     services.NewProfileService(repos.Profiles),
		Appointments: appointments,
		Radiographs:  services.NewRadiographService(repos.Radiographs, env.store, true),
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	env.handler = handler
	env.app = NewApp(handler, AppConfig{MaxUploadBytes: 1024 * 1024})
	return env
}

func (env *testApp) do(t *testing.T, request *http.Request) *http.Response {
	t.Helper()

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func jsonRequest(t *testing.T, method string, path string, token string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func uploadRequest(t *testing.T, token string, filename string, contentType string, content []byte, description string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write multipart part: %v", err)
	}
	if description != "" {
		if err := writer.WriteField("description", description); err != nil {
			t.Fatalf("write description: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/patients/radiographs/upload", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	request.Header.Set("Authorization", "Bearer "+token)
	return request
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}

func expectStatus(t *testing.T, response *http.Response, status int) {
	t.Helper()

	if response.StatusCode != status {
		raw, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", status, response.StatusCode, raw)
	}
}

func registerAndLogin(t *testing.T, env *testApp, email string) string {
	t.Helper()

	register := env.do(t, jsonRequest(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":      email,
		"password":   testPassword,
		"first_name": "Test",
		"last_name":  "Patient",
	}))
	expectStatus(t, register, http.StatusOK)

	login := env.do(t, jsonRequest(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": testPassword,
	}))
	expectStatus(t, login, http.StatusOK)

	var token tokenView
	decodeJSON(t, login, &token)
	if token.AccessToken == "" {
		t.Fatal("expected access token")
	}
	return token.AccessToken
}
