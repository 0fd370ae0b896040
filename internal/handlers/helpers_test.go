package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/config"
	"github.com/localnerve/rentdb/internal/handlers"
	"github.com/localnerve/rentdb/internal/logging"
	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv is a full app over a private store with one admin and one operator
type testEnv struct {
	t        *testing.T
	app      *fiber.App
	cfg      *config.Config
	db       *gorm.DB
	creds    *services.Credentials
	admin    *models.User
	operator *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := testutil.Config(t)
	db := testutil.NewDB(t, cfg)
	creds := testutil.Credentials(t, cfg)

	env := &testEnv{
		t:        t,
		cfg:      cfg,
		db:       db,
		creds:    creds,
		admin:    testutil.CreateUser(t, db, creds, "admin", "admin123", models.RoleAdmin, models.UserActive),
		operator: testutil.CreateUser(t, db, creds, "operator", "operator1", models.RoleOperator, models.UserActive),
	}
	env.app = handlers.NewApp(handlers.Deps{
		Cfg:   cfg,
		DB:    db,
		Creds: creds,
		Log:   logging.Discard(),
		Now:   func() time.Time { return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC) },
	}, handlers.AppOptions{})
	return env
}

func (e *testEnv) adminToken() string    { return testutil.Token(e.t, e.creds, e.admin) }
func (e *testEnv) operatorToken() string { return testutil.Token(e.t, e.creds, e.operator) }

// do sends a JSON request; body may be nil, a string of raw JSON, or any value to marshal
func (e *testEnv) do(method, path, token string, body interface{}) *http.Response {
	e.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

// upload posts a multipart file
func (e *testEnv) upload(token, filename string, content []byte) *http.Response {
	e.t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(e.t, err)
	_, err = part.Write(content)
	require.NoError(e.t, err)
	require.NoError(e.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

// errorBody is the standard error response
type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Ok      bool   `json:"ok"`
	Type    string `json:"type"`
	URL     string `json:"url"`
}

func expectError(t *testing.T, resp *http.Response, status int, errorType string) errorBody {
	t.Helper()
	testutil.AssertStatus(t, resp, status)
	var body errorBody
	testutil.ParseJSON(t, resp, &body)
	require.False(t, body.Ok)
	require.Equal(t, status, body.Status)
	if errorType != "" {
		require.Equal(t, errorType, body.Type)
	}
	return body
}
