package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localnerve/rentdb/internal/handlers"
	"github.com/localnerve/rentdb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload(t *testing.T) {
	env := newTestEnv(t)
	token := env.operatorToken()
	content := []byte("%PDF-1.4 receipt")

	resp := env.upload(token, "Receipt.PDF", content)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var result handlers.UploadResult
	testutil.ParseJSON(t, resp, &result)
	require.True(t, strings.HasPrefix(result.Path, handlers.UploadsPrefix+"/"))
	assert.True(t, strings.HasSuffix(result.Path, ".pdf"))

	stored, err := os.ReadFile(filepath.Join(env.cfg.UploadDir, filepath.Base(result.Path)))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	// Stored files are served back statically
	served, err := env.app.Test(httptest.NewRequest(http.MethodGet, result.Path, nil), -1)
	require.NoError(t, err)
	testutil.AssertStatus(t, served, http.StatusOK)
	body, err := io.ReadAll(served.Body)
	require.NoError(t, err)
	assert.Equal(t, content, body)

	resp = env.upload(token, "script.sh", []byte("#!/bin/sh"))
	expectError(t, resp, http.StatusBadRequest, "upload.type")

	resp = env.upload("", "receipt.pdf", content)
	expectError(t, resp, http.StatusUnauthorized, "auth.token.missing")
}

func TestUploadRejectsLargeFiles(t *testing.T) {
	env := newTestEnv(t)

	big := make([]byte, env.cfg.UploadMaxBytes+1)
	resp := env.upload(env.operatorToken(), "scan.png", big)
	expectError(t, resp, http.StatusBadRequest, "upload.size")
}
