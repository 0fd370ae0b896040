package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"github.com/localnerve/rentdb/internal/testutil"
	"github.com/localnerve/rentdb/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorCannotManageUsers(t *testing.T) {
	env := newTestEnv(t)
	token := env.operatorToken()
	adminPath := fmt.Sprintf("/api/users/%d", env.admin.ID)

	cases := []struct {
		name      string
		method    string
		path      string
		body      interface{}
		errorType string
	}{
		{"list", http.MethodGet, "/api/users", nil, "auth.role"},
		{"create", http.MethodPost, "/api/users", map[string]string{"username": "x", "password": "secret1"}, "auth.role"},
		{"delete", http.MethodDelete, adminPath, nil, "auth.role"},
		{"read another", http.MethodGet, adminPath, nil, "auth.ownership"},
		{"edit another", http.MethodPut, adminPath, map[string]string{"language": "en"}, "auth.ownership"},
		{"self promotion", http.MethodPut, fmt.Sprintf("/api/users/%d", env.operator.ID), map[string]string{"role": "admin"}, "auth.ownership"},
		{"self status change", http.MethodPut, fmt.Sprintf("/api/users/%d", env.operator.ID), map[string]string{"status": "inactive"}, "auth.ownership"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(tc.method, tc.path, token, tc.body)
			expectError(t, resp, http.StatusForbidden, tc.errorType)
		})
	}

	stored, err := services.GetUser(env.db, env.operator.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleOperator, stored.Role)
	assert.Equal(t, models.UserActive, stored.Status)
}

func TestOperatorEditsSelf(t *testing.T) {
	env := newTestEnv(t)
	path := fmt.Sprintf("/api/users/%d", env.operator.ID)

	resp := env.do(http.MethodPut, path, env.operatorToken(), map[string]string{"language": "ar-MA", "password": "brand-new"})
	testutil.AssertStatus(t, resp, http.StatusOK)
	var result utils.SuccessResponseStruct
	testutil.ParseJSON(t, resp, &result)
	assert.True(t, result.Ok)
	assert.Equal(t, int64(1), result.AffectedRows)

	resp = env.do(http.MethodGet, path, env.operatorToken(), nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var user models.User
	testutil.ParseJSON(t, resp, &user)
	assert.Equal(t, "ar", user.Language)

	_, err := services.Login(env.db, env.creds, "operator", "brand-new")
	assert.NoError(t, err)
}

func TestAdminManagesUsers(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminToken()

	resp := env.do(http.MethodPost, "/api/users", token, map[string]string{
		"username": "agent",
		"password": "agent-pass",
		"language": "en",
	})
	testutil.AssertStatus(t, resp, http.StatusCreated)
	var created utils.CreatedResponseStruct
	testutil.ParseJSON(t, resp, &created)
	id := uint(created.ID.(float64))

	resp = env.do(http.MethodPost, "/api/users", token, map[string]string{"username": "agent", "password": "agent-pass"})
	expectError(t, resp, http.StatusBadRequest, "validation.duplicate")

	resp = env.do(http.MethodPost, "/api/users", token, map[string]string{"username": "bad user", "password": "agent-pass"})
	expectError(t, resp, http.StatusBadRequest, "validation.input")

	resp = env.do(http.MethodGet, "/api/users", token, nil)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var users []models.User
	testutil.ParseJSON(t, resp, &users)
	assert.Len(t, users, 3)

	resp = env.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", env.admin.ID), token, nil)
	expectError(t, resp, http.StatusConflict, "conflict.in_use")

	resp = env.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), token, nil)
	testutil.AssertStatus(t, resp, http.StatusOK)

	resp = env.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), token, nil)
	expectError(t, resp, http.StatusNotFound, "not_found")

	resp = env.do(http.MethodGet, "/api/users/abc", token, nil)
	expectError(t, resp, http.StatusBadRequest, "validation.input")
}
