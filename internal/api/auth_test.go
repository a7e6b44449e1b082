package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second)
}

func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestLoginFieldsInData(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{
		"success": true,
		"data": {"userId": 7, "username": "mori", "email": "mori@example.com", "token": "tok-1", "isAdmin": true}
	}`))

	session, err := client.Login("mori", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "mori", session.Username)
	assert.Equal(t, "mori@example.com", session.Email)
	assert.Equal(t, "tok-1", session.Token)
	assert.True(t, session.IsAdmin)
}

func TestLoginFieldsAtTopLevel(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{
		"success": true,
		"userId": 9, "username": "hana", "token": "tok-2"
	}`))

	session, err := client.Login("hana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(9), session.UserID)
	assert.Equal(t, "hana", session.Username)
	assert.Equal(t, "tok-2", session.Token)
	assert.False(t, session.IsAdmin)
}

func TestLoginDataFieldsWinOverTopLevel(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{
		"success": true,
		"userId": 99, "username": "top",
		"data": {"userId": 7, "username": "inner"}
	}`))

	session, err := client.Login("x", "y")
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "inner", session.Username)
}

func TestLoginDefaultsWhenFieldsMissing(t *testing.T) {
	// 用户名两处都缺失时退回登录输入，邮箱留空
	client := newTestClient(t, jsonHandler(http.StatusOK, `{
		"success": true,
		"data": {"userId": 3, "token": "tok-3"}
	}`))

	session, err := client.Login("fallback-name", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fallback-name", session.Username)
	assert.Equal(t, "", session.Email)
}

func TestLoginZeroUserIDNeverCreatesSession(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{
		"success": true,
		"data": {"username": "ghost", "token": "tok-4"}
	}`))

	session, err := client.Login("ghost", "secret")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestLoginFailureUsesServerMessage(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusUnauthorized, `{
		"success": false, "message": "用户名或密码错误"
	}`))

	_, err := client.Login("mori", "wrong")
	require.Error(t, err)
	assert.Equal(t, "用户名或密码错误", err.Error())
}

func TestLoginFailureWithoutMessageFallsBack(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{"success": false}`))

	_, err := client.Login("mori", "wrong")
	require.Error(t, err)
	assert.Equal(t, "用户名或密码错误", err.Error())
}

func TestLoginUnparseableErrorBodyReportsStatusCode(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusBadGateway, `<html>bad gateway</html>`))

	_, err := client.Login("mori", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLoginNetworkErrorIsConnectionError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // 地址立即失效

	client := NewClient(server.URL, time.Second)
	_, err := client.Login("mori", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "连接错误")
}

func TestRegisterUsesUsernameAndEmailDefaults(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusOK, `{
		"success": true,
		"data": {"userId": 11, "token": "tok-5"}
	}`))

	session, err := client.Register("newuser", "new@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(11), session.UserID)
	assert.Equal(t, "newuser", session.Username)
	assert.Equal(t, "new@example.com", session.Email)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	client := newTestClient(t, jsonHandler(http.StatusBadRequest, `{
		"success": false, "message": "用户名已被占用"
	}`))

	_, err := client.Register("taken", "a@b.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "用户名已被占用", err.Error())
}
