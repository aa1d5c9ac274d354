package playground

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playground-bot/internal/domain/user"
)

func TestClient_Execute(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Write([]byte(`{"success":true,"stdout":"Hello, world!\n","stderr":"Compiling playground"}`))
	}))
	defer server.Close()

	p := user.NewPreferences()
	p.Backtrace = true
	p.ApplyBuildType(user.BuildTypeTest)

	resp, err := NewClient(server.URL, server.Client()).Execute(context.Background(), NewRequest(p, `fn main() {}`))
	require.NoError(t, err)

	assert.Equal(t, &Response{Success: true, Stdout: "Hello, world!\n", Stderr: "Compiling playground"}, resp)
	assert.Equal(t, map[string]any{
		"backtrace": true,
		"channel":   "stable",
		"code":      "fn main() {}",
		"crateType": "lib",
		"edition":   "2018",
		"mode":      "debug",
		"tests":     true,
	}, got)
}

func TestClient_ExecuteDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, server.Client()).Execute(context.Background(), NewRequest(user.NewPreferences(), ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExecution))

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "decode response", execErr.Op)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_ExecuteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, nil).Execute(context.Background(), NewRequest(user.NewPreferences(), ""))
	require.Error(t, err)

	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, "send request", execErr.Op)
	assert.ErrorIs(t, err, ErrExecution)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("", nil)
	assert.Equal(t, DefaultURL, c.url)
	assert.Same(t, http.DefaultClient, c.http)
}
