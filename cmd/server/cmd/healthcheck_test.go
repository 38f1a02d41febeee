package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func runHealthcheckAgainst(t *testing.T, url string) error {
	t.Helper()

	origURL := healthcheckURL
	origTimeout := healthcheckTimeout
	defer func() {
		healthcheckURL = origURL
		healthcheckTimeout = origTimeout
	}()

	healthcheckURL = url
	healthcheckTimeout = 2

	healthcheckCmd.SetOut(io.Discard)
	return runHealthcheck(healthcheckCmd, nil)
}

func TestHealthcheckReadyServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "ready"})
	}))
	defer server.Close()

	if err := runHealthcheckAgainst(t, server.URL); err != nil {
		t.Errorf("expected ready server to pass, got %v", err)
	}
}

func TestHealthcheckNotReadyServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "unavailable"})
	}))
	defer server.Close()

	if err := runHealthcheckAgainst(t, server.URL); err == nil {
		t.Error("expected not-ready server to fail the check")
	}
}

func TestHealthcheckUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	if err := runHealthcheckAgainst(t, server.URL); err == nil {
		t.Error("expected unreachable server to fail the check")
	}
}

func TestHealthcheckInvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	if err := runHealthcheckAgainst(t, server.URL); err == nil {
		t.Error("expected invalid body to fail the check")
	}
}
