package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/invoke"
)

func TestStreamableHTTPAuthRequired(t *testing.T) {
	server, err := CreateServer("test", invoke.NewDispatcher(nil))
	if err != nil {
		t.Fatalf("CreateServer error: %v", err)
	}
	handler, err := NewStreamableHTTPHandler(server, "secret-token")
	if err != nil {
		t.Fatalf("NewStreamableHTTPHandler error: %v", err)
	}

	ts := httptest.NewServer(handler)
	defer ts.Close()

	cases := []struct {
		name             string
		authHeader       string
		wantUnauthorized bool
	}{
		{name: "missing", authHeader: "", wantUnauthorized: true},
		{name: "wrong-scheme", authHeader: "Token secret-token", wantUnauthorized: true},
		{name: "wrong-token", authHeader: "Bearer bad-token", wantUnauthorized: true},
		{name: "prefix-of-token", authHeader: "Bearer secret", wantUnauthorized: true},
		{name: "ok", authHeader: "Bearer secret-token", wantUnauthorized: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, ts.URL, strings.NewReader("{}"))
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			req.Header.Set("Accept", "application/json, text/event-stream")
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("http request error: %v", err)
			}
			resp.Body.Close()
			if tc.wantUnauthorized && resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
			}
			if !tc.wantUnauthorized && resp.StatusCode == http.StatusUnauthorized {
				t.Fatalf("expected non-unauthorized status, got %d", resp.StatusCode)
			}
		})
	}
}

func TestNewStreamableHTTPHandler_Validation(t *testing.T) {
	if _, err := NewStreamableHTTPHandler(nil, "token"); !errors.HasCode(err, errors.CodeInternal) {
		t.Fatalf("expected CodeInternal for nil server, got %v", err)
	}

	server, err := CreateServer("test", invoke.NewDispatcher(nil))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewStreamableHTTPHandler(server, ""); !errors.HasCode(err, errors.CodeCfgInvalid) {
		t.Fatalf("expected CodeCfgInvalid for empty token, got %v", err)
	}
}

func TestValidTransport(t *testing.T) {
	for _, tr := range []string{TransportStdio, TransportStreamableHTTP} {
		if !ValidTransport(tr) {
			t.Errorf("expected %s to be valid", tr)
		}
	}
	if ValidTransport("websocket") {
		t.Error("websocket should be invalid")
	}
}

func TestServe_UnsupportedTransport(t *testing.T) {
	server, err := CreateServer("test", invoke.NewDispatcher(nil))
	if err != nil {
		t.Fatal(err)
	}
	err = Serve(context.Background(), server, ServeOptions{Transport: "websocket"})
	if !errors.HasCode(err, errors.CodeCfgInvalid) {
		t.Fatalf("expected CodeCfgInvalid, got %v", err)
	}
}

func TestServe_HTTPRequiresToken(t *testing.T) {
	server, err := CreateServer("test", invoke.NewDispatcher(nil))
	if err != nil {
		t.Fatal(err)
	}
	err = Serve(context.Background(), server, ServeOptions{Transport: TransportStreamableHTTP, HTTPAddr: "127.0.0.1:0"})
	if !errors.HasCode(err, errors.CodeCfgInvalid) {
		t.Fatalf("expected CodeCfgInvalid, got %v", err)
	}
}
