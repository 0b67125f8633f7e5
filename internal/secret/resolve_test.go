package secret

import (
	"context"
	"testing"

	"github.com/novelpro/novelkey/internal/errors"
)

func TestResolve_KeyringRef(t *testing.T) {
	kr := newMemKeyring()
	_ = kr.Set(DefaultService, "mcp_token", "t0ken")

	val, xe := Resolve(context.Background(), "keyring:mcp_token", Options{Keyring: kr})
	if xe != nil {
		t.Fatalf("Resolve failed: %v", xe)
	}
	if val != "t0ken" {
		t.Errorf("Resolve = %q, want %q", val, "t0ken")
	}
}

func TestResolve_CustomService(t *testing.T) {
	kr := newMemKeyring()
	_ = kr.Set("custom", "prod/token", "abc")

	val, xe := Resolve(context.Background(), "keyring:prod/token", Options{Service: "custom", Keyring: kr})
	if xe != nil {
		t.Fatalf("Resolve failed: %v", xe)
	}
	if val != "abc" {
		t.Errorf("Resolve = %q, want %q", val, "abc")
	}

	// 默认 service 下不存在
	if _, xe := Resolve(context.Background(), "keyring:prod/token", Options{Keyring: kr}); xe == nil {
		t.Error("expected not found under default service")
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		opts     Options
		wantCode errors.Code
	}{
		{"missing key", "keyring:absent", Options{Keyring: newMemKeyring()}, errors.CodeSecretNotFound},
		{"empty ref", "keyring:", Options{Keyring: newMemKeyring()}, errors.CodeCfgInvalid},
		{"plaintext not allowed", "plain", Options{}, errors.CodeCfgInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, xe := Resolve(context.Background(), tt.raw, tt.opts)
			if xe == nil {
				t.Fatal("expected error")
			}
			if xe.Code != tt.wantCode {
				t.Errorf("code=%s want %s", xe.Code, tt.wantCode)
			}
		})
	}
}

func TestResolve_PlaintextAllowed(t *testing.T) {
	val, xe := Resolve(context.Background(), "plain", Options{AllowPlaintext: true})
	if xe != nil {
		t.Fatalf("Resolve failed: %v", xe)
	}
	if val != "plain" {
		t.Errorf("Resolve = %q, want plain", val)
	}
}

func TestIsKeyringRef(t *testing.T) {
	if !IsKeyringRef("keyring:x") {
		t.Error("expected keyring ref")
	}
	if IsKeyringRef("x") {
		t.Error("did not expect keyring ref")
	}
}
