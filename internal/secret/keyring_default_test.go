package secret

import (
	"runtime"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestDefaultKeyringCRUD(t *testing.T) {
	keyring.MockInit()

	kr := defaultKeyring()
	if _, ok := kr.(*osKeyring); !ok {
		t.Fatalf("expected *osKeyring, got %T", kr)
	}

	service := "novelkey-test"
	account := "acct"
	value := "secret"

	if err := kr.Set(service, account, value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := kr.Get(service, account)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != value {
		t.Fatalf("Get returned %q, want %q", got, value)
	}

	if err := kr.Delete(service, account); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kr.Get(service, account); err == nil {
		t.Fatal("expected error after Delete")
	}
}

func TestDefaultKeyring_NullByteBehavior(t *testing.T) {
	keyring.MockInit()
	kr := defaultKeyring()
	service := "novelkey-test"
	account := "null-byte"
	raw := "s\x00e\x00c\x00r\x00e\x00t\x00"
	if err := kr.Set(service, account, raw); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := kr.Get(service, account)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if runtime.GOOS == "windows" {
		if strings.Contains(got, "\x00") {
			t.Fatalf("expected null bytes to be stripped, got %q", got)
		}
		if got != "secret" {
			t.Fatalf("expected cleaned value, got %q", got)
		}
		return
	}
	if got != raw {
		t.Fatalf("expected raw value on non-windows, got %q", got)
	}
}
