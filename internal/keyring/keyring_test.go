package keyring

import (
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetToken(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	got, err := GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}
	if got != "tok-123" {
		t.Errorf("GetToken() = %q, want %q", got, "tok-123")
	}
}

func TestSetTokenEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken(""); err == nil {
		t.Error("SetToken(\"\") should return an error")
	}
}

func TestDeleteToken(t *testing.T) {
	gokeyring.MockInit()

	if err := SetToken("tok-456"); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}
	if err := DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}

	if _, err := GetToken(); err != ErrNotFound {
		t.Errorf("GetToken() after delete = %v, want ErrNotFound", err)
	}
}
