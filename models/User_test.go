package models

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestUserMarshalOmitsPassword(t *testing.T) {
	user := User{
		FirstName: "Ana",
		Email:     "ana@example.com",
		Password:  "$2a$10$secrethash",
		Role:      "staff",
	}

	// Handlers hand the pointer to the JSON encoder; the custom marshaler
	// only fires on *User.
	raw, err := json.Marshal(&user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if bytes.Contains(raw, []byte("password")) || bytes.Contains(raw, []byte("$2a$10$secrethash")) {
		t.Fatalf("password hash leaked into response body: %s", raw)
	}

	// Same guarantee inside a response envelope.
	raw, err = json.Marshal(map[string]interface{}{"data": &user})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	if bytes.Contains(raw, []byte("$2a$10$secrethash")) {
		t.Fatalf("password hash leaked through envelope: %s", raw)
	}

	// The remaining fields still come through.
	if !bytes.Contains(raw, []byte("ana@example.com")) {
		t.Fatalf("expected user fields in body: %s", raw)
	}
}
