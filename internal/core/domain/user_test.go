package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSanitize_DropsCredentials(t *testing.T) {
	now := time.Now().UTC()
	u := &User{
		ID:        "abc",
		Email:     "alice@example.com",
		Name:      "Alice",
		IsAdmin:   true,
		Password:  "$2a$10$hash",
		UID:       "firebase-uid-1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	b, err := json.Marshal(Sanitize(u))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(b)
	for _, forbidden := range []string{"password", "uid", "$2a$10$hash", "firebase-uid-1"} {
		if strings.Contains(body, forbidden) {
			t.Fatalf("sanitized view leaks %q: %s", forbidden, body)
		}
	}

	var got map[string]any
	_ = json.Unmarshal(b, &got)
	if got["_id"] != "abc" || got["isAdmin"] != true || got["email"] != "alice@example.com" {
		t.Fatalf("public fields missing: %v", got)
	}
}

func TestSanitize_Nil(t *testing.T) {
	if got := Sanitize(nil); got.Email != "" {
		t.Fatalf("expected zero view, got %+v", got)
	}
}

func TestUserPatch_TouchesImmutable(t *testing.T) {
	email := "x@y.z"
	admin := false
	name := "n"

	if (UserPatch{Name: &name}).TouchesImmutable() {
		t.Error("name-only patch should be allowed")
	}
	if !(UserPatch{Email: &email}).TouchesImmutable() {
		t.Error("email patch must be rejected")
	}
	if !(UserPatch{IsAdmin: &admin}).TouchesImmutable() {
		t.Error("isAdmin patch must be rejected even when false")
	}
}
