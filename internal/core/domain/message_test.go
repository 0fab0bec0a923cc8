package domain

import "testing"

func TestValidContactEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.c":             true,
		"alice@example.com": true,
		"x.y@sub.domain.io": true,
		"not-an-email":      false,
		"a@b":               false,
		"@b.c":              false,
		"a b@c.d":           false,
		"a@@b.c":            false,
		"":                  false,
	}
	for in, want := range cases {
		if got := ValidContactEmail(in); got != want {
			t.Errorf("ValidContactEmail(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestMessageUpdate_Empty(t *testing.T) {
	if !(MessageUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}
	read := true
	if (MessageUpdate{IsRead: &read}).Empty() {
		t.Error("isRead update should not be empty")
	}
}
