package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DefaultPresenceStatus = "absent"

// Transaction is one entry of a guard's payment ledger.
type Transaction struct {
	Type   string    `json:"type"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Note   *string   `json:"note"`
}

// PresenceEntry is one entry of a guard's attendance log.
type PresenceEntry struct {
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}

// Guard is a security-guard personnel record. Transactions and Presence are
// append-only: they grow through the dedicated append operations and are
// never replaced by GuardPatch.
type Guard struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	NID          string          `json:"nid"`
	Address      string          `json:"address,omitempty"`
	JoinDate     time.Time       `json:"joinDate"`
	DutyPlace    string          `json:"dutyPlace"`
	DutyTime     string          `json:"dutyTime"`
	Transactions []Transaction   `json:"transactions"`
	Presence     []PresenceEntry `json:"presence"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// GuardPatch lists the core fields the generic update may overwrite.
type GuardPatch struct {
	Name      *string
	Phone     *string
	NID       *string
	Address   *string
	JoinDate  *time.Time
	DutyPlace *string
	DutyTime  *string
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps and plain calendar dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, Invalid(fmt.Sprintf("invalid date %q", s))
}

// SeedTransactions normalizes caller-supplied seed transactions. Anything that
// is not a JSON array yields an empty ledger; non-object elements are skipped.
func SeedTransactions(raw any, now time.Time) ([]Transaction, error) {
	items, ok := raw.([]any)
	if !ok {
		return []Transaction{}, nil
	}
	out := make([]Transaction, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		date, err := seedDate(m["date"], now)
		if err != nil {
			return nil, err
		}
		typ, _ := m["type"].(string)
		out = append(out, Transaction{
			Type:   typ,
			Amount: toAmount(m["amount"]),
			Date:   date,
			Note:   toNote(m["note"]),
		})
	}
	return out, nil
}

// SeedPresence normalizes caller-supplied seed presence entries.
func SeedPresence(raw any, now time.Time) ([]PresenceEntry, error) {
	items, ok := raw.([]any)
	if !ok {
		return []PresenceEntry{}, nil
	}
	out := make([]PresenceEntry, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		date, err := seedDate(m["date"], now)
		if err != nil {
			return nil, err
		}
		status, _ := m["status"].(string)
		if status == "" {
			status = DefaultPresenceStatus
		}
		out = append(out, PresenceEntry{Date: date, Status: status})
	}
	return out, nil
}

func seedDate(v any, now time.Time) (time.Time, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return now, nil
	}
	return ParseDate(s)
}

func toAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func toNote(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
