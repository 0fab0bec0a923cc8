package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

func TestGuardToDomain_NilLogsBecomeEmpty(t *testing.T) {
	mg := mongoGuard{ID: primitive.NewObjectID(), Name: "A"}

	g := mg.toDomain()
	if g.Transactions == nil || len(g.Transactions) != 0 {
		t.Errorf("expected empty transactions, got %v", g.Transactions)
	}
	if g.Presence == nil || len(g.Presence) != 0 {
		t.Errorf("expected empty presence, got %v", g.Presence)
	}
	if g.ID != mg.ID.Hex() {
		t.Errorf("id not mapped: %s", g.ID)
	}
}

func TestTransactionDoc_RoundTrip(t *testing.T) {
	note := "advance"
	tx := domain.Transaction{Type: "advance", Amount: 250, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Note: &note}

	back := transactionsToDomain([]mongoTransaction{transactionDoc(tx)})
	if len(back) != 1 || back[0].Type != tx.Type || back[0].Amount != tx.Amount || !back[0].Date.Equal(tx.Date) || *back[0].Note != note {
		t.Fatalf("unexpected mapping: %+v", back)
	}
}

func TestUserToDomain_KeepsCredentialsForSanitizer(t *testing.T) {
	mu := mongoUser{ID: primitive.NewObjectID(), Email: "a@b.c", Password: "hash", UID: "uid"}

	u := mu.toDomain()
	if u.Password != "hash" || u.UID != "uid" {
		t.Fatalf("repository must hand credentials to the core: %+v", u)
	}
	if pub := domain.Sanitize(u); pub.Email != "a@b.c" {
		t.Fatalf("unexpected public view: %+v", pub)
	}
}
