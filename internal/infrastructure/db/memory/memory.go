// Package memory provides in-process implementations of the repository ports.
// They mirror the Mongo repositories' semantics (generated ObjectID hex ids,
// newest-first message ordering, not-found on malformed ids) and are safe for
// concurrent use.
package memory

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store groups the in-memory repositories.
type Store struct {
	Users    *UserRepository
	Messages *MessageRepository
	Guards   *GuardRepository
	Audit    *AuditRepository
}

func NewStore() *Store {
	return &Store{
		Users:    NewUserRepository(),
		Messages: NewMessageRepository(),
		Guards:   NewGuardRepository(),
		Audit:    NewAuditRepository(),
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

