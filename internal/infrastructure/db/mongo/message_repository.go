package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

type MessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{coll: db.Collection(collectionMessages)}
}

type mongoMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Message   string             `bson:"message"`
	UserID    string             `bson:"userId,omitempty"`
	UserEmail string             `bson:"userEmail"`
	Status    string             `bson:"status"`
	IsRead    bool               `bson:"isRead"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (mm *mongoMessage) toDomain() *domain.Message {
	return &domain.Message{
		ID:        mm.ID.Hex(),
		Name:      mm.Name,
		Email:     mm.Email,
		Phone:     mm.Phone,
		Message:   mm.Message,
		UserID:    mm.UserID,
		UserEmail: mm.UserEmail,
		Status:    domain.MessageStatus(mm.Status),
		IsRead:    mm.IsRead,
		CreatedAt: mm.CreatedAt,
		UpdatedAt: mm.UpdatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoMessage{
		Name:      msg.Name,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Message:   msg.Message,
		UserID:    msg.UserID,
		UserEmail: msg.UserEmail,
		Status:    string(msg.Status),
		IsRead:    msg.IsRead,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}

	id, err := insertedID(r.coll.InsertOne(ctx, doc))
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *MessageRepository) List(ctx context.Context) ([]*domain.Message, error) {
	return r.find(ctx, bson.M{})
}

func (r *MessageRepository) ListByUserEmail(ctx context.Context, userEmail string) ([]*domain.Message, error) {
	return r.find(ctx, bson.M{"userEmail": userEmail})
}

func (r *MessageRepository) Update(ctx context.Context, id string, update domain.MessageUpdate, at time.Time) (*domain.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMessageNotFound
	}

	set := bson.M{"updatedAt": at}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.IsRead != nil {
		set["isRead"] = *update.IsRead
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMessage
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, afterUpdate()).Decode(&mm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("update message: %w", err)
	}
	return mm.toDomain(), nil
}

// find returns matching messages, newest first.
func (r *MessageRepository) find(ctx context.Context, filter bson.M) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}

	var docs []mongoMessage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}

	out := make([]*domain.Message, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
