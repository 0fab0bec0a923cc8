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

type GuardRepository struct {
	coll *mongo.Collection
}

func NewGuardRepository(db *mongo.Database) *GuardRepository {
	return &GuardRepository{coll: db.Collection(collectionGuards)}
}

type mongoTransaction struct {
	Type   string    `bson:"type"`
	Amount float64   `bson:"amount"`
	Date   time.Time `bson:"date"`
	Note   *string   `bson:"note"`
}

type mongoPresence struct {
	Date   time.Time `bson:"date"`
	Status string    `bson:"status"`
}

type mongoGuard struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Phone        string             `bson:"phone"`
	NID          string             `bson:"nid"`
	Address      string             `bson:"address,omitempty"`
	JoinDate     time.Time          `bson:"joinDate"`
	DutyPlace    string             `bson:"dutyPlace"`
	DutyTime     string             `bson:"dutyTime"`
	Transactions []mongoTransaction `bson:"transactions"`
	Presence     []mongoPresence    `bson:"presence"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (mg *mongoGuard) toDomain() *domain.Guard {
	return &domain.Guard{
		ID:           mg.ID.Hex(),
		Name:         mg.Name,
		Phone:        mg.Phone,
		NID:          mg.NID,
		Address:      mg.Address,
		JoinDate:     mg.JoinDate,
		DutyPlace:    mg.DutyPlace,
		DutyTime:     mg.DutyTime,
		Transactions: transactionsToDomain(mg.Transactions),
		Presence:     presenceToDomain(mg.Presence),
		CreatedAt:    mg.CreatedAt,
		UpdatedAt:    mg.UpdatedAt,
	}
}

func transactionsToDomain(in []mongoTransaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(in))
	for _, t := range in {
		out = append(out, domain.Transaction{Type: t.Type, Amount: t.Amount, Date: t.Date, Note: t.Note})
	}
	return out
}

func presenceToDomain(in []mongoPresence) []domain.PresenceEntry {
	out := make([]domain.PresenceEntry, 0, len(in))
	for _, p := range in {
		out = append(out, domain.PresenceEntry{Date: p.Date, Status: p.Status})
	}
	return out
}

func transactionDoc(t domain.Transaction) mongoTransaction {
	return mongoTransaction{Type: t.Type, Amount: t.Amount, Date: t.Date, Note: t.Note}
}

func presenceDoc(p domain.PresenceEntry) mongoPresence {
	return mongoPresence{Date: p.Date, Status: p.Status}
}

func (r *GuardRepository) List(ctx context.Context) ([]*domain.Guard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find guards: %w", err)
	}

	var docs []mongoGuard
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode guards: %w", err)
	}

	out := make([]*domain.Guard, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *GuardRepository) FindByID(ctx context.Context, id string) (*domain.Guard, error) {
	var mg mongoGuard
	if err := r.findOne(ctx, id, nil, &mg); err != nil {
		return nil, err
	}
	return mg.toDomain(), nil
}

func (r *GuardRepository) Create(ctx context.Context, guard *domain.Guard) (*domain.Guard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoGuard{
		Name:         guard.Name,
		Phone:        guard.Phone,
		NID:          guard.NID,
		Address:      guard.Address,
		JoinDate:     guard.JoinDate,
		DutyPlace:    guard.DutyPlace,
		DutyTime:     guard.DutyTime,
		Transactions: make([]mongoTransaction, 0, len(guard.Transactions)),
		Presence:     make([]mongoPresence, 0, len(guard.Presence)),
		CreatedAt:    guard.CreatedAt,
		UpdatedAt:    guard.UpdatedAt,
	}
	for _, t := range guard.Transactions {
		doc.Transactions = append(doc.Transactions, transactionDoc(t))
	}
	for _, p := range guard.Presence {
		doc.Presence = append(doc.Presence, presenceDoc(p))
	}

	id, err := insertedID(r.coll.InsertOne(ctx, doc))
	if err != nil {
		return nil, fmt.Errorf("insert guard: %w", err)
	}
	doc.ID = id
	return doc.toDomain(), nil
}

// Update sets core fields only; the logs are not addressable from a GuardPatch.
func (r *GuardRepository) Update(ctx context.Context, id string, patch domain.GuardPatch, at time.Time) (*domain.Guard, error) {
	set := bson.M{"updatedAt": at}
	setIf(set, "name", patch.Name)
	setIf(set, "phone", patch.Phone)
	setIf(set, "nid", patch.NID)
	setIf(set, "address", patch.Address)
	setIf(set, "dutyPlace", patch.DutyPlace)
	setIf(set, "dutyTime", patch.DutyTime)
	if patch.JoinDate != nil {
		set["joinDate"] = patch.JoinDate.UTC()
	}

	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

// AppendTransaction pushes onto the ledger and bumps updatedAt in one write.
// Concurrent appends to the same guard both land.
func (r *GuardRepository) AppendTransaction(ctx context.Context, id string, tx domain.Transaction, at time.Time) (*domain.Guard, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$push": bson.M{"transactions": transactionDoc(tx)},
		"$set":  bson.M{"updatedAt": at},
	})
}

func (r *GuardRepository) AppendPresence(ctx context.Context, id string, entry domain.PresenceEntry, at time.Time) (*domain.Guard, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$push": bson.M{"presence": presenceDoc(entry)},
		"$set":  bson.M{"updatedAt": at},
	})
}

func (r *GuardRepository) Transactions(ctx context.Context, id string) ([]domain.Transaction, error) {
	var doc struct {
		Transactions []mongoTransaction `bson:"transactions"`
	}
	if err := r.findOne(ctx, id, bson.M{"transactions": 1}, &doc); err != nil {
		return nil, err
	}
	return transactionsToDomain(doc.Transactions), nil
}

func (r *GuardRepository) Presence(ctx context.Context, id string) ([]domain.PresenceEntry, error) {
	var doc struct {
		Presence []mongoPresence `bson:"presence"`
	}
	if err := r.findOne(ctx, id, bson.M{"presence": 1}, &doc); err != nil {
		return nil, err
	}
	return presenceToDomain(doc.Presence), nil
}

func (r *GuardRepository) findOne(ctx context.Context, id string, projection bson.M, out any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGuardNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrGuardNotFound
		}
		return fmt.Errorf("find guard: %w", err)
	}
	return nil
}

func (r *GuardRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Guard, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGuardNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mg mongoGuard
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, afterUpdate()).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGuardNotFound
		}
		return nil, fmt.Errorf("update guard: %w", err)
	}
	return mg.toDomain(), nil
}
