package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Name          string             `bson:"name,omitempty"`
	PhotoURL      string             `bson:"photoURL,omitempty"`
	Phone         string             `bson:"phone,omitempty"`
	Address       string             `bson:"address,omitempty"`
	Role          string             `bson:"role,omitempty"`
	IsAdmin       bool               `bson:"isAdmin"`
	EmailVerified bool               `bson:"emailVerified"`
	Password      string             `bson:"password,omitempty"`
	UID           string             `bson:"uid,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
	LastLogin     *time.Time         `bson:"lastLogin,omitempty"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:            mu.ID.Hex(),
		Email:         mu.Email,
		Name:          mu.Name,
		PhotoURL:      mu.PhotoURL,
		Phone:         mu.Phone,
		Address:       mu.Address,
		Role:          mu.Role,
		IsAdmin:       mu.IsAdmin,
		EmailVerified: mu.EmailVerified,
		Password:      mu.Password,
		UID:           mu.UID,
		CreatedAt:     mu.CreatedAt,
		UpdatedAt:     mu.UpdatedAt,
		LastLogin:     mu.LastLogin,
	}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Email:         user.Email,
		Name:          user.Name,
		PhotoURL:      user.PhotoURL,
		Phone:         user.Phone,
		Address:       user.Address,
		Role:          user.Role,
		IsAdmin:       user.IsAdmin,
		EmailVerified: user.EmailVerified,
		Password:      user.Password,
		UID:           user.UID,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
		LastLogin:     user.LastLogin,
	}

	id, err := insertedID(r.coll.InsertOne(ctx, doc))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = id
	return doc.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, email string, patch domain.UserPatch, at time.Time) (*domain.User, error) {
	set := bson.M{"updatedAt": at}
	setIf(set, "name", patch.Name)
	setIf(set, "photoURL", patch.PhotoURL)
	setIf(set, "phone", patch.Phone)
	setIf(set, "address", patch.Address)
	setIf(set, "role", patch.Role)
	setIf(set, "password", patch.Password)
	setIf(set, "uid", patch.UID)
	if patch.EmailVerified != nil {
		set["emailVerified"] = *patch.EmailVerified
	}
	if patch.LastLogin != nil {
		set["lastLogin"] = patch.LastLogin.UTC()
	}

	return r.findOneAndSet(ctx, bson.M{"email": email}, set)
}

func (r *UserRepository) SetAdmin(ctx context.Context, id string, isAdmin bool, at time.Time) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOneAndSet(ctx, bson.M{"_id": oid}, bson.M{"isAdmin": isAdmin, "updatedAt": at})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) findOneAndSet(ctx context.Context, filter, set bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, afterUpdate()).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

func setIf(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}
