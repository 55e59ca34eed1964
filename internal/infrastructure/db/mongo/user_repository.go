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

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Nombre          string             `bson:"nombre"`
	Password        string             `bson:"password"`
	Activo          bool               `bson:"activo"`
	RememberMeToken string             `bson:"remember_me_token,omitempty"`
	RolID           primitive.ObjectID `bson:"rol_id,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (mu mongoUser) toDomain() *domain.User {
	u := &domain.User{
		ID:           mu.ID.Hex(),
		Nombre:       mu.Nombre,
		PasswordHash: mu.Password,
		Activo:       mu.Activo,
		CurrentToken: mu.RememberMeToken,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
	if !mu.RolID.IsZero() {
		u.RolID = mu.RolID.Hex()
	}
	return u
}

// FindBySession is an exact match on id, name and stored token. Inactive
// users never match.
func (r *UserRepository) FindBySession(ctx context.Context, id, nombre, token string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{
		"_id":               oid,
		"nombre":            nombre,
		"remember_me_token": token,
		"activo":            true,
	})
}

func (r *UserRepository) FindByNombre(ctx context.Context, nombre string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"nombre": nombre})
}

func (r *UserRepository) SetCurrentToken(ctx context.Context, id, token string) error {
	update := bson.M{
		"$set": bson.M{"remember_me_token": token, "updated_at": time.Now().UTC()},
	}
	if token == "" {
		update = bson.M{
			"$unset": bson.M{"remember_me_token": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		}
	}
	return r.updateByID(ctx, id, update)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{"password": passwordHash, "updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// List returns a page of users whose name contains filter.Buscar, ignoring
// case, ordered by name.
func (r *UserRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := searchFilter(filter.Buscar)
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "nombre", Value: 1}}).
		SetSkip(filter.Skip()).
		SetLimit(int64(filter.PorPagina))
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, total, nil
}

func (r *UserRepository) ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, sameNameFilter(nombre, excludeID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	rolID, err := primitive.ObjectIDFromHex(user.RolID)
	if err != nil {
		return domain.ErrUnknownRole
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoUser{
		Nombre:    user.Nombre,
		Password:  user.PasswordHash,
		Activo:    user.Activo,
		RolID:     rolID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	user.CreatedAt, user.UpdatedAt = now, now
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	rolID, err := primitive.ObjectIDFromHex(user.RolID)
	if err != nil {
		return domain.ErrUnknownRole
	}

	now := time.Now().UTC()
	set := bson.M{
		"nombre":     user.Nombre,
		"activo":     user.Activo,
		"rol_id":     rolID,
		"updated_at": now,
	}
	if user.PasswordHash != "" {
		set["password"] = user.PasswordHash
	}

	err = r.updateByID(ctx, user.ID, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateUser
	}
	if err == nil {
		user.UpdatedAt = now
	}
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
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

func (r *UserRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
