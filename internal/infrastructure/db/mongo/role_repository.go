package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

type RoleRepository struct {
	col     *mongo.Collection
	modules *ModuleRepository
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		col:     db.Collection(collectionRoles),
		modules: NewModuleRepository(db),
	}
}

type mongoRole struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty"`
	Nombre   string               `bson:"nombre"`
	Posicion int                  `bson:"posicion"`
	Modulos  []primitive.ObjectID `bson:"modulos"`
}

func (mr mongoRole) toDomain() *domain.Role {
	return &domain.Role{ID: mr.ID.Hex(), Nombre: mr.Nombre, Posicion: mr.Posicion}
}

// FindWithModules loads the role and resolves its module references.
func (r *RoleRepository) FindWithModules(ctx context.Context, id string) (*domain.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	findCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRole
	if err := r.col.FindOne(findCtx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	role := mr.toDomain()
	role.Modulos, err = r.modules.findByObjectIDs(ctx, mr.Modulos)
	if err != nil {
		return nil, err
	}
	return role, nil
}

// List returns a page of roles whose name contains filter.Buscar, ignoring case.
func (r *RoleRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Role, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := searchFilter(filter.Buscar)
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	opts := options.Find().
		SetSort(catalogueOrder).
		SetSkip(filter.Skip()).
		SetLimit(int64(filter.PorPagina))
	roles, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

func (r *RoleRepository) ListAll(ctx context.Context) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{}, options.Find().SetSort(catalogueOrder).SetProjection(bson.M{"nombre": 1, "posicion": 1}))
}

func (r *RoleRepository) ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, sameNameFilter(nombre, excludeID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count roles: %w", err)
	}
	return n > 0, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRole{Nombre: role.Nombre, Posicion: role.Posicion, Modulos: moduleObjectIDs(role.Modulos)}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRole
		}
		return fmt.Errorf("insert role: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		role.ID = oid.Hex()
	}
	return nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	oid, err := primitive.ObjectIDFromHex(role.ID)
	if err != nil {
		return domain.ErrRoleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"nombre":   role.Nombre,
		"posicion": role.Posicion,
		"modulos":  moduleObjectIDs(role.Modulos),
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRole
		}
		return fmt.Errorf("update role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) IDsWithModule(ctx context.Context, moduleID string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(moduleID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	roles, err := r.find(ctx, bson.M{"modulos": oid}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID)
	}
	return ids, nil
}

func (r *RoleRepository) PullModule(ctx context.Context, moduleID string) error {
	oid, err := primitive.ObjectIDFromHex(moduleID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.UpdateMany(ctx, bson.M{"modulos": oid}, bson.M{"$pull": bson.M{"modulos": oid}}); err != nil {
		return fmt.Errorf("pull module from roles: %w", err)
	}
	return nil
}

func (r *RoleRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*domain.Role, error) {
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRole
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	roles := make([]*domain.Role, 0, len(docs))
	for _, d := range docs {
		roles = append(roles, d.toDomain())
	}
	return roles, nil
}

func moduleObjectIDs(modules []domain.Module) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(modules))
	for _, m := range modules {
		if oid, err := primitive.ObjectIDFromHex(m.ID); err == nil {
			ids = append(ids, oid)
		}
	}
	return ids
}
