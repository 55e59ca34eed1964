package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
)

// catalogueOrder is the display order of roles and modules.
var catalogueOrder = bson.D{{Key: "posicion", Value: 1}, {Key: "nombre", Value: 1}}

type ModuleRepository struct {
	col *mongo.Collection
}

func NewModuleRepository(db *mongo.Database) *ModuleRepository {
	return &ModuleRepository{col: db.Collection(collectionModules)}
}

type mongoModule struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Nombre   string             `bson:"nombre"`
	Posicion int                `bson:"posicion"`
}

func (mm mongoModule) toDomain() domain.Module {
	return domain.Module{ID: mm.ID.Hex(), Nombre: mm.Nombre, Posicion: mm.Posicion}
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*domain.Module, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrModuleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoModule
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrModuleNotFound
		}
		return nil, fmt.Errorf("find module: %w", err)
	}
	m := mm.toDomain()
	return &m, nil
}

func (r *ModuleRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Module, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := searchFilter(filter.Buscar)
	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count modules: %w", err)
	}

	opts := options.Find().
		SetSort(catalogueOrder).
		SetSkip(filter.Skip()).
		SetLimit(int64(filter.PorPagina))
	docs, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	modules := make([]*domain.Module, 0, len(docs))
	for i := range docs {
		modules = append(modules, &docs[i])
	}
	return modules, total, nil
}

func (r *ModuleRepository) ListAll(ctx context.Context) ([]*domain.Module, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs, err := r.find(ctx, bson.M{}, options.Find().SetSort(catalogueOrder))
	if err != nil {
		return nil, err
	}
	modules := make([]*domain.Module, 0, len(docs))
	for i := range docs {
		modules = append(modules, &docs[i])
	}
	return modules, nil
}

// FindByIDs returns the modules among ids that exist. Malformed ids are
// skipped, so callers compare lengths to detect unknown references.
func (r *ModuleRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Module, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return r.findByObjectIDs(ctx, oids)
}

func (r *ModuleRepository) findByObjectIDs(ctx context.Context, oids []primitive.ObjectID) ([]domain.Module, error) {
	if len(oids) == 0 {
		return []domain.Module{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetSort(catalogueOrder))
}

func (r *ModuleRepository) ExistsByNombre(ctx context.Context, nombre, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, sameNameFilter(nombre, excludeID), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count modules: %w", err)
	}
	return n > 0, nil
}

func (r *ModuleRepository) Create(ctx context.Context, module *domain.Module) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoModule{Nombre: module.Nombre, Posicion: module.Posicion})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateModule
		}
		return fmt.Errorf("insert module: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		module.ID = oid.Hex()
	}
	return nil
}

func (r *ModuleRepository) Update(ctx context.Context, module *domain.Module) error {
	oid, err := primitive.ObjectIDFromHex(module.ID)
	if err != nil {
		return domain.ErrModuleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"nombre":   module.Nombre,
		"posicion": module.Posicion,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateModule
		}
		return fmt.Errorf("update module: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrModuleNotFound
	}
	return nil
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrModuleNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrModuleNotFound
	}
	return nil
}

func (r *ModuleRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]domain.Module, error) {
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find modules: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoModule
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode modules: %w", err)
	}

	modules := make([]domain.Module, 0, len(docs))
	for _, d := range docs {
		modules = append(modules, d.toDomain())
	}
	return modules, nil
}

// searchFilter matches names containing term, ignoring case. An empty term
// matches everything.
func searchFilter(term string) bson.M {
	if term == "" {
		return bson.M{}
	}
	return bson.M{"nombre": primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}}
}

// sameNameFilter matches documents whose name equals nombre ignoring case,
// other than excludeID.
func sameNameFilter(nombre, excludeID string) bson.M {
	query := bson.M{"nombre": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(nombre) + "$", Options: "i"}}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			query["_id"] = bson.M{"$ne": oid}
		}
	}
	return query
}
