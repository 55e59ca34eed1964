package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

func TestSearchFilter(t *testing.T) {
	if f := searchFilter(""); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}

	f := searchFilter("a.b")
	re, ok := f["nombre"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex on nombre, got %v", f)
	}
	if re.Pattern != `a\.b` || re.Options != "i" {
		t.Fatalf("unexpected regex: %+v", re)
	}
}

func TestMongoUser_ToDomain(t *testing.T) {
	id := primitive.NewObjectID()
	rol := primitive.NewObjectID()
	u := mongoUser{ID: id, Nombre: "jperez", Activo: true, RememberMeToken: "tok", RolID: rol}.toDomain()

	if u.ID != id.Hex() || u.RolID != rol.Hex() || u.CurrentToken != "tok" || !u.Activo {
		t.Fatalf("unexpected user: %+v", u)
	}

	if u := (mongoUser{ID: id}).toDomain(); u.RolID != "" {
		t.Fatalf("expected empty role id, got %q", u.RolID)
	}
}

func TestModuleObjectIDs_SkipsMalformed(t *testing.T) {
	ok := primitive.NewObjectID()
	ids := moduleObjectIDs([]domain.Module{{ID: ok.Hex()}, {ID: "not-an-id"}})
	if len(ids) != 1 || ids[0] != ok {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestCatalogueOrder(t *testing.T) {
	want := bson.D{{Key: "posicion", Value: 1}, {Key: "nombre", Value: 1}}
	if len(catalogueOrder) != len(want) || catalogueOrder[0].Key != "posicion" || catalogueOrder[1].Key != "nombre" {
		t.Fatalf("unexpected order: %v", catalogueOrder)
	}
}

func TestSameNameFilter(t *testing.T) {
	exclude := primitive.NewObjectID()
	f := sameNameFilter("Usuarios (old)", exclude.Hex())

	re, ok := f["nombre"].(primitive.Regex)
	if !ok || re.Pattern != `^Usuarios \(old\)$` || re.Options != "i" {
		t.Fatalf("expected anchored case-insensitive regex, got %v", f["nombre"])
	}
	ne, ok := f["_id"].(bson.M)
	if !ok || ne["$ne"] != exclude {
		t.Fatalf("expected _id exclusion, got %v", f["_id"])
	}

	if f := sameNameFilter("x", ""); len(f) != 1 {
		t.Fatalf("expected no exclusion without id, got %v", f)
	}
}
