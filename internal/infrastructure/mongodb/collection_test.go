package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/pkg/paginate"
)

func TestSortDoc_SinCriteriosOrdenaPorID(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, sortDoc(nil))
}

func TestSortDoc_RespetaOrdenYDireccion(t *testing.T) {
	got := sortDoc(paginate.ParseSort("age:desc,email"))
	assert.Equal(t, bson.D{{Key: "age", Value: -1}, {Key: "email", Value: 1}, {Key: "_id", Value: 1}}, got)
}

func TestSortDoc_IDExplicitoNoSeDuplica(t *testing.T) {
	got := sortDoc(paginate.ParseSort("id:desc"))
	assert.Equal(t, bson.D{{Key: "_id", Value: -1}}, got)
}

func TestProjectionDoc_InclusionGana(t *testing.T) {
	got := projectionDoc(paginate.ParseProjection("firstName,-age"))
	assert.Equal(t, bson.M{"firstName": 1}, got)
}

func TestProjectionDoc_SoloExclusiones(t *testing.T) {
	got := projectionDoc(paginate.ParseProjection("-age,-email"))
	assert.Equal(t, bson.M{"age": 0, "email": 0}, got)
}

func TestProjectionDoc_InclusionConIDExcluido(t *testing.T) {
	got := projectionDoc(paginate.ParseProjection("name,-id,-age"))
	assert.Equal(t, bson.M{"name": 1, "_id": 0}, got)
}

func TestFilterDoc_NilEsVacio(t *testing.T) {
	assert.Equal(t, bson.M{}, filterDoc(nil))
	assert.Equal(t, bson.M{"email": "a@b.co"}, filterDoc(paginate.Filter{"email": "a@b.co"}))
}

func TestTranslateFilter_IDaObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got := translateFilter(paginate.Filter{"id": oid.Hex(), "email": "x@y.z"})
	assert.Equal(t, paginate.Filter{"_id": oid, "email": "x@y.z"}, got)
	assert.Nil(t, translateFilter(nil))
}

func TestReferenceList(t *testing.T) {
	oid := primitive.NewObjectID()

	refs, many := referenceList(oid)
	assert.False(t, many)
	assert.Equal(t, []any{oid}, refs)

	refs, many = referenceList(bson.A{"a", "b"})
	assert.True(t, many)
	assert.Equal(t, []any{"a", "b"}, refs)

	refs, many = referenceList([]primitive.ObjectID{oid})
	assert.True(t, many)
	assert.Equal(t, []any{oid}, refs)
}

func TestMatchValues_AgregaObjectIDParaHex(t *testing.T) {
	oid := primitive.NewObjectID()
	got := matchValues([]any{oid.Hex(), "no-es-hex", oid})
	assert.Equal(t, bson.A{oid.Hex(), oid, "no-es-hex", oid}, got)
	assert.Equal(t, idKey(oid), idKey(oid.Hex()))
}

func TestToJSON_Normaliza(t *testing.T) {
	oid := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	got := ToJSON(bson.M{
		"_id":     oid,
		"__v":     0,
		"name":    "Project One",
		"created": primitive.NewDateTimeFromTime(ts),
		"owner":   bson.M{"_id": owner, "email": "a@b.co"},
		"tags":    bson.A{owner, "x"},
	})

	assert.Equal(t, entity.Document{
		"id":      oid.Hex(),
		"name":    "Project One",
		"created": ts,
		"owner":   map[string]any{"id": owner.Hex(), "email": "a@b.co"},
		"tags":    []any{owner.Hex(), "x"},
	}, got)
}

func TestToMFromM_RoundTripStruct(t *testing.T) {
	type doc struct {
		Name  string `bson:"name"`
		Owner any    `bson:"owner"`
	}
	m, err := toM(doc{Name: "p", Owner: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", m["owner"])

	m["owner"] = bson.M{"email": "a@b.co"}
	back, err := fromM[doc](m)
	require.NoError(t, err)
	assert.Equal(t, "p", back.Name)
	assert.NotNil(t, back.Owner)
}

func TestToM_BsonMSinCopia(t *testing.T) {
	in := bson.M{"a": 1}
	m, err := toM(in)
	require.NoError(t, err)
	m["b"] = 2
	assert.Equal(t, 2, in["b"])
}

func TestParseID_Invalido(t *testing.T) {
	_, err := parseID("123")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestToDocuments_ConservaMetadatos(t *testing.T) {
	res := toDocuments(&paginate.QueryResult[bson.M]{
		Results:      []bson.M{{"_id": "x"}},
		Page:         2,
		Limit:        1,
		TotalPages:   3,
		TotalResults: 3,
	})
	assert.Equal(t, []entity.Document{{"id": "x"}}, res.Results)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, int64(3), res.TotalResults)
}
