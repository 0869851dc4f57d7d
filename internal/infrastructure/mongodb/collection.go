package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/users-api/pkg/paginate"
)

var _ paginate.Paginatable[bson.M] = (*Collection[bson.M])(nil)
var _ paginate.RelationResolver[bson.M] = (*Collection[bson.M])(nil)

// Relation describe una referencia poblable: el valor de LocalField (id o lista de ids)
// se busca en ForeignField de Target y se reemplaza por los documentos encontrados.
type Relation struct {
	LocalField   string
	ForeignField string // "_id" si vacío
	Target       *Collection[bson.M]
}

// Collection adapta *mongo.Collection al motor de paginación.
// T es el tipo al que se decodifica cada documento (bson.M o un struct con tags bson).
type Collection[T any] struct {
	coll      *mongo.Collection
	relations map[string]Relation
}

// NewCollection construye el adaptador sobre una colección.
func NewCollection[T any](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll, relations: map[string]Relation{}}
}

// WithRelation registra una relación poblable bajo name (primer segmento del token populate).
func (c *Collection[T]) WithRelation(name string, rel Relation) *Collection[T] {
	if rel.ForeignField == "" {
		rel.ForeignField = "_id"
	}
	c.relations[name] = rel
	return c
}

// CountMatching cuenta los documentos que cumplen el filtro.
func (c *Collection[T]) CountMatching(ctx context.Context, filter paginate.Filter) (int64, error) {
	return c.coll.CountDocuments(ctx, filterDoc(filter))
}

// FetchSlice devuelve el tramo ordenado, desplazado y acotado. Sin criterios de orden se ordena
// por _id, que en ObjectIDs sigue el orden de creación.
func (c *Collection[T]) FetchSlice(ctx context.Context, filter paginate.Filter, q paginate.SliceQuery) ([]T, error) {
	findOpts := options.Find().SetSort(sortDoc(q.Sort)).SetSkip(q.Skip).SetLimit(q.Limit)
	if len(q.Projection) > 0 {
		findOpts.SetProjection(projectionDoc(q.Projection))
	}

	cursor, err := c.coll.Find(ctx, filterDoc(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveRelation puebla path sobre doc. Las relaciones no registradas se ignoran.
func (c *Collection[T]) ResolveRelation(ctx context.Context, path paginate.Path, doc T) (T, error) {
	raw, err := toM(doc)
	if err != nil {
		return doc, err
	}
	if err := c.resolveOn(ctx, path, raw); err != nil {
		return doc, err
	}
	return fromM[T](raw)
}

func (c *Collection[T]) resolveOn(ctx context.Context, path paginate.Path, raw bson.M) error {
	if len(path) == 0 {
		return nil
	}
	rel, ok := c.relations[path[0]]
	if !ok || rel.Target == nil {
		return nil
	}
	ref, ok := raw[rel.LocalField]
	if !ok || ref == nil {
		return nil
	}

	refs, many := referenceList(ref)
	if len(refs) == 0 {
		return nil
	}

	cursor, err := rel.Target.coll.Find(ctx, bson.M{rel.ForeignField: bson.M{"$in": matchValues(refs)}})
	if err != nil {
		return err
	}
	var related []bson.M
	if err := cursor.All(ctx, &related); err != nil {
		return err
	}

	byKey := make(map[string]bson.M, len(related))
	for _, r := range related {
		if len(path) > 1 {
			if err := rel.Target.resolveOn(ctx, path[1:], r); err != nil {
				return err
			}
		}
		byKey[idKey(r[rel.ForeignField])] = r
	}

	if !many {
		if r, found := byKey[idKey(refs[0])]; found {
			raw[rel.LocalField] = r
		} else {
			raw[rel.LocalField] = nil
		}
		return nil
	}
	populated := bson.A{}
	for _, ref := range refs {
		if r, found := byKey[idKey(ref)]; found {
			populated = append(populated, r)
		}
	}
	raw[rel.LocalField] = populated
	return nil
}

func filterDoc(filter paginate.Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}

// sortDoc traduce los criterios; _id cierra siempre el orden (desempate por creación).
func sortDoc(keys []paginate.SortKey) bson.D {
	doc := make(bson.D, 0, len(keys)+1)
	hasID := false
	for _, k := range keys {
		field := k.Field
		if field == "id" {
			field = "_id"
		}
		hasID = hasID || field == "_id"
		doc = append(doc, bson.E{Key: field, Value: int(k.Direction)})
	}
	if !hasID {
		doc = append(doc, bson.E{Key: "_id", Value: 1})
	}
	return doc
}

// projectionDoc traduce la proyección. Si hay inclusiones, las exclusiones se descartan
// (salvo _id, el único campo que el servidor permite excluir junto a inclusiones).
func projectionDoc(p paginate.Projection) bson.M {
	inclusive := false
	for _, include := range p {
		if include == 1 {
			inclusive = true
			break
		}
	}
	doc := make(bson.M, len(p))
	for field, include := range p {
		if field == "id" {
			field = "_id"
		}
		if inclusive && include == 0 && field != "_id" {
			continue
		}
		doc[field] = include
	}
	return doc
}

// referenceList normaliza una referencia simple o un arreglo de referencias.
func referenceList(ref any) ([]any, bool) {
	switch v := ref.(type) {
	case bson.A:
		return []any(v), true
	case []any:
		return v, true
	case []primitive.ObjectID:
		out := make([]any, 0, len(v))
		for _, id := range v {
			out = append(out, id)
		}
		return out, true
	case []string:
		out := make([]any, 0, len(v))
		for _, id := range v {
			out = append(out, id)
		}
		return out, true
	default:
		return []any{ref}, false
	}
}

// matchValues añade la forma ObjectID de cada id hexadecimal guardado como string.
func matchValues(refs []any) bson.A {
	values := make(bson.A, 0, len(refs)*2)
	for _, ref := range refs {
		values = append(values, ref)
		if s, ok := ref.(string); ok {
			if oid, err := primitive.ObjectIDFromHex(s); err == nil {
				values = append(values, oid)
			}
		}
	}
	return values
}

func idKey(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(v)
	}
}

func toM[T any](doc T) (bson.M, error) {
	if m, ok := any(doc).(bson.M); ok {
		return m, nil
	}
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromM[T any](m bson.M) (T, error) {
	var out T
	if v, ok := any(m).(T); ok {
		return v, nil
	}
	data, err := bson.Marshal(m)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(data, &out)
	return out, err
}
