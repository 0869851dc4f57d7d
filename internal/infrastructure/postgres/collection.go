package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/pkg/paginate"
)

var _ paginate.Paginatable[entity.Document] = (*Collection)(nil)
var _ paginate.RelationResolver[entity.Document] = (*Collection)(nil)

// fieldPattern nombres de campo aceptados en ORDER BY ("a" o "a.b").
var fieldPattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)

// Relation referencia poblable: el id (o ids) en LocalField se busca en Target.
type Relation struct {
	LocalField string
	Target     *Collection
}

// Collection adapta una tabla (id, seq, doc JSONB) al motor de paginación.
// El filtro se evalúa por contención (doc @> filtro), salvo "id" que compara la columna.
type Collection struct {
	q         Querier
	table     string
	relations map[string]Relation
}

// NewCollection construye el adaptador sobre table.
func NewCollection(q Querier, table string) *Collection {
	return &Collection{q: q, table: table, relations: map[string]Relation{}}
}

// WithRelation registra una relación poblable bajo name.
func (c *Collection) WithRelation(name string, rel Relation) *Collection {
	c.relations[name] = rel
	return c
}

// CountMatching cuenta los documentos que cumplen el filtro.
func (c *Collection) CountMatching(ctx context.Context, filter paginate.Filter) (int64, error) {
	where, args := buildWhere(filter)
	var n int64
	err := c.q.QueryRow(ctx, fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, c.table, where), args...).Scan(&n)
	return n, err
}

// FetchSlice devuelve el tramo pedido; sin criterios de orden usa el orden de inserción (seq).
// La proyección se aplica sobre los documentos ya leídos.
func (c *Collection) FetchSlice(ctx context.Context, filter paginate.Filter, q paginate.SliceQuery) ([]entity.Document, error) {
	where, args := buildWhere(filter)
	args = append(args, q.Skip, q.Limit)
	sql := fmt.Sprintf(`SELECT id, doc FROM %s WHERE %s ORDER BY %s OFFSET $%d LIMIT $%d`,
		c.table, where, orderBy(q.Sort), len(args)-1, len(args))

	docs, err := c.query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i] = applyProjection(docs[i], q.Projection)
	}
	return docs, nil
}

// ResolveRelation puebla path sobre doc. Las relaciones no registradas se ignoran.
func (c *Collection) ResolveRelation(ctx context.Context, path paginate.Path, doc entity.Document) (entity.Document, error) {
	if err := c.resolveOn(ctx, path, doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func (c *Collection) resolveOn(ctx context.Context, path paginate.Path, doc entity.Document) error {
	if len(path) == 0 {
		return nil
	}
	rel, ok := c.relations[path[0]]
	if !ok || rel.Target == nil {
		return nil
	}
	ids, many := referenceIDs(doc[rel.LocalField])
	if len(ids) == 0 {
		return nil
	}

	related, err := rel.Target.query(ctx,
		fmt.Sprintf(`SELECT id, doc FROM %s WHERE id = ANY($1)`, rel.Target.table), ids)
	if err != nil {
		return err
	}
	if len(path) > 1 {
		for _, r := range related {
			if err := rel.Target.resolveOn(ctx, path[1:], r); err != nil {
				return err
			}
		}
	}
	attachRelated(doc, rel.LocalField, ids, many, related)
	return nil
}

// attachRelated reemplaza doc[field] por los documentos relacionados: una referencia simple
// sin destino queda en nil; una lista conserva el orden de ids y omite los que no existen.
func attachRelated(doc entity.Document, field string, ids []string, many bool, related []entity.Document) {
	byID := make(map[string]entity.Document, len(related))
	for _, r := range related {
		id, _ := r["id"].(string)
		byID[id] = r
	}

	if !many {
		if r, found := byID[ids[0]]; found {
			doc[field] = r
		} else {
			doc[field] = nil
		}
		return
	}
	populated := make([]any, 0, len(ids))
	for _, id := range ids {
		if r, found := byID[id]; found {
			populated = append(populated, r)
		}
	}
	doc[field] = populated
}

func (c *Collection) query(ctx context.Context, sql string, args ...any) ([]entity.Document, error) {
	rows, err := c.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []entity.Document
	for rows.Next() {
		var (
			id  string
			doc map[string]any
		)
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}
		if doc == nil {
			doc = map[string]any{}
		}
		doc["id"] = id
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// buildWhere traduce el filtro a SQL con placeholders posicionales.
func buildWhere(filter paginate.Filter) (string, []any) {
	var (
		clauses []string
		args    []any
		rest    = map[string]any{}
	)
	for k, v := range filter {
		if k == "id" {
			args = append(args, v)
			clauses = append(clauses, fmt.Sprintf("id = $%d", len(args)))
			continue
		}
		rest[k] = jsonValue(v)
	}
	if len(rest) > 0 {
		args = append(args, rest)
		clauses = append(clauses, fmt.Sprintf("doc @> $%d::jsonb", len(args)))
	}
	if len(clauses) == 0 {
		return "TRUE", nil
	}
	return strings.Join(clauses, " AND "), args
}

// orderBy traduce los criterios a ORDER BY; seq cierra siempre el orden (desempate por inserción).
// Los campos con caracteres no permitidos se descartan.
func orderBy(keys []paginate.SortKey) string {
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		if !fieldPattern.MatchString(k.Field) {
			continue
		}
		expr := "id"
		if k.Field != "id" {
			expr = fmt.Sprintf("doc #> '{%s}'", strings.ReplaceAll(k.Field, ".", ","))
		}
		dir := "ASC"
		if k.Direction == paginate.Desc {
			dir = "DESC"
		}
		parts = append(parts, expr+" "+dir)
	}
	parts = append(parts, "seq ASC")
	return strings.Join(parts, ", ")
}

// applyProjection con algún campo incluido devuelve solo esos campos (más id);
// si todos son exclusiones, elimina esos campos.
func applyProjection(doc entity.Document, p paginate.Projection) entity.Document {
	if len(p) == 0 {
		return doc
	}
	inclusive := false
	for _, v := range p {
		if v == 1 {
			inclusive = true
			break
		}
	}
	if !inclusive {
		for field := range p {
			delete(doc, field)
		}
		return doc
	}
	out := entity.Document{"id": doc["id"]}
	for field, v := range p {
		if v != 1 {
			continue
		}
		if val, ok := doc[field]; ok {
			out[field] = val
		}
	}
	if p["id"] == 0 {
		if _, explicit := p["id"]; explicit {
			delete(out, "id")
		}
	}
	return out
}

func referenceIDs(ref any) ([]string, bool) {
	switch v := ref.(type) {
	case string:
		if v == "" {
			return nil, false
		}
		return []string{v}, false
	case []string:
		return v, true
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				ids = append(ids, s)
			}
		}
		return ids, true
	default:
		return nil, false
	}
}
