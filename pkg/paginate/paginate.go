// Package paginate implementa el motor de paginación genérico: a partir de un filtro y de
// las opciones de consulta (sortBy, limit, page, projectBy, populate) devuelve una página
// acotada y determinista con sus metadatos, sobre cualquier colección que sepa contar y
// devolver un tramo ordenado.
package paginate

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// populateWorkers máximo de documentos cuyas relaciones se resuelven en paralelo.
const populateWorkers = 4

// SliceQuery parámetros de la consulta acotada que recibe la colección.
// Sort vacío significa orden natural (inserción/creación) de la colección.
type SliceQuery struct {
	Sort       []SortKey
	Skip       int64
	Limit      int64
	Projection Projection
}

// Paginatable es la capacidad mínima que necesita el motor de una colección.
type Paginatable[T any] interface {
	CountMatching(ctx context.Context, filter Filter) (int64, error)
	FetchSlice(ctx context.Context, filter Filter, q SliceQuery) ([]T, error)
}

// RelationResolver capacidad opcional: sustituye en doc la referencia indicada por path
// por el documento (o documentos) relacionado y devuelve el documento resultante.
type RelationResolver[T any] interface {
	ResolveRelation(ctx context.Context, path Path, doc T) (T, error)
}

// QueryResult sobre de respuesta de un listado paginado (contrato JSON de los listados).
type QueryResult[T any] struct {
	Results      []T   `json:"results"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}

// Paginate cuenta los documentos que cumplen filter, trae la página pedida en opts y,
// si la colección lo soporta, puebla las relaciones solicitadas.
//
// Las opciones mal formadas nunca producen error: se normalizan a sus valores por defecto.
// Los errores de la colección se devuelven tal cual, sin envolver.
func Paginate[T any](ctx context.Context, filter Filter, opts Options, coll Paginatable[T]) (*QueryResult[T], error) {
	limit := positiveOr(opts.Limit, DefaultLimit)
	page := positiveOr(opts.Page, DefaultPage)
	q := SliceQuery{
		Sort:       ParseSort(opts.SortBy),
		Skip:       skipFor(page, limit),
		Limit:      int64(limit),
		Projection: ParseProjection(opts.ProjectBy),
	}

	// Conteo y página no dependen entre sí: sin snapshot común (consistencia eventual).
	var (
		total   int64
		results []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := coll.CountMatching(gctx, filter)
		total = n
		return err
	})
	g.Go(func() error {
		docs, err := coll.FetchSlice(gctx, filter, q)
		results = docs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if paths := ParsePopulate(opts.Populate); len(paths) > 0 && len(results) > 0 {
		if resolver, ok := coll.(RelationResolver[T]); ok {
			if err := populate(ctx, resolver, paths, results); err != nil {
				return nil, err
			}
		}
	}

	if results == nil {
		results = []T{}
	}
	return &QueryResult[T]{
		Results:      results,
		Page:         page,
		Limit:        limit,
		TotalPages:   TotalPages(total, limit),
		TotalResults: total,
	}, nil
}

// skipFor (page-1)*limit; satura en math.MaxInt64 en vez de desbordar (página vacía).
func skipFor(page, limit int) int64 {
	p, l := int64(page-1), int64(limit)
	if p > math.MaxInt64/l {
		return math.MaxInt64
	}
	return p * l
}

// populate resuelve cada ruta sobre cada documento; results se modifica en sitio.
func populate[T any](ctx context.Context, resolver RelationResolver[T], paths []Path, results []T) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(populateWorkers)
	for i := range results {
		g.Go(func() error {
			doc := results[i]
			for _, path := range paths {
				resolved, err := resolver.ResolveRelation(gctx, path, doc)
				if err != nil {
					return err
				}
				doc = resolved
			}
			results[i] = doc
			return nil
		})
	}
	return g.Wait()
}
