package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/pkg/paginate"
)

// hiddenFields campos internos que nunca salen en la respuesta.
var hiddenFields = map[string]struct{}{"__v": {}}

// ToJSON normaliza un documento para la respuesta: _id -> id (hex), fechas a time.Time,
// subdocumentos y arreglos recursivamente.
func ToJSON(doc bson.M) entity.Document {
	out := make(entity.Document, len(doc))
	for k, v := range doc {
		if _, hidden := hiddenFields[k]; hidden {
			continue
		}
		if k == "_id" {
			k = "id"
		}
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case bson.M:
		return ToJSON(val)
	case map[string]any:
		return ToJSON(bson.M(val))
	case bson.D:
		return ToJSON(val.Map())
	case bson.A:
		return normalizeList(val)
	case []any:
		return normalizeList(val)
	default:
		return v
	}
}

func normalizeList(list []any) []any {
	out := make([]any, 0, len(list))
	for _, item := range list {
		out = append(out, normalize(item))
	}
	return out
}

// toDocuments convierte el sobre de documentos crudos al sobre de documentos normalizados.
func toDocuments(res *paginate.QueryResult[bson.M]) *paginate.QueryResult[entity.Document] {
	docs := make([]entity.Document, 0, len(res.Results))
	for _, d := range res.Results {
		docs = append(docs, ToJSON(d))
	}
	return &paginate.QueryResult[entity.Document]{
		Results:      docs,
		Page:         res.Page,
		Limit:        res.Limit,
		TotalPages:   res.TotalPages,
		TotalResults: res.TotalResults,
	}
}
