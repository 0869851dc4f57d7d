package paginate

import "strings"

// Valores por defecto cuando limit/page faltan o no son válidos.
const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// Direction sentido de ordenamiento (1 = ASC, -1 = DESC), mismo convenio que los drivers de documentos.
type Direction int

const (
	Asc  Direction = 1
	Desc Direction = -1
)

// Filter predicado opaco sobre los campos de una colección. El motor no lo interpreta,
// solo lo reenvía al conteo y a la consulta de la colección.
type Filter map[string]any

// Options opciones de consulta aceptadas por Paginate. Todos los campos son opcionales.
type Options struct {
	SortBy    string // "campo:asc,otro:desc"
	Limit     int    // <= 0 -> DefaultLimit
	Page      int    // <= 0 -> DefaultPage
	ProjectBy string // "campo,-otro"
	Populate  string // "relacion.subRelacion,otra"
}

// SortKey un criterio de ordenamiento.
type SortKey struct {
	Field     string
	Direction Direction
}

// Projection campo -> 1 (incluir) o 0 (excluir).
type Projection map[string]int

// Path ruta de relación a poblar, un segmento por nivel ("project.owner" -> [project owner]).
type Path []string

// String devuelve la ruta en notación de puntos.
func (p Path) String() string {
	return strings.Join(p, ".")
}

// ParseSort convierte "campo:dir,campo2:dir" en criterios ordenados.
// Una dirección omitida o distinta de "desc" se toma como ascendente; tokens sin campo se descartan.
// Devuelve nil si sortBy está vacío (orden natural de la colección).
func ParseSort(sortBy string) []SortKey {
	var keys []SortKey
	for _, token := range strings.Split(sortBy, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		field, order, _ := strings.Cut(token, ":")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dir := Asc
		if strings.EqualFold(strings.TrimSpace(order), "desc") {
			dir = Desc
		}
		keys = append(keys, SortKey{Field: field, Direction: dir})
	}
	return keys
}

// ParseProjection convierte "campo,-otro" en un mapa de inclusión/exclusión.
// Devuelve nil si no hay tokens.
func ParseProjection(projectBy string) Projection {
	var projection Projection
	for _, token := range strings.Split(projectBy, ",") {
		token = strings.TrimSpace(token)
		include := 1
		if strings.HasPrefix(token, "-") {
			include = 0
			token = strings.TrimSpace(token[1:])
		}
		if token == "" {
			continue
		}
		if projection == nil {
			projection = Projection{}
		}
		projection[token] = include
	}
	return projection
}

// ParsePopulate convierte "a.b,c" en rutas de relación.
func ParsePopulate(populate string) []Path {
	var paths []Path
	for _, token := range strings.Split(populate, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		var path Path
		for _, segment := range strings.Split(token, ".") {
			if segment = strings.TrimSpace(segment); segment != "" {
				path = append(path, segment)
			}
		}
		if len(path) > 0 {
			paths = append(paths, path)
		}
	}
	return paths
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// TotalPages ceil(total/limit); 0 si no hay resultados.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return int(pages)
}
