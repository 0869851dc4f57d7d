package postgres

import (
	"encoding/json"
	"time"
)

// timestampLayout ancho fijo (milisegundos, UTC) para que el orden de texto en JSONB
// coincida con el orden temporal.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// timestamp fecha serializada en JSONB con timestampLayout.
type timestamp time.Time

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).UTC().Format(timestampLayout))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = timestamp(parsed.UTC())
	return nil
}

// jsonValue convierte los time.Time de un filtro a timestamp para que la contención
// compare con el mismo texto que se guardó.
func jsonValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return timestamp(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return timestamp(*t)
	}
	return v
}
