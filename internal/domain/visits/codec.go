package visits

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"pet-clinic-visits/internal/domain/pets"
	"pet-clinic-visits/internal/domain/vets"
)

// DateLayout es el patrón fijo yyyy/MM/dd del campo "date".
const DateLayout = "2006/01/02"

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrEmptyBody      = errors.New("request body is empty")
)

// Mensajes estables para el cliente. El error del parser queda solo en Err.
const (
	reasonMalformedJSON = "malformed JSON"
	reasonDateRequired  = "must not be null"
	reasonDateLayout    = "must match yyyy/MM/dd"
	reasonWrongType     = "has the wrong type"
)

// MalformedError describe qué campo no se pudo parsear. errors.Is(err, ErrMalformedInput) == true.
// Reason es lo que ve el cliente; Err es para logs.
type MalformedError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.Field, e.Err)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformedInput }

func (e *MalformedError) Unwrap() error { return e.Err }

type wireVisit struct {
	ID          int             `json:"id,omitempty"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Scheduled   bool            `json:"scheduled"`
	AdHoc       bool            `json:"adHoc"`
	IsPaid      bool            `json:"isPaid"`
	Pet         json.RawMessage `json:"pet"`
	Vet         json.RawMessage `json:"vet"`
}

// incomingVisit separa "date ausente" de "date vacío".
type incomingVisit struct {
	ID          int             `json:"id"`
	Date        *string         `json:"date"`
	Description string          `json:"description"`
	Scheduled   bool            `json:"scheduled"`
	AdHoc       bool            `json:"adHoc"`
	IsPaid      bool            `json:"isPaid"`
	Pet         json.RawMessage `json:"pet"`
	Vet         json.RawMessage `json:"vet"`
}

// Marshal serializa la visita al wire: date como yyyy/MM/dd, pet/vet embebidos.
func Marshal(v Visit) ([]byte, error) {
	w, err := toWire(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// MarshalList serializa un array de visitas (nunca "null").
func MarshalList(vs []Visit) ([]byte, error) {
	out := make([]wireVisit, 0, len(vs))
	for _, v := range vs {
		w, err := toWire(v)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return json.Marshal(out)
}

func toWire(v Visit) (wireVisit, error) {
	pet, err := pets.Encode(v.Pet)
	if err != nil {
		return wireVisit{}, err
	}
	vet, err := vets.Encode(v.Vet)
	if err != nil {
		return wireVisit{}, err
	}

	return wireVisit{
		ID:          v.ID,
		Date:        v.Date.Format(DateLayout),
		Description: v.Description,
		Scheduled:   v.Scheduled,
		AdHoc:       v.AdHoc,
		IsPaid:      v.Paid,
		Pet:         pet,
		Vet:         vet,
	}, nil
}

// Unmarshal parsea el wire. Cualquier problema de formato (JSON inválido,
// date ausente o fuera de patrón, pet/vet que no son objetos) devuelve un
// *MalformedError y no produce visita.
func Unmarshal(data []byte) (Visit, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Visit{}, ErrEmptyBody
	}

	var in incomingVisit
	if err := json.Unmarshal(trimmed, &in); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			return Visit{}, &MalformedError{Field: te.Field, Reason: typeReason(te.Field, te.Type), Err: err}
		}
		return Visit{}, &MalformedError{Field: "body", Reason: reasonMalformedJSON, Err: err}
	}

	if in.Date == nil {
		return Visit{}, &MalformedError{Field: "date", Reason: reasonDateRequired, Err: errors.New("date is required")}
	}
	date, err := time.ParseInLocation(DateLayout, *in.Date, time.UTC)
	if err != nil {
		return Visit{}, &MalformedError{Field: "date", Value: *in.Date, Reason: reasonDateLayout, Err: err}
	}

	pet, err := pets.Decode(in.Pet)
	if err != nil {
		return Visit{}, &MalformedError{Field: "pet", Reason: "must be a valid pet object", Err: err}
	}
	vet, err := vets.Decode(in.Vet)
	if err != nil {
		return Visit{}, &MalformedError{Field: "vet", Reason: "must be a valid vet object", Err: err}
	}

	v := Visit{
		Date:        date,
		Description: in.Description,
		Scheduled:   in.Scheduled,
		AdHoc:       in.AdHoc,
		Paid:        in.IsPaid,
		Pet:         pet,
		Vet:         vet,
	}
	// id 0 o ausente => sin asignar
	if in.ID != 0 {
		v.ID = in.ID
	}
	return v, nil
}

func typeReason(field string, t reflect.Type) string {
	if field == "date" {
		return reasonDateLayout
	}
	if t == nil {
		return reasonWrongType
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "must be a boolean"
	case reflect.String:
		return "must be a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "must be a number"
	default:
		return reasonWrongType
	}
}
