// Package validation junta errores de validación por campo y los responde
// en el header "errors" (no en el body), que es lo que consumen los clientes.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HeaderName es el header donde viaja el array de errores.
const HeaderName = "errors"

// MaxValueLen acota fieldValue: el valor viaja en un header y no puede
// crecer con el input del cliente.
const MaxValueLen = 64

// FieldError es un error puntual sobre un campo del objeto recibido.
type FieldError struct {
	ObjectName   string `json:"objectName"`
	FieldName    string `json:"fieldName"`
	FieldValue   string `json:"fieldValue"`
	ErrorMessage string `json:"errorMessage"`
}

// Error acumula FieldErrors de un objeto. Implementa error para poder
// propagarse desde el service y mapearse con errors.As en el handler.
type Error struct {
	Object string
	Fields []FieldError
}

func New(object string) *Error {
	return &Error{Object: object}
}

func (e *Error) Add(field, value, msg string) {
	e.Fields = append(e.Fields, FieldError{
		ObjectName:   e.Object,
		FieldName:    field,
		FieldValue:   truncate(value, MaxValueLen),
		ErrorMessage: msg,
	})
}

// AddAll incorpora los errores de validator. Cualquier otro error queda como
// error a nivel objeto (fieldName vacío).
func (e *Error) AddAll(err error) {
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		e.Add("", "", err.Error())
		return
	}
	for _, fe := range verrs {
		e.Add(fe.Field(), valueString(fe.Value()), message(fe))
	}
}

func (e *Error) Empty() bool { return e == nil || len(e.Fields) == 0 }

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.FieldName, f.ErrorMessage))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// JSON serializa los errores como array. Nunca devuelve "null".
func (e *Error) JSON() string {
	fields := []FieldError{}
	if e != nil && e.Fields != nil {
		fields = e.Fields
	}
	b, _ := json.Marshal(fields)
	return string(b)
}

// Write responde status con el header "errors" y sin body.
func Write(w http.ResponseWriter, status int, e *Error) {
	w.Header().Set(HeaderName, e.JSON())
	w.WriteHeader(status)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Usamos el nombre JSON del campo para que los mensajes coincidan con el wire.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct valida s según sus tags `validate`. Devuelve nil si es válido.
func Struct(object string, s any) *Error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	e := New(object)
	e.AddAll(err)
	return e
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Ptr || fe.Kind() == reflect.Struct {
			return "must not be null"
		}
		return "must not be empty"
	case "max":
		return fmt.Sprintf("size must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

// truncate corta s a limit runas y marca el corte con "...".
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func valueString(v any) string {
	if v == nil {
		return ""
	}
	// objetos embebidos no se reflejan en el mensaje
	if k := reflect.ValueOf(v).Kind(); k == reflect.Ptr || k == reflect.Struct {
		return ""
	}
	return fmt.Sprint(v)
}
