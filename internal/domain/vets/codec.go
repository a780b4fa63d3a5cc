package vets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformed = errors.New("malformed vet")

type wireSpecialty struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type wireVet struct {
	ID          int             `json:"id,omitempty"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Specialties []wireSpecialty `json:"specialties"`
}

// Encode devuelve el objeto JSON del vet. nil => null.
// specialties siempre sale como array (vacío si no tiene).
func Encode(v *Vet) (json.RawMessage, error) {
	if v == nil {
		return json.RawMessage("null"), nil
	}

	w := wireVet{
		ID:          v.ID,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Specialties: make([]wireSpecialty, 0, len(v.Specialties)),
	}
	for _, s := range v.Specialties {
		w.Specialties = append(w.Specialties, wireSpecialty{ID: s.ID, Name: s.Name})
	}

	b, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("vets: encode: %w", err)
	}
	return b, nil
}

// Decode parsea el objeto embebido. Ausente o null => (nil, nil).
func Decode(raw json.RawMessage) (*Vet, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var w wireVet
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	v := &Vet{
		ID:        w.ID,
		FirstName: w.FirstName,
		LastName:  w.LastName,
	}
	if len(w.Specialties) > 0 {
		v.Specialties = make([]Specialty, 0, len(w.Specialties))
		for _, s := range w.Specialties {
			v.Specialties = append(v.Specialties, Specialty{ID: s.ID, Name: s.Name})
		}
	}
	return v, nil
}
