package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout es yyyy/MM/dd, el mismo formato que usan las visitas.
const DateLayout = "2006/01/02"

var ErrMalformed = errors.New("malformed pet")

type wireType struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

type wireOwner struct {
	ID        int    `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
}

type wirePet struct {
	ID        int        `json:"id,omitempty"`
	Name      string     `json:"name"`
	BirthDate string     `json:"birthDate,omitempty"`
	Type      *wireType  `json:"type,omitempty"`
	Owner     *wireOwner `json:"owner,omitempty"`
}

// Encode devuelve el objeto JSON de la mascota. nil => null.
func Encode(p *Pet) (json.RawMessage, error) {
	if p == nil {
		return json.RawMessage("null"), nil
	}

	w := wirePet{
		ID:   p.ID,
		Name: p.Name,
	}
	if p.BirthDate != nil {
		w.BirthDate = p.BirthDate.Format(DateLayout)
	}
	if p.Type != nil {
		w.Type = &wireType{ID: p.Type.ID, Name: p.Type.Name}
	}
	if p.Owner != nil {
		w.Owner = &wireOwner{
			ID:        p.Owner.ID,
			FirstName: p.Owner.FirstName,
			LastName:  p.Owner.LastName,
			Address:   p.Owner.Address,
			City:      p.Owner.City,
			Telephone: p.Owner.Telephone,
		}
	}

	b, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("pets: encode: %w", err)
	}
	return b, nil
}

// Decode parsea el objeto embebido. Ausente o null => (nil, nil).
func Decode(raw json.RawMessage) (*Pet, error) {
	if isNull(raw) {
		return nil, nil
	}

	var w wirePet
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	p := &Pet{
		ID:   w.ID,
		Name: w.Name,
	}
	if w.BirthDate != "" {
		t, err := time.ParseInLocation(DateLayout, w.BirthDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: birthDate %q must be yyyy/MM/dd", ErrMalformed, w.BirthDate)
		}
		p.BirthDate = &t
	}
	if w.Type != nil {
		p.Type = &PetType{ID: w.Type.ID, Name: w.Type.Name}
	}
	if w.Owner != nil {
		p.Owner = &Owner{
			ID:        w.Owner.ID,
			FirstName: w.Owner.FirstName,
			LastName:  w.Owner.LastName,
			Address:   w.Owner.Address,
			City:      w.Owner.City,
			Telephone: w.Owner.Telephone,
		}
	}
	return p, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
