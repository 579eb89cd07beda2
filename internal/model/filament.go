package model

import "encoding/json"

// Filament represents one spool type in the inventory. Like Order it
// carries an open set of extra client-supplied fields next to the known
// ones. Filaments and orders have independent lifecycles; an order
// references material by free-text name only.
type Filament struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	ColorHex string `json:"colorHex"`
	Material string `json:"material"`
	InStock  bool   `json:"inStock"`

	Extra map[string]json.RawMessage `json:"-"`
}

type filamentKnown struct {
	ID       *string `json:"id"`
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	ColorHex *string `json:"colorHex"`
	Material *string `json:"material"`
	InStock  *bool   `json:"inStock"`
}

// UnmarshalJSON merges the payload into the filament, same contract as
// Order.UnmarshalJSON.
func (f *Filament) UnmarshalJSON(data []byte) error {
	var known filamentKnown
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	if known.ID != nil {
		f.ID = *known.ID
	}
	if known.Name != nil {
		f.Name = *known.Name
	}
	if known.Color != nil {
		f.Color = *known.Color
	}
	if known.ColorHex != nil {
		f.ColorHex = *known.ColorHex
	}
	if known.Material != nil {
		f.Material = *known.Material
	}
	if known.InStock != nil {
		f.InStock = *known.InStock
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, value := range fields {
		switch key {
		case "id", "name", "color", "colorHex", "material", "inStock":
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]json.RawMessage)
		}
		f.Extra[key] = value
	}
	return nil
}

// MarshalJSON flattens Extra alongside the known fields.
func (f Filament) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(f.Extra)+6)
	for key, value := range f.Extra {
		fields[key] = value
	}

	put := func(key string, value any) error {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		fields[key] = raw
		return nil
	}
	if err := put("id", f.ID); err != nil {
		return nil, err
	}
	if err := put("name", f.Name); err != nil {
		return nil, err
	}
	if err := put("color", f.Color); err != nil {
		return nil, err
	}
	if err := put("colorHex", f.ColorHex); err != nil {
		return nil, err
	}
	if err := put("material", f.Material); err != nil {
		return nil, err
	}
	if err := put("inStock", f.InStock); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}
