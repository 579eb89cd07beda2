package model

import (
	"encoding/json"
	"time"
)

// Order represents a single print order. Besides the known fields,
// clients may attach arbitrary extra fields (customer contact,
// description, material, address, ...); these are kept in Extra and
// flattened into the JSON object on marshal. Client-supplied values win
// over defaults for Status and AdminNotes; ID and CreatedAt are always
// server-owned.
type Order struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	Status     string    `json:"status"`
	AdminNotes string    `json:"adminNotes"`
	DeviceID   string    `json:"deviceId,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// DefaultStatus is assigned to newly created orders unless the client
// supplies its own.
const DefaultStatus = "pending"

type orderKnown struct {
	ID         *string    `json:"id"`
	CreatedAt  *time.Time `json:"createdAt"`
	Status     *string    `json:"status"`
	AdminNotes *string    `json:"adminNotes"`
	DeviceID   *string    `json:"deviceId"`
}

// UnmarshalJSON merges the incoming object into the order: known fields
// present in the payload replace the current values, everything else is
// collected into Extra. Fields absent from the payload are left alone,
// which makes the same code path serve both creation and partial update.
func (o *Order) UnmarshalJSON(data []byte) error {
	var known orderKnown
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	if known.ID != nil {
		o.ID = *known.ID
	}
	if known.CreatedAt != nil {
		o.CreatedAt = *known.CreatedAt
	}
	if known.Status != nil {
		o.Status = *known.Status
	}
	if known.AdminNotes != nil {
		o.AdminNotes = *known.AdminNotes
	}
	if known.DeviceID != nil {
		o.DeviceID = *known.DeviceID
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, value := range fields {
		switch key {
		case "id", "createdAt", "status", "adminNotes", "deviceId":
			continue
		}
		if o.Extra == nil {
			o.Extra = make(map[string]json.RawMessage)
		}
		o.Extra[key] = value
	}
	return nil
}

// MarshalJSON flattens Extra alongside the known fields into one object.
func (o Order) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(o.Extra)+5)
	for key, value := range o.Extra {
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
	if err := put("id", o.ID); err != nil {
		return nil, err
	}
	if err := put("createdAt", o.CreatedAt); err != nil {
		return nil, err
	}
	if err := put("status", o.Status); err != nil {
		return nil, err
	}
	if err := put("adminNotes", o.AdminNotes); err != nil {
		return nil, err
	}
	if o.DeviceID != "" {
		if err := put("deviceId", o.DeviceID); err != nil {
			return nil, err
		}
	}
	return json.Marshal(fields)
}
