package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedItem marks a record from the collaborator that is not Item-shaped.
	ErrMalformedItem = errors.New("malformed item")
	// ErrMalformedDraft marks a draft record with missing, mistyped or unknown fields.
	ErrMalformedDraft = errors.New("malformed draft")
	// ErrEmptyName is returned for drafts without a name.
	ErrEmptyName = errors.New("name cannot be empty")
)

// Item is a record owned by the remote collaborator.
// ID is assigned remotely and never set by the client.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available"`
}

// Draft is the body of a create request.
type Draft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available"`
}

// Validate checks a draft before it is sent.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

var null = []byte("null")

// UnmarshalJSON decodes an item strictly: id, name, price and is_available
// must be present with the right JSON type. A missing or null description
// decodes as "".
func (it *Item) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedItem, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: null record", ErrMalformedItem)
	}

	var out Item
	if err := field(raw, "id", &out.ID); err != nil {
		return err
	}
	if err := field(raw, "name", &out.Name); err != nil {
		return err
	}
	if err := field(raw, "price", &out.Price); err != nil {
		return err
	}
	if err := field(raw, "is_available", &out.IsAvailable); err != nil {
		return err
	}
	if v, ok := raw["description"]; ok && !bytes.Equal(bytes.TrimSpace(v), null) {
		if err := json.Unmarshal(v, &out.Description); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrMalformedItem, "description", err)
		}
	}

	*it = out
	return nil
}

func field(raw map[string]json.RawMessage, name string, dst any) error {
	return fieldOf(ErrMalformedItem, raw, name, dst)
}

func fieldOf(kind error, raw map[string]json.RawMessage, name string, dst any) error {
	v, ok := raw[name]
	if !ok {
		return fmt.Errorf("%w: missing field %q", kind, name)
	}
	if bytes.Equal(bytes.TrimSpace(v), null) {
		return fmt.Errorf("%w: field %q is null", kind, name)
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("%w: field %q: %v", kind, name, err)
	}
	return nil
}

// draftKeys are the fields a draft record may carry. "id" is accepted and
// dropped so an exported snapshot can be imported again.
var draftKeys = map[string]bool{
	"id": true, "name": true, "description": true, "price": true, "is_available": true,
}

// UnmarshalJSON decodes a draft strictly: name, price and is_available are
// required, description may be missing or null, and unknown fields are rejected.
func (d *Draft) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDraft, err)
	}
	if raw == nil {
		return fmt.Errorf("%w: null record", ErrMalformedDraft)
	}
	for k := range raw {
		if !draftKeys[k] {
			return fmt.Errorf("%w: unknown field %q", ErrMalformedDraft, k)
		}
	}

	var out Draft
	if err := fieldOf(ErrMalformedDraft, raw, "name", &out.Name); err != nil {
		return err
	}
	if err := fieldOf(ErrMalformedDraft, raw, "price", &out.Price); err != nil {
		return err
	}
	if err := fieldOf(ErrMalformedDraft, raw, "is_available", &out.IsAvailable); err != nil {
		return err
	}
	if v, ok := raw["description"]; ok && !bytes.Equal(bytes.TrimSpace(v), null) {
		if err := json.Unmarshal(v, &out.Description); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrMalformedDraft, "description", err)
		}
	}

	*d = out
	return nil
}

// DecodeItems parses a JSON array of items. A null body is rejected.
func DecodeItems(b []byte) ([]Item, error) {
	if bytes.Equal(bytes.TrimSpace(b), null) {
		return nil, fmt.Errorf("%w: expected array, got null", ErrMalformedItem)
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		if errors.Is(err, ErrMalformedItem) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedItem, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// DecodeItem parses a single item.
func DecodeItem(b []byte) (Item, error) {
	var it Item
	if err := json.Unmarshal(b, &it); err != nil {
		if errors.Is(err, ErrMalformedItem) {
			return Item{}, err
		}
		return Item{}, fmt.Errorf("%w: %v", ErrMalformedItem, err)
	}
	return it, nil
}
