package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/idilsaglam/items/internal/model"
)

// JSON files for scripted use: drafts to import, snapshots to export.
// Nothing here is read back as a cache.

// ErrNoDrafts is returned for a drafts file holding an empty array.
var ErrNoDrafts = errors.New("no drafts in file")

// LoadDrafts reads a JSON array of drafts. Each record must carry name, price
// and is_available with the right types and no unknown fields; names must not be blank.
func LoadDrafts(path string) ([]model.Draft, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var drafts []model.Draft
	if err := json.Unmarshal(b, &drafts); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrNoDrafts
	}
	for i, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("draft %d: %w", i+1, err)
		}
	}
	return drafts, nil
}

// SaveItems writes a snapshot of the collection, indented.
func SaveItems(path string, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
