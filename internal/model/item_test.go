package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeItems(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []Item
		wantErr bool
	}{
		{
			name: "empty array",
			body: `[]`,
			want: []Item{},
		},
		{
			name: "full record",
			body: `[{"id":1,"name":"Lamp","description":"desk","price":12.5,"is_available":true}]`,
			want: []Item{{ID: 1, Name: "Lamp", Description: "desk", Price: 12.5, IsAvailable: true}},
		},
		{
			name: "missing description is empty",
			body: `[{"id":2,"name":"Cup","price":0,"is_available":false}]`,
			want: []Item{{ID: 2, Name: "Cup"}},
		},
		{
			name: "null description is empty",
			body: `[{"id":2,"name":"Cup","description":null,"price":3,"is_available":false}]`,
			want: []Item{{ID: 2, Name: "Cup", Price: 3}},
		},
		{
			name: "negative price is kept",
			body: `[{"id":3,"name":"Refund","description":"","price":-4,"is_available":true}]`,
			want: []Item{{ID: 3, Name: "Refund", Price: -4, IsAvailable: true}},
		},
		{
			name: "order preserved",
			body: `[{"id":9,"name":"b","price":1,"is_available":true},{"id":4,"name":"a","price":2,"is_available":true}]`,
			want: []Item{
				{ID: 9, Name: "b", Price: 1, IsAvailable: true},
				{ID: 4, Name: "a", Price: 2, IsAvailable: true},
			},
		},
		{name: "null body", body: `null`, wantErr: true},
		{name: "object body", body: `{"id":1}`, wantErr: true},
		{name: "null element", body: `[null]`, wantErr: true},
		{name: "missing id", body: `[{"name":"x","price":1,"is_available":true}]`, wantErr: true},
		{name: "fractional id", body: `[{"id":1.5,"name":"x","price":1,"is_available":true}]`, wantErr: true},
		{name: "string price", body: `[{"id":1,"name":"x","price":"1","is_available":true}]`, wantErr: true},
		{name: "null name", body: `[{"id":1,"name":null,"price":1,"is_available":true}]`, wantErr: true},
		{name: "numeric availability", body: `[{"id":1,"name":"x","price":1,"is_available":1}]`, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeItems([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedItem)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeItem(t *testing.T) {
	it, err := DecodeItem([]byte(`{"id":7,"name":"Item 1","description":"d","price":50,"is_available":true}`))
	require.NoError(t, err)
	assert.Equal(t, Item{ID: 7, Name: "Item 1", Description: "d", Price: 50, IsAvailable: true}, it)

	_, err = DecodeItem([]byte(`{"detail":"Item not found"}`))
	assert.ErrorIs(t, err, ErrMalformedItem)
}

func TestDraftJSONHasNoID(t *testing.T) {
	b, err := json.Marshal(Draft{Name: "n", Description: "", Price: 1.25, IsAvailable: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"n","description":"","price":1.25,"is_available":true}`, string(b))
}

func TestDraftValidate(t *testing.T) {
	assert.NoError(t, Draft{Name: "ok"}.Validate())
	assert.ErrorIs(t, Draft{Name: "   "}.Validate(), ErrEmptyName)
}

func TestDraftUnmarshalJSON(t *testing.T) {
	var d Draft
	require.NoError(t, json.Unmarshal([]byte(`{"name":"n","price":2,"is_available":false}`), &d))
	assert.Equal(t, Draft{Name: "n", Price: 2}, d)

	for _, body := range []string{
		`{"name":"n","price":2}`,
		`{"name":"n","price":2,"is_available":true,"extra":1}`,
		`{"name":5,"price":2,"is_available":true}`,
		`{"name":"n","price":2,"is_available":true,"description":7}`,
		`[]`,
	} {
		err := json.Unmarshal([]byte(body), &d)
		assert.ErrorIs(t, err, ErrMalformedDraft, body)
	}
}
