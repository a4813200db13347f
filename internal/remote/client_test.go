package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/items/internal/model"
	"github.com/idilsaglam/items/internal/remote"
	"github.com/idilsaglam/items/internal/remote/remotetest"
)

func TestClient_CheckHealth(t *testing.T) {
	srv := remotetest.New(t)
	c := remote.New(srv.URL())

	h, err := c.CheckHealth(context.Background())
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(h, &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, 1, srv.Calls("health"))
}

func TestClient_CheckHealth_Status(t *testing.T) {
	srv := remotetest.New(t)
	srv.FailHealth(http.StatusServiceUnavailable)
	c := remote.New(srv.URL())

	_, err := c.CheckHealth(context.Background())
	rce, ok := remote.AsRemoteCallError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, rce.StatusCode)
	assert.True(t, rce.IsStatus())
}

func TestClient_ListItems(t *testing.T) {
	srv := remotetest.New(t)
	seed := []model.Item{
		{ID: 1, Name: "a", Description: "x", Price: 1, IsAvailable: true},
		{ID: 2, Name: "b", Price: 2},
	}
	srv.Seed(seed...)
	c := remote.New(srv.URL() + "/")

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seed, items)
}

func TestClient_ListItems_Empty(t *testing.T) {
	srv := remotetest.New(t)
	c := remote.New(srv.URL())

	items, err := c.ListItems(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClient_ListItems_Failures(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*remotetest.Server)
		wantStatus int
		wantCause  error
	}{
		{
			name:       "server error",
			setup:      func(s *remotetest.Server) { s.FailList(http.StatusInternalServerError) },
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "not found",
			setup:      func(s *remotetest.Server) { s.FailList(http.StatusNotFound) },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed record",
			setup:      func(s *remotetest.Server) { s.ListBody([]byte(`[{"id":"one"}]`)) },
			wantStatus: http.StatusOK,
			wantCause:  model.ErrMalformedItem,
		},
		{
			name:       "not an array",
			setup:      func(s *remotetest.Server) { s.ListBody([]byte(`{"items":[]}`)) },
			wantStatus: http.StatusOK,
			wantCause:  model.ErrMalformedItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := remotetest.New(t)
			tt.setup(srv)
			c := remote.New(srv.URL())

			items, err := c.ListItems(context.Background())
			assert.Nil(t, items)
			rce, ok := remote.AsRemoteCallError(err)
			require.True(t, ok, "want *RemoteCallError, got %T", err)
			assert.Equal(t, tt.wantStatus, rce.StatusCode)
			assert.Equal(t, "list items", rce.Op)
			assert.Equal(t, http.MethodGet, rce.Method)
			if tt.wantCause != nil {
				assert.ErrorIs(t, err, tt.wantCause)
			}
		})
	}
}

func TestClient_ListItems_Transport(t *testing.T) {
	srv := remotetest.New(t)
	url := srv.URL()
	srv.Close()

	_, err := remote.New(url).ListItems(context.Background())
	rce, ok := remote.AsRemoteCallError(err)
	require.True(t, ok)
	assert.True(t, rce.IsTransport())
	assert.Zero(t, rce.StatusCode)
	assert.Error(t, rce.Cause)
}

func TestClient_CreateItem(t *testing.T) {
	srv := remotetest.New(t)
	c := remote.New(srv.URL())
	draft := model.Draft{Name: "Item 1", Description: "d", Price: 42.5, IsAvailable: true}

	it, err := c.CreateItem(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, model.Item{ID: 1, Name: "Item 1", Description: "d", Price: 42.5, IsAvailable: true}, it)
	assert.Equal(t, []model.Item{it}, srv.Items())
}

func TestClient_CreateItem_Status(t *testing.T) {
	srv := remotetest.New(t)
	srv.FailCreate(http.StatusUnprocessableEntity)
	c := remote.New(srv.URL())

	_, err := c.CreateItem(context.Background(), model.Draft{Name: "x"})
	rce, ok := remote.AsRemoteCallError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, rce.StatusCode)
	assert.Equal(t, http.MethodPost, rce.Method)
	assert.Empty(t, srv.Items())
}

func TestClient_RequestIDs(t *testing.T) {
	srv := remotetest.New(t)
	c := remote.New(srv.URL())
	ctx := context.Background()

	_, err := c.CheckHealth(ctx)
	require.NoError(t, err)
	_, err = c.ListItems(ctx)
	require.NoError(t, err)

	ids := srv.RequestIDs()
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	for _, id := range ids {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}
}

func TestRemoteCallError_Message(t *testing.T) {
	err := &remote.RemoteCallError{Op: "list items", Method: "GET", URL: "http://x/api/items", StatusCode: 500}
	assert.Equal(t, "list items: GET http://x/api/items: HTTP error! status: 500", err.Error())
	assert.False(t, err.IsTransport())
}
