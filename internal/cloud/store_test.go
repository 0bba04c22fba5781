package cloud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentacar-backend/internal/config"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NewMemoryStore()
	defer s.Close()

	require.NoError(t, s.Put(ctx, "customers", "1", []byte(`{"id":1}`)))
	require.NoError(t, s.Put(ctx, "customers", "2", []byte(`{"id":2}`)))
	require.NoError(t, s.Put(ctx, "customers", "1", []byte(`{"id":1,"first_name":"Dana"}`)))

	docs, err := s.List(ctx, "customers")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.JSONEq(t, `{"id":1,"first_name":"Dana"}`, string(docs["1"]))

	// returned payloads are copies
	docs["2"][0] = 'X'
	again, _ := s.List(ctx, "customers")
	assert.Equal(t, byte('{'), again["2"][0])

	empty, err := s.List(ctx, "payments")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), config.CloudConfig{Type: "none"})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = Open(context.Background(), config.CloudConfig{Type: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = Open(context.Background(), config.CloudConfig{Type: "s3"})
	assert.Error(t, err)
}
