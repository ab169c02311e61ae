package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"dealfeed/types"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryObjects struct {
	objects   map[string][]byte
	putErr    error
	existsErr error
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: map[string][]byte{}}
}

func (m *memoryObjects) Put(_ context.Context, bucket, key string, body io.Reader, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memoryObjects) Exists(_ context.Context, bucket, key string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.objects[bucket+"/"+key]
	return ok, nil
}

func TestArchiverKey(t *testing.T) {
	assert.Equal(t, "deals/a.json", NewArchiver(nil, "b", "", nil).Key("a"))
	assert.Equal(t, "feed/deals/a.json", NewArchiver(nil, "b", "/feed/", nil).Key("a"))
	assert.Equal(t, "x/y/deals/a.json", NewArchiver(nil, "b", "x/y", nil).Key("a"))
}

func TestArchiveWritesOnce(t *testing.T) {
	store := newMemoryObjects()
	a := NewArchiver(store, "bucket", "prod", nil)
	ctx := context.Background()

	require.NoError(t, a.Archive(ctx, types.DealItem{ID: "d1", Title: "first", Score: 40}))
	require.NoError(t, a.Archive(ctx, types.DealItem{ID: "d1", Title: "changed", Score: 90}))

	raw, ok := store.objects["bucket/prod/deals/d1.json"]
	require.True(t, ok)
	var got types.DealItem
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "first", got.Title)
}

func TestArchiveErrors(t *testing.T) {
	ctx := context.Background()

	assert.Error(t, NewArchiver(newMemoryObjects(), "b", "", nil).Archive(ctx, types.DealItem{}))

	failing := newMemoryObjects()
	failing.putErr = errors.New("denied")
	err := NewArchiver(failing, "b", "", nil).Archive(ctx, types.DealItem{ID: "x"})
	assert.ErrorContains(t, err, "s3://b/deals/x.json")

	unreachable := newMemoryObjects()
	unreachable.existsErr = errors.New("timeout")
	err = NewArchiver(unreachable, "b", "", nil).Archive(ctx, types.DealItem{ID: "x"})
	assert.ErrorContains(t, err, "failed to check")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&smithy.GenericAPIError{Code: "NotFound"}))
	assert.False(t, isNotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("plain")))
}
