package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wsargent/toodledo/internal/domain"
)

func TestStoreRejectsInvalidUserIDs(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		userID  string
		wantErr string
	}{
		{name: "empty", userID: "", wantErr: "user id is empty"},
		{name: "whitespace", userID: "   ", wantErr: "user id is empty"},
		{name: "absolute", userID: "/etc/passwd", wantErr: "invalid user id"},
		{name: "traversal", userID: "../escape", wantErr: "invalid user id"},
		{name: "nested", userID: "a/b", wantErr: "invalid user id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.userID, "tok")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	before := time.Now().Add(-time.Second)
	err := store.Put(context.Background(), "td1234567890abcd", "td-token")
	require.NoError(t, err)

	token, acquiredAt, err := store.Get(context.Background(), "td1234567890abcd")
	require.NoError(t, err)
	assert.Equal(t, "td-token", token)
	assert.True(t, acquiredAt.After(before), "acquisition time should track the write")

	info, err := os.Stat(filepath.Join(root, "tokens", "td1234567890abcd"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tokenFileMode), info.Mode().Perm())
}

func TestStoreGetMissingTokenIsCacheMiss(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, _, err := store.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestStorePutSupersedesExistingToken(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "u1", "old"))
	require.NoError(t, store.Put(ctx, "u1", "new"))

	token, _, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "new", token)
}

func TestStoreDeleteIsIdempotentWhenTokenMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	err := store.Delete(context.Background(), "u1")
	require.NoError(t, err)

	err = store.Delete(context.Background(), "u1")
	require.NoError(t, err)
}
