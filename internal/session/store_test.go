package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkaras/relocost/internal/common"
	"github.com/dkaras/relocost/internal/models"
)

var testUser = &models.Identity{Username: "admin", Email: "admin@example.com"}

func TestStore_SetThenGet(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok123", testUser))

	got := s.Get()
	assert.Equal(t, "tok123", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, "admin", got.User.Username)
	assert.True(t, got.Authenticated())
}

func TestStore_IdentityPresentIffToken(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()

	// Unauthenticated: neither field present.
	got := s.Get()
	assert.Empty(t, got.Token)
	assert.Nil(t, got.User)

	// A credential without an identity is rejected.
	require.Error(t, s.Set(ctx, "tok", nil))
	got = s.Get()
	assert.Empty(t, got.Token)
	assert.Nil(t, got.User)

	// An empty credential clears both fields.
	require.NoError(t, s.Set(ctx, "tok", testUser))
	require.NoError(t, s.Set(ctx, "", nil))
	got = s.Get()
	assert.Empty(t, got.Token)
	assert.Nil(t, got.User)
}

func TestStore_PersistsBothKeys(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok123", testUser))

	repo := NewSQLiteRepository(db)
	tok, err := repo.Get(ctx, common.SessionTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok123", string(tok))

	user, err := repo.Get(ctx, common.SessionUserKey)
	require.NoError(t, err)
	assert.Contains(t, string(user), "admin@example.com")
}

func TestStore_ClearWipesBothKeys(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok123", testUser))
	require.NoError(t, s.Clear(ctx))

	repo := NewSQLiteRepository(db)
	for _, k := range []string{common.SessionTokenKey, common.SessionUserKey} {
		v, err := repo.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v, "key %s should be gone", k)
	}
	assert.False(t, s.Get().Authenticated())
}

func TestStore_LoadRecoversSession(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	first := NewStore(db)
	require.NoError(t, first.Set(ctx, "tok123", testUser))

	// A second store over the same database plays the role of a restart.
	second := NewStore(db)
	require.NoError(t, second.Load(ctx))

	got := second.Get()
	assert.Equal(t, "tok123", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, "admin@example.com", got.User.Email)
}

func TestStore_LoadWipesPartialState(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	// A token without its identity violates the invariant.
	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, common.SessionTokenKey, []byte("orphan")))

	s := NewStore(db)
	require.NoError(t, s.Load(ctx))

	assert.False(t, s.Get().Authenticated())
	v, err := repo.Get(ctx, common.SessionTokenKey)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestStore_SubscribersNotifiedOnEveryMutation(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()

	var seen []Session
	unsubscribe := s.Subscribe(func(sess Session) { seen = append(seen, sess) })

	require.NoError(t, s.Set(ctx, "tok123", testUser))
	require.NoError(t, s.Clear(ctx))

	require.Len(t, seen, 2)
	assert.Equal(t, "tok123", seen[0].Token)
	assert.False(t, seen[1].Authenticated())

	unsubscribe()
	require.NoError(t, s.Set(ctx, "tok456", testUser))
	assert.Len(t, seen, 2)
}

func TestStore_ClearObservedByAllSubscribers(t *testing.T) {
	s := NewStore(setupDB(t))
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "tok123", testUser))

	var a, b Session
	s.Subscribe(func(sess Session) { a = sess })
	s.Subscribe(func(sess Session) { b = sess })

	require.NoError(t, s.Clear(ctx))

	assert.False(t, a.Authenticated())
	assert.False(t, b.Authenticated())
}

func TestStore_RefreshPicksUpExternalChange(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	s := NewStore(db)
	require.NoError(t, s.Set(ctx, "tok123", testUser))

	// Another writer logs out behind our back.
	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Clear(ctx))

	notified := false
	s.Subscribe(func(Session) { notified = true })

	require.NoError(t, s.Refresh(ctx))
	assert.False(t, s.Get().Authenticated())
	assert.True(t, notified)

	// A refresh with no underlying change stays silent.
	notified = false
	require.NoError(t, s.Refresh(ctx))
	assert.False(t, notified)
}

func TestInitDatabase_AppliesMigrations(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "session.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewStore(db)
	require.NoError(t, s.Set(ctx, "tok123", testUser))
	require.NoError(t, s.Load(ctx))
	assert.True(t, s.Get().Authenticated())
}
