package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Token(context.Context) (string, error) { return "", errors.New("down") }
func (failingStore) SetToken(context.Context, string) error { return errors.New("down") }
func (failingStore) Clear(context.Context) error { return errors.New("down") }

func TestFromHeader(t *testing.T) {
	assert.Equal(t, "abc", FromHeader("Token abc"))
	assert.Equal(t, "abc", FromHeader("bearer  abc "))
	assert.Equal(t, "", FromHeader("Basic abc"))
	assert.Equal(t, "", FromHeader("abc"))
	assert.Equal(t, "", FromHeader(""))
}

func TestResolvePrefersHeader(t *testing.T) {
	sess, err := Resolve(context.Background(), "Token from-header", NewStaticStore("from-store"))
	require.NoError(t, err)
	assert.Equal(t, "from-header", sess.Token)
}

func TestResolveMissingTokenIsNoSession(t *testing.T) {
	sess, err := Resolve(context.Background(), "", NewStaticStore(""))
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
	assert.Equal(t, anonymousKey, sess.Key())
}

func TestRedisStoreWithoutClientIsEmpty(t *testing.T) {
	store := NewRedisStore(nil, "")
	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Error(t, store.SetToken(context.Background(), "x"))
}

func TestChainStoreFallsThrough(t *testing.T) {
	chain := NewChainStore(failingStore{}, nil, NewStaticStore("static"))
	token, err := chain.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static", token)
}

func TestChainStoreReportsErrorWhenNothingFound(t *testing.T) {
	chain := NewChainStore(failingStore{}, NewStaticStore(""))
	token, err := chain.Token(context.Background())
	assert.Error(t, err)
	assert.Empty(t, token)
}

func TestSessionKeyDoesNotLeakToken(t *testing.T) {
	sess := Session{Token: "secret-token"}
	assert.NotContains(t, sess.Key(), "secret")
	assert.Len(t, sess.Key(), 16)
	assert.Equal(t, sess.Key(), Session{Token: "secret-token"}.Key())
}

func TestStaticStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewStaticStore("a")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.SetToken(ctx, "b")
			_ = store.Clear(ctx)
		}()
		go func() {
			defer wg.Done()
			sess, err := Resolve(ctx, "", store)
			assert.NoError(t, err)
			assert.Contains(t, []string{"", "a", "b"}, sess.Token)
		}()
	}
	wg.Wait()
}

func TestChainStoreClearSignsOutEveryStore(t *testing.T) {
	ctx := context.Background()
	first := NewStaticStore("stored")
	configured := NewStaticStore("configured")
	chain := NewChainStore(first, configured)

	require.NoError(t, chain.Clear(ctx))

	sess, err := Resolve(ctx, "", chain)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestChainStoreClearJoinsFailures(t *testing.T) {
	ctx := context.Background()
	static := NewStaticStore("configured")
	chain := NewChainStore(failingStore{}, static)

	assert.Error(t, chain.Clear(ctx))
	token, err := static.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
