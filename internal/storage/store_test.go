package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgcrypto "github.com/lowtide/localbase/internal/crypto"
	"github.com/lowtide/localbase/internal/model"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return fs
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()
	fs := newFileStore(t)

	_, ok := fs.Get("lb:artists")
	require.False(t, ok, "absent key should read as missing")

	require.NoError(t, fs.Set("lb:artists", []byte(`[{"id":"a1"}]`)))

	data, ok := fs.Get("lb:artists")
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"a1"}]`, string(data))

	// Writes are immediately visible and replace prior content in full.
	require.NoError(t, fs.Set("lb:artists", []byte(`[]`)))
	data, _ = fs.Get("lb:artists")
	require.Equal(t, "[]", string(data))

	fs.Delete("lb:artists")
	_, ok = fs.Get("lb:artists")
	require.False(t, ok)

	// Deleting again is a no-op.
	fs.Delete("lb:artists")
}

func TestFileStore_Keys(t *testing.T) {
	t.Parallel()
	fs := newFileStore(t)

	require.NoError(t, fs.Set(CollectionKey("artists"), []byte("[]")))
	require.NoError(t, fs.Set(SessionKey, []byte("{}")))

	keys := fs.Keys()
	require.ElementsMatch(t, []string{"lb:artists", SessionKey}, keys)
}

func TestCollections_LenientRead(t *testing.T) {
	t.Parallel()
	fs := newFileStore(t)
	cols := NewCollections(fs, zap.NewNop())

	// Unknown collection reads as empty, never errors.
	require.Empty(t, cols.Read("never-written"))

	// Malformed stored content also reads as empty.
	require.NoError(t, fs.Set(CollectionKey("broken"), []byte("{not json")))
	require.Empty(t, cols.Read("broken"))

	recs := []model.Record{{"id": "r1", "title": "Night Circuit"}}
	require.NoError(t, cols.Write("releases", recs))

	got := cols.Read("releases")
	require.Len(t, got, 1)
	require.Equal(t, "r1", got[0].ID())
	require.Equal(t, "Night Circuit", got[0]["title"])
}

func TestCollections_WriteNil(t *testing.T) {
	t.Parallel()
	cols := NewCollections(NewMemStore(), zap.NewNop())

	require.NoError(t, cols.Write("empty", nil))
	require.NotNil(t, cols.Read("empty"))
	require.Empty(t, cols.Read("empty"))
}

func TestMemStore_CopySemantics(t *testing.T) {
	t.Parallel()
	ms := NewMemStore()

	buf := []byte("abc")
	require.NoError(t, ms.Set("k", buf))
	buf[0] = 'X'

	got, ok := ms.Get("k")
	require.True(t, ok)
	require.Equal(t, "abc", string(got), "store must not alias caller buffers")

	got[0] = 'Y'
	again, _ := ms.Get("k")
	require.Equal(t, "abc", string(again))
}

func TestSealedStore(t *testing.T) {
	t.Parallel()

	inner := NewMemStore()
	sealer := pkgcrypto.NewSealer("secret")
	users := CollectionKey("users")
	ss := NewSealedStore(inner, sealer, []string{users}, zap.NewNop())

	require.NoError(t, ss.Set(users, []byte(`[{"id":"u1"}]`)))
	require.NoError(t, ss.Set(CollectionKey("artists"), []byte(`[]`)))

	// Sealed key is ciphertext in the inner store.
	raw, ok := inner.Get(users)
	require.True(t, ok)
	require.NotEqual(t, `[{"id":"u1"}]`, string(raw))

	// Unsealed key passes through.
	raw, _ = inner.Get(CollectionKey("artists"))
	require.Equal(t, `[]`, string(raw))

	data, ok := ss.Get(users)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"u1"}]`, string(data))

	// A different secret cannot open the payload; it reads as absent.
	other := NewSealedStore(inner, pkgcrypto.NewSealer("wrong"), []string{users}, zap.NewNop())
	_, ok = other.Get(users)
	require.False(t, ok)
}

func TestFileStore_UnreadableEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, fs.Set("k", []byte("v")))

	// A directory squatting on the entry path makes it unreadable; the
	// store reports absence instead of failing.
	path := fs.path("dir-key")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "sub"), 0o700))
	_, ok := fs.Get("dir-key")
	require.False(t, ok)
}
