package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/repo/meta"
	"github.com/keshon/wit/internal/repo/store/snapshot"
	"github.com/keshon/wit/internal/repo/store/tree"
)

type fixture struct {
	sc      *snapshot.SnapshotContext
	staging string
	clock   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	osfs := fs.NewOSFS()
	mc := meta.NewMeta(config.NewPaths(t.TempDir()), osfs)
	require.NoError(t, mc.CreateStructure(config.DefaultBranch))

	f := &fixture{staging: mc.Paths.Staging, clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)}
	f.sc = snapshot.NewSnapshotContext(mc, tree.New(osfs, config.RepoDir))
	f.sc.Now = func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	}
	return f
}

func (f *fixture) stage(t *testing.T, rel, content string) {
	t.Helper()
	p := filepath.Join(f.staging, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func (f *fixture) commit(t *testing.T, msg string, parents ...string) string {
	t.Helper()
	c, err := f.sc.CreateCommit(f.staging, msg, parents)
	require.NoError(t, err)
	return c.ID
}

func TestCreateCommit_SnapshotAndRecord(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "a.txt", "A")
	f.stage(t, "dir/b.txt", "B")

	id := f.commit(t, "first")
	assert.True(t, snapshot.ValidID(id), "id %q", id)
	assert.True(t, f.sc.Exists(id))

	eq, err := f.sc.Tree.Equal(f.sc.Path(id), f.staging)
	require.NoError(t, err)
	assert.True(t, eq)

	c, err := f.sc.Meta.GetCommit(id)
	require.NoError(t, err)
	assert.Empty(t, c.Parents)
	assert.Equal(t, "first", c.Message)

	parents, err := f.sc.GetParents(id)
	require.NoError(t, err)
	assert.Empty(t, parents)
}

func TestCreateCommit_NoChange(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "a.txt", "A")
	first := f.commit(t, "first")

	entries, err := os.ReadDir(f.sc.Meta.Paths.Images)
	require.NoError(t, err)

	_, err = f.sc.CreateCommit(f.staging, "again", []string{first})
	assert.ErrorIs(t, err, errs.ErrNoChange)

	after, err := os.ReadDir(f.sc.Meta.Paths.Images)
	require.NoError(t, err)
	assert.Len(t, after, len(entries), "no snapshot may be allocated")

	f.stage(t, "a.txt", "A2")
	second := f.commit(t, "second", first)
	parents, err := f.sc.GetParents(second)
	require.NoError(t, err)
	assert.Equal(t, []string{first}, parents)
}

func TestComputeID(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "a.txt", "A")
	digest, err := f.sc.TreeDigest(f.staging)
	require.NoError(t, err)

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	id1, err := snapshot.ComputeID(digest, nil, date, "m")
	require.NoError(t, err)
	again, err := snapshot.ComputeID(digest, nil, date, "m")
	require.NoError(t, err)
	assert.Equal(t, id1, again, "ids are content-derived")

	other, err := snapshot.ComputeID(digest, []string{id1}, date, "m")
	require.NoError(t, err)
	assert.NotEqual(t, id1, other)
	assert.Len(t, other, len(id1), "ids have a fixed length")

	later, err := snapshot.ComputeID(digest, nil, date.Add(time.Second), "m")
	require.NoError(t, err)
	assert.NotEqual(t, id1, later)

	f.stage(t, "a.txt", "B")
	changed, err := f.sc.TreeDigest(f.staging)
	require.NoError(t, err)
	assert.NotEqual(t, digest, changed)
}

func TestValidID(t *testing.T) {
	assert.False(t, snapshot.ValidID(""))
	assert.False(t, snapshot.ValidID("../../etc"))
	assert.False(t, snapshot.ValidID("0123456789abcdef0123456789abcdef01234567"))
}

func TestCreateCommit_CollisionIsFilesystemError(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "a.txt", "A")
	f.sc.Now = func() time.Time { return f.clock }

	digest, err := f.sc.TreeDigest(f.staging)
	require.NoError(t, err)
	id, err := snapshot.ComputeID(digest, nil, f.clock, "m")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(f.sc.Path(id), 0o755))

	_, err = f.sc.CreateCommit(f.staging, "m", nil)
	assert.ErrorIs(t, err, errs.ErrFilesystem)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestCreateCommit_PublishFailureLeavesNoSnapshot(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "a.txt", "A")

	orig := fs.GetRename()
	defer fs.SetRename(orig)
	fs.SetRename(func(string, string) error { return os.ErrPermission })

	_, err := f.sc.CreateCommit(f.staging, "m", nil)
	require.ErrorIs(t, err, errs.ErrFilesystem)

	entries, err := os.ReadDir(f.sc.Meta.Paths.Images)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp snapshot must be cleaned up")
}

// history builds:
//
//	r <- a <- m (merge of a and b)
//	r <- b <-'
func TestCollectHistory(t *testing.T) {
	f := newFixture(t)
	f.stage(t, "f", "r")
	r := f.commit(t, "r")
	f.stage(t, "f", "a")
	a := f.commit(t, "a", r)
	f.stage(t, "f", "b")
	b := f.commit(t, "b", r)
	f.stage(t, "f", "m")
	m := f.commit(t, "m", a, b)

	dedup, err := f.sc.CollectHistory(m, snapshot.HistoryDedup)
	require.NoError(t, err)
	assert.Equal(t, []string{m, a, r, b}, dedup)

	compat, err := f.sc.CollectHistory(m, snapshot.HistoryCompat)
	require.NoError(t, err)
	assert.Equal(t, []string{m, a, r, b, r}, compat)

	root, err := f.sc.CollectHistory(r, snapshot.HistoryDedup)
	require.NoError(t, err)
	assert.Equal(t, []string{r}, root)

	_, err = f.sc.CollectHistory("missing", snapshot.HistoryDedup)
	assert.ErrorIs(t, err, errs.ErrCommitNotFound)
}

func TestParseHistoryMode(t *testing.T) {
	mode, err := snapshot.ParseHistoryMode("compat")
	require.NoError(t, err)
	assert.Equal(t, snapshot.HistoryCompat, mode)

	mode, err = snapshot.ParseHistoryMode("")
	require.NoError(t, err)
	assert.Equal(t, snapshot.HistoryDedup, mode)

	_, err = snapshot.ParseHistoryMode("bogus")
	assert.Error(t, err)
}
