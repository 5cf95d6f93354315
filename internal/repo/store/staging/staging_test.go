package staging_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
	"github.com/keshon/wit/internal/repo/store/staging"
	"github.com/keshon/wit/internal/repo/store/tree"
)

type answer struct {
	ok    bool
	err   error
	asked []string
}

func (a *answer) Confirm(q string) (bool, error) {
	a.asked = append(a.asked, q)
	return a.ok, a.err
}

func setup(t *testing.T, ans *answer) (*staging.StagingContext, string) {
	t.Helper()
	root := t.TempDir()
	paths := config.NewPaths(root)
	require.NoError(t, os.MkdirAll(paths.Staging, 0o755))
	sc := staging.NewStagingContext(root, paths.Staging, tree.New(fs.NewOSFS(), config.RepoDir), ans)
	return sc, root
}

func put(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func read(t *testing.T, p string) string {
	t.Helper()
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(data)
}

func TestAdd_FileAndNestedPath(t *testing.T) {
	sc, root := setup(t, &answer{})
	put(t, root, "a.txt", "hello")
	put(t, root, "deep/er/b.txt", "b")

	ok, err := sc.Add("a.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = sc.Add(filepath.Join("deep", "er", "b.txt"))
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "hello", read(t, filepath.Join(sc.Dir, "a.txt")))
	assert.Equal(t, "b", read(t, filepath.Join(sc.Dir, "deep", "er", "b.txt")))
}

func TestAdd_OverwriteNeedsConfirmation(t *testing.T) {
	ans := &answer{ok: false}
	sc, root := setup(t, ans)
	put(t, root, "a.txt", "v1")
	_, err := sc.Add("a.txt")
	require.NoError(t, err)
	assert.Empty(t, ans.asked, "first add must not prompt")

	put(t, root, "a.txt", "v2")
	ok, err := sc.Add("a.txt")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, ans.asked, 1)
	assert.Equal(t, "v1", read(t, filepath.Join(sc.Dir, "a.txt")), "declined add leaves staging untouched")

	ans.ok = true
	ok, err = sc.Add("a.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", read(t, filepath.Join(sc.Dir, "a.txt")))
}

func TestAdd_ConfirmerError(t *testing.T) {
	ans := &answer{err: errors.New("no tty")}
	sc, root := setup(t, ans)
	put(t, root, "a.txt", "v1")
	_, err := sc.Add("a.txt")
	require.NoError(t, err)

	_, err = sc.Add("a.txt")
	assert.ErrorContains(t, err, "no tty")
}

func TestAdd_DirectoryMergesWithoutPrompt(t *testing.T) {
	ans := &answer{}
	sc, root := setup(t, ans)
	put(t, root, "dir/a", "1")
	_, err := sc.Add("dir")
	require.NoError(t, err)

	put(t, root, "dir/a", "2")
	put(t, root, "dir/b", "3")
	ok, err := sc.Add("dir")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, ans.asked)
	assert.Equal(t, "2", read(t, filepath.Join(sc.Dir, "dir", "a")))
	assert.Equal(t, "3", read(t, filepath.Join(sc.Dir, "dir", "b")))
}

func TestAdd_WholeTreeSkipsMetadata(t *testing.T) {
	sc, root := setup(t, &answer{})
	put(t, root, "a.txt", "a")

	_, err := sc.Add(".")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(sc.Dir, "a.txt"))
	assert.NoDirExists(t, filepath.Join(sc.Dir, config.RepoDir))
}

func TestAdd_Rejections(t *testing.T) {
	sc, _ := setup(t, &answer{})
	for _, rel := range []string{"missing.txt", "../outside", config.RepoDir, filepath.Join(config.RepoDir, "staging_area")} {
		_, err := sc.Add(rel)
		assert.ErrorIs(t, err, errs.ErrPathNotFound, rel)
	}
}

func TestRemove(t *testing.T) {
	ans := &answer{}
	sc, root := setup(t, ans)
	put(t, root, "a.txt", "a")
	put(t, root, "dir/b.txt", "b")
	_, err := sc.Add(".")
	require.NoError(t, err)

	require.NoError(t, sc.Remove("a.txt"))
	assert.NoFileExists(t, filepath.Join(sc.Dir, "a.txt"))
	assert.FileExists(t, filepath.Join(root, "a.txt"), "working tree untouched")
	assert.Empty(t, ans.asked)

	assert.ErrorIs(t, sc.Remove("a.txt"), errs.ErrPathNotFound)

	assert.ErrorIs(t, sc.Remove("dir"), errs.ErrAborted)
	assert.DirExists(t, filepath.Join(sc.Dir, "dir"))

	ans.ok = true
	require.NoError(t, sc.Remove("dir"))
	assert.NoDirExists(t, filepath.Join(sc.Dir, "dir"))
	assert.Len(t, ans.asked, 2)
}

func TestStatus(t *testing.T) {
	sc, root := setup(t, &answer{ok: true})
	head := t.TempDir()
	put(t, head, "a.txt", "hello")

	put(t, root, "a.txt", "hello")
	put(t, root, "b.txt", "new")
	_, err := sc.Add("a.txt")
	require.NoError(t, err)
	_, err = sc.Add("b.txt")
	require.NoError(t, err)

	put(t, root, "a.txt", "edited")
	put(t, root, "untracked/x", "x")

	st, err := sc.Status(head)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, st.Staged)
	assert.Equal(t, []string{"a.txt"}, st.Unstaged)
	assert.Equal(t, []string{"untracked"}, st.Untracked)
	assert.False(t, st.Clean())
}

func TestReplace(t *testing.T) {
	sc, root := setup(t, &answer{})
	put(t, root, "old.txt", "old")
	_, err := sc.Add("old.txt")
	require.NoError(t, err)

	snap := t.TempDir()
	put(t, snap, "new/file.txt", "new")
	require.NoError(t, sc.Replace(snap))

	assert.NoFileExists(t, filepath.Join(sc.Dir, "old.txt"))
	assert.Equal(t, "new", read(t, filepath.Join(sc.Dir, "new", "file.txt")))

	entries, err := os.ReadDir(filepath.Dir(sc.Dir))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".staging-", "temp dirs cleaned up")
	}
}

func TestReplace_FailureKeepsStaging(t *testing.T) {
	sc, root := setup(t, &answer{})
	put(t, root, "keep.txt", "k")
	_, err := sc.Add("keep.txt")
	require.NoError(t, err)

	err = sc.Replace(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, errs.ErrFilesystem)
	assert.FileExists(t, filepath.Join(sc.Dir, "keep.txt"))
}

func TestCopyInAndWrite(t *testing.T) {
	sc, _ := setup(t, &answer{})
	snap := t.TempDir()
	put(t, snap, "x/y.txt", "y")

	require.NoError(t, sc.CopyIn(snap, filepath.Join("x", "y.txt")))
	assert.Equal(t, "y", read(t, filepath.Join(sc.Dir, "x", "y.txt")))

	require.NoError(t, sc.Write(filepath.Join("z", "w.txt"), []byte("merged\n"), 0o644))
	assert.Equal(t, "merged\n", read(t, filepath.Join(sc.Dir, "z", "w.txt")))
}
