package integrity

import (
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const basePolicy = "rules:\n  - tool: read_file\n    decision: allow\n"
const shellPolicy = "rules:\n  - tool: run_shell_command\n    decision: deny\n"

func TestReadSnapshot_MissingDirectoryIsEmpty(t *testing.T) {
	snap, err := ReadSnapshot(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, 0, snap.FileCount())
	assert.Equal(t, HashFiles(nil), snap.Hash)
}

func TestReadSnapshot_OnlyPolicyFiles(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "a.yaml", basePolicy)
	writePolicy(t, dir, "nested/b.yml", shellPolicy)
	writePolicy(t, dir, "README.md", "# notes")

	snap, err := ReadSnapshot(dir)
	require.NoError(t, err)
	require.Equal(t, 2, snap.FileCount())
	assert.Equal(t, "a.yaml", snap.Files[0].Path)
	assert.Equal(t, "nested/b.yml", snap.Files[1].Path)
}

func TestReadSnapshot_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(basePolicy), 0644))

	_, err := ReadSnapshot(path)
	assert.Error(t, err)
}

func TestHash_StableUnderCreationOrder(t *testing.T) {
	first := t.TempDir()
	writePolicy(t, first, "a.yaml", basePolicy)
	writePolicy(t, first, "b.yaml", shellPolicy)

	second := t.TempDir()
	writePolicy(t, second, "b.yaml", shellPolicy)
	writePolicy(t, second, "a.yaml", basePolicy)

	h1, n1, err := HashDirectory(first)
	require.NoError(t, err)
	h2, n2, err := HashDirectory(second)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, 2, n1)
	assert.Equal(t, n1, n2)
}

func TestHash_RoundTripCopyAndOneByteChange(t *testing.T) {
	src := t.TempDir()
	writePolicy(t, src, "a.yaml", basePolicy)
	writePolicy(t, src, "deep/b.yaml", shellPolicy)

	before, _, err := HashDirectory(src)
	require.NoError(t, err)

	dst := t.TempDir()
	snap, err := ReadSnapshot(src)
	require.NoError(t, err)
	for _, f := range snap.Files {
		writePolicy(t, dst, filepath.FromSlash(f.Path), string(f.Data))
	}

	copied, _, err := HashDirectory(dst)
	require.NoError(t, err)
	assert.Equal(t, before, copied, "no-op copy must keep the hash")

	changed := []byte(shellPolicy)
	changed[len(changed)-2] = 'x'
	writePolicy(t, dst, "deep/b.yaml", string(changed))

	after, _, err := HashDirectory(dst)
	require.NoError(t, err)
	assert.NotEqual(t, before, after, "a single byte change must change the hash")
}

func TestHash_FileBoundariesMatter(t *testing.T) {
	one := t.TempDir()
	writePolicy(t, one, "a.yaml", "ab")
	writePolicy(t, one, "b.yaml", "c")

	two := t.TempDir()
	writePolicy(t, two, "a.yaml", "a")
	writePolicy(t, two, "b.yaml", "bc")

	h1, _, err := HashDirectory(one)
	require.NoError(t, err)
	h2, _, err := HashDirectory(two)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestHash_RenameChangesHash(t *testing.T) {
	dir := t.TempDir()
	writePolicy(t, dir, "a.yaml", basePolicy)
	h1, _, err := HashDirectory(dir)
	require.NoError(t, err)

	require.NoError(t, os.Rename(filepath.Join(dir, "a.yaml"), filepath.Join(dir, "z.yaml")))
	h2, _, err := HashDirectory(dir)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
