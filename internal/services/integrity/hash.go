package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	policy "github.com/inference-gateway/toolgate/internal/services/policy"
)

// Snapshot is the content of a policy directory read in one pass.
// Rules are parsed from these bytes, so what was hashed is what gets loaded.
type Snapshot struct {
	Dir   string
	Files []policy.RuleFile
	Hash  string
}

// FileCount returns the number of policy files in the snapshot
func (s *Snapshot) FileCount() int {
	return len(s.Files)
}

// IsPolicyFile reports whether name is hashed and loaded as a policy file
func IsPolicyFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// ReadSnapshot reads every policy file under dir. A missing directory yields
// an empty snapshot; any other read error fails the snapshot.
func ReadSnapshot(dir string) (*Snapshot, error) {
	snap := &Snapshot{Dir: dir}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		snap.Hash = HashFiles(nil)
		return snap, nil
	case err != nil:
		return nil, fmt.Errorf("failed to stat policy directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("policy path %s is not a directory", dir)
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsPolicyFile(d.Name()) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		snap.Files = append(snap.Files, policy.RuleFile{Path: filepath.ToSlash(rel), Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read policy files: %w", err)
	}

	sort.Slice(snap.Files, func(i, j int) bool { return snap.Files[i].Path < snap.Files[j].Path })
	snap.Hash = HashFiles(snap.Files)
	return snap, nil
}

// HashFiles computes the hex SHA-256 over files in the given order.
// Each file contributes "path NUL length NUL bytes".
func HashFiles(files []policy.RuleFile) string {
	h := sha256.New()
	for _, f := range files {
		h.Write([]byte(f.Path))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(len(f.Data))))
		h.Write([]byte{0})
		h.Write(f.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashDirectory is a convenience wrapper returning only the hash and file count
func HashDirectory(dir string) (string, int, error) {
	snap, err := ReadSnapshot(dir)
	if err != nil {
		return "", 0, err
	}
	return snap.Hash, snap.FileCount(), nil
}
