// Package metadata writes and checks the checksum manifest stored beside dataset files.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ManifestName is the file name of the manifest inside a dataset directory.
const ManifestName = "manifest.json"

// Version is written into every manifest.
const Version = "1"

// Manifest verification errors.
var (
	ErrNoManifest   = errors.New("no manifest found")
	ErrNoHashFound  = errors.New("no hash found in manifest")
	ErrHashMismatch = errors.New("hash mismatch")
)

// FileEntry is the checksum record of one dataset file.
type FileEntry struct {
	Name  string `json:"name"`
	Hash  string `json:"hash"`
	Bytes int64  `json:"bytes"`
}

// Manifest lists the files of one entity's dataset and their checksums.
type Manifest struct {
	LastModify time.Time   `json:"last_modify"`
	Entity     string      `json:"entity"`
	Version    string      `json:"version"`
	Files      []FileEntry `json:"files"`
	Records    int         `json:"records"`
}

// CalculateHash computes the SHA-256 hash of content.
func CalculateHash(content []byte) string {
	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}

// HashFile streams path through SHA-256 and returns the hash and size.
func HashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()

	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// Sign hashes files (relative to dir) and writes the manifest into dir.
func Sign(dir, entity string, records int, files ...string) (*Manifest, error) {
	m := &Manifest{
		LastModify: time.Now().UTC().Truncate(time.Second),
		Entity:     entity,
		Version:    Version,
		Records:    records,
	}

	for _, name := range files {
		hash, size, err := HashFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}

		m.Files = append(m.Files, FileEntry{Name: name, Hash: hash, Bytes: size})
	}

	sort.Slice(m.Files, func(i, j int) bool { return m.Files[i].Name < m.Files[j].Name })

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestName), append(data, '\n'), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	return m, nil
}

// Load reads the manifest stored in dir.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoManifest, dir)
		}

		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &m, nil
}

// Verify re-hashes every file listed in dir's manifest.
func Verify(dir string) (bool, error) {
	m, err := Load(dir)
	if err != nil {
		return false, err
	}

	for _, f := range m.Files {
		if f.Hash == "" {
			return false, fmt.Errorf("%w: %s", ErrNoHashFound, f.Name)
		}

		calculated, _, err := HashFile(filepath.Join(dir, f.Name))
		if err != nil {
			return false, err
		}

		if calculated != f.Hash {
			return false, fmt.Errorf("%w: %s expected %s, got %s", ErrHashMismatch, f.Name, f.Hash, calculated)
		}
	}

	return true, nil
}
