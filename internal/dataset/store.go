package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"newsharvest/internal/logger"
	"newsharvest/pkg/metadata"
)

// ErrInvalidEntity is returned for entity names that cannot be used as a
// single directory name.
var ErrInvalidEntity = errors.New("invalid entity name")

// ValidateEntity rejects names that are empty, dot segments or contain a
// path separator.
func ValidateEntity(entity string) error {
	switch {
	case strings.TrimSpace(entity) == "", entity == ".", entity == "..":
		return fmt.Errorf("%w: %q", ErrInvalidEntity, entity)
	case strings.ContainsAny(entity, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidEntity, entity)
	case strings.ContainsRune(entity, 0):
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidEntity, entity)
	}

	return nil
}

// OutputPath follows structure: {basePath}/{entity}/headlines.{format}.
func OutputPath(basePath, entity, format string) string {
	return filepath.Join(basePath, entity, "headlines."+format)
}

// Store persists assembled datasets under a base directory.
type Store struct {
	writer   Writer
	log      *logger.Logger
	basePath string
	manifest bool
}

// NewStore creates a store writing format files under basePath. When
// manifest is set, every save also refreshes the entity's manifest.json.
func NewStore(basePath, format string, manifest bool, log *logger.Logger) (*Store, error) {
	w, err := NewWriter(format)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Discard()
	}

	return &Store{writer: w, log: log, basePath: basePath, manifest: manifest}, nil
}

// Path returns where entity's dataset is written.
func (s *Store) Path(entity string) string {
	return OutputPath(s.basePath, entity, s.writer.Format())
}

// Save writes records for entity and returns the file path.
func (s *Store) Save(entity string, records []Record) (string, error) {
	if err := ValidateEntity(entity); err != nil {
		return "", err
	}

	path := s.Path(entity)
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var buf bytes.Buffer
	if err := s.writer.Write(&buf, records); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.log.Info("dataset written", "entity", entity, "path", path, "records", len(records))

	if s.manifest {
		if _, err := metadata.Sign(dir, entity, len(records), filepath.Base(path)); err != nil {
			return path, fmt.Errorf("failed to sign dataset: %w", err)
		}
	}

	return path, nil
}

// SaveAssembler writes the records held by a.
func (s *Store) SaveAssembler(a *Assembler) (string, error) {
	if err := a.Err(); err != nil {
		return "", err
	}

	return s.Save(a.Entity(), a.Records())
}
