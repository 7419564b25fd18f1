package attachments

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

// Store keeps building documents on disk under <root>/<building id>/<file name>.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) dir(buildingID int64) string {
	return filepath.Join(s.root, strconv.FormatInt(buildingID, 10))
}

// cleanName reduces name to its base name and rejects names that would escape the directory.
func cleanName(name string) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "" || base == "." || base == ".." || base == "/" || base == string(filepath.Separator) {
		return "", ErrInvalidName
	}
	return base, nil
}

// Save writes r as name and returns the stored name.
func (s *Store) Save(buildingID int64, name string, r io.Reader) (string, error) {
	base, err := cleanName(name)
	if err != nil {
		return "", err
	}

	dir := s.dir(buildingID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, base))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return base, nil
}

// List returns the file names of a building, sorted. A building without files gives an empty list.
func (s *Store) List(buildingID int64) ([]string, error) {
	entries, err := os.ReadDir(s.dir(buildingID))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Path returns the location of an existing file.
func (s *Store) Path(buildingID int64, name string) (string, error) {
	base, err := cleanName(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir(buildingID), base)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	return path, nil
}

func (s *Store) Delete(buildingID int64, name string) error {
	path, err := s.Path(buildingID, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeleteAll removes every file of a building.
func (s *Store) DeleteAll(buildingID int64) error {
	if err := os.RemoveAll(s.dir(buildingID)); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}
