// Package filestore keeps receipts as <id>.pdf files in a flat directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahintepesi/donation-api/internal/core/domain"
)

const (
	extension = ".pdf"

	// legacyPrefix was used by an earlier naming scheme (receipt_<id>.pdf).
	legacyPrefix = "receipt_"
)

// Store implements ports.ReceiptStore on the local filesystem.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the receipts directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+extension)
}

// Put writes the receipt through a temporary file so readers never see a
// partial document. An existing receipt for the same id is replaced.
func (s *Store) Put(ctx context.Context, id string, pdf []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create receipts directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+id+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(pdf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close receipt: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		log.Printf("Could not set permissions on %s: %v", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path(id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move receipt into place: %w", err)
	}

	return nil
}

// Open returns the receipt file. Returns domain.ErrReceiptNotFound if absent.
func (s *Store) Open(ctx context.Context, id string) (io.ReadCloser, *domain.ReceiptInfo, error) {
	f, err := os.Open(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, domain.ErrReceiptNotFound
		}
		return nil, nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if stat.IsDir() {
		f.Close()
		return nil, nil, domain.ErrReceiptNotFound
	}

	return f, infoFromStat(stat), nil
}

// List returns every .pdf file in the directory (non-recursive), sorted by name.
// A missing directory is not an error.
func (s *Store) List(ctx context.Context) ([]domain.ReceiptInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.ReceiptInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read receipts directory: %w", err)
	}

	receipts := make([]domain.ReceiptInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), extension) {
			continue
		}
		stat, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		receipts = append(receipts, *infoFromStat(stat))
	}

	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].Filename < receipts[j].Filename
	})

	return receipts, nil
}

// infoFromStat uses the modification time: creation time is not portable.
func infoFromStat(stat fs.FileInfo) *domain.ReceiptInfo {
	return &domain.ReceiptInfo{
		ReceiptID: ReceiptIDFromName(stat.Name()),
		Filename:  stat.Name(),
		CreatedAt: stat.ModTime(),
		Size:      stat.Size(),
	}
}

// ReceiptIDFromName derives the receipt id from a stored file or object name.
func ReceiptIDFromName(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, legacyPrefix), extension)
}
