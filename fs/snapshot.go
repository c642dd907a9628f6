// Package fs provides file-based storage for snapshots.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/blogwatch"
)

// DefaultSnapshotPath is where the snapshot is kept unless configured otherwise.
const DefaultSnapshotPath = "last_articles.json"

// Ensure SnapshotStore implements blogwatch.SnapshotStore at compile time.
var _ blogwatch.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps the snapshot as a pretty-printed JSON array in a
// single file. Saves write a sibling temp file and rename it over the
// target, so a crashed save leaves the previous snapshot in place.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a SnapshotStore backed by the file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

func (s *SnapshotStore) tempPath() string {
	return s.path + ".tmp"
}

// Load reads the snapshot. Returns ENOTFOUND if the file does not exist and
// EINVALID if it is not a JSON array of items.
func (s *SnapshotStore) Load(ctx context.Context) ([]*blogwatch.Item, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, blogwatch.Errorf(blogwatch.ENOTFOUND, "snapshot %q not found", s.path)
	} else if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var raw []*blogwatch.Item
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, blogwatch.Errorf(blogwatch.EINVALID, "snapshot %q is malformed: %v", s.path, err)
	}

	items := make([]*blogwatch.Item, 0, len(raw))
	for _, item := range raw {
		if item != nil {
			items = append(items, item)
		}
	}
	return items, nil
}

// Save replaces the snapshot with items. Non-ASCII text is written as is.
func (s *SnapshotStore) Save(ctx context.Context, items []*blogwatch.Item) error {
	if items == nil {
		items = []*blogwatch.Item{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := os.WriteFile(s.tempPath(), buf.Bytes(), 0644); err != nil {
		return err
	}

	if err := os.Rename(s.tempPath(), s.path); err != nil {
		_ = os.Remove(s.tempPath())
		return err
	}

	return nil
}
