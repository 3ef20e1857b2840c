package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const jsonIndent = "    "

// jsonStore keeps History in a single human-readable JSON file.
type jsonStore struct {
	path string
}

func newJSONStore(path string) *jsonStore {
	return &jsonStore{path: path}
}

func (j *jsonStore) Close() error { return nil }

// Load reads the history file. A missing or empty file yields an empty History.
func (j *jsonStore) Load(ctx context.Context) (History, error) {
	if err := ctx.Err(); err != nil {
		return History{}, err
	}

	raw, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return History{}, nil
		}
		return History{}, fmt.Errorf("read history file: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return History{}, nil
	}

	var h History
	if err := json.Unmarshal(raw, &h); err != nil {
		return History{}, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, j.path, err)
	}
	if h == nil {
		return History{}, nil
	}
	return h, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers see either the old or the new file.
func (j *jsonStore) Save(ctx context.Context, h History) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h == nil {
		h = History{}
	}

	payload, err := encodeJSON(h)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	dir := filepath.Dir(j.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(j.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp history file: %w", err)
	}
	if err := os.Rename(tmpName, j.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}

// encodeJSON keeps non-ASCII and HTML characters literal.
func encodeJSON(h History) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)
	if err := enc.Encode(h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
