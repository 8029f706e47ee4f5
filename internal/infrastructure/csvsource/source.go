package csvsource

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

// FileSource reads and replaces the record set stored in one CSV file.
type FileSource struct {
	path    string
	decoder *Decoder
	mu      sync.RWMutex
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, decoder: NewDecoder()}
}

func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) ListPlayerRecords(ctx context.Context) ([]gameweek.PlayerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open records csv %s", s.path)
	}
	defer f.Close()

	return s.decoder.Decode(f)
}

// ReplacePlayerRecords rewrites the file through a temp file and rename so
// readers never observe a partial CSV.
func (s *FileSource) ReplacePlayerRecords(ctx context.Context, records []gameweek.PlayerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create records dir %s", dir)
	}
	tmp, err := os.CreateTemp(dir, ".records-*.csv")
	if err != nil {
		return crerr.Wrap(err, "create temp records csv")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return crerr.Wrap(err, "write temp records csv")
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrap(err, "close temp records csv")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return crerr.Wrapf(err, "replace records csv %s", s.path)
	}
	return nil
}
