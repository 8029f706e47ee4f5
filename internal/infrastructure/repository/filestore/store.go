package filestore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
	"github.com/valyala/bytebufferpool"
)

const fileExt = ".json"

// encoderAPI sorts map keys so repeated runs produce identical bytes.
var encoderAPI = sonic.ConfigStd

// Store keeps one JSON file per artifact under root/<group>/<name>.json.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) path(key artifact.Key) string {
	return filepath.Join(s.root, string(key.Group), key.Name+fileExt)
}

// Save writes every artifact. Each file is replaced atomically; a failure
// stops the batch and leaves earlier artifacts written.
func (s *Store) Save(ctx context.Context, artifacts []artifact.Artifact) error {
	for _, item := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !item.Key.Valid() {
			return crerr.Wrapf(artifact.ErrInvalidKey, "save %q", item.Key.String())
		}
		if err := s.write(item); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) write(item artifact.Artifact) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoder := encoderAPI.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(item.Payload); err != nil {
		return crerr.Wrapf(err, "encode artifact %s", item.Key)
	}

	target := s.path(item.Key)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create artifact dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+item.Key.Name+"-*"+fileExt)
	if err != nil {
		return crerr.Wrapf(err, "create temp artifact %s", item.Key)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.B); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write artifact %s", item.Key)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close artifact %s", item.Key)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return crerr.Wrapf(err, "publish artifact %s", item.Key)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, key artifact.Key, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !key.Valid() {
		return crerr.Wrapf(artifact.ErrInvalidKey, "load %q", key.String())
	}

	raw, err := os.ReadFile(s.path(key))
	if crerr.Is(err, os.ErrNotExist) {
		return crerr.Wrapf(artifact.ErrNotFound, "load %s", key)
	}
	if err != nil {
		return crerr.Wrapf(err, "read artifact %s", key)
	}
	if err := encoderAPI.Unmarshal(raw, dst); err != nil {
		return crerr.Wrapf(err, "decode artifact %s", key)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, key artifact.Key) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !key.Valid() {
		return false, crerr.Wrapf(artifact.ErrInvalidKey, "stat %q", key.String())
	}

	info, err := os.Stat(s.path(key))
	if crerr.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, crerr.Wrapf(err, "stat artifact %s", key)
	}
	return !info.IsDir(), nil
}
