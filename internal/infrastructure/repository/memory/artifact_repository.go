package memory

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fpl-analyst/internal/domain/artifact"
)

// ArtifactRepository keeps encoded artifacts in memory so Load decodes the
// same way the file store does.
type ArtifactRepository struct {
	mu    sync.RWMutex
	items map[artifact.Key][]byte
}

func NewArtifactRepository() *ArtifactRepository {
	return &ArtifactRepository{items: make(map[artifact.Key][]byte)}
}

func (r *ArtifactRepository) Save(_ context.Context, artifacts []artifact.Artifact) error {
	encoded := make(map[artifact.Key][]byte, len(artifacts))
	for _, item := range artifacts {
		if !item.Key.Valid() {
			return crerr.Wrapf(artifact.ErrInvalidKey, "save %q", item.Key.String())
		}
		raw, err := sonic.ConfigStd.Marshal(item.Payload)
		if err != nil {
			return crerr.Wrapf(err, "encode artifact %s", item.Key)
		}
		encoded[item.Key] = raw
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for key, raw := range encoded {
		r.items[key] = raw
	}
	return nil
}

func (r *ArtifactRepository) Load(_ context.Context, key artifact.Key, dst any) error {
	r.mu.RLock()
	raw, ok := r.items[key]
	r.mu.RUnlock()
	if !ok {
		return crerr.Wrapf(artifact.ErrNotFound, "load %s", key)
	}
	if err := sonic.ConfigStd.Unmarshal(raw, dst); err != nil {
		return crerr.Wrapf(err, "decode artifact %s", key)
	}
	return nil
}

func (r *ArtifactRepository) Exists(_ context.Context, key artifact.Key) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[key]
	return ok, nil
}

// Keys lists the stored artifact keys.
func (r *ArtifactRepository) Keys() []artifact.Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]artifact.Key, 0, len(r.items))
	for key := range r.items {
		out = append(out, key)
	}
	return out
}
