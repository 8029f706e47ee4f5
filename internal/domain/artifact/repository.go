package artifact

import "context"

// Repository persists published artifacts. Load decodes the stored payload
// into dst and returns ErrNotFound when the artifact was never written.
type Repository interface {
	Save(ctx context.Context, artifacts []Artifact) error
	Load(ctx context.Context, key Key, dst any) error
	Exists(ctx context.Context, key Key) (bool, error)
}
