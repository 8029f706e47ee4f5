package artifact

import crerr "github.com/cockroachdb/errors"

var (
	ErrNotFound   = crerr.New("artifact not found")
	ErrInvalidKey = crerr.New("invalid artifact key")
)
