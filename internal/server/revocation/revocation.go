// Package revocation keeps the ids (jti) of logged-out session tokens until
// the tokens would have expired anyway.
package revocation

import (
	"context"
	"time"
)

// Store records revoked token ids. Entries need not outlive until.
type Store interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
