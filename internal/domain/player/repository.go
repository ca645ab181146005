package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, status Status) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
}
