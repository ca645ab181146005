package settings

import "context"

// Repository describes settings persistence needs from use cases.
type Repository interface {
	LoadBidding(ctx context.Context) (Bidding, error)
	SaveBidding(ctx context.Context, b Bidding) error
}
