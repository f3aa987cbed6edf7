package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketry/backend/internal/domain/shared"
)

// InfluencerRepository defines the persistence contract for influencers
type InfluencerRepository interface {
	Create(ctx context.Context, i *Influencer) error
	Update(ctx context.Context, i *Influencer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Influencer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Influencer, error)
	FindByHandle(ctx context.Context, handle string) (*Influencer, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*Influencer], error)
}
