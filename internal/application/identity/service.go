package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/application/participation"
	"github.com/marketry/backend/internal/domain/identity"
	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
	"github.com/marketry/backend/internal/domain/shared/valueobject"
)

// Service manages the influencer directory: profiles, published asking
// prices, and an influencer's view of their own participations.
type Service struct {
	influencers  identity.InfluencerRepository
	participants order.ParticipantRepository
	orders       order.ProductOrderRepository
	logger       *zap.Logger
}

// NewService creates a new identity Service
func NewService(
	influencers identity.InfluencerRepository,
	participants order.ParticipantRepository,
	orders order.ProductOrderRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		influencers:  influencers,
		participants: participants,
		orders:       orders,
		logger:       logger,
	}
}

// CreateInfluencer registers a new influencer
func (s *Service) CreateInfluencer(ctx context.Context, req CreateInfluencerRequest) (*InfluencerResponse, error) {
	inf, err := identity.NewInfluencer(req.Handle, req.DisplayName, req.Email)
	if err != nil {
		return nil, err
	}
	if err := s.influencers.Create(ctx, inf); err != nil {
		return nil, err
	}

	s.logger.Info("influencer registered",
		zap.String("influencer_id", inf.ID.String()),
		zap.String("handle", inf.Handle))

	resp := ToInfluencerResponse(inf)
	return &resp, nil
}

// GetInfluencer retrieves an influencer by id
func (s *Service) GetInfluencer(ctx context.Context, id uuid.UUID) (*InfluencerResponse, error) {
	inf, err := s.influencers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInfluencerResponse(inf)
	return &resp, nil
}

// ListInfluencers retrieves influencers with filtering and pagination
func (s *Service) ListInfluencers(ctx context.Context, filter shared.Filter) (shared.Paginated[InfluencerResponse], error) {
	page, err := s.influencers.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[InfluencerResponse]{}, err
	}

	items := make([]InfluencerResponse, 0, len(page.Items))
	for _, inf := range page.Items {
		items = append(items, ToInfluencerResponse(inf))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// UpdateInfluencer applies a partial profile update
func (s *Service) UpdateInfluencer(ctx context.Context, id uuid.UUID, req UpdateInfluencerRequest) (*InfluencerResponse, error) {
	inf, err := s.influencers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if *req.DisplayName == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Display name cannot be empty")
		}
		inf.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Email cannot be empty")
		}
		inf.Email = *req.Email
	}
	if req.Active != nil {
		inf.Active = *req.Active
	}

	if err := s.influencers.Update(ctx, inf); err != nil {
		return nil, err
	}
	resp := ToInfluencerResponse(inf)
	return &resp, nil
}

// SetDesiredAmount publishes or replaces an influencer's asking price for
// one deliverable type
func (s *Service) SetDesiredAmount(ctx context.Context, id uuid.UUID, req SetDesiredAmountRequest) (*InfluencerResponse, error) {
	if !order.DeliverableType(req.DeliverableType).IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid deliverable type: "+req.DeliverableType)
	}

	inf, err := s.influencers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := inf.SetDesiredAmount(req.DeliverableType, req.Amount, valueobject.Currency(req.Currency)); err != nil {
		return nil, err
	}
	if err := s.influencers.Update(ctx, inf); err != nil {
		return nil, err
	}

	resp := ToInfluencerResponse(inf)
	return &resp, nil
}

// ParticipationResponse is one order an influencer takes part in,
// together with their status on it
type ParticipationResponse struct {
	Order       participation.OrderResponse       `json:"order"`
	Participant participation.ParticipantResponse `json:"participant"`
}

// ListParticipations retrieves the orders an influencer takes part in
func (s *Service) ListParticipations(ctx context.Context, influencerID uuid.UUID, filter shared.Filter) (shared.Paginated[ParticipationResponse], error) {
	page, err := s.participants.FindByInfluencer(ctx, influencerID, filter)
	if err != nil {
		return shared.Paginated[ParticipationResponse]{}, err
	}

	items := make([]ParticipationResponse, 0, len(page.Items))
	for _, p := range page.Items {
		o, err := s.orders.FindByID(ctx, p.OrderID)
		if err != nil {
			return shared.Paginated[ParticipationResponse]{}, err
		}
		items = append(items, ParticipationResponse{
			Order:       participation.ToOrderResponse(o),
			Participant: participation.ToParticipantResponse(p, o.Kind),
		})
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}
