package survey

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketry/backend/internal/application/participation"
	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
)

// Service exposes the survey flavour of the participation flow. Surveys
// have no matching phase: accepted influencers go straight to answering.
type Service struct {
	lifecycle *participation.LifecycleService
	orders    order.ProductOrderRepository
}

// NewService creates a new survey Service
func NewService(lifecycle *participation.LifecycleService, orders order.ProductOrderRepository) *Service {
	return &Service{lifecycle: lifecycle, orders: orders}
}

// CreateSurvey creates a new survey order for a client
func (s *Service) CreateSurvey(ctx context.Context, clientID uuid.UUID, req participation.CreateOrderRequest) (*participation.OrderResponse, error) {
	req.Kind = string(order.KindSurvey)
	if req.DeliverableType == "" {
		req.DeliverableType = string(order.DeliverableAnswers)
	}
	return s.lifecycle.CreateOrder(ctx, clientID, req)
}

// GetSurvey retrieves a survey with its participant roster
func (s *Service) GetSurvey(ctx context.Context, orderID uuid.UUID) (*participation.OrderDetailResponse, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.GetOrder(ctx, orderID)
}

// ListSurveys retrieves surveys with filtering and pagination
func (s *Service) ListSurveys(ctx context.Context, filter shared.Filter) (shared.Paginated[participation.OrderResponse], error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["kind"] = string(order.KindSurvey)
	return s.lifecycle.ListOrders(ctx, filter)
}

// AddInfluencers puts influencers on the survey roster
func (s *Service) AddInfluencers(ctx context.Context, orderID uuid.UUID, req participation.AddInfluencersRequest) ([]participation.ParticipantResponse, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.AddInfluencers(ctx, orderID, req)
}

// InviteInfluencers sends survey invitations
func (s *Service) InviteInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) error {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.InviteInfluencers(ctx, orderID, influencerIDs)
}

// RemoveInfluencers takes influencers off the survey
func (s *Service) RemoveInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (*participation.RemoveInfluencersResponse, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.RemoveInfluencers(ctx, orderID, influencerIDs)
}

// ApproveAnswers accepts answers awaiting review
func (s *Service) ApproveAnswers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (int64, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return 0, err
	}
	return s.lifecycle.ApproveSubmissions(ctx, orderID, influencerIDs)
}

// DisapproveAnswers rejects submitted answers
func (s *Service) DisapproveAnswers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (int64, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return 0, err
	}
	return s.lifecycle.DisapproveSubmissions(ctx, orderID, influencerIDs)
}

// AcceptInvitation records an influencer's acceptance. Surveys skip the
// matching phase, so the participant moves straight to answering.
func (s *Service) AcceptInvitation(ctx context.Context, orderID, influencerID uuid.UUID) error {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.AcceptInvitation(ctx, orderID, influencerID)
}

// DeclineInvitation records an influencer's refusal
func (s *Service) DeclineInvitation(ctx context.Context, orderID, influencerID uuid.UUID) error {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.DeclineInvitation(ctx, orderID, influencerID)
}

// Withdraw lets an influencer leave the survey
func (s *Service) Withdraw(ctx context.Context, orderID, influencerID uuid.UUID) error {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.RemoveSelf(ctx, orderID, influencerID)
}

// SubmitAnswers stores an influencer's answers for review
func (s *Service) SubmitAnswers(ctx context.Context, orderID, influencerID uuid.UUID, req participation.SubmitDataRequest) (*participation.SubmissionResponse, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.SubmitData(ctx, orderID, influencerID, req)
}

// GetAnswers retrieves an influencer's submitted answers
func (s *Service) GetAnswers(ctx context.Context, orderID, influencerID uuid.UUID) (*participation.SubmissionResponse, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.GetSubmission(ctx, orderID, influencerID)
}

// StartSurvey moves the survey from preparation to ongoing
func (s *Service) StartSurvey(ctx context.Context, orderID uuid.UUID) (*participation.OrderResponse, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.StartOrder(ctx, orderID)
}

// FinishSurvey closes the survey and queues approved answers for payout
func (s *Service) FinishSurvey(ctx context.Context, orderID uuid.UUID) (*participation.OrderResponse, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.FinishOrder(ctx, orderID)
}

// ArchiveSurvey puts a finished survey into the archive
func (s *Service) ArchiveSurvey(ctx context.Context, orderID uuid.UUID) (*participation.OrderResponse, error) {
	if err := s.requireSurvey(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.ArchiveOrder(ctx, orderID)
}

func (s *Service) requireSurvey(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Kind != order.KindSurvey {
		return shared.NewDomainError("BAD_REQUEST", "Order is not a survey")
	}
	return nil
}
