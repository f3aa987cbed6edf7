package participation

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/application/notification"
	"github.com/marketry/backend/internal/domain/identity"
	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
	"github.com/marketry/backend/internal/domain/shared/valueobject"
)

// In-memory fakes. The flow tests below drive multi-step state machines,
// so stateful fakes read better than call-by-call mocks.

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*order.ProductOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*order.ProductOrder)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.ProductOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *order.ProductOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*order.ProductOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}
	return o, nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*order.ProductOrder], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*order.ProductOrder, 0, len(r.orders))
	for _, o := range r.orders {
		items = append(items, o)
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

type fakeParticipantRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*order.Participant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{rows: make(map[uuid.UUID]*order.Participant)}
}

func (r *fakeParticipantRepo) Create(ctx context.Context, p *order.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.OrderID == p.OrderID && row.InfluencerID == p.InfluencerID {
			return shared.NewDomainError("CONFLICT", "Participant already exists")
		}
	}
	r.rows[p.ID] = p
	return nil
}

func (r *fakeParticipantRepo) Update(ctx context.Context, p *order.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[p.ID] = p
	return nil
}

func (r *fakeParticipantRepo) FindByID(ctx context.Context, id uuid.UUID) (*order.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Participant not found")
	}
	return p, nil
}

func (r *fakeParticipantRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.Participant, 0)
	for _, p := range r.rows {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) FindByOrderAndInfluencer(ctx context.Context, orderID, influencerID uuid.UUID) (*order.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.OrderID == orderID && p.InfluencerID == influencerID {
			return p, nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Participant not found")
}

func (r *fakeParticipantRepo) FindByOrderAndInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) ([]*order.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(influencerIDs))
	for _, id := range influencerIDs {
		wanted[id] = true
	}
	out := make([]*order.Participant, 0)
	for _, p := range r.rows {
		if p.OrderID == orderID && wanted[p.InfluencerID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) FindByInfluencer(ctx context.Context, influencerID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Participant], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.Participant, 0)
	for _, p := range r.rows {
		if p.InfluencerID == influencerID {
			out = append(out, p)
		}
	}
	return shared.NewPaginated(out, int64(len(out)), 1, 20), nil
}

func (r *fakeParticipantRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID, from, to order.ParticipantStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(influencerIDs))
	for _, id := range influencerIDs {
		wanted[id] = true
	}
	var n int64
	for _, p := range r.rows {
		if p.OrderID == orderID && wanted[p.InfluencerID] && p.Status == from {
			p.Status = to
			n++
		}
	}
	return n, nil
}

func (r *fakeParticipantRepo) UpdateStatusForOrder(ctx context.Context, orderID uuid.UUID, from, to order.ParticipantStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.rows {
		if p.OrderID == orderID && p.Status == from {
			p.Status = to
			n++
		}
	}
	return n, nil
}

type fakeSubmissionRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*order.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{rows: make(map[uuid.UUID]*order.Submission)}
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, s *order.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = s
	return nil
}

func (r *fakeSubmissionRepo) Update(ctx context.Context, s *order.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[s.ID] = s
	return nil
}

func (r *fakeSubmissionRepo) FindByOrderAndInfluencer(ctx context.Context, orderID, influencerID uuid.UUID) (*order.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.OrderID == orderID && s.InfluencerID == influencerID {
			return s, nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Submission not found")
}

func (r *fakeSubmissionRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*order.Submission, 0)
	for _, s := range r.rows {
		if s.OrderID == orderID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeInfluencerRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*identity.Influencer
}

func newFakeInfluencerRepo() *fakeInfluencerRepo {
	return &fakeInfluencerRepo{rows: make(map[uuid.UUID]*identity.Influencer)}
}

func (r *fakeInfluencerRepo) Create(ctx context.Context, i *identity.Influencer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[i.ID] = i
	return nil
}

func (r *fakeInfluencerRepo) Update(ctx context.Context, i *identity.Influencer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[i.ID] = i
	return nil
}

func (r *fakeInfluencerRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Influencer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.rows[id]
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Influencer not found")
	}
	return i, nil
}

func (r *fakeInfluencerRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Influencer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*identity.Influencer, 0)
	for _, id := range ids {
		if i, ok := r.rows[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInfluencerRepo) FindByHandle(ctx context.Context, handle string) (*identity.Influencer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.rows {
		if i.Handle == handle {
			return i, nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Influencer not found")
}

func (r *fakeInfluencerRepo) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*identity.Influencer], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*identity.Influencer, 0, len(r.rows))
	for _, i := range r.rows {
		out = append(out, i)
	}
	return shared.NewPaginated(out, int64(len(out)), 1, 20), nil
}

// passthroughTx runs the function directly; the fakes have no real
// transactions to manage
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingNotifier remembers which notifications were sent
type recordingNotifier struct {
	notification.NopNotifier
	mu          sync.Mutex
	invited     [][]uuid.UUID
	notSelected [][]uuid.UUID
	removed     [][]uuid.UUID
}

func (n *recordingNotifier) InfluencersInvited(ctx context.Context, o *order.ProductOrder, ids []uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.invited = append(n.invited, ids)
}

func (n *recordingNotifier) InfluencersNotSelected(ctx context.Context, o *order.ProductOrder, ids []uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notSelected = append(n.notSelected, ids)
}

func (n *recordingNotifier) InfluencersRemoved(ctx context.Context, o *order.ProductOrder, ids []uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.removed = append(n.removed, ids)
}

type testEnv struct {
	svc          *LifecycleService
	orders       *fakeOrderRepo
	participants *fakeParticipantRepo
	submissions  *fakeSubmissionRepo
	influencers  *fakeInfluencerRepo
	notifier     *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		orders:       newFakeOrderRepo(),
		participants: newFakeParticipantRepo(),
		submissions:  newFakeSubmissionRepo(),
		influencers:  newFakeInfluencerRepo(),
		notifier:     &recordingNotifier{},
	}
	env.svc = NewLifecycleService(
		env.orders, env.participants, env.submissions, env.influencers,
		passthroughTx{}, zap.NewNop())
	env.svc.SetNotifier(env.notifier)
	return env
}

func (env *testEnv) createOrder(t *testing.T, kind order.Kind) uuid.UUID {
	deliverable := order.DeliverablePost
	if kind == order.KindSurvey {
		deliverable = order.DeliverableAnswers
	}
	o, err := order.NewProductOrder(uuid.New(), kind, "Launch", deliverable)
	require.NoError(t, err)
	require.NoError(t, env.orders.Create(context.Background(), o))
	return o.ID
}

func (env *testEnv) createInfluencer(t *testing.T, handle string, desired int64) uuid.UUID {
	inf, err := identity.NewInfluencer(handle, "Test "+handle, handle+"@example.com")
	require.NoError(t, err)
	if desired > 0 {
		require.NoError(t, inf.SetDesiredAmount(string(order.DeliverablePost),
			decimal.NewFromInt(desired), valueobject.USD))
		require.NoError(t, inf.SetDesiredAmount(string(order.DeliverableAnswers),
			decimal.NewFromInt(desired), valueobject.USD))
	}
	require.NoError(t, env.influencers.Create(context.Background(), inf))
	return inf.ID
}

func (env *testEnv) addAndInvite(t *testing.T, orderID uuid.UUID, influencerIDs ...uuid.UUID) {
	entries := make([]AddInfluencerEntry, 0, len(influencerIDs))
	for _, id := range influencerIDs {
		entries = append(entries, AddInfluencerEntry{InfluencerID: id})
	}
	_, err := env.svc.AddInfluencers(context.Background(), orderID, AddInfluencersRequest{Influencers: entries})
	require.NoError(t, err)
	require.NoError(t, env.svc.InviteInfluencers(context.Background(), orderID, influencerIDs))
}

func (env *testEnv) statusOf(t *testing.T, orderID, influencerID uuid.UUID) order.ParticipantStatus {
	p, err := env.participants.FindByOrderAndInfluencer(context.Background(), orderID, influencerID)
	require.NoError(t, err)
	return p.Status
}

func errCode(t *testing.T, err error) string {
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestLifecycleService_AddInfluencers(t *testing.T) {
	ctx := context.Background()

	t.Run("adds with desired amount", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)

		result, err := env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: infID}},
		})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "ADDED", result[0].Status)
		assert.True(t, result[0].AgreedAmount.Equal(decimal.NewFromInt(500)))
	})

	t.Run("explicit amount overrides desired amount", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)

		amount := decimal.NewFromInt(900)
		result, err := env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: infID, Amount: &amount}},
		})
		require.NoError(t, err)
		assert.True(t, result[0].AgreedAmount.Equal(amount))
	})

	t.Run("missing desired amount fails the batch", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		priced := env.createInfluencer(t, "ada", 500)
		unpriced := env.createInfluencer(t, "bob", 0)

		_, err := env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: priced}, {InfluencerID: unpriced}},
		})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
		assert.Contains(t, err.Error(), unpriced.String())

		// Nothing was written
		roster, err := env.participants.FindByOrder(ctx, orderID)
		require.NoError(t, err)
		assert.Empty(t, roster)
	})

	t.Run("unknown influencer is not found", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		ghost := uuid.New()

		_, err := env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: ghost}},
		})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
		assert.Contains(t, err.Error(), ghost.String())
	})

	t.Run("re-adding keeps a single row and refreshes terms", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)

		_, err := env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: infID}},
		})
		require.NoError(t, err)

		amount := decimal.NewFromInt(750)
		_, err = env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: infID, Amount: &amount}},
		})
		require.NoError(t, err)

		roster, err := env.participants.FindByOrder(ctx, orderID)
		require.NoError(t, err)
		require.Len(t, roster, 1)
		assert.True(t, roster[0].AgreedAmount.Equal(amount))
	})

	t.Run("re-adding an invited influencer still refreshes terms", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)

		amount := decimal.NewFromInt(850)
		_, err := env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: infID, Amount: &amount}},
		})
		require.NoError(t, err)

		p, err := env.participants.FindByOrderAndInfluencer(ctx, orderID, infID)
		require.NoError(t, err)
		assert.True(t, p.AgreedAmount.Equal(amount))
		assert.Equal(t, order.ParticipantInvited, p.Status)
	})

	t.Run("cannot add to a finished order", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)

		_, err := env.svc.StartOrder(ctx, orderID)
		require.NoError(t, err)
		_, err = env.svc.FinishOrder(ctx, orderID)
		require.NoError(t, err)

		_, err = env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: infID}},
		})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
	})
}

func TestLifecycleService_InviteInfluencers(t *testing.T) {
	ctx := context.Background()

	t.Run("invites added influencers", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)

		assert.Equal(t, order.ParticipantInvited, env.statusOf(t, orderID, infID))
		assert.Len(t, env.notifier.invited, 1)
	})

	t.Run("re-invite is idempotent and re-notifies", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)

		require.NoError(t, env.svc.InviteInfluencers(ctx, orderID, []uuid.UUID{infID}))
		assert.Equal(t, order.ParticipantInvited, env.statusOf(t, orderID, infID))
		assert.Len(t, env.notifier.invited, 2)
	})

	t.Run("non participant fails the batch", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		ghost := uuid.New()

		_, err := env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: infID}},
		})
		require.NoError(t, err)

		err = env.svc.InviteInfluencers(ctx, orderID, []uuid.UUID{infID, ghost})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
		assert.Contains(t, err.Error(), ghost.String())

		// Validation failed before any mutation
		assert.Equal(t, order.ParticipantAdded, env.statusOf(t, orderID, infID))
	})

	t.Run("cannot invite an accepted influencer", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, infID))

		err := env.svc.InviteInfluencers(ctx, orderID, []uuid.UUID{infID})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
	})
}

func TestLifecycleService_Invitations(t *testing.T) {
	ctx := context.Background()

	t.Run("campaign acceptance enters matching", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)

		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, infID))
		assert.Equal(t, order.ParticipantMatching, env.statusOf(t, orderID, infID))
	})

	t.Run("survey acceptance skips matching", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindSurvey)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)

		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, infID))
		assert.Equal(t, order.ParticipantToBeSubmitted, env.statusOf(t, orderID, infID))
	})

	t.Run("decline then accept fails", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)

		require.NoError(t, env.svc.DeclineInvitation(ctx, orderID, infID))
		err := env.svc.AcceptInvitation(ctx, orderID, infID)
		require.Error(t, err)
		assert.Equal(t, order.ParticipantDeclined, env.statusOf(t, orderID, infID))
	})

	t.Run("declined influencer cannot be re-invited", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)
		require.NoError(t, env.svc.DeclineInvitation(ctx, orderID, infID))

		err := env.svc.InviteInfluencers(ctx, orderID, []uuid.UUID{infID})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
		assert.Equal(t, order.ParticipantDeclined, env.statusOf(t, orderID, infID))
	})

	t.Run("accept for unknown participant is not found", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)

		err := env.svc.AcceptInvitation(ctx, orderID, uuid.New())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

func TestLifecycleService_RemoveInfluencers(t *testing.T) {
	ctx := context.Background()

	t.Run("partitions into not selected and removed", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		pending := env.createInfluencer(t, "ada", 500)
		working := env.createInfluencer(t, "bob", 500)
		env.addAndInvite(t, orderID, pending, working)
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, working))
		require.NoError(t, env.svc.ConfirmMatches(ctx, orderID, []uuid.UUID{working}))

		resp, err := env.svc.RemoveInfluencers(ctx, orderID, []uuid.UUID{pending, working})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.RemovedCount)

		assert.Equal(t, order.ParticipantNotSelected, env.statusOf(t, orderID, pending))
		assert.Equal(t, order.ParticipantRemoved, env.statusOf(t, orderID, working))

		require.Len(t, env.notifier.notSelected, 1)
		assert.Equal(t, []uuid.UUID{pending}, env.notifier.notSelected[0])
		require.Len(t, env.notifier.removed, 1)
		assert.Equal(t, []uuid.UUID{working}, env.notifier.removed[0])
	})

	t.Run("matching influencer was never selected", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, infID))

		resp, err := env.svc.RemoveInfluencers(ctx, orderID, []uuid.UUID{infID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.RemovedCount)
		assert.Equal(t, order.ParticipantNotSelected, env.statusOf(t, orderID, infID))
	})

	t.Run("payable influencer is removed", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		payable := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, payable)

		p, err := env.participants.FindByOrderAndInfluencer(ctx, orderID, payable)
		require.NoError(t, err)
		p.Status = order.ParticipantToBePaid
		require.NoError(t, env.participants.Update(ctx, p))

		resp, err := env.svc.RemoveInfluencers(ctx, orderID, []uuid.UUID{payable})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.RemovedCount)
		assert.Equal(t, order.ParticipantRemoved, env.statusOf(t, orderID, payable))
	})

	t.Run("branch state influencer is skipped and not counted", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		pending := env.createInfluencer(t, "ada", 500)
		declined := env.createInfluencer(t, "bob", 500)
		env.addAndInvite(t, orderID, pending, declined)
		require.NoError(t, env.svc.DeclineInvitation(ctx, orderID, declined))

		resp, err := env.svc.RemoveInfluencers(ctx, orderID, []uuid.UUID{pending, declined})
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.RemovedCount)
		assert.Equal(t, order.ParticipantNotSelected, env.statusOf(t, orderID, pending))
		assert.Equal(t, order.ParticipantDeclined, env.statusOf(t, orderID, declined))
	})
}

func TestLifecycleService_RemoveSelf(t *testing.T) {
	ctx := context.Background()

	t.Run("bad request before invitation", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		_, err := env.svc.AddInfluencers(ctx, orderID, AddInfluencersRequest{
			Influencers: []AddInfluencerEntry{{InfluencerID: infID}},
		})
		require.NoError(t, err)

		err = env.svc.RemoveSelf(ctx, orderID, infID)
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
	})

	t.Run("forbidden while invitation is open", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)

		err := env.svc.RemoveSelf(ctx, orderID, infID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
		assert.Equal(t, order.ParticipantInvited, env.statusOf(t, orderID, infID))
	})

	t.Run("withdraws after acceptance", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, infID))

		require.NoError(t, env.svc.RemoveSelf(ctx, orderID, infID))
		assert.Equal(t, order.ParticipantWithdrawn, env.statusOf(t, orderID, infID))
	})
}

func TestLifecycleService_Submissions(t *testing.T) {
	ctx := context.Background()

	// Brings a campaign influencer to ToBeSubmitted on a started order
	setup := func(t *testing.T) (*testEnv, uuid.UUID, uuid.UUID) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)
		_, err := env.svc.StartOrder(ctx, orderID)
		require.NoError(t, err)
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, infID))
		require.NoError(t, env.svc.ConfirmMatches(ctx, orderID, []uuid.UUID{infID}))
		return env, orderID, infID
	}

	t.Run("submit moves to review and stores the work", func(t *testing.T) {
		env, orderID, infID := setup(t)

		sub, err := env.svc.SubmitData(ctx, orderID, infID, SubmitDataRequest{Payload: `{"url":"a"}`})
		require.NoError(t, err)
		assert.Equal(t, 1, sub.Revision)
		assert.Equal(t, order.ParticipantToBeApproved, env.statusOf(t, orderID, infID))
	})

	t.Run("resubmission after rejection amends in place", func(t *testing.T) {
		env, orderID, infID := setup(t)

		_, err := env.svc.SubmitData(ctx, orderID, infID, SubmitDataRequest{Payload: `{"url":"a"}`})
		require.NoError(t, err)
		_, err = env.svc.DisapproveSubmissions(ctx, orderID, []uuid.UUID{infID})
		require.NoError(t, err)
		assert.Equal(t, order.ParticipantNotApproved, env.statusOf(t, orderID, infID))

		sub, err := env.svc.SubmitData(ctx, orderID, infID, SubmitDataRequest{Payload: `{"url":"b"}`})
		require.NoError(t, err)
		assert.Equal(t, 2, sub.Revision)
		assert.Equal(t, `{"url":"b"}`, sub.Payload)

		subs, err := env.submissions.FindByOrder(ctx, orderID)
		require.NoError(t, err)
		assert.Len(t, subs, 1)
	})

	t.Run("cannot submit before matching is confirmed", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)
		_, err := env.svc.StartOrder(ctx, orderID)
		require.NoError(t, err)
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, infID))

		_, err = env.svc.SubmitData(ctx, orderID, infID, SubmitDataRequest{Payload: `{"url":"a"}`})
		require.Error(t, err)
	})
}

func TestLifecycleService_Review(t *testing.T) {
	ctx := context.Background()

	// Brings two campaign influencers to ToBeApproved and one to
	// ToBeSubmitted on a started order
	setup := func(t *testing.T) (*testEnv, uuid.UUID, []uuid.UUID, uuid.UUID) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		a := env.createInfluencer(t, "ada", 500)
		b := env.createInfluencer(t, "bob", 500)
		c := env.createInfluencer(t, "cam", 500)
		env.addAndInvite(t, orderID, a, b, c)
		_, err := env.svc.StartOrder(ctx, orderID)
		require.NoError(t, err)
		for _, id := range []uuid.UUID{a, b, c} {
			require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, id))
		}
		require.NoError(t, env.svc.ConfirmMatches(ctx, orderID, []uuid.UUID{a, b, c}))
		for _, id := range []uuid.UUID{a, b} {
			_, err := env.svc.SubmitData(ctx, orderID, id, SubmitDataRequest{Payload: `{"url":"x"}`})
			require.NoError(t, err)
		}
		return env, orderID, []uuid.UUID{a, b}, c
	}

	t.Run("approval applies order wide", func(t *testing.T) {
		env, orderID, submitted, notSubmitted := setup(t)

		// Approve naming only the first submitter; the second one is
		// approved as well because approval sweeps the whole order
		affected, err := env.svc.ApproveSubmissions(ctx, orderID, submitted[:1])
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
		assert.Equal(t, order.ParticipantApproved, env.statusOf(t, orderID, submitted[0]))
		assert.Equal(t, order.ParticipantApproved, env.statusOf(t, orderID, submitted[1]))

		// The influencer who never submitted is untouched
		assert.Equal(t, order.ParticipantToBeSubmitted, env.statusOf(t, orderID, notSubmitted))
	})

	t.Run("naming an ineligible influencer fails validation", func(t *testing.T) {
		env, orderID, submitted, notSubmitted := setup(t)

		_, err := env.svc.ApproveSubmissions(ctx, orderID, []uuid.UUID{submitted[0], notSubmitted})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
		assert.Contains(t, err.Error(), notSubmitted.String())

		// Nothing changed, including the eligible influencer
		assert.Equal(t, order.ParticipantToBeApproved, env.statusOf(t, orderID, submitted[0]))
	})

	t.Run("disapproval applies order wide", func(t *testing.T) {
		env, orderID, submitted, _ := setup(t)

		affected, err := env.svc.DisapproveSubmissions(ctx, orderID, submitted[:1])
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
		assert.Equal(t, order.ParticipantNotApproved, env.statusOf(t, orderID, submitted[0]))
		assert.Equal(t, order.ParticipantNotApproved, env.statusOf(t, orderID, submitted[1]))
	})

	t.Run("approval sweeps previously rejected submissions", func(t *testing.T) {
		env, orderID, submitted, _ := setup(t)

		_, err := env.svc.DisapproveSubmissions(ctx, orderID, submitted[:1])
		require.NoError(t, err)

		// Naming a rejected influencer is valid for approval; the sweep
		// picks up everyone still marked not approved
		affected, err := env.svc.ApproveSubmissions(ctx, orderID, submitted[:1])
		require.NoError(t, err)
		assert.Equal(t, int64(2), affected)
		assert.Equal(t, order.ParticipantApproved, env.statusOf(t, orderID, submitted[0]))
		assert.Equal(t, order.ParticipantApproved, env.statusOf(t, orderID, submitted[1]))
	})

	t.Run("disapproval does not accept already rejected influencers", func(t *testing.T) {
		env, orderID, submitted, _ := setup(t)

		_, err := env.svc.DisapproveSubmissions(ctx, orderID, submitted[:1])
		require.NoError(t, err)

		_, err = env.svc.DisapproveSubmissions(ctx, orderID, submitted[:1])
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
	})

	t.Run("disapproval is forbidden on a finished order", func(t *testing.T) {
		env, orderID, submitted, _ := setup(t)
		_, err := env.svc.FinishOrder(ctx, orderID)
		require.NoError(t, err)

		_, err = env.svc.DisapproveSubmissions(ctx, orderID, submitted[:1])
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})
}

func TestLifecycleService_OrderLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("finish moves approved influencers to payable", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindSurvey)
		a := env.createInfluencer(t, "ada", 500)
		b := env.createInfluencer(t, "bob", 500)
		env.addAndInvite(t, orderID, a, b)
		_, err := env.svc.StartOrder(ctx, orderID)
		require.NoError(t, err)

		// Only a completes the flow
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, a))
		_, err = env.svc.SubmitData(ctx, orderID, a, SubmitDataRequest{Payload: `{"answers":[1]}`})
		require.NoError(t, err)
		_, err = env.svc.ApproveSubmissions(ctx, orderID, []uuid.UUID{a})
		require.NoError(t, err)

		_, err = env.svc.FinishOrder(ctx, orderID)
		require.NoError(t, err)

		assert.Equal(t, order.ParticipantToBePaid, env.statusOf(t, orderID, a))
		assert.Equal(t, order.ParticipantInvited, env.statusOf(t, orderID, b))
	})

	t.Run("double start fails", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)

		_, err := env.svc.StartOrder(ctx, orderID)
		require.NoError(t, err)
		_, err = env.svc.StartOrder(ctx, orderID)
		require.Error(t, err)
	})

	t.Run("archive requires a finished order", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)

		_, err := env.svc.ArchiveOrder(ctx, orderID)
		require.Error(t, err)

		_, err = env.svc.StartOrder(ctx, orderID)
		require.NoError(t, err)
		_, err = env.svc.FinishOrder(ctx, orderID)
		require.NoError(t, err)
		resp, err := env.svc.ArchiveOrder(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, "ARCHIVED", resp.Status)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.StartOrder(ctx, uuid.New())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

func TestLifecycleService_ConfirmMatches(t *testing.T) {
	ctx := context.Background()

	t.Run("surveys have no matching phase", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindSurvey)
		infID := env.createInfluencer(t, "ada", 500)
		env.addAndInvite(t, orderID, infID)
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, infID))

		err := env.svc.ConfirmMatches(ctx, orderID, []uuid.UUID{infID})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
	})

	t.Run("influencer outside matching fails the batch", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := env.createOrder(t, order.KindCampaign)
		accepted := env.createInfluencer(t, "ada", 500)
		invited := env.createInfluencer(t, "bob", 500)
		env.addAndInvite(t, orderID, accepted, invited)
		require.NoError(t, env.svc.AcceptInvitation(ctx, orderID, accepted))

		err := env.svc.ConfirmMatches(ctx, orderID, []uuid.UUID{accepted, invited})
		require.Error(t, err)
		assert.Equal(t, "BAD_REQUEST", errCode(t, err))
		assert.Equal(t, order.ParticipantMatching, env.statusOf(t, orderID, accepted))
	})
}
