package finance

import (
	"context"
	"testing"
	"time"

	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDueRepository struct {
	mock.Mock
}

func (m *MockDueRepository) FindByID(ctx context.Context, id uint64) (*finance.Due, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Due), args.Error(1)
}

func (m *MockDueRepository) FindAll(ctx context.Context) ([]finance.Due, error) {
	args := m.Called(ctx)
	return args.Get(0).([]finance.Due), args.Error(1)
}

func (m *MockDueRepository) FindRecent(ctx context.Context, limit int) ([]finance.Due, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]finance.Due), args.Error(1)
}

func (m *MockDueRepository) Save(ctx context.Context, due *finance.Due) error {
	return m.Called(ctx, due).Error(0)
}

var testNow = time.Date(2026, 5, 6, 9, 0, 0, 0, time.UTC)

func newDueService() (*DueService, *MockDueRepository) {
	repo := new(MockDueRepository)
	return NewDueService(repo, shared.FixedClock{At: testNow}), repo
}

func TestDueService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending due", func(t *testing.T) {
		svc, repo := newDueService()
		repo.On("Save", ctx, mock.AnythingOfType("*finance.Due")).
			Run(func(args mock.Arguments) { args.Get(1).(*finance.Due).ID = 4 }).
			Return(nil)

		resp, err := svc.Create(ctx, CreateDueRequest{CustomerName: "Bao", Amount: decimal.NewFromInt(12)})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), resp.ID)
		assert.False(t, resp.IsSettled)
		assert.Equal(t, testNow, resp.CreatedAt)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		svc, repo := newDueService()
		_, err := svc.Create(ctx, CreateDueRequest{CustomerName: "Bao", Amount: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDueService_Settle(t *testing.T) {
	ctx := context.Background()

	t.Run("settles pending due", func(t *testing.T) {
		svc, repo := newDueService()
		due, _ := finance.NewDue("Bao", decimal.NewFromInt(5), nil, testNow.Add(-time.Hour))
		due.ID = 3
		repo.On("FindByID", ctx, uint64(3)).Return(due, nil)
		repo.On("Save", ctx, due).Return(nil)

		resp, err := svc.Settle(ctx, 3)
		require.NoError(t, err)
		assert.True(t, resp.IsSettled)
		repo.AssertExpectations(t)
	})

	t.Run("already settled is a no-op", func(t *testing.T) {
		svc, repo := newDueService()
		due, _ := finance.NewDue("Bao", decimal.NewFromInt(5), nil, testNow)
		due.ID = 3
		due.Settle(testNow)
		repo.On("FindByID", ctx, uint64(3)).Return(due, nil)

		resp, err := svc.Settle(ctx, 3)
		require.NoError(t, err)
		assert.True(t, resp.IsSettled)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing due", func(t *testing.T) {
		svc, repo := newDueService()
		repo.On("FindByID", ctx, uint64(3)).Return(nil, shared.ErrNotFound)

		_, err := svc.Settle(ctx, 3)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDueService_List(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDueService()
	repo.On("FindAll", ctx).Return([]finance.Due{
		{BaseEntity: shared.BaseEntity{ID: 2}, CustomerName: "A", Amount: decimal.NewFromInt(1)},
		{BaseEntity: shared.BaseEntity{ID: 1}, CustomerName: "B", Amount: decimal.NewFromInt(2), IsSettled: true},
	}, nil)

	dues, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, dues, 2)
	assert.Equal(t, uint64(2), dues[0].ID)
	assert.True(t, dues[1].IsSettled)
}
