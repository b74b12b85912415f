package finance

import (
	"context"

	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/shared"
)

// DueService handles customer dues
type DueService struct {
	dueRepo finance.DueRepository
	clock   shared.Clock
}

// NewDueService creates a new DueService
func NewDueService(dueRepo finance.DueRepository, clock shared.Clock) *DueService {
	return &DueService{
		dueRepo: dueRepo,
		clock:   clock,
	}
}

// List returns all dues, unsettled first and newest first within each group
func (s *DueService) List(ctx context.Context) ([]DueResponse, error) {
	dues, err := s.dueRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]DueResponse, len(dues))
	for i := range dues {
		responses[i] = ToDueResponse(&dues[i])
	}
	return responses, nil
}

// Create records a new pending due
func (s *DueService) Create(ctx context.Context, req CreateDueRequest) (*DueResponse, error) {
	due, err := finance.NewDue(req.CustomerName, req.Amount, req.Note, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.dueRepo.Save(ctx, due); err != nil {
		return nil, err
	}
	resp := ToDueResponse(due)
	return &resp, nil
}

// Settle marks a due as paid. Settling an already settled due succeeds
// without writing.
func (s *DueService) Settle(ctx context.Context, id uint64) (*DueResponse, error) {
	due, err := s.dueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !due.IsSettled {
		due.Settle(s.clock.Now())
		if err := s.dueRepo.Save(ctx, due); err != nil {
			return nil, err
		}
	}

	resp := ToDueResponse(due)
	return &resp, nil
}
