package trade

import (
	"context"
	"errors"

	"github.com/growai/backend/internal/domain/catalog"
	"github.com/growai/backend/internal/domain/finance"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/domain/trade"
	"go.uber.org/zap"
)

const idempotencyKeyPrefix = "sale:"

// SaleObserver is notified after a sale has been committed
type SaleObserver interface {
	SaleRecorded(ctx context.Context, sale *trade.Sale)
}

// SaleService handles recording and listing sales
type SaleService struct {
	saleRepo    trade.SaleRepository
	productRepo catalog.ProductRepository
	txScope     TransactionScope
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	observers   []SaleObserver
	clock       shared.Clock
	logger      *zap.Logger
}

// SaleServiceOption configures optional SaleService collaborators
type SaleServiceOption func(*SaleService)

// WithIdempotency guards Create with an idempotency store
func WithIdempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) SaleServiceOption {
	return func(s *SaleService) {
		s.idempotency = store
		s.idemConfig = cfg
	}
}

// WithSaleObserver registers an observer for committed sales
func WithSaleObserver(observer SaleObserver) SaleServiceOption {
	return func(s *SaleService) {
		s.observers = append(s.observers, observer)
	}
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo trade.SaleRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
	clock shared.Clock,
	logger *zap.Logger,
	opts ...SaleServiceOption,
) *SaleService {
	s := &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		txScope:     txScope,
		clock:       clock,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all sales, newest first, with product names
func (s *SaleService) List(ctx context.Context) ([]SaleResponse, error) {
	sales, err := s.saleRepo.FindRecent(ctx, 0)
	if err != nil {
		return nil, err
	}

	names, err := s.productNames(ctx, sales)
	if err != nil {
		return nil, err
	}

	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i], names[sales[i].ProductID], nil)
	}
	return responses, nil
}

// Create records a sale, decrements stock and, for credit sales, opens a due.
// All writes happen in one transaction.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	if req.IdempotencyKey != "" && s.idempotency != nil && s.idemConfig.Enabled {
		key := idempotencyKeyPrefix + req.IdempotencyKey
		fresh, err := s.idempotency.MarkProcessed(ctx, key, s.idemConfig.TTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			s.logger.Warn("Duplicate sale request rejected", zap.String("idempotency_key", req.IdempotencyKey))
			return nil, shared.ErrDuplicateRequest
		}

		resp, err := s.create(ctx, req)
		if err != nil {
			if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
				s.logger.Error("Failed to release idempotency key", zap.String("idempotency_key", req.IdempotencyKey), zap.Error(releaseErr))
			}
			return nil, err
		}
		return resp, nil
	}
	return s.create(ctx, req)
}

func (s *SaleService) create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	now := s.clock.Now()

	sale, err := trade.NewSale(req.ProductID, req.Quantity, req.UnitPrice, req.IsCredit, req.CustomerName, now)
	if err != nil {
		return nil, err
	}

	var (
		product *catalog.Product
		due     *finance.Due
	)
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err = repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.CanFulfill(req.Quantity) {
			return shared.ErrInsufficientStock
		}
		if err := repos.ProductRepo().DecreaseStock(ctx, product.ID, req.Quantity); err != nil {
			return err
		}

		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		if sale.IsCredit {
			due, err = finance.NewCreditDue(sale.CustomerName, sale.ProductID, sale.Revenue(), now)
			if err != nil {
				return err
			}
			if err := repos.DueRepo().Save(ctx, due); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, shared.ErrInsufficientStock) && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to record sale", zap.Uint64("product_id", req.ProductID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Sale recorded",
		zap.Uint64("sale_id", sale.ID),
		zap.Uint64("product_id", sale.ProductID),
		zap.Int("quantity", sale.Quantity),
		zap.Bool("is_credit", sale.IsCredit),
	)
	for _, observer := range s.observers {
		observer.SaleRecorded(ctx, sale)
	}

	resp := ToSaleResponse(sale, product.Name, due)
	return &resp, nil
}

func (s *SaleService) productNames(ctx context.Context, sales []trade.Sale) (map[uint64]string, error) {
	names := make(map[uint64]string)
	if len(sales) == 0 {
		return names, nil
	}

	seen := make(map[uint64]struct{})
	ids := make([]uint64, 0)
	for _, sale := range sales {
		if _, ok := seen[sale.ProductID]; ok {
			continue
		}
		seen[sale.ProductID] = struct{}{}
		ids = append(ids, sale.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}
