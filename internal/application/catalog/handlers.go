package catalog

import (
	"context"
	"errors"

	"github.com/storefront/backend/internal/application/dispatch"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultListConcurrency bounds how many products are resolved at once
const DefaultListConcurrency = 8

// ProductHandlers serves the product requests
type ProductHandlers struct {
	products        catalog.ProductRepository
	listConcurrency int
	logger          *zap.Logger
}

// Option configures ProductHandlers
type Option func(*ProductHandlers)

// WithListConcurrency sets how many products a listing resolves at once
func WithListConcurrency(n int) Option {
	return func(h *ProductHandlers) {
		if n > 0 {
			h.listConcurrency = n
		}
	}
}

// NewProductHandlers creates the product handlers
func NewProductHandlers(products catalog.ProductRepository, log *zap.Logger, opts ...Option) *ProductHandlers {
	if log == nil {
		log = zap.NewNop()
	}
	h := &ProductHandlers{
		products:        products,
		listConcurrency: DefaultListConcurrency,
		logger:          log.Named("catalog"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterWith binds every product request to d
func (h *ProductHandlers) RegisterWith(d *dispatch.Dispatcher) error {
	return errors.Join(
		dispatch.Register(d, h.GetByID, dispatch.StructRules[GetProductByIDQuery]{}),
		dispatch.Register(d, h.List),
		dispatch.Register(d, h.GetOwner, dispatch.StructRules[GetProductOwnerQuery]{}),
		dispatch.Register(d, h.Add, dispatch.StructRules[AddProductCommand]{}, AddProductRules),
		dispatch.Register(d, h.Update, dispatch.StructRules[UpdateProductCommand]{}, UpdateProductRules),
		dispatch.Register(d, h.Delete, dispatch.StructRules[DeleteProductCommand]{}),
	)
}

// GetByID returns one product with its discount and status resolved
func (h *ProductHandlers) GetByID(ctx context.Context, q GetProductByIDQuery) (shared.Outcome[ProductResponse], error) {
	found, err := h.products.GetByID(ctx, q.ID)
	if err != nil || found.IsFailed() {
		return shared.Recast[ProductResponse](found), err
	}
	return ResolveProduct(ctx, found.Value()), nil
}

// List returns every product. The first product whose attributes cannot be
// resolved fails the listing and cancels the remaining lookups.
func (h *ProductHandlers) List(ctx context.Context, _ ListProductsQuery) (shared.Outcome[[]ProductResponse], error) {
	all, err := h.products.GetAll(ctx)
	if err != nil || all.IsFailed() {
		return shared.Recast[[]ProductResponse](all), err
	}

	products := all.Value()
	responses := make([]ProductResponse, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.listConcurrency)
	for i, p := range products {
		g.Go(func() error {
			out := ResolveProduct(gctx, p)
			if out.IsFailed() {
				return &resolveFailure{productID: p.ID, errs: out.Errors()}
			}
			responses[i] = out.Value()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var failure *resolveFailure
		if errors.As(err, &failure) {
			logger.WithLogger(ctx, h.logger).Debug("Product listing aborted",
				zap.Int64("product_id", failure.productID),
				zap.Strings("errors", shared.Messages(failure.errs)),
			)
			return shared.Fail[[]ProductResponse](failure.errs...), nil
		}
		return shared.Outcome[[]ProductResponse]{}, err
	}
	return shared.Ok(responses), nil
}

// GetOwner returns the owner of a product
func (h *ProductHandlers) GetOwner(ctx context.Context, q GetProductOwnerQuery) (shared.Outcome[OwnerResponse], error) {
	found, err := h.products.GetByID(ctx, q.ID)
	if err != nil || found.IsFailed() {
		return shared.Recast[OwnerResponse](found), err
	}
	return shared.Map(found.Value().Owner(ctx), toOwnerResponse), nil
}

// Add creates a product
func (h *ProductHandlers) Add(ctx context.Context, c AddProductCommand) (shared.Outcome[ProductResponse], error) {
	product, err := catalog.NewProduct(c.OwnerID, c.Name, c.Description, 0, c.BasePrice)
	if err != nil {
		return shared.Fail[ProductResponse](shared.AsError(err)), nil
	}

	added, err := h.products.Add(ctx, product)
	if err != nil || added.IsFailed() {
		return shared.Recast[ProductResponse](added), err
	}

	logger.WithLogger(ctx, h.logger).Info("Product added",
		zap.Int64("product_id", added.Value().ID),
		zap.Int64("owner_id", c.OwnerID),
	)
	return ResolveProduct(ctx, added.Value()), nil
}

// Update replaces a product's own fields
func (h *ProductHandlers) Update(ctx context.Context, c UpdateProductCommand) (shared.Outcome[ProductResponse], error) {
	found, err := h.products.GetByID(ctx, c.ID)
	if err != nil || found.IsFailed() {
		return shared.Recast[ProductResponse](found), err
	}

	product := found.Value()
	if err := product.Update(c.OwnerID, c.Name, c.Description, c.Stock, c.BasePrice); err != nil {
		return shared.Fail[ProductResponse](shared.AsError(err)), nil
	}
	if c.StatusName != "" {
		status, err := catalog.ParseProductStatus(c.StatusName)
		if err != nil {
			return shared.Fail[ProductResponse](shared.NewValidationError("statusName", "statusName must be Active or Inactive")), nil
		}
		if err := product.SetStoredStatus(status); err != nil {
			return shared.Fail[ProductResponse](shared.AsError(err)), nil
		}
	}

	updated, err := h.products.Update(ctx, product)
	if err != nil || updated.IsFailed() {
		return shared.Recast[ProductResponse](updated), err
	}
	return ResolveProduct(ctx, updated.Value()), nil
}

// Delete removes a product
func (h *ProductHandlers) Delete(ctx context.Context, c DeleteProductCommand) (shared.Outcome[shared.Unit], error) {
	removed, err := h.products.Remove(ctx, c.ID)
	if err != nil || removed.IsFailed() {
		return removed, err
	}
	logger.WithLogger(ctx, h.logger).Info("Product deleted", zap.Int64("product_id", c.ID))
	return removed, nil
}

// resolveFailure carries a product's failed attributes out of the errgroup
type resolveFailure struct {
	productID int64
	errs      []*shared.Error
}

func (f *resolveFailure) Error() string {
	return "resolve product attributes: " + joinMessages(f.errs)
}

func joinMessages(errs []*shared.Error) string {
	return shared.Fail[shared.Unit](errs...).Err().Error()
}
