package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/print-pricing-service/internal/domain/dto"
	"github.com/guttosm/print-pricing-service/internal/domain/model"
	"github.com/guttosm/print-pricing-service/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrPaperStockNotFound is returned when a quote names an unknown paper stock.
	ErrPaperStockNotFound = errors.New("paper stock not found")
	// ErrSizeNotFound is returned when a quote names an unknown print size.
	ErrSizeNotFound = errors.New("print size not found")
	// ErrTurnaroundNotFound is returned when a quote names an unknown turnaround tier.
	ErrTurnaroundNotFound = errors.New("turnaround time not found")
	// ErrCategoryNotFound is returned when a quote names an unknown product category.
	ErrCategoryNotFound = errors.New("product category not found")
	// ErrCategoryMismatch is returned when a category is not sold in the requested size.
	ErrCategoryMismatch = errors.New("size not offered in product category")
	// ErrBrokerDiscountNotFound is returned when deleting a category without a discount.
	ErrBrokerDiscountNotFound = errors.New("broker discount not found")
)

// DefaultCatalogCacheTTL is how long a catalog snapshot is served before it is reloaded.
const DefaultCatalogCacheTTL = 30 * time.Second

// catalogReadTimeout bounds a snapshot reload so a slow database cannot stall quoting.
const catalogReadTimeout = 2 * time.Second

// CatalogService resolves quote requests against the active catalog and maintains broker discounts.
type CatalogService interface {
	// GetCatalog returns the active catalog including broker discounts.
	GetCatalog(ctx context.Context) model.Catalog
	// Resolve turns a quote request into a fully specified product configuration.
	Resolve(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (model.ProductConfiguration, error)
	// ListBrokerDiscounts returns the active broker discounts.
	ListBrokerDiscounts(ctx context.Context) []model.BrokerDiscount
	// UpsertBrokerDiscount sets the discount for a category.
	UpsertBrokerDiscount(ctx context.Context, categoryID string, percent decimal.Decimal, updatedBy string) (model.BrokerDiscount, error)
	// DeleteBrokerDiscount removes the discount for a category.
	DeleteBrokerDiscount(ctx context.Context, categoryID string) error
	// Invalidate forces the next read to reload the catalog.
	Invalidate()
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithCatalogCacheTTL sets how long catalog snapshots are cached.
func WithCatalogCacheTTL(ttl time.Duration) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.snapshots = newCatalogSnapshotCache(ttl)
	}
}

// WithOnDiscountChange registers a hook run after broker discounts change.
func WithOnDiscountChange(fn func()) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.onChange = append(s.onChange, fn)
	}
}

// CatalogServiceImpl implements CatalogService.
// Without repositories, or while they are unavailable, the fallback catalog is served.
type CatalogServiceImpl struct {
	catalogRepo   repository.CatalogRepositoryInterface
	discountsRepo repository.BrokerDiscountsRepositoryInterface
	fallback      model.Catalog
	snapshots     *catalogSnapshotCache
	onChange      []func()
}

// NewCatalogService creates a new catalog service.
// Either repository may be nil.
func NewCatalogService(
	catalogRepo repository.CatalogRepositoryInterface,
	discountsRepo repository.BrokerDiscountsRepositoryInterface,
	fallback model.Catalog,
	opts ...CatalogOption,
) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		catalogRepo:   catalogRepo,
		discountsRepo: discountsRepo,
		fallback:      fallback,
		snapshots:     newCatalogSnapshotCache(DefaultCatalogCacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetCatalog returns the active catalog including broker discounts.
func (s *CatalogServiceImpl) GetCatalog(ctx context.Context) model.Catalog {
	cat, gen, ok := s.snapshots.get()
	if ok {
		return cat
	}

	cat, complete := s.load(ctx)
	if complete {
		s.snapshots.set(cat, gen)
	}
	return cat
}

// load reads the catalog and discounts from the repositories.
// It reports false when any part came from the fallback, so the result is not cached.
// Categories and add-on rates missing from the store are taken from the fallback.
// When discounts cannot be read everyone is quoted retail.
func (s *CatalogServiceImpl) load(ctx context.Context) (model.Catalog, bool) {
	if s.catalogRepo == nil {
		return s.fallback, true
	}

	ctx, cancel := context.WithTimeout(ctx, catalogReadTimeout)
	defer cancel()

	stored, err := s.catalogRepo.GetCatalog(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load catalog, using built-in catalog")
		return s.fallback, false
	}
	if stored == nil || stored.IsEmpty() {
		return s.fallback, false
	}

	cat := *stored
	if len(cat.Categories) == 0 {
		cat.Categories = s.fallback.Categories
	}
	if cat.AddOnRates == nil {
		cat.AddOnRates = s.fallback.AddOnRates
	}
	cat.BrokerDiscounts = s.fallback.BrokerDiscounts
	if s.discountsRepo == nil {
		return cat, true
	}

	docs, err := s.discountsRepo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load broker discounts, quoting retail")
		cat.BrokerDiscounts = nil
		return cat, false
	}
	cat.BrokerDiscounts = make([]model.BrokerDiscount, 0, len(docs))
	for _, d := range docs {
		cat.BrokerDiscounts = append(cat.BrokerDiscounts, d.ToModel())
	}
	return cat, true
}

// Resolve turns a quote request into a fully specified product configuration.
// Broker discounts are attached only for broker identities. Add-on rates come
// from the catalog. EDDM without banding gets banding, since EDDM mail must be banded.
func (s *CatalogServiceImpl) Resolve(ctx context.Context, req dto.QuoteRequest, identity model.BrokerIdentity) (model.ProductConfiguration, error) {
	cat := s.GetCatalog(ctx)

	paper, ok := cat.PaperStock(req.PaperStockID)
	if !ok {
		return model.ProductConfiguration{}, fmt.Errorf("%w: %s", ErrPaperStockNotFound, req.PaperStockID)
	}

	var size model.PrintSize
	if req.HasCustomSize() {
		size = customSize(*req.CustomWidth, *req.CustomHeight)
	} else if size, ok = cat.Size(req.SizeID); !ok {
		return model.ProductConfiguration{}, fmt.Errorf("%w: %s", ErrSizeNotFound, req.SizeID)
	}

	turnaround, ok := cat.Turnaround(req.TurnaroundID)
	if !ok {
		return model.ProductConfiguration{}, fmt.Errorf("%w: %s", ErrTurnaroundNotFound, req.TurnaroundID)
	}

	categoryID, err := resolveCategory(cat, req.CategoryID, size)
	if err != nil {
		return model.ProductConfiguration{}, err
	}

	cfg := model.ProductConfiguration{
		PaperStock: paper,
		Size:       size,
		Quantity:   req.Quantity,
		Sides:      req.Sides,
		Turnaround: turnaround,
		AddOns:     pricedAddOns(req.AddOns, cat.Rates()),
		IsBroker:   identity.IsBroker,
		CategoryID: categoryID,
	}
	if identity.IsBroker {
		cfg.BrokerDiscounts = cat.BrokerDiscounts
	}
	return cfg, nil
}

// resolveCategory checks a requested category against the catalog. An empty
// request takes the category when exactly one sells the size. A catalog without
// categories passes the id through, since broker discounts are then keyed freely.
func resolveCategory(cat model.Catalog, requested string, size model.PrintSize) (string, error) {
	if len(cat.Categories) == 0 {
		return requested, nil
	}

	if requested == "" {
		if offered := cat.CategoriesFor(size); len(offered) == 1 {
			return offered[0].ID, nil
		}
		return "", nil
	}

	category, ok := cat.Category(requested)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCategoryNotFound, requested)
	}
	if !category.Offers(size) {
		return "", fmt.Errorf("%w: %s in %s", ErrCategoryMismatch, size.Name, requested)
	}
	return category.ID, nil
}

// pricedAddOns maps a customer's selection onto the engine's options with every
// rate taken from the catalog.
func pricedAddOns(sel dto.AddOnSelection, rates model.AddOnRates) model.AddOnConfiguration {
	cfg := model.AddOnConfiguration{
		Tagline:        sel.Tagline,
		ExactSize:      sel.ExactSize,
		Folding:        sel.Folding,
		DesignServices: sel.DesignServices,
	}

	if sel.DigitalProof != nil {
		cfg.DigitalProof = &model.FlatFeeOption{Fee: ptr(rates.DigitalProofFee)}
	}
	if sel.Perforation != nil {
		cfg.Perforation = &model.PerforationOption{
			SetupFee:      ptr(rates.PerforationSetupFee),
			PricePerPiece: ptr(rates.PerforationPerPiece),
			Orientation:   sel.Perforation.Orientation,
		}
	}
	if sel.ScoreOnly != nil {
		cfg.ScoreOnly = &model.ScoreOnlyOption{
			SetupFee:              ptr(rates.ScoreSetupFee),
			PricePerScorePerPiece: ptr(rates.ScorePerScorePerPiece),
			NumberOfScores:        sel.ScoreOnly.NumberOfScores,
		}
	}
	if sel.Banding != nil || sel.EDDM != nil {
		cfg.Banding = &model.BundlingOption{
			ItemsPerBundle: rates.BandingItemsPerBundle,
			PricePerBundle: ptr(rates.BandingPerBundle),
		}
	}
	if sel.ShrinkWrapping != nil {
		cfg.ShrinkWrapping = &model.BundlingOption{
			ItemsPerBundle: rates.ShrinkWrapItemsPerBundle,
			PricePerBundle: ptr(rates.ShrinkWrapPerBundle),
		}
	}
	if sel.QRCode != nil {
		cfg.QRCode = &model.QRCodeOption{Fee: ptr(rates.QRCodeFee), Content: sel.QRCode.Content}
	}
	if sel.PostalDelivery != nil {
		cfg.PostalDelivery = &model.PostalDeliveryOption{
			NumberOfBoxes: sel.PostalDelivery.NumberOfBoxes,
			PricePerBox:   ptr(rates.PostalPricePerBox),
		}
	}
	if sel.EDDM != nil {
		cfg.EDDM = &model.EDDMOption{
			SetupFee:      ptr(rates.EDDMSetupFee),
			PricePerPiece: ptr(rates.EDDMPerPiece),
			RouteCount:    sel.EDDM.RouteCount,
		}
	}
	if sel.HoleDrilling != nil {
		cfg.HoleDrilling = &model.HoleDrillingOption{
			HoleType:             sel.HoleDrilling.HoleType,
			NumberOfHoles:        sel.HoleDrilling.NumberOfHoles,
			HoleSize:             sel.HoleDrilling.HoleSize,
			SetupFee:             ptr(rates.HoleSetupFee),
			PricePerHolePerPiece: ptr(rates.HolePerHolePerPiece),
			BinderPunchPerPiece:  ptr(rates.BinderPunchPerPiece),
		}
	}
	return cfg
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func customSize(width, height decimal.Decimal) model.PrintSize {
	return model.PrintSize{
		ID:       "custom",
		Name:     fmt.Sprintf("%s\" x %s\"", width.String(), height.String()),
		Width:    width,
		Height:   height,
		IsCustom: true,
	}
}

// ListBrokerDiscounts returns the active broker discounts.
func (s *CatalogServiceImpl) ListBrokerDiscounts(ctx context.Context) []model.BrokerDiscount {
	return s.GetCatalog(ctx).BrokerDiscounts
}

// UpsertBrokerDiscount sets the discount for a category.
func (s *CatalogServiceImpl) UpsertBrokerDiscount(ctx context.Context, categoryID string, percent decimal.Decimal, updatedBy string) (model.BrokerDiscount, error) {
	if s.discountsRepo == nil {
		return model.BrokerDiscount{}, ErrRepositoryNotConfigured
	}

	doc, err := s.discountsRepo.Upsert(ctx, categoryID, percent, updatedBy)
	if err != nil {
		return model.BrokerDiscount{}, fmt.Errorf("upsert broker discount %s: %w", categoryID, err)
	}

	s.changed()
	return doc.ToModel(), nil
}

// DeleteBrokerDiscount removes the discount for a category.
func (s *CatalogServiceImpl) DeleteBrokerDiscount(ctx context.Context, categoryID string) error {
	if s.discountsRepo == nil {
		return ErrRepositoryNotConfigured
	}

	removed, err := s.discountsRepo.Delete(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("delete broker discount %s: %w", categoryID, err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrBrokerDiscountNotFound, categoryID)
	}

	s.changed()
	return nil
}

// Invalidate forces the next read to reload the catalog.
func (s *CatalogServiceImpl) Invalidate() {
	s.snapshots.invalidate()
}

func (s *CatalogServiceImpl) changed() {
	s.Invalidate()
	for _, fn := range s.onChange {
		fn()
	}
}

// catalogSnapshotCache holds the active catalog for a TTL.
// Every invalidation bumps the generation; a load started before it may not be stored.
type catalogSnapshotCache struct {
	mu         sync.RWMutex
	catalog    model.Catalog
	expiresAt  time.Time
	generation uint64
	ttl        time.Duration
}

func newCatalogSnapshotCache(ttl time.Duration) *catalogSnapshotCache {
	return &catalogSnapshotCache{ttl: ttl}
}

// get returns the cached catalog if it has not expired, and the current
// generation for a following set.
func (c *catalogSnapshotCache) get() (model.Catalog, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if time.Now().Before(c.expiresAt) {
		return c.catalog, c.generation, true
	}
	return model.Catalog{}, c.generation, false
}

// set stores cat unless the cache was invalidated since generation gen was read.
func (c *catalogSnapshotCache) set(cat model.Catalog, gen uint64) bool {
	if c.ttl <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	c.catalog = cat
	c.expiresAt = time.Now().Add(c.ttl)
	return true
}

func (c *catalogSnapshotCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.expiresAt = time.Time{}
}
