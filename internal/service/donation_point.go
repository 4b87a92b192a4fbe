package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"donationpoints/internal/logging"
	"donationpoints/internal/metrics"
	"donationpoints/internal/model"
	"donationpoints/internal/repository"
	"donationpoints/internal/storage"
	"donationpoints/internal/validation"
)

var tracer = otel.Tracer("donationpoints/internal/service")

// CreateOptions tunes a single Create call.
type CreateOptions struct {
	// Force skips the duplicate check.
	Force bool
}

// ListCache caches filtered list results under a generation. Get reports the generation it looked at
// and Set writes under that generation, so a result read before an Invalidate stays unreachable after it.
type ListCache interface {
	Get(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, int64, bool, error)
	Set(ctx context.Context, f model.ListFilter, gen int64, points []model.DonationPoint) error
	Invalidate(ctx context.Context) error
}

// EventPublisher announces newly created points.
type EventPublisher interface {
	PublishPointCreated(ctx context.Context, p *model.DonationPoint, forced bool) error
}

// DonationPointService defines the use cases for donation points.
type DonationPointService interface {
	// Create validates payload, rejects it when another point sits nearby (unless forced), and stores it.
	// Errors are *validation.ValidationError, *DuplicateConflictError or *PersistenceError.
	Create(ctx context.Context, payload any, opts CreateOptions) (*model.DonationPoint, error)

	// List returns active points matching every set filter, newest first.
	List(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, error)

	// Snapshot uploads the filtered list as GeoJSON and returns a download link.
	Snapshot(ctx context.Context, f model.ListFilter) (*SnapshotResult, error)
}

// Option configures optional collaborators of the service.
type Option func(*donationPointService)

// WithListCache enables list caching.
func WithListCache(c ListCache) Option {
	return func(s *donationPointService) { s.cache = c }
}

// WithEventPublisher publishes an event for every created point.
func WithEventPublisher(p EventPublisher) Option {
	return func(s *donationPointService) { s.events = p }
}

// WithMetrics records ingestion and cache counters.
func WithMetrics(m *metrics.Ingestion) Option {
	return func(s *donationPointService) { s.metrics = m }
}

// WithSnapshotStore enables Snapshot, signing links valid for expiry.
func WithSnapshotStore(store storage.Storage, expiry time.Duration) Option {
	return func(s *donationPointService) {
		s.store = store
		s.snapshotExpiry = expiry
	}
}

// WithLogger sets the logger used when no request-scoped logger is present.
func WithLogger(l *slog.Logger) Option {
	return func(s *donationPointService) { s.log = l }
}

type donationPointService struct {
	repo           repository.DonationPointRepository
	guard          *DuplicateGuard
	cache          ListCache
	events         EventPublisher
	metrics        *metrics.Ingestion
	store          storage.Storage
	snapshotExpiry time.Duration
	log            *slog.Logger
	now            func() time.Time
}

// NewDonationPointService constructs a DonationPointService over repo.
func NewDonationPointService(repo repository.DonationPointRepository, opts ...Option) DonationPointService {
	s := &donationPointService{
		repo:           repo,
		guard:          NewDuplicateGuard(repo),
		snapshotExpiry: 15 * time.Minute,
		log:            slog.Default(),
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *donationPointService) Create(ctx context.Context, payload any, opts CreateOptions) (*model.DonationPoint, error) {
	ctx, span := tracer.Start(ctx, "DonationPointService.Create",
		trace.WithAttributes(attribute.Bool("donation_point.force", opts.Force)))
	defer span.End()

	log := logging.FromContext(ctx, s.log)

	candidate, err := validation.Validate(payload)
	if err != nil {
		s.metrics.Observe(metrics.OutcomeInvalid)
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	if !opts.Force {
		existing, err := s.guard.Check(ctx, candidate.Latitude, candidate.Longitude)
		if err != nil {
			s.metrics.Observe(metrics.OutcomeError)
			return nil, s.persistenceFailure(span, "find nearby donation point", err)
		}
		if existing != nil {
			s.metrics.Observe(metrics.OutcomeDuplicate)
			span.SetAttributes(attribute.String("donation_point.existing_id", existing.ID))
			span.SetStatus(codes.Error, "duplicate location")
			log.Info("donation_point_duplicate",
				"existing_id", existing.ID,
				"latitude", candidate.Latitude,
				"longitude", candidate.Longitude,
			)
			return nil, &DuplicateConflictError{Existing: existing}
		}
	}

	stored, err := s.repo.Create(ctx, candidate)
	if err != nil {
		s.metrics.Observe(metrics.OutcomeError)
		return nil, s.persistenceFailure(span, "create donation point", err)
	}

	outcome := metrics.OutcomeCreated
	if opts.Force {
		outcome = metrics.OutcomeForced
	}
	s.metrics.Observe(outcome)
	span.SetAttributes(attribute.String("donation_point.id", stored.ID))
	log.Info("donation_point_created", "id", stored.ID, "forced", opts.Force)

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Warn("list_cache_invalidate_failed", "error", err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishPointCreated(ctx, stored, opts.Force); err != nil {
			log.Warn("event_publish_failed", "id", stored.ID, "error", err)
		}
	}
	return stored, nil
}

func (s *donationPointService) List(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, error) {
	ctx, span := tracer.Start(ctx, "DonationPointService.List")
	defer span.End()

	log := logging.FromContext(ctx, s.log)

	// gen is only trusted when the lookup succeeded; otherwise the result is not written back.
	var (
		gen      int64
		writable bool
	)
	if s.cache != nil {
		points, g, ok, err := s.cache.Get(ctx, f)
		switch {
		case err != nil:
			log.Warn("list_cache_read_failed", "error", err)
		case ok:
			s.metrics.CacheLookup(true)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return points, nil
		default:
			s.metrics.CacheLookup(false)
			gen, writable = g, true
		}
	}

	points, err := s.repo.FindMany(ctx, f)
	if err != nil {
		return nil, s.persistenceFailure(span, "list donation points", err)
	}
	span.SetAttributes(attribute.Int("donation_point.count", len(points)))

	if writable {
		if err := s.cache.Set(ctx, f, gen, points); err != nil {
			log.Warn("list_cache_write_failed", "error", err)
		}
	}
	return points, nil
}

func (s *donationPointService) persistenceFailure(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	var perr *PersistenceError
	if errors.As(err, &perr) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
