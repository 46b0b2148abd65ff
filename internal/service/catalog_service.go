package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-enroll-api/internal/models"
	appErrors "github.com/noah-isme/edu-enroll-api/pkg/errors"
)

const catalogCacheKey = "catalog:snapshot"

type catalogFetcher interface {
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	GetOneCourse(ctx context.Context, id string) (*models.Course, error)
	ReferredByList(ctx context.Context) ([]models.ReferredByOption, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogServiceConfig tunes snapshot behaviour.
type CatalogServiceConfig struct {
	CacheTTL            time.Duration
	PlaceholderImageURL string
}

// CatalogService owns the course catalog snapshot. The snapshot is loaded
// from upstream, defaulted per the catalog rules, and treated as fixed for
// the cache window; a failed refresh keeps the previous contents.
type CatalogService struct {
	fetcher catalogFetcher
	cache   snapshotCache
	metrics *MetricsService
	logger  *zap.Logger
	cfg     CatalogServiceConfig

	mu       sync.RWMutex
	state    models.CatalogState
	courses  []models.Course
	loadedAt time.Time
}

// NewCatalogService constructs the catalog store.
func NewCatalogService(fetcher catalogFetcher, cache snapshotCache, metrics *MetricsService, logger *zap.Logger, cfg CatalogServiceConfig) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &CatalogService{
		fetcher: fetcher,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		state:   models.CatalogIdle,
	}
}

// State reports the load lifecycle position.
func (s *CatalogService) State() models.CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Load returns the current catalog snapshot, fetching it when stale. On
// fetch failure the previous snapshot (empty on first failure) is retained
// and a FETCH_ERROR is returned; there is no automatic retry.
func (s *CatalogService) Load(ctx context.Context) ([]models.Course, error) {
	s.mu.RLock()
	if s.state == models.CatalogLoaded && time.Since(s.loadedAt) < s.cfg.CacheTTL {
		courses := s.courses
		s.mu.RUnlock()
		return courses, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == models.CatalogLoaded && time.Since(s.loadedAt) < s.cfg.CacheTTL {
		return s.courses, nil
	}
	s.state = models.CatalogLoading

	if s.cache != nil {
		var cached []models.Course
		if err := s.cache.Get(ctx, catalogCacheKey, &cached); err == nil && len(cached) > 0 {
			s.recordCacheLookup(true)
			s.courses = cached
			s.state = models.CatalogLoaded
			s.loadedAt = time.Now()
			return s.courses, nil
		}
		s.recordCacheLookup(false)
	}

	start := time.Now()
	fetched, err := s.fetcher.GetAllCourses(ctx)
	s.observeUpstream("getAllCourses", err, start)
	if err != nil {
		s.state = models.CatalogFailed
		s.logger.Sugar().Errorw("catalog fetch failed", "error", err)
		return s.courses, appErrors.Wrap(err, appErrors.ErrFetchFailed.Code, appErrors.ErrFetchFailed.Status, appErrors.ErrFetchFailed.Message)
	}

	for i := range fetched {
		fetched[i].ApplyDefaults(s.cfg.PlaceholderImageURL)
	}
	s.courses = fetched
	s.state = models.CatalogLoaded
	s.loadedAt = time.Now()

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, fetched, s.cfg.CacheTTL); err != nil {
			s.logger.Sugar().Warnw("catalog cache write failed", "error", err)
		}
	}
	return s.courses, nil
}

// Visible loads the snapshot and applies the filter.
func (s *CatalogService) Visible(ctx context.Context, filter models.FilterState) ([]models.Course, error) {
	courses, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Visible(courses, filter), nil
}

// Get resolves one course, preferring the snapshot and falling back to the
// upstream single-course endpoint for ids outside the cached set.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Course, error) {
	courses, err := s.Load(ctx)
	if err == nil {
		for i := range courses {
			if courses[i].ID == id {
				course := courses[i]
				return &course, nil
			}
		}
	}

	start := time.Now()
	course, fetchErr := s.fetcher.GetOneCourse(ctx, id)
	s.observeUpstream("getOneCourse", fetchErr, start)
	if fetchErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	course.ApplyDefaults(s.cfg.PlaceholderImageURL)
	return course, nil
}

// ReferredBy proxies the upstream referral source options.
func (s *CatalogService) ReferredBy(ctx context.Context) ([]models.ReferredByOption, error) {
	start := time.Now()
	options, err := s.fetcher.ReferredByList(ctx)
	s.observeUpstream("referredByList", err, start)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrFetchFailed.Code, appErrors.ErrFetchFailed.Status, "failed to load referred by list")
	}
	return options, nil
}

func (s *CatalogService) recordCacheLookup(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(hit)
	}
}

func (s *CatalogService) observeUpstream(endpoint string, err error, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveUpstreamCall(endpoint, err, time.Since(start))
	}
}
