package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/tactical-board/internal/domain/analytics"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
)

const (
	distributionKeyPrefix = "distribution:"
	vectorsKeyPrefix      = "vectors:"
	summaryKeyPrefix      = "summary:"
)

// AnalyticsInput is the raw filter as it arrives from a caller.
type AnalyticsInput struct {
	Category      string
	Subcategories []string
	Side          string
	// ZoneCount overrides the session default when non-zero.
	ZoneCount int
}

// CategorySummary is the distribution of one category in the dataset.
type CategorySummary struct {
	Category      matchevent.Category
	Subcategories []string
	Distribution  analytics.Distribution
}

func (s *Session) query(in AnalyticsInput) (analytics.Query, error) {
	category := matchevent.NormalizeCategory(in.Category)
	if category == "" {
		return analytics.Query{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	q := analytics.Query{Category: category}
	for _, sub := range in.Subcategories {
		if sub = strings.TrimSpace(sub); sub != "" {
			q.Subcategories = append(q.Subcategories, sub)
		}
	}
	if side := strings.TrimSpace(in.Side); side != "" {
		parsed, err := formation.ParseSide(side)
		if err != nil {
			return analytics.Query{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		q.Side = parsed
	}
	return q, nil
}

func (s *Session) binner(zoneCount int) (*analytics.DistributionBinner, int, error) {
	if zoneCount == 0 {
		zoneCount = s.zoneCount
	}
	b, ok := s.deps.binners[zoneCount]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidInput, analytics.ValidateZoneCount(zoneCount))
	}
	return b, zoneCount, nil
}

// Distribution bins the filtered events into zones. Results are memoized by
// their inputs; the dataset never changes within a session.
func (s *Session) Distribution(ctx context.Context, in AnalyticsInput) (analytics.Distribution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Session.Distribution")
	defer span.End()

	if err := s.ensureOpen(); err != nil {
		return analytics.Distribution{}, err
	}
	s.touch()

	q, err := s.query(in)
	if err != nil {
		return analytics.Distribution{}, err
	}
	b, zones, err := s.binner(in.ZoneCount)
	if err != nil {
		return analytics.Distribution{}, err
	}

	key := fmt.Sprintf("%s%d:%s", distributionKeyPrefix, zones, q.Key())
	value, err := s.memoized(ctx, "distribution", key, func() any {
		return b.Bin(s.dataset, q)
	})
	if err != nil {
		return analytics.Distribution{}, err
	}
	return value.(analytics.Distribution).Clone(), nil
}

// Vectors builds the vector field in the current render space.
func (s *Session) Vectors(ctx context.Context, in AnalyticsInput) (analytics.VectorSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Session.Vectors")
	defer span.End()

	if err := s.ensureOpen(); err != nil {
		return analytics.VectorSet{}, err
	}
	s.touch()

	q, err := s.query(in)
	if err != nil {
		return analytics.VectorSet{}, err
	}

	return s.vectorsFor(ctx, q, s.surface.Mapper())
}

func (s *Session) vectorsFor(ctx context.Context, q analytics.Query, mapper pitch.Mapper) (analytics.VectorSet, error) {
	dims := mapper.Dimensions()
	key := fmt.Sprintf("%s%.2fx%.2f:%s", vectorsKeyPrefix, dims.Width, dims.Height, q.Key())
	value, err := s.memoized(ctx, "vectors", key, func() any {
		return s.deps.vectors.Build(s.dataset, q, mapper)
	})
	if err != nil {
		return analytics.VectorSet{}, err
	}
	return value.(analytics.VectorSet).Clone(), nil
}

// Summary computes the distribution of every category in the dataset,
// fanning the categories out over a bounded worker pool.
func (s *Session) Summary(ctx context.Context, zoneCount int, side string) ([]CategorySummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Session.Summary")
	defer span.End()

	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	s.touch()

	b, zones, err := s.binner(zoneCount)
	if err != nil {
		return nil, err
	}
	var sideFilter formation.Side
	if strings.TrimSpace(side) != "" {
		if sideFilter, err = formation.ParseSide(side); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	key := fmt.Sprintf("%s%d:%s", summaryKeyPrefix, zones, sideFilter)
	value, err := s.memo.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.computeSummary(ctx, b, sideFilter)
	})
	if err != nil {
		return nil, err
	}
	cached := value.([]CategorySummary)
	out := make([]CategorySummary, 0, len(cached))
	for _, item := range cached {
		out = append(out, CategorySummary{
			Category:      item.Category,
			Subcategories: append([]string(nil), item.Subcategories...),
			Distribution:  item.Distribution.Clone(),
		})
	}
	return out, nil
}

func (s *Session) computeSummary(ctx context.Context, b *analytics.DistributionBinner, side formation.Side) ([]CategorySummary, error) {
	started := time.Now()
	defer s.deps.metrics.ObserveAnalytics("summary", started)

	categories := s.dataset.Categories()
	if len(categories) == 0 {
		return []CategorySummary{}, nil
	}

	workers := s.deps.workers
	if workers <= 0 || workers > len(categories) {
		workers = len(categories)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create analytics worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu  sync.Mutex
		out = make([]CategorySummary, 0, len(categories))
		wg  sync.WaitGroup
	)
	for _, category := range categories {
		category := category
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			item := CategorySummary{
				Category:      category,
				Subcategories: s.dataset.Subcategories(category),
				Distribution:  b.Bin(s.dataset, analytics.Query{Category: category, Side: side}),
			}
			mu.Lock()
			out = append(out, item)
			mu.Unlock()
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit analytics task: %w", err)
		}
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *Session) memoized(ctx context.Context, view, key string, compute func() any) (any, error) {
	hit := true
	value, err := s.memo.GetOrLoad(ctx, key, func(context.Context) (any, error) {
		hit = false
		started := time.Now()
		defer s.deps.metrics.ObserveAnalytics(view, started)
		return compute(), nil
	})
	s.deps.metrics.AnalyticsCache(view, hit)
	return value, err
}

// Palette exposes the action styles used to color vectors.
func (s *Session) Palette() *analytics.Palette {
	return s.deps.palette
}
