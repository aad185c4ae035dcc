package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Domenick1991/lessonbooking/internal/domain"
	"github.com/Domenick1991/lessonbooking/internal/repository"
)

// ErrInvalidQuery is returned when the search query does not compile as a
// regular expression. The query is user input, so this is a client error.
var ErrInvalidQuery = errors.New("Invalid search pattern.")

// ErrQueryTooLong bounds the cost of user-supplied patterns.
var ErrQueryTooLong = errors.New("Search query too long.")

// ErrInvalidPatch is returned when a lesson update payload is malformed.
var ErrInvalidPatch = errors.New("Invalid update payload.")

type CatalogUseCase interface {
	List(ctx context.Context) ([]domain.Lesson, error)
	Search(ctx context.Context, query string) ([]domain.Lesson, error)
	Update(ctx context.Context, id int64, body map[string]any) error
}

type Cache interface {
	GetLessons(ctx context.Context) ([]domain.Lesson, error)
	SetLessons(ctx context.Context, lessons []domain.Lesson) error
	InvalidateLessons(ctx context.Context) error
}

type CatalogService struct {
	repo        repository.LessonRepository
	cache       Cache
	maxQueryLen int
}

func NewCatalogService(repo repository.LessonRepository, cache Cache, maxQueryLen int) *CatalogService {
	if maxQueryLen <= 0 {
		maxQueryLen = 128
	}
	return &CatalogService{repo: repo, cache: cache, maxQueryLen: maxQueryLen}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Lesson, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetLessons(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetLessons(ctx, lessons)
	}
	return lessons, nil
}

// Search returns every lesson whose name, location, price or space matches
// the query as a case-insensitive regular expression. Numeric fields are
// matched against their decimal renderings, the same ones the JSON API
// emits. A blank query returns the full catalog.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Lesson, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	if len(query) > s.maxQueryLen {
		return nil, ErrQueryTooLong
	}

	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	lessons, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Lesson, 0)
	for _, l := range lessons {
		if re.MatchString(l.Name) ||
			re.MatchString(l.Location) ||
			re.MatchString(strconv.FormatFloat(l.Price, 'f', -1, 64)) ||
			re.MatchString(strconv.Itoa(l.Space)) {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, body map[string]any) error {
	patch, err := ParsePatch(body)
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateLessons(ctx)
	}
	return nil
}

// ParsePatch interprets an update body. "$inc" applies deltas to numeric
// fields, "$set" replaces field values; a body with neither directive is
// treated as a plain field replacement.
func ParsePatch(body map[string]any) (repository.LessonPatch, error) {
	var patch repository.LessonPatch

	rawInc, hasInc := body["$inc"]
	rawSet, hasSet := body["$set"]

	if !hasInc && !hasSet {
		patch.Set = body
		return patch, nil
	}

	if hasInc {
		inc, ok := rawInc.(map[string]any)
		if !ok {
			return patch, ErrInvalidPatch
		}
		patch.Inc = make(map[string]float64, len(inc))
		for field, v := range inc {
			delta, ok := v.(float64)
			if !ok {
				return patch, ErrInvalidPatch
			}
			patch.Inc[field] = delta
		}
	}
	if hasSet {
		set, ok := rawSet.(map[string]any)
		if !ok {
			return patch, ErrInvalidPatch
		}
		patch.Set = set
	}
	return patch, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
