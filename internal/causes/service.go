package causes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/delta-line/line-metrics/internal/core/storage"
)

var (
	// ErrInvalidQuery marks list parameters that fail validation.
	ErrInvalidQuery = errors.New("invalid causes query")
)

var sortFields = map[string]bool{
	"code":      true,
	"name":      true,
	"category":  true,
	"affectTRS": true,
}

// ListRequest holds the raw list parameters. Zero values take the defaults.
type ListRequest struct {
	Search     string
	Category   string
	AffectsTRS string // "", "true" or "false"
	SortBy     string
	SortDir    string
	Page       int
	Limit      int
}

// ListResponse is one page of causes.
type ListResponse struct {
	Items []storage.Cause `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// Service lists the stop-cause reference table.
type Service struct {
	store        storage.CauseStore
	defaultLimit int
	maxLimit     int
}

// NewService creates a causes Service.
func NewService(store storage.CauseStore, defaultLimit, maxLimit int) *Service {
	return &Service{
		store:        store,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// List validates req, applies defaults and returns the requested page.
// Without an affectTRS filter every cause is returned.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	filter, page, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	items, total, err := s.store.ListCauses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list causes: %w", err)
	}

	return &ListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: filter.Limit,
	}, nil
}

func (s *Service) normalize(req ListRequest) (storage.CauseFilter, int, error) {
	filter := storage.CauseFilter{
		Search:   strings.TrimSpace(req.Search),
		Category: strings.TrimSpace(req.Category),
		SortBy:   req.SortBy,
		Limit:    req.Limit,
	}

	switch req.AffectsTRS {
	case "":
	case "true", "false":
		v := req.AffectsTRS == "true"
		filter.AffectsTRS = &v
	default:
		return storage.CauseFilter{}, 0, fmt.Errorf("%w: affectTRS must be true or false", ErrInvalidQuery)
	}

	if filter.SortBy == "" {
		filter.SortBy = "code"
	}
	if !sortFields[filter.SortBy] {
		return storage.CauseFilter{}, 0, fmt.Errorf("%w: sortBy must be one of: code, name, category, affectTRS", ErrInvalidQuery)
	}

	switch strings.ToUpper(req.SortDir) {
	case "", "ASC":
	case "DESC":
		filter.SortDesc = true
	default:
		return storage.CauseFilter{}, 0, fmt.Errorf("%w: sortDir must be ASC or DESC", ErrInvalidQuery)
	}

	page := req.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return storage.CauseFilter{}, 0, fmt.Errorf("%w: page must be >= 1", ErrInvalidQuery)
	}

	if filter.Limit == 0 {
		filter.Limit = s.defaultLimit
	}
	if filter.Limit < 1 || filter.Limit > s.maxLimit {
		return storage.CauseFilter{}, 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidQuery, s.maxLimit)
	}

	filter.Offset = (page - 1) * filter.Limit
	return filter, page, nil
}
