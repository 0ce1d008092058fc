package impl

import "storefront/config"

const (
	fallbackPageSize    = 12
	fallbackMaxPageSize = 50

	// maxPage bounds page so that (page-1)*limit cannot overflow.
	maxPage = 100_000
)

// pageLimits normalizes page and limit query values.
type pageLimits struct {
	defaultSize int
	maxSize     int
}

func newPageLimits(cfg *config.Config) pageLimits {
	limits := pageLimits{defaultSize: fallbackPageSize, maxSize: fallbackMaxPageSize}
	if cfg == nil || cfg.Catalog == nil {
		return limits
	}
	if cfg.Catalog.DefaultPageSize > 0 {
		limits.defaultSize = cfg.Catalog.DefaultPageSize
	}
	if cfg.Catalog.MaxPageSize > 0 {
		limits.maxSize = cfg.Catalog.MaxPageSize
	}

	return limits
}

// normalize returns a page within [1, maxPage] and a limit within (0, maxSize].
func (p pageLimits) normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit <= 0 {
		limit = p.defaultSize
	}
	if limit > p.maxSize {
		limit = p.maxSize
	}

	return page, limit
}

// offset is the number of rows before page.
func offset(page, limit int) int {
	return (page - 1) * limit
}
