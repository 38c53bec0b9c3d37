package domain

// Pagination bounds: the public API counts pages from 1 and caps page size
// at 100 entries.
const (
	DefaultPage = 1
	DefaultSize = 25
	MaxSize     = 100
)

// FilmListRequest is the query-string binding for the film list endpoint.
// Sort accepts a field name with an optional leading '-' for descending
// order, e.g. "-imdb_rating".
type FilmListRequest struct {
	Sort    string `form:"sort"`
	GenreID string `form:"genre"`
	Page    int    `form:"page_number"`
	Size    int    `form:"page_size"`
}

// SearchRequest is the query-string binding for full-text search endpoints.
type SearchRequest struct {
	Query string `form:"query" binding:"required"`
	Page  int    `form:"page_number"`
	Size  int    `form:"page_size"`
}

// ListRequest is the query-string binding for plain paginated listings.
type ListRequest struct {
	Page int `form:"page_number"`
	Size int `form:"page_size"`
}
