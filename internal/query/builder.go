package query

import (
	"errors"
	"fmt"
	"strings"
)

// Body is an Elasticsearch request body. Bodies are plain maps so their JSON
// rendering is canonical (encoding/json sorts map keys), which makes the
// rendered bytes usable as cache-key material.
type Body map[string]any

// ErrInvalidSort reports a sort parameter outside the allowed field set.
var ErrInvalidSort = errors.New("invalid sort field")

// sortable maps public sort names to index fields.
var sortable = map[string]string{
	"imdb_rating": "imdb_rating",
	"title":       "title.raw",
}

// Sort is a resolved sort clause.
type Sort struct {
	Field string
	Order string
}

// ParseSort interprets a public sort parameter: a field name with an optional
// leading '-' for descending order, e.g. "-imdb_rating". Empty input falls
// back to rating, highest first.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		s = "-imdb_rating"
	}

	order := "asc"
	if strings.HasPrefix(s, "-") {
		order = "desc"
		s = strings.TrimPrefix(s, "-")
	}

	field, ok := sortable[s]
	if !ok {
		return Sort{}, fmt.Errorf("%w: %q", ErrInvalidSort, s)
	}
	return Sort{Field: field, Order: order}, nil
}

// FilmList builds the film listing body, optionally filtered to one genre.
func FilmList(sort Sort, genreID string, from, size int) Body {
	var q any = map[string]any{"match_all": map[string]any{}}
	if genreID != "" {
		q = map[string]any{
			"nested": map[string]any{
				"path": "genres",
				"query": map[string]any{
					"term": map[string]any{"genres.id": genreID},
				},
			},
		}
	}

	return Body{
		"from":  from,
		"size":  size,
		"query": q,
		"sort": []any{
			map[string]any{sort.Field: map[string]any{"order": sort.Order}},
		},
	}
}

// FilmSearch builds a full-text film search over title and description.
func FilmSearch(text string, from, size int) Body {
	return Body{
		"from": from,
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     text,
				"fields":    []string{"title^3", "description"},
				"fuzziness": "auto",
			},
		},
	}
}

// FilmsByPerson builds the filmography query: films where the person appears
// as actor, writer or director, rated highest first.
func FilmsByPerson(personID string, from, size int) Body {
	roles := []string{"actors", "writers", "directors"}

	should := make([]any, 0, len(roles))
	for _, path := range roles {
		should = append(should, map[string]any{
			"nested": map[string]any{
				"path": path,
				"query": map[string]any{
					"term": map[string]any{path + ".id": personID},
				},
			},
		})
	}

	return Body{
		"from": from,
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"should":               should,
				"minimum_should_match": 1,
			},
		},
		"sort": []any{
			map[string]any{"imdb_rating": map[string]any{"order": "desc"}},
		},
	}
}

// PersonSearch builds a full-text person search over the full name.
func PersonSearch(text string, from, size int) Body {
	return Body{
		"from": from,
		"size": size,
		"query": map[string]any{
			"match": map[string]any{
				"full_name": map[string]any{
					"query":     text,
					"fuzziness": "auto",
				},
			},
		},
	}
}

// GenreList builds the plain paginated genre listing.
func GenreList(from, size int) Body {
	return Body{
		"from":  from,
		"size":  size,
		"query": map[string]any{"match_all": map[string]any{}},
	}
}
