package domain

import "errors"

// ErrNotFound is returned when an entity exists in neither the cache nor the
// search backend. It is a normal outcome, distinct from transport or decoding
// failures, and is translated to a 404 only at the HTTP edge.
var ErrNotFound = errors.New("entity not found")

// Partition names one keyspace subdivision shared by the search backend
// (index name) and the cache (key prefix). One partition per entity variant.
const (
	PartitionMovies  = "movies"
	PartitionPersons = "persons"
	PartitionGenres  = "genres"
)

// Film is a catalog movie document as stored in the movies partition.
type Film struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	IMDBRating  float64     `json:"imdb_rating"`
	Genres      []Genre     `json:"genres,omitempty"`
	Actors      []PersonRef `json:"actors,omitempty"`
	Writers     []PersonRef `json:"writers,omitempty"`
	Directors   []PersonRef `json:"directors,omitempty"`
}

// Person is a catalog person document as stored in the persons partition.
// Films carries the person's filmography with per-film roles.
type Person struct {
	ID       string       `json:"id"`
	FullName string       `json:"full_name"`
	Films    []PersonFilm `json:"films,omitempty"`
}

// PersonFilm is one filmography entry of a person.
type PersonFilm struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles,omitempty"`
}

// PersonRef is a short person reference embedded in film documents.
type PersonRef struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Genre is a catalog genre document as stored in the genres partition.
type Genre struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
