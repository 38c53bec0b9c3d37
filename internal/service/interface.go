package service

import (
	"context"

	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
)

// FilmService exposes film read operations to the transport layer.
type FilmService interface {
	ByID(ctx context.Context, id string) (*domain.Film, error)
	List(ctx context.Context, sort, genreID string, page, size int) ([]domain.Film, error)
	Search(ctx context.Context, text string, page, size int) ([]domain.Film, error)
	ByPerson(ctx context.Context, personID string, page, size int) ([]domain.Film, error)
}

// PersonService exposes person read operations to the transport layer.
type PersonService interface {
	ByID(ctx context.Context, id string) (*domain.Person, error)
	Search(ctx context.Context, text string, page, size int) ([]domain.Person, error)
}

// GenreService exposes genre read operations to the transport layer.
type GenreService interface {
	ByID(ctx context.Context, id string) (*domain.Genre, error)
	List(ctx context.Context, page, size int) ([]domain.Genre, error)
}
