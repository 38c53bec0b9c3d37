package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
	"github.com/Klyucherov/Async-API-sprint-1/internal/query"
)

type genreServiceImpl struct {
	data *DataService[domain.Genre]
	sf   singleflight.Group
}

// NewGenreService creates the genre read service over a genres-bound data
// service.
func NewGenreService(data *DataService[domain.Genre]) GenreService {
	return &genreServiceImpl{data: data}
}

func (s *genreServiceImpl) ByID(ctx context.Context, id string) (*domain.Genre, error) {
	return s.data.GetByID(ctx, id)
}

func (s *genreServiceImpl) List(ctx context.Context, page, size int) ([]domain.Genre, error) {
	page, size = normalizePage(page, size)

	key := fmt.Sprintf("genres:list:%d:%d", page, size)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.data.Search(ctx, query.GenreList(offset(page, size), size), size)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Genre), nil
}
