package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
	"github.com/Klyucherov/Async-API-sprint-1/internal/query"
)

type filmServiceImpl struct {
	data *DataService[domain.Film]
	sf   singleflight.Group
}

// NewFilmService creates the film read service over a movies-bound data
// service.
func NewFilmService(data *DataService[domain.Film]) FilmService {
	return &filmServiceImpl{data: data}
}

func (s *filmServiceImpl) ByID(ctx context.Context, id string) (*domain.Film, error) {
	return s.data.GetByID(ctx, id)
}

func (s *filmServiceImpl) List(ctx context.Context, sortParam, genreID string, page, size int) ([]domain.Film, error) {
	page, size = normalizePage(page, size)

	sort, err := query.ParseSort(sortParam)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("films:list:%s:%s:%s:%d:%d", sort.Field, sort.Order, genreID, page, size)
	return s.collect(key, func() ([]domain.Film, error) {
		return s.data.Search(ctx, query.FilmList(sort, genreID, offset(page, size), size), size)
	})
}

func (s *filmServiceImpl) Search(ctx context.Context, text string, page, size int) ([]domain.Film, error) {
	page, size = normalizePage(page, size)

	key := fmt.Sprintf("films:search:%s:%d:%d", text, page, size)
	return s.collect(key, func() ([]domain.Film, error) {
		return s.data.Search(ctx, query.FilmSearch(text, offset(page, size), size), size)
	})
}

func (s *filmServiceImpl) ByPerson(ctx context.Context, personID string, page, size int) ([]domain.Film, error) {
	page, size = normalizePage(page, size)

	key := fmt.Sprintf("films:person:%s:%d:%d", personID, page, size)
	return s.collect(key, func() ([]domain.Film, error) {
		return s.data.Search(ctx, query.FilmsByPerson(personID, offset(page, size), size), size)
	})
}

// collect deduplicates identical in-flight collection reads.
func (s *filmServiceImpl) collect(key string, fetch func() ([]domain.Film, error)) ([]domain.Film, error) {
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return fetch()
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Film), nil
}
