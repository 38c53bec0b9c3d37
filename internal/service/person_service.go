package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
	"github.com/Klyucherov/Async-API-sprint-1/internal/query"
)

type personServiceImpl struct {
	data *DataService[domain.Person]
	sf   singleflight.Group
}

// NewPersonService creates the person read service over a persons-bound data
// service.
func NewPersonService(data *DataService[domain.Person]) PersonService {
	return &personServiceImpl{data: data}
}

func (s *personServiceImpl) ByID(ctx context.Context, id string) (*domain.Person, error) {
	return s.data.GetByID(ctx, id)
}

func (s *personServiceImpl) Search(ctx context.Context, text string, page, size int) ([]domain.Person, error) {
	page, size = normalizePage(page, size)

	key := fmt.Sprintf("persons:search:%s:%d:%d", text, page, size)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.data.Search(ctx, query.PersonSearch(text, offset(page, size), size), size)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Person), nil
}
