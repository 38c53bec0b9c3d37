package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Klyucherov/Async-API-sprint-1/internal/domain"
	"github.com/Klyucherov/Async-API-sprint-1/internal/query"
)

func parseBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("backend body is not valid JSON: %v", err)
	}
	return m
}

func newFilmService(fc *fakeCache, fr *fakeRepo) FilmService {
	return NewFilmService(NewDataService[domain.Film](fc, fr, domain.PartitionMovies, testTTL))
}

func TestFilmList_DefaultsToRatingDescending(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()
	fr.addHits(domain.PartitionMovies, `{"id":"f1","title":"Alpha","imdb_rating":8.1}`)

	films := newFilmService(fc, fr)

	got, err := films.List(t.Context(), "", "", 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != "f1" {
		t.Fatalf("got %+v, want one film", got)
	}

	body := parseBody(t, fr.lastBody())
	if body["from"] != float64(0) || body["size"] != float64(10) {
		t.Fatalf("paging %v/%v, want 0/10", body["from"], body["size"])
	}
	sort, ok := body["sort"].([]any)
	if !ok || len(sort) != 1 {
		t.Fatalf("sort clause missing: %v", body["sort"])
	}
	clause := sort[0].(map[string]any)["imdb_rating"].(map[string]any)
	if clause["order"] != "desc" {
		t.Fatalf("sort order %v, want desc", clause["order"])
	}
	if _, ok := body["query"].(map[string]any)["match_all"]; !ok {
		t.Fatalf("query %v, want match_all without a genre filter", body["query"])
	}
}

func TestFilmList_FiltersByGenre(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()
	fr.addHits(domain.PartitionMovies, `{"id":"f1","title":"Alpha","imdb_rating":8.1}`)

	films := newFilmService(fc, fr)

	if _, err := films.List(t.Context(), "title", "g7", 1, 10); err != nil {
		t.Fatalf("List: %v", err)
	}

	body := parseBody(t, fr.lastBody())
	nested, ok := body["query"].(map[string]any)["nested"].(map[string]any)
	if !ok {
		t.Fatalf("query %v, want a nested genre filter", body["query"])
	}
	if nested["path"] != "genres" {
		t.Fatalf("nested path %v, want genres", nested["path"])
	}
	term := nested["query"].(map[string]any)["term"].(map[string]any)
	if term["genres.id"] != "g7" {
		t.Fatalf("term %v, want genres.id=g7", term)
	}
}

func TestFilmList_RejectsUnknownSort(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()

	films := newFilmService(fc, fr)

	_, err := films.List(t.Context(), "box_office", "", 1, 10)
	if !errors.Is(err, query.ErrInvalidSort) {
		t.Fatalf("got %v, want ErrInvalidSort", err)
	}
	if n := fr.searchCalls.Load(); n != 0 {
		t.Fatalf("backend searched %d times on a bad sort, want 0", n)
	}
}

func TestFilmSearch_ClampsPagination(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()
	fr.addHits(domain.PartitionMovies, `{"id":"f1","title":"Alpha","imdb_rating":8.1}`)

	films := newFilmService(fc, fr)

	if _, err := films.Search(t.Context(), "alpha", 0, 500); err != nil {
		t.Fatalf("Search: %v", err)
	}

	body := parseBody(t, fr.lastBody())
	if body["from"] != float64(0) {
		t.Fatalf("from %v, want 0 for a clamped first page", body["from"])
	}
	if body["size"] != float64(domain.MaxSize) {
		t.Fatalf("size %v, want the %d cap", body["size"], domain.MaxSize)
	}
}

func TestFilmsByPerson_CoversAllRoles(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()
	fr.addHits(domain.PartitionMovies, `{"id":"f1","title":"Alpha","imdb_rating":8.1}`)

	films := newFilmService(fc, fr)

	if _, err := films.ByPerson(t.Context(), "p42", 1, 10); err != nil {
		t.Fatalf("ByPerson: %v", err)
	}
	if got := fr.lastPartition(); got != domain.PartitionMovies {
		t.Fatalf("searched partition %q, want %q", got, domain.PartitionMovies)
	}

	body := parseBody(t, fr.lastBody())
	boolQuery := body["query"].(map[string]any)["bool"].(map[string]any)
	should, ok := boolQuery["should"].([]any)
	if !ok || len(should) != 3 {
		t.Fatalf("should has %d clauses, want one per role", len(should))
	}
	if boolQuery["minimum_should_match"] != float64(1) {
		t.Fatalf("minimum_should_match %v, want 1", boolQuery["minimum_should_match"])
	}
	paths := make(map[string]bool)
	for _, clause := range should {
		nested := clause.(map[string]any)["nested"].(map[string]any)
		paths[nested["path"].(string)] = true
	}
	for _, role := range []string{"actors", "writers", "directors"} {
		if !paths[role] {
			t.Fatalf("role %s not covered, got %v", role, paths)
		}
	}
}

func TestFilmList_CollapsesConcurrentIdenticalCalls(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()
	fr.addHits(domain.PartitionMovies, `{"id":"f1","title":"Alpha","imdb_rating":8.1}`)
	fr.searchDelay = 100 * time.Millisecond

	films := newFilmService(fc, fr)

	const workers = 5
	start := make(chan struct{})
	var wg sync.WaitGroup
	results := make([][]domain.Film, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = films.List(t.Context(), "", "", 1, 10)
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if len(results[i]) != 1 || results[i][0].ID != "f1" {
			t.Fatalf("worker %d got %+v, want the shared result", i, results[i])
		}
	}
	if n := fr.searchCalls.Load(); n != 1 {
		t.Fatalf("backend searched %d times for identical in-flight calls, want 1", n)
	}
}

func TestPersonSearch_ReturnsMatches(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()
	fr.addHits(domain.PartitionPersons,
		`{"id":"p1","full_name":"Ada Lovelace","films":[{"id":"f1","roles":["writer"]}]}`,
	)

	persons := NewPersonService(NewDataService[domain.Person](fc, fr, domain.PartitionPersons, testTTL))

	got, err := persons.Search(t.Context(), "ada", 1, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "Ada Lovelace" {
		t.Fatalf("got %+v, want Ada Lovelace", got)
	}

	body := parseBody(t, fr.lastBody())
	match := body["query"].(map[string]any)["match"].(map[string]any)["full_name"].(map[string]any)
	if match["query"] != "ada" {
		t.Fatalf("match %v, want query=ada", match)
	}
}

func TestGenreList_SecondCallReplaysFromCache(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()
	fr.addHits(domain.PartitionGenres,
		`{"id":"g1","name":"Drama"}`,
		`{"id":"g2","name":"Action"}`,
	)

	genres := NewGenreService(NewDataService[domain.Genre](fc, fr, domain.PartitionGenres, testTTL))

	first, err := genres.List(t.Context(), 1, 2)
	if err != nil {
		t.Fatalf("List 1: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d genres, want 2", len(first))
	}

	key := collectionKey(t, domain.PartitionGenres, query.GenreList(0, 2))
	waitFor(t, func() bool { return fc.listLen(key) == 2 })

	second, err := genres.List(t.Context(), 1, 2)
	if err != nil {
		t.Fatalf("List 2: %v", err)
	}
	if len(second) != 2 || second[0].ID != first[0].ID {
		t.Fatalf("replay returned %+v, want %+v", second, first)
	}
	if n := fr.searchCalls.Load(); n != 1 {
		t.Fatalf("backend searched %d times, want 1", n)
	}
}

func TestGenreByID_Delegates(t *testing.T) {
	fc := newFakeCache()
	fr := newFakeRepo()
	fr.addDoc(domain.PartitionGenres, "g1", `{"id":"g1","name":"Drama"}`)

	genres := NewGenreService(NewDataService[domain.Genre](fc, fr, domain.PartitionGenres, testTTL))

	genre, err := genres.ByID(t.Context(), "g1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if genre.Name != "Drama" {
		t.Fatalf("got %+v, want Drama", genre)
	}

	_, err = genres.ByID(t.Context(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
