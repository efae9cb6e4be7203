package usecase

import (
	"context"
	"sync"

	"placemarks-service/internal/domain/entity"
	"placemarks-service/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.NewLogger("error")
}

type fakePlaceRepo struct {
	mu        sync.Mutex
	places    map[string]*entity.Place
	curated   []entity.CuratedPlace
	getErr    error
	upsertErr error
	queryErr  error
	upserts   map[string]*entity.PlaceUpdate
}

func newFakePlaceRepo() *fakePlaceRepo {
	return &fakePlaceRepo{
		places:  make(map[string]*entity.Place),
		upserts: make(map[string]*entity.PlaceUpdate),
	}
}

func (f *fakePlaceRepo) GetByPlaceID(ctx context.Context, googlePlaceID string) (*entity.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.places[googlePlaceID], nil
}

func (f *fakePlaceRepo) Upsert(ctx context.Context, googlePlaceID string, update *entity.PlaceUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts[googlePlaceID] = update
	return nil
}

func (f *fakePlaceRepo) QueryCuratedListPlaces(ctx context.Context) ([]entity.CuratedPlace, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.curated, nil
}

type fakeCacheRepo struct {
	mu        sync.Mutex
	entries   map[string]*entity.PlaceCacheEntry
	upsertErr error
	deleted   int64
	deleteErr error
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[string]*entity.PlaceCacheEntry)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, googlePlaceID string) (*entity.PlaceCacheEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[googlePlaceID], nil
}

func (f *fakeCacheRepo) Upsert(ctx context.Context, entry *entity.PlaceCacheEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.entries[entry.GooglePlaceID] = entry
	return nil
}

func (f *fakeCacheRepo) DeleteExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.deleted, nil
}

type fakeDetailsRepo struct {
	mu      sync.Mutex
	details map[string]*entity.PlaceDetail
	err     error
	calls   []string
}

func newFakeDetailsRepo() *fakeDetailsRepo {
	return &fakeDetailsRepo{details: make(map[string]*entity.PlaceDetail)}
}

func (f *fakeDetailsRepo) FetchDetails(ctx context.Context, googlePlaceID string) (*entity.PlaceDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, googlePlaceID)
	if f.err != nil {
		return nil, f.err
	}
	if detail, ok := f.details[googlePlaceID]; ok {
		return detail, nil
	}
	return &entity.PlaceDetail{PlaceID: googlePlaceID, Name: "Place " + googlePlaceID}, nil
}

func (f *fakeDetailsRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type countingPacer struct {
	mu    sync.Mutex
	waits int
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return nil
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// completePlace builds a place with all five enrichable fields populated
// and structured photos.
func completePlace(googlePlaceID string) *entity.Place {
	return &entity.Place{
		ID:            1,
		GooglePlaceID: googlePlaceID,
		Name:          "Complete Place",
		Address:       "1 Main St",
		Phone:         strPtr("+1 555 0100"),
		Website:       strPtr("https://example.com"),
		GoogleRating:  f64Ptr(4.4),
		HoursOpen: &entity.OpeningHours{
			WeekdayText: []string{"Monday: 9:00 AM – 5:00 PM"},
		},
		PhotoReferences: []entity.PhotoEntry{
			{Structured: &entity.PhotoReference{
				PhotoReference:   "ref-1",
				Height:           100,
				Width:            100,
				HTMLAttributions: []string{},
			}},
		},
	}
}
