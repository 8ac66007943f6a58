package ingest

import (
	"context"

	"arthere/internal/museum"
	"arthere/internal/platform/opendata"

	"github.com/stretchr/testify/mock"
)

type mockCatalogFetcher struct {
	mock.Mock
}

func (m *mockCatalogFetcher) FetchPage(ctx context.Context, page, rows int) (opendata.CatalogPage, error) {
	args := m.Called(ctx, page, rows)
	return args.Get(0).(opendata.CatalogPage), args.Error(1)
}

type mockExhibitionFetcher struct {
	mock.Mock
}

func (m *mockExhibitionFetcher) FetchPage(ctx context.Context, page, rows int) (opendata.ExhibitionPage, error) {
	args := m.Called(ctx, page, rows)
	return args.Get(0).(opendata.ExhibitionPage), args.Error(1)
}

type mockMuseumRepo struct {
	mock.Mock
}

func (m *mockMuseumRepo) GetByName(ctx context.Context, name string) (museum.Museum, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(museum.Museum), args.Error(1)
}

func (m *mockMuseumRepo) Insert(ctx context.Context, mus *museum.Museum) error {
	args := m.Called(ctx, mus)
	return args.Error(0)
}

func (m *mockMuseumRepo) Update(ctx context.Context, mus *museum.Museum) error {
	args := m.Called(ctx, mus)
	return args.Error(0)
}

func (m *mockMuseumRepo) BulkUpsert(ctx context.Context, batch []museum.Museum) (int64, error) {
	args := m.Called(ctx, batch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMuseumRepo) List(ctx context.Context, limit, offset int) ([]museum.Museum, int, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]museum.Museum), args.Int(1), args.Error(2)
}

type mockRunRepo struct {
	mock.Mock
}

func (m *mockRunRepo) CreateRun(ctx context.Context, run *SyncRun) (string, error) {
	args := m.Called(ctx, run)
	return args.String(0), args.Error(1)
}

func (m *mockRunRepo) UpdateRun(ctx context.Context, run *SyncRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}
