package update

import (
	"context"
	"errors"
	"testing"
	"time"

	"oandarates/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockRatesClient struct{ mock.Mock }

func (m *MockRatesClient) GetFinancingRates(ctx context.Context) (*domain.RatesDocument, []byte, error) {
	args := m.Called(ctx)
	doc, _ := args.Get(0).(*domain.RatesDocument)
	raw, _ := args.Get(1).([]byte)
	return doc, raw, args.Error(2)
}

type MockSnapshotRepository struct{ mock.Mock }

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot domain.RateSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) LoadLatest(ctx context.Context) (domain.RateSnapshot, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(domain.RateSnapshot)
	return s, args.Error(1)
}

func (m *MockSnapshotRepository) LoadAll(ctx context.Context) ([]domain.RateSnapshot, error) {
	args := m.Called(ctx)
	snapshots, _ := args.Get(0).([]domain.RateSnapshot)
	return snapshots, args.Error(1)
}

type MockHistoryCache struct{ mock.Mock }

func (m *MockHistoryCache) Get(ctx context.Context, instrument string) ([]domain.HistoryPoint, error) {
	args := m.Called(ctx, instrument)
	points, _ := args.Get(0).([]domain.HistoryPoint)
	return points, args.Error(1)
}

func (m *MockHistoryCache) InvalidateAll() {
	m.Called()
}

// --- fixtures ---

var testRaw = []byte(`{"financingRates":[{"instrument":"EUR_USD","longRate":-0.01,"shortRate":0.002}]}`)

func testDoc() *domain.RatesDocument {
	doc, _ := domain.DecodeDocument(testRaw)
	return doc
}

func fixedNowJob(client *MockRatesClient, repo *MockSnapshotRepository, cache *MockHistoryCache) (*FetchJob, time.Time) {
	j := NewFetchJob(client, repo, cache, time.Second)
	fixed := time.Date(2025, 8, 29, 16, 45, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }
	return j, domain.SnapshotDate(fixed)
}

// --- Run ---

func TestFetchJob_CancelledBeforeNetworkCall(t *testing.T) {
	client := new(MockRatesClient)
	repo := new(MockSnapshotRepository)
	cache := new(MockHistoryCache)
	j, _ := fixedNowJob(client, repo, cache)

	token := NewToken()
	token.Request()

	outcome := j.Run(context.Background(), "exec-1", ModeManual, token)

	require.Equal(t, JobCancelled, outcome.State)
	client.AssertNotCalled(t, "GetFinancingRates", mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFetchJob_CancelledBeforePersist_EvenAfterCallCompleted(t *testing.T) {
	client := new(MockRatesClient)
	repo := new(MockSnapshotRepository)
	cache := new(MockHistoryCache)
	j, _ := fixedNowJob(client, repo, cache)

	token := NewToken()
	// cancellation lands while the network call is in flight
	client.On("GetFinancingRates", mock.Anything).Return(testDoc(), testRaw, nil).Run(func(mock.Arguments) {
		token.Request()
	}).Once()

	outcome := j.Run(context.Background(), "exec-2", ModeAutomatic, token)

	require.Equal(t, JobCancelled, outcome.State)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "InvalidateAll")
}

func TestFetchJob_ManualSuccess_NeverPersists(t *testing.T) {
	client := new(MockRatesClient)
	repo := new(MockSnapshotRepository)
	cache := new(MockHistoryCache)
	j, today := fixedNowJob(client, repo, cache)

	client.On("GetFinancingRates", mock.Anything).Return(testDoc(), testRaw, nil).Once()

	outcome := j.Run(context.Background(), "exec-3", ModeManual, NewToken())

	require.Equal(t, JobSucceeded, outcome.State)
	require.Equal(t, today, outcome.Date)
	require.Len(t, outcome.Document.FinancingRates, 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "InvalidateAll")
}

func TestFetchJob_AutomaticSuccess_PersistsAndInvalidates(t *testing.T) {
	client := new(MockRatesClient)
	repo := new(MockSnapshotRepository)
	cache := new(MockHistoryCache)
	j, today := fixedNowJob(client, repo, cache)

	client.On("GetFinancingRates", mock.Anything).Return(testDoc(), testRaw, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		snapshot, ok := args.Get(1).(domain.RateSnapshot)
		require.True(t, ok)
		require.Equal(t, today, snapshot.Date)
		require.Equal(t, testRaw, snapshot.RawPayload)
	}).Once()
	cache.On("InvalidateAll").Return().Once()

	outcome := j.Run(context.Background(), "exec-4", ModeAutomatic, NewToken())

	require.Equal(t, JobSucceeded, outcome.State)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestFetchJob_NetworkError_Fails(t *testing.T) {
	client := new(MockRatesClient)
	repo := new(MockSnapshotRepository)
	cache := new(MockHistoryCache)
	j, _ := fixedNowJob(client, repo, cache)

	wantErr := errors.New("connection refused")
	client.On("GetFinancingRates", mock.Anything).Return(nil, nil, wantErr).Once()

	outcome := j.Run(context.Background(), "exec-5", ModeAutomatic, NewToken())

	require.Equal(t, JobFailed, outcome.State)
	require.ErrorIs(t, outcome.Err, wantErr)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestFetchJob_MalformedResponse_FailsWithCause(t *testing.T) {
	client := new(MockRatesClient)
	repo := new(MockSnapshotRepository)
	cache := new(MockHistoryCache)
	j, _ := fixedNowJob(client, repo, cache)

	client.On("GetFinancingRates", mock.Anything).Return(nil, nil, domain.ErrMalformedResponse).Once()

	outcome := j.Run(context.Background(), "exec-6", ModeManual, NewToken())

	require.Equal(t, JobFailed, outcome.State)
	require.ErrorIs(t, outcome.Err, domain.ErrMalformedResponse)
}

func TestFetchJob_PersistError_FailsWithoutInvalidation(t *testing.T) {
	client := new(MockRatesClient)
	repo := new(MockSnapshotRepository)
	cache := new(MockHistoryCache)
	j, _ := fixedNowJob(client, repo, cache)

	client.On("GetFinancingRates", mock.Anything).Return(testDoc(), testRaw, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("storage unavailable")).Once()

	outcome := j.Run(context.Background(), "exec-7", ModeAutomatic, NewToken())

	require.Equal(t, JobFailed, outcome.State)
	require.ErrorContains(t, outcome.Err, "failed to persist snapshot")
	cache.AssertNotCalled(t, "InvalidateAll")
}
