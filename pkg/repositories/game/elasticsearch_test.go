package game

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/entities"
)

// MockBaseRepository is a mock implementation of the Repository interface for testing
type MockBaseRepository struct {
	mock.Mock
}

func (m *MockBaseRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockBaseRepository) GetRoundResult(ctx context.Context, roundID string) (*entities.RoundResult, error) {
	args := m.Called(ctx, roundID)
	round, _ := args.Get(0).(*entities.RoundResult)
	return round, args.Error(1)
}

func (m *MockBaseRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	args := m.Called(ctx, playerID, limit)
	return args.Get(0).([]*entities.RoundResult), args.Error(1)
}

func (m *MockBaseRepository) GetRecentResults(ctx context.Context, limit int) ([]*entities.RoundResult, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*entities.RoundResult), args.Error(1)
}

func (m *MockBaseRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(*entities.PlayerStatistics), args.Error(1)
}

func (m *MockBaseRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.PlayerStatistics), args.Error(1)
}

func (m *MockBaseRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

// fakeElasticsearch answers the handful of endpoints the repository uses
type fakeElasticsearch struct {
	mu           sync.Mutex
	indexExists  bool
	existsStatus int
	indexCreated bool
	indexStatus  int
	searchStatus int
	searchIDs    []string
	documents    map[string][]byte
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/test_rounds":
		if f.existsStatus != 0 {
			w.WriteHeader(f.existsStatus)
		} else if f.indexExists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}

	case r.Method == http.MethodPut && r.URL.Path == "/test_rounds":
		f.indexExists = true
		f.indexCreated = true
		io.WriteString(w, `{"acknowledged":true}`)

	case strings.HasPrefix(r.URL.Path, "/test_rounds/_doc/"):
		if f.indexStatus != 0 {
			w.WriteHeader(f.indexStatus)
			io.WriteString(w, `{"error":"boom"}`)
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.documents[strings.TrimPrefix(r.URL.Path, "/test_rounds/_doc/")] = body
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"result":"created"}`)

	case r.URL.Path == "/test_rounds/_search":
		if f.searchStatus != 0 {
			w.WriteHeader(f.searchStatus)
			io.WriteString(w, `{"error":"boom"}`)
			return
		}
		hits := make([]map[string]any, 0, len(f.searchIDs))
		for _, id := range f.searchIDs {
			hits = append(hits, map[string]any{"_source": map[string]any{"round_id": id}})
		}
		json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})

	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func newFakeElasticsearch(t *testing.T) (*fakeElasticsearch, string) {
	t.Helper()
	fake := &fakeElasticsearch{documents: make(map[string][]byte)}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return fake, server.URL
}

func newTestESRepository(t *testing.T, base Repository) (*ElasticsearchRepository, *fakeElasticsearch) {
	t.Helper()
	fake, url := newFakeElasticsearch(t)
	repo, err := NewElasticsearchRepository(context.Background(), base, ElasticsearchConfig{
		URL:         url,
		IndexPrefix: "test",
	}, logging.Discard())
	require.NoError(t, err)
	return repo, fake
}

func testRound(id string) *entities.RoundResult {
	return &entities.RoundResult{
		ID:          id,
		StartedAt:   time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		CompletedAt: time.Date(2026, 5, 1, 12, 1, 0, 0, time.UTC),
		DealerCards: []entities.Card{entities.NewCard(entities.Ten, entities.Spades), entities.NewCard(entities.Seven, entities.Hearts)},
		DealerTotal: 17,
		Hands: []*entities.HandResult{{
			PlayerID: "p1",
			Cards:    []entities.Card{entities.NewCard(entities.Ten, entities.Clubs), entities.NewCard(entities.Nine, entities.Clubs)},
			Total:    19,
			Bet:      10,
			Payout:   20,
			Outcome:  entities.OutcomeWin,
		}},
	}
}

func TestNewElasticsearchRepositoryCreatesIndex(t *testing.T) {
	repo, fake := newTestESRepository(t, new(MockBaseRepository))

	assert.True(t, fake.indexCreated)
	assert.Equal(t, "test_rounds", repo.RoundIndex())
}

func TestNewElasticsearchRepositoryKeepsExistingIndex(t *testing.T) {
	fake, url := newFakeElasticsearch(t)
	fake.indexExists = true

	_, err := NewElasticsearchRepository(context.Background(), new(MockBaseRepository), ElasticsearchConfig{
		URL:         url,
		IndexPrefix: "test",
	}, logging.Discard())

	require.NoError(t, err)
	assert.False(t, fake.indexCreated)
}

func TestNewElasticsearchRepositoryFailsWhenIndexCheckFails(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			fake, url := newFakeElasticsearch(t)
			fake.existsStatus = status

			_, err := NewElasticsearchRepository(context.Background(), new(MockBaseRepository), ElasticsearchConfig{
				URL:         url,
				IndexPrefix: "test",
			}, logging.Discard())

			require.Error(t, err)
			assert.False(t, fake.indexCreated)
		})
	}
}

func TestSaveRoundResultIndexesDocument(t *testing.T) {
	base := new(MockBaseRepository)
	round := testRound("round-1")
	base.On("SaveRoundResult", mock.Anything, round).Return(nil)

	repo, fake := newTestESRepository(t, base)
	require.NoError(t, repo.SaveRoundResult(context.Background(), round))

	base.AssertExpectations(t)
	require.Contains(t, fake.documents, "round-1")

	var doc ESRoundResult
	require.NoError(t, json.Unmarshal(fake.documents["round-1"], &doc))
	assert.Equal(t, "round-1", doc.RoundID)
	assert.Equal(t, []string{"10♠", "7♡"}, doc.DealerCards)
	require.Len(t, doc.Hands, 1)
	assert.Equal(t, "p1", doc.Hands[0].PlayerID)
	assert.Equal(t, "WIN", doc.Hands[0].Outcome)
}

func TestSaveRoundResultToleratesIndexFailure(t *testing.T) {
	base := new(MockBaseRepository)
	round := testRound("round-1")
	base.On("SaveRoundResult", mock.Anything, round).Return(nil)

	repo, fake := newTestESRepository(t, base)
	fake.indexStatus = http.StatusBadRequest

	assert.NoError(t, repo.SaveRoundResult(context.Background(), round))
	assert.Empty(t, fake.documents)
}

func TestSaveRoundResultBaseFailureSkipsIndex(t *testing.T) {
	base := new(MockBaseRepository)
	round := testRound("round-1")
	base.On("SaveRoundResult", mock.Anything, round).Return(errors.New("disk full"))

	repo, fake := newTestESRepository(t, base)

	assert.Error(t, repo.SaveRoundResult(context.Background(), round))
	assert.Empty(t, fake.documents)
}

func TestGetPlayerResultsUsesSearch(t *testing.T) {
	base := new(MockBaseRepository)
	base.On("GetRoundResult", mock.Anything, "round-2").Return(testRound("round-2"), nil)
	base.On("GetRoundResult", mock.Anything, "gone").Return(nil, ErrRoundNotFound)
	base.On("GetRoundResult", mock.Anything, "round-1").Return(testRound("round-1"), nil)

	repo, fake := newTestESRepository(t, base)
	fake.searchIDs = []string{"round-2", "gone", "round-1"}

	results, err := repo.GetPlayerResults(context.Background(), "p1", 10)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "round-2", results[0].ID)
	assert.Equal(t, "round-1", results[1].ID)
	base.AssertNotCalled(t, "GetPlayerResults", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPlayerResultsFallsBackWhenSearchFails(t *testing.T) {
	base := new(MockBaseRepository)
	base.On("GetPlayerResults", mock.Anything, "p1", 5).Return([]*entities.RoundResult{testRound("round-1")}, nil)

	repo, fake := newTestESRepository(t, base)
	fake.searchStatus = http.StatusBadRequest

	results, err := repo.GetPlayerResults(context.Background(), "p1", 5)

	require.NoError(t, err)
	require.Len(t, results, 1)
	base.AssertExpectations(t)
}

func TestReadsDelegateToBase(t *testing.T) {
	base := new(MockBaseRepository)
	stats := &entities.PlayerStatistics{PlayerID: "p1", HandsPlayed: 3}
	base.On("GetPlayerStatistics", mock.Anything, "p1").Return(stats, nil)
	base.On("GetRecentResults", mock.Anything, 3).Return([]*entities.RoundResult{}, nil)
	base.On("Close").Return(nil)

	repo, _ := newTestESRepository(t, base)

	got, err := repo.GetPlayerStatistics(context.Background(), "p1")
	require.NoError(t, err)
	assert.Same(t, stats, got)

	_, err = repo.GetRecentResults(context.Background(), 3)
	require.NoError(t, err)

	require.NoError(t, repo.Close())
	base.AssertExpectations(t)
}

func TestReindexWritesRecentRounds(t *testing.T) {
	base := new(MockBaseRepository)
	base.On("GetRecentResults", mock.Anything, 50).
		Return([]*entities.RoundResult{testRound("round-2"), testRound("round-1")}, nil)

	repo, fake := newTestESRepository(t, base)

	n, err := repo.Reindex(context.Background(), 50)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, fake.documents, "round-1")
	assert.Contains(t, fake.documents, "round-2")
}

func TestReindexStopsOnIndexFailure(t *testing.T) {
	base := new(MockBaseRepository)
	base.On("GetRecentResults", mock.Anything, 10).
		Return([]*entities.RoundResult{testRound("round-1")}, nil)

	repo, fake := newTestESRepository(t, base)
	fake.indexStatus = http.StatusInternalServerError

	n, err := repo.Reindex(context.Background(), 10)

	assert.Error(t, err)
	assert.Zero(t, n)
}
