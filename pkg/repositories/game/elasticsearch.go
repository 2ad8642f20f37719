package game

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/entities"
)

const roundIndexMapping = `{
	"mappings": {
		"properties": {
			"round_id": { "type": "keyword" },
			"started_at": { "type": "date" },
			"completed_at": { "type": "date" },
			"dealer_cards": { "type": "keyword" },
			"dealer_total": { "type": "integer" },
			"dealer_blackjack": { "type": "boolean" },
			"dealer_bust": { "type": "boolean" },
			"hands": {
				"type": "nested",
				"properties": {
					"player_id": { "type": "keyword" },
					"hand_index": { "type": "integer" },
					"cards": { "type": "keyword" },
					"total": { "type": "integer" },
					"bet": { "type": "long" },
					"payout": { "type": "long" },
					"outcome": { "type": "keyword" },
					"doubled": { "type": "boolean" },
					"split": { "type": "boolean" }
				}
			}
		}
	}
}`

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
}

// ElasticsearchRepository indexes every saved round for search while the base
// repository stays the source of truth
type ElasticsearchRepository struct {
	baseRepo    Repository
	client      *elasticsearch.Client
	indexPrefix string
	logger      *logging.Logger
}

// NewElasticsearchRepository wraps baseRepo and makes sure the rounds index exists
func NewElasticsearchRepository(ctx context.Context, baseRepo Repository, config ElasticsearchConfig, logger *logging.Logger) (*ElasticsearchRepository, error) {
	if logger == nil {
		logger = logging.Default
	}

	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "blackjack"
	}

	repo := &ElasticsearchRepository{
		baseRepo:    baseRepo,
		client:      client,
		indexPrefix: config.IndexPrefix,
		logger:      logger.Named("elasticsearch"),
	}

	if err := repo.initIndices(ctx); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// RoundIndex is the name of the index rounds are written to
func (r *ElasticsearchRepository) RoundIndex() string {
	return r.indexPrefix + "_rounds"
}

// initIndices creates the rounds index if it doesn't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	res, err := r.client.Indices.Exists(
		[]string{r.RoundIndex()},
		r.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("error checking if round index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		if res.IsError() {
			return fmt.Errorf("error checking if round index exists: %s", res.Status())
		}
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: r.RoundIndex(),
		Body:  bytes.NewReader([]byte(roundIndexMapping)),
	}

	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating round index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating round index: %s", res.String())
	}

	r.logger.Info("Created index", "index", r.RoundIndex())
	return nil
}

// SaveRoundResult saves to the base repository, then indexes the round. A
// failed index write is logged; the round is already stored.
func (r *ElasticsearchRepository) SaveRoundResult(ctx context.Context, result *entities.RoundResult) error {
	if err := r.baseRepo.SaveRoundResult(ctx, result); err != nil {
		return err
	}

	if err := r.IndexRoundResult(ctx, result); err != nil {
		r.logger.Warn("Failed to index round", "round", result.ID, "error", err)
	}
	return nil
}

// IndexRoundResult writes the round document, keyed by round ID
func (r *ElasticsearchRepository) IndexRoundResult(ctx context.Context, result *entities.RoundResult) error {
	jsonData, err := json.Marshal(NewESRoundResult(result))
	if err != nil {
		return fmt.Errorf("error marshaling round result: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      r.RoundIndex(),
		DocumentID: result.ID,
		Body:       bytes.NewReader(jsonData),
		Refresh:    "true",
	}

	res, err := req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error indexing round result: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing round result: %s", res.String())
	}
	return nil
}

// Reindex writes the latest limit rounds of the base repository to the index
// again, e.g. after the index was dropped or the cluster was unreachable. It
// stops at the first failure and reports how many rounds were written.
func (r *ElasticsearchRepository) Reindex(ctx context.Context, limit int) (int, error) {
	rounds, err := r.baseRepo.GetRecentResults(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("error loading rounds to reindex: %w", err)
	}

	for i, round := range rounds {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := r.IndexRoundResult(ctx, round); err != nil {
			return i, err
		}
		r.logger.Debug("Reindexed round", "round", round.ID)
	}

	r.logger.Info("Reindex finished", "rounds", len(rounds), "index", r.RoundIndex())
	return len(rounds), nil
}

// SearchPlayerRounds returns the IDs of the rounds a player had hands in,
// newest first
func (r *ElasticsearchRepository) SearchPlayerRounds(ctx context.Context, playerID string, limit int) ([]string, error) {
	query := map[string]any{
		"_source": []string{"round_id"},
		"query": map[string]any{
			"nested": map[string]any{
				"path": "hands",
				"query": map[string]any{
					"term": map[string]any{"hands.player_id": playerID},
				},
			},
		},
		"sort": []any{
			map[string]any{"completed_at": map[string]any{"order": "desc"}},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("error marshaling query: %w", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.RoundIndex()),
		r.client.Search.WithBody(bytes.NewReader(body)),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("error searching for player rounds: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching for player rounds: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source struct {
					RoundID string `json:"round_id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing player rounds: %w", err)
	}

	ids := make([]string, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.RoundID)
	}
	return ids, nil
}

// GetPlayerResults finds the player's rounds through the index and loads them
// from the base repository. It falls back to the base repository when the
// search fails.
func (r *ElasticsearchRepository) GetPlayerResults(ctx context.Context, playerID string, limit int) ([]*entities.RoundResult, error) {
	ids, err := r.SearchPlayerRounds(ctx, playerID, limit)
	if err != nil {
		r.logger.Warn("Search failed, reading from base repository", "player", playerID, "error", err)
		return r.baseRepo.GetPlayerResults(ctx, playerID, limit)
	}

	results := make([]*entities.RoundResult, 0, len(ids))
	for _, id := range ids {
		round, err := r.baseRepo.GetRoundResult(ctx, id)
		if errors.Is(err, ErrRoundNotFound) {
			// indexed but never stored, or stored elsewhere
			continue
		}
		if err != nil {
			return nil, err
		}
		results = append(results, round)
	}
	return results, nil
}

// GetRoundResult delegates to the base repository
func (r *ElasticsearchRepository) GetRoundResult(ctx context.Context, roundID string) (*entities.RoundResult, error) {
	return r.baseRepo.GetRoundResult(ctx, roundID)
}

// GetRecentResults delegates to the base repository
func (r *ElasticsearchRepository) GetRecentResults(ctx context.Context, limit int) ([]*entities.RoundResult, error) {
	return r.baseRepo.GetRecentResults(ctx, limit)
}

// GetPlayerStatistics delegates to the base repository
func (r *ElasticsearchRepository) GetPlayerStatistics(ctx context.Context, playerID string) (*entities.PlayerStatistics, error) {
	return r.baseRepo.GetPlayerStatistics(ctx, playerID)
}

// GetAllPlayerStatistics delegates to the base repository
func (r *ElasticsearchRepository) GetAllPlayerStatistics(ctx context.Context) ([]*entities.PlayerStatistics, error) {
	return r.baseRepo.GetAllPlayerStatistics(ctx)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
