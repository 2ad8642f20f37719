package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/db"
	"github.com/fadedpez/blackjack/pkg/db/migrations"
	"github.com/fadedpez/blackjack/pkg/entities"
	gameRepo "github.com/fadedpez/blackjack/pkg/repositories/game"
	"github.com/fadedpez/blackjack/pkg/services/statistics"
)

// Globals are available to every command
type Globals struct {
	DB    string `help:"Path to SQLite database (defaults to DATA_DIR/blackjack.db)" type:"path"`
	Debug bool   `help:"Log at debug level"`

	cfg    *config.Config
	logger *logging.Logger
	out    io.Writer
}

type CLI struct {
	Globals

	Migrate     MigrateCmd     `cmd:"" help:"Apply pending database migrations"`
	Status      StatusCmd      `cmd:"" help:"List the migrations and whether they are applied"`
	Reindex     ReindexCmd     `cmd:"" help:"Write stored rounds to Elasticsearch again"`
	Leaderboard LeaderboardCmd `cmd:"" help:"Show players ranked by net profit"`
	History     HistoryCmd     `cmd:"" help:"Show a player's most recent rounds"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("blackjack-admin"),
		kong.Description("Maintenance for the blackjack database and search index."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	level := cfg.Level()
	if cli.Debug {
		level = logging.DEBUG
	}
	cli.cfg = cfg
	cli.logger = logging.NewLogger(os.Stderr, level)
	cli.out = os.Stdout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(&cli.Globals); err != nil {
		cli.logger.LogError(err)
		kctx.Exit(1)
	}
}

func (g *Globals) dbPath() string {
	if g.DB != "" {
		return g.DB
	}
	return g.cfg.DatabasePath()
}

// openDB opens the database without applying migrations
func (g *Globals) openDB() (*sql.DB, error) {
	return sql.Open("sqlite3", g.dbPath()+"?_foreign_keys=on")
}

// MigrateCmd applies the embedded migrations
type MigrateCmd struct{}

func (c *MigrateCmd) Run(g *Globals) error {
	conn, err := db.OpenSQLite(g.dbPath(), g.logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Fprintln(g.out, "Migrations applied successfully!")
	return nil
}

// StatusCmd prints every known migration
type StatusCmd struct{}

func (c *StatusCmd) Run(g *Globals) error {
	conn, err := g.openDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	migrator := migrations.NewMigrator(conn, migrations.Embedded(), g.logger)
	if err := migrator.Initialize(); err != nil {
		return err
	}
	applied, err := migrator.GetAppliedMigrations()
	if err != nil {
		return err
	}
	known, err := migrator.LoadMigrations()
	if err != nil {
		return err
	}

	for _, m := range known {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Fprintf(g.out, "%s  %-8s %s\n", m.Version, state, m.Description)
	}
	return nil
}

// roundRepository returns the SQLite round history, searched through
// Elasticsearch when it is configured
func (g *Globals) roundRepository(ctx context.Context, conn *sql.DB) (gameRepo.Repository, error) {
	base := gameRepo.NewSQLiteRepository(conn, g.logger)
	if g.cfg.ElasticsearchURL == "" {
		return base, nil
	}
	return gameRepo.NewElasticsearchRepository(ctx, base, g.elasticsearchConfig(), g.logger)
}

func (g *Globals) elasticsearchConfig() gameRepo.ElasticsearchConfig {
	return gameRepo.ElasticsearchConfig{
		URL:         g.cfg.ElasticsearchURL,
		Username:    g.cfg.ElasticsearchUsername,
		Password:    g.cfg.ElasticsearchPassword,
		IndexPrefix: g.cfg.ElasticsearchIndexPrefix,
	}
}

// ReindexCmd pushes the latest stored rounds into the search index
type ReindexCmd struct {
	Limit int `help:"How many of the most recent rounds to index" default:"1000"`
}

func (c *ReindexCmd) Run(ctx context.Context, g *Globals) error {
	if g.cfg.ElasticsearchURL == "" {
		return fmt.Errorf("ELASTICSEARCH_URL is not set")
	}

	conn, err := db.OpenSQLite(g.dbPath(), g.logger)
	if err != nil {
		return err
	}
	repo, err := gameRepo.NewElasticsearchRepository(ctx, gameRepo.NewSQLiteRepository(conn, g.logger), g.elasticsearchConfig(), g.logger)
	if err != nil {
		conn.Close()
		return err
	}
	defer func() {
		repo.Close()
		conn.Close()
	}()

	n, err := repo.Reindex(ctx, c.Limit)
	fmt.Fprintf(g.out, "Indexed %d rounds into %s\n", n, repo.RoundIndex())
	return err
}

// LeaderboardCmd prints one page of the leaderboard
type LeaderboardCmd struct {
	Page    int `help:"Page to show" default:"1"`
	PerPage int `help:"Players per page" default:"10"`
}

func (c *LeaderboardCmd) Run(ctx context.Context, g *Globals) error {
	conn, err := db.OpenSQLite(g.dbPath(), g.logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	board, err := statistics.NewService(gameRepo.NewSQLiteRepository(conn, g.logger), nil).GetLeaderboard(ctx, c.Page, c.PerPage)
	if err != nil {
		return err
	}
	return printLeaderboard(g.out, board)
}

func printLeaderboard(out io.Writer, board *statistics.Leaderboard) error {
	if len(board.Players) == 0 {
		_, err := fmt.Fprintln(out, "No rounds have been played yet.")
		return err
	}

	fmt.Fprintf(out, "Page %d of %d (%d players)\n", board.CurrentPage, board.TotalPages, board.TotalPlayers)
	for _, p := range board.Players {
		marker := ""
		if p.IsTopWinner {
			marker = " *"
		}
		fmt.Fprintf(out, "%3d. %-20s net %+6d  hands %4d  win rate %5.1f%%%s\n",
			p.Rank, p.PlayerID, p.NetProfit(), p.HandsPlayed, p.WinRate, marker)
	}
	return nil
}

// HistoryCmd prints a player's latest rounds, newest first
type HistoryCmd struct {
	Player string `arg:"" help:"Player ID (the lower-case name used at the table)"`
	Limit  int    `help:"How many rounds to show" default:"20"`
}

func (c *HistoryCmd) Run(ctx context.Context, g *Globals) error {
	conn, err := db.OpenSQLite(g.dbPath(), g.logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	repo, err := g.roundRepository(ctx, conn)
	if err != nil {
		return err
	}

	rounds, err := repo.GetPlayerResults(ctx, c.Player, c.Limit)
	if err != nil {
		return err
	}
	return printHistory(g.out, c.Player, rounds)
}

func printHistory(out io.Writer, playerID string, rounds []*entities.RoundResult) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintf(out, "No rounds recorded for %s.\n", playerID)
		return err
	}

	for _, round := range rounds {
		for _, hand := range round.HandsFor(playerID) {
			fmt.Fprintf(out, "%s  %-9s bet %4d  paid %4d  total %2d  dealer %2d\n",
				round.CompletedAt.Format("2006-01-02 15:04"), hand.Outcome, hand.Bet, hand.Payout, hand.Total, round.DealerTotal)
		}
	}
	return nil
}
