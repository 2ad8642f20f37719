package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/console"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/db"
	"github.com/fadedpez/blackjack/pkg/entities"
	gameRepo "github.com/fadedpez/blackjack/pkg/repositories/game"
	walletRepo "github.com/fadedpez/blackjack/pkg/repositories/wallet"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/statistics"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))
)

type CLI struct {
	Players int    `short:"p" help:"Number of players at the table (asked when 0)" default:"0"`
	Bank    int64  `short:"b" help:"Default buy-in for new players (overrides STARTING_BANK)"`
	Seed    uint64 `help:"Seed for shuffling; 0 picks a random seed" default:"0"`
	Storage string `help:"Where banks and round history are kept (memory or sqlite)"`
	Debug   bool   `help:"Log at debug level"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack at the terminal for one or more players."),
	)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	if cli.Bank != 0 {
		cfg.StartingBank = cli.Bank
	}
	if cli.Storage != "" {
		cfg.StorageType = cli.Storage
	}
	if cli.Debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	if cfg.StorageType == config.StorageSQLite {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			log.Fatal("Failed to create data directory", "error", err)
		}
	}

	if cli.Players < 0 {
		log.Fatal("Invalid number of players. Must be at least 1.")
	}

	fmt.Print(titleStyle.Render(" ♠ ♡ Blackjack ♢ ♣ "))
	fmt.Println()
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLogger(os.Stderr, cfg.Level())
	if err := run(ctx, cli, cfg, logger, os.Stdin, os.Stdout); err != nil {
		if ctx.Err() != nil {
			fmt.Println()
			fmt.Println("Table closed.")
			kctx.Exit(0)
		}
		logger.LogError(err)
		kctx.Exit(1)
	}

	kctx.Exit(0)
}

// stores bundles the repositories chosen by configuration
type stores struct {
	wallets walletRepo.Repository
	rounds  gameRepo.Repository
	db      *sql.DB
}

func (s *stores) Close() error {
	if err := s.rounds.Close(); err != nil {
		return err
	}
	if err := s.wallets.Close(); err != nil {
		return err
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*stores, error) {
	s := &stores{}

	switch cfg.StorageType {
	case config.StorageSQLite:
		conn, err := db.OpenSQLite(cfg.DatabasePath(), logger)
		if err != nil {
			return nil, err
		}
		s.db = conn
		s.wallets = walletRepo.NewSQLiteRepository(conn, logger)
		s.rounds = gameRepo.NewSQLiteRepository(conn, logger)
	default:
		s.wallets = walletRepo.NewMemoryRepository()
		s.rounds = gameRepo.NewMemoryRepository()
	}

	if cfg.ElasticsearchURL != "" {
		esRepo, err := gameRepo.NewElasticsearchRepository(ctx, s.rounds, gameRepo.ElasticsearchConfig{
			URL:         cfg.ElasticsearchURL,
			Username:    cfg.ElasticsearchUsername,
			Password:    cfg.ElasticsearchPassword,
			IndexPrefix: cfg.ElasticsearchIndexPrefix,
		}, logger)
		if err != nil {
			// Round history still lands in the base store
			logger.Warn("Elasticsearch unavailable, results will not be indexed", "url", cfg.ElasticsearchURL, "error", err)
		} else {
			s.rounds = esRepo
		}
	}

	return s, nil
}

func run(ctx context.Context, cli CLI, cfg *config.Config, logger *logging.Logger, in io.Reader, out io.Writer) error {
	store, err := openStores(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	clock := quartz.NewReal()
	bank := wallet.NewService(store.wallets, logger, clock)
	prompter := console.NewPrompter(in, out)

	players, err := seatPlayers(ctx, cli.Players, cfg.StartingBank, prompter, bank)
	if err != nil {
		return err
	}

	seed := cli.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Debug("Shuffling", "seed", seed)

	table := blackjack.NewTable(players, blackjack.TableDeps{
		Bank:     bank,
		Prompter: prompter,
		Repo:     store.rounds,
		Logger:   logger,
		Clock:    clock,
		Rand:     rand.New(rand.NewPCG(seed, seed)),
	})
	if err := table.Run(ctx); err != nil {
		return err
	}

	return printSummary(ctx, out, players, bank, statistics.NewService(store.rounds, clock))
}

// seatPlayers asks who is playing and opens an account for each. A returning
// player keeps the bank they left with.
func seatPlayers(ctx context.Context, count int, buyIn int64, prompter *console.Prompter, bank *wallet.Service) ([]*blackjack.Player, error) {
	if count == 0 {
		n, err := prompter.AskPlayerCount(ctx)
		if err != nil {
			return nil, err
		}
		count = n
	}

	players := make([]*blackjack.Player, 0, count)
	seen := make(map[string]bool, count)
	for seat := 1; seat <= count; seat++ {
		name, err := prompter.AskName(ctx, seat)
		if err != nil {
			return nil, err
		}
		id := playerID(name)
		if seen[id] {
			prompter.Announce(ctx, blackjack.TableView{}, fmt.Sprintf("%s is already seated.", name))
			seat--
			continue
		}
		seen[id] = true

		if existing, err := bank.GetBank(ctx, id); err == nil && existing > 0 {
			prompter.Announce(ctx, blackjack.TableView{}, fmt.Sprintf("Welcome back %s, you have $%d.", name, existing))
		} else {
			amount, err := prompter.AskBuyIn(ctx, name, buyIn)
			if err != nil {
				return nil, err
			}
			_, created, err := bank.OpenAccount(ctx, id, amount)
			if err != nil {
				return nil, err
			}
			if !created {
				if err := bank.Credit(ctx, id, amount, entities.TransactionTypeBuyIn, ""); err != nil {
					return nil, err
				}
			}
		}

		players = append(players, blackjack.NewPlayer(id, name))
	}
	return players, nil
}

func playerID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

func printSummary(ctx context.Context, out io.Writer, players []*blackjack.Player, bank *wallet.Service, stats *statistics.Service) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, titleStyle.Render(" Final banks "))
	for _, p := range players {
		amount, err := bank.GetBank(ctx, p.ID)
		if err != nil {
			return err
		}
		s, err := stats.PlayerStats(ctx, p.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, summaryStyle.Render(fmt.Sprintf(
			"%s: $%d (hands %d, won %d, lost %d, pushed %d, blackjacks %d, net %+d)",
			p.Name, amount, s.HandsPlayed, s.Wins, s.Losses, s.Pushes, s.Blackjacks, s.NetProfit(),
		)))
	}

	board, err := stats.GetLeaderboard(ctx, 1, 5)
	if err != nil {
		return err
	}
	if len(board.Players) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, titleStyle.Render(" All-time leaders "))
		for _, rank := range board.Players {
			fmt.Fprintf(out, "%d. %s  net %+d  win rate %.0f%%\n", rank.Rank, rank.PlayerID, rank.NetProfit(), rank.WinRate)
		}
	}
	return nil
}
