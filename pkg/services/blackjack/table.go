package blackjack

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/coder/quartz"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/game"
)

// TableDeps are the collaborators a table works with. Repo, Logger, Clock
// and Rand are optional.
type TableDeps struct {
	Bank     Bank
	Prompter Prompter
	Repo     game.Repository
	Logger   *logging.Logger
	Clock    quartz.Clock
	Rand     *rand.Rand
	// NewShoe builds the shoe for each round; defaults to one shuffled 52 card deck
	NewShoe func(rng *rand.Rand) Shoe
}

// Table is a session: the same players, round after round, until they stop or
// nobody has money left. Only banks carry over between rounds.
type Table struct {
	Players []*Player

	deps   TableDeps
	logger *logging.Logger
}

// NewTable seats players at a table
func NewTable(players []*Player, deps TableDeps) *Table {
	if deps.Logger == nil {
		deps.Logger = logging.Default
	}
	if deps.Clock == nil {
		deps.Clock = quartz.NewReal()
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if deps.NewShoe == nil {
		deps.NewShoe = NewShuffledShoe
	}

	return &Table{
		Players: players,
		deps:    deps,
		logger:  deps.Logger.Named("table"),
	}
}

// NewShuffledShoe returns a fresh 52 card deck shuffled with rng
func NewShuffledShoe(rng *rand.Rand) Shoe {
	deck := entities.NewDeck()
	deck.Shuffle(rng)
	return deck
}

// Seated returns the players who still have money to bet
func (t *Table) Seated(ctx context.Context) ([]*Player, error) {
	seated := make([]*Player, 0, len(t.Players))
	for _, p := range t.Players {
		bank, err := t.deps.Bank.GetBank(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("reading bank for %s: %w", p.Name, err)
		}
		if bank > 0 {
			seated = append(seated, p)
			continue
		}
		p.ResetHands()
	}
	return seated, nil
}

// PlayRound deals one round with a new shoe to every player who can bet and
// records the result.
func (t *Table) PlayRound(ctx context.Context) (*entities.RoundResult, error) {
	seated, err := t.Seated(ctx)
	if err != nil {
		return nil, err
	}
	if len(seated) == 0 {
		return nil, ErrNoPlayers
	}

	round := NewRound(seated, RoundDeps{
		Shoe:     t.deps.NewShoe(t.deps.Rand),
		Bank:     t.deps.Bank,
		Prompter: t.deps.Prompter,
		Logger:   t.deps.Logger,
		Clock:    t.deps.Clock,
	})

	result, err := round.Play(ctx)
	if err != nil {
		return nil, err
	}

	if t.deps.Repo != nil {
		if err := t.deps.Repo.SaveRoundResult(ctx, result); err != nil {
			// The money has already moved; losing the history is not fatal
			t.logger.Error("Failed to save round result", "round", result.ID, "error", err)
		}
	}
	return result, nil
}

// Run plays rounds until the players decline another, nobody can bet, or a
// non-recoverable error occurs. A round lost to an exhausted shoe is reported
// and the next round starts with a new shoe.
func (t *Table) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, err := t.PlayRound(ctx)
		switch {
		case err == nil:
		case types.IsGameError(err, types.ErrDeckExhausted):
			t.logger.Warn("Round aborted, bets refunded", "error", err)
			t.deps.Prompter.Announce(ctx, TableView{Players: t.Players}, "The shoe ran out. Bets are returned.")
		case errors.Is(err, ErrNoPlayers):
			t.deps.Prompter.Announce(ctx, TableView{Players: t.Players}, "Nobody has money left. The table is closed.")
			return nil
		default:
			return err
		}

		more, err := t.deps.Prompter.AskContinue(ctx)
		if err != nil {
			return fmt.Errorf("asking to continue: %w", err)
		}
		if !more {
			return nil
		}
	}
}
