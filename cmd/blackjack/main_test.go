package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/blackjack/internal/console"
	"github.com/fadedpez/blackjack/internal/logging"
	gameRepo "github.com/fadedpez/blackjack/pkg/repositories/game"
	walletRepo "github.com/fadedpez/blackjack/pkg/repositories/wallet"
	"github.com/fadedpez/blackjack/pkg/services/statistics"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
)

func TestPlayerID(t *testing.T) {
	assert.Equal(t, "ann", playerID("Ann"))
	assert.Equal(t, "mary-jo", playerID("  Mary   Jo "))
}

func TestSeatPlayers(t *testing.T) {
	ctx := context.Background()
	bank := wallet.NewService(walletRepo.NewMemoryRepository(), logging.Discard(), nil)
	var out bytes.Buffer
	prompter := console.NewPrompter(strings.NewReader("2\nAnn\n\nann\nBob\n50\n"), &out)

	players, err := seatPlayers(ctx, 0, 100, prompter, bank)

	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "ann", players[0].ID)
	assert.Equal(t, "Bob", players[1].Name)
	assert.Contains(t, out.String(), "ann is already seated.")

	annBank, err := bank.GetBank(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, int64(100), annBank)
	bobBank, err := bank.GetBank(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(50), bobBank)
}

func TestSeatPlayersWelcomesBackAndTopsUpBrokePlayers(t *testing.T) {
	ctx := context.Background()
	bank := wallet.NewService(walletRepo.NewMemoryRepository(), logging.Discard(), nil)
	_, _, err := bank.OpenAccount(ctx, "ann", 40)
	require.NoError(t, err)
	_, _, err = bank.OpenAccount(ctx, "bob", 0)
	require.NoError(t, err)

	var out bytes.Buffer
	prompter := console.NewPrompter(strings.NewReader("Ann\nBob\n30\n"), &out)

	players, err := seatPlayers(ctx, 2, 100, prompter, bank)

	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Contains(t, out.String(), "Welcome back Ann, you have $40.")

	bobBank, err := bank.GetBank(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(30), bobBank)
}

func TestPrintSummaryWithoutHistory(t *testing.T) {
	ctx := context.Background()
	bank := wallet.NewService(walletRepo.NewMemoryRepository(), logging.Discard(), nil)
	var out bytes.Buffer
	prompter := console.NewPrompter(strings.NewReader("Ann\n\n"), &out)
	players, err := seatPlayers(ctx, 1, 75, prompter, bank)
	require.NoError(t, err)

	var summary bytes.Buffer
	err = printSummary(ctx, &summary, players, bank, statistics.NewService(gameRepo.NewMemoryRepository(), nil))

	require.NoError(t, err)
	assert.Contains(t, summary.String(), "Ann: $75 (hands 0")
	assert.NotContains(t, summary.String(), "All-time leaders")
}
