package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewPrompter(strings.NewReader(input), out), out
}

func TestAskBetRetriesUntilNumber(t *testing.T) {
	p, out := newTestPrompter("lots\n 25 \n")

	bet, err := p.AskBet(context.Background(), blackjack.NewPlayer("p1", "Ana"), 100)

	require.NoError(t, err)
	assert.Equal(t, int64(25), bet)
	assert.Contains(t, out.String(), "Ana, you have 100. How much do you want to bet?")
	assert.Contains(t, out.String(), `"lots" is not a whole number.`)
}

func TestAskBetPassesThroughNonPositive(t *testing.T) {
	p, _ := newTestPrompter("-5\n")

	bet, err := p.AskBet(context.Background(), blackjack.NewPlayer("p1", "Ana"), 100)

	require.NoError(t, err)
	assert.Equal(t, int64(-5), bet)
}

func TestAskBetClosedInput(t *testing.T) {
	p, _ := newTestPrompter("")

	_, err := p.AskBet(context.Background(), blackjack.NewPlayer("p1", "Ana"), 100)

	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestAskActionShowsTableAndParses(t *testing.T) {
	p, out := newTestPrompter("fold\nDOUBLE")

	player := blackjack.NewPlayer("p1", "Ana")
	hand := blackjack.NewHand(10, entities.NewCard(entities.Five, entities.Clubs), entities.NewCard(entities.Six, entities.Hearts))
	player.Hands = []*blackjack.Hand{hand}
	dealer := blackjack.NewDealer()
	dealer.Hand.AddCards(entities.NewCard(entities.King, entities.Spades), entities.NewCard(entities.Seven, entities.Diamonds))

	action, err := p.AskAction(context.Background(),
		blackjack.TableView{Players: []*blackjack.Player{player}, Dealer: dealer},
		player, hand, []blackjack.Action{blackjack.ActionHit, blackjack.ActionStand, blackjack.ActionDouble})

	require.NoError(t, err)
	assert.Equal(t, blackjack.ActionDouble, action)

	text := out.String()
	assert.Contains(t, text, "cards: 5♣-6♡ | values: 11")
	assert.Contains(t, text, "cards: *-7♢ | values: *")
	assert.NotContains(t, text, "K♠", "hole card stays hidden")
	assert.Contains(t, text, "Your options are: hit, stand, double")
	assert.Contains(t, text, `"fold" is not an option.`)
}

func TestAnnounceWithoutDealer(t *testing.T) {
	p, out := newTestPrompter("")

	p.Announce(context.Background(), blackjack.TableView{}, "The shoe ran out. Bets are returned.")

	assert.Contains(t, out.String(), "The shoe ran out. Bets are returned.")
	assert.NotContains(t, out.String(), "Dealer")
}

func TestAskContinue(t *testing.T) {
	testCases := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"n\n", false},
		{"maybe\nY\n", true},
		{"", false},
	}

	for _, tc := range testCases {
		p, _ := newTestPrompter(tc.input)
		more, err := p.AskContinue(context.Background())
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, more, tc.input)
	}
}

func TestSetupQuestions(t *testing.T) {
	p, _ := newTestPrompter("0\n2\n\nAna\nlots\n\n")
	ctx := context.Background()

	n, err := p.AskPlayerCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	name, err := p.AskName(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	buyIn, err := p.AskBuyIn(ctx, name, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), buyIn, "empty answer takes the default")
}

func TestCanceledContext(t *testing.T) {
	p, _ := newTestPrompter("10\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.AskBet(ctx, blackjack.NewPlayer("p1", "Ana"), 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnnounceEmptyViewSkipsTable(t *testing.T) {
	p, out := newTestPrompter("")

	p.Announce(context.Background(), blackjack.TableView{}, "Welcome back Ann, you have $40.")

	assert.NotContains(t, out.String(), "Table")
	assert.Contains(t, out.String(), "Welcome back Ann")
}
