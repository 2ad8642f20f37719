package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadedpez/blackjack/pkg/entities"
)

func c(rank entities.Rank) entities.Card {
	return entities.NewCard(rank, entities.Hearts)
}

func cards(ranks ...entities.Rank) []entities.Card {
	out := make([]entities.Card, len(ranks))
	for i, r := range ranks {
		out[i] = c(r)
	}
	return out
}

func TestComputeValues(t *testing.T) {
	testCases := []struct {
		name     string
		cards    []entities.Card
		expected []int
	}{
		{"empty", nil, []int{0}},
		{"no aces", cards(entities.Ten, entities.Seven), []int{17}},
		{"faces count ten", cards(entities.Jack, entities.Queen, entities.King), []int{30}},
		{"one ace", cards(entities.Ace, entities.Six), []int{7, 17}},
		{"blackjack", cards(entities.Ace, entities.King), []int{11, 21}},
		{"two aces", cards(entities.Ace, entities.Ace), []int{2, 12, 22}},
		{"three aces and nine", cards(entities.Ace, entities.Ace, entities.Ace, entities.Nine), []int{12, 22, 32, 42}},
		{"four aces", cards(entities.Ace, entities.Ace, entities.Ace, entities.Ace), []int{4, 14, 24, 34, 44}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeValues(tc.cards))
		})
	}
}

func TestComputeValuesShape(t *testing.T) {
	// k aces give k+1 ascending values spaced ten apart, starting at the hard total
	hands := [][]entities.Card{
		cards(entities.Two, entities.Three),
		cards(entities.Ace, entities.Five, entities.Ace),
		cards(entities.Ace, entities.Ace, entities.Ace, entities.Ace, entities.King),
	}

	for _, hand := range hands {
		values := ComputeValues(hand)
		aces, hard := 0, 0
		for _, card := range hand {
			hard += CardValue(card)
			if IsAce(card) {
				aces++
			}
		}

		assert.Len(t, values, aces+1)
		assert.Equal(t, hard, values[0])
		for i := 1; i < len(values); i++ {
			assert.Equal(t, values[i-1]+AceHighBonus, values[i])
		}
	}
}

func TestBestTotal(t *testing.T) {
	assert.Equal(t, 21, BestTotal([]int{11, 21}))
	assert.Equal(t, 12, BestTotal([]int{2, 12, 22}))
	assert.Equal(t, 17, BestTotal([]int{17}))
	assert.Equal(t, 0, BestTotal([]int{22}))
	assert.Equal(t, 0, BestTotal([]int{22, 32}))
	assert.Equal(t, 0, BestTotal([]int{0}), "empty hand")
}

func TestIsBust(t *testing.T) {
	assert.False(t, IsBust([]int{21}))
	assert.False(t, IsBust([]int{12, 22}))
	assert.True(t, IsBust([]int{22}))
	assert.True(t, IsBust([]int{22, 32}))
	assert.False(t, IsBust(nil))
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, IsBlackjack(2, ComputeValues(cards(entities.Ace, entities.Ten))))
	assert.True(t, IsBlackjack(2, ComputeValues(cards(entities.Queen, entities.Ace))))
	assert.False(t, IsBlackjack(3, ComputeValues(cards(entities.Seven, entities.Seven, entities.Seven))), "three card 21")
	assert.False(t, IsBlackjack(2, ComputeValues(cards(entities.Ace, entities.Nine))))
}

func TestDealerShouldDraw(t *testing.T) {
	assert.True(t, DealerShouldDraw(16))
	assert.True(t, DealerShouldDraw(2))
	assert.False(t, DealerShouldDraw(17), "stands on soft or hard 17")
	assert.False(t, DealerShouldDraw(21))
	assert.False(t, DealerShouldDraw(0), "bust dealer stops")
}

func TestSettle(t *testing.T) {
	testCases := []struct {
		name           string
		player         []entities.Card
		dealer         []entities.Card
		bet            int64
		expectedResult entities.Outcome
		expectedPayout int64
	}{
		{"player bust", cards(entities.Ten, entities.Eight, entities.Five), cards(entities.Ten, entities.Six, entities.Nine), 10, entities.OutcomeBust, 0},
		{"bust beats nothing even when dealer busts", cards(entities.Ten, entities.Nine, entities.Three), cards(entities.Ten, entities.Six, entities.King), 10, entities.OutcomeBust, 0},
		{"both blackjack push", cards(entities.Ace, entities.King), cards(entities.Ace, entities.Queen), 10, entities.OutcomePush, 10},
		{"player blackjack pays 3:2", cards(entities.Ace, entities.King), cards(entities.Ten, entities.Nine), 10, entities.OutcomeBlackjack, 25},
		{"player blackjack odd bet rounds down", cards(entities.Ace, entities.Jack), cards(entities.Ten, entities.Nine), 5, entities.OutcomeBlackjack, 12},
		{"player blackjack against dealer 21", cards(entities.Ace, entities.King), cards(entities.Seven, entities.Seven, entities.Seven), 10, entities.OutcomeBlackjack, 25},
		{"dealer blackjack beats 21", cards(entities.Seven, entities.Seven, entities.Seven), cards(entities.Ace, entities.King), 10, entities.OutcomeLose, 0},
		{"dealer bust", cards(entities.Ten, entities.Two), cards(entities.Ten, entities.Six, entities.Six), 10, entities.OutcomeWin, 20},
		{"tie", cards(entities.Ten, entities.Eight), cards(entities.Nine, entities.Nine), 10, entities.OutcomePush, 10},
		{"higher total", cards(entities.Ten, entities.Nine), cards(entities.Ten, entities.Eight), 10, entities.OutcomeWin, 20},
		{"lower total", cards(entities.Ten, entities.Seven), cards(entities.Ten, entities.Eight), 10, entities.OutcomeLose, 0},
		{"soft total counts high", cards(entities.Ace, entities.Seven), cards(entities.Ten, entities.Seven), 10, entities.OutcomeWin, 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, payout := Settle(NewHand(tc.bet, tc.player...), NewHand(0, tc.dealer...))
			assert.Equal(t, tc.expectedResult, outcome)
			assert.Equal(t, tc.expectedPayout, payout)
		})
	}
}
