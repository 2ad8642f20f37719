package blackjack

import (
	"github.com/fadedpez/blackjack/pkg/entities"
)

const (
	BlackjackTotal   = 21 // Highest non-busting total
	DealerStandTotal = 17 // Dealer stops drawing at this total or above
	InitialCards     = 2  // Cards dealt to every hand before play
	AceHighBonus     = 10 // Extra points when an Ace counts as 11 instead of 1
)

var rankValues = map[entities.Rank]int{
	entities.Two:   2,
	entities.Three: 3,
	entities.Four:  4,
	entities.Five:  5,
	entities.Six:   6,
	entities.Seven: 7,
	entities.Eight: 8,
	entities.Nine:  9,
	entities.Ten:   10,
	entities.Jack:  10,
	entities.Queen: 10,
	entities.King:  10,
	entities.Ace:   1,
}

// CardValue returns the hard value of a card; Aces count 1.
func CardValue(card entities.Card) int {
	return rankValues[card.Rank]
}

// IsAce reports whether the card is an Ace
func IsAce(card entities.Card) bool {
	return card.Rank == entities.Ace
}

// ComputeValues returns every distinct total the cards can make, ascending.
// Each Ace counts 1 or 11 independently; only how many Aces count 11 matters,
// so k Aces give k+1 totals spaced 10 apart. An empty hand is worth {0}.
func ComputeValues(cards []entities.Card) []int {
	hard, aces := 0, 0
	for _, card := range cards {
		if IsAce(card) {
			aces++
		}
		hard += CardValue(card)
	}

	values := make([]int, 0, aces+1)
	for high := 0; high <= aces; high++ {
		values = append(values, hard+high*AceHighBonus)
	}
	return values
}

// BestTotal returns the highest value not over 21, or 0 when every value busts.
func BestTotal(values []int) int {
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] <= BlackjackTotal {
			return values[i]
		}
	}
	return 0
}

// IsBust reports whether every value exceeds 21. values must be sorted ascending.
func IsBust(values []int) bool {
	return len(values) > 0 && values[0] > BlackjackTotal
}

// IsBlackjack reports a natural: exactly two cards with 21 among the values.
func IsBlackjack(cardCount int, values []int) bool {
	if cardCount != InitialCards {
		return false
	}
	for _, v := range values {
		if v == BlackjackTotal {
			return true
		}
	}
	return false
}

// DealerShouldDraw applies stand-on-17 to the dealer's best total. A bust
// dealer (best total 0) never draws.
func DealerShouldDraw(bestTotal int) bool {
	return bestTotal > 0 && bestTotal < DealerStandTotal
}

// Settle decides one player hand against the dealer and returns the outcome and
// the amount to credit back. Bets are debited when placed, so a push returns the
// bet and a loss returns nothing. Exactly one rule applies, in this order:
// bust, blackjack (a push against a dealer blackjack), dealer blackjack,
// dealer bust, tie, higher total, lower total.
func Settle(player, dealer *Hand) (entities.Outcome, int64) {
	bet := player.Bet()

	switch {
	case player.IsBust():
		return entities.OutcomeBust, 0
	case player.IsBlackjack() && dealer.IsBlackjack():
		return entities.OutcomePush, bet
	case player.IsBlackjack():
		// 3:2 plus the original bet, whole dollars rounded down
		return entities.OutcomeBlackjack, bet * 5 / 2
	case dealer.IsBlackjack():
		return entities.OutcomeLose, 0
	case dealer.IsBust():
		return entities.OutcomeWin, bet * 2
	case player.BestTotal() == dealer.BestTotal():
		return entities.OutcomePush, bet
	case player.BestTotal() > dealer.BestTotal():
		return entities.OutcomeWin, bet * 2
	default:
		return entities.OutcomeLose, 0
	}
}
