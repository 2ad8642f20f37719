package blackjack

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fadedpez/blackjack/internal/types"
)

// Action is a decision a player can make on a hand
type Action string

const (
	ActionHit    Action = "hit"
	ActionStand  Action = "stand"
	ActionDouble Action = "double"
	ActionSplit  Action = "split"
)

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// ParseAction reads an action name, ignoring case and surrounding space
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case ActionHit, ActionStand, ActionDouble, ActionSplit:
		return a, nil
	}
	return "", types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("unknown action %q", s))
}

// LegalActions lists what may be done with hand given the owner's bank, in
// menu order. A finished hand has no actions. Doubling and splitting need the
// first two cards and enough bank to match the bet; splitting also needs a pair.
func LegalActions(hand *Hand, bank int64) []Action {
	if hand.Done() {
		return nil
	}

	actions := []Action{ActionHit, ActionStand}
	if hand.Len() == InitialCards && bank >= hand.Bet() {
		actions = append(actions, ActionDouble)
		if hand.IsPair() {
			actions = append(actions, ActionSplit)
		}
	}
	return actions
}

// IsLegal reports whether action is among legal
func IsLegal(action Action, legal []Action) bool {
	return slices.Contains(legal, action)
}
