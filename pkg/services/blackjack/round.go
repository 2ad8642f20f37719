package blackjack

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
)

var (
	ErrInvalidState = errors.New("invalid action for current round state")
	ErrNoPlayers    = errors.New("no players in round")
)

// State is the phase a round is in
type State string

const (
	StateBetting  State = "BETTING"
	StateDealing  State = "DEALING"
	StatePlaying  State = "PLAYING"
	StateDealer   State = "DEALER"
	StateComplete State = "COMPLETE"
	StateAborted  State = "ABORTED"
)

// RoundDeps are the collaborators a round works with. Logger and Clock are
// optional.
type RoundDeps struct {
	Shoe     Shoe
	Bank     Bank
	Prompter Prompter
	Logger   *logging.Logger
	Clock    quartz.Clock
}

// Round runs one deal of blackjack: bet, deal, dealer peek, player turns,
// dealer turn and payout. A round is used once; the table builds a new one
// for the next deal.
type Round struct {
	ID      string
	Players []*Player
	Dealer  *Dealer
	State   State

	shoe     Shoe
	bank     Bank
	prompter Prompter
	logger   *logging.Logger
	clock    quartz.Clock

	startedAt time.Time
	paid      bool
	result    *entities.RoundResult
}

// NewRound seats players at a fresh round. Any hands they still hold are discarded.
func NewRound(players []*Player, deps RoundDeps) *Round {
	if deps.Logger == nil {
		deps.Logger = logging.Default
	}
	if deps.Clock == nil {
		deps.Clock = quartz.NewReal()
	}
	for _, p := range players {
		p.ResetHands()
	}

	return &Round{
		ID:       uuid.New().String(),
		Players:  players,
		Dealer:   NewDealer(),
		State:    StateBetting,
		shoe:     deps.Shoe,
		bank:     deps.Bank,
		prompter: deps.Prompter,
		logger:   deps.Logger.Named("round"),
		clock:    deps.Clock,
	}
}

// View returns what the prompter may show
func (r *Round) View() TableView {
	return TableView{Players: r.Players, Dealer: r.Dealer}
}

// Result returns the resolved round, or nil before payout
func (r *Round) Result() *entities.RoundResult {
	return r.result
}

// Play runs the whole round. On a fatal error (an exhausted shoe, a failing
// bank or prompter) every bet still held is refunded and the round is aborted.
func (r *Round) Play(ctx context.Context) (*entities.RoundResult, error) {
	if r.State != StateBetting {
		return nil, ErrInvalidState
	}
	if len(r.Players) == 0 {
		return nil, ErrNoPlayers
	}

	r.startedAt = r.clock.Now()
	r.logger.Info("Round starting", "round", r.ID, "players", len(r.Players))

	if err := r.PlaceBets(ctx); err != nil {
		return nil, r.abort(ctx, err)
	}
	if err := r.Deal(ctx); err != nil {
		return nil, r.abort(ctx, err)
	}

	if r.DealerHasBlackjack() {
		r.Dealer.Reveal()
		r.State = StateComplete
		r.prompter.Announce(ctx, r.View(), "Dealer has blackjack.")
	} else {
		if err := r.PlayHands(ctx); err != nil {
			return nil, r.abort(ctx, err)
		}
		if err := r.PlayDealer(ctx); err != nil {
			return nil, r.abort(ctx, err)
		}
	}

	result, err := r.Resolve(ctx)
	if err != nil {
		r.State = StateAborted
		return nil, err
	}
	return result, nil
}

// PlaceBets asks every player for a wager and holds it by debiting the bank.
// Rejected bets are asked again.
func (r *Round) PlaceBets(ctx context.Context) error {
	if r.State != StateBetting {
		return ErrInvalidState
	}

	for _, p := range r.Players {
		bet, err := r.collectBet(ctx, p)
		if err != nil {
			return err
		}
		p.Hands = []*Hand{NewHand(bet)}
		r.logger.Debug("Bet placed", "round", r.ID, "player", p.Name, "bet", bet)
	}

	r.State = StateDealing
	return nil
}

func (r *Round) collectBet(ctx context.Context, p *Player) (int64, error) {
	for {
		bank, err := r.bank.GetBank(ctx, p.ID)
		if err != nil {
			return 0, fmt.Errorf("reading bank for %s: %w", p.Name, err)
		}

		bet, err := r.prompter.AskBet(ctx, p, bank)
		if err != nil {
			return 0, fmt.Errorf("asking %s for a bet: %w", p.Name, err)
		}

		err = r.holdBet(ctx, p, bet)
		if err == nil {
			return bet, nil
		}
		if !types.IsRecoverable(err) {
			return 0, err
		}
		r.reject(ctx, p, err)
	}
}

func (r *Round) holdBet(ctx context.Context, p *Player, bet int64) error {
	if bet <= 0 {
		return types.NewGameError(types.ErrInvalidBet, fmt.Sprintf("bet must be positive, got %d", bet))
	}
	return r.bank.Debit(ctx, p.ID, bet, entities.TransactionTypeBet, r.ID)
}

// Deal gives every player hand and then the dealer one card, twice around.
func (r *Round) Deal(ctx context.Context) error {
	if r.State != StateDealing {
		return ErrInvalidState
	}

	hands := make([]*Hand, 0, len(r.Players)+1)
	for _, p := range r.Players {
		hands = append(hands, p.Hands[0])
	}
	hands = append(hands, r.Dealer.Hand)

	for pass := 0; pass < InitialCards; pass++ {
		for _, h := range hands {
			card, err := r.draw()
			if err != nil {
				return err
			}
			h.AddCards(card)
		}
	}

	r.State = StatePlaying
	return nil
}

// DealerHasBlackjack is the dealer peek after the deal
func (r *Round) DealerHasBlackjack() bool {
	return r.Dealer.Hand.IsBlackjack()
}

// PlayHands runs every player's turn. Hands created by a split are appended
// to the player's hands and played in the same pass.
func (r *Round) PlayHands(ctx context.Context) error {
	if r.State != StatePlaying {
		return ErrInvalidState
	}

	for _, p := range r.Players {
		// len(p.Hands) grows on split
		for i := 0; i < len(p.Hands); i++ {
			if err := r.playHand(ctx, p, p.Hands[i]); err != nil {
				return err
			}
		}
	}

	r.State = StateDealer
	return nil
}

func (r *Round) playHand(ctx context.Context, p *Player, hand *Hand) error {
	for !hand.Done() {
		bank, err := r.bank.GetBank(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("reading bank for %s: %w", p.Name, err)
		}

		legal := LegalActions(hand, bank)
		action, err := r.prompter.AskAction(ctx, r.View(), p, hand, legal)
		if err != nil {
			return fmt.Errorf("asking %s for an action: %w", p.Name, err)
		}

		err = r.Apply(ctx, p, hand, action, legal)
		if err == nil {
			continue
		}
		if !types.IsRecoverable(err) {
			return err
		}
		r.reject(ctx, p, err)
	}
	return nil
}

// Apply performs action on one of p's hands. legal is the action set the
// player was offered; anything outside it is rejected with INVALID_ACTION.
func (r *Round) Apply(ctx context.Context, p *Player, hand *Hand, action Action, legal []Action) error {
	if !IsLegal(action, legal) {
		return types.NewGameError(types.ErrInvalidAction,
			fmt.Sprintf("%s is not allowed now, choose from %v", action, legal))
	}

	r.logger.Debug("Action", "round", r.ID, "player", p.Name, "action", action, "hand", hand.String())

	switch action {
	case ActionStand:
		hand.Finish()
		return nil
	case ActionHit:
		return r.hit(hand)
	case ActionDouble:
		return r.double(ctx, p, hand)
	case ActionSplit:
		return r.split(ctx, p, hand)
	}
	return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("unknown action %q", action))
}

func (r *Round) hit(hand *Hand) error {
	card, err := r.draw()
	if err != nil {
		return err
	}
	hand.AddCards(card)
	return nil
}

// double matches the bet, takes exactly one card and ends the hand
func (r *Round) double(ctx context.Context, p *Player, hand *Hand) error {
	bet := hand.Bet()
	if err := r.bank.Debit(ctx, p.ID, bet, entities.TransactionTypeDouble, r.ID); err != nil {
		return err
	}
	hand.SetBet(bet * 2)
	hand.Doubled = true
	hand.Finish()

	return r.hit(hand)
}

// split moves the second card into a new hand carrying the same bet. The new
// hand is dealt its second card first, then the original hand.
func (r *Round) split(ctx context.Context, p *Player, hand *Hand) error {
	bet := hand.Bet()
	if err := r.bank.Debit(ctx, p.ID, bet, entities.TransactionTypeSplit, r.ID); err != nil {
		return err
	}

	card, err := hand.PopCard()
	if err != nil {
		return err
	}
	splitHand := NewHand(bet, card)
	splitHand.Split = true
	hand.Split = true
	p.Hands = append(p.Hands, splitHand)

	if err := r.hit(splitHand); err != nil {
		return err
	}
	return r.hit(hand)
}

// PlayDealer reveals the hole card and draws while the best total is under 17.
func (r *Round) PlayDealer(ctx context.Context) error {
	if r.State != StateDealer {
		return ErrInvalidState
	}

	r.Dealer.Reveal()
	for DealerShouldDraw(r.Dealer.Hand.BestTotal()) {
		if err := r.hit(r.Dealer.Hand); err != nil {
			return err
		}
	}

	r.logger.Debug("Dealer done", "round", r.ID, "hand", r.Dealer.Hand.String())
	r.prompter.Announce(ctx, r.View(), "Dealer's turn is over.")
	r.State = StateComplete
	return nil
}

// Resolve settles every player hand against the dealer, credits payouts and
// returns the round record. Payouts are made once. A payout the bank refuses
// is logged and the remaining hands are still settled; the refused payouts
// are returned as one error alongside the record.
func (r *Round) Resolve(ctx context.Context) (*entities.RoundResult, error) {
	if r.State != StateComplete || r.paid {
		return nil, ErrInvalidState
	}

	dealer := r.Dealer.Hand
	result := &entities.RoundResult{
		ID:              r.ID,
		StartedAt:       r.startedAt,
		DealerCards:     dealer.Cards(),
		DealerTotal:     dealer.BestTotal(),
		DealerBlackjack: dealer.IsBlackjack(),
		DealerBust:      dealer.IsBust(),
		Hands:           make([]*entities.HandResult, 0),
	}

	var unpaid []error
	for _, p := range r.Players {
		for i, hand := range p.Hands {
			outcome, payout := Settle(hand, dealer)
			if payout > 0 {
				if err := r.bank.Credit(ctx, p.ID, payout, entities.TransactionTypePayout, r.ID); err != nil {
					r.logger.Error("Payout not credited", "round", r.ID, "player", p.Name, "hand", i,
						"outcome", outcome, "amount", payout, "error", err)
					unpaid = append(unpaid, fmt.Errorf("paying %s hand %d (%d): %w", p.Name, i+1, payout, err))
					continue
				}
			}

			result.Hands = append(result.Hands, &entities.HandResult{
				PlayerID:  p.ID,
				HandIndex: i,
				Cards:     hand.Cards(),
				Total:     hand.BestTotal(),
				Bet:       hand.Bet(),
				Payout:    payout,
				Outcome:   outcome,
				Doubled:   hand.Doubled,
				Split:     hand.Split,
			})

			r.logger.Info("Hand settled", "round", r.ID, "player", p.Name, "hand", i,
				"outcome", outcome, "bet", hand.Bet(), "payout", payout)
			r.prompter.Announce(ctx, r.View(), describeOutcome(p, i, len(p.Hands), outcome, hand.Bet(), payout))
		}
	}

	result.CompletedAt = r.clock.Now()
	r.paid = true
	r.result = result
	if len(unpaid) > 0 {
		return result, errors.Join(unpaid...)
	}
	return result, nil
}

// abort refunds the bets still held and marks the round aborted
func (r *Round) abort(ctx context.Context, cause error) error {
	r.State = StateAborted
	r.logger.LogError(cause)

	// refunds must land even when the round was interrupted
	ctx = context.WithoutCancel(ctx)

	for _, p := range r.Players {
		for _, hand := range p.Hands {
			if hand.Bet() <= 0 {
				continue
			}
			if err := r.bank.Credit(ctx, p.ID, hand.Bet(), entities.TransactionTypeRefund, r.ID); err != nil {
				r.logger.Error("Refund failed", "round", r.ID, "player", p.Name, "amount", hand.Bet(), "error", err)
			}
		}
	}
	return fmt.Errorf("round %s aborted: %w", r.ID, cause)
}

func (r *Round) reject(ctx context.Context, p *Player, err error) {
	r.logger.Warn("Rejected input", "round", r.ID, "player", p.Name, "error", err)
	message := err.Error()
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		message = gameErr.Message
	}
	r.prompter.Announce(ctx, r.View(), fmt.Sprintf("%s: %s", p.Name, message))
}

func (r *Round) draw() (entities.Card, error) {
	cards, err := r.shoe.Draw(1)
	if err != nil {
		if errors.Is(err, entities.ErrDeckExhausted) {
			return entities.Card{}, types.WrapError(types.ErrDeckExhausted, "the shoe ran out of cards", err)
		}
		return entities.Card{}, fmt.Errorf("drawing a card: %w", err)
	}
	return cards[0], nil
}

func describeOutcome(p *Player, index, hands int, outcome entities.Outcome, bet, payout int64) string {
	who := p.Name
	if hands > 1 {
		who = fmt.Sprintf("%s (hand %d)", p.Name, index+1)
	}

	switch outcome {
	case entities.OutcomeBlackjack:
		if bet%2 != 0 {
			return fmt.Sprintf("%s has blackjack and wins %d (3:2 on an odd bet is rounded down).", who, payout)
		}
		return fmt.Sprintf("%s has blackjack and wins %d.", who, payout)
	case entities.OutcomeWin:
		return fmt.Sprintf("%s beats the house and wins %d.", who, payout)
	case entities.OutcomePush:
		return fmt.Sprintf("%s ties the house; %d returned.", who, payout)
	case entities.OutcomeBust:
		return fmt.Sprintf("%s is bust.", who)
	default:
		return fmt.Sprintf("%s loses to the house.", who)
	}
}
