// Package session runs a sequence of blackjack rounds for one player as a
// phase machine fed one line of input at a time. Terminal drivers (line mode
// and the TUI) only read input and call Handle.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

// QuitCommand leaves the game from any prompt
const QuitCommand = ":q"

// Phase is the input the session is waiting for
type Phase int

const (
	PhaseName Phase = iota
	PhaseBet
	PhaseChoice
	PhaseAgain
	PhaseOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseName:
		return "name"
	case PhaseBet:
		return "bet"
	case PhaseChoice:
		return "choice"
	case PhaseAgain:
		return "again"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Options configures a session
type Options struct {
	PlayerName     string // empty means ask for it
	StartingTokens int
	DealerName     string
	Seed           int64 // 0 picks a seed from the clock
	Display        display.Display
	Logger         *log.Logger
	Clock          quartz.Clock

	// NewDeck overrides how each round's deck is built. The default is a
	// freshly shuffled 52-card deck drawn from the session's generator.
	NewDeck func(rng deck.Source) *deck.Deck
}

// Session carries the player's balance from round to round
type Session struct {
	phase      Phase
	name       string
	dealerName string
	tokens     int
	rounds     int
	outcomes   map[game.Outcome]int

	seed    int64
	rng     *rand.Rand
	newDeck func(rng deck.Source) *deck.Deck
	round   *game.Round

	display display.Display
	logger  *log.Logger
	clock   quartz.Clock
}

// New creates a session and, when the name is already known, opens the
// first betting round
func New(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.DealerName == "" {
		opts.DealerName = "Dealer"
	}
	if opts.NewDeck == nil {
		opts.NewDeck = deck.NewShuffled
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	seed := randutil.Resolve(opts.Seed, opts.Clock)
	s := &Session{
		phase:      PhaseName,
		name:       strings.TrimSpace(opts.PlayerName),
		dealerName: opts.DealerName,
		tokens:     opts.StartingTokens,
		outcomes:   make(map[game.Outcome]int),
		seed:       seed,
		rng:        randutil.New(seed),
		newDeck:    opts.NewDeck,
		display:    opts.Display,
		logger:     opts.Logger.WithPrefix("session"),
		clock:      opts.Clock,
	}
	s.logger.Info("Session created", "tokens", s.tokens, "seed", seed)

	if s.name != "" {
		s.greet()
		s.startRound()
	}
	return s
}

// Phase returns what the session is waiting for
func (s *Session) Phase() Phase { return s.phase }

// Done reports whether the game is over
func (s *Session) Done() bool { return s.phase == PhaseOver }

// Tokens returns the player's current balance
func (s *Session) Tokens() int { return s.tokens }

// Name returns the player's name
func (s *Session) Name() string { return s.name }

// Seed returns the seed the session's decks are drawn from
func (s *Session) Seed() int64 { return s.seed }

// Rounds returns the number of settled rounds
func (s *Session) Rounds() int { return s.rounds }

// Outcomes returns how many rounds ended in each outcome
func (s *Session) Outcomes() map[game.Outcome]int {
	out := make(map[game.Outcome]int, len(s.outcomes))
	for k, v := range s.outcomes {
		out[k] = v
	}
	return out
}

// Round returns the round in progress, if any
func (s *Session) Round() *game.Round { return s.round }

// Prompt returns the question for the current phase
func (s *Session) Prompt() string {
	switch s.phase {
	case PhaseName:
		return "Welcome to the game of Blackjack! Please enter your name:"
	case PhaseBet:
		return fmt.Sprintf("You currently have %d tokens. How many do you want to bet? Type '%s' to quit the game.", s.tokens, QuitCommand)
	case PhaseChoice:
		return fmt.Sprintf("What do you want to do? (h)it or (s)tand? Type '%s' to quit the game.", QuitCommand)
	case PhaseAgain:
		return "Do you want to play another round? (y/N)"
	default:
		return ""
	}
}

// Handle feeds one line of input to the current phase. Bad input is
// reported through the display and leaves the phase unchanged so the
// caller simply prompts again. A returned error ends the session.
func (s *Session) Handle(input string) error {
	input = strings.TrimSpace(input)
	if s.phase == PhaseOver {
		return nil
	}
	if input == QuitCommand {
		s.leave()
		return nil
	}

	var err error
	switch s.phase {
	case PhaseName:
		s.handleName(input)
	case PhaseBet:
		err = s.handleBet(input)
	case PhaseChoice:
		err = s.handleChoice(input)
	case PhaseAgain:
		s.handleAgain(input)
	}

	if err != nil {
		s.logger.Error("Round aborted", "error", err)
		s.display.Warn(fmt.Sprintf("The round could not continue: %v", err))
		s.phase = PhaseOver
		return err
	}
	return nil
}

// Quit ends the session as if the player typed the quit command
func (s *Session) Quit() {
	if s.phase != PhaseOver {
		s.leave()
	}
}

func (s *Session) greet() {
	s.display.Info(fmt.Sprintf("Hello, %s! Let's start the game!", s.name))
}

func (s *Session) handleName(input string) {
	if input == "" {
		s.display.Warn("Please enter a name.")
		return
	}
	s.name = input
	s.greet()
	s.startRound()
}

func (s *Session) startRound() {
	if s.tokens <= 0 {
		s.display.Warn("You have no more tokens! Game over!")
		s.phase = PhaseOver
		return
	}

	start := s.clock.Now()
	d := s.newDeck(s.rng)
	player := game.NewPlayer(s.name, s.tokens)
	dealer := game.NewDealer(s.dealerName)
	s.round = game.NewRound(d, player, dealer, s.display, s.logger)
	s.phase = PhaseBet

	s.logger.Debug("Game setup", "round", s.rounds+1, "elapsed", s.clock.Since(start))
}

func (s *Session) handleBet(input string) error {
	bet, err := strconv.Atoi(input)
	if err != nil {
		s.display.Warn("Please type a valid number!")
		return nil
	}

	if err := s.round.PlaceBet(bet); err != nil {
		switch {
		case errors.Is(err, game.ErrInsufficientTokens):
			s.display.Warn("You cannot bet more tokens than you have!")
		case errors.Is(err, game.ErrInvalidBet):
			s.display.Warn("Your bet must be at least 1 token.")
		default:
			return err
		}
		return nil
	}

	s.tokens, _ = s.round.Player().Tokens()
	s.display.Info(fmt.Sprintf("You bet %d tokens, resulting in a new total of %d tokens.", bet, s.tokens))

	if err := s.round.Deal(); err != nil {
		return err
	}
	s.phase = PhaseChoice
	return nil
}

func (s *Session) handleChoice(input string) error {
	switch strings.ToLower(input) {
	case "h", "hit":
		total, err := s.round.Hit()
		if err != nil {
			return err
		}
		if game.IsBust(total) {
			return s.finish()
		}
	case "s", "stand":
		if err := s.round.Stand(); err != nil {
			return err
		}
		return s.finish()
	default:
		s.display.Warn(fmt.Sprintf("Invalid choice! Please type 'h' to hit or 's' to stand or %s to quit the game.", QuitCommand))
	}
	return nil
}

func (s *Session) finish() error {
	result, err := s.round.Settle()
	if err != nil {
		return err
	}
	s.tokens, _ = s.round.Player().Tokens()
	s.rounds++
	s.outcomes[result.Outcome]++
	s.round = nil

	if s.tokens <= 0 {
		s.display.Warn("You have no more tokens! Game over!")
		s.phase = PhaseOver
		return nil
	}

	s.display.Info(fmt.Sprintf("You now have %d tokens.", s.tokens))
	s.phase = PhaseAgain
	return nil
}

func (s *Session) handleAgain(input string) {
	if strings.EqualFold(input, "y") || strings.EqualFold(input, "yes") {
		s.startRound()
		return
	}
	s.leave()
}

func (s *Session) leave() {
	s.display.Success(fmt.Sprintf("Thanks for playing! You leave with %d tokens.", s.tokens))
	s.logger.Info("Session finished", "rounds", s.rounds, "tokens", s.tokens)
	s.round = nil
	s.phase = PhaseOver
}
