package game

// Outcome classifies how a round ended for the player
type Outcome int

const (
	PlayerBust Outcome = iota
	DealerBust
	Push
	PlayerWin
	DealerWin
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case PlayerBust:
		return "player-bust"
	case DealerBust:
		return "dealer-bust"
	case Push:
		return "push"
	case PlayerWin:
		return "player-win"
	case DealerWin:
		return "dealer-win"
	default:
		return "unknown"
	}
}

// Outcomes lists every outcome in declaration order
var Outcomes = [...]Outcome{PlayerBust, DealerBust, Push, PlayerWin, DealerWin}

// Settlement is the result of comparing two final hands
type Settlement struct {
	Outcome     Outcome
	PlayerScore int
	DealerScore int
	Bet         int
	Delta       int // tokens returned to the player; the bet was taken up front
}

// Net returns the player's gain or loss over the whole round
func (s Settlement) Net() int {
	return s.Delta - s.Bet
}

// Settle decides a round. Wins pay 2x the bet, a push refunds it, and
// losses pay nothing because the bet was deducted when it was placed.
func Settle(playerScore, dealerScore, bet int) Settlement {
	s := Settlement{PlayerScore: playerScore, DealerScore: dealerScore, Bet: bet}

	switch {
	case IsBust(playerScore):
		s.Outcome = PlayerBust
	case IsBust(dealerScore):
		s.Outcome, s.Delta = DealerBust, 2*bet
	case playerScore == dealerScore:
		s.Outcome, s.Delta = Push, bet
	case playerScore > dealerScore:
		s.Outcome, s.Delta = PlayerWin, 2*bet
	default:
		s.Outcome = DealerWin
	}

	return s
}
