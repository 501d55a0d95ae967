// Package display renders table events and prompts as styled text.
package display

import "github.com/lox/blackjack/internal/game"

// Display is everything the session shows to the player. It extends the
// round's Notifier with free-form status lines.
type Display interface {
	game.Notifier

	Title(text string)
	Info(text string)
	Success(text string)
	Warn(text string)
	Prompt(text string)
}
