package bot

import (
	"errors"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/game"
	"github.com/robalobadob/hangman-bot/internal/words"
)

// guess treats idle free text as a move in the user's room.
func guess(c *Context, text string) {
	room, ok := c.room()
	if !ok {
		return
	}
	res, err := room.SubmitGuess(c.User, text)
	switch {
	case errors.Is(err, game.ErrNotStarted):
		// between rounds only a lone letter from a guesser reads as a move
		if !room.IsHost(c.User) && utf8.RuneCountInString(words.Fold(text)) == 1 {
			c.fail(err, "")
		}
		return
	case errors.Is(err, game.ErrNotYourTurn), errors.Is(err, game.ErrHostCannotGuess):
		// answer with the current status so the user sees whose move it is
		_ = c.Bot.out.Send(c.Ctx, c.User, c.Bot.status(room, describe(err)))
		return
	case err != nil:
		c.fail(err, "")
		return
	}

	switch res.End {
	case game.RoundWon:
		c.Bot.broadcastStatus(c.Ctx, room, roundWonText(room.Secret()))
	case game.RoundLost:
		c.Bot.broadcastStatus(c.Ctx, room, roundLostText(room.Secret()))
	default:
		c.Bot.broadcastStatus(c.Ctx, room, "")
		return
	}
	log.Info().
		Str("room", room.Code()).
		Str("result", res.End.String()).
		Int("fails", room.Fails()).
		Int("max_fails", room.MaxFails()).
		Msg("round finished")
	c.Bot.recordRound(c.Ctx, room, res.End == game.RoundWon)
}
