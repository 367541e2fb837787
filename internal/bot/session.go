package bot

import "github.com/robalobadob/hangman-bot/internal/game"

// Mode is what a user's next free-text message means.
type Mode int

const (
	Idle Mode = iota
	AwaitingCode
	AwaitingWord
	AwaitingLives
	AwaitingKickIndex
	AwaitingTransferIndex
	AwaitingComment
)

func (m Mode) String() string {
	switch m {
	case AwaitingCode:
		return "awaiting_code"
	case AwaitingWord:
		return "awaiting_word"
	case AwaitingLives:
		return "awaiting_lives"
	case AwaitingKickIndex:
		return "awaiting_kick_index"
	case AwaitingTransferIndex:
		return "awaiting_transfer_index"
	case AwaitingComment:
		return "awaiting_comment"
	default:
		return "idle"
	}
}

// session is the per-user dialog state.
type session struct {
	mode Mode
	// menu holds the numbered candidates shown by /kick or /host.
	menu []game.Player
}

func (s *session) reset() {
	s.mode = Idle
	s.menu = nil
}

func (s *session) await(m Mode) {
	s.mode = m
	s.menu = nil
}
