// internal/game/types.go
//
// Core type definitions for the multiplayer hangman room.
// Defines:
//   - UserID / Player: room membership.
//   - Move: the last state-changing action, for the status view.
//   - GuessResult / RoundEnd: outcome of one guess.
//   - Removal: effect of a leave or kick.
//   - Snapshot: read-only copy of a room consumed by the renderer.

package game

// UserID is the chat platform's opaque user identifier.
type UserID int64

// Player is a room member with the display name captured at join time.
type Player struct {
	ID   UserID
	Name string
}

// DefaultMaxFails is the life budget of a freshly created room.
const DefaultMaxFails = 6

// MoveKind classifies the last state-changing action in a room.
type MoveKind int

const (
	MoveNone MoveKind = iota
	MoveLetter
	MoveWord
	MoveStart
	MoveWordSet
	MoveLivesSet
	MoveJoin
	MoveLeave
	MoveKick
	MoveHostTransfer
)

// Move describes the most recent state-changing action.
type Move struct {
	Kind       MoveKind
	Actor      UserID
	ActorName  string
	Target     UserID // kick and host transfer
	TargetName string
	Text       string // letter or word guessed
	Hit        bool   // letter present / word correct
	Lives      int    // MoveLivesSet
}

// RoundEnd reports whether a guess finished the round.
type RoundEnd int

const (
	RoundContinues RoundEnd = iota
	RoundWon
	RoundLost
)

func (e RoundEnd) String() string {
	switch e {
	case RoundWon:
		return "won"
	case RoundLost:
		return "lost"
	default:
		return "playing"
	}
}

// GuessResult is returned by Room.SubmitGuess for every accepted guess.
type GuessResult struct {
	Move Move
	End  RoundEnd
	// Next is the guesser due after this move; zero when the round ended.
	Next UserID
}

// Removal reports what a leave or kick did to the room.
type Removal struct {
	Removed      bool // the user was a member
	WasHost      bool // the user was the host; the room must be destroyed
	HadTurn      bool // the user held the turn of a running round
	RoundAborted bool // the last guesser left a running round
}

// Snapshot is an immutable copy of a room's state.
type Snapshot struct {
	Code     string
	HostID   UserID
	Players  []Player // join order, host included
	Order    []UserID // guessers in turn order
	Turn     int      // normalized index into Order; 0 when Order is empty
	Secret   string
	Guessed  []rune // sorted
	Fails    int
	MaxFails int
	Started  bool
	LastMove Move
}

// NameOf returns the display name of id, or "" if not a member.
func (s Snapshot) NameOf(id UserID) string {
	for _, p := range s.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

// CurrentTurn returns the guesser due to move, if any.
func (s Snapshot) CurrentTurn() (UserID, bool) {
	if len(s.Order) == 0 {
		return 0, false
	}
	return s.Order[s.Turn], true
}

// LivesLeft is MaxFails minus Fails, floored at zero.
func (s Snapshot) LivesLeft() int {
	if left := s.MaxFails - s.Fails; left > 0 {
		return left
	}
	return 0
}

// IsGuessed reports whether r has been revealed.
func (s Snapshot) IsGuessed(r rune) bool {
	for _, g := range s.Guessed {
		if g == r {
			return true
		}
	}
	return false
}
