// internal/game/engine.go
//
// State machine for a single hangman room.
// Responsibilities:
//   - Membership: join, leave, kick, host transfer.
//   - Host-only configuration: lives, secret word, round start.
//   - Guess evaluation: letters and whole words, turn rotation.
//   - Round end detection: win when every rune is revealed, loss when
//     fails reach the life budget.
//
// Notes:
//   - A Room is not safe for concurrent use; the router serializes updates.
//   - Every rejected operation returns a *Error and leaves the room unchanged.
//   - The host is never part of the guesser order.
package game

import (
	"sort"
	"strings"

	"github.com/robalobadob/hangman-bot/internal/words"
)

// Room is one game session: a host, guessers taking turns, and a secret.
type Room struct {
	code     string
	hostID   UserID
	players  []Player // join order
	order    []UserID // guessers, join order
	turn     int
	secret   string
	guessed  map[rune]struct{}
	fails    int
	maxFails int
	started  bool
	lastMove Move
}

// NewRoom creates a room whose only member is the host.
// A non-positive maxFails falls back to DefaultMaxFails.
func NewRoom(code string, host UserID, hostName string, maxFails int) *Room {
	if maxFails < 1 {
		maxFails = DefaultMaxFails
	}
	return &Room{
		code:     code,
		hostID:   host,
		players:  []Player{{ID: host, Name: hostName}},
		guessed:  make(map[rune]struct{}),
		maxFails: maxFails,
	}
}

func (r *Room) Code() string     { return r.code }
func (r *Room) HostID() UserID { return r.hostID }
func (r *Room) Started() bool  { return r.started }
func (r *Room) Secret() string { return r.secret }
func (r *Room) Fails() int     { return r.fails }
func (r *Room) MaxFails() int  { return r.maxFails }

// IsHost reports whether id currently hosts the room.
func (r *Room) IsHost(id UserID) bool { return id == r.hostID }

// Has reports whether id is a member.
func (r *Room) Has(id UserID) bool { return r.playerIndex(id) >= 0 }

// Name returns the display name of a member, or "" for strangers.
func (r *Room) Name(id UserID) string {
	if i := r.playerIndex(id); i >= 0 {
		return r.players[i].Name
	}
	return ""
}

// Members returns every member in join order, host included.
func (r *Room) Members() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

// MemberIDs returns the ids of every member in join order.
func (r *Room) MemberIDs() []UserID {
	out := make([]UserID, len(r.players))
	for i, p := range r.players {
		out[i] = p.ID
	}
	return out
}

// Guessers returns the turn order.
func (r *Room) Guessers() []UserID {
	out := make([]UserID, len(r.order))
	copy(out, r.order)
	return out
}

// CurrentTurn returns the guesser due to move, if there is any guesser.
func (r *Room) CurrentTurn() (UserID, bool) {
	if len(r.order) == 0 {
		return 0, false
	}
	return r.order[r.turn], true
}

// AddPlayer adds id to the room. Non-hosts join the end of the turn order.
// Returns false if id was already a member; the name is refreshed either way.
func (r *Room) AddPlayer(id UserID, name string) bool {
	if i := r.playerIndex(id); i >= 0 {
		r.players[i].Name = name
		return false
	}
	r.players = append(r.players, Player{ID: id, Name: name})
	if id != r.hostID && indexOf(r.order, id) < 0 {
		r.order = append(r.order, id)
	}
	r.lastMove = Move{Kind: MoveJoin, Actor: id, ActorName: name}
	return true
}

// RemovePlayer drops id from the room. If id is the host the caller must
// destroy the room; the returned Removal says so.
func (r *Room) RemovePlayer(id UserID) Removal {
	i := r.playerIndex(id)
	if i < 0 {
		return Removal{}
	}
	rm := Removal{Removed: true, WasHost: id == r.hostID}
	name := r.players[i].Name
	if cur, ok := r.CurrentTurn(); ok && r.started && cur == id {
		rm.HadTurn = true
	}

	r.players = append(r.players[:i:i], r.players[i+1:]...)
	r.removeFromOrder(id)
	if r.started && len(r.order) == 0 {
		r.started = false
		rm.RoundAborted = true
	}
	r.lastMove = Move{Kind: MoveLeave, Actor: id, ActorName: name}
	return rm
}

// SetLives sets the life budget. Allowed mid-round; a budget below the
// current fails shows zero lives and loses on the next guess.
func (r *Room) SetLives(actor UserID, n int) error {
	if actor != r.hostID {
		return ErrNotHost
	}
	if n < 1 {
		return ErrLivesTooLow
	}
	r.maxFails = n
	r.lastMove = Move{Kind: MoveLivesSet, Actor: actor, ActorName: r.Name(actor), Lives: n}
	return nil
}

// SetWord normalizes raw and makes it the secret. Any running round ends;
// a new round needs Start.
func (r *Room) SetWord(actor UserID, raw string) error {
	if actor != r.hostID {
		return ErrNotHost
	}
	w := words.Normalize(raw)
	if len([]rune(w)) > words.MaxWordLen {
		return ErrWordTooLong
	}
	if !words.Valid(w) {
		return ErrWordTooShort
	}
	r.secret = w
	r.resetRound()
	r.started = false
	r.lastMove = Move{Kind: MoveWordSet, Actor: actor, ActorName: r.Name(actor)}
	return nil
}

// Start begins a round with the configured secret.
func (r *Room) Start(actor UserID) error {
	if actor != r.hostID {
		return ErrNotHost
	}
	if r.secret == "" {
		return ErrNoWord
	}
	if len(r.order) == 0 {
		return ErrNoGuessers
	}
	r.resetRound()
	r.started = true
	r.lastMove = Move{Kind: MoveStart, Actor: actor, ActorName: r.Name(actor)}
	return nil
}

// Kick removes target on the host's behalf.
func (r *Room) Kick(actor, target UserID) (Removal, error) {
	if actor != r.hostID {
		return Removal{}, ErrNotHost
	}
	if target == r.hostID {
		return Removal{}, ErrKickSelf
	}
	if !r.Has(target) {
		return Removal{}, ErrNotMember
	}
	targetName := r.Name(target)
	rm := r.RemovePlayer(target)
	r.lastMove = Move{Kind: MoveKick, Actor: actor, ActorName: r.Name(actor), Target: target, TargetName: targetName}
	return rm, nil
}

// TransferHost hands host privileges to target. The new host leaves the
// turn order, the old host joins its end, and the guesser who held the turn
// keeps it when still in the order.
func (r *Room) TransferHost(actor, target UserID) error {
	if actor != r.hostID {
		return ErrNotHost
	}
	if target == r.hostID {
		return ErrAlreadyHost
	}
	if !r.Has(target) {
		return ErrNotMember
	}
	active, hadActive := r.CurrentTurn()

	if i := indexOf(r.order, target); i >= 0 {
		r.order = append(r.order[:i:i], r.order[i+1:]...)
	}
	old := r.hostID
	if indexOf(r.order, old) < 0 {
		r.order = append(r.order, old)
	}
	r.hostID = target

	if i := indexOf(r.order, active); hadActive && i >= 0 {
		r.turn = i
	} else {
		r.normalizeTurn()
	}
	r.lastMove = Move{Kind: MoveHostTransfer, Actor: old, ActorName: r.Name(old), Target: target, TargetName: r.Name(target)}
	return nil
}

// SubmitGuess applies a letter (one rune) or whole-word guess from id.
// Rejections never consume the turn.
func (r *Room) SubmitGuess(id UserID, text string) (GuessResult, error) {
	if !r.started {
		return GuessResult{}, ErrNotStarted
	}
	if len(r.order) == 0 {
		return GuessResult{}, ErrNoGuessers
	}
	if id == r.hostID {
		return GuessResult{}, ErrHostCannotGuess
	}
	if cur, _ := r.CurrentTurn(); cur != id {
		return GuessResult{}, ErrNotYourTurn
	}

	folded := words.Fold(text)
	if folded == "" {
		return GuessResult{}, ErrEmptyGuess
	}

	var mv Move
	if runes := []rune(folded); len(runes) == 1 {
		ch := runes[0]
		if !words.IsLetter(ch) {
			return GuessResult{}, ErrInvalidLetter
		}
		if _, dup := r.guessed[ch]; dup {
			return GuessResult{}, ErrAlreadyGuessed
		}
		r.guessed[ch] = struct{}{}
		hit := strings.ContainsRune(r.secret, ch)
		if !hit {
			r.fails++
		}
		mv = Move{Kind: MoveLetter, Actor: id, ActorName: r.Name(id), Text: string(ch), Hit: hit}
	} else {
		w := words.Normalize(folded)
		switch n := len([]rune(w)); {
		case n < words.MinWordLen:
			return GuessResult{}, ErrWordTooShort
		case n > words.MaxWordLen:
			return GuessResult{}, ErrWordTooLong
		}
		hit := w == r.secret
		if hit {
			r.reveal()
		} else {
			r.fails++
		}
		mv = Move{Kind: MoveWord, Actor: id, ActorName: r.Name(id), Text: w, Hit: hit}
	}
	r.lastMove = mv

	res := GuessResult{Move: mv}
	switch {
	case r.solved():
		r.started = false
		res.End = RoundWon
	case r.fails >= r.maxFails:
		r.reveal()
		r.started = false
		res.End = RoundLost
	default:
		r.turn++
		r.normalizeTurn()
		res.Next = r.order[r.turn]
	}
	return res, nil
}

// Snapshot copies the room state for rendering.
func (r *Room) Snapshot() Snapshot {
	guessed := make([]rune, 0, len(r.guessed))
	for ch := range r.guessed {
		guessed = append(guessed, ch)
	}
	sort.Slice(guessed, func(i, j int) bool { return guessed[i] < guessed[j] })

	return Snapshot{
		Code:     r.code,
		HostID:   r.hostID,
		Players:  r.Members(),
		Order:    r.Guessers(),
		Turn:     r.turn,
		Secret:   r.secret,
		Guessed:  guessed,
		Fails:    r.fails,
		MaxFails: r.maxFails,
		Started:  r.started,
		LastMove: r.lastMove,
	}
}

func (r *Room) resetRound() {
	r.guessed = make(map[rune]struct{})
	r.fails = 0
	r.turn = 0
}

// reveal marks every rune of the secret as guessed.
func (r *Room) reveal() {
	for _, ch := range r.secret {
		r.guessed[ch] = struct{}{}
	}
}

func (r *Room) solved() bool {
	if r.secret == "" {
		return false
	}
	for _, ch := range r.secret {
		if _, ok := r.guessed[ch]; !ok {
			return false
		}
	}
	return true
}

// removeFromOrder drops id from the turn order. A guesser before the turn
// pointer shifts it back so the same guesser stays due; removing the due
// guesser passes the turn to whoever slides into that slot.
func (r *Room) removeFromOrder(id UserID) {
	i := indexOf(r.order, id)
	if i < 0 {
		return
	}
	r.order = append(r.order[:i:i], r.order[i+1:]...)
	if i < r.turn {
		r.turn--
	}
	r.normalizeTurn()
}

// normalizeTurn keeps the turn pointer inside the current order.
// Every mutation of order goes through it.
func (r *Room) normalizeTurn() {
	n := len(r.order)
	if n == 0 {
		r.turn = 0
		return
	}
	r.turn %= n
	if r.turn < 0 {
		r.turn += n
	}
}

func (r *Room) playerIndex(id UserID) int {
	for i, p := range r.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func indexOf(ids []UserID, id UserID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
