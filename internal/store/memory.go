// internal/store/memory.go
//
// In-memory room registry.
// Holds the two process-wide mappings of the game:
//   - room code -> *game.Room
//   - user id   -> code of the room the user is in
//
// Characteristics:
//   - Concurrency-safe via RWMutex so HTTP diagnostics can read counts while
//     the bot mutates rooms.
//   - A user belongs to at most one room.
//   - When the host leaves or closes a room it is destroyed and every member
//     is evicted.
//   - State is lost when the process restarts.

package store

import (
	"sync"

	"github.com/robalobadob/hangman-bot/internal/game"
)

var (
	ErrRoomNotFound       = game.NewError(game.KindNotFound, "room not found")
	ErrNotInRoom          = game.NewError(game.KindNotFound, "user is not in a room")
	ErrAlreadyInRoom      = game.NewError(game.KindPrecondition, "user is already in a room")
	ErrCodeSpaceExhausted = game.NewError(game.KindUnknown, "could not allocate a free room code")
)

// Departure is the outcome of Leave or Close.
type Departure struct {
	Room    *game.Room
	Removal game.Removal
	// Destroyed is set when the room was removed from the registry.
	Destroyed bool
	// Evicted lists members whose association was cleared along with the
	// room, the departing user excluded.
	Evicted []game.UserID
}

// Registry maps codes to rooms and users to codes.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*game.Room
	members  map[game.UserID]string
	codeLen  int
	maxFails int
	newCode  func(n int) (string, error)
}

// NewRegistry constructs an empty registry. Non-positive arguments fall back
// to DefaultCodeLength and game.DefaultMaxFails.
func NewRegistry(codeLen, maxFails int) *Registry {
	if codeLen < 1 {
		codeLen = DefaultCodeLength
	}
	if maxFails < 1 {
		maxFails = game.DefaultMaxFails
	}
	return &Registry{
		rooms:    make(map[string]*game.Room),
		members:  make(map[game.UserID]string),
		codeLen:  codeLen,
		maxFails: maxFails,
		newCode:  RandomCode,
	}
}

// Create opens a room hosted by id under a fresh code.
func (r *Registry) Create(id game.UserID, name string) (*game.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; ok {
		return nil, ErrAlreadyInRoom
	}
	code, err := r.freeCode()
	if err != nil {
		return nil, err
	}
	room := game.NewRoom(code, id, name, r.maxFails)
	r.rooms[code] = room
	r.members[id] = code
	return room, nil
}

// freeCode must be called with mu held.
func (r *Registry) freeCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := r.newCode(r.codeLen)
		if err != nil {
			return "", err
		}
		if _, taken := r.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// Join adds id to the room with the given code (case and spaces ignored).
func (r *Registry) Join(code string, id game.UserID, name string) (*game.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; ok {
		return nil, ErrAlreadyInRoom
	}
	code = NormalizeCode(code)
	room, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.AddPlayer(id, name)
	r.members[id] = code
	return room, nil
}

// Leave removes id from its room. A departing host destroys the room.
func (r *Registry) Leave(id game.UserID) (Departure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, err := r.resolveLocked(id)
	if err != nil {
		return Departure{}, err
	}
	delete(r.members, id)
	if room.IsHost(id) {
		return r.destroyLocked(room, id), nil
	}
	return Departure{Room: room, Removal: room.RemovePlayer(id)}, nil
}

// Close destroys the room hosted by id.
func (r *Registry) Close(id game.UserID) (Departure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, err := r.resolveLocked(id)
	if err != nil {
		return Departure{}, err
	}
	if !room.IsHost(id) {
		return Departure{}, game.ErrNotHost
	}
	delete(r.members, id)
	return r.destroyLocked(room, id), nil
}

// destroyLocked removes room and clears every member except by, who has
// already been dropped by the caller.
func (r *Registry) destroyLocked(room *game.Room, by game.UserID) Departure {
	d := Departure{Room: room, Destroyed: true, Removal: room.RemovePlayer(by)}
	for _, m := range room.MemberIDs() {
		if r.members[m] == room.Code() {
			delete(r.members, m)
		}
		d.Evicted = append(d.Evicted, m)
	}
	delete(r.rooms, room.Code())
	return d
}

// Kick removes target from the room hosted by host and clears its association.
func (r *Registry) Kick(host, target game.UserID) (*game.Room, game.Removal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, err := r.resolveLocked(host)
	if err != nil {
		return nil, game.Removal{}, err
	}
	rm, err := room.Kick(host, target)
	if err != nil {
		return room, rm, err
	}
	delete(r.members, target)
	return room, rm, nil
}

// Resolve returns the room id currently belongs to.
func (r *Registry) Resolve(id game.UserID) (*game.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, err := r.resolveLocked(id)
	return room, err == nil
}

func (r *Registry) resolveLocked(id game.UserID) (*game.Room, error) {
	code, ok := r.members[id]
	if !ok {
		return nil, ErrNotInRoom
	}
	room, ok := r.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Stats returns the number of live rooms and of users seated in them.
func (r *Registry) Stats() (rooms, players int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms), len(r.members)
}
