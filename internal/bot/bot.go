// internal/bot/bot.go
//
// Session router for the hangman chat bot.
// Responsibilities:
//   - Dispatch commands through the command table; a command always resets
//     the user's dialog mode.
//   - Route free text by dialog mode: sub-dialog answers (code, word, lives,
//     menu index, comment) or, when idle, a guess.
//   - Turn room operations into replies to the requester and best-effort
//     broadcasts to the room.
//   - Record finished rounds in the stats ledger.
//
// Updates are handled one at a time; Handle holds a mutex for the whole
// update, outbound sends included.

package bot

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf16"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/game"
	"github.com/robalobadob/hangman-bot/internal/render"
	"github.com/robalobadob/hangman-bot/internal/stats"
	"github.com/robalobadob/hangman-bot/internal/store"
)

// Update is one inbound text message.
type Update struct {
	UserID game.UserID
	Name   string
	Text   string
}

// Options wires a Bot.
type Options struct {
	Registry *store.Registry
	Renderer *render.Renderer
	// Images renders gallows PNGs; nil sends text-only status.
	Images *render.Images
	Ledger stats.Ledger
	Sender Sender
}

// Bot routes updates to rooms.
type Bot struct {
	mu       sync.Mutex
	rooms    *store.Registry
	renderer *render.Renderer
	images   *render.Images
	ledger   stats.Ledger
	out      *Broadcaster
	sessions map[game.UserID]*session
	now      func() time.Time
}

func New(o Options) *Bot {
	ledger := o.Ledger
	if ledger == nil {
		ledger = stats.Nop{}
	}
	return &Bot{
		rooms:    o.Registry,
		renderer: o.Renderer,
		images:   o.Images,
		ledger:   ledger,
		out:      NewBroadcaster(o.Sender),
		sessions: make(map[game.UserID]*session),
		now:      time.Now,
	}
}

// Handle processes one update.
func (b *Bot) Handle(ctx context.Context, u Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.session(u.UserID)
	defer b.prune(u.UserID)
	text := strings.TrimSpace(u.Text)
	log.Debug().Int64("user", int64(u.UserID)).Str("mode", s.mode.String()).Msg("update")
	if text == "" {
		return
	}

	if name, arg, ok := parseCommand(text); ok {
		s.reset()
		cmd, found := lookup(name)
		if !found {
			b.reply(ctx, u.UserID, msgUnknownCommand)
			return
		}
		cmd.Handler(&Context{
			Ctx:     ctx,
			Bot:     b,
			User:    u.UserID,
			Name:    displayName(u),
			Arg:     arg,
			Session: s,
			Command: cmd,
		})
		return
	}

	c := &Context{Ctx: ctx, Bot: b, User: u.UserID, Name: displayName(u), Arg: text, Session: s}
	switch s.mode {
	case AwaitingCode:
		joinRoom(c, text)
	case AwaitingWord:
		setWord(c, text)
	case AwaitingLives:
		setLives(c, text)
	case AwaitingKickIndex:
		kickByIndex(c, text)
	case AwaitingTransferIndex:
		transferByIndex(c, text)
	case AwaitingComment:
		say(c, text)
	default:
		guess(c, text)
	}
}

// Mode reports the dialog mode of a user.
func (b *Bot) Mode(id game.UserID) Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.sessions[id]; ok {
		return s.mode
	}
	return Idle
}

func (b *Bot) session(id game.UserID) *session {
	s, ok := b.sessions[id]
	if !ok {
		s = &session{}
		b.sessions[id] = s
	}
	return s
}

// prune forgets a session with no pending dialog.
func (b *Bot) prune(id game.UserID) {
	if s, ok := b.sessions[id]; ok && s.mode == Idle {
		delete(b.sessions, id)
	}
}

// resetSessions drops pending dialogs of users who lost their room.
func (b *Bot) resetSessions(ids []game.UserID) {
	for _, id := range ids {
		delete(b.sessions, id)
	}
}

func (b *Bot) reply(ctx context.Context, to game.UserID, text string) {
	_ = b.out.Send(ctx, to, Text(text))
}

// maxCaption is the photo caption limit of the chat API, in UTF-16 units.
const maxCaption = 1024

// status renders room with an optional header line on top. A caption that
// would not fit under the photo goes out as a text status instead.
func (b *Bot) status(room *game.Room, header string) Outbound {
	v := b.renderer.Status(room.Snapshot())
	if header != "" {
		header += "\n\n"
	}
	if b.images != nil && utf16Len(header+v.Caption) <= maxCaption {
		png, err := b.images.PNG(room.MaxFails(), room.Fails())
		if err == nil {
			return Outbound{Image: png, Caption: header + v.Caption}
		}
		log.Warn().Err(err).Str("room", room.Code()).Msg("render gallows image")
	}
	return Text(header + v.Text)
}

func (b *Bot) broadcast(ctx context.Context, to []game.UserID, out Outbound) {
	if failed := Failed(b.out.Broadcast(ctx, to, out)); len(failed) > 0 {
		log.Debug().Int("failed", len(failed)).Int("recipients", len(to)).Msg("broadcast incomplete")
	}
}

func (b *Bot) broadcastStatus(ctx context.Context, room *game.Room, header string) {
	b.broadcast(ctx, room.MemberIDs(), b.status(room, header))
}

// others returns every member of room except id.
func others(room *game.Room, id game.UserID) []game.UserID {
	var out []game.UserID
	for _, m := range room.MemberIDs() {
		if m != id {
			out = append(out, m)
		}
	}
	return out
}

// recordRound stores a finished round; failures are logged only.
func (b *Bot) recordRound(ctx context.Context, room *game.Room, won bool) {
	var guessers []game.Player
	for _, p := range room.Members() {
		if !room.IsHost(p.ID) {
			guessers = append(guessers, p)
		}
	}
	r := stats.Round{
		RoomCode:   room.Code(),
		Secret:     room.Secret(),
		Won:        won,
		Fails:      room.Fails(),
		MaxFails:   room.MaxFails(),
		Guessers:   guessers,
		FinishedAt: b.now(),
	}
	if err := b.ledger.RecordRound(ctx, r); err != nil {
		log.Warn().Err(err).Str("room", room.Code()).Msg("record round")
	}
}

func utf16Len(s string) int { return len(utf16.Encode([]rune(s))) }

func displayName(u Update) string {
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	return "Игрок"
}
