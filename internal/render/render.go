// internal/render/render.go
//
// Status view of a room.
// Responsibilities:
//   - Text view: code, player count, lives, ASCII gallows, masked word,
//     guessed letters, whose turn it is and the last move.
//   - Caption: the same view without the ASCII frame, sent under a PNG.
//   - Stage: maps (fails, max_fails) onto the available drawing stages.
//
// Status is deterministic: the same Snapshot always yields the same View.

package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/robalobadob/hangman-bot/assets"
	"github.com/robalobadob/hangman-bot/internal/game"
)

// Placeholder stands in for a letter that is still hidden.
const Placeholder = "•"

// View is a rendered room status.
type View struct {
	Text    string
	Caption string
	Stage   int
}

// Renderer turns snapshots into views.
type Renderer struct {
	frames []string
}

// New loads the embedded gallows frames.
func New() (*Renderer, error) {
	frames, err := assets.GallowsFrames()
	if err != nil {
		return nil, fmt.Errorf("load gallows: %w", err)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("load gallows: no frames")
	}
	return &Renderer{frames: frames}, nil
}

// Frames returns the number of drawing stages.
func (r *Renderer) Frames() int { return len(r.frames) }

// Stage maps fails onto [0, frames-1], proportional to fails/maxFails and
// rounded up so the first miss always draws something.
func Stage(fails, maxFails, frames int) int {
	if frames <= 1 || fails <= 0 {
		return 0
	}
	if maxFails < 1 {
		maxFails = 1
	}
	last := frames - 1
	s := (fails*last + maxFails - 1) / maxFails
	if s > last {
		s = last
	}
	return s
}

// Status renders s.
func (r *Renderer) Status(s game.Snapshot) View {
	stage := Stage(s.Fails, s.MaxFails, len(r.frames))

	var head strings.Builder
	fmt.Fprintf(&head, "🎮 Комната: %s\n", s.Code)
	fmt.Fprintf(&head, "👥 Игроков: %d\n", len(s.Players))
	fmt.Fprintf(&head, "❤️ Жизни: %d/%d\n", s.LivesLeft(), s.MaxFails)

	var tail strings.Builder
	fmt.Fprintf(&tail, "🪓 Слово: %s\n", MaskedWord(s))
	fmt.Fprintf(&tail, "🔤 Буквы: %s\n", GuessedLetters(s.Guessed))
	tail.WriteString(TurnLine(s))
	if mv := DescribeMove(s.LastMove); mv != "" {
		tail.WriteString("\n")
		tail.WriteString(mv)
	}

	return View{
		Text:    head.String() + r.frames[stage] + "\n\n" + tail.String(),
		Caption: head.String() + "\n" + tail.String(),
		Stage:   stage,
	}
}

// MaskedWord shows revealed letters and placeholders, space separated.
func MaskedWord(s game.Snapshot) string {
	if s.Secret == "" {
		return "(хост ещё не загадал слово)"
	}
	parts := make([]string, 0, len(s.Secret))
	for _, ch := range s.Secret {
		if s.IsGuessed(ch) {
			parts = append(parts, string(ch))
		} else {
			parts = append(parts, Placeholder)
		}
	}
	return strings.Join(parts, " ")
}

// GuessedLetters lists letters in Russian alphabetical order, so ё sits
// right after е instead of after я.
func GuessedLetters(guessed []rune) string {
	if len(guessed) == 0 {
		return "-"
	}
	out := make([]string, len(guessed))
	for i, ch := range guessed {
		out[i] = string(ch)
	}
	collate.New(language.Russian).SortStrings(out)
	return strings.Join(out, ", ")
}

// TurnLine says who moves next, or why nobody does.
func TurnLine(s game.Snapshot) string {
	cur, ok := s.CurrentTurn()
	switch {
	case !ok:
		return "⚠️ В комнате нет отгадывающих (кроме хоста)."
	case !s.Started:
		return "⏸ Раунд не идёт. Хост начинает: /startgame"
	default:
		return "➡️ Сейчас ход: " + displayName(s.NameOf(cur))
	}
}

// DescribeMove is a one-line log entry for the last state-changing action.
func DescribeMove(m game.Move) string {
	actor := displayName(m.ActorName)
	switch m.Kind {
	case game.MoveLetter:
		return fmt.Sprintf("✍️ %s: буква «%s» %s", actor, m.Text, verdict(m.Hit))
	case game.MoveWord:
		return fmt.Sprintf("✍️ %s: слово «%s» %s", actor, m.Text, verdict(m.Hit))
	case game.MoveStart:
		return "🚀 Раунд начался!"
	case game.MoveWordSet:
		return "🤫 Хост загадал новое слово."
	case game.MoveLivesSet:
		return fmt.Sprintf("❤️ Хост установил жизни: %d", m.Lives)
	case game.MoveJoin:
		return fmt.Sprintf("👤 %s вошёл(ла) в комнату.", actor)
	case game.MoveLeave:
		return fmt.Sprintf("👋 %s вышел(ла) из комнаты.", actor)
	case game.MoveKick:
		return fmt.Sprintf("🚪 %s исключён(а) хостом.", displayName(m.TargetName))
	case game.MoveHostTransfer:
		return fmt.Sprintf("👑 %s передал(а) роль хоста: %s", actor, displayName(m.TargetName))
	default:
		return ""
	}
}

func verdict(hit bool) string {
	if hit {
		return "✅"
	}
	return "❌"
}

func displayName(name string) string {
	if name == "" {
		return "Игрок"
	}
	return name
}
