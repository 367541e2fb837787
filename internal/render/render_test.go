package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman-bot/internal/game"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	require.Equal(t, 7, r.Frames())
	return r
}

func TestStage(t *testing.T) {
	cases := []struct {
		fails, max, want int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 6},
		{9, 6, 6},
		{1, 2, 3},
		{2, 2, 6},
		{1, 12, 1},
		{11, 12, 6},
		{3, 12, 2},
		{-1, 6, 0},
		{1, 0, 6},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Stage(c.fails, c.max, 7), "Stage(%d, %d)", c.fails, c.max)
	}
	for f := 0; f <= 6; f++ {
		assert.Equal(t, f, Stage(f, 6, 7), "six lives map one to one")
	}
	assert.Equal(t, 0, Stage(3, 6, 1))
}

func TestStatusBeforeWord(t *testing.T) {
	r := newRenderer(t)
	room := game.NewRoom("ABCDE", 1, "Хост", 6)

	v := r.Status(room.Snapshot())
	assert.Contains(t, v.Text, "🎮 Комната: ABCDE")
	assert.Contains(t, v.Text, "👥 Игроков: 1")
	assert.Contains(t, v.Text, "❤️ Жизни: 6/6")
	assert.Contains(t, v.Text, "(хост ещё не загадал слово)")
	assert.Contains(t, v.Text, "🔤 Буквы: -")
	assert.Contains(t, v.Text, "нет отгадывающих")
	assert.Equal(t, 0, v.Stage)
}

func TestStatusMidRound(t *testing.T) {
	r := newRenderer(t)
	room := game.NewRoom("ABCDE", 1, "Хост", 6)
	room.AddPlayer(2, "Алиса")
	room.AddPlayer(3, "Борис")
	require.NoError(t, room.SetWord(1, "кот"))
	require.NoError(t, room.Start(1))
	_, err := room.SubmitGuess(2, "о")
	require.NoError(t, err)
	_, err = room.SubmitGuess(3, "ы")
	require.NoError(t, err)

	v := r.Status(room.Snapshot())
	assert.Contains(t, v.Text, "🪓 Слово: • о •")
	assert.Contains(t, v.Text, "🔤 Буквы: о, ы")
	assert.Contains(t, v.Text, "❤️ Жизни: 5/6")
	assert.Contains(t, v.Text, "➡️ Сейчас ход: Алиса")
	assert.Contains(t, v.Text, "✍️ Борис: буква «ы» ❌")
	assert.Equal(t, 1, v.Stage)
	assert.Contains(t, v.Text, " O   |")

	assert.NotContains(t, v.Caption, "=========")
	assert.Contains(t, v.Caption, "🪓 Слово: • о •")
}

func TestStatusIsIdempotent(t *testing.T) {
	r := newRenderer(t)
	room := game.NewRoom("ABCDE", 1, "Хост", 4)
	room.AddPlayer(2, "Алиса")
	require.NoError(t, room.SetWord(1, "ёжик"))
	require.NoError(t, room.Start(1))
	_, err := room.SubmitGuess(2, "ж")
	require.NoError(t, err)

	assert.Equal(t, r.Status(room.Snapshot()), r.Status(room.Snapshot()))
}

func TestLivesFlooredAtZero(t *testing.T) {
	r := newRenderer(t)
	snap := game.Snapshot{Code: "ABCDE", Fails: 5, MaxFails: 3}
	v := r.Status(snap)
	assert.Contains(t, v.Text, "❤️ Жизни: 0/3")
	assert.Equal(t, 6, v.Stage)
}

func TestGuessedLettersUseRussianOrder(t *testing.T) {
	assert.Equal(t, "а, е, ё, ж, я", GuessedLetters([]rune{'а', 'е', 'ж', 'я', 'ё'}))
	assert.Equal(t, "-", GuessedLetters(nil))
}

func TestDescribeMove(t *testing.T) {
	cases := []struct {
		mv   game.Move
		want string
	}{
		{game.Move{}, ""},
		{game.Move{Kind: game.MoveWord, ActorName: "Алиса", Text: "кит", Hit: true}, "✍️ Алиса: слово «кит» ✅"},
		{game.Move{Kind: game.MoveLeave, ActorName: "Борис"}, "👋 Борис вышел(ла) из комнаты."},
		{game.Move{Kind: game.MoveKick, TargetName: "Борис"}, "🚪 Борис исключён(а) хостом."},
		{game.Move{Kind: game.MoveLivesSet, Lives: 8}, "❤️ Хост установил жизни: 8"},
		{game.Move{Kind: game.MoveJoin}, "👤 Игрок вошёл(ла) в комнату."},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DescribeMove(c.mv))
	}
}

func TestTurnLineWhenIdle(t *testing.T) {
	snap := game.Snapshot{Order: []game.UserID{2}, Players: []game.Player{{ID: 2, Name: "Алиса"}}}
	assert.True(t, strings.HasPrefix(TurnLine(snap), "⏸"))
}

func TestImagesCacheAndDecode(t *testing.T) {
	im, err := NewImages(7, 4)
	require.NoError(t, err)

	a, err := im.PNG(6, 2)
	require.NoError(t, err)
	b, err := im.PNG(6, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, im.Len())

	img, err := png.Decode(bytes.NewReader(a))
	require.NoError(t, err)
	assert.Equal(t, imageW, img.Bounds().Dx())
	assert.Equal(t, imageH, img.Bounds().Dy())

	empty, err := im.PNG(6, 0)
	require.NoError(t, err)
	assert.NotEqual(t, a, empty)

	for f := 0; f < 10; f++ {
		_, err := im.PNG(12, f)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, im.Len(), "cache is bounded")
}

func TestImagesDeterministic(t *testing.T) {
	x, err := NewImages(7, 1)
	require.NoError(t, err)
	y, err := NewImages(7, 1)
	require.NoError(t, err)

	p, err := x.PNG(6, 6)
	require.NoError(t, err)
	q, err := y.PNG(6, 6)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(p, q))
}
