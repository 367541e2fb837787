package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/game"
	"github.com/robalobadob/hangman-bot/internal/words"
)

// hostRoom resolves the requester's room and checks host privileges.
func (c *Context) hostRoom() (*game.Room, bool) {
	room, ok := c.room()
	if !ok {
		return nil, false
	}
	if !room.IsHost(c.User) {
		c.fail(game.ErrNotHost, "")
		return nil, false
	}
	return room, true
}

var Lives = Define(Definition{
	Name:        "lives",
	Usage:       "/lives N",
	Description: "установить число жизней (хост)",
	Menu:        true,
}, func(c *Context) {
	if _, ok := c.hostRoom(); !ok {
		return
	}
	if c.Arg == "" {
		c.prompt(AwaitingLives, msgPromptLives)
		return
	}
	setLives(c, c.Arg)
})

func setLives(c *Context, raw string) {
	room, ok := c.room()
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.fail(errNotANumber, msgPromptLives)
		return
	}
	if err := room.SetLives(c.User, n); err != nil {
		c.fail(err, msgPromptLives)
		return
	}
	c.Session.reset()
	c.reply(fmt.Sprintf("✅ Жизни установлены: %d.", n))
	c.Bot.broadcast(c.Ctx, others(room, c.User), c.Bot.status(room, ""))
}

var SetWord = Define(Definition{
	Name:        "setword",
	Usage:       "/setword СЛОВО",
	Description: "загадать слово (хост)",
	Menu:        true,
}, func(c *Context) {
	if _, ok := c.hostRoom(); !ok {
		return
	}
	if c.Arg == "" {
		c.prompt(AwaitingWord, msgPromptWord)
		return
	}
	setWord(c, c.Arg)
})

func setWord(c *Context, raw string) {
	room, ok := c.room()
	if !ok {
		return
	}
	wasRunning := room.Started()
	if err := room.SetWord(c.User, raw); err != nil {
		c.fail(err, msgPromptWord)
		return
	}
	c.Session.reset()
	c.Bot.wordChanged(c, room, wasRunning, "✅ Слово загадано: "+room.Secret()+". Теперь /startgame")
}

var Random = Define(Definition{
	Name:        "random",
	Usage:       "/random",
	Description: "загадать случайное слово (хост)",
	Menu:        true,
}, func(c *Context) {
	room, ok := c.hostRoom()
	if !ok {
		return
	}
	wasRunning := room.Started()
	if err := room.SetWord(c.User, words.RandomWord()); err != nil {
		c.fail(err, "")
		return
	}
	c.Bot.wordChanged(c, room, wasRunning, "🎲 Случайное слово: "+room.Secret()+". Теперь /startgame")
})

// wordChanged confirms a new secret to the host and tells the guessers.
// The secret itself only ever goes to the host.
func (b *Bot) wordChanged(c *Context, room *game.Room, wasRunning bool, confirm string) {
	c.reply(confirm)
	header := ""
	if wasRunning {
		header = "⏹ Хост сменил слово, раунд остановлен."
		log.Info().Str("room", room.Code()).Msg("round stopped by new word")
	}
	b.broadcast(c.Ctx, others(room, c.User), b.status(room, header))
}

var StartGame = Define(Definition{
	Name:        "startgame",
	Usage:       "/startgame",
	Description: "начать раунд (хост)",
	Menu:        true,
}, func(c *Context) {
	room, ok := c.room()
	if !ok {
		return
	}
	if err := room.Start(c.User); err != nil {
		c.fail(err, "")
		return
	}
	log.Info().Str("room", room.Code()).Int("guessers", len(room.Guessers())).Msg("round started")
	first, _ := room.CurrentTurn()
	c.Bot.broadcastStatus(c.Ctx, room, "🚀 Игра началась! Первый ход: "+room.Name(first))
})

// candidates lists every member except the host, in join order.
func candidates(room *game.Room) []game.Player {
	var out []game.Player
	for _, p := range room.Members() {
		if !room.IsHost(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

var Kick = Define(Definition{
	Name:        "kick",
	Usage:       "/kick",
	Description: "исключить игрока (хост)",
	Menu:        true,
}, func(c *Context) {
	room, ok := c.hostRoom()
	if !ok {
		return
	}
	menu := candidates(room)
	if len(menu) == 0 {
		c.reply(msgNothingToKick)
		return
	}
	c.Session.await(AwaitingKickIndex)
	c.Session.menu = menu
	c.reply(menuText("Кого исключить?", menu) + "\n" + msgCancelHint)
})

var Host = Define(Definition{
	Name:        "host",
	Usage:       "/host",
	Description: "передать роль хоста (хост)",
	Menu:        true,
}, func(c *Context) {
	room, ok := c.hostRoom()
	if !ok {
		return
	}
	menu := candidates(room)
	if len(menu) == 0 {
		c.reply(msgNothingToHandTo)
		return
	}
	c.Session.await(AwaitingTransferIndex)
	c.Session.menu = menu
	c.reply(menuText("Кому передать роль хоста?", menu) + "\n" + msgCancelHint)
})

// pick resolves a 1-based menu answer against the menu captured at prompt time.
func (c *Context) pick(raw, title string) (game.Player, bool) {
	reprompt := menuText(title, c.Session.menu)
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		c.fail(errNotANumber, reprompt)
		return game.Player{}, false
	}
	if n < 1 || n > len(c.Session.menu) {
		c.fail(errBadIndex, reprompt)
		return game.Player{}, false
	}
	return c.Session.menu[n-1], true
}

func kickByIndex(c *Context, raw string) {
	target, ok := c.pick(raw, "Кого исключить?")
	if !ok {
		return
	}
	c.Session.reset()
	room, rm, err := c.Bot.rooms.Kick(c.User, target.ID)
	if err != nil {
		c.fail(err, "")
		return
	}
	c.Bot.resetSessions([]game.UserID{target.ID})
	_ = c.Bot.out.Send(c.Ctx, target.ID, Text(fmt.Sprintf("🚪 Хост исключил тебя из комнаты %s.", room.Code())))
	c.reply(fmt.Sprintf("✅ %s исключён(а).", target.Name))
	c.Bot.afterRemoval(c, room, rm)
}

func transferByIndex(c *Context, raw string) {
	target, ok := c.pick(raw, "Кому передать роль хоста?")
	if !ok {
		return
	}
	c.Session.reset()
	room, ok := c.room()
	if !ok {
		return
	}
	if err := room.TransferHost(c.User, target.ID); err != nil {
		c.fail(err, "")
		return
	}
	log.Info().Str("room", room.Code()).Int64("host", int64(target.ID)).Msg("host transferred")
	c.Bot.resetSessions([]game.UserID{target.ID})
	_ = c.Bot.out.Send(c.Ctx, target.ID, Text("👑 Теперь ты хост комнаты "+room.Code()+"."))
	c.Bot.broadcastStatus(c.Ctx, room, "")
}
