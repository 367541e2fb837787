package bot

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/game"
	"github.com/robalobadob/hangman-bot/internal/stats"
	"github.com/robalobadob/hangman-bot/internal/store"
)

var Help = Define(Definition{
	Name:        "help",
	Aliases:     []string{"start"},
	Usage:       "/help",
	Description: "список команд",
	Menu:        true,
}, func(c *Context) {
	c.reply(helpText())
})

var Create = Define(Definition{
	Name:        "create",
	Usage:       "/create",
	Description: "создать комнату",
	Menu:        true,
}, func(c *Context) {
	room, err := c.Bot.rooms.Create(c.User, c.Name)
	if err != nil {
		c.fail(err, "")
		return
	}
	log.Info().Str("room", room.Code()).Int64("host", int64(c.User)).Msg("room created")
	c.reply(fmt.Sprintf("✅ Комната создана: %s\nДрузья: /join %s\nТы хост: загадай слово /setword (или /random), потом /startgame",
		room.Code(), room.Code()))
})

var Join = Define(Definition{
	Name:        "join",
	Usage:       "/join КОД",
	Description: "войти в комнату по коду",
	Menu:        true,
}, func(c *Context) {
	if c.Arg == "" {
		if _, inRoom := c.Bot.rooms.Resolve(c.User); inRoom {
			c.fail(store.ErrAlreadyInRoom, "")
			return
		}
		c.prompt(AwaitingCode, msgPromptCode)
		return
	}
	joinRoom(c, c.Arg)
})

func joinRoom(c *Context, code string) {
	room, err := c.Bot.rooms.Join(code, c.User, c.Name)
	if errors.Is(err, store.ErrRoomNotFound) && c.Session.mode == AwaitingCode {
		// a mistyped code is worth another try
		c.reply(describe(err) + "\n\n" + msgPromptCode + "\n" + msgCancelHint)
		return
	}
	if err != nil {
		c.fail(err, "")
		return
	}
	c.Session.reset()
	c.reply(fmt.Sprintf("✅ Ты в комнате %s. Жди старта от хоста.", room.Code()))
	c.Bot.broadcast(c.Ctx, others(room, c.User), c.Bot.status(room, ""))
}

var Leave = Define(Definition{
	Name:        "leave",
	Usage:       "/leave",
	Description: "выйти из комнаты (если выходит хост, комната закрывается)",
	Menu:        true,
}, func(c *Context) {
	d, err := c.Bot.rooms.Leave(c.User)
	if err != nil {
		c.fail(err, "")
		return
	}
	code := d.Room.Code()
	if d.Destroyed {
		c.Bot.closeRoom(c, d, msgHostLeft)
		c.reply(fmt.Sprintf("🧹 Ты вышел(ла). Комната %s закрыта.", code))
		return
	}
	c.reply(fmt.Sprintf("👋 Ты вышел(ла) из комнаты %s.", code))
	c.Bot.afterRemoval(c, d.Room, d.Removal)
})

var Close = Define(Definition{
	Name:        "close",
	Usage:       "/close",
	Description: "закрыть комнату (хост)",
	Menu:        true,
}, func(c *Context) {
	d, err := c.Bot.rooms.Close(c.User)
	if err != nil {
		c.fail(err, "")
		return
	}
	c.Bot.closeRoom(c, d, msgHostClosed)
	c.reply(fmt.Sprintf("🧹 Комната %s закрыта.", d.Room.Code()))
})

// closeRoom notifies everyone evicted by a destroyed room.
func (b *Bot) closeRoom(c *Context, d store.Departure, notice string) {
	log.Info().Str("room", d.Room.Code()).Int("evicted", len(d.Evicted)).Msg("room closed")
	b.resetSessions(d.Evicted)
	b.broadcast(c.Ctx, d.Evicted, Text(notice))
}

// afterRemoval updates the remaining members after a leave or kick.
func (b *Bot) afterRemoval(c *Context, room *game.Room, rm game.Removal) {
	header := ""
	switch {
	case rm.RoundAborted:
		header = msgRoundAborted
		log.Info().Str("room", room.Code()).Msg("round aborted, no guessers left")
	case rm.HadTurn && room.Started():
		if next, ok := room.CurrentTurn(); ok {
			header = msgTurnPassed + room.Name(next)
		}
	}
	b.broadcastStatus(c.Ctx, room, header)
}

var Room = Define(Definition{
	Name:        "room",
	Usage:       "/room",
	Description: "состояние комнаты",
	Menu:        true,
}, func(c *Context) {
	room, ok := c.room()
	if !ok {
		return
	}
	_ = c.Bot.out.Send(c.Ctx, c.User, c.Bot.status(room, ""))
})

var Say = Define(Definition{
	Name:        "say",
	Usage:       "/say ТЕКСТ",
	Description: "написать всем в комнате",
	Menu:        true,
}, func(c *Context) {
	if _, ok := c.room(); !ok {
		return
	}
	if c.Arg == "" {
		c.prompt(AwaitingComment, msgPromptComment)
		return
	}
	say(c, c.Arg)
})

func say(c *Context, text string) {
	c.Session.reset()
	room, ok := c.room()
	if !ok {
		return
	}
	to := others(room, c.User)
	if len(to) == 0 {
		c.reply(msgAlone)
		return
	}
	c.Bot.broadcast(c.Ctx, to, Text(fmt.Sprintf("💬 %s: %s", c.Name, text)))
}

var Stats = Define(Definition{
	Name:        "stats",
	Usage:       "/stats",
	Description: "твоя статистика",
	Menu:        true,
}, func(c *Context) {
	t, ok, err := c.Bot.ledger.PlayerStats(c.Ctx, c.User)
	switch {
	case errors.Is(err, stats.ErrDisabled):
		c.reply(msgStatsDisabled)
	case err != nil:
		log.Error().Err(err).Int64("user", int64(c.User)).Msg("player stats")
		c.reply(msgInternal)
	case !ok:
		c.reply(msgStatsEmpty)
	default:
		c.reply(fmt.Sprintf("📊 Раундов: %d\n🏆 Побед: %d\n💀 Поражений: %d", t.Games, t.Wins, t.Losses))
	}
})

var Cancel = Define(Definition{
	Name:        "cancel",
	Usage:       "/cancel",
	Description: "отменить текущий ввод",
}, func(c *Context) {
	c.reply(msgCancelled)
})

// room resolves the requester's room or tells them they have none.
func (c *Context) room() (*game.Room, bool) {
	room, ok := c.Bot.rooms.Resolve(c.User)
	if !ok {
		c.fail(store.ErrNotInRoom, "")
	}
	return room, ok
}
