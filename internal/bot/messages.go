package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/game"
	"github.com/robalobadob/hangman-bot/internal/store"
	"github.com/robalobadob/hangman-bot/internal/words"
)

const (
	msgUnknownCommand = "Неизвестная команда. Список команд: /help"
	msgCancelled      = "Ок, отменено."
	msgInternal       = "Что-то пошло не так, попробуй ещё раз."
	msgCancelHint     = "(или /cancel для отмены)"
	msgUsage          = "Формат: "

	msgPromptCode    = "Введи код комнаты:"
	msgPromptWord    = "Пришли слово, которое нужно загадать (русскими буквами):"
	msgPromptLives   = "Сколько жизней? Пришли число, например 6:"
	msgPromptComment = "Что написать комнате?"

	msgNothingToKick   = "В комнате нет игроков, которых можно исключить."
	msgNothingToHandTo = "В комнате нет игроков, которым можно передать роль хоста."
	msgAlone           = "В комнате больше никого нет."
	msgTurnPassed      = "↪️ Ход переходит к игроку "
	msgRoundAborted    = "⚠️ В комнате не осталось отгадывающих, раунд остановлен."
	msgHostLeft        = "🧹 Хост вышел, комната закрыта."
	msgHostClosed      = "🧹 Хост закрыл комнату."

	msgStatsDisabled = "📊 Статистика отключена."
	msgStatsEmpty    = "📊 У тебя ещё нет сыгранных раундов."
)

var (
	errNotANumber = game.NewError(game.KindValidation, "not a number")
	errBadIndex   = game.NewError(game.KindValidation, "menu index out of range")
)

var errorMessages = map[error]string{
	game.ErrNotHost:         "Только хост может это сделать.",
	game.ErrLivesTooLow:     "Жизни должны быть >= 1.",
	game.ErrWordTooShort:    "Слово слишком короткое или неподходящее. Используй русские буквы.",
	game.ErrWordTooLong:     fmt.Sprintf("Слово слишком длинное, не больше %d букв.", words.MaxWordLen),
	game.ErrInvalidLetter:   "Пиши русскую букву.",
	game.ErrAlreadyGuessed:  "Эта буква уже была.",
	game.ErrEmptyGuess:      "Пустой ход не считается.",
	game.ErrAlreadyHost:     "Этот игрок уже хост.",
	game.ErrKickSelf:        "Хост не может исключить себя. Чтобы закрыть комнату: /close",
	game.ErrNotMember:       "Этого игрока уже нет в комнате.",
	game.ErrNoWord:          "Сначала загадай слово: /setword или /random",
	game.ErrNoGuessers:      "Нужны отгадывающие (кроме хоста). Пусть друзья зайдут: /join КОД",
	game.ErrNotStarted:      "Раунд ещё не идёт. Жди /startgame от хоста.",
	game.ErrNotYourTurn:     "Сейчас не твой ход 🙂",
	game.ErrHostCannotGuess: "Хост не угадывает 🙂",

	store.ErrRoomNotFound:       "Комната не найдена. Проверь код.",
	store.ErrNotInRoom:          "Ты не в комнате. /create или /join КОД",
	store.ErrAlreadyInRoom:      "Ты уже в комнате. /leave чтобы выйти.",
	store.ErrCodeSpaceExhausted: "Не удалось подобрать свободный код комнаты, попробуй ещё раз.",

	errNotANumber: "Нужно целое число, например 6.",
	errBadIndex:   "Нет такого номера. Пришли номер из списка.",
}

// describe turns err into the corrective message for the requester.
func describe(err error) string {
	for target, msg := range errorMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	log.Error().Err(err).Msg("unexpected error")
	return msgInternal
}

// fail answers the requester. Validation errors inside a sub-dialog keep the
// mode and repeat the prompt; any other error ends the dialog. A bad inline
// argument gets the command's usage line.
func (c *Context) fail(err error, reprompt string) {
	msg := describe(err)
	invalid := game.KindOf(err) == game.KindValidation
	switch {
	case c.Session.mode != Idle && invalid && reprompt != "":
		msg += "\n\n" + reprompt + "\n" + msgCancelHint
	case c.Command != nil && invalid && strings.Contains(c.Command.Usage, " "):
		c.Session.reset()
		msg += "\n" + msgUsage + c.Command.Usage
	default:
		c.Session.reset()
	}
	c.reply(msg)
}

func (c *Context) reply(text string) { c.Bot.reply(c.Ctx, c.User, text) }

func (c *Context) prompt(m Mode, text string) {
	c.Session.await(m)
	c.reply(text + "\n" + msgCancelHint)
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("Это бот-виселица с комнатами.\n\n")
	for _, cmd := range All() {
		fmt.Fprintf(&sb, "• %s: %s\n", cmd.Usage, cmd.Description)
	}
	sb.WriteString("\nХоды: отправляй букву или слово целиком, когда твоя очередь.")
	return sb.String()
}

func menuText(title string, players []game.Player) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString(" Пришли номер:\n")
	for i, p := range players {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p.Name)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func roundWonText(secret string) string {
	return fmt.Sprintf("🎉 Победа! Слово: %s\nХост может начать заново: /startgame (или загадать новое /setword)", secret)
}

func roundLostText(secret string) string {
	return fmt.Sprintf("💀 Поражение! Слово было: %s\nХост может начать заново: /startgame (или загадать новое /setword)", secret)
}

