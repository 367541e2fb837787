package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman-bot/internal/bot"
)

type mockAPI struct {
	mock.Mock
	updates chan tgbotapi.Update
}

func (m *mockAPI) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	m.Called(cfg)
	return m.updates
}

func (m *mockAPI) StopReceivingUpdates() { m.Called() }

func (m *mockAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

func (m *mockAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	return &tgbotapi.APIResponse{Ok: true}, args.Error(0)
}

type recorder struct {
	mu  sync.Mutex
	got []bot.Update
}

func (r *recorder) Handle(_ context.Context, u bot.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, u)
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func message(chatType string, from int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: from, FirstName: "Алиса", LastName: "Петрова"},
		Chat: &tgbotapi.Chat{ID: from, Type: chatType},
		Text: text,
	}}
}

func TestConvert(t *testing.T) {
	u, ok := convert(message("private", 42, "/join AB12C"))
	require.True(t, ok)
	assert.Equal(t, bot.Update{UserID: 42, Name: "Алиса Петрова", Text: "/join AB12C"}, u)

	_, ok = convert(message("group", 42, "к"))
	assert.False(t, ok, "group chats are ignored")
	_, ok = convert(message("private", 42, ""))
	assert.False(t, ok, "stickers and photos carry no text")
	_, ok = convert(tgbotapi.Update{})
	assert.False(t, ok)
}

func TestFullNameFallsBackToUsername(t *testing.T) {
	assert.Equal(t, "alice", fullName(&tgbotapi.User{UserName: "alice"}))
	assert.Equal(t, "Алиса", fullName(&tgbotapi.User{FirstName: " Алиса "}))
}

func TestRunForwardsPrivateTextUntilCancelled(t *testing.T) {
	m := &mockAPI{updates: make(chan tgbotapi.Update, 3)}
	m.On("GetUpdatesChan", mock.MatchedBy(func(cfg tgbotapi.UpdateConfig) bool {
		return cfg.Timeout == 30
	})).Return()
	m.On("StopReceivingUpdates").Return().Once()

	m.updates <- message("private", 1, "/create")
	m.updates <- message("supergroup", 2, "/create")
	m.updates <- message("private", 3, "к")

	c := &Client{api: m, timeout: 30 * time.Second}
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, rec) }()

	require.Eventually(t, func() bool { return rec.len() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	m.AssertExpectations(t)
}

func TestSendErrorsAreWrapped(t *testing.T) {
	m := &mockAPI{}
	m.On("Send", mock.AnythingOfType("tgbotapi.MessageConfig")).Return(errors.New("Forbidden")).Once()
	m.On("Send", mock.AnythingOfType("tgbotapi.PhotoConfig")).Return(nil).Once()

	c := &Client{api: m}
	err := c.SendText(context.Background(), 5, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Forbidden")
	assert.NoError(t, c.SendImage(context.Background(), 5, []byte{1}, "cap"))
	m.AssertExpectations(t)
}

func TestSetCommands(t *testing.T) {
	m := &mockAPI{}
	m.On("Request", mock.MatchedBy(func(c tgbotapi.SetMyCommandsConfig) bool {
		return len(c.Commands) == 2 && c.Commands[0].Command == "create"
	})).Return(nil).Once()

	c := &Client{api: m}
	require.NoError(t, c.SetCommands([]bot.Definition{
		{Name: "create", Description: "создать комнату"},
		{Name: "join", Description: "войти"},
	}))
	m.AssertExpectations(t)
}
