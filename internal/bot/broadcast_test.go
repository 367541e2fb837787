package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/robalobadob/hangman-bot/internal/game"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendText(ctx context.Context, to game.UserID, text string) error {
	return m.Called(ctx, to, text).Error(0)
}

func (m *mockSender) SendImage(ctx context.Context, to game.UserID, png []byte, caption string) error {
	return m.Called(ctx, to, png, caption).Error(0)
}

func TestBroadcastContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	blocked := errors.New("Forbidden: bot was blocked by the user")

	s := new(mockSender)
	s.On("SendText", ctx, game.UserID(1), "hi").Return(nil).Once()
	s.On("SendText", ctx, game.UserID(2), "hi").Return(blocked).Once()
	s.On("SendText", ctx, game.UserID(3), "hi").Return(nil).Once()

	res := NewBroadcaster(s).Broadcast(ctx, []game.UserID{1, 2, 3}, Text("hi"))

	s.AssertExpectations(t)
	assert.Equal(t, []Delivery{{To: 1}, {To: 2, Err: blocked}, {To: 3}}, res)
	assert.Equal(t, []Delivery{{To: 2, Err: blocked}}, Failed(res))
}

func TestBroadcastSendsImagesWithCaption(t *testing.T) {
	ctx := context.Background()
	png := []byte{0x89, 'P', 'N', 'G'}

	s := new(mockSender)
	s.On("SendImage", ctx, game.UserID(7), png, "status").Return(nil).Once()

	res := NewBroadcaster(s).Broadcast(ctx, []game.UserID{7}, Outbound{Image: png, Caption: "status"})

	s.AssertExpectations(t)
	s.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, Failed(res))
}

func TestBroadcastToNobody(t *testing.T) {
	s := new(mockSender)
	res := NewBroadcaster(s).Broadcast(context.Background(), nil, Text("hi"))
	assert.Empty(t, res)
	s.AssertExpectations(t)
}
