package bot

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman-bot/internal/game"
)

// Sender is the outbound half of the chat transport.
type Sender interface {
	SendText(ctx context.Context, to game.UserID, text string) error
	SendImage(ctx context.Context, to game.UserID, png []byte, caption string) error
}

// Outbound is one message: plain text, or an image with a caption.
type Outbound struct {
	Text    string
	Image   []byte
	Caption string
}

// Text builds a plain-text Outbound.
func Text(s string) Outbound { return Outbound{Text: s} }

// Delivery is the outcome of sending to one recipient.
type Delivery struct {
	To  game.UserID
	Err error
}

// Broadcaster fans a message out to several users. A failed send never stops
// delivery to the remaining recipients.
type Broadcaster struct {
	sender Sender
}

func NewBroadcaster(s Sender) *Broadcaster { return &Broadcaster{sender: s} }

// Send delivers out to a single user.
func (b *Broadcaster) Send(ctx context.Context, to game.UserID, out Outbound) error {
	var err error
	if out.Image != nil {
		err = b.sender.SendImage(ctx, to, out.Image, out.Caption)
	} else {
		err = b.sender.SendText(ctx, to, out.Text)
	}
	if err != nil {
		log.Warn().Err(err).Int64("to", int64(to)).Msg("delivery failed")
	}
	return err
}

// Broadcast sends out to every recipient in order and reports each result.
func (b *Broadcaster) Broadcast(ctx context.Context, to []game.UserID, out Outbound) []Delivery {
	res := make([]Delivery, 0, len(to))
	for _, id := range to {
		res = append(res, Delivery{To: id, Err: b.Send(ctx, id, out)})
	}
	return res
}

// Failed filters the unsuccessful deliveries.
func Failed(ds []Delivery) []Delivery {
	var out []Delivery
	for _, d := range ds {
		if d.Err != nil {
			out = append(out, d)
		}
	}
	return out
}
