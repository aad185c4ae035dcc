package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/lessonbooking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	fmt.Printf("notify %s %s at %s: order %s (%d lessons)\n", event.FirstName, event.LastName, event.Phone, event.OrderID, len(event.Lessons))
	return nil
}
