package mail

import "context"

// Address is a mailbox with a display name.
type Address struct {
	Email string
	Name  string
}

// Message is a single outbound HTML email.
type Message struct {
	From     Address
	To       Address
	Subject  string
	HTMLBody string
	CustomID string // provider side tag used to group messages, may be empty
}

// Sender delivers exactly one message per call.
// This keeps notification logic independent from the mail provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
