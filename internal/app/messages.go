// internal/app/messages.go
package app

import (
	"fmt"
	"html"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/mail"
)

// PaymentNotificationID tags every reminder with the mail provider.
const PaymentNotificationID = "PaymentNotification"

const ownerRecipientName = "Owner"

func ownerMessage(from mail.Address, ownerEmail, customerName, dueDate string) mail.Message {
	return mail.Message{
		From:    from,
		To:      mail.Address{Email: ownerEmail, Name: ownerRecipientName},
		Subject: fmt.Sprintf("Payment due for %s on %s", customerName, dueDate),
		HTMLBody: fmt.Sprintf("<h3>Upcoming Payment Notification</h3><br />Please note that the gym payment for %s should be paid on %s",
			html.EscapeString(customerName), html.EscapeString(dueDate)),
		CustomID: PaymentNotificationID,
	}
}

func customerMessage(from mail.Address, customerEmail, customerName, dueDate string) mail.Message {
	return mail.Message{
		From:    from,
		To:      mail.Address{Email: customerEmail, Name: from.Name + " Customer"},
		Subject: fmt.Sprintf("%s payment due on %s - %s", from.Name, dueDate, customerName),
		HTMLBody: fmt.Sprintf("<h3>Upcoming Payment Notification</h3><br />Please note that your payment to %s is due on %s",
			html.EscapeString(from.Name), html.EscapeString(dueDate)),
		CustomID: PaymentNotificationID,
	}
}

func ownerAlertText(customerName, dueDate string) string {
	return fmt.Sprintf("Upcoming payment: %s should pay on %s", customerName, dueDate)
}
