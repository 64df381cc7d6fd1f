package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	"booking_service/domain"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// EmailNotifier sends the localized confirmation email to the submitter.
// With no SMTP credentials configured it is a silent no-op.
type EmailNotifier struct {
	smtpHost     string
	smtpPort     int
	smtpUser     string
	smtpPassword string
	fromAddress  string
	logger       *logrus.Logger
	send         func(message *gomail.Message) error
}

func NewEmailNotifier(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromAddress string, logger *logrus.Logger) *EmailNotifier {
	notifier := &EmailNotifier{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		fromAddress:  fromAddress,
		logger:       logger,
	}
	notifier.send = func(message *gomail.Message) error {
		dialer := gomail.NewDialer(notifier.smtpHost, notifier.smtpPort, notifier.smtpUser, notifier.smtpPassword)
		return dialer.DialAndSend(message)
	}
	return notifier
}

func (notifier *EmailNotifier) Notify(ctx context.Context, reservation *domain.Reservation) error {
	if notifier.smtpHost == "" || notifier.smtpUser == "" {
		notifier.logger.Warn("email notifier not configured, skipping confirmation email")
		return nil
	}

	from := notifier.fromAddress
	if from == "" {
		from = notifier.smtpUser
	}

	l := stringsFor(reservation.Locale)

	message := gomail.NewMessage()
	message.SetHeader("From", from)
	message.SetHeader("To", reservation.Email)
	message.SetHeader("Subject", l.Subject)
	message.SetBody("text/html", renderConfirmationBody(reservation))

	if err := notifier.send(message); err != nil {
		return fmt.Errorf("confirmation email to %s failed: %v", reservation.Email, err)
	}
	return nil
}

func renderConfirmationBody(reservation *domain.Reservation) string {
	l := stringsFor(reservation.Locale)

	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p>%s %s,</p>", l.Greeting, html.EscapeString(reservation.FirstName))
	fmt.Fprintf(&b, "<p>%s</p>", l.Intro)
	b.WriteString("<table>")
	writeRow(&b, l.ReservationID, reservation.ID.Hex())
	writeRow(&b, l.ServiceLabel, l.serviceName(reservation.Service))
	if reservation.Package != "" {
		writeRow(&b, l.PackageLabel, l.packageName(reservation.Package))
	}
	writeRow(&b, l.DateLabel, reservation.Date)
	writeRow(&b, l.TimeLabel, l.timeWindowName(reservation.Time))
	if reservation.PickupAddress != "" {
		writeRow(&b, l.PickupLabel, reservation.PickupAddress)
	}
	if reservation.DeliveryAddress != "" {
		writeRow(&b, l.DeliveryLabel, reservation.DeliveryAddress)
	}
	if reservation.Address != "" {
		writeRow(&b, l.AddressLabel, reservation.Address)
	}
	if reservation.ApartmentSize != "" {
		writeRow(&b, l.ApartmentLabel, reservation.ApartmentSize)
	}
	if reservation.Message != "" {
		writeRow(&b, l.MessageLabel, reservation.Message)
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>%s</p>", l.Footer)
	b.WriteString("</body></html>")
	return b.String()
}

func writeRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, html.EscapeString(value))
}
