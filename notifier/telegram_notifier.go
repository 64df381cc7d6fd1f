package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"booking_service/domain"

	"github.com/sirupsen/logrus"
)

const (
	telegramAPIBase    = "https://api.telegram.org"
	messageTruncateLen = 200
)

// TelegramNotifier posts a reservation summary to the business chat.
// With no bot token or chat id configured it is a silent no-op.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	apiBase    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewTelegramNotifier(botToken, chatID string, logger *logrus.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken:   botToken,
		chatID:     chatID,
		apiBase:    telegramAPIBase,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

func (notifier *TelegramNotifier) Notify(ctx context.Context, reservation *domain.Reservation) error {
	if notifier.botToken == "" || notifier.chatID == "" {
		notifier.logger.Warn("telegram notifier not configured, skipping chat notification")
		return nil
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:                notifier.chatID,
		Text:                  formatChatMessage(reservation),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", notifier.apiBase, notifier.botToken)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := notifier.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("telegram send failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, response.Body)
		return fmt.Errorf("telegram send failed with status %d: %s", response.StatusCode, buf.String())
	}
	return nil
}

// formatChatMessage renders the back-office summary. Labels come from
// the Czech table regardless of the submitter's locale.
func formatChatMessage(reservation *domain.Reservation) string {
	l := stringsFor(domain.LocaleCS)

	var b strings.Builder
	b.WriteString("<b>Nová rezervace</b>\n\n")
	fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.ServiceLabel, html.EscapeString(l.serviceName(reservation.Service)))
	if reservation.Package != "" {
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.PackageLabel, html.EscapeString(l.packageName(reservation.Package)))
	}

	name := reservation.FirstName
	if reservation.LastName != "" {
		name = name + " " + reservation.LastName
	}
	fmt.Fprintf(&b, "<b>Jméno:</b> %s\n", html.EscapeString(name))
	fmt.Fprintf(&b, "<b>E-mail:</b> %s\n", html.EscapeString(reservation.Email))
	fmt.Fprintf(&b, "<b>Telefon:</b> %s\n", html.EscapeString(reservation.Phone))
	fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.DateLabel, html.EscapeString(reservation.Date))
	fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.TimeLabel, html.EscapeString(l.timeWindowName(reservation.Time)))

	if reservation.PickupAddress != "" {
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.PickupLabel, html.EscapeString(reservation.PickupAddress))
	}
	if reservation.DeliveryAddress != "" {
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.DeliveryLabel, html.EscapeString(reservation.DeliveryAddress))
	}
	if reservation.Address != "" {
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.AddressLabel, html.EscapeString(reservation.Address))
	}
	if reservation.ApartmentSize != "" {
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.ApartmentLabel, html.EscapeString(reservation.ApartmentSize))
	}
	if reservation.Message != "" {
		fmt.Fprintf(&b, "<b>%s:</b> %s\n", l.MessageLabel, html.EscapeString(truncate(reservation.Message, messageTruncateLen)))
	}

	fmt.Fprintf(&b, "\n<b>Jazyk:</b> %s\n", reservation.Locale)
	fmt.Fprintf(&b, "<b>ID:</b> %s\n", reservation.ID.Hex())
	fmt.Fprintf(&b, "<b>Vytvořeno:</b> %s\n", reservation.CreatedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
