package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"booking_service/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:            primitive.NewObjectID(),
		FirstName:     "Jan",
		LastName:      "Novak",
		Email:         "jan@example.com",
		Phone:         "777123456",
		Service:       domain.ServiceMoving,
		Date:          "2025-06-01",
		Time:          domain.TimeMorning,
		PickupAddress: "Vodičkova 1, Praha",
		Locale:        domain.LocaleCS,
		Status:        domain.StatusPending,
		Currency:      "CZK",
		Source:        "website",
		CreatedAt:     time.Date(2025, 5, 20, 10, 30, 0, 0, time.UTC),
	}
}

func TestTelegramNotifier_UnconfiguredIsNoOp(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("", "", testLogger())
	notifier.apiBase = server.URL

	err := notifier.Notify(context.Background(), sampleReservation())
	require.NoError(t, err)
	assert.False(t, requested)
}

func TestTelegramNotifier_SendsMessage(t *testing.T) {
	var captured sendMessageRequest
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("123:token", "-100500", testLogger())
	notifier.apiBase = server.URL

	reservation := sampleReservation()
	err := notifier.Notify(context.Background(), reservation)
	require.NoError(t, err)

	assert.Equal(t, "/bot123:token/sendMessage", path)
	assert.Equal(t, "-100500", captured.ChatID)
	assert.Equal(t, "HTML", captured.ParseMode)
	assert.True(t, captured.DisableWebPagePreview)
	assert.Contains(t, captured.Text, "Jan Novak")
	assert.Contains(t, captured.Text, "jan@example.com")
	assert.Contains(t, captured.Text, "Stěhování")
	assert.Contains(t, captured.Text, reservation.ID.Hex())
}

func TestTelegramNotifier_APIErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	notifier := NewTelegramNotifier("123:token", "-100500", testLogger())
	notifier.apiBase = server.URL

	err := notifier.Notify(context.Background(), sampleReservation())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestFormatChatMessage_TruncatesLongMessage(t *testing.T) {
	reservation := sampleReservation()
	reservation.Message = strings.Repeat("ř", 500)

	text := formatChatMessage(reservation)
	assert.NotContains(t, text, strings.Repeat("ř", 201))
	assert.Contains(t, text, strings.Repeat("ř", 200)+"…")
}

func TestFormatChatMessage_EscapesHTML(t *testing.T) {
	reservation := sampleReservation()
	reservation.Message = "<script>alert(1)</script>"

	text := formatChatMessage(reservation)
	assert.NotContains(t, text, "<script>")
	assert.Contains(t, text, "&lt;script&gt;")
}

func TestFormatChatMessage_SkipsEmptyOptionalFields(t *testing.T) {
	reservation := sampleReservation()
	reservation.PickupAddress = ""

	text := formatChatMessage(reservation)
	assert.NotContains(t, text, "Adresa vyzvednutí")
	assert.NotContains(t, text, "Balíček")
}

func TestTruncate_ShortStringUnchanged(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 200))
}
