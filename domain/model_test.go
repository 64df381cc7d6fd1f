package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func validSubmission() *ReservationSubmission {
	return &ReservationSubmission{
		FirstName: "Jan",
		LastName:  "Novak",
		Email:     "jan@example.com",
		Phone:     "777123456",
		Date:      "2025-06-01",
	}
}

func TestValidate_ValidSubmission(t *testing.T) {
	assert.Nil(t, validSubmission().Validate())
}

func violatedFields(err *ValidationError) []string {
	fields := make([]string, 0, len(err.Violations))
	for _, violation := range err.Violations {
		fields = append(fields, violation.Field)
	}
	return fields
}

func TestValidate_RequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ReservationSubmission)
		field  string
	}{
		{"missing first name", func(s *ReservationSubmission) { s.FirstName = "" }, "firstName"},
		{"short first name", func(s *ReservationSubmission) { s.FirstName = "J" }, "firstName"},
		{"short last name", func(s *ReservationSubmission) { s.LastName = "N" }, "lastName"},
		{"missing email", func(s *ReservationSubmission) { s.Email = "" }, "email"},
		{"malformed email", func(s *ReservationSubmission) { s.Email = "not-an-email" }, "email"},
		{"missing phone", func(s *ReservationSubmission) { s.Phone = "" }, "phone"},
		{"short phone", func(s *ReservationSubmission) { s.Phone = "12345678" }, "phone"},
		{"missing date", func(s *ReservationSubmission) { s.Date = "" }, "date"},
		{"unknown service", func(s *ReservationSubmission) { s.Service = "teleportation" }, "service"},
		{"unknown time window", func(s *ReservationSubmission) { s.Time = "midnight" }, "time"},
		{"unknown locale", func(s *ReservationSubmission) { s.Locale = "de" }, "locale"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			submission := validSubmission()
			tc.mutate(submission)

			err := submission.Validate()
			require.NotNil(t, err)
			assert.Contains(t, violatedFields(err), tc.field)
			for _, violation := range err.Violations {
				assert.NotEmpty(t, violation.Message)
			}
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	submission := &ReservationSubmission{
		FirstName: "J",
		Email:     "broken",
		Phone:     "123",
	}

	err := submission.Validate()
	require.NotNil(t, err)

	fields := violatedFields(err)
	assert.Contains(t, fields, "firstName")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "date")
}

// Addresses are deliberately not cross-checked against the service
// type; the client form enforces that, the server schema does not.
func TestValidate_NoCrossFieldRules(t *testing.T) {
	submission := validSubmission()
	submission.Service = "moving"

	assert.Nil(t, submission.Validate())
}

func TestNormalize_Defaults(t *testing.T) {
	submission := validSubmission()
	submission.Normalize()

	assert.Equal(t, "other", submission.Service)
	assert.Equal(t, "morning", submission.Time)
	assert.Equal(t, "cs", submission.Locale)
}

func TestNormalize_KeepsProvidedValues(t *testing.T) {
	submission := validSubmission()
	submission.Service = "cleaning"
	submission.Time = "evening"
	submission.Locale = "ua"
	submission.Normalize()

	assert.Equal(t, "cleaning", submission.Service)
	assert.Equal(t, "evening", submission.Time)
	assert.Equal(t, "ua", submission.Locale)
}

// Absent optional fields must never reach the store as explicit keys.
func TestReservation_OmitsEmptyOptionalFields(t *testing.T) {
	reservation := &Reservation{
		FirstName: "Jan",
		Email:     "jan@example.com",
		Phone:     "777123456",
		Service:   ServiceOther,
		Date:      "2025-06-01",
		Time:      TimeMorning,
		Locale:    LocaleCS,
		Status:    StatusPending,
		Currency:  "CZK",
		Source:    "website",
	}

	raw, err := bson.Marshal(reservation)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))

	for _, key := range []string{"lastName", "package", "pickupAddress", "deliveryAddress", "address", "apartmentSize", "message", "price", "updatedAt"} {
		assert.NotContains(t, doc, key)
	}
	assert.Contains(t, doc, "firstName")
	assert.Contains(t, doc, "status")
	assert.Contains(t, doc, "currency")
}

func TestReservationStatus_Valid(t *testing.T) {
	for _, status := range []ReservationStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
		assert.True(t, status.Valid())
	}
	assert.False(t, ReservationStatus("archived").Valid())
	assert.False(t, ReservationStatus("").Valid())
}
