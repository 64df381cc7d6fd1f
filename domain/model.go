package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceType string

const (
	ServiceMoving            ServiceType = "moving"
	ServiceCleaning          ServiceType = "cleaning"
	ServicePacking           ServiceType = "packing"
	ServiceFurnitureCleaning ServiceType = "furniture-cleaning"
	ServiceHandyman          ServiceType = "handyman"
	ServicePackages          ServiceType = "packages"
	ServiceOther             ServiceType = "other"
)

type TimeWindow string

const (
	TimeMorning     TimeWindow = "morning"
	TimeAfternoon   TimeWindow = "afternoon"
	TimeEvening     TimeWindow = "evening"
	TimeNight       TimeWindow = "night"
	TimeByAgreement TimeWindow = "by-agreement"
)

type Locale string

const (
	LocaleCS Locale = "cs"
	LocaleEN Locale = "en"
	LocaleUA Locale = "ua"
)

type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusInProgress ReservationStatus = "in_progress"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ReservationSubmission is the raw payload of the public booking form.
// Cross-field rules (e.g. pickup/delivery addresses for moving) are
// enforced by the client form only, the server schema stays loose.
type ReservationSubmission struct {
	FirstName       string `json:"firstName" validate:"required,min=2"`
	LastName        string `json:"lastName" validate:"omitempty,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=9"`
	Service         string `json:"service" validate:"omitempty,oneof=moving cleaning packing furniture-cleaning handyman packages other"`
	Package         string `json:"package" validate:"omitempty"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"omitempty,oneof=morning afternoon evening night by-agreement"`
	PickupAddress   string `json:"pickupAddress"`
	DeliveryAddress string `json:"deliveryAddress"`
	Address         string `json:"address"`
	ApartmentSize   string `json:"apartmentSize"`
	Message         string `json:"message"`
	Locale          string `json:"locale" validate:"omitempty,oneof=cs en ua"`
}

type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Violations []FieldViolation `json:"errors"`
}

func (v *ValidationError) Error() string {
	return "Validation failed"
}

var validate = validator.New()

// Validate checks the submission against the booking form schema and
// collects every violation, not just the first one, so the form can
// render errors per field.
func (submission *ReservationSubmission) Validate() *ValidationError {
	err := validate.Struct(submission)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Violations: []FieldViolation{{Field: "payload", Message: err.Error()}}}
	}

	violations := make([]FieldViolation, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		violations = append(violations, FieldViolation{
			Field:   jsonFieldName(fieldError.Field()),
			Message: violationMessage(fieldError),
		})
	}
	return &ValidationError{Violations: violations}
}

func jsonFieldName(structField string) string {
	field, ok := jsonNames[structField]
	if !ok {
		return structField
	}
	return field
}

var jsonNames = map[string]string{
	"FirstName": "firstName",
	"LastName":  "lastName",
	"Email":     "email",
	"Phone":     "phone",
	"Service":   "service",
	"Package":   "package",
	"Date":      "date",
	"Time":      "time",
	"Locale":    "locale",
}

func violationMessage(fieldError validator.FieldError) string {
	field := jsonFieldName(fieldError.Field())
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldError.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldError.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

// Normalize applies the intake defaults before persistence.
func (submission *ReservationSubmission) Normalize() {
	if submission.Service == "" {
		submission.Service = string(ServiceOther)
	}
	if submission.Time == "" {
		submission.Time = string(TimeMorning)
	}
	if submission.Locale == "" {
		submission.Locale = string(LocaleCS)
	}
}

func (submission *ReservationSubmission) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(submission)
}

// RequestMeta is audit-only context captured from the incoming request.
// It is stored with the reservation and never shown back to the client.
type RequestMeta struct {
	IP        string `bson:"ip" json:"ip"`
	UserAgent string `bson:"userAgent" json:"userAgent"`
	RequestID string `bson:"requestId" json:"requestId"`
}

// Reservation is the persisted booking record. Optional fields carry
// omitempty so absent values never reach the store.
type Reservation struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone" json:"phone"`
	Service         ServiceType        `bson:"service" json:"service"`
	Package         string             `bson:"package,omitempty" json:"package,omitempty"`
	Date            string             `bson:"date" json:"date"`
	Time            TimeWindow         `bson:"time" json:"time"`
	PickupAddress   string             `bson:"pickupAddress,omitempty" json:"pickupAddress,omitempty"`
	DeliveryAddress string             `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	ApartmentSize   string             `bson:"apartmentSize,omitempty" json:"apartmentSize,omitempty"`
	Message         string             `bson:"message,omitempty" json:"message,omitempty"`
	Locale          Locale             `bson:"locale" json:"locale"`
	Status          ReservationStatus  `bson:"status" json:"status"`
	Price           float64            `bson:"price,omitempty" json:"price,omitempty"`
	Currency        string             `bson:"currency" json:"currency"`
	Source          string             `bson:"source" json:"source"`
	Meta            RequestMeta        `bson:"meta" json:"-"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type NewsItem struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Perex       string             `bson:"perex,omitempty" json:"perex,omitempty"`
	Content     string             `bson:"content" json:"content"`
	MainImage   string             `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	Published   bool               `bson:"published" json:"published"`
	PublishedAt time.Time          `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (news *NewsItem) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(news)
}

type AdminCredentials struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
}

// Session is the explicit admin session resolved by the auth middleware
// and handed to every admin operation.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
