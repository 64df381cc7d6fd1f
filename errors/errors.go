package errors

const (
	ValidationFailed     = "Validation failed"
	InternalServerError  = "Internal server error"
	InvalidCredentials   = "Invalid username or password"
	InvalidTokenError    = "Token is invalid"
	ExpiredSessionError  = "Session has expired"
	InvalidStatusError   = "Invalid reservation status"
	ReservationNotFound  = "Reservation not found"
	NewsItemNotFound     = "News item not found"
	InvalidRequestFormat = "Invalid request format"
)
