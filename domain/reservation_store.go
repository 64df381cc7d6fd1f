package domain

import "context"

type ReservationStore interface {
	CreateReservation(ctx context.Context, reservation *Reservation) (*Reservation, error)
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	GetAllReservations(ctx context.Context) ([]*Reservation, error)
	UpdateReservation(ctx context.Context, reservation *Reservation) error
	UpdateReservationStatus(ctx context.Context, id string, status ReservationStatus) error
	CountByStatus(ctx context.Context) (map[ReservationStatus]int64, error)
}
