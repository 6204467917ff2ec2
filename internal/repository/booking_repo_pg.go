package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airops/internal/database"
	"github.com/Domenick1991/airops/internal/domain"
	"github.com/jackc/pgx/v5"
)

// BookingTx is the set of statements a reservation runs inside one transaction.
type BookingTx interface {
	// LockFlightInstance reads the seat counters with a row lock, or returns
	// ErrNotFound.
	LockFlightInstance(ctx context.Context, flightInstanceID int64) (domain.FlightInstanceSeats, error)
	NextCustomerID(ctx context.Context) (int64, error)
	InsertCustomer(ctx context.Context, c domain.Customer) error
	// IncrementSeatsSold returns ErrNoSeatsLeft when the instance is already full.
	IncrementSeatsSold(ctx context.Context, flightInstanceID int64) error
	NextReservationNumber(ctx context.Context) (int64, error)
	InsertReservation(ctx context.Context, r domain.Reservation) error
}

type BookingRepository interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx BookingTx) error) error
}

type PGBookingRepository struct {
	db *database.PostgresDB
}

func NewBookingRepository(db *database.PostgresDB) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx BookingTx) error) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &pgBookingTx{q: tx})
	})
}

type pgBookingTx struct {
	q database.Querier
}

func (t *pgBookingTx) LockFlightInstance(ctx context.Context, flightInstanceID int64) (domain.FlightInstanceSeats, error) {
	seats := domain.FlightInstanceSeats{FlightInstanceID: flightInstanceID}
	err := t.q.QueryRow(ctx, `
		SELECT SeatsTotal, SeatsSold
		FROM FlightInstance
		WHERE FlightInstanceID = $1
		FOR UPDATE`, flightInstanceID).Scan(&seats.SeatsTotal, &seats.SeatsSold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return seats, ErrNotFound
		}
		return seats, fmt.Errorf("failed to lock flight instance: %w", err)
	}
	return seats, nil
}

func (t *pgBookingTx) NextCustomerID(ctx context.Context) (int64, error) {
	var id int64
	if err := t.q.QueryRow(ctx, `SELECT COALESCE(MAX(CustomerID), 0) + 1 FROM Customer`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to get next customer id: %w", err)
	}
	return id, nil
}

func (t *pgBookingTx) InsertCustomer(ctx context.Context, c domain.Customer) error {
	_, err := database.ExecuteUpdate(ctx, t.q, `
		INSERT INTO Customer (CustomerID, FirstName, LastName, Gender, DOB, Address, Phone, Zip)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8)`,
		c.ID, c.FirstName, c.LastName, c.Gender, c.DOB, c.Address, c.Phone, c.Zip)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrKeyConflict
		}
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

func (t *pgBookingTx) IncrementSeatsSold(ctx context.Context, flightInstanceID int64) error {
	n, err := database.ExecuteUpdate(ctx, t.q, `
		UPDATE FlightInstance
		SET SeatsSold = SeatsSold + 1
		WHERE FlightInstanceID = $1 AND SeatsSold < SeatsTotal`, flightInstanceID)
	if err != nil {
		return fmt.Errorf("failed to update seats: %w", err)
	}
	if n == 0 {
		return ErrNoSeatsLeft
	}
	return nil
}

// NextReservationNumber compares the numeric part of R<n> identifiers, so R10
// follows R9.
func (t *pgBookingTx) NextReservationNumber(ctx context.Context) (int64, error) {
	var n int64
	err := t.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(ReservationID FROM 2) AS BIGINT)), 0) + 1
		FROM Reservation
		WHERE ReservationID ~ '^R[0-9]+$'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to get next reservation id: %w", err)
	}
	return n, nil
}

func (t *pgBookingTx) InsertReservation(ctx context.Context, r domain.Reservation) error {
	_, err := database.ExecuteUpdate(ctx, t.q, `
		INSERT INTO Reservation (ReservationID, CustomerID, FlightInstanceID, Status)
		VALUES ($1, $2, $3, $4)`,
		r.ID, r.CustomerID, r.FlightInstanceID, string(r.Status))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrKeyConflict
		}
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

var (
	_ BookingRepository = (*PGBookingRepository)(nil)
	_ BookingTx         = (*pgBookingTx)(nil)
)
