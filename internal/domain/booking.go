package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type ReservationStatus string

const (
	ReservationStatusReserved ReservationStatus = "reserved"
	ReservationStatusWaitlist ReservationStatus = "waitlist"
)

type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Gender    string
	DOB       string
	Address   string
	Phone     string
	Zip       string
}

// FlightInstanceSeats is the seat counter of one dated flight.
type FlightInstanceSeats struct {
	FlightInstanceID int64
	SeatsTotal       int
	SeatsSold        int
}

// StatusFor decides the status a new reservation gets: a seat while one is
// left, the waitlist otherwise.
func (s FlightInstanceSeats) StatusFor() ReservationStatus {
	if s.SeatsSold < s.SeatsTotal {
		return ReservationStatusReserved
	}
	return ReservationStatusWaitlist
}

type Reservation struct {
	ID               string
	CustomerID       int64
	FlightInstanceID int64
	Status           ReservationStatus
}

const reservationPrefix = "R"

// ReservationID renders the n-th reservation identifier, e.g. R3.
func ReservationID(n int64) string {
	return fmt.Sprintf("%s%d", reservationPrefix, n)
}

// ReservationNumber parses an identifier produced by ReservationID.
func ReservationNumber(id string) (int64, bool) {
	if !strings.HasPrefix(id, reservationPrefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(id[len(reservationPrefix):], 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
