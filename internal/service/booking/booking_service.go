package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Domenick1991/airops/internal/apperrors"
	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/logger"
	"github.com/Domenick1991/airops/internal/repository"
	"github.com/Domenick1991/airops/internal/service/reports"
	"github.com/Domenick1991/airops/internal/validation"
)

var (
	ErrFlightInstanceNotFound = errors.New("flight instance not found")
	ErrKeysExhausted          = errors.New("surrogate key retries exhausted")
)

const (
	MsgFlightInstanceNotFound = "Flight instance not found. Please enter a valid FlightInstanceID."
	MsgKeysExhausted          = "Could not allocate a new reservation, please try again."
)

// CustomerFields are prompted in this order, followed by FlightInstanceField.
var CustomerFields = []validation.Field{
	{Prompt: "Enter your first name: ", EmptyMessage: "First name cannot be empty, please try again and enter a valid first name."},
	{Prompt: "Enter your last name: ", EmptyMessage: "Last name cannot be empty, please try again and enter a valid last name."},
	{Prompt: "Enter your gender: ", EmptyMessage: "Gender cannot be empty, please try again and enter a valid gender."},
	{Prompt: "Enter your date of birth (YYYY-MM-DD): ", EmptyMessage: "Date of birth cannot be empty, please try again and enter a valid date of birth.", Kind: validation.FieldDate},
	{Prompt: "Enter your address: ", EmptyMessage: "Address cannot be empty, please try again and enter a valid address."},
	{Prompt: "Enter your phone number: ", EmptyMessage: "Phone number cannot be empty, please try again and enter a valid phone number."},
	{Prompt: "Enter your zip code: ", EmptyMessage: "Zip code cannot be empty, please try again and enter a valid zip code."},
}

var FlightInstanceField = validation.Field{
	Prompt:       "Enter flight instance: ",
	EmptyMessage: "Flight instance cannot be empty, please try again and enter a valid flight number.",
	Kind:         validation.FieldInteger,
}

type BookingInput struct {
	Customer         domain.Customer
	FlightInstanceID int64
}

// ParseInput validates the seven customer values and the flight instance ID,
// in prompt order.
func ParseInput(customer []string, flightInstance string) (BookingInput, error) {
	if len(customer) != len(CustomerFields) {
		return BookingInput{}, fmt.Errorf("expected %d customer values, got %d", len(CustomerFields), len(customer))
	}
	v := make([]string, len(customer))
	for i, f := range CustomerFields {
		arg, err := f.Arg(customer[i])
		if err != nil {
			return BookingInput{}, err
		}
		v[i] = arg
	}

	raw, err := FlightInstanceField.Arg(flightInstance)
	if err != nil {
		return BookingInput{}, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return BookingInput{}, apperrors.NewValidationError(validation.IntegerFormatMessage, validation.ErrBadFormat)
	}

	return BookingInput{
		Customer: domain.Customer{
			FirstName: v[0],
			LastName:  v[1],
			Gender:    v[2],
			DOB:       v[3],
			Address:   v[4],
			Phone:     v[5],
			Zip:       v[6],
		},
		FlightInstanceID: id,
	}, nil
}

type Confirmation struct {
	ReservationID string
	CustomerID    int64
	Status        domain.ReservationStatus
}

func (c Confirmation) Message() string {
	if c.Status == domain.ReservationStatusReserved {
		return "Your reservation is successful! Your reservation ID is: " + c.ReservationID
	}
	return "The flight you're requesting is currently full. You have been added to the waitlist. Your reservation ID is: " + c.ReservationID
}

type BookingUseCase interface {
	Book(ctx context.Context, input BookingInput) (*Confirmation, error)
}

type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type BookingService struct {
	bookings      repository.BookingRepository
	cache         reports.Cache
	publisher     Publisher
	retryAttempts int
}

type BookingServiceOption func(*BookingService)

func WithCache(cache reports.Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithPublisher(publisher Publisher) BookingServiceOption {
	return func(s *BookingService) {
		s.publisher = publisher
	}
}

// WithRetryAttempts bounds how often a transaction is replayed after a
// surrogate key collision.
func WithRetryAttempts(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.retryAttempts = n
		}
	}
}

func NewBookingService(bookings repository.BookingRepository, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:      bookings,
		retryAttempts: 3,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book creates the customer and the reservation in one transaction. The
// reservation holds a seat while one is left and is waitlisted otherwise.
func (s *BookingService) Book(ctx context.Context, input BookingInput) (*Confirmation, error) {
	var (
		conf *Confirmation
		err  error
	)
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		conf, err = s.book(ctx, input)
		if !errors.Is(err, repository.ErrKeyConflict) {
			break
		}
		logger.Warn().Int("attempt", attempt).Msg("key conflict while booking, retrying")
	}
	if errors.Is(err, repository.ErrKeyConflict) {
		return nil, apperrors.NewConflictError(MsgKeysExhausted, errors.Join(ErrKeysExhausted, err))
	}
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("reservation_id", conf.ReservationID).
		Int64("flight_instance_id", input.FlightInstanceID).
		Str("status", string(conf.Status)).
		Msg("reservation created")

	reports.Invalidate(ctx, s.cache)
	s.publish(ctx, domain.NewEvent(domain.EventReservationCreated, conf.ReservationID, map[string]string{
		"customer_id":        strconv.FormatInt(conf.CustomerID, 10),
		"flight_instance_id": strconv.FormatInt(input.FlightInstanceID, 10),
		"status":             string(conf.Status),
	}))
	return conf, nil
}

func (s *BookingService) book(ctx context.Context, input BookingInput) (*Confirmation, error) {
	var conf Confirmation
	err := s.bookings.InTx(ctx, func(ctx context.Context, tx repository.BookingTx) error {
		seats, err := tx.LockFlightInstance(ctx, input.FlightInstanceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewNotFoundError(MsgFlightInstanceNotFound, ErrFlightInstanceNotFound)
			}
			return err
		}

		customer := input.Customer
		customer.ID, err = tx.NextCustomerID(ctx)
		if err != nil {
			return err
		}
		if err := tx.InsertCustomer(ctx, customer); err != nil {
			return err
		}

		status := seats.StatusFor()
		if status == domain.ReservationStatusReserved {
			if err := tx.IncrementSeatsSold(ctx, input.FlightInstanceID); err != nil {
				if !errors.Is(err, repository.ErrNoSeatsLeft) {
					return err
				}
				status = domain.ReservationStatusWaitlist
			}
		}

		n, err := tx.NextReservationNumber(ctx)
		if err != nil {
			return err
		}
		reservation := domain.Reservation{
			ID:               domain.ReservationID(n),
			CustomerID:       customer.ID,
			FlightInstanceID: input.FlightInstanceID,
			Status:           status,
		}
		if err := tx.InsertReservation(ctx, reservation); err != nil {
			return err
		}

		conf = Confirmation{ReservationID: reservation.ID, CustomerID: customer.ID, Status: status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &conf, nil
}

func (s *BookingService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("type", string(event.Type)).Msg("failed to publish event")
	}
}

var _ BookingUseCase = (*BookingService)(nil)
