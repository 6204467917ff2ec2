package maintenance

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
	ErrPlaneNotFound      = errors.New("plane not found")
	ErrTechnicianNotFound = errors.New("technician not found")
	ErrPilotNotFound      = errors.New("pilot not found")
	ErrKeysExhausted      = errors.New("surrogate key retries exhausted")
)

const (
	MsgPlaneNotFound      = "Error: Plane ID does not exist in the database."
	MsgTechnicianNotFound = "Error: Technician ID does not exist in the database."
	MsgPilotNotFound      = "Error: Pilot ID does not exist in the database."
	MsgKeysExhausted      = "Could not allocate a new record ID, please try again."
)

// Prompts of the repair form, in order.
var (
	RepairPlaneField = validation.Field{Prompt: "Enter Plane ID: ", EmptyMessage: "Plane ID cannot be empty, please try again and enter a valid plane ID."}
	RepairCodeField  = validation.Field{Prompt: "Enter Repair Code: ", EmptyMessage: "Repair Code cannot be empty, please try again and enter a valid repair code."}
	RepairDateField  = validation.Field{Prompt: "Enter Repair Date (YYYY-MM-DD): ", EmptyMessage: "Repair Date cannot be empty, please try again and enter a valid repair date.", Kind: validation.FieldDate}
	TechnicianField  = validation.Field{Prompt: "Enter Technician ID: ", EmptyMessage: "Technician ID cannot be empty."}
)

// Prompts of the maintenance request form, in order.
var (
	RequestPlaneField = RepairPlaneField
	RequestCodeField  = validation.Field{Prompt: "Enter a repair code: ", EmptyMessage: "Repair code cannot be empty, please try again and enter a valid repair code."}
	RequestDateField  = validation.Field{Prompt: "Enter request date (YYYY-MM-DD): ", EmptyMessage: "Request date cannot be empty, please try again and enter a valid request date.", Kind: validation.FieldDate}
	PilotField        = validation.Field{Prompt: "Enter Pilot ID: ", EmptyMessage: "Pilot ID cannot be empty, please try again and enter a valid pilot ID."}
)

type RepairInput struct {
	PlaneID      string
	RepairCode   string
	RepairDate   string
	TechnicianID string
}

type RequestInput struct {
	PlaneID     string
	RepairCode  string
	RequestDate string
	PilotID     string
}

type MaintenanceUseCase interface {
	CheckPlane(ctx context.Context, planeID string) error
	CheckTechnician(ctx context.Context, technicianID string) error
	CheckPilot(ctx context.Context, pilotID string) error
	LogRepair(ctx context.Context, input RepairInput) (*domain.Repair, error)
	LogMaintenanceRequest(ctx context.Context, input RequestInput) (*domain.MaintenanceRequest, error)
}

type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type MaintenanceService struct {
	repo          repository.MaintenanceRepository
	cache         reports.Cache
	publisher     Publisher
	retryAttempts int
}

type MaintenanceServiceOption func(*MaintenanceService)

func WithCache(cache reports.Cache) MaintenanceServiceOption {
	return func(s *MaintenanceService) { s.cache = cache }
}

func WithPublisher(publisher Publisher) MaintenanceServiceOption {
	return func(s *MaintenanceService) { s.publisher = publisher }
}

func WithRetryAttempts(n int) MaintenanceServiceOption {
	return func(s *MaintenanceService) {
		if n > 0 {
			s.retryAttempts = n
		}
	}
}

func NewMaintenanceService(repo repository.MaintenanceRepository, opts ...MaintenanceServiceOption) *MaintenanceService {
	s := &MaintenanceService{repo: repo, retryAttempts: 3}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MaintenanceService) CheckPlane(ctx context.Context, planeID string) error {
	return checkPlane(ctx, s.repo, planeID)
}

func (s *MaintenanceService) CheckTechnician(ctx context.Context, technicianID string) error {
	return checkTechnician(ctx, s.repo, technicianID)
}

func (s *MaintenanceService) CheckPilot(ctx context.Context, pilotID string) error {
	return checkPilot(ctx, s.repo, pilotID)
}

// LogRepair records a repair. Plane and technician are checked again inside
// the inserting transaction.
func (s *MaintenanceService) LogRepair(ctx context.Context, input RepairInput) (*domain.Repair, error) {
	repair, err := parseRepair(input)
	if err != nil {
		return nil, err
	}

	err = s.withRetry(ctx, func(ctx context.Context, tx repository.MaintenanceTx) error {
		if err := checkPlane(ctx, tx, repair.PlaneID); err != nil {
			return err
		}
		if err := checkTechnician(ctx, tx, repair.TechnicianID); err != nil {
			return err
		}
		id, err := tx.NextRepairID(ctx)
		if err != nil {
			return err
		}
		repair.ID = id
		return tx.InsertRepair(ctx, repair)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("repair_id", repair.ID).Str("plane_id", repair.PlaneID).Msg("repair logged")
	reports.Invalidate(ctx, s.cache)
	s.publish(ctx, domain.NewEvent(domain.EventRepairLogged, repair.PlaneID, map[string]string{
		"repair_id":     strconv.FormatInt(repair.ID, 10),
		"repair_code":   repair.RepairCode,
		"repair_date":   repair.RepairDate,
		"technician_id": repair.TechnicianID,
	}))
	return &repair, nil
}

// LogMaintenanceRequest records a pilot's request. Plane and pilot are
// checked again inside the inserting transaction.
func (s *MaintenanceService) LogMaintenanceRequest(ctx context.Context, input RequestInput) (*domain.MaintenanceRequest, error) {
	req, err := parseRequest(input)
	if err != nil {
		return nil, err
	}

	err = s.withRetry(ctx, func(ctx context.Context, tx repository.MaintenanceTx) error {
		if err := checkPlane(ctx, tx, req.PlaneID); err != nil {
			return err
		}
		if err := checkPilot(ctx, tx, req.PilotID); err != nil {
			return err
		}
		id, err := tx.NextRequestID(ctx)
		if err != nil {
			return err
		}
		req.ID = id
		return tx.InsertMaintenanceRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("request_id", req.ID).Str("plane_id", req.PlaneID).Msg("maintenance request logged")
	reports.Invalidate(ctx, s.cache)
	s.publish(ctx, domain.NewEvent(domain.EventMaintenanceRequested, req.PlaneID, map[string]string{
		"request_id":   strconv.FormatInt(req.ID, 10),
		"repair_code":  req.RepairCode,
		"request_date": req.RequestDate,
		"pilot_id":     req.PilotID,
	}))
	return &req, nil
}

func RepairLoggedMessage(r *domain.Repair) string {
	return fmt.Sprintf("Repair on plane %s was logged with RepairID %d on %s.", r.PlaneID, r.ID, r.RepairDate)
}

func RequestLoggedMessage(r *domain.MaintenanceRequest) string {
	return fmt.Sprintf("Maintenance request on plane %s with request code %s on %s was logged.", r.PlaneID, r.RepairCode, r.RequestDate)
}

func (s *MaintenanceService) withRetry(ctx context.Context, fn func(ctx context.Context, tx repository.MaintenanceTx) error) error {
	var err error
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		err = s.repo.InTx(ctx, fn)
		if !errors.Is(err, repository.ErrKeyConflict) {
			return err
		}
		logger.Warn().Int("attempt", attempt).Msg("key conflict while logging maintenance, retrying")
	}
	return apperrors.NewConflictError(MsgKeysExhausted, errors.Join(ErrKeysExhausted, err))
}

func (s *MaintenanceService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn().Err(err).Str("type", string(event.Type)).Msg("failed to publish event")
	}
}

func parseRepair(in RepairInput) (domain.Repair, error) {
	var r domain.Repair
	var err error
	if r.PlaneID, err = RepairPlaneField.Arg(in.PlaneID); err != nil {
		return r, err
	}
	if r.RepairCode, err = RepairCodeField.Arg(in.RepairCode); err != nil {
		return r, err
	}
	if r.RepairDate, err = RepairDateField.Arg(in.RepairDate); err != nil {
		return r, err
	}
	if r.TechnicianID, err = TechnicianField.Arg(in.TechnicianID); err != nil {
		return r, err
	}
	return r, nil
}

func parseRequest(in RequestInput) (domain.MaintenanceRequest, error) {
	var r domain.MaintenanceRequest
	var err error
	if r.PlaneID, err = RequestPlaneField.Arg(in.PlaneID); err != nil {
		return r, err
	}
	if r.RepairCode, err = RequestCodeField.Arg(in.RepairCode); err != nil {
		return r, err
	}
	if r.RequestDate, err = RequestDateField.Arg(in.RequestDate); err != nil {
		return r, err
	}
	if r.PilotID, err = PilotField.Arg(in.PilotID); err != nil {
		return r, err
	}
	return r, nil
}

func checkPlane(ctx context.Context, c repository.MaintenanceChecks, planeID string) error {
	ok, err := c.PlaneExists(ctx, planeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError(MsgPlaneNotFound, ErrPlaneNotFound)
	}
	return nil
}

func checkTechnician(ctx context.Context, c repository.MaintenanceChecks, technicianID string) error {
	ok, err := c.TechnicianExists(ctx, technicianID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError(MsgTechnicianNotFound, ErrTechnicianNotFound)
	}
	return nil
}

func checkPilot(ctx context.Context, c repository.MaintenanceChecks, pilotID string) error {
	ok, err := c.PilotExists(ctx, pilotID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewNotFoundError(MsgPilotNotFound, ErrPilotNotFound)
	}
	return nil
}

var _ MaintenanceUseCase = (*MaintenanceService)(nil)
