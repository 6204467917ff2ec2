package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airops/internal/database"
	"github.com/Domenick1991/airops/internal/domain"
	"github.com/jackc/pgx/v5"
)

// MaintenanceChecks are the existence lookups shared by the early prompt checks
// and the transaction.
type MaintenanceChecks interface {
	PlaneExists(ctx context.Context, planeID string) (bool, error)
	TechnicianExists(ctx context.Context, technicianID string) (bool, error)
	PilotExists(ctx context.Context, pilotID string) (bool, error)
}

type MaintenanceTx interface {
	MaintenanceChecks
	NextRepairID(ctx context.Context) (int64, error)
	InsertRepair(ctx context.Context, r domain.Repair) error
	NextRequestID(ctx context.Context) (int64, error)
	InsertMaintenanceRequest(ctx context.Context, r domain.MaintenanceRequest) error
}

type MaintenanceRepository interface {
	MaintenanceChecks
	InTx(ctx context.Context, fn func(ctx context.Context, tx MaintenanceTx) error) error
}

type PGMaintenanceRepository struct {
	maintenanceQueries
	db *database.PostgresDB
}

func NewMaintenanceRepository(db *database.PostgresDB) MaintenanceRepository {
	return &PGMaintenanceRepository{
		maintenanceQueries: maintenanceQueries{q: db.Pool},
		db:                 db,
	}
}

func (r *PGMaintenanceRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx MaintenanceTx) error) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &maintenanceQueries{q: tx})
	})
}

type maintenanceQueries struct {
	q database.Querier
}

func (m *maintenanceQueries) exists(ctx context.Context, what, stmt, id string) (bool, error) {
	n, err := database.QueryCount(ctx, m.q, stmt, id)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", what, err)
	}
	return n > 0, nil
}

func (m *maintenanceQueries) PlaneExists(ctx context.Context, planeID string) (bool, error) {
	return m.exists(ctx, "plane", `SELECT 1 FROM Plane WHERE PlaneID = $1`, planeID)
}

func (m *maintenanceQueries) TechnicianExists(ctx context.Context, technicianID string) (bool, error) {
	return m.exists(ctx, "technician", `SELECT 1 FROM Technician WHERE TechnicianID = $1`, technicianID)
}

func (m *maintenanceQueries) PilotExists(ctx context.Context, pilotID string) (bool, error) {
	return m.exists(ctx, "pilot", `SELECT 1 FROM Pilot WHERE PilotID = $1`, pilotID)
}

func (m *maintenanceQueries) NextRepairID(ctx context.Context) (int64, error) {
	var id int64
	if err := m.q.QueryRow(ctx, `SELECT COALESCE(MAX(RepairID), 0) + 1 FROM Repair`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to get next repair id: %w", err)
	}
	return id, nil
}

func (m *maintenanceQueries) InsertRepair(ctx context.Context, r domain.Repair) error {
	_, err := database.ExecuteUpdate(ctx, m.q, `
		INSERT INTO Repair (RepairID, PlaneID, RepairCode, RepairDate, TechnicianID)
		VALUES ($1, $2, $3, $4::date, $5)`,
		r.ID, r.PlaneID, r.RepairCode, r.RepairDate, r.TechnicianID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrKeyConflict
		}
		return fmt.Errorf("failed to insert repair: %w", err)
	}
	return nil
}

func (m *maintenanceQueries) NextRequestID(ctx context.Context) (int64, error) {
	var id int64
	if err := m.q.QueryRow(ctx, `SELECT COALESCE(MAX(RequestID), 0) + 1 FROM MaintenanceRequest`).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to get next request id: %w", err)
	}
	return id, nil
}

func (m *maintenanceQueries) InsertMaintenanceRequest(ctx context.Context, r domain.MaintenanceRequest) error {
	_, err := database.ExecuteUpdate(ctx, m.q, `
		INSERT INTO MaintenanceRequest (RequestID, PlaneID, RepairCode, RequestDate, PilotID)
		VALUES ($1, $2, $3, $4::date, $5)`,
		r.ID, r.PlaneID, r.RepairCode, r.RequestDate, r.PilotID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrKeyConflict
		}
		return fmt.Errorf("failed to insert maintenance request: %w", err)
	}
	return nil
}

var (
	_ MaintenanceRepository = (*PGMaintenanceRepository)(nil)
	_ MaintenanceTx         = (*maintenanceQueries)(nil)
)
