package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airops/internal/apperrors"
	"github.com/Domenick1991/airops/internal/domain"
	"github.com/Domenick1991/airops/internal/repository"
	"github.com/Domenick1991/airops/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMaintenanceTx struct {
	mock.Mock
}

func (m *MockMaintenanceTx) PlaneExists(ctx context.Context, planeID string) (bool, error) {
	args := m.Called(planeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMaintenanceTx) TechnicianExists(ctx context.Context, technicianID string) (bool, error) {
	args := m.Called(technicianID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMaintenanceTx) PilotExists(ctx context.Context, pilotID string) (bool, error) {
	args := m.Called(pilotID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMaintenanceTx) NextRepairID(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceTx) InsertRepair(ctx context.Context, r domain.Repair) error {
	return m.Called(r).Error(0)
}

func (m *MockMaintenanceTx) NextRequestID(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceTx) InsertMaintenanceRequest(ctx context.Context, r domain.MaintenanceRequest) error {
	return m.Called(r).Error(0)
}

// MockMaintenanceRepository runs every transaction against the same tx mock.
type MockMaintenanceRepository struct {
	MockMaintenanceTx
	tx      *MockMaintenanceTx
	txCount int
}

func newRepo() *MockMaintenanceRepository {
	return &MockMaintenanceRepository{tx: &MockMaintenanceTx{}}
}

func (m *MockMaintenanceRepository) InTx(ctx context.Context, fn func(ctx context.Context, tx repository.MaintenanceTx) error) error {
	m.txCount++
	return fn(ctx, m.tx)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

func TestMaintenanceService_CheckPlane(t *testing.T) {
	repo := newRepo()
	repo.On("PlaneExists", "P1").Return(true, nil).Once()
	repo.On("PlaneExists", "X1").Return(false, nil).Once()
	repo.On("PlaneExists", "P2").Return(false, errors.New("conn reset")).Once()
	service := NewMaintenanceService(repo)
	ctx := context.Background()

	assert.NoError(t, service.CheckPlane(ctx, "P1"))

	err := service.CheckPlane(ctx, "X1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, err, ErrPlaneNotFound)
	assert.EqualError(t, err, MsgPlaneNotFound)

	err = service.CheckPlane(ctx, "P2")
	_, ok := apperrors.UserMessage(err)
	assert.False(t, ok)
}

func TestMaintenanceService_CheckTechnicianAndPilot(t *testing.T) {
	repo := newRepo()
	repo.On("TechnicianExists", "T9").Return(false, nil).Once()
	repo.On("PilotExists", "PL9").Return(false, nil).Once()
	service := NewMaintenanceService(repo)

	assert.EqualError(t, service.CheckTechnician(context.Background(), "T9"), MsgTechnicianNotFound)
	assert.EqualError(t, service.CheckPilot(context.Background(), "PL9"), MsgPilotNotFound)
}

func TestMaintenanceService_LogRepair_Success(t *testing.T) {
	repo := newRepo()
	pub := &MockPublisher{}
	service := NewMaintenanceService(repo, WithPublisher(pub))

	want := domain.Repair{ID: 12, PlaneID: "P1", RepairCode: "RC1", RepairDate: "2024-03-01", TechnicianID: "T1"}
	repo.tx.On("PlaneExists", "P1").Return(true, nil).Once()
	repo.tx.On("TechnicianExists", "T1").Return(true, nil).Once()
	repo.tx.On("NextRepairID").Return(int64(12), nil).Once()
	repo.tx.On("InsertRepair", want).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventRepairLogged && e.Subject == "P1" && e.Attributes["repair_id"] == "12"
	})).Return(nil).Once()

	got, err := service.LogRepair(context.Background(), RepairInput{
		PlaneID: " P1 ", RepairCode: "RC1", RepairDate: "2024-03-01", TechnicianID: "T1",
	})

	require.NoError(t, err)
	assert.Equal(t, &want, got)
	assert.Equal(t, "Repair on plane P1 was logged with RepairID 12 on 2024-03-01.", RepairLoggedMessage(got))
	repo.tx.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestMaintenanceService_LogRepair_UnknownPlane(t *testing.T) {
	repo := newRepo()
	service := NewMaintenanceService(repo)
	repo.tx.On("PlaneExists", "X1").Return(false, nil).Once()

	_, err := service.LogRepair(context.Background(), RepairInput{
		PlaneID: "X1", RepairCode: "RC1", RepairDate: "2024-03-01", TechnicianID: "T1",
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualError(t, err, MsgPlaneNotFound)
	repo.tx.AssertNotCalled(t, "InsertRepair", mock.Anything)
	repo.tx.AssertNotCalled(t, "TechnicianExists", mock.Anything)
}

func TestMaintenanceService_LogRepair_UnknownTechnician(t *testing.T) {
	repo := newRepo()
	service := NewMaintenanceService(repo)
	repo.tx.On("PlaneExists", "P1").Return(true, nil).Once()
	repo.tx.On("TechnicianExists", "T404").Return(false, nil).Once()

	_, err := service.LogRepair(context.Background(), RepairInput{
		PlaneID: "P1", RepairCode: "RC1", RepairDate: "2024-03-01", TechnicianID: "T404",
	})

	assert.ErrorIs(t, err, ErrTechnicianNotFound)
	repo.tx.AssertNotCalled(t, "InsertRepair", mock.Anything)
}

func TestMaintenanceService_LogRepair_BadDate(t *testing.T) {
	repo := newRepo()
	service := NewMaintenanceService(repo)

	_, err := service.LogRepair(context.Background(), RepairInput{
		PlaneID: "P1", RepairCode: "RC1", RepairDate: "2024-13-45", TechnicianID: "T1",
	})

	assert.EqualError(t, err, validation.DateFormatMessage)
	assert.Equal(t, 0, repo.txCount)
}

func TestMaintenanceService_LogRepair_RetriesKeyConflict(t *testing.T) {
	repo := newRepo()
	service := NewMaintenanceService(repo, WithRetryAttempts(2))

	repo.tx.On("PlaneExists", "P1").Return(true, nil)
	repo.tx.On("TechnicianExists", "T1").Return(true, nil)
	repo.tx.On("NextRepairID").Return(int64(5), nil).Once()
	repo.tx.On("NextRepairID").Return(int64(6), nil).Once()
	repo.tx.On("InsertRepair", mock.MatchedBy(func(r domain.Repair) bool { return r.ID == 5 })).Return(repository.ErrKeyConflict).Once()
	repo.tx.On("InsertRepair", mock.MatchedBy(func(r domain.Repair) bool { return r.ID == 6 })).Return(nil).Once()

	got, err := service.LogRepair(context.Background(), RepairInput{
		PlaneID: "P1", RepairCode: "RC1", RepairDate: "2024-03-01", TechnicianID: "T1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), got.ID)
	assert.Equal(t, 2, repo.txCount)
}

func TestMaintenanceService_LogRepair_RetriesExhausted(t *testing.T) {
	repo := newRepo()
	service := NewMaintenanceService(repo, WithRetryAttempts(2))

	repo.tx.On("PlaneExists", "P1").Return(true, nil)
	repo.tx.On("TechnicianExists", "T1").Return(true, nil)
	repo.tx.On("NextRepairID").Return(int64(5), nil)
	repo.tx.On("InsertRepair", mock.Anything).Return(repository.ErrKeyConflict)

	_, err := service.LogRepair(context.Background(), RepairInput{
		PlaneID: "P1", RepairCode: "RC1", RepairDate: "2024-03-01", TechnicianID: "T1",
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.ErrorIs(t, err, ErrKeysExhausted)
	assert.Equal(t, 2, repo.txCount)
}

func TestMaintenanceService_LogMaintenanceRequest(t *testing.T) {
	repo := newRepo()
	service := NewMaintenanceService(repo)

	want := domain.MaintenanceRequest{ID: 3, PlaneID: "P1", RepairCode: "RC7", RequestDate: "2024-04-02", PilotID: "PL1"}
	repo.tx.On("PlaneExists", "P1").Return(true, nil).Once()
	repo.tx.On("PilotExists", "PL1").Return(true, nil).Once()
	repo.tx.On("NextRequestID").Return(int64(3), nil).Once()
	repo.tx.On("InsertMaintenanceRequest", want).Return(nil).Once()

	got, err := service.LogMaintenanceRequest(context.Background(), RequestInput{
		PlaneID: "P1", RepairCode: "RC7", RequestDate: "2024-04-02", PilotID: "PL1",
	})

	require.NoError(t, err)
	assert.Equal(t, &want, got)
	assert.Equal(t, "Maintenance request on plane P1 with request code RC7 on 2024-04-02 was logged.", RequestLoggedMessage(got))
	repo.tx.AssertExpectations(t)
}

func TestMaintenanceService_LogMaintenanceRequest_UnknownPilot(t *testing.T) {
	repo := newRepo()
	service := NewMaintenanceService(repo)
	repo.tx.On("PlaneExists", "P1").Return(true, nil).Once()
	repo.tx.On("PilotExists", "PL404").Return(false, nil).Once()

	_, err := service.LogMaintenanceRequest(context.Background(), RequestInput{
		PlaneID: "P1", RepairCode: "RC7", RequestDate: "2024-04-02", PilotID: "PL404",
	})

	assert.EqualError(t, err, MsgPilotNotFound)
	repo.tx.AssertNotCalled(t, "InsertMaintenanceRequest", mock.Anything)
}
