package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	a := m.Called(ctx, sql, args)
	return a.Get(0).(pgconn.CommandTag), a.Error(1)
}

func (m *MockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	a := m.Called(ctx, sql, args)
	if a.Get(0) == nil {
		return nil, a.Error(1)
	}
	return a.Get(0).(pgx.Rows), a.Error(1)
}

func (m *MockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	a := m.Called(ctx, sql, args)
	return a.Get(0).(pgx.Row)
}

// fakeRows replays fixed raw text values.
type fakeRows struct {
	columns []string
	data    [][][]byte
	pos     int
	err     error
	closed  bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(dest ...any) error  { return errors.New("not supported") }
func (r *fakeRows) Values() ([]any, error)  { return nil, errors.New("not supported") }
func (r *fakeRows) RawValues() [][]byte     { return r.data[r.pos-1] }
func (r *fakeRows) Conn() *pgx.Conn         { return nil }

func TestQueryRows_TextValuesAndNulls(t *testing.T) {
	q := &MockQuerier{}
	ctx := context.Background()
	rows := &fakeRows{
		columns: []string{"dayofweek", "departuretime"},
		data: [][][]byte{
			{[]byte("Monday"), []byte("08:00:00")},
			{[]byte("Tuesday"), nil},
		},
	}
	q.On("Query", ctx, "SELECT 1", []any{pgx.QueryResultFormats{pgx.TextFormatCode}, "AA100"}).Return(rows, nil).Once()

	res, err := QueryRows(ctx, q, "SELECT 1", "AA100")

	require.NoError(t, err)
	assert.Equal(t, []string{"dayofweek", "departuretime"}, res.Columns)
	assert.Equal(t, [][]string{{"Monday", "08:00:00"}, {"Tuesday", NullText}}, res.Rows)
	assert.False(t, res.Empty())
	assert.True(t, rows.closed)
	q.AssertExpectations(t)
}

func TestQueryRows_QueryError(t *testing.T) {
	q := &MockQuerier{}
	ctx := context.Background()
	q.On("Query", ctx, "SELECT 1", mock.Anything).Return(nil, errors.New("conn reset")).Once()

	res, err := QueryRows(ctx, q, "SELECT 1")

	assert.Nil(t, res)
	assert.ErrorContains(t, err, "conn reset")
}

func TestQueryRows_RowsError(t *testing.T) {
	q := &MockQuerier{}
	ctx := context.Background()
	q.On("Query", ctx, "SELECT 1", mock.Anything).Return(&fakeRows{err: errors.New("broken")}, nil).Once()

	_, err := QueryRows(ctx, q, "SELECT 1")
	assert.ErrorContains(t, err, "broken")
}

func TestQueryCount(t *testing.T) {
	q := &MockQuerier{}
	ctx := context.Background()
	rows := &fakeRows{columns: []string{"?column?"}, data: [][][]byte{{[]byte("1")}, {[]byte("1")}}}
	q.On("Query", ctx, "SELECT 1 FROM Plane WHERE PlaneID = $1", []any{"P1"}).Return(rows, nil).Once()

	n, err := QueryCount(ctx, q, "SELECT 1 FROM Plane WHERE PlaneID = $1", "P1")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExecuteUpdate(t *testing.T) {
	q := &MockQuerier{}
	ctx := context.Background()
	q.On("Exec", ctx, "UPDATE x", []any{1}).Return(pgconn.NewCommandTag("UPDATE 1"), nil).Once()
	q.On("Exec", ctx, "UPDATE y", []any(nil)).Return(pgconn.CommandTag{}, errors.New("deadlock")).Once()

	n, err := ExecuteUpdate(ctx, q, "UPDATE x", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = ExecuteUpdate(ctx, q, "UPDATE y")
	assert.ErrorContains(t, err, "deadlock")
}

func TestResult_EmptyNil(t *testing.T) {
	var r *Result
	assert.True(t, r.Empty())
	assert.True(t, (&Result{Columns: []string{"a"}}).Empty())
}
