package sqlx

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kcmvp/orderdesk/app"
	"github.com/kcmvp/orderdesk/internal/sandbox"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

var (
	updateRoutine = Routine{Name: "UpdateCustomer", Kind: Write, Arity: 5}
	cancelRoutine = Routine{Name: "CancelOrder", Kind: Write, Arity: 1}
)

type SessionTestSuite struct {
	suite.Suite
	provider *Provider
}

func (s *SessionTestSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "desk.db")
	s.Require().NoError(sandbox.Create(context.Background(), path))
	p, err := NewProvider(sandbox.DataSource(path), zap.NewNop())
	s.Require().NoError(err)
	s.provider = p
}

func (s *SessionTestSuite) open() *Session {
	session, err := s.provider.Open(context.Background())
	s.Require().NoError(err)
	return session
}

func (s *SessionTestSuite) countCustomers() int {
	session := s.open()
	defer func() { _ = session.Close() }()
	rs, err := session.Query(context.Background(), listRoutine)
	s.Require().NoError(err)
	return len(rs.Rows)
}

func (s *SessionTestSuite) TestCommitPersists() {
	ctx := context.Background()
	session := s.open()
	s.Require().NoError(session.Exec(ctx, createRoutine, "Asha", "Rao", "1990-05-17", "Pune", "411001"))
	s.Require().NoError(session.Commit())

	rs, err := session.Query(ctx, listRoutine)
	s.Require().NoError(err)
	s.Require().Len(rs.Rows, 1)
	s.Require().Equal([]string{"cid", "fname", "lname", "dob", "age", "city", "pincode"}, rs.Columns)
	s.Require().Equal(Row{"1", "Asha", "Rao", "1990-05-17"}, rs.Rows[0][:4])
	s.Require().Equal(Row{"Pune", "411001"}, rs.Rows[0][5:])
	s.Require().NoError(session.Close())

	s.Require().Equal(1, s.countCustomers())
}

func (s *SessionTestSuite) TestCloseRollsBackUncommitted() {
	session := s.open()
	s.Require().NoError(session.Exec(context.Background(), createRoutine, "Asha", "Rao", "1990-05-17", "Pune", "411001"))
	s.Require().NoError(session.Close())
	s.Require().NoError(session.Close(), "Close must be idempotent")

	s.Require().Zero(s.countCustomers())
}

func (s *SessionTestSuite) TestCallsAfterCloseFail() {
	session := s.open()
	s.Require().NoError(session.Close())
	_, err := session.Query(context.Background(), listRoutine)
	s.Require().ErrorIs(err, ErrSessionClosed)
	s.Require().ErrorIs(session.Commit(), ErrSessionClosed)
}

func (s *SessionTestSuite) TestProcedureErrorCarriesRawMessage() {
	session := s.open()
	defer func() { _ = session.Close() }()

	err := session.Exec(context.Background(), cancelRoutine, 999)
	var pe *ProcedureError
	s.Require().True(errors.As(err, &pe))
	s.Require().Equal("CancelOrder", pe.Routine)
	s.Require().Contains(pe.Error(), "Order not found")
}

func (s *SessionTestSuite) TestArityAndKindAreChecked() {
	session := s.open()
	defer func() { _ = session.Close() }()
	ctx := context.Background()

	s.Require().Error(session.Exec(ctx, updateRoutine, 1))
	_, err := session.Query(ctx, createRoutine, "a", "b", "c", "d", "e")
	s.Require().Error(err)
}

func (s *SessionTestSuite) TestScalar() {
	ctx := context.Background()
	session := s.open()
	defer func() { _ = session.Close() }()

	v, err := session.Scalar(ctx, totalRoutine, 1)
	s.Require().NoError(err)
	s.Require().True(v.Valid)
	s.Require().Equal("0", v.String)
}

func (s *SessionTestSuite) TestSessionsAreNotShared() {
	a := s.open()
	b := s.open()
	defer func() { _ = a.Close(); _ = b.Close() }()
	s.Require().NotSame(a.raw, b.raw)
	s.Require().Equal(1, a.raw.Stats().MaxOpenConnections)
}

func TestSessionTestSuite(t *testing.T) {
	defer goleak.VerifyNone(t)
	suite.Run(t, new(SessionTestSuite))
}

func TestOpen_Unreachable(t *testing.T) {
	p, err := NewProvider(app.DataSource{Driver: "mysql", Host: "127.0.0.1:1", User: "u"}, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = p.Open(ctx)
	var ce *ConnectionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, "mysql", ce.Driver)
}

func TestOpen_InvalidDSN(t *testing.T) {
	p, err := NewProvider(app.DataSource{Driver: "postgres"}, nil)
	require.NoError(t, err)
	_, err = p.Open(context.Background())
	var ce *ConnectionError
	require.True(t, errors.As(err, &ce))
	require.ErrorContains(t, err, "dsn requires url")
}

func TestCell(t *testing.T) {
	require.Equal(t, "", Cell(nil))
	require.Equal(t, "abc", Cell([]byte("abc")))
	require.Equal(t, "42", Cell(int64(42)))
	require.Equal(t, "499.5", Cell(499.5))
	require.Equal(t, "true", Cell(true))
	require.Equal(t, "2000-01-02", Cell(time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "2000-01-02 03:04:05", Cell(time.Date(2000, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestWrapProc(t *testing.T) {
	r := Routine{Name: "GetCustomerTotalSpent", Kind: Scalar, Arity: 1}
	require.NoError(t, wrapProc(r, nil))

	err := wrapProc(r, errors.New("interrupted"))
	var pe *ProcedureError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "GetCustomerTotalSpent", pe.Routine)
	require.EqualError(t, err, "interrupted")

	already := &ProcedureError{Routine: "CancelOrder", Err: errors.New("x")}
	require.Same(t, already, wrapProc(r, already))
}
