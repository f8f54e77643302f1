package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kcmvp/orderdesk/audit"
	"github.com/kcmvp/orderdesk/dispatch"
	"github.com/kcmvp/orderdesk/internal/sandbox"
	"github.com/kcmvp/orderdesk/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const ashaJSON = `{"first_name":"Asha","last_name":"Rao","dob":"1990-05-17","city":"Pune","postal_code":"411001"}`

type ServerTestSuite struct {
	suite.Suite
	log    *audit.Log
	server *Server
}

func (s *ServerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *ServerTestSuite) SetupTest() {
	dir := s.T().TempDir()
	db := filepath.Join(dir, "desk.db")
	s.Require().NoError(sandbox.Create(context.Background(), db))
	p, err := sqlx.NewProvider(sandbox.DataSource(db), nil)
	s.Require().NoError(err)
	s.log = audit.New(filepath.Join(dir, "activity_log.txt"))
	s.server = New(dispatch.New(p, s.log, nil), nil)
}

func (s *ServerTestSuite) do(method, path, body string) (int, Reply) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.server.Handler().ServeHTTP(rec, req)
	var reply Reply
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &reply), rec.Body.String())
	return rec.Code, reply
}

func (s *ServerTestSuite) logLines() int {
	b, err := os.ReadFile(s.log.Path())
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	s.Require().NoError(err)
	return strings.Count(string(b), "\n")
}

func (s *ServerTestSuite) TestCustomerLifecycle() {
	code, reply := s.do(http.MethodPost, "/customers", ashaJSON)
	s.Require().Equal(http.StatusOK, code)
	s.Require().True(reply.OK)
	s.Require().Equal([]Dialog{{Severity: "info", Title: "Success", Message: "Customer added successfully!"}}, reply.Dialogs)
	s.Require().Equal(dispatch.CustomerColumns, reply.Columns)
	s.Require().Len(reply.Rows, 1)
	id := reply.Rows[0][0]

	code, reply = s.do(http.MethodPut, "/customers/"+id, `{"first_name":"Asha","last_name":"Rao","city":"Mumbai","postal_code":"400001"}`)
	s.Require().Equal(http.StatusOK, code)
	s.Require().Equal("Updated", reply.Dialogs[0].Title)
	s.Require().Equal("Mumbai", reply.Rows[0][5])
	s.Require().Equal("1990-05-17", reply.Rows[0][3], "date of birth is not updatable")

	code, reply = s.do(http.MethodGet, "/customers", "")
	s.Require().Equal(http.StatusOK, code)
	s.Require().Empty(reply.Dialogs)
	s.Require().Len(reply.Rows, 1)

	code, reply = s.do(http.MethodDelete, "/customers/"+id, "")
	s.Require().Equal(http.StatusOK, code)
	s.Require().Equal("Deleted", reply.Dialogs[0].Title)
	s.Require().Empty(reply.Rows)
	s.Require().Equal(4, s.logLines())
}

func (s *ServerTestSuite) TestBadInputIs400() {
	cases := []struct {
		name, method, path, body, contains string
	}{
		{"invalid json", http.MethodPost, "/customers", `{"first_name":`, "invalid JSON"},
		{"bad date", http.MethodPost, "/customers", `{"first_name":"Asha","dob":"17/05/1990"}`, "dob"},
		{"non numeric id", http.MethodDelete, "/customers/abc", "", "customer_id"},
		{"missing quantity", http.MethodPost, "/orders", `{"customer_id":1,"seller_id":1,"item":"Mouse","delivery_id":1}`, "quantity"},
		{"non numeric order", http.MethodDelete, "/orders/x", "", "order_id"},
		{"non numeric total", http.MethodGet, "/reports/customers/x/total", "", "customer_id"},
	}
	for i, tc := range cases {
		s.Run(tc.name, func() {
			code, reply := s.do(tc.method, tc.path, tc.body)
			s.Equal(http.StatusBadRequest, code)
			s.False(reply.OK)
			s.Require().Len(reply.Dialogs, 1)
			s.Equal("error", reply.Dialogs[0].Severity)
			s.Contains(reply.Dialogs[0].Message, tc.contains)
			s.Equal(i+1, s.logLines(), "a rejected request is still recorded once")
		})
	}
}

func (s *ServerTestSuite) TestProcedureErrorIs422() {
	code, reply := s.do(http.MethodDelete, "/orders/404", "")
	s.Require().Equal(http.StatusUnprocessableEntity, code)
	s.Require().Equal("Error", reply.Dialogs[0].Title)
	s.Require().Contains(reply.Dialogs[0].Message, "Order not found or already cancelled")
}

func (s *ServerTestSuite) TestOrdersAndReports() {
	_, reply := s.do(http.MethodPost, "/customers", ashaJSON)
	id := reply.Rows[0][0]

	code, reply := s.do(http.MethodPost, "/orders", `{"customer_id":`+id+`,"seller_id":2,"item":"Laptop","delivery_id":1,"quantity":1}`)
	s.Require().Equal(http.StatusOK, code)
	s.Require().Equal("Order placed successfully!", reply.Dialogs[0].Message)
	s.Require().Empty(reply.Rows)

	code, reply = s.do(http.MethodGet, "/reports/customers/"+id+"/total", "")
	s.Require().Equal(http.StatusOK, code)
	s.Require().Equal("₹55000.00", reply.Amount)
	s.Require().Equal("Customer "+id+" has spent ₹55000.00", reply.Dialogs[0].Message)

	code, reply = s.do(http.MethodGet, "/reports/orders", "")
	s.Require().Equal(http.StatusOK, code)
	s.Require().Equal(dispatch.ReportColumns, reply.Columns)
	s.Require().Len(reply.Rows, 1)
	s.Require().Equal("Metro Retail", reply.Rows[0][7])

	code, _ = s.do(http.MethodDelete, "/orders/"+reply.Rows[0][0], "")
	s.Require().Equal(http.StatusOK, code)
	_, reply = s.do(http.MethodGet, "/reports/customers/"+id+"/total", "")
	s.Require().Equal("₹0.00", reply.Amount)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

type downOpener struct{}

func (downOpener) Open(context.Context) (*sqlx.Session, error) {
	return nil, &sqlx.ConnectionError{Driver: "mysql", Err: errors.New("connection refused")}
}

func TestConnectionErrorIs502(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := audit.New(filepath.Join(t.TempDir(), "activity_log.txt"))
	srv := New(dispatch.New(downOpener{}, log, nil), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var reply Reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))
	require.Len(t, reply.Dialogs, 1)
	assert.Equal(t, "Connection Error", reply.Dialogs[0].Title)
	assert.Equal(t, "Database connection failed:\nconnection refused", reply.Dialogs[0].Message)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, status(nil))
	assert.Equal(t, http.StatusBadRequest, status(&dispatch.PreconditionError{Err: dispatch.ErrNoSelection}))
	assert.Equal(t, http.StatusUnprocessableEntity, status(&sqlx.ProcedureError{Err: errors.New("x")}))
	assert.Equal(t, http.StatusBadGateway, status(&sqlx.ConnectionError{Err: errors.New("x")}))
}
