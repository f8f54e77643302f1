package sqlx

import (
	"testing"

	"github.com/kcmvp/orderdesk/app"
	"github.com/stretchr/testify/require"
)

var (
	listRoutine   = Routine{Name: "ReadAllCustomers", Kind: Rows}
	createRoutine = Routine{Name: "CreateCustomer", Kind: Write, Arity: 5}
	totalRoutine  = Routine{Name: "GetCustomerTotalSpent", Kind: Scalar, Arity: 1}
)

func TestDialect_Statements(t *testing.T) {
	tests := []struct {
		driver string
		r      Routine
		want   string
	}{
		{"mysql", listRoutine, "CALL ReadAllCustomers()"},
		{"mysql", createRoutine, "CALL CreateCustomer(?, ?, ?, ?, ?)"},
		{"mysql", totalRoutine, "SELECT GetCustomerTotalSpent(?)"},
		{"postgres", listRoutine, `SELECT * FROM "readallcustomers"()`},
		{"postgres", createRoutine, `CALL "createcustomer"($1, $2, $3, $4, $5)`},
		{"postgres", totalRoutine, `SELECT "getcustomertotalspent"($1)`},
	}
	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.r.Name, func(t *testing.T) {
			d, err := NewDialect(app.DataSource{Driver: tt.driver})
			require.NoError(t, err)
			require.Equal(t, tt.driver, d.Name())
			got, err := d.Statement(tt.r)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_SqliteNeedsConfiguredRoutines(t *testing.T) {
	d, err := NewDialect(app.DataSource{Driver: "sqlite3"})
	require.NoError(t, err)
	_, err = d.Statement(listRoutine)
	require.Error(t, err)

	d, err = NewDialect(app.DataSource{Driver: "sqlite3", Routines: map[string]string{
		"readallcustomers": "  SELECT * FROM customers\n",
	}})
	require.NoError(t, err)
	got, err := d.Statement(listRoutine)
	require.NoError(t, err)
	require.Equal(t, "SELECT * FROM customers", got)
	_, err = d.Statement(createRoutine)
	require.Error(t, err)
}

func TestDialect_OverrideFallsBackToBase(t *testing.T) {
	d, err := NewDialect(app.DataSource{Driver: "mysql", Routines: map[string]string{
		"getcustomertotalspent": "SELECT legacy_total(?)",
	}})
	require.NoError(t, err)
	got, err := d.Statement(totalRoutine)
	require.NoError(t, err)
	require.Equal(t, "SELECT legacy_total(?)", got)

	got, err = d.Statement(listRoutine)
	require.NoError(t, err)
	require.Equal(t, "CALL ReadAllCustomers()", got)
}
