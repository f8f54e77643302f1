package form

import (
	"errors"
	"testing"
	"time"

	"github.com/kcmvp/orderdesk/sqlx"
	"github.com/stretchr/testify/require"
)

func TestBindCustomer(t *testing.T) {
	res := BindCustomer(Values{
		FirstName:   " Asha ",
		LastName:    "Rao",
		DateOfBirth: "1990-05-17",
		City:        "Pune",
		PostalCode:  "411001",
	}, true)
	require.True(t, res.IsOk())
	c := res.MustGet()
	require.Equal(t, " Asha ", c.FirstName)
	require.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), c.DateOfBirth)
	require.Equal(t, "1990-05-17", c.DOB())
}

func TestBindCustomer_EmptyTextIsPassedThrough(t *testing.T) {
	res := BindCustomer(Values{}, false)
	require.True(t, res.IsOk())
	require.Equal(t, Customer{}, res.MustGet())
}

func TestBindCustomer_TextIsNotTrimmed(t *testing.T) {
	c := BindCustomer(Values{FirstName: "  Asha ", City: " ", DateOfBirth: " 1990-05-17 "}, true).MustGet()
	require.Equal(t, "  Asha ", c.FirstName)
	require.Equal(t, " ", c.City)
	require.Equal(t, "1990-05-17", c.DOB())
}

func TestBindCustomer_BadDate(t *testing.T) {
	res := BindCustomer(Values{DateOfBirth: "17/05/1990"}, true)
	require.True(t, res.IsError())
	require.ErrorIs(t, res.Error(), ErrTypeMismatch)

	res = BindCustomer(Values{}, true)
	require.ErrorIs(t, res.Error(), ErrRequired)
}

func TestBindOrder(t *testing.T) {
	tests := []struct {
		name    string
		in      Values
		want    Order
		fields  []string
		wantErr error
	}{
		{
			name: "all fields",
			in:   Values{CustomerID: "1", SellerID: "2", Item: "Laptop", DeliveryID: "1", Quantity: "3"},
			want: Order{CustomerID: 1, SellerID: 2, Item: "Laptop", DeliveryID: 1, Quantity: 3},
		},
		{
			name:    "quantity not a number",
			in:      Values{CustomerID: "1", SellerID: "2", Item: "Laptop", DeliveryID: "1", Quantity: "three"},
			fields:  []string{Quantity},
			wantErr: ErrTypeMismatch,
		},
		{
			name:    "ids missing",
			in:      Values{Item: "Laptop", Quantity: "1"},
			fields:  []string{CustomerID, SellerID, DeliveryID},
			wantErr: ErrRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := BindOrder(tt.in)
			if tt.wantErr == nil {
				require.True(t, res.IsOk())
				require.Equal(t, tt.want, res.MustGet())
				return
			}
			require.ErrorIs(t, res.Error(), tt.wantErr)
			var ie *InputError
			require.True(t, errors.As(res.Error(), &ie))
			require.Equal(t, tt.fields, ie.Fields())
		})
	}
}

func TestBindCancelAndTotal(t *testing.T) {
	require.Equal(t, int64(7), BindCancel(Values{OrderID: "7"}).MustGet().OrderID)
	require.True(t, BindCancel(Values{OrderID: "7; DROP TABLE orders"}).IsError())
	require.Equal(t, int64(3), BindTotal(Values{CustomerID: "3"}).MustGet().CustomerID)
	require.ErrorContains(t, BindTotal(Values{}).Error(), "customer_id is required")
}

func TestSelection(t *testing.T) {
	_, ok := None().ID()
	require.False(t, ok)
	_, ok = Select(nil).ID()
	require.False(t, ok)
	_, ok = Select(sqlx.Row{" "}).ID()
	require.False(t, ok)

	id, ok := Select(sqlx.Row{"12", "Asha"}).ID()
	require.True(t, ok)
	require.Equal(t, "12", id)
}

func TestBindSelection(t *testing.T) {
	id, ok := BindSelection(Values{CustomerID: " 12 "}).MustGet().ID()
	require.True(t, ok)
	require.Equal(t, "12", id)
	require.ErrorIs(t, BindSelection(Values{CustomerID: "twelve"}).Error(), ErrTypeMismatch)
	require.ErrorIs(t, BindSelection(Values{}).Error(), ErrRequired)
}
