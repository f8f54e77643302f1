// Package form holds the per-panel view models and binds raw text inputs to them.
//
// Binding only converts types. Business rules (required names, postcode shape, age) belong
// to the database routines and are never checked here.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kcmvp/orderdesk/sqlx"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Field names shared by every surface (TUI inputs, CLI flags, JSON bodies).
const (
	FirstName   = "first_name"
	LastName    = "last_name"
	DateOfBirth = "dob"
	City        = "city"
	PostalCode  = "postal_code"
	CustomerID  = "customer_id"
	SellerID    = "seller_id"
	Item        = "item"
	DeliveryID  = "delivery_id"
	Quantity    = "quantity"
	OrderID     = "order_id"
)

var (
	ErrRequired     = errors.New("is required but not found")
	ErrTypeMismatch = errors.New("type mismatch")
)

// Values are raw text inputs keyed by field name.
type Values map[string]string

// InputError lists every field that could not be converted, in field order.
type InputError struct {
	fields []string
	errs   map[string]error
}

func (e *InputError) add(name string, err error) {
	if err == nil {
		return
	}
	if e.errs == nil {
		e.errs = make(map[string]error)
	}
	if _, ok := e.errs[name]; !ok {
		e.fields = append(e.fields, name)
	}
	e.errs[name] = err
}

// Err returns e as an error if it holds any field error.
func (e *InputError) Err() error {
	if e == nil || len(e.errs) == 0 {
		return nil
	}
	return e
}

func (e *InputError) Error() string {
	return strings.Join(lo.Map(e.fields, func(name string, _ int) string {
		return e.errs[name].Error()
	}), "; ")
}

// Fields returns the names of the fields that failed.
func (e *InputError) Fields() []string { return append([]string{}, e.fields...) }

// Unwrap exposes the per-field errors to errors.Is.
func (e *InputError) Unwrap() []error {
	return lo.Map(e.fields, func(name string, _ int) error { return e.errs[name] })
}

type field[T any] struct {
	name     string
	required bool
	parse    func(string) (T, error)
}

// Get converts the named value. A missing optional field yields the zero value. Text is
// passed through untouched; only parsed fields ignore surrounding blanks.
func (f field[T]) Get(v Values) mo.Result[T] {
	raw, ok := v[f.name]
	if !ok || raw == "" || (f.required && strings.TrimSpace(raw) == "") {
		if f.required {
			return mo.Err[T](fmt.Errorf("%s %w", f.name, ErrRequired))
		}
		return mo.Ok(*new(T))
	}
	val, err := f.parse(raw)
	if err != nil {
		return mo.Err[T](fmt.Errorf("field '%s': %w: %q", f.name, ErrTypeMismatch, raw))
	}
	return mo.Ok(val)
}

func text(name string) field[string] {
	return field[string]{name: name, parse: func(s string) (string, error) { return s, nil }}
}

func integer(name string) field[int64] {
	return field[int64]{name: name, required: true, parse: func(s string) (int64, error) {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}}
}

func date(name string) field[time.Time] {
	return field[time.Time]{name: name, required: true, parse: func(s string) (time.Time, error) {
		return time.Parse(time.DateOnly, strings.TrimSpace(s))
	}}
}

func collect[T any](errs *InputError, f field[T], v Values) T {
	res := f.Get(v)
	errs.add(f.name, res.Error())
	return res.OrEmpty()
}

// Customer is the customer panel's input fields.
type Customer struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	City        string
	PostalCode  string
}

// DOB renders DateOfBirth the way routines receive it.
func (c Customer) DOB() string { return c.DateOfBirth.Format(time.DateOnly) }

// Order is the place-order fields of the orders panel.
type Order struct {
	CustomerID int64
	SellerID   int64
	Item       string
	DeliveryID int64
	Quantity   int64
}

// Cancel is the cancel-order field of the orders panel.
type Cancel struct {
	OrderID int64
}

// Total is the customer id field of the reports panel.
type Total struct {
	CustomerID int64
}

// BindCustomer binds the fields used by create. Update ignores DateOfBirth, so it may be
// omitted when withDOB is false.
func BindCustomer(v Values, withDOB bool) mo.Result[Customer] {
	errs := &InputError{}
	c := Customer{
		FirstName:  collect(errs, text(FirstName), v),
		LastName:   collect(errs, text(LastName), v),
		City:       collect(errs, text(City), v),
		PostalCode: collect(errs, text(PostalCode), v),
	}
	if withDOB {
		c.DateOfBirth = collect(errs, date(DateOfBirth), v)
	}
	if err := errs.Err(); err != nil {
		return mo.Err[Customer](err)
	}
	return mo.Ok(c)
}

func BindOrder(v Values) mo.Result[Order] {
	errs := &InputError{}
	o := Order{
		CustomerID: collect(errs, integer(CustomerID), v),
		SellerID:   collect(errs, integer(SellerID), v),
		Item:       collect(errs, text(Item), v),
		DeliveryID: collect(errs, integer(DeliveryID), v),
		Quantity:   collect(errs, integer(Quantity), v),
	}
	if err := errs.Err(); err != nil {
		return mo.Err[Order](err)
	}
	return mo.Ok(o)
}

func BindCancel(v Values) mo.Result[Cancel] {
	errs := &InputError{}
	c := Cancel{OrderID: collect(errs, integer(OrderID), v)}
	if err := errs.Err(); err != nil {
		return mo.Err[Cancel](err)
	}
	return mo.Ok(c)
}

func BindTotal(v Values) mo.Result[Total] {
	errs := &InputError{}
	t := Total{CustomerID: collect(errs, integer(CustomerID), v)}
	if err := errs.Err(); err != nil {
		return mo.Err[Total](err)
	}
	return mo.Ok(t)
}

// Selection is the row currently focused in the customers table, if any.
type Selection struct {
	row mo.Option[sqlx.Row]
}

// Select focuses row. An empty row clears the selection.
func Select(row sqlx.Row) Selection {
	if len(row) == 0 {
		return Selection{}
	}
	return Selection{row: mo.Some(row)}
}

// None is the empty selection.
func None() Selection { return Selection{} }

// ID returns the first cell of the selected row, which is the customer id.
func (s Selection) ID() (string, bool) {
	row, ok := s.row.Get()
	if !ok || strings.TrimSpace(row[0]) == "" {
		return "", false
	}
	return row[0], true
}

// BindSelection selects the customer named by a customer_id value, for surfaces that
// address rows by id instead of by cursor.
func BindSelection(v Values) mo.Result[Selection] {
	errs := &InputError{}
	id := collect(errs, integer(CustomerID), v)
	if err := errs.Err(); err != nil {
		return mo.Err[Selection](err)
	}
	return mo.Ok(Select(sqlx.Row{strconv.FormatInt(id, 10)}))
}
