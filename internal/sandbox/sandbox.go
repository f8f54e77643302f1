// Package sandbox provides a self-contained sqlite3 stand-in for the order database.
// sqlite has no stored routines, so each routine is emulated by one statement (and, for
// CancelOrder, a trigger that rejects unknown orders the way the real procedure does).
package sandbox

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/kcmvp/orderdesk/app"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// URL is the sqlite3 DSN template; ${db} is the database file.
const URL = "file:${db}?_foreign_keys=1"

var routines = map[string]string{
	"ReadAllCustomers": `SELECT cid, fname, lname, dob,
       CAST(strftime('%Y', 'now') - strftime('%Y', dob)
            - (strftime('%m-%d', 'now') < strftime('%m-%d', dob)) AS INTEGER) AS age,
       city, pincode
FROM customers ORDER BY cid`,
	"CreateCustomer": `INSERT INTO customers (fname, lname, dob, city, pincode) VALUES (?, ?, ?, ?, ?)`,
	"UpdateCustomer": `UPDATE customers SET fname = ?2, lname = ?3, city = ?4, pincode = ?5 WHERE cid = ?1`,
	"DeleteCustomer": `DELETE FROM customers WHERE cid = ?`,
	"PlaceOrder":     `INSERT INTO orders (cid, sid, item, did, qty) VALUES (?, ?, ?, ?, ?)`,
	"CancelOrder":    `INSERT INTO order_cancellations (oid) VALUES (?)`,
	"GetOrdersJoinDetails": `SELECT o.oid, o.cid, c.fname || ' ' || c.lname, o.item, o.qty, o.status,
       o.sid, s.name, o.did, d.name
FROM orders o
JOIN customers c ON c.cid = o.cid
JOIN sellers s ON s.sid = o.sid
JOIN delivery_partners d ON d.did = o.did
ORDER BY o.oid`,
	"GetCustomerTotalSpent": `SELECT COALESCE(SUM(o.qty * p.price), 0)
FROM orders o JOIN products p ON p.item = o.item
WHERE o.cid = ? AND o.status <> 'Cancelled'`,
}

// DataSource returns a sqlite3 datasource over the file at path with every routine emulated.
func DataSource(path string) app.DataSource {
	r := make(map[string]string, len(routines))
	for k, v := range routines {
		r[k] = v
	}
	return app.DataSource{Driver: "sqlite3", DB: path, URL: URL, Routines: r}
}

// Create applies the schema and seed rows to the sqlite file at path. It is safe to run
// against an existing sandbox.
func Create(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=1", path))
	if err != nil {
		return fmt.Errorf("open sandbox %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply sandbox schema: %w", err)
	}
	return nil
}
