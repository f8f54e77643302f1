package sqlx

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/kcmvp/orderdesk/app"
)

const (
	UserKey     = "${user}"
	PasswordKey = "${password}"
	HostKey     = "${host}"
	DBKey       = "${db}"

	nativePassword = "mysql_native_password"
	clearPassword  = "mysql_clear_password"
)

// DSN returns the final connection string for sql.Open and validates placeholder usage.
//
// Go database drivers don't share a single DSN format, so ds.URL is driver specific. If it
// contains placeholders (${user}, ${password}, ${host}, ${db}), the corresponding field must be
// non-empty, otherwise an error is returned. This prevents connecting with blank credentials
// because of a misconfiguration.
//
// For the mysql driver an empty URL is allowed: the DSN is assembled from the discrete fields.
func DSN(ds app.DataSource) (string, error) {
	if strings.TrimSpace(ds.URL) == "" {
		if ds.Driver == "mysql" {
			return mysqlDSN(ds)
		}
		return "", fmt.Errorf("dsn requires url")
	}
	if strings.Contains(ds.URL, UserKey) && ds.User == "" {
		return "", fmt.Errorf("dsn requires user")
	}
	if strings.Contains(ds.URL, PasswordKey) && ds.Password == "" {
		return "", fmt.Errorf("dsn requires password")
	}
	if strings.Contains(ds.URL, HostKey) && ds.Host == "" {
		return "", fmt.Errorf("dsn requires host")
	}
	if strings.Contains(ds.URL, DBKey) && ds.DB == "" {
		return "", fmt.Errorf("dsn requires db")
	}
	return substitute(ds), nil
}

// substitute performs only string substitution on ds.URL.
func substitute(ds app.DataSource) string {
	return strings.NewReplacer(
		UserKey, ds.User,
		PasswordKey, ds.Password,
		HostKey, ds.Host,
		DBKey, ds.DB,
	).Replace(ds.URL)
}

func mysqlDSN(ds app.DataSource) (string, error) {
	if ds.Host == "" {
		return "", fmt.Errorf("dsn requires host")
	}
	if ds.User == "" {
		return "", fmt.Errorf("dsn requires user")
	}
	c := mysql.NewConfig()
	c.Net = "tcp"
	c.Addr = ds.Host
	c.User = ds.User
	c.Passwd = ds.Password
	c.DBName = ds.DB
	switch ds.Auth {
	case "", nativePassword:
		c.AllowNativePasswords = true
	case clearPassword:
		c.AllowCleartextPasswords = true
	default:
		return "", fmt.Errorf("unsupported mysql auth %q", ds.Auth)
	}
	return c.FormatDSN(), nil
}
