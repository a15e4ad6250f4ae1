package database

import (
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/tomasrey/eod-snapshot/internal/secrets"
)

// BuildDSN builds a MySQL DSN from resolved credentials. The driver handles
// escaping of special characters in the password.
func BuildDSN(creds *secrets.Credentials) string {
	cfg := mysql.NewConfig()
	cfg.User = creds.Username
	cfg.Passwd = creds.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", creds.Host, creds.Port)
	cfg.DBName = creds.DBName
	cfg.ParseTime = true
	return cfg.FormatDSN()
}
