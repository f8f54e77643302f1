package app

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// DataSource describes how to reach the order database.
type DataSource struct {
	Driver   string `mapstructure:"driver" yaml:"driver"`
	DB       string `mapstructure:"db" yaml:"db"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Host     string `mapstructure:"host" yaml:"host"`
	// URL is a driver specific DSN that may contain ${user}, ${password}, ${host} and ${db}.
	// When empty and Driver is mysql the DSN is assembled from the other fields.
	URL string `mapstructure:"url" yaml:"url"`
	// Auth selects the mysql authentication plugin, e.g. mysql_native_password.
	Auth string `mapstructure:"auth" yaml:"auth"`
	// Routines overrides the SQL issued for a routine name. Keys are case-insensitive
	// because viper lower-cases map keys.
	Routines map[string]string `mapstructure:"routines" yaml:"routines"`
}

// Routine returns the configured statement for name, if any.
func (ds DataSource) Routine(name string) (string, bool) {
	stmt, ok := ds.Routines[strings.ToLower(name)]
	if !ok {
		for k, v := range ds.Routines {
			if strings.EqualFold(k, name) {
				return v, true
			}
		}
	}
	return stmt, ok && strings.TrimSpace(stmt) != ""
}

type Logging struct {
	Verbose bool     `mapstructure:"verbose" yaml:"verbose"`
	Output  []string `mapstructure:"output" yaml:"output"`
}

type Server struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Settings is the typed view of application.yml.
type Settings struct {
	Datasource DataSource `mapstructure:"datasource" yaml:"datasource"`
	// ActionLog is the path of the append-only activity log.
	ActionLog string  `mapstructure:"action_log" yaml:"action_log"`
	Currency  string  `mapstructure:"currency" yaml:"currency"`
	Logging   Logging `mapstructure:"logging" yaml:"logging"`
	Server    Server  `mapstructure:"server" yaml:"server"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("datasource.driver", "mysql")
	v.SetDefault("datasource.host", "localhost:3306")
	v.SetDefault("datasource.db", "online_order_system")
	v.SetDefault("datasource.user", "app_admin")
	v.SetDefault("datasource.password", "")
	v.SetDefault("datasource.url", "")
	v.SetDefault("datasource.auth", "mysql_native_password")
	v.SetDefault("action_log", "activity_log.txt")
	v.SetDefault("currency", "₹")
	v.SetDefault("logging.verbose", false)
	v.SetDefault("logging.output", []string{"stderr"})
	v.SetDefault("server.addr", ":8080")
}

// Load unmarshals the loaded configuration into Settings.
func Load() mo.Result[Settings] {
	res := Config()
	if res.IsError() {
		return mo.Err[Settings](res.Error())
	}
	return Unmarshal(res.MustGet())
}

// Unmarshal converts v into Settings.
func Unmarshal(v *viper.Viper) mo.Result[Settings] {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return mo.Err[Settings](fmt.Errorf("unmarshal settings: %w", err))
	}
	return mo.Ok(s)
}
