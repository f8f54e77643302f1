package app

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func resetConfig() {
	cfg = nil
	cfgErr = nil
	cfgFile = ""
	once = sync.Once{}
}

func TestConfig_LoadsApplicationTestYml(t *testing.T) {
	// Run from repo root so the search path '.' can find application_test.yml.
	cwd, err := os.Getwd()
	require.NoError(t, err)
	root := filepath.Dir(cwd) // cwd == .../orderdesk/app
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	resetConfig()
	t.Cleanup(resetConfig)

	res := Config()
	require.True(t, res.IsOk())
	v := res.MustGet()

	// These values come from application_test.yml
	require.Equal(t, "sqlite3", v.GetString("datasource.driver"))
	s := Load()
	require.True(t, s.IsOk())
	stmt, ok := s.MustGet().Datasource.Routine("ReadAllCustomers")
	require.True(t, ok)
	require.Contains(t, stmt, "FROM customers")
}

func TestConfig_ExplicitFileAndDefaults(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("datasource:\n  user: clerk\n"), 0o600))
	UseConfigFile(path)

	s := Load()
	require.True(t, s.IsOk())
	got := s.MustGet()
	require.Equal(t, "clerk", got.Datasource.User)
	require.Equal(t, "mysql", got.Datasource.Driver)
	require.Equal(t, "online_order_system", got.Datasource.DB)
	require.Equal(t, "activity_log.txt", got.ActionLog)
	require.Equal(t, "₹", got.Currency)
	require.Equal(t, []string{"stderr"}, got.Logging.Output)
}

func TestConfig_EnvironmentOverride(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("currency: $\n"), 0o600))
	UseConfigFile(path)
	t.Setenv("ORDERDESK_DATASOURCE_PASSWORD", "s3cret")

	s := Load()
	require.True(t, s.IsOk())
	require.Equal(t, "s3cret", s.MustGet().Datasource.Password)
	require.Equal(t, "$", s.MustGet().Currency)
}

func TestConfig_ExplicitFileMissing(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	UseConfigFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.True(t, Config().IsError())
	require.True(t, Load().IsError())
}

func TestDataSource_RoutineIsCaseInsensitive(t *testing.T) {
	ds := DataSource{Routines: map[string]string{"cancelorder": "UPDATE orders SET status = 'Cancelled'", "Blank": " "}}
	stmt, ok := ds.Routine("CancelOrder")
	require.True(t, ok)
	require.Contains(t, stmt, "UPDATE orders")

	_, ok = ds.Routine("blank")
	require.False(t, ok)
	_, ok = ds.Routine("PlaceOrder")
	require.False(t, ok)
}

func TestFindProjectRoot(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x\n"), 0o600))

	root, ok := findProjectRoot(nested)
	require.True(t, ok)
	require.Equal(t, dir, root)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(Logging{Verbose: true, Output: []string{filepath.Join(t.TempDir(), "diag.log")}})
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	_ = logger.Sync()
}
