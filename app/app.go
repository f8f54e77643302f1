package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const (
	cfgName     = "application"
	testCfgName = "application_test"
	envPrefix   = "ORDERDESK"
)

var (
	cfg     *viper.Viper
	cfgErr  error
	cfgFile string
	once    sync.Once
)

// UseConfigFile pins the configuration to an explicit file instead of the search paths.
// It must be called before the first Config call to take effect.
func UseConfigFile(path string) {
	cfgFile = path
}

// Config loads the application configuration.
//
// Rules:
//  1. An explicit file set with UseConfigFile wins.
//  2. If the current process is running `go test`, it tries application_test.yml.
//  3. Otherwise it tries application.yml.
//  4. It searches the project root, the working directory and their './config'.
//
// A missing config file is not an error: defaults and ORDERDESK_* environment variables apply.
func Config() mo.Result[*viper.Viper] {
	once.Do(func() {
		cfg, cfgErr = loadViper(cfgFile)
	})
	return lo.If(cfg == nil, mo.Err[*viper.Viper](fmt.Errorf("load configuration: %w", cfgErr))).Else(mo.Ok(cfg))
}

func loadViper(explicit string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", explicit, err)
		}
		return v, nil
	}

	addDefaultConfigPaths(v)
	name := cfgName
	if isTestProcess() {
		name = testCfgName
	}
	v.SetConfigName(name)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return v, nil
}

// addDefaultConfigPaths registers the config search paths into viper.
//
// Viper resolves relative paths against the working directory, which varies between `go test`
// runs in package folders and a deployed binary. The project root (nearest parent holding go.mod)
// is searched first, then the working directory, each with its "config" subdir.
func addDefaultConfigPaths(v *viper.Viper) {
	cwd, err := os.Getwd()
	if err != nil {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		return
	}

	if root, ok := findProjectRoot(cwd); ok {
		v.AddConfigPath(root)
		v.AddConfigPath(filepath.Join(root, "config"))
	}

	v.AddConfigPath(cwd)
	v.AddConfigPath(filepath.Join(cwd, "config"))
}

// findProjectRoot walks upward from `start` until it finds a directory containing a go.mod.
func findProjectRoot(start string) (string, bool) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// isTestProcess detects whether we are running under `go test`.
func isTestProcess() bool {
	for _, a := range os.Args {
		if strings.HasPrefix(a, "-test.") {
			return true
		}
	}

	// Fallback: scan stack frames for *_test.go.
	const maxFrames = 256
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if strings.HasSuffix(f.File, "_test.go") {
			return true
		}
		if !more {
			break
		}
	}

	return false
}
