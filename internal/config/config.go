// Package config provides the settings of the development server and loads
// them from optional TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is the port the server listens on when none is configured.
	DefaultPort = 8000
	// DefaultHost binds every interface so devices on the LAN can connect.
	DefaultHost = "0.0.0.0"
	// DefaultShutdownTimeout bounds how long an interrupted server waits for
	// the request in flight.
	DefaultShutdownTimeout = 5 * time.Second
)

// ErrUnsupportedFormat is returned by Load for files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds every setting of the development server.
// The zero value is not usable; start from Default.
type Config struct {
	// Host is the bind address. The default binds all interfaces.
	Host string `toml:"host" yaml:"host"`
	// Port is the TCP port. 0 picks a free port.
	Port int `toml:"port" yaml:"port"`
	// Root is the directory files are served from.
	Root string `toml:"root" yaml:"root"`
	// OpenBrowser opens the local URL in the default browser after binding.
	OpenBrowser bool `toml:"open_browser" yaml:"open_browser"`
	// NoCache adds "Cache-Control: no-cache" to every response.
	NoCache bool `toml:"no_cache" yaml:"no_cache"`
	// CleanURLs serves /page from page.html when /page does not exist.
	CleanURLs bool `toml:"clean_urls" yaml:"clean_urls"`
	// MaxConnections caps concurrently served connections.
	// 1 serves requests strictly one after another; 0 removes the cap.
	MaxConnections int `toml:"max_connections" yaml:"max_connections"`
	// MIMETypes maps extra file extensions (".wasm") to forced content types.
	MIMETypes map[string]string `toml:"mime_types" yaml:"mime_types"`
	// ShutdownTimeout bounds graceful shutdown after an interrupt.
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns the configuration used when no file or flag overrides it.
func Default() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		Root:            DefaultRoot(),
		OpenBrowser:     true,
		MaxConnections:  1,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// DefaultRoot returns the directory containing the running executable.
//
// Binaries started with "go run" live in a temporary build directory, which is
// never what the user wants to serve; the working directory is used instead.
// The working directory is also the fallback when the executable cannot be
// located.
func DefaultRoot() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir := filepath.Dir(exe)
		if !isBuildCache(dir) {
			return dir
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func isBuildCache(dir string) bool {
	return strings.Contains(dir, "go-build")
}

// Load reads the file at path on top of Default.
// The format is chosen by extension: .toml, .yaml or .yml.
// Keys that do not belong to Config are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return Config{}, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	// Relative roots are relative to the config file, not the caller.
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
// It also makes Root absolute.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("max connections must not be negative, got %d", c.MaxConnections)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	for ext, typ := range c.MIMETypes {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("mime type key %q must start with a dot", ext)
		}
		if typ == "" {
			return fmt.Errorf("mime type for %q is empty", ext)
		}
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %q: %w", c.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", root)
	}
	c.Root = root
	return nil
}

// Addr is the listen address, e.g. "0.0.0.0:8000".
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LocalURL is the URL opened in the browser, always on localhost.
func (c Config) LocalURL() string {
	return LocalURL(c.Port)
}

// LocalURL formats the localhost URL for port.
func LocalURL(port int) string {
	return "http://" + net.JoinHostPort("localhost", strconv.Itoa(port))
}
