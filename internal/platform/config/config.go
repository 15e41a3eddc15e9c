package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultServerAddr      = "localhost:50051"
	defaultClientTimeout   = 5 * time.Second
	defaultClientPageSize  = 100
	defaultSQLitePath      = "directory.db"
	defaultShutdownTimeout = 10 * time.Second
)

// DotEnvPath は起動時に読み込む .env ファイルのパスです。
var DotEnvPath = ".env"

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Client   ClientConfig   `yaml:"client"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig は gRPC サーバーと REST ゲートウェイに関する設定です。
type ServerConfig struct {
	ListenAddr         string        `yaml:"listen_addr"`
	HTTPListenAddr     string        `yaml:"http_listen_addr"`
	CORSAllowOrigins   []string      `yaml:"cors_allow_origins"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout"`
}

// DatabaseConfig は永続化先に関する設定です。Driver が sqlite の場合は SQLitePath のみを使用します。
type DatabaseConfig struct {
	Driver             string        `yaml:"driver"`
	SQLitePath         string        `yaml:"sqlite_path"`
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// ClientConfig は directory クライアントが接続するレコードサービスの設定です。
type ClientConfig struct {
	ServerAddr string        `yaml:"server_addr"`
	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
	PageSize   int           `yaml:"page_size"`
}

// LogConfig はロガーの設定です。
type LogConfig struct {
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
	Format   string `yaml:"format"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadClient はクライアント用の設定を読み込みます。ファイルが存在しない場合は既定値を使います。
func LoadClient(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Client.validateAndNormalize(); err != nil {
		return nil, err
	}
	if err := cfg.Log.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv() error {
	if DotEnvPath == "" {
		return nil
	}
	if _, err := os.Stat(DotEnvPath); err != nil {
		return nil
	}
	if err := godotenv.Load(DotEnvPath); err != nil {
		return fmt.Errorf("config: load %s: %w", DotEnvPath, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	c.Server.ListenAddr = getEnvString("DIRECTORY_LISTEN_ADDR", c.Server.ListenAddr)
	c.Server.HTTPListenAddr = getEnvString("DIRECTORY_HTTP_LISTEN_ADDR", c.Server.HTTPListenAddr)

	c.Database.Driver = getEnvString("DATABASE_DRIVER", c.Database.Driver)
	c.Database.SQLitePath = getEnvString("SQLITE_PATH", c.Database.SQLitePath)
	c.Database.Host = getEnvString("DATABASE_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DATABASE_PORT", c.Database.Port)
	c.Database.User = getEnvString("DATABASE_USER", c.Database.User)
	c.Database.Password = getEnvString("DATABASE_PASSWORD", c.Database.Password)
	c.Database.Name = getEnvString("DATABASE_NAME", c.Database.Name)

	c.Client.ServerAddr = getEnvString("DIRECTORY_SERVER_ADDR", c.Client.ServerAddr)

	c.Log.Level = getEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.FilePath = getEnvString("LOG_FILE_PATH", c.Log.FilePath)
	c.Log.Format = getEnvString("LOG_FORMAT", c.Log.Format)
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	shutdown, err := parseDurationAllowEmpty(c.Server.ShutdownTimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: server.shutdown_timeout: %w", err)
	}
	if shutdown == 0 {
		shutdown = defaultShutdownTimeout
	}
	c.Server.ShutdownTimeout = shutdown

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}
	if err := c.Client.validateAndNormalize(); err != nil {
		return err
	}
	return c.Log.validateAndNormalize()
}

func (d *DatabaseConfig) validateAndNormalize() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	switch d.Driver {
	case "":
		d.Driver = DriverPostgres
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: database.driver %q is not supported", d.Driver)
	}

	if d.Driver == DriverSQLite {
		if d.SQLitePath == "" {
			d.SQLitePath = defaultSQLitePath
		}
		return nil
	}

	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (c *ClientConfig) validateAndNormalize() error {
	if c.ServerAddr == "" {
		c.ServerAddr = defaultServerAddr
	}

	timeout, err := parseDurationAllowEmpty(c.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: client.timeout: %w", err)
	}
	if timeout == 0 {
		timeout = defaultClientTimeout
	}
	c.Timeout = timeout

	if c.PageSize < 0 {
		return fmt.Errorf("config: client.page_size must not be negative")
	}
	if c.PageSize == 0 {
		c.PageSize = defaultClientPageSize
	}
	return nil
}

func (l *LogConfig) validateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	switch strings.ToLower(l.Format) {
	case "":
		l.Format = "json"
	case "json", "console":
		l.Format = strings.ToLower(l.Format)
	default:
		return fmt.Errorf("config: log.format %q is not supported", l.Format)
	}
	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

// DSN は pgx 用の接続文字列を返します。認証情報は URL エスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}
