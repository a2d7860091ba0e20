package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// APIConfig configures the queue API server.
type APIConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

// WorkerConfig configures the delivery worker.
type WorkerConfig struct {
	APIBaseURL     string
	Printer        PrinterConfig
	PollInterval   time.Duration
	ReconnectDelay time.Duration
}

type ServerConfig struct {
	Address string
}

type DatabaseConfig struct {
	PostgresURL string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

type PrinterConfig struct {
	Port      string
	Baud      int
	Recipient string
}

// LoadAPI reads the API server configuration from the environment.
func LoadAPI() (*APIConfig, error) {
	var errsAll []error

	postgresURL, err := requireEnv("POSTGRES_URL")
	if err != nil {
		errsAll = append(errsAll, err)
	}

	redisCfg, err := loadRedisConfig()
	if err != nil {
		errsAll = append(errsAll, err)
	}

	cfg := &APIConfig{
		Server: ServerConfig{
			Address: getEnv("SERVER_ADDRESS", ":8080"),
		},
		Database: DatabaseConfig{
			PostgresURL: postgresURL,
		},
		Redis: redisCfg,
	}

	if err := joinErrors(errsAll); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWorker reads the delivery worker configuration from the
// environment.
func LoadWorker() (*WorkerConfig, error) {
	var errsAll []error

	baseURL, err := requireEnv("API_BASE_URL")
	if err != nil {
		errsAll = append(errsAll, err)
	}
	printerPort, err := requireEnv("PRINTER_PORT")
	if err != nil {
		errsAll = append(errsAll, err)
	}

	baud, err := getEnvInt("PRINTER_BAUD", 19200)
	if err != nil {
		errsAll = append(errsAll, err)
	}
	pollSeconds, err := getEnvInt("POLL_INTERVAL_SECONDS", 5)
	if err != nil {
		errsAll = append(errsAll, err)
	}
	reconnectSeconds, err := getEnvInt("RECONNECT_DELAY_SECONDS", 30)
	if err != nil {
		errsAll = append(errsAll, err)
	}

	cfg := &WorkerConfig{
		APIBaseURL: baseURL,
		Printer: PrinterConfig{
			Port:      printerPort,
			Baud:      baud,
			Recipient: getEnv("PRINTER_RECIPIENT", "Andy, Annie, Newt & Harold"),
		},
		PollInterval:   time.Duration(pollSeconds) * time.Second,
		ReconnectDelay: time.Duration(reconnectSeconds) * time.Second,
	}

	if len(errsAll) == 0 {
		if cfg.Printer.Baud <= 0 {
			errsAll = append(errsAll, errors.New("PRINTER_BAUD must be > 0"))
		}
		if cfg.PollInterval <= 0 {
			errsAll = append(errsAll, errors.New("POLL_INTERVAL_SECONDS must be > 0"))
		}
		if cfg.ReconnectDelay <= 0 {
			errsAll = append(errsAll, errors.New("RECONNECT_DELAY_SECONDS must be > 0"))
		}
	}

	if err := joinErrors(errsAll); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadRedisConfig() (RedisConfig, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return RedisConfig{Enabled: false}, nil
	}

	var errsAll []error

	db, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		errsAll = append(errsAll, err)
	}
	ttlSeconds, err := getEnvInt("REDIS_TTL_SECONDS", 300)
	if err != nil {
		errsAll = append(errsAll, err)
	}

	cfg := RedisConfig{
		Enabled:  true,
		Address:  addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
		TTL:      time.Duration(ttlSeconds) * time.Second,
	}
	return cfg, joinErrors(errsAll)
}

func requireEnv(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	return val, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int for env %s: %s", key, v)
	}
	return i, nil
}

func joinErrors(errsAll []error) error {
	if len(errsAll) == 0 {
		return nil
	}
	return errors.Join(errsAll...)
}
