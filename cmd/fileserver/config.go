package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"concurrent-fileserver/fileserver/domain"
)

const defaultNaiveGap = 5 * time.Millisecond

type config struct {
	listenAddr string
	root       string

	appEnv    string
	logLevel  string
	logFormat string

	delay       time.Duration
	allowedExts []string

	rateLimit  int
	window     time.Duration
	rateAlgo   string
	retryAfter time.Duration
	trustXFF   bool
	addHeaders bool

	discipline domain.Discipline
	counterGap time.Duration

	maxConns       int
	sequential     bool
	acquireTimeout time.Duration

	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsRedisPrefix   string
	statsRedisTTL      time.Duration
	statsTrackClients  bool

	metricsAddr string
}

// readConfig lê o ambiente. O diretório servido vem de ROOT_DIR ou do primeiro argumento.
func readConfig(args []string) (config, error) {
	cfg := config{}
	cfg.listenAddr = net.JoinHostPort(getenvDefault("HOST", "0.0.0.0"), getenvDefault("PORT", "8080"))
	cfg.root = os.Getenv("ROOT_DIR")
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		cfg.root = args[0]
	}

	cfg.appEnv = getenvDefault("APP_ENV", "development")
	cfg.logLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.logFormat = os.Getenv("LOG_FORMAT")

	cfg.delay = time.Duration(getenvIntDefault("DELAY_MS", 0)) * time.Millisecond
	cfg.allowedExts = getenvListDefault("ALLOWED_EXTS", []string{".html", ".png", ".pdf"})

	cfg.rateLimit = getenvIntDefault("RATE_LIMIT", 5)
	cfg.window = time.Duration(getenvFloatDefault("WINDOW_SEC", 1.0) * float64(time.Second))
	cfg.rateAlgo = strings.ToLower(getenvDefault("RATE_ALGO", "sliding"))
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	// USE_LOCK=0 liga o modo naive (racy) de propósito
	cfg.discipline = domain.Locked
	if !getenvBoolDefault("USE_LOCK", true) {
		cfg.discipline = domain.Naive
	}
	if v := os.Getenv("COUNTER_MODE"); v != "" {
		d, err := domain.ParseDiscipline(v)
		if err != nil {
			return config{}, err
		}
		cfg.discipline = d
	}
	cfg.counterGap = getenvDurationDefault("COUNTER_GAP", -1)
	if cfg.counterGap < 0 {
		cfg.counterGap = 0
		if cfg.discipline == domain.Naive {
			cfg.counterGap = defaultNaiveGap
		}
	}

	cfg.maxConns = getenvIntDefault("MAX_CONNS", 0)
	cfg.sequential = getenvBoolDefault("SEQUENTIAL", false)
	cfg.acquireTimeout = getenvDurationDefault("CONN_ACQUIRE_TIMEOUT", 0)

	cfg.statsRedisAddr = os.Getenv("STATS_REDIS_ADDR")
	cfg.statsRedisPassword = os.Getenv("STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("STATS_REDIS_DB", 0)
	cfg.statsRedisPrefix = getenvDefault("STATS_REDIS_PREFIX", "fileserver:stats")
	cfg.statsRedisTTL = getenvDurationDefault("STATS_REDIS_TTL", 24*time.Hour)
	cfg.statsTrackClients = getenvBoolDefault("STATS_TRACK_CLIENTS", false)

	cfg.metricsAddr = os.Getenv("METRICS_ADDR")

	if strings.TrimSpace(cfg.root) == "" {
		return config{}, errors.New("ROOT_DIR (or a directory argument) is required")
	}
	st, err := os.Stat(cfg.root)
	if err != nil {
		return config{}, fmt.Errorf("root %q: %w", cfg.root, err)
	}
	if !st.IsDir() {
		return config{}, fmt.Errorf("root %q is not a directory", cfg.root)
	}
	if cfg.window <= 0 {
		return config{}, errors.New("WINDOW_SEC must be > 0")
	}
	if cfg.delay < 0 {
		return config{}, errors.New("DELAY_MS must be >= 0")
	}
	if cfg.maxConns < 0 {
		return config{}, errors.New("MAX_CONNS must be >= 0")
	}
	if cfg.rateAlgo != "sliding" && cfg.rateAlgo != "token" {
		return config{}, fmt.Errorf("RATE_ALGO must be sliding or token, got %q", cfg.rateAlgo)
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return d
}

// getenvListDefault separa por vírgula; extensões ganham o ponto inicial se faltar.
func getenvListDefault(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return def
	}
	return out
}
