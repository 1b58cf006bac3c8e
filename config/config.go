package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// Event store types.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Adapter types of the Postgres event store.
const (
	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLXDB  = "sqlx.db"
)

// ErrInvalidConfig wraps every parse and validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete service configuration.
type Config struct {
	HTTPAddr  string `validate:"required"`
	JWTSecret string `validate:"required,min=16"`

	EventStore     string `validate:"oneof=memory postgres"`
	DatabaseURL    string `validate:"required_if=EventStore postgres"`
	AdapterType    string `validate:"oneof=pgx.pool sql.db sqlx.db"`
	DBMaxConns     int    `validate:"gte=1"`
	MigrateOnStart bool

	SweepInterval time.Duration `validate:"gt=0"`

	AMQPURL      string `validate:"omitempty,url"`
	AMQPExchange string `validate:"required_with=AMQPURL"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text zerolog"`

	OTelEnabled  bool
	OTelEndpoint string `validate:"required_if=OTelEnabled true"`
	ServiceName  string `validate:"required"`

	LoanPeriod          time.Duration `validate:"gt=0"`
	ReservationTTL      time.Duration `validate:"gt=0"`
	HoldPeriod          time.Duration `validate:"gt=0"`
	LateFeePerDay       decimal.Decimal
	MaxLateDays         int `validate:"gte=0"`
	MaxLoansPerBorrower int `validate:"gte=0"`
}

// Load reads .env (if present) and the environment, then validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Join(ErrInvalidConfig, fmt.Errorf("loading .env: %w", err))
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, using defaults for unset variables.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	defaults := core.DefaultPolicy()
	r := reader{lookup: lookup}

	cfg := Config{
		HTTPAddr:  r.str("HTTP_ADDR", ":8080"),
		JWTSecret: r.str("JWT_SECRET", ""),

		EventStore:     r.str("EVENT_STORE", StoreMemory),
		DatabaseURL:    r.str("DATABASE_URL", ""),
		AdapterType:    r.str("ADAPTER_TYPE", AdapterPGXPool),
		DBMaxConns:     r.integer("DB_MAX_CONNS", 8),
		MigrateOnStart: r.boolean("DB_MIGRATE", true),

		SweepInterval: r.duration("SWEEP_INTERVAL", time.Minute),

		AMQPURL:      r.str("AMQP_URL", ""),
		AMQPExchange: r.str("AMQP_EXCHANGE", "lending"),

		LogLevel:  r.str("LOG_LEVEL", "info"),
		LogFormat: r.str("LOG_FORMAT", "json"),

		OTelEnabled:  r.boolean("OTEL_ENABLED", false),
		OTelEndpoint: r.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ServiceName:  r.str("OTEL_SERVICE_NAME", "lendingd"),

		LoanPeriod:          r.duration("LOAN_PERIOD", defaults.LoanPeriod),
		ReservationTTL:      r.duration("RESERVATION_TTL", defaults.ReservationTTL),
		HoldPeriod:          r.duration("HOLD_PERIOD", defaults.HoldPeriod),
		LateFeePerDay:       r.money("LATE_FEE_PER_DAY", defaults.LateFeePerDay),
		MaxLateDays:         r.integer("MAX_LATE_DAYS", defaults.MaxLateDays),
		MaxLoansPerBorrower: r.integer("MAX_LOANS_PER_BORROWER", defaults.MaxLoansPerBorrower),
	}

	if len(r.errs) > 0 {
		return Config{}, errors.Join(append([]error{ErrInvalidConfig}, r.errs...)...)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	if cfg.LateFeePerDay.IsNegative() {
		return Config{}, errors.Join(ErrInvalidConfig, errors.New("LATE_FEE_PER_DAY must not be negative"))
	}

	return cfg, nil
}

// Policy returns the lending rules of the configuration.
func (c Config) Policy() core.Policy {
	return core.Policy{
		LoanPeriod:          c.LoanPeriod,
		ReservationTTL:      c.ReservationTTL,
		HoldPeriod:          c.HoldPeriod,
		LateFeePerDay:       c.LateFeePerDay,
		MaxLateDays:         c.MaxLateDays,
		MaxLoansPerBorrower: c.MaxLoansPerBorrower,
	}
}

// reader collects parse errors so that all bad variables are reported at once.
type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) raw(key string) (string, bool) {
	v, ok := r.lookup(key)
	return v, ok && v != ""
}

func (r *reader) str(key, def string) string {
	if v, ok := r.raw(key); ok {
		return v
	}

	return def
}

func (r *reader) integer(key string, def int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return n
}

func (r *reader) boolean(key string, def bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.raw(key)
	if !ok {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return d
}

func (r *reader) money(key string, def decimal.Decimal) decimal.Decimal {
	v, ok := r.raw(key)
	if !ok {
		return def
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}

	return d
}
