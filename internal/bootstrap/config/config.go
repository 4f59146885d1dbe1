package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fakedata/internal/bootstrap/logging"
	"fakedata/internal/domain/dataset"
	"fakedata/internal/errs"
)

const (
	SinkBigQuery = "bigquery"
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
	SinkMySQL    = "mysql"
	SinkParquet  = "parquet"
	SinkMemory   = "memory"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	GCP        GCPConfig        `mapstructure:"gcp"`
	Sink       SinkConfig       `mapstructure:"sink"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Generate   GenerateConfig   `mapstructure:"generate"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type GCPConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	Location        string `mapstructure:"location"`
}

type SinkConfig struct {
	Driver           string `mapstructure:"driver"`
	Dataset          string `mapstructure:"dataset"`
	WriteDisposition string `mapstructure:"write_disposition"`
	DSN              string `mapstructure:"dsn"`
	Schema           string `mapstructure:"schema"`
	Dir              string `mapstructure:"dir"`
	BatchSize        int    `mapstructure:"batch_size"`
}

// Truncate reports whether loads replace existing rows.
func (s SinkConfig) Truncate() bool {
	return strings.EqualFold(strings.TrimSpace(s.WriteDisposition), "truncate")
}

type EnrichmentConfig struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
}

type GenerateConfig struct {
	Seed           int64 `mapstructure:"seed"`
	dataset.Counts `mapstructure:",squash"`
}

type LedgerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// Overrides are command-line values applied on top of file and env config.
type Overrides struct {
	Counts            map[string]int
	Seed              *int64
	SinkDriver        string
	DisableEnrichment bool
	// LedgerOnly skips sink and enrichment checks for commands that only
	// touch the run ledger.
	LedgerOnly bool
}

func (o Overrides) apply(v *viper.Viper) {
	for table, n := range o.Counts {
		v.Set("generate."+table, n)
	}
	if o.Seed != nil {
		v.Set("generate.seed", *o.Seed)
	}
	if o.SinkDriver != "" {
		v.Set("sink.driver", o.SinkDriver)
	}
	if o.DisableEnrichment {
		v.Set("enrichment.provider", ProviderNone)
	}
}

// Load reads envFile into the process environment when it exists, then
// resolves config from defaults, an optional config file, FAKEDATA_* env vars
// and overrides, in increasing precedence.
func Load(ctx context.Context, configFile string, envFile string, overrides Overrides) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithComponent(ctx, "bootstrap.config")

	if err := loadEnvFile(logCtx, envFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FAKEDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return Config{}, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			logging.Debug(logCtx, "config file not found, using defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	overrides.apply(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}
	cfg.normalize()

	validate := cfg.Validate
	if overrides.LedgerOnly {
		validate = cfg.validateLedger
	}
	if err := validate(); err != nil {
		return Config{}, err
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("env", cfg.App.Env),
		slog.String("sink_driver", cfg.Sink.Driver),
		slog.String("enrichment_provider", cfg.Enrichment.Provider),
		slog.Int("rows_planned", cfg.Generate.Total()),
	)

	return cfg, nil
}

func loadEnvFile(ctx context.Context, envFile string) error {
	envFile = strings.TrimSpace(envFile)
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errs.Wrapf(err, "stat env file %q", envFile)
	}
	if err := godotenv.Load(envFile); err != nil {
		return errs.Wrapf(err, "load env file %q", envFile)
	}
	logging.Debug(ctx, "env file loaded", slog.String("path", envFile))
	return nil
}

// bindLegacyEnv keeps the unprefixed variable names deployments already use.
func bindLegacyEnv(v *viper.Viper) error {
	for key, legacy := range map[string]string{
		"gcp.project_id":     "GCP_PROJECT_ID",
		"sink.dataset":       "DATASET_ID",
		"enrichment.api_key": "GEMINI_API_KEY",
	} {
		prefixed := "FAKEDATA_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return errs.Wrapf(err, "bind env %s", legacy)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	counts := dataset.DefaultCounts()

	v.SetDefault("app.name", "fakedata")
	v.SetDefault("app.env", "local")
	v.SetDefault("gcp.project_id", "")
	v.SetDefault("gcp.credentials_file", "")
	v.SetDefault("gcp.location", "")
	v.SetDefault("sink.driver", SinkBigQuery)
	v.SetDefault("sink.dataset", "")
	v.SetDefault("sink.write_disposition", "append")
	v.SetDefault("sink.dsn", "")
	v.SetDefault("sink.schema", "public")
	v.SetDefault("sink.dir", "./out")
	v.SetDefault("sink.batch_size", 500)
	v.SetDefault("enrichment.provider", ProviderGemini)
	v.SetDefault("enrichment.api_key", "")
	v.SetDefault("enrichment.model", "")
	v.SetDefault("enrichment.base_url", "")
	v.SetDefault("enrichment.temperature", 0.7)
	v.SetDefault("generate.seed", 0)
	v.SetDefault("generate."+dataset.TableUsers, counts.Users)
	v.SetDefault("generate."+dataset.TableProducts, counts.Products)
	v.SetDefault("generate."+dataset.TableWarehouses, counts.Warehouses)
	v.SetDefault("generate."+dataset.TableOrders, counts.Orders)
	v.SetDefault("generate."+dataset.TableOrderItems, counts.OrderItems)
	v.SetDefault("generate."+dataset.TableInventorySnapshots, counts.InventorySnapshots)
	v.SetDefault("generate."+dataset.TableSupportTickets, counts.SupportTickets)
	v.SetDefault("ledger.enabled", true)
	v.SetDefault("ledger.dsn", ".fakedata/ledger.sqlite")
}

func (c *Config) normalize() {
	c.Sink.Driver = strings.ToLower(strings.TrimSpace(c.Sink.Driver))
	c.Sink.WriteDisposition = strings.ToLower(strings.TrimSpace(c.Sink.WriteDisposition))
	c.Enrichment.Provider = strings.ToLower(strings.TrimSpace(c.Enrichment.Provider))
	c.Enrichment.APIKey = strings.TrimSpace(c.Enrichment.APIKey)
}

func (c Config) Validate() error {
	if err := c.Generate.Counts.Validate(); err != nil {
		return errs.Wrap(err, "generate")
	}

	switch c.Sink.Driver {
	case SinkBigQuery:
		if strings.TrimSpace(c.GCP.ProjectID) == "" {
			return errors.New("gcp.project_id is required for the bigquery sink")
		}
		if strings.TrimSpace(c.Sink.Dataset) == "" {
			return errors.New("sink.dataset is required for the bigquery sink")
		}
	case SinkPostgres, SinkMySQL, SinkSQLite:
		if strings.TrimSpace(c.Sink.DSN) == "" {
			return fmt.Errorf("sink.dsn is required for the %s sink", c.Sink.Driver)
		}
	case SinkParquet:
		if strings.TrimSpace(c.Sink.Dir) == "" {
			return errors.New("sink.dir is required for the parquet sink")
		}
	case SinkMemory:
	default:
		return fmt.Errorf("unsupported sink driver %q", c.Sink.Driver)
	}

	switch c.Sink.WriteDisposition {
	case "", "append", "truncate":
	default:
		return fmt.Errorf("unsupported sink.write_disposition %q", c.Sink.WriteDisposition)
	}

	switch c.Enrichment.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderNone:
	default:
		return fmt.Errorf("unsupported enrichment provider %q", c.Enrichment.Provider)
	}
	if c.Enrichment.Temperature < 0 || c.Enrichment.Temperature > 1 {
		return fmt.Errorf("enrichment.temperature %.2f out of range [0,1]", c.Enrichment.Temperature)
	}

	return c.validateLedger()
}

func (c Config) validateLedger() error {
	if c.Ledger.Enabled && strings.TrimSpace(c.Ledger.DSN) == "" {
		return errors.New("ledger.dsn is required when the ledger is enabled")
	}
	return nil
}
