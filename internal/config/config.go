package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/secrets"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	ERP       ERPConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// ERPConfig holds configuration for the corporate ERP database (MS SQL).
// The connection is optional and strictly read-only; the sync job copies
// material and supplier masters into the local database.
type ERPConfig struct {
	Enabled         bool
	URL             string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	QueryTimeout    int
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	AzureConnectionString string
	AzureContainer        string
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment" or "vault"
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
}

// JobsConfig holds the cron schedules of the background jobs. Schedules use
// the six-field form with seconds.
type JobsConfig struct {
	MasterDataSyncEnabled  bool
	MasterDataSyncSchedule string
	ReplenishmentEnabled   bool
	ReplenishmentSchedule  string
	ReplenishmentWarehouse string
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (e *ERPConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(e.ConnMaxLifetime) * time.Second
}

// QueryTimeoutDuration returns query timeout as duration
func (e *ERPConfig) QueryTimeoutDuration() time.Duration {
	return time.Duration(e.QueryTimeout) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// Load loads configuration from file and environment variables without
// resolving vault secrets. Use LoadWithSecrets for full resolution.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = v.GetString("JWT_SECRET")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}
	if v.GetBool("ERP_ENABLED") {
		cfg.ERP.Enabled = true
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves credentials from the
// configured secret source. Development reads plain environment variables;
// staging and production pull database and ERP credentials from Azure Key
// Vault. ERP credentials only ever come from the vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isDeployedEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if cfg.ERP.Enabled && cfg.Secrets.KeyVaultName != "" {
		if err := loadERPSecrets(ctx, cfg, logger); err != nil {
			// ERP sync is optional, startup continues without it
			logger.Warn("failed to load erp secrets from key vault", zap.Error(err))
		}
	}

	if !useVault || !isDeployedEnv {
		logger.Info("using environment variables for secrets",
			zap.String("environment", cfg.App.Environment))
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	logger.Info("loading secrets from azure key vault",
		zap.String("keyVault", cfg.Secrets.KeyVaultName))

	if host, err := provider.GetSecretOrEnv(ctx, "POSTGRES-HOST", "DATABASE_HOST"); err == nil && host != "" {
		cfg.Database.Host = host
	}
	if user, err := provider.GetSecretOrEnv(ctx, "POSTGRES-USER", "DATABASE_USER"); err == nil && user != "" {
		cfg.Database.User = user
	}
	if password, err := provider.GetSecretOrEnv(ctx, "POSTGRES-PASSWORD", "DATABASE_PASSWORD"); err == nil && password != "" {
		cfg.Database.Password = password
	}
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		cfg.Database.SSLMode = sslMode
	}
	if secret, err := provider.GetSecretOrEnv(ctx, "JWT-SECRET", "JWT_SECRET"); err == nil && secret != "" {
		cfg.JWT.Secret = secret
	}
	if connStr, err := provider.GetSecretOrEnv(ctx, "STORAGE-CONNECTION-STRING", "STORAGE_AZURECONNECTIONSTRING"); err == nil && connStr != "" {
		cfg.Storage.AzureConnectionString = connStr
	}

	return cfg, nil
}

// loadERPSecrets pulls the ERP connection credentials from Azure Key Vault.
func loadERPSecrets(ctx context.Context, cfg *Config, logger *zap.Logger) error {
	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return err
	}

	url, err := provider.GetSecret(ctx, "ERP-URL")
	if err != nil {
		return fmt.Errorf("failed to load ERP-URL: %w", err)
	}
	user, err := provider.GetSecret(ctx, "ERP-USERNAME")
	if err != nil {
		return fmt.Errorf("failed to load ERP-USERNAME: %w", err)
	}
	password, err := provider.GetSecret(ctx, "ERP-PASSWORD")
	if err != nil {
		return fmt.Errorf("failed to load ERP-PASSWORD: %w", err)
	}

	cfg.ERP.URL = url
	cfg.ERP.User = user
	cfg.ERP.Password = password
	logger.Info("erp credentials loaded from key vault")
	return nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "procurement-api")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "procurement")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 25)
	v.SetDefault("database.maxidleconns", 5)
	v.SetDefault("database.connmaxlifetime", 300)

	v.SetDefault("erp.enabled", false)
	v.SetDefault("erp.maxopenconns", 3)
	v.SetDefault("erp.maxidleconns", 1)
	v.SetDefault("erp.connmaxlifetime", 600)
	v.SetDefault("erp.querytimeout", 30)

	v.SetDefault("jwt.issuer", "procurement-api")
	v.SetDefault("jwt.audience", "procurement-clients")

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localbasepath", "./uploads")
	v.SetDefault("storage.azurecontainer", "quote-attachments")

	v.SetDefault("secrets.source", "environment")
	v.SetDefault("secrets.cacheenabled", true)
	v.SetDefault("secrets.cachettl", 300)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("server.readtimeout", 15)
	v.SetDefault("server.writetimeout", 30)
	v.SetDefault("server.requesttimeout", 60)
	v.SetDefault("server.enableswagger", false)

	v.SetDefault("cors.allowedorigins", []string{"http://localhost:5173"})
	v.SetDefault("cors.allowedmethods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedheaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"})
	v.SetDefault("cors.allowcredentials", true)
	v.SetDefault("cors.maxage", 300)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requestsperminute", 120)

	v.SetDefault("jobs.masterdatasyncenabled", false)
	v.SetDefault("jobs.masterdatasyncschedule", "0 0 3 * * *")
	v.SetDefault("jobs.replenishmentenabled", false)
	v.SetDefault("jobs.replenishmentschedule", "0 30 6 * * *")
	v.SetDefault("jobs.replenishmentwarehouse", "")
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
