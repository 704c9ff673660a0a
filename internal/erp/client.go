// Package erp provides read-only connectivity to the corporate ERP database
// (MS SQL Server). The procurement API never writes there; the sync job
// copies material and supplier masters into the local database.
package erp

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // MS SQL Server driver
	"go.uber.org/zap"

	"github.com/austral-erp/procurement-api/internal/config"
)

const (
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	defaultHealthCheckTimeout = 5 * time.Second
)

// Client provides read-only access to the ERP database. It manages a
// connection pool and applies a default per-query timeout.
type Client struct {
	db           *sql.DB
	config       *config.ERPConfig
	logger       *zap.Logger
	queryTimeout time.Duration
}

// MaterialRecord is one row of the ERP material master.
type MaterialRecord struct {
	Code          string
	Description   string
	UnitOfMeasure string
	SupplierTaxID string
	Active        bool
}

// SupplierRecord is one row of the ERP vendor master.
type SupplierRecord struct {
	Number       string
	BusinessName string
	TaxID        string
	Email        string
	Phone        string
	Active       bool
}

// HealthStatus reports the connection state with pool statistics.
type HealthStatus struct {
	Status  string        `json:"status"`
	Latency time.Duration `json:"latency_ms"`
	Error   string        `json:"error,omitempty"`
	Open    int           `json:"open_connections"`
	InUse   int           `json:"in_use"`
	Idle    int           `json:"idle"`
}

// NewClient creates a new ERP client. Returns nil when the connection is
// disabled or credentials are missing; the API runs without master-data
// sync in that case. Connection attempts retry with exponential backoff.
func NewClient(cfg *config.ERPConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("erp connection disabled")
		return nil, nil
	}
	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("erp enabled but credentials missing, skipping connection")
		return nil, nil
	}

	connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	var db *sql.DB
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		logger.Info("connecting to erp",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", defaultMaxRetries))

		db, err = sql.Open("sqlserver", connStr)
		if err == nil {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
			db.SetMaxIdleConns(cfg.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

			ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
			err = db.PingContext(ctx)
			cancel()
			if err == nil {
				logger.Info("erp connection established", zap.Int("attempts", attempt))
				return &Client{
					db:           db,
					config:       cfg,
					logger:       logger,
					queryTimeout: cfg.QueryTimeoutDuration(),
				}, nil
			}
			_ = db.Close()
		}

		logger.Warn("erp connection attempt failed", zap.Error(err), zap.Int("attempt", attempt))
		if attempt < defaultMaxRetries {
			time.Sleep(backoff)
			backoff = time.Duration(float64(backoff) * defaultBackoffFactor)
			if backoff > defaultMaxBackoff {
				backoff = defaultMaxBackoff
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to erp after %d attempts: %w", defaultMaxRetries, err)
}

// buildConnectionString constructs a SQL Server connection string.
// URL format expected: host:port/database or host:port.
func buildConnectionString(cfg *config.ERPConfig) (string, error) {
	urlParts := strings.SplitN(cfg.URL, "/", 2)
	hostPort := urlParts[0]
	database := ""
	if len(urlParts) > 1 {
		database = urlParts[1]
	}

	hostParts := strings.SplitN(hostPort, ":", 2)
	host := hostParts[0]
	port := "1433"
	if len(hostParts) > 1 {
		port = hostParts[1]
	}

	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}
	return u.String(), nil
}

// IsEnabled returns true if the client is initialized and ready for queries.
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}

// Close gracefully closes the ERP connection.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	c.logger.Info("closing erp connection")
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close erp connection: %w", err)
	}
	return nil
}

// HealthCheck pings the ERP connection and reports pool statistics.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if c == nil || c.db == nil {
		return &HealthStatus{Status: "disabled"}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	start := time.Now()
	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	stats := c.db.Stats()
	status := &HealthStatus{
		Latency: latency,
		Open:    stats.OpenConnections,
		InUse:   stats.InUse,
		Idle:    stats.Idle,
	}
	if err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}
	return status
}

// FetchMaterials reads the active material master from the ERP.
func (c *Client) FetchMaterials(ctx context.Context) ([]MaterialRecord, error) {
	if !c.IsEnabled() {
		return nil, fmt.Errorf("erp client not initialized")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	const query = `
		SELECT m.code, m.description, m.unit_of_measure, ISNULL(m.supplier_tax_id, ''), m.active
		FROM dbo.material_master m
		WHERE m.active = 1`

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("material master query failed: %w", err)
	}
	defer rows.Close()

	var materials []MaterialRecord
	for rows.Next() {
		var m MaterialRecord
		if err := rows.Scan(&m.Code, &m.Description, &m.UnitOfMeasure, &m.SupplierTaxID, &m.Active); err != nil {
			return nil, fmt.Errorf("failed to scan material row: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}

	c.logger.Debug("material master fetched",
		zap.Int("rows", len(materials)),
		zap.Duration("duration", time.Since(start)))
	return materials, nil
}

// FetchSuppliers reads the active vendor master from the ERP.
func (c *Client) FetchSuppliers(ctx context.Context) ([]SupplierRecord, error) {
	if !c.IsEnabled() {
		return nil, fmt.Errorf("erp client not initialized")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	const query = `
		SELECT v.number, v.business_name, v.tax_id, ISNULL(v.email, ''), ISNULL(v.phone, ''), v.active
		FROM dbo.vendor_master v
		WHERE v.active = 1`

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vendor master query failed: %w", err)
	}
	defer rows.Close()

	var suppliers []SupplierRecord
	for rows.Next() {
		var s SupplierRecord
		if err := rows.Scan(&s.Number, &s.BusinessName, &s.TaxID, &s.Email, &s.Phone, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan supplier row: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating supplier rows: %w", err)
	}

	c.logger.Debug("vendor master fetched",
		zap.Int("rows", len(suppliers)),
		zap.Duration("duration", time.Since(start)))
	return suppliers, nil
}
