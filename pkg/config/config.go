package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	ServiceName string `yaml:"service_name" default:"datahub"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Logger struct {
		Level     string `yaml:"level" default:"info"`
		Format    string `yaml:"format" default:"console"`
		Output    string `yaml:"output" default:"stdout"`
		Collector struct {
			Enabled   bool          `yaml:"enabled"`
			Interval  time.Duration `yaml:"interval" default:"30s"`
			Threshold int           `yaml:"threshold" default:"100"`
			Topic     string        `yaml:"topic" default:"datahub.logs"`
		} `yaml:"collector"`
	} `yaml:"logger"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Store struct {
		Driver          string        `yaml:"driver" default:"sqlite"`
		DSN             string        `yaml:"dsn" default:"file:datahub.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"`
		MaxOpenConns    int           `yaml:"max_open_conns" default:"10"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"30m"`
		AutoMigrate     bool          `yaml:"auto_migrate" default:"true"`
	} `yaml:"store"`
	Cache struct {
		Driver        string        `yaml:"driver" default:"memory"`
		TTL           time.Duration `yaml:"ttl" default:"1m"`
		MemoryMaxSize int           `yaml:"memory_max_size" default:"10000"`
		MemoryCleanup time.Duration `yaml:"memory_cleanup" default:"5m"`
		Redis         struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			PoolSize int    `yaml:"pool_size" default:"20"`
			Prefix   string `yaml:"prefix" default:"datahub"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"snappy"`
		Topics       struct {
			Changes string `yaml:"changes" default:"datahub.changes"`
			Ingest  string `yaml:"ingest" default:"datahub.ingest"`
		} `yaml:"topics"`
		Producer struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"5"`
			Linger       time.Duration `yaml:"linger" default:"50ms"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			Enabled    bool          `yaml:"enabled"`
			GroupID    string        `yaml:"group_id" default:"datahub-ingest"`
			Workers    int           `yaml:"workers" default:"4"`
			BufferSize int           `yaml:"buffer_size" default:"256"`
			RetryMax   int           `yaml:"retry_max" default:"3"`
			BackoffMin time.Duration `yaml:"backoff_min" default:"200ms"`
			BackoffMax time.Duration `yaml:"backoff_max" default:"5s"`
			DLQTopic   string        `yaml:"dlq_topic" default:"datahub.ingest.dlq"`
			MinBytes   int           `yaml:"min_bytes" default:"1"`
			MaxBytes   int           `yaml:"max_bytes" default:"10485760"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"datahub"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert" default:"true"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"30s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"60s"`
	} `yaml:"clickhouse"`
	Provider struct {
		BaseURL   string        `yaml:"base_url" default:"https://query1.finance.yahoo.com"`
		Timeout   time.Duration `yaml:"timeout" default:"10s"`
		UserAgent string        `yaml:"user_agent" default:"Mozilla/5.0 (compatible; datahub/1.0)"`
		CacheTTL  time.Duration `yaml:"cache_ttl" default:"5m"`
	} `yaml:"provider"`
	Freshness struct {
		Quote        time.Duration `yaml:"quote" default:"2m"`
		History      time.Duration `yaml:"history" default:"12h"`
		Fundamentals time.Duration `yaml:"fundamentals" default:"24h"`
		Research     time.Duration `yaml:"research" default:"12h"`
	} `yaml:"freshness"`
	Pages struct {
		StockPageTimeout  time.Duration `yaml:"stock_page_timeout" default:"20s"`
		HomepageTimeout   time.Duration `yaml:"homepage_timeout" default:"30s"`
		SparklineDays     int           `yaml:"sparkline_days" default:"30"`
		ScreenerCount     int           `yaml:"screener_count" default:"6"`
		PortugueseTickers []string      `yaml:"portuguese_tickers" default:"[\"EDP.LS\",\"JMT.LS\",\"GALP.LS\",\"BCP.LS\",\"CTT.LS\",\"NOS.LS\"]"`
	} `yaml:"pages"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled" default:"true"`
		Capacity     float64 `yaml:"capacity" default:"30"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"1"`
	} `yaml:"rate_limit"`
	Finnhub struct {
		Enabled        bool          `yaml:"enabled"`
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url" default:"wss://ws.finnhub.io"`
		Symbols        []string      `yaml:"symbols"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay" default:"5s"`
		PingInterval   time.Duration `yaml:"ping_interval" default:"30s"`
		MaxRPS         int           `yaml:"max_rps" default:"2"`
	} `yaml:"finnhub"`
	Queue struct {
		Enabled         bool          `yaml:"enabled"`
		Workers         int           `yaml:"workers" default:"2"`
		QueueSize       int           `yaml:"queue_size" default:"1000"`
		RetryLimit      int           `yaml:"retry_limit" default:"3"`
		RetryDelay      time.Duration `yaml:"retry_delay" default:"30s"`
		LockTTL         time.Duration `yaml:"lock_ttl" default:"2m"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		RefreshTickers  []string      `yaml:"refresh_tickers"`
	} `yaml:"queue"`
}

var (
	storeDrivers = []string{"sqlite", "postgres", "mysql", "clickhouse"}
	cacheDrivers = []string{"none", "memory", "redis", "layered"}
)

// Default returns a config with every default applied.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file. Unset fields take their defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// An empty path skips the file and starts from defaults.
func LoadWithEnv(path string) (*Config, error) {
	var (
		c   *Config
		err error
	)
	if path == "" {
		c = Default()
	} else if c, err = Load(path); err != nil {
		return nil, err
	}

	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	if v := getenv("STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := getenv("STORE_DSN"); v != "" {
		c.Store.DSN = v
	}
	if v := getenv("CACHE_DRIVER"); v != "" {
		c.Cache.Driver = v
	}
	if v := getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := getenv("FINNHUB_SYMBOLS"); v != "" {
		c.Finnhub.Symbols = strings.Split(v, ",")
	}
	if v := getenv("PROVIDER_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if !slices.Contains(storeDrivers, c.Store.Driver) {
		return fmt.Errorf("store.driver must be one of %v, got '%s'", storeDrivers, c.Store.Driver)
	}
	if c.Store.Driver != "clickhouse" && c.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for driver '%s'", c.Store.Driver)
	}
	if !slices.Contains(cacheDrivers, c.Cache.Driver) {
		return fmt.Errorf("cache.driver must be one of %v, got '%s'", cacheDrivers, c.Cache.Driver)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Logger.Collector.Enabled && !c.Kafka.Enabled {
		return fmt.Errorf("logger.collector requires kafka")
	}
	if c.Finnhub.Enabled {
		if c.Finnhub.APIKey == "" {
			return fmt.Errorf("finnhub.api_key is required")
		}
		if len(c.Finnhub.Symbols) == 0 {
			return fmt.Errorf("finnhub.symbols cannot be empty")
		}
	}
	if c.Queue.Enabled && c.Cache.Driver != "redis" && c.Cache.Driver != "layered" {
		return fmt.Errorf("queue requires a redis backed cache driver")
	}
	for name, d := range map[string]time.Duration{
		"quote":        c.Freshness.Quote,
		"history":      c.Freshness.History,
		"fundamentals": c.Freshness.Fundamentals,
		"research":     c.Freshness.Research,
	} {
		if d <= 0 {
			return fmt.Errorf("freshness.%s must be positive", name)
		}
	}
	return nil
}
