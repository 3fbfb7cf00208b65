package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable pool_max_conns=10",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

// RatesAPI points at the financing-rates endpoint.
type RatesAPI struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Scheduler configures the daily automatic update. DailyAt is wall-clock
// "HH:MM" interpreted in Timezone, not in the host's local zone.
type Scheduler struct {
	DailyAt  string `mapstructure:"daily_at"`
	Timezone string `mapstructure:"timezone"`
}

type Updates struct {
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
}

type HistoryCache struct {
	MaxEntries int64 `mapstructure:"max_entries"`
}

// Categories holds the ordered classification keyword tables. Loaded once
// at startup, read-only afterwards.
type Categories struct {
	Currencies       []string          `mapstructure:"currencies"`
	Metals           []string          `mapstructure:"metals"`
	Commodities      []string          `mapstructure:"commodities"`
	Indices          []string          `mapstructure:"indices"`
	Bonds            []string          `mapstructure:"bonds"`
	CurrencySuffixes map[string]string `mapstructure:"currency_suffixes"`
}

type Presenter struct {
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer   HTTPServer   `mapstructure:"http_server"`
	DbServer     DbServer     `mapstructure:"db_server"`
	RatesAPI     RatesAPI     `mapstructure:"rates_api"`
	Scheduler    Scheduler    `mapstructure:"scheduler"`
	Updates      Updates      `mapstructure:"updates"`
	HistoryCache HistoryCache `mapstructure:"history_cache"`
	Categories   Categories   `mapstructure:"categories"`
	Presenter    Presenter    `mapstructure:"presenter"`
	Logging      Logging      `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional outside local development
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	setDefaults()

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// rates api env vars
	_ = viper.BindEnv("rates_api.url", "RATES_API_URL")
	_ = viper.BindEnv("rates_api.timeout_seconds", "RATES_API_TIMEOUT_SECONDS")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults mirrors the classification tables the application shipped
// with, so a minimal config.yaml still yields a working setup.
func setDefaults() {
	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("db_server.max_conns", 10)

	viper.SetDefault("rates_api.url", "https://labs-api.oanda.com/v1/financing-rates?divisionId=4&tradingGroupId=1")
	viper.SetDefault("rates_api.timeout_seconds", 10)

	viper.SetDefault("scheduler.daily_at", "22:30")
	viper.SetDefault("scheduler.timezone", "America/New_York")

	viper.SetDefault("updates.worker_pool_size", 2)
	viper.SetDefault("history_cache.max_entries", 256)
	viper.SetDefault("presenter.poll_interval_ms", 200)
	viper.SetDefault("logging.level", "info")

	viper.SetDefault("categories.currencies", []string{
		"usd", "eur", "jpy", "gbp", "aud", "cad", "chf", "nzd", "sgd",
		"hkd", "nok", "sek", "dkk", "mxn", "zar", "try", "cnh", "pln",
		"czk", "huf",
	})
	viper.SetDefault("categories.metals", []string{"xau", "xag", "xpd", "xpt"})
	viper.SetDefault("categories.commodities", []string{
		"wtico_usd", "brent_crude_oil", "nat_gas_usd", "corn_usd",
		"wheat_usd", "soybn_usd", "sugar_usd", "cocoa_usd", "coffee_usd",
	})
	viper.SetDefault("categories.indices", []string{
		"us30_usd", "us_30_usd", "spx500_usd", "us_spx_500", "nas100_usd",
		"us_nas_100", "us2000_usd", "us_2000", "uk100_gbp", "uk_100",
		"de40_eur", "de_30_eur", "de_40_eur", "eu50_eur", "eu_50_eur",
		"fr40_eur", "fr_40", "jp225_usd", "jp_225", "au200_aud", "au_200",
		"hk33_hkd", "hk_hsi", "cn50_usd", "cn_50", "sg30_sgd", "sg_30",
	})
	viper.SetDefault("categories.bonds", []string{
		"de_10yr_bund", "us_2yr_tnote", "us_5yr_tnote", "us_10yr_tnote",
		"usb02y_usd", "usb05y_usd", "de10yb_eur",
	})
	viper.SetDefault("categories.currency_suffixes", map[string]string{
		"_usd": "USD", "_eur": "EUR", "_gbp": "GBP", "_jpy": "JPY",
		"_aud": "AUD", "_cad": "CAD", "_chf": "CHF", "_hkd": "HKD",
		"_sgd": "SGD",
	})
}
