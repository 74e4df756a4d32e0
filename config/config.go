package config

import (
	"github.com/fox-one/pkg/store/db"
)

// Config lending node config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	PriceOracle PriceOracle `json:"price_oracle"`
}

// App app config
type App struct {
	Location string `json:"location"`
	// QuoteMaxAge max age of a price quote in seconds before it is
	// rejected as stale
	QuoteMaxAge int64 `json:"quote_max_age"`
}

// PriceOracle price feed config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
}
