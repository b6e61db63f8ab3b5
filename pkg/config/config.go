package config

import (
	"time"
)

type Prices struct {
	URL         string        `envconfig:"URL" default:"https://interview.switcheo.com/prices.json"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type Converter struct {
	DefaultSell string `envconfig:"DEFAULT_SELL" default:"USD"`
	DefaultBuy  string `envconfig:"DEFAULT_BUY" default:"BLUR"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[tokenswap]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Prices    *Prices    `envconfig:"PRICES"`
	Converter *Converter `envconfig:"CONVERTER"`
	Log       *Log       `envconfig:"LOG"`
	Server    *Server    `envconfig:"SERVER"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
