package testutils

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/amirasaad/tokenswap/pkg/app"
	"github.com/amirasaad/tokenswap/pkg/catalog"
	"github.com/amirasaad/tokenswap/pkg/config"
	"github.com/amirasaad/tokenswap/pkg/eventbus"
	"github.com/amirasaad/tokenswap/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Currencies is the catalog served to API tests.
var Currencies = catalog.StaticSource{
	{Symbol: "USD", Price: decimal.NewFromInt(1)},
	{Symbol: "BLUR", Price: decimal.RequireFromString("0.25")},
	{Symbol: "ETH", Price: decimal.RequireFromString("1645.93")},
	{Symbol: "ATOM", Price: decimal.RequireFromString("7.18")},
}

// TestConfig returns a configuration with a rate limit high enough for tests.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Prices:    &config.Prices{HTTPTimeout: time.Second},
		Converter: &config.Converter{DefaultSell: "USD", DefaultBuy: "BLUR"},
		Log:       &config.Log{},
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
}

// NewTestApp wires an application around src.
func NewTestApp(src catalog.Source, cfg *config.App) (*app.App, *fiber.App) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := &app.Deps{
		Source: src,
		Bus:    eventbus.NewSimpleEventBus(),
		Logger: logger,
		Config: cfg,
	}
	a := app.New(deps, cfg)
	return a, webapi.SetupApp(a)
}

// MakeRequestWithApp is a helper function to make HTTP requests to a Fiber app.
func MakeRequestWithApp(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, 1000000)
	if err != nil {
		panic(err)
	}
	return resp
}

// Envelope mirrors the success response with a typed payload.
type Envelope[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// APITestSuite serves the Currencies catalog through a fresh app per test.
type APITestSuite struct {
	suite.Suite
	App   *app.App
	Fiber *fiber.App
}

func (s *APITestSuite) SetupTest() {
	s.App, s.Fiber = NewTestApp(Currencies, TestConfig())
}

// MakeRequest sends a request to the suite's app.
func (s *APITestSuite) MakeRequest(method, path, body string) *http.Response {
	return MakeRequestWithApp(s.Fiber, method, path, body)
}

// Decode reads resp's body into v and closes it.
func (s *APITestSuite) Decode(resp *http.Response, v any) {
	defer resp.Body.Close() //nolint: errcheck
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}
