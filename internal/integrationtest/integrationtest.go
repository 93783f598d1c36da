// Package integrationtest provides server helpers used in integration tests.
package integrationtest

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/kantoor/cmd/httpserver"
	"github.com/go-petr/kantoor/pkg/configpkg"
	"github.com/go-petr/kantoor/pkg/web"
)

// Config returns the configuration integration tests run with.
//
// Tests do not start the scheduler, so intervals only need to be valid.
func Config(driver string) configpkg.Config {
	return configpkg.Config{
		DBDriver:              driver,
		ServerAddress:         "127.0.0.1:0",
		Environement:          "test",
		PortfolioRateInterval: 30 * time.Second,
		TickerRateInterval:    time.Second,
		RateHistorySize:       10,
		CORSAllowedOrigins:    []string{"http://localhost:5173"},
		RateLimit:             "10000-M",
	}
}

// SetupServer returns a test server backed by conn, or by process memory
// when conn is nil.
func SetupServer(t *testing.T, conn *sql.DB) *httpserver.Server {
	t.Helper()

	driver := httpserver.DriverMemory
	if conn != nil {
		driver = "sqlite"
	}

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(conn, zerolog.Nop(), Config(driver))
	if err != nil {
		t.Fatalf(`httpserver.New(conn, logger, config) returned error: %v`, err)
	}

	return server
}

// Do sends a JSON request to handler and returns the recorded response.
func Do(t *testing.T, handler http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	return recorder
}

// Decode decodes the response envelope, placing its data into data.
func Decode(t *testing.T, recorder *httptest.ResponseRecorder, data any) web.Response {
	t.Helper()

	res := web.Response{Data: data}

	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	return res
}
