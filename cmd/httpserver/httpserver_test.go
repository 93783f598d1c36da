package httpserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/go-petr/kantoor/cmd/httpserver"
	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/internal/integrationtest"
	"github.com/go-petr/kantoor/internal/ledgerdelivery"
	"github.com/go-petr/kantoor/internal/ledgerservice"
	"github.com/go-petr/kantoor/internal/ratedelivery"
	"github.com/go-petr/kantoor/internal/streamdelivery"
	"github.com/go-petr/kantoor/pkg/dbpkg"
)

func TestBalances(t *testing.T) {
	server := integrationtest.SetupServer(t, nil)

	recorder := integrationtest.Do(t, server, http.MethodGet, "/balances", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got []domain.CurrencyBalance
	integrationtest.Decode(t, recorder, &got)

	if diff := cmp.Diff(ledgerservice.DefaultBalances(), got); diff != "" {
		t.Errorf("balances mismatch (-want +got):\n%s", diff)
	}
}

func TestExchangeFlow(t *testing.T) {
	server := integrationtest.SetupServer(t, nil)

	recorder := integrationtest.Do(t, server, http.MethodPost, "/exchanges", map[string]string{
		"fromCurrency": "PLN",
		"toCurrency":   "EUR",
		"amount":       "1000",
		"rate":         "4.35",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var tx domain.Transaction
	integrationtest.Decode(t, recorder, &tx)
	require.Equal(t, domain.TransactionExchange, tx.Type)
	require.Equal(t, domain.StatusCompleted, tx.Status)
	require.True(t, tx.Rate.Equal(decimal.RequireFromString("4.35")))

	recorder = integrationtest.Do(t, server, http.MethodGet, "/balances/PLN", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var pln ledgerdelivery.Balance
	integrationtest.Decode(t, recorder, &pln)
	require.True(t, pln.Amount.Equal(decimal.NewFromInt(4000)), pln.Amount.String())

	recorder = integrationtest.Do(t, server, http.MethodGet, "/balances/EUR", nil)

	var eur ledgerdelivery.Balance
	integrationtest.Decode(t, recorder, &eur)
	require.True(t, eur.Amount.Equal(decimal.NewFromInt(2000).Add(tx.ToAmount)))

	recorder = integrationtest.Do(t, server, http.MethodPost, "/exchanges", map[string]string{
		"fromCurrency": "GBP",
		"toCurrency":   "PLN",
		"amount":       "1",
	})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	res := integrationtest.Decode(t, recorder, nil)
	require.Equal(t, "insufficient GBP funds", res.Error)

	recorder = integrationtest.Do(t, server, http.MethodGet, "/transactions", nil)

	var transactions []domain.Transaction
	integrationtest.Decode(t, recorder, &transactions)
	require.Len(t, transactions, 1)
	require.Equal(t, tx.ID, transactions[0].ID)
}

func TestPortfolioValue(t *testing.T) {
	server := integrationtest.SetupServer(t, nil)

	recorder := integrationtest.Do(t, server, http.MethodGet, "/portfolio/value", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got ledgerdelivery.PortfolioValue
	integrationtest.Decode(t, recorder, &got)

	require.True(t, got.Total.Equal(server.Ledger.CalculateTotalValue(context.Background())))
	require.Equal(t, "PLN", got.Currency)
	require.NotEmpty(t, got.Display)
}

func TestRates(t *testing.T) {
	server := integrationtest.SetupServer(t, nil)

	recorder := integrationtest.Do(t, server, http.MethodGet, "/rates", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got ratedelivery.Rates
	integrationtest.Decode(t, recorder, &got)
	require.True(t, got.Rates["PLN"].Equal(decimal.NewFromInt(1)))
	require.Len(t, got.Rates, 5)

	recorder = integrationtest.Do(t, server, http.MethodGet, "/rates/ticker/EUR/stats", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var stats domain.RateStats
	integrationtest.Decode(t, recorder, &stats)
	require.Equal(t, "EUR", stats.Currency)
	require.Equal(t, 1, stats.Samples)
}

func TestAlertFiresOnTicker(t *testing.T) {
	server := integrationtest.SetupServer(t, nil)

	recorder := integrationtest.Do(t, server, http.MethodPost, "/alerts", map[string]string{
		"currency":   "EUR",
		"condition":  "above",
		"targetRate": "1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var alert domain.PriceAlert
	integrationtest.Decode(t, recorder, &alert)
	require.True(t, alert.Active)

	server.Ticker.Refresh()

	alerts := server.Alerts.List(context.Background())
	require.Len(t, alerts, 1)
	require.False(t, alerts[0].Active)
	require.NotNil(t, alerts[0].TriggeredAt)

	recorder = integrationtest.Do(t, server, http.MethodDelete, "/alerts/"+alert.ID, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = integrationtest.Do(t, server, http.MethodDelete, "/alerts/"+alert.ID, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestStateSurvivesRestart(t *testing.T) {
	conn := dbpkg.SetupSQLite(t)

	server := integrationtest.SetupServer(t, conn)

	recorder := integrationtest.Do(t, server, http.MethodPut, "/balances/GBP", map[string]string{"amount": "321.5"})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = integrationtest.Do(t, server, http.MethodPost, "/transactions", map[string]string{
		"type":         "deposit",
		"fromCurrency": "USD",
		"toCurrency":   "USD",
		"fromAmount":   "1",
		"toAmount":     "1",
		"rate":         "1",
		"status":       "pending",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	restarted := integrationtest.SetupServer(t, conn)

	ctx := context.Background()
	require.True(t, restarted.Ledger.GetBalance(ctx, "GBP").Equal(decimal.RequireFromString("321.5")))

	want := server.Ledger.State(ctx)
	got := restarted.Ledger.State(ctx)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestStream(t *testing.T) {
	server := integrationtest.SetupServer(t, nil)

	ts := httptest.NewServer(server)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/stream", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	// portfolio rates, ticker rates, ledger state
	types := make([]string, 0, 3)

	for i := 0; i < 3; i++ {
		var msg streamdelivery.Message
		require.NoError(t, wsjson.Read(ctx, conn, &msg))
		types = append(types, msg.Type)
	}

	require.Equal(t, []string{streamdelivery.TypeRates, streamdelivery.TypeRates, streamdelivery.TypeLedger}, types)

	server.Ledger.UpdateBalance(ctx, "CHF", decimal.NewFromInt(10))

	var msg streamdelivery.Message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, streamdelivery.TypeLedger, msg.Type)
}

func TestNewRejectsBadConfig(t *testing.T) {
	config := integrationtest.Config("sqlite")

	_, err := httpserver.New(nil, zerolog.Nop(), config)
	require.Error(t, err, "sqlite without a connection")

	config = integrationtest.Config("memory")
	config.RateLimit = "fast"

	_, err = httpserver.New(nil, zerolog.Nop(), config)
	require.Error(t, err)

	config = integrationtest.Config("memory")
	config.TickerRateInterval = 0

	_, err = httpserver.New(nil, zerolog.Nop(), config)
	require.Error(t, err)
}
