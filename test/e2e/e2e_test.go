// test/e2e/e2e_test.go

// End-to-end checks against real infrastructure. Every test skips itself
// when its backing service is not reachable, so the suite is safe to run
// anywhere; docker-compose brings up the full stack locally.
package e2e

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"carrier-quoting/internal/common/config"
	"carrier-quoting/internal/common/database"
	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/models"
	"carrier-quoting/internal/quoting/adapter"
	"carrier-quoting/internal/quoting/audit"
	"carrier-quoting/internal/quoting/index"
	"carrier-quoting/internal/quoting/orchestrator"
	"carrier-quoting/internal/quoting/tokens"
	"carrier-quoting/internal/quoting/transport"
	"carrier-quoting/pkg/registry"

	gcq "carrier-quoting/internal/workers/quoting/get-carrier-quotes"

	_ "carrier-quoting/internal/quoting/carriers/stonepoint"
)

func testLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func connectPostgres(t *testing.T) *database.PostgresClient {
	t.Helper()
	pg, err := database.NewPostgres(config.PostgresConfig{
		Host:     envOr("POSTGRES_HOST", "localhost"),
		Port:     5432,
		Database: envOr("POSTGRES_DB", "quoting"),
		User:     envOr("POSTGRES_USER", "postgres"),
		Password: envOr("POSTGRES_PASSWORD", "postgres"),
		SSLMode:  "disable",
	})
	if err != nil {
		t.Skipf("Skipping: PostgreSQL client failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pg.Ping(ctx); err != nil {
		t.Skipf("Skipping: PostgreSQL not reachable: %v", err)
	}
	t.Cleanup(func() { _ = pg.Close() })
	return pg
}

func connectRedis(t *testing.T) *redis.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: envOr("REDIS_ADDRESS", "localhost:6379")})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping: Redis not reachable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func connectElasticsearch(t *testing.T) *database.ElasticsearchClient {
	t.Helper()
	es, err := database.NewElasticsearch(config.ElasticsearchConfig{
		Addresses: []string{envOr("ELASTICSEARCH_URL", "http://localhost:9200")},
	})
	if err != nil {
		t.Skipf("Skipping: Elasticsearch client failed: %v", err)
	}
	if err := es.Ping(); err != nil {
		t.Skipf("Skipping: Elasticsearch not reachable: %v", err)
	}
	return es
}

// fakeStonepoint stands in for the carrier itself so the e2e run exercises
// real audit, token, and index infrastructure without a carrier sandbox.
func fakeStonepoint(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprintf(w, `%s<ACORD><InsuranceSvcRs><GeneralLiabilityQuoteRs>
			<MsgStatus><MsgStatusCd>Success</MsgStatusCd></MsgStatus>
			<CompanysQuoteNumber>SP-E2E-1</CompanysQuoteNumber>
			<CurrentTermAmt><Amt>1999.00</Amt></CurrentTermAmt>
		</GeneralLiabilityQuoteRs></InsuranceSvcRs></ACORD>`, xml.Header)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func loadTestRegistry(t *testing.T, host string) *registry.Registry {
	t.Helper()
	content := fmt.Sprintf(`{
		"version": "e2e",
		"carriers": [{
			"carrierId": "stonepoint",
			"policyType": "GL",
			"supportedLimits": [["1,000,000", "2,000,000", "1,000,000"]],
			"questionCodes": {},
			"host": %q,
			"credentials": {"scheme": "basic", "username": "u", "password": "p"},
			"claimsHorizonYears": 3
		}]
	}`, host)
	path := filepath.Join(t.TempDir(), "carriers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reg, err := registry.Load(path, 0)
	require.NoError(t, err)
	return reg
}

func e2eApplication() models.Application {
	eff := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return models.Application{
		ID: fmt.Sprintf("e2e-%d", time.Now().UnixNano()),
		Business: models.BusinessInfo{
			Name:        "E2E Test Plumbing LLC",
			EntityType:  "LLC",
			FoundedDate: time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC),
			NAICSCode:   "238220",
		},
		Locations: []models.Location{{
			Primary:       true,
			Address:       models.Address{Street1: "1 Test Way", City: "Albany", State: "NY", Zip: "12207"},
			ActivityCodes: []models.ActivityCode{{Code: "98483", Payroll: 50_000_00}},
		}},
		Policies: []models.Policy{{
			Type:            models.PolicyTypeGL,
			EffectiveDate:   eff,
			ExpirationDate:  eff.AddDate(1, 0, 0),
			RequestedLimits: models.LimitTuple{1_000_000, 0, 0},
		}},
	}
}

// TestQuoteRunAgainstRealInfrastructure exercises the full path: carrier
// call with Postgres audit capture, token cache on Redis available, and
// outcomes indexed into Elasticsearch.
func TestQuoteRunAgainstRealInfrastructure(t *testing.T) {
	pg := connectPostgres(t)
	rdb := connectRedis(t)
	es := connectElasticsearch(t)

	log := testLogger(t)
	carrier := fakeStonepoint(t)
	reg := loadTestRegistry(t, carrier.URL)

	deps := adapter.Dependencies{
		Transport: transport.New(10*time.Second, log, audit.NewStore(pg.DB, log)),
		Tokens:    tokens.NewCache(rdb, log),
		Logger:    log,
	}
	indexer := index.NewIndexer(es.Client, "quote-outcomes-e2e", log)
	handler := gcq.NewHandler(gcq.LoadConfig(), reg, deps, orchestrator.New(log), indexer, log)

	app := e2eApplication()
	job := gcq.Input{Application: app, RunID: "run-" + app.ID}

	// Drive the handler through its job-variable shape without a broker.
	raw, err := json.Marshal(job)
	require.NoError(t, err)

	var input gcq.Input
	require.NoError(t, json.Unmarshal(raw, &input))

	output, execErr := handlerExecute(t, handler, &input)
	require.NoError(t, execErr)

	require.Len(t, output.Outcomes, 1)
	assert.Equal(t, "stonepoint", output.Outcomes[0].CarrierID())
	assert.Equal(t, "quoted", string(output.Outcomes[0].Status()))

	// Audit row must be queryable by application id.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	row := pg.QueryRow(ctx,
		"SELECT COUNT(*) FROM carrier_call_audit WHERE application_id = $1", app.ID)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count, "one carrier call, one audit row")
}

// handlerExecute drives one quoting run through the worker's execute path.
func handlerExecute(t *testing.T, h *gcq.Handler, input *gcq.Input) (*gcq.Output, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	return h.Execute(ctx, input)
}
