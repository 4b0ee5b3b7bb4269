package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"supplychain-service/internal/adapters/repositories/repotest"
	"supplychain-service/internal/platform/db"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()

	d, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	require.NoError(t, InitSchema(context.Background(), d))
	return d
}

func TestSQLStore(t *testing.T) {
	repotest.RunStoreSuite(t, func(t *testing.T) ports.Store {
		return NewSQLStore(openTestDB(t))
	})
}

func TestInitSchemaIdempotent(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, InitSchema(context.Background(), d))
}

func TestInitSchemaNilDB(t *testing.T) {
	require.Error(t, InitSchema(context.Background(), nil))
}

func TestSchemaSeqColumnPerDriver(t *testing.T) {
	for _, tc := range []struct {
		driver string
		want   string
	}{
		{db.DriverSQLite, "seq INTEGER PRIMARY KEY AUTOINCREMENT"},
		{db.DriverPostgres, "seq BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY"},
	} {
		stmts := schemaFor(tc.driver)
		joined := strings.Join(stmts, "\n")
		assert.NotContains(t, joined, "{{seq}}", tc.driver)
		assert.Equal(t, 4, strings.Count(joined, tc.want), tc.driver)
	}
}

func TestConcurrentCreatesGetDistinctSeq(t *testing.T) {
	d := openTestDB(t)
	repo := NewSQLRouteRepository(d)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.CreateRoute(ctx, repotest.Route(fmt.Sprintf("R-%02d", i), fmt.Sprintf("RT-%02d", i), domain.RouteScheduled))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var total, distinct int
	require.NoError(t, d.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT seq) FROM routes;`).Scan(&total, &distinct))
	assert.Equal(t, n, total)
	assert.Equal(t, n, distinct)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	repo := NewSQLRouteRepository(openTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"R-C", "R-A", "R-B"} {
		require.NoError(t, repo.CreateRoute(ctx, repotest.Route(id, "RT-"+id, domain.RouteScheduled)))
	}

	routes, err := repo.ListRoutes(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(routes))
	for _, r := range routes {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"R-C", "R-A", "R-B"}, ids)
}
