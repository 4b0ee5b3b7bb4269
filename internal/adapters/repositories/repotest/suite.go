package repotest

import (
	"context"
	"supplychain-service/internal/domain"
	"supplychain-service/internal/ports"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreSuite exercises the repository contracts against stores built by newStore.
// Each subtest gets a fresh, empty store.
func RunStoreSuite(t *testing.T, newStore func(t *testing.T) ports.Store) {
	t.Helper()

	t.Run("routes round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		want := Route("R-0001", "RT-001", domain.RouteInTransit)
		require.NoError(t, s.Routes.CreateRoute(ctx, want))

		got, err := s.Routes.GetRoute(ctx, "R-0001")
		require.NoError(t, err)
		if diff := cmp.Diff(want, got, Comparers); diff != "" {
			t.Fatalf("route mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("routes list keeps insertion order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Routes.CreateRoute(ctx, Route("R-0002", "RT-002", domain.RouteScheduled)))
		require.NoError(t, s.Routes.CreateRoute(ctx, Route("R-0001", "RT-001", domain.RouteDelivered)))

		routes, err := s.Routes.ListRoutes(ctx)
		require.NoError(t, err)
		require.Len(t, routes, 2)
		assert.Equal(t, "R-0002", routes[0].ID)
		assert.Equal(t, "R-0001", routes[1].ID)
		assert.Len(t, routes[1].Products, 2)
	})

	t.Run("routes update replaces whole record", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Routes.CreateRoute(ctx, Route("R-0001", "RT-001", domain.RouteScheduled)))

		next := Route("R-0001", "RT-001B", domain.RouteDelayed)
		next.Products = []domain.RouteProduct{{ProductName: "Mutton Leg", Quantity: 5}}
		next.GPSAvailable = false
		require.NoError(t, s.Routes.UpdateRoute(ctx, next))

		got, err := s.Routes.GetRoute(ctx, "R-0001")
		require.NoError(t, err)
		if diff := cmp.Diff(next, got, Comparers); diff != "" {
			t.Fatalf("route mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("routes missing id", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Routes.GetRoute(ctx, "R-404")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		err = s.Routes.UpdateRoute(ctx, Route("R-404", "RT-404", domain.RouteScheduled))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("routes duplicate id rejected", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Routes.CreateRoute(ctx, Route("R-0001", "RT-001", domain.RouteScheduled)))
		assert.Error(t, s.Routes.CreateRoute(ctx, Route("R-0001", "RT-009", domain.RouteScheduled)))
	})

	t.Run("routes returned copies are detached", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Routes.CreateRoute(ctx, Route("R-0001", "RT-001", domain.RouteScheduled)))

		got, err := s.Routes.GetRoute(ctx, "R-0001")
		require.NoError(t, err)
		got.Products[0].Quantity = 999

		again, err := s.Routes.GetRoute(ctx, "R-0001")
		require.NoError(t, err)
		assert.Equal(t, 40, again.Products[0].Quantity)
	})

	t.Run("products", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		beef := Product("P-0001", "Premium Beef Steak", domain.ProductBeef, 850)
		fish := Product("P-0002", "Hilsa", domain.ProductFish, 1200)
		require.NoError(t, s.Products.CreateProduct(ctx, beef))
		require.NoError(t, s.Products.CreateProduct(ctx, fish))
		assert.Error(t, s.Products.CreateProduct(ctx, beef))

		got, err := s.Products.GetProduct(ctx, "P-0002")
		require.NoError(t, err)
		if diff := cmp.Diff(fish, got, Comparers); diff != "" {
			t.Fatalf("product mismatch (-want +got):\n%s", diff)
		}

		all, err := s.Products.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "P-0001", all[0].ID)

		_, err = s.Products.GetProduct(ctx, "P-404")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("vendors", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		v := Vendor("V-0001", "Bengal Meats")
		require.NoError(t, s.Vendors.CreateVendor(ctx, v))

		got, err := s.Vendors.GetVendor(ctx, "V-0001")
		require.NoError(t, err)
		if diff := cmp.Diff(v, got, Comparers); diff != "" {
			t.Fatalf("vendor mismatch (-want +got):\n%s", diff)
		}

		all, err := s.Vendors.ListVendors(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		_, err = s.Vendors.GetVendor(ctx, "V-404")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("orders", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		o := Order("ORD-0001", "V-0001", "P-0001", 3, 700)
		require.NoError(t, s.Orders.CreateOrder(ctx, o))

		got, err := s.Orders.GetOrder(ctx, "ORD-0001")
		require.NoError(t, err)
		if diff := cmp.Diff(o, got, Comparers); diff != "" {
			t.Fatalf("order mismatch (-want +got):\n%s", diff)
		}

		require.NoError(t, s.Orders.UpdateOrderStatus(ctx, "ORD-0001", domain.OrderShipped))
		got, err = s.Orders.GetOrder(ctx, "ORD-0001")
		require.NoError(t, err)
		assert.Equal(t, domain.OrderShipped, got.Status)
		assert.True(t, got.TotalAmount.Equal(o.TotalAmount))

		err = s.Orders.UpdateOrderStatus(ctx, "ORD-404", domain.OrderShipped)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		all, err := s.Orders.ListOrders(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
