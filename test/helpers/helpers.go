// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/adapters/jsonstore"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/pkg/config"
)

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupTestStore creates an initialized JSON file store backed by a
// temporary directory that is removed when the test completes.
func SetupTestStore(t *testing.T) *jsonstore.Store {
	t.Helper()

	store := jsonstore.NewStore(&jsonstore.Config{
		Dir:      t.TempDir(),
		FileName: "inventory.json",
	}, TestLogger())

	require.NoError(t, store.Initialize(context.Background()), "Failed to initialize test store")

	return store
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
		},
		Storage: config.StorageConfig{
			DataDir:   os.TempDir(),
			DataFile:  "inventory_test.json",
			StaticDir: ".",
		},
		Redis: config.RedisConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    "6379",
			DB:      0,
			TTL:     time.Hour,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "3000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestProduct creates a test product
func CreateTestProduct(overrides ...func(*domain.Product)) *domain.Product {
	product := &domain.Product{
		ID:            1700000000000,
		Name:          "Test Widget",
		Quantity:      10,
		PurchasePrice: 2.5,
		SellingPrice:  5.0,
		SoldQuantity:  0,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	for _, override := range overrides {
		override(product)
	}

	return product
}

// CreateTestProducts creates multiple test products with distinct ids
func CreateTestProducts(count int) []domain.Product {
	products := make([]domain.Product, count)

	for i := 0; i < count; i++ {
		products[i] = *CreateTestProduct(func(p *domain.Product) {
			p.ID = 1700000000000 + int64(i)
			p.Name = fmt.Sprintf("Test Product %d", i+1)
			p.Quantity = 5 + i
			p.SellingPrice = float64(5 + i)
		})
	}

	return products
}

// SeedTestState writes the given products into the store as a fresh
// inventory state and returns that state.
func SeedTestState(t *testing.T, store *jsonstore.Store, products []domain.Product, totalRevenue float64) *domain.InventoryState {
	t.Helper()

	state := domain.NewInventoryState()
	state.Products = append(state.Products, products...)
	state.TotalRevenue = totalRevenue

	require.NoError(t, store.Save(context.Background(), state), "Failed to seed test state")

	return state
}

// CompareProducts compares two products for testing
func CompareProducts(t *testing.T, expected, actual *domain.Product) {
	t.Helper()

	require.Equal(t, expected.ID, actual.ID)
	require.Equal(t, expected.Name, actual.Name)
	require.Equal(t, expected.Quantity, actual.Quantity)
	require.InDelta(t, expected.PurchasePrice, actual.PurchasePrice, 1e-9)
	require.InDelta(t, expected.SellingPrice, actual.SellingPrice, 1e-9)
	require.Equal(t, expected.SoldQuantity, actual.SoldQuantity)
}
