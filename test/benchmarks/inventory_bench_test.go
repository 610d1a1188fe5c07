package benchmarks

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/adapters/jsonstore"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/domain"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/ports"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/services"
	"github.com/Ritesh-Bote/inventory-app-backend/test/helpers"
)

func benchStore(b *testing.B) *jsonstore.Store {
	b.Helper()

	dir, err := os.MkdirTemp("", "inventory-bench-*")
	if err != nil {
		b.Fatalf("failed to create temp dir: %v", err)
	}
	b.Cleanup(func() { os.RemoveAll(dir) })

	store := jsonstore.NewStore(&jsonstore.Config{
		Dir:      dir,
		FileName: "inventory.json",
	}, helpers.TestLogger())
	if err := store.Initialize(context.Background()); err != nil {
		b.Fatalf("failed to initialize store: %v", err)
	}
	return store
}

func BenchmarkInventoryOperations(b *testing.B) {
	ctx := context.Background()

	b.Run("Create", func(b *testing.B) {
		service := services.NewInventoryService(benchStore(b), helpers.TestLogger())

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.Create(ctx, ports.CreateParams{
				Name:          fmt.Sprintf("Benchmark Product %d", i),
				Quantity:      10,
				PurchasePrice: 2.5,
				SellingPrice:  5.0,
			})
		}
	})

	// Pre-create products for the read and sell benchmarks.
	store := benchStore(b)
	service := services.NewInventoryService(store, helpers.TestLogger())

	var productIDs []int64
	for i := 0; i < 100; i++ {
		product, err := service.Create(ctx, ports.CreateParams{
			Name:          fmt.Sprintf("Benchmark Product %d", i),
			Quantity:      1 << 30,
			PurchasePrice: 2.5,
			SellingPrice:  5.0,
		})
		if err != nil {
			b.Fatalf("failed to seed product: %v", err)
		}
		productIDs = append(productIDs, product.ID)
	}

	b.Run("List", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.List(ctx)
		}
	})

	b.Run("Sell", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			id := productIDs[i%len(productIDs)]
			_, _ = service.Sell(ctx, id, 1)
		}
	})

	b.Run("Summary", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.Summary(ctx)
		}
	})
}

func BenchmarkStateSerialization(b *testing.B) {
	ctx := context.Background()
	store := benchStore(b)

	state := domain.NewInventoryState()
	state.Products = helpers.CreateTestProducts(500)

	b.Run("Save", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := store.Save(ctx, state); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("Load", func(b *testing.B) {
		if err := store.Save(ctx, state); err != nil {
			b.Fatal(err)
		}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = store.Load(ctx)
		}
	})
}
