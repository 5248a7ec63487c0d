package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/shopfleet/payouts/internal/api"
	"github.com/shopfleet/payouts/internal/domain"
	"github.com/shopfleet/payouts/internal/ingestion"
	"github.com/shopfleet/payouts/internal/repository"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "payouts.db"
	}

	log.Printf("Initializing database at %s", dbPath)
	db, err := repository.InitDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	defer db.Close()

	// Create repositories.
	orderRepo := repository.NewOrderRepo(db)
	configRepo := repository.NewConfigRepo(db)
	payoutRepo := repository.NewPayoutRepo(db)
	batchRepo := repository.NewBatchRepo(db)

	// Create services.
	importSvc := ingestion.NewService(orderRepo, configRepo, batchRepo)

	// Seed orders and settings if DB is empty.
	count, err := orderRepo.Count()
	if err != nil {
		log.Fatalf("Failed to count orders: %v", err)
	}
	if count == 0 {
		log.Println("Database is empty, seeding from testdata...")
		if err := seed(orderRepo, configRepo); err != nil {
			log.Printf("WARNING: Failed to seed: %v", err)
		}
	} else {
		log.Printf("Database already has %d orders, skipping seed", count)
	}

	// Create router.
	router := api.NewRouter(orderRepo, configRepo, payoutRepo, importSvc)

	log.Printf("Shopfleet Dropship Payout Reconciler")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("API base: http://localhost:%s/api/v1", port)
	log.Printf("")
	log.Printf("Endpoints:")
	log.Printf("  POST   /api/v1/imports/{orders|prices|rates}")
	log.Printf("  GET    /api/v1/orders")
	log.Printf("  GET    /api/v1/settings/{prices|rates|gaps|export}")
	log.Printf("  POST   /api/v1/payouts/calculate")
	log.Printf("  GET    /api/v1/payouts")
	log.Printf("  GET    /api/v1/payouts/{id}/export")
	log.Printf("  GET    /api/v1/dashboard")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func seed(orderRepo *repository.OrderRepo, configRepo *repository.ConfigRepo) error {
	var orders []domain.OrderRecord
	if err := loadJSON("orders.json", &orders); err != nil {
		return err
	}
	inserted, err := orderRepo.BulkInsert(orders)
	if err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	log.Printf("Seeded %d orders (out of %d in file)", inserted, len(orders))

	var prices []domain.ProductPrice
	if err := loadJSON("prices.json", &prices); err == nil {
		if n, err := configRepo.UpsertPrices(prices); err == nil {
			log.Printf("Seeded %d product prices", n)
		}
	}

	var rates []domain.ShippingRate
	if err := loadJSON("rates.json", &rates); err == nil {
		if n, err := configRepo.UpsertRates(rates); err == nil {
			log.Printf("Seeded %d shipping rates", n)
		}
	}

	return nil
}

func loadJSON(name string, v any) error {
	// Try multiple possible locations for testdata.
	candidates := []string{
		filepath.Join("testdata", name),
		filepath.Join(".", "testdata", name),
	}

	// Also try to find relative to the executable.
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(dir, "testdata", name),
			filepath.Join(dir, "..", "..", "testdata", name),
		)
	}

	var data []byte
	var loadErr error
	for _, path := range candidates {
		data, loadErr = os.ReadFile(path)
		if loadErr == nil {
			log.Printf("Loaded %s from %s", name, path)
			break
		}
	}
	if loadErr != nil {
		return fmt.Errorf("could not find %s in any candidate path: %w", name, loadErr)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", name, err)
	}
	return nil
}
