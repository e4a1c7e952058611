package main

import (
	"context"
	"log"
	"time"

	"github.com/ochoaluis/gymkeeper/internal/config"
	"github.com/ochoaluis/gymkeeper/internal/domain"
	"github.com/ochoaluis/gymkeeper/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds the membership plans and the point-of-sale catalog a freshly
// installed gym starts with. Re-running creates duplicates, so run it
// once per database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)
	pkgRepo := repository.NewMongoPackageRepository(db)
	categoryRepo := repository.NewMongoCategoryRepository(db)
	productRepo := repository.NewMongoProductRepository(db)

	packages := []domain.Package{
		{Name: "Day Pass", Price: 50, Duration: domain.DurationVisit, Active: true},
		{Name: "One Week", Price: 150, Duration: domain.DurationOneWeek, Active: true},
		{Name: "Two Weeks", Price: 250, Duration: domain.DurationTwoWeeks, Active: true},
		{Name: "Monthly", Price: 400, Duration: domain.DurationOneMonth, EnrollmentFee: 100, Active: true},
		{Name: "Quarterly", Price: 1050, Duration: domain.DurationThreeMonths, EnrollmentFee: 100, Active: true},
		{Name: "Semiannual", Price: 1900, Duration: domain.DurationSixMonths, EnrollmentFee: 100, Active: true},
		{Name: "Annual", Price: 3400, Duration: domain.DurationOneYear, Active: true},
	}
	for i := range packages {
		if err := pkgRepo.Create(ctx, &packages[i]); err != nil {
			log.Fatalf("Failed to seed package %q: %v", packages[i].Name, err)
		}
	}
	log.Printf("✓ Seeded %d packages", len(packages))

	categories := []domain.Category{
		{Name: "Drinks"},
		{Name: "Supplements"},
		{Name: "Accessories"},
	}
	for i := range categories {
		if err := categoryRepo.Create(ctx, &categories[i]); err != nil {
			log.Fatalf("Failed to seed category %q: %v", categories[i].Name, err)
		}
	}
	log.Printf("✓ Seeded %d categories", len(categories))

	products := []domain.Product{
		{Name: "Water 600ml", Code: "DRK-001", PurchasePrice: 8, SalePrice: 15, Stock: 48, CategoryID: categories[0].ID},
		{Name: "Sports Drink 500ml", Code: "DRK-002", PurchasePrice: 14, SalePrice: 25, Stock: 36, CategoryID: categories[0].ID},
		{Name: "Protein Shake", Code: "SUP-001", PurchasePrice: 38, SalePrice: 65.50, Stock: 20, CategoryID: categories[1].ID},
		{Name: "Creatine 300g", Code: "SUP-002", PurchasePrice: 280, SalePrice: 450, Stock: 8, CategoryID: categories[1].ID},
		{Name: "Gym Towel", Code: "ACC-001", PurchasePrice: 60, SalePrice: 120, Stock: 15, CategoryID: categories[2].ID},
		{Name: "Lifting Gloves", Code: "ACC-002", PurchasePrice: 90, SalePrice: 180, Stock: 10, CategoryID: categories[2].ID},
	}
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			log.Fatalf("Failed to seed product %q: %v", products[i].Name, err)
		}
	}
	log.Printf("✓ Seeded %d products", len(products))
}
