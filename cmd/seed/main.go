// Command seed populates the catalog with generated menu items for
// local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/infrastructure/config"
	gormrepo "github.com/howl2go/v2/internal/infrastructure/persistence/gorm"
	"github.com/howl2go/v2/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	perVenue := flag.Int("per-venue", 40, "items to generate per venue")
	seed := flag.Int64("seed", 0, "random seed (0 uses a random one)")
	flag.Parse()

	if err := run(*configPath, *perVenue, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "seed failed:", err)
		os.Exit(1)
	}
}

func run(configPath string, perVenue int, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{Level: "info", Format: "console", Development: true})
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := gormrepo.NewDatabase(cfg.Database, log)
	if err != nil {
		return err
	}

	faker := gofakeit.New(seed)
	var items []menu.Item
	for _, company := range menu.Companies {
		for i := 0; i < perVenue; i++ {
			items = append(items, generateItem(faker, company))
		}
	}

	repo := gormrepo.NewItemRepository(db)
	if err := repo.Save(context.Background(), items...); err != nil {
		return err
	}

	fmt.Printf("seeded %d items across %d venues\n", len(items), len(menu.Companies))
	return nil
}

// generateItem builds a menu item with internally consistent nutrition:
// fat and carbs drive calories instead of being rolled independently.
func generateItem(faker *gofakeit.Faker, company string) menu.Item {
	totalFat := faker.Float64Range(2, 45)
	carbs := faker.Float64Range(10, 90)
	protein := faker.Float64Range(2, 50)
	calories := math.Round(totalFat*9 + carbs*4 + protein*4)

	return menu.Item{
		ID:                   uuid.New(),
		Company:              company,
		Name:                 fmt.Sprintf("%s %s", faker.AdjectiveDescriptive(), faker.Dinner()),
		Calories:             calories,
		CaloriesFromFat:      math.Round(totalFat * 9),
		TotalFat:             math.Round(totalFat),
		SaturatedFat:         math.Round(totalFat * faker.Float64Range(0.2, 0.5)),
		TransFat:             math.Round(faker.Float64Range(0, 2)),
		Cholesterol:          math.Round(faker.Float64Range(0, 150)),
		Sodium:               math.Round(faker.Float64Range(100, 2000)),
		Carbs:                math.Round(carbs),
		Fiber:                math.Round(faker.Float64Range(0, 10)),
		Sugars:               math.Round(faker.Float64Range(0, 40)),
		Protein:              math.Round(protein),
		WeightWatchersPoints: math.Round(calories / 50),
	}
}
