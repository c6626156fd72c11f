package main

import (
	"log"
	"os"

	"marketplace-billing-be/internal/model"
	"marketplace-billing-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Plan Catalog...")

	plans := []model.Plan{
		{
			Name:         "Starter Monthly",
			Slug:         "starter-monthly",
			Description:  "Entry plan for small shops, billed every month",
			Price:        15000,
			BillingCycle: "monthly",
			FreeMonths:   0,
			IsActive:     true,
			Features:     datatypes.JSON([]byte(`["storefront", "basic_reports"]`)),
			SortOrder:    1,
		},
		{
			Name:         "Business Semester",
			Slug:         "business-semesterly",
			Description:  "Mid-tier plan billed every six months",
			Price:        80000,
			BillingCycle: "semesterly",
			FreeMonths:   1,
			IsActive:     true,
			Features:     datatypes.JSON([]byte(`["storefront", "basic_reports", "priority_listing"]`)),
			SortOrder:    2,
		},
		{
			Name:         "Enterprise Annual",
			Slug:         "enterprise-annually",
			Description:  "Full-featured plan billed once a year",
			Price:        150000,
			BillingCycle: "annually",
			FreeMonths:   2,
			IsActive:     true,
			Features:     datatypes.JSON([]byte(`["storefront", "advanced_reports", "priority_listing", "dedicated_support"]`)),
			SortOrder:    3,
		},
	}

	for _, p := range plans {
		// Check if plan with this slug already exists
		var existing model.Plan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			color.Yellow("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Slug, err)
		} else {
			color.Green("Created plan: %s (%s)", p.Name, p.Slug)
		}
	}

	color.Cyan("Seeding default billing settings...")

	var settings model.Settings
	if err := db.First(&settings, 1).Error; err == nil {
		color.Yellow("Settings row already exists, skipping...")
	} else {
		settings = model.Settings{
			Id:                         1,
			TrialDurationDays:          30,
			AutoSuspendAfterTrial:      true,
			GracePeriodDays:            7,
			RequireSettledOnReactivate: false,
			ReminderDays:               datatypes.JSON([]byte(`{"monthly":[7,3,1],"semesterly":[15,7,3],"annually":[30,15,7]}`)),
		}
		if err := db.Create(&settings).Error; err != nil {
			color.Red("Error creating settings: %v", err)
		} else {
			color.Green("Created default settings")
		}
	}

	color.Cyan("Seeding completed!")
}
