package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prepmind/prepmind-backend/internal/config"
	"github.com/prepmind/prepmind-backend/internal/database"
	"github.com/prepmind/prepmind-backend/internal/logger"
	"github.com/prepmind/prepmind-backend/internal/model"
	"github.com/prepmind/prepmind-backend/internal/repository"
	"github.com/prepmind/prepmind-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const demoEmail = "demo@prepmind.local"

// Sample study passages long enough for assessment generation.
var passages = []struct {
	title   string
	content string
}{
	{
		title: "Cell Biology Basics",
		content: "The mitochondria is the powerhouse of the cell because it produces most of the chemical energy needed to power biochemical reactions. Adenosine triphosphate is the molecule that carries this energy throughout the cell interior. Cellular respiration takes place in three stages that each contribute a different amount of usable energy. Glycolysis happens in the cytoplasm and breaks glucose into two molecules of pyruvate. The citric acid cycle then oxidizes those molecules inside the mitochondrial matrix. Oxidative phosphorylation finally produces the bulk of the adenosine triphosphate along the inner membrane.",
	},
	{
		title: "The Water Cycle",
		content: "Water constantly moves between the oceans, the atmosphere, and the land in a process called the hydrologic cycle. Evaporation transfers water from surface reservoirs into the atmosphere when solar radiation heats the liquid. Condensation gathers that vapor into clouds as rising air cools below the dew point temperature. Precipitation returns the water to the surface as rain, snow, sleet, or hail depending on conditions. Infiltration carries part of the fallen water into the soil where plants and aquifers absorb it. Runoff channels the remainder across the landscape into streams and eventually back to the sea.",
	},
	{
		title: "Foundations of Economics",
		content: "Scarcity is the fundamental economic problem of having seemingly unlimited wants in a world of limited resources. Opportunity cost measures the value of the best alternative that is given up whenever a choice is made. Supply describes the quantity of a good that producers are willing to sell at each possible price level. Demand describes the quantity that consumers are willing to purchase at those same price levels. Market equilibrium occurs where the supply curve and the demand curve intersect at a single price. Shifts in either curve move the equilibrium and change both the market price and the traded quantity.",
	},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	documentService := service.NewDocumentService(documentRepo)

	fmt.Println("=== Seeding Demo User and Study Documents ===")

	// Find or create the demo user.
	user, err := userRepo.GetByEmail(ctx, demoEmail)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Fatal().Err(err).Msg("Failed to check existing demo user")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("prepmind123"), cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash password")
		}

		user = &model.User{
			Email:        demoEmail,
			Name:         "Demo Learner",
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Msg("Failed to create demo user")
		}
		fmt.Printf("Created demo user with ID: %d\n", user.ID)
	} else {
		fmt.Printf("Found existing demo user with ID: %d\n", user.ID)
	}

	successCount := 0
	for _, p := range passages {
		doc, err := documentService.Ingest(ctx, user.ID, p.title, p.content)
		if err != nil {
			fmt.Printf("Error seeding document %q: %v\n", p.title, err)
			continue
		}
		successCount++
		fmt.Printf("Seeded %q (%s)\n", doc.Title, doc.ID)
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d documents.\n", successCount, len(passages))
}
