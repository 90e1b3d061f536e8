package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"skrbl-automation-platform/internal/config"
	"skrbl-automation-platform/internal/domain/model"
	"skrbl-automation-platform/internal/domain/ports/repository"
	pg "skrbl-automation-platform/internal/infra/db/postgres"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	adminUser := flag.String("admin", "", "user id to grant the admin role")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	seqRepo := pg.NewSequenceRepo(pool)
	roleRepo := pg.NewRoleRepo(pool)

	if *adminUser != "" {
		err := roleRepo.Save(ctx, repository.NoTX, &model.UserRole{
			UserID:    *adminUser,
			Role:      model.RoleAdmin,
			UpdatedAt: time.Now(),
		})
		if err != nil {
			log.Fatalf("grant admin to %q: %v", *adminUser, err)
		}
		fmt.Printf("granted admin role to %s\n", *adminUser)
	}

	// If sequences already exist, do nothing
	existing, err := seqRepo.ListAll(ctx, repository.NoTX)
	if err != nil {
		log.Fatalf("list sequences: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d sequences already present. No changes.\n", len(existing))
		for _, s := range existing {
			fmt.Printf("  - %s (trigger=%s, steps=%d, active=%v)\n", s.Name, s.TriggerType, len(s.Steps), s.Active)
		}
		return
	}

	seed := []*model.EmailSequence{
		{
			ID:          uuid.NewString(),
			Name:        "Welcome Series",
			TriggerType: "signup",
			Active:      true,
			Steps: []model.DripStep{
				{Subject: "Welcome to SKRBL!", Body: "Your automation squad is ready. Here is how to launch your first agent.", DayOffset: 0},
				{Subject: "Your first win", Body: "Most teams generate their first content batch in under five minutes. Want a walkthrough?", DayOffset: 2},
				{Subject: "One week in", Body: "Here is what businesses like yours automate first, and what it saves them.", DayOffset: 7},
			},
			CreatedAt: time.Now(),
		},
		{
			ID:          uuid.NewString(),
			Name:        "Lead Nurture",
			TriggerType: "lead_captured",
			Active:      true,
			Steps: []model.DripStep{
				{Subject: "Thanks for reaching out", Body: "We got your details. A concierge will follow up shortly.", DayOffset: 0},
				{Subject: "Still thinking it over?", Body: "Here are three ways SKRBL agents pay for themselves in the first month.", DayOffset: 3},
			},
			CreatedAt: time.Now(),
		},
		{
			ID:          uuid.NewString(),
			Name:        "Upgrade Push",
			TriggerType: "trial_ending",
			Active:      true,
			Steps: []model.DripStep{
				{Subject: "Your trial ends soon", Body: "Keep your agents running: upgrade before your trial window closes.", DayOffset: 0},
			},
			CreatedAt: time.Now(),
		},
	}

	for _, s := range seed {
		if err := seqRepo.Save(ctx, repository.NoTX, s); err != nil {
			log.Fatalf("save sequence %q: %v", s.Name, err)
		}
		fmt.Printf("seeded: %s (id=%s, trigger=%s, steps=%d)\n", s.Name, s.ID, s.TriggerType, len(s.Steps))
	}

	fmt.Println("Seeding complete.")
}
