package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/medmatch/internal/app/bootstrap"
	appconfig "github.com/wolfman30/medmatch/internal/config"
	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/matching"
	"github.com/wolfman30/medmatch/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()
	if cfg.GeminiAPIKey == "" {
		fmt.Println("GEMINI_API_KEY not set; every call below will return its fallback value")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	ai, closers, err := bootstrap.BuildGateway(ctx, cfg, nil, logging.New(cfg.LogLevel))
	if err != nil {
		fmt.Printf("failed to build gateway: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("AI Gateway Smoke Test")
	fmt.Println(rule)

	doctors := directory.Seed()
	query := "I've had a rash on my arms for two weeks and it keeps getting itchier"

	fmt.Println("\n[1] FindSpecialist")
	start := time.Now()
	results := ai.FindSpecialist(ctx, query, doctors)
	fmt.Printf("    %d raw results in %v\n", len(results), time.Since(start).Round(time.Millisecond))
	view := matching.Reconcile(doctors, results, true)
	fmt.Printf("    view state: %s\n", view.State)
	for _, e := range view.Entries {
		fmt.Printf("    - %s (%s): %s\n", e.Doctor.Name, e.Doctor.Specialty, e.MatchReason)
	}

	fmt.Println("\n[2] GenerateBio")
	start = time.Now()
	bio := ai.GenerateBio(ctx, directory.BioRequest{
		Name:            "Dr. Ana Morales",
		Specialty:       directory.SpecialtyOrthopedist,
		YearsExperience: 9,
		Keywords:        "sports injuries, knee arthroscopy",
	})
	fmt.Printf("    (%v) %s\n", time.Since(start).Round(time.Millisecond), bio)

	fmt.Println("\n[3] AskClinicalQuestion")
	start = time.Now()
	answer := ai.AskClinicalQuestion(ctx, "Current first-line treatment for acute otitis media in children?")
	fmt.Printf("    (%v) %s\n", time.Since(start).Round(time.Millisecond), answer.Answer)
	for _, s := range answer.Sources {
		fmt.Printf("    * %s <%s>\n", s.Title, s.URI)
	}
}
