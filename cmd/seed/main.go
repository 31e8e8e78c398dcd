package main

import (
  "context"
  "fmt"
  "os"
  "github.com/google/uuid"
  "github.com/playmatter/playdate-backend/internal/db"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/types"
)

// Loads a small demo catalog so local discovery and matching have something
// to rank. Safe to re-run: existing slugs are skipped.
func main() {
  log, err := logger.New(os.Getenv("LOG_MODE"))
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err := postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  ctx := context.Background()
  packRepo := repos.NewPackRepo(thePG, log)
  playdateRepo := repos.NewPlaydateRepo(thePG, log)
  materialRepo := repos.NewMaterialRepo(thePG, log)

  starter := &types.Pack{
    ID:         uuid.New(),
    Slug:       "starter-pack",
    Title:      "Starter Pack",
    PriceCents: 1900,
    Published:  true,
  }
  existing, err := packRepo.GetBySlugs(ctx, nil, []string{starter.Slug})
  if err != nil {
    log.Error("Pack lookup failed", "error", err)
    os.Exit(1)
  }
  if len(existing) > 0 {
    starter = existing[0]
    log.Info("Pack already seeded", "slug", starter.Slug)
  } else if _, err := packRepo.Create(ctx, nil, []*types.Pack{starter}); err != nil {
    log.Error("Pack seed failed", "error", err)
    os.Exit(1)
  }

  playdates := []*types.Playdate{
    {
      ID:              uuid.New(),
      Slug:            "paper-bridges",
      PackID:          &starter.ID,
      Title:           "Paper Bridges",
      Headline:        "Span a canyon of couch cushions",
      PrimaryFunction: "build",
      ArcEmphasis:     []string{"persistence"},
      FrictionDial:    2,
      ReadyIn120s:     true,
      MaterialTags:    []string{"paper", "cardboard"},
      FormTags:        []string{"sheet"},
      SlotTags:        []string{"after-school"},
      ContextTags:     []string{"indoor"},
      EnergyTags:      []string{"calm"},
      Find:            "Gather ten sheets of paper and two chairs.",
      Fold:            "Fold each sheet into a beam.",
      Unfold:          "Test which beam shape holds the most weight.",
      Published:       true,
      SamplerEligible: true,
    },
    {
      ID:              uuid.New(),
      Slug:            "fabric-forts",
      PackID:          &starter.ID,
      Title:           "Fabric Forts",
      Headline:        "A fort only lasts as long as its knots",
      PrimaryFunction: "build",
      ArcEmphasis:     []string{"collaboration"},
      FrictionDial:    3,
      MaterialTags:    []string{"fabric"},
      FormTags:        []string{"sheet", "cord"},
      SlotTags:        []string{"weekend"},
      ContextTags:     []string{"indoor", "outdoor"},
      EnergyTags:      []string{"active"},
      Find:            "Collect bedsheets, string and clothespins.",
      Published:       true,
      SamplerEligible: true,
    },
  }
  for _, p := range playdates {
    if _, err := playdateRepo.GetBySlug(ctx, nil, p.Slug, []string{"id"}); err == nil {
      log.Info("Playdate already seeded", "slug", p.Slug)
      continue
    }
    if _, err := playdateRepo.Create(ctx, nil, []*types.Playdate{p}); err != nil {
      log.Error("Playdate seed failed", "slug", p.Slug, "error", err)
      os.Exit(1)
    }
  }

  materials := []*types.Material{
    {
      ID:           uuid.New(),
      Slug:         "cardboard-box",
      Name:         "Cardboard Box",
      PrimaryForm:  "cardboard",
      FunctionTags: []string{"structure", "surface"},
      ContextTags:  []string{"indoor"},
      Published:    true,
    },
    {
      ID:           uuid.New(),
      Slug:         "bedsheet",
      Name:         "Bedsheet",
      PrimaryForm:  "fabric",
      FunctionTags: []string{"cover", "canopy"},
      ContextTags:  []string{"indoor", "outdoor"},
      Published:    true,
    },
  }
  for _, m := range materials {
    if _, err := materialRepo.GetBySlug(ctx, nil, m.Slug, []string{"id"}); err == nil {
      log.Info("Material already seeded", "slug", m.Slug)
      continue
    }
    if _, err := materialRepo.Create(ctx, nil, []*types.Material{m}); err != nil {
      log.Error("Material seed failed", "slug", m.Slug, "error", err)
      os.Exit(1)
    }
  }

  log.Info("Seed complete")
}
