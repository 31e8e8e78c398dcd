package services

import (
  "context"
  "sort"
  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/normalization"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/requestdata"
  "github.com/playmatter/playdate-backend/internal/types"
  "github.com/playmatter/playdate-backend/internal/visibility"
)

const entitlementCheckConcurrency = 8

// MatchInput carries the five facet filters. Facets the caller left empty are
// excluded from scoring entirely; they are not misses.
type MatchInput struct {
  Materials    []string
  Forms        []string
  Slots        []string
  Contexts     []string
  EnergyLevels []string
}

func (in *MatchInput) normalize() {
  in.Materials = normalization.ParseStringSlice(in.Materials)
  in.Forms = normalization.ParseStringSlice(in.Forms)
  in.Slots = normalization.ParseStringSlice(in.Slots)
  in.Contexts = normalization.ParseStringSlice(in.Contexts)
  in.EnergyLevels = normalization.ParseStringSlice(in.EnergyLevels)
}

// Empty reports whether every facet is unpopulated. The handler rejects such
// requests before the service runs.
func (in MatchInput) Empty() bool {
  return len(in.Materials) == 0 && len(in.Forms) == 0 && len(in.Slots) == 0 &&
    len(in.Contexts) == 0 && len(in.EnergyLevels) == 0
}

// FacetNames lists the populated facet names, in canonical order.
func (in MatchInput) FacetNames() []string {
  var names []string
  for _, f := range in.facets() {
    names = append(names, f.name)
  }
  return names
}

type facet struct {
  name      string
  requested []string
  tags      func(p *types.Playdate) []string
}

func (in MatchInput) facets() []facet {
  all := []facet{
    {"materials", in.Materials, func(p *types.Playdate) []string { return p.MaterialTags }},
    {"forms", in.Forms, func(p *types.Playdate) []string { return p.FormTags }},
    {"slots", in.Slots, func(p *types.Playdate) []string { return p.SlotTags }},
    {"contexts", in.Contexts, func(p *types.Playdate) []string { return p.ContextTags }},
    {"energyLevels", in.EnergyLevels, func(p *types.Playdate) []string { return p.EnergyTags }},
  }
  populated := all[:0]
  for _, f := range all {
    if len(f.requested) > 0 {
      populated = append(populated, f)
    }
  }
  return populated
}

// MatchService ranks published playdates against the caller's facet filters
// and widens entitled results with the guide fields.
type MatchService interface {
  Match(ctx context.Context, input MatchInput) ([]map[string]any, error)
}

type matchService struct {
  db             *gorm.DB
  log            *logger.Logger
  playdateRepo   repos.PlaydateRepo
  entitlementSvc EntitlementService
  auditSvc       AuditService
  liveColumns    map[string][]string
}

func NewMatchService(
  db *gorm.DB,
  log *logger.Logger,
  playdateRepo repos.PlaydateRepo,
  entitlementSvc EntitlementService,
  auditSvc AuditService,
  liveColumns map[string][]string,
) MatchService {
  serviceLog := log.With("service", "MatchService")
  return &matchService{
    db:             db,
    log:            serviceLog,
    playdateRepo:   playdateRepo,
    entitlementSvc: entitlementSvc,
    auditSvc:       auditSvc,
    liveColumns:    liveColumns,
  }
}

type scoredPlaydate struct {
  playdate *types.Playdate
  score    int
  coverage []string
}

func intersects(a, b []string) bool {
  if len(a) == 0 || len(b) == 0 {
    return false
  }
  set := make(map[string]struct{}, len(a))
  for _, v := range a {
    set[v] = struct{}{}
  }
  for _, v := range b {
    if _, ok := set[v]; ok {
      return true
    }
  }
  return false
}

func (ms *matchService) columnsFor(tier visibility.Tier) ([]string, error) {
  cols, err := visibility.ColumnsFor(visibility.EntityPlaydate, tier)
  if err != nil {
    return nil, err
  }
  if ms.liveColumns != nil {
    if existing, ok := ms.liveColumns[string(visibility.EntityPlaydate)]; ok {
      cols = visibility.Intersect(cols, existing)
    }
  }
  return cols, nil
}

func (ms *matchService) Match(ctx context.Context, input MatchInput) ([]map[string]any, error) {
  input.normalize()
  facets := input.facets()

  teaserCols, err := ms.columnsFor(visibility.TierTeaser)
  if err != nil {
    return nil, err
  }

  // Candidates load through the teaser projection only; entitled fields never
  // touch memory for playdates the caller cannot see.
  candidates, err := ms.playdateRepo.ListCandidates(ctx, nil, teaserCols)
  if err != nil {
    return nil, err
  }

  scored := make([]scoredPlaydate, 0, len(candidates))
  for _, p := range candidates {
    var coverage []string
    for _, f := range facets {
      tags := normalization.ParseStringSlice(f.tags(p))
      if intersects(f.requested, tags) {
        coverage = append(coverage, f.name)
      }
    }
    if len(coverage) == 0 {
      continue
    }
    scored = append(scored, scoredPlaydate{playdate: p, score: len(coverage), coverage: coverage})
  }

  sort.SliceStable(scored, func(i, j int) bool {
    if scored[i].score != scored[j].score {
      return scored[i].score > scored[j].score
    }
    return scored[i].playdate.Title < scored[j].playdate.Title
  })

  guideByID := ms.resolveEntitledGuides(ctx, scored)

  teaserRows := make([]map[string]any, 0, len(scored))
  rows := make([]map[string]any, 0, len(scored))
  for _, sp := range scored {
    row := types.PickColumns(sp.playdate.Record(), teaserCols)
    teaserRows = append(teaserRows, row)
    full := make(map[string]any, len(row)+len(sp.coverage)+2)
    for k, v := range row {
      full[k] = v
    }
    if guide, ok := guideByID[sp.playdate.ID]; ok {
      for k, v := range guide {
        full[k] = v
      }
    }
    full["score"] = sp.score
    full["coverage"] = sp.coverage
    rows = append(rows, full)
  }
  // Enriched rows legitimately carry entitled fields; the guard runs on the
  // teaser projection they were built from.
  visibility.AssertNoLeaks(teaserRows, visibility.EntityPlaydate, visibility.TierTeaser)

  ms.recordAudit(ctx, input, scored)

  return rows, nil
}

// resolveEntitledGuides finds which ranked playdates the caller's org owns and
// re-fetches the entitled-tier fields for those. Entitlement checks for
// distinct playdates run concurrently; a failed check means not entitled.
func (ms *matchService) resolveEntitledGuides(ctx context.Context, scored []scoredPlaydate) map[uuid.UUID]map[string]any {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.OrganizationID == nil {
    return nil
  }
  orgID := *rd.OrganizationID

  type check struct {
    playdateID uuid.UUID
    owns       bool
  }
  checks := make([]check, len(scored))

  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(entitlementCheckConcurrency)
  for i, sp := range scored {
    if sp.playdate.PackID == nil {
      continue
    }
    i, sp := i, sp
    g.Go(func() error {
      owns, err := ms.entitlementSvc.HasEntitlement(gctx, orgID, *sp.playdate.PackID)
      if err != nil {
        ms.log.Warn("Entitlement check failed during match, treating as not entitled",
          "error", err, "playdate_id", sp.playdate.ID)
        owns = false
      }
      checks[i] = check{playdateID: sp.playdate.ID, owns: owns}
      return nil
    })
  }
  _ = g.Wait()

  var entitledIDs []uuid.UUID
  for _, c := range checks {
    if c.owns {
      entitledIDs = append(entitledIDs, c.playdateID)
    }
  }
  if len(entitledIDs) == 0 {
    return nil
  }

  guideCols, err := visibility.TierIncrement(visibility.EntityPlaydate, visibility.TierEntitled)
  if err != nil {
    ms.log.Warn("Entitled column lookup failed", "error", err)
    return nil
  }
  selectCols := append([]string{"id"}, guideCols...)
  if ms.liveColumns != nil {
    if existing, ok := ms.liveColumns[string(visibility.EntityPlaydate)]; ok {
      selectCols = visibility.Intersect(selectCols, existing)
    }
  }
  entitled, err := ms.playdateRepo.GetByIDs(ctx, nil, entitledIDs, selectCols)
  if err != nil {
    ms.log.Warn("Entitled field fetch failed, serving teaser fields only", "error", err)
    return nil
  }
  guideByID := make(map[uuid.UUID]map[string]any, len(entitled))
  for _, p := range entitled {
    guideByID[p.ID] = types.PickColumns(p.Record(), guideCols)
  }
  return guideByID
}

// recordAudit writes one best-effort trail row for authenticated callers,
// noting which facets were used, never their values.
func (ms *matchService) recordAudit(ctx context.Context, input MatchInput, scored []scoredPlaydate) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return
  }
  userID := rd.UserID
  ms.auditSvc.Record(ctx, &userID, rd.OrganizationID,
    "playdate", "", "playdate.match", rd.ClientIP, input.FacetNames())
}
