package services

import (
  "context"
  "fmt"
  "testing"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/requestdata"
  "github.com/playmatter/playdate-backend/internal/types"
)

type fakePlaydateRepo struct {
  candidates []*types.Playdate
  byID       map[uuid.UUID]*types.Playdate
}

func (f *fakePlaydateRepo) Create(ctx context.Context, tx *gorm.DB, playdates []*types.Playdate) ([]*types.Playdate, error) {
  return playdates, nil
}

func (f *fakePlaydateRepo) ListCandidates(ctx context.Context, tx *gorm.DB, columns []string) ([]*types.Playdate, error) {
  return f.candidates, nil
}

func (f *fakePlaydateRepo) ListPublished(ctx context.Context, tx *gorm.DB, columns []string) ([]*types.Playdate, error) {
  return f.candidates, nil
}

func (f *fakePlaydateRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string, columns []string) (*types.Playdate, error) {
  for _, p := range f.candidates {
    if p.Slug == slug {
      return p, nil
    }
  }
  return nil, repos.ErrNotFound
}

func (f *fakePlaydateRepo) GetByIDs(ctx context.Context, tx *gorm.DB, playdateIDs []uuid.UUID, columns []string) ([]*types.Playdate, error) {
  var out []*types.Playdate
  for _, id := range playdateIDs {
    if p, ok := f.byID[id]; ok {
      out = append(out, p)
    }
  }
  return out, nil
}

type fakeEntitlementService struct {
  owned map[uuid.UUID]bool
  fail  map[uuid.UUID]bool
}

func (f *fakeEntitlementService) HasEntitlement(ctx context.Context, orgID, packID uuid.UUID) (bool, error) {
  if f.fail[packID] {
    return false, fmt.Errorf("entitlement backend down")
  }
  return f.owned[packID], nil
}

func (f *fakeEntitlementService) Grant(ctx context.Context, orgID, packID uuid.UUID, source string) error {
  return nil
}

func (f *fakeEntitlementService) Revoke(ctx context.Context, orgID, packID uuid.UUID) error {
  return nil
}

func (f *fakeEntitlementService) ListForOrganization(ctx context.Context, orgID uuid.UUID) ([]*types.Entitlement, error) {
  return nil, nil
}

type fakeAuditService struct {
  actions []string
  fields  [][]string
}

func (f *fakeAuditService) Record(ctx context.Context, actorUserID, orgID *uuid.UUID, subjectType, subjectID, action, ip string, fields []string) {
  f.actions = append(f.actions, action)
  f.fields = append(f.fields, fields)
}

func testPlaydate(title, slug string, packID *uuid.UUID, materials, forms, contexts []string) *types.Playdate {
  return &types.Playdate{
    ID:           uuid.New(),
    Slug:         slug,
    PackID:       packID,
    Title:        title,
    MaterialTags: materials,
    FormTags:     forms,
    ContextTags:  contexts,
  }
}

func newTestMatchService(t *testing.T, repo *fakePlaydateRepo, ent *fakeEntitlementService, audit *fakeAuditService) MatchService {
  t.Helper()
  log := testLogger(t)
  return NewMatchService(nil, log, repo, ent, audit, nil)
}

func TestMatchScoresPopulatedFacetsOnly(t *testing.T) {
  both := testPlaydate("Both Facets", "both-facets", nil, []string{"cardboard"}, nil, []string{"indoor"})
  one := testPlaydate("One Facet", "one-facet", nil, []string{"cardboard"}, nil, []string{"outdoor"})
  neither := testPlaydate("Neither", "neither", nil, []string{"fabric"}, nil, []string{"outdoor"})
  repo := &fakePlaydateRepo{candidates: []*types.Playdate{neither, one, both}}
  svc := newTestMatchService(t, repo, &fakeEntitlementService{}, &fakeAuditService{})

  rows, err := svc.Match(context.Background(), MatchInput{
    Materials: []string{"cardboard"},
    Contexts:  []string{"indoor"},
  })
  if err != nil {
    t.Fatalf("Match() error: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("got %d results, want 2 (zero-score playdates must be excluded)", len(rows))
  }
  if rows[0]["slug"] != "both-facets" || rows[0]["score"] != 2 {
    t.Fatalf("top result = %v (score %v), want both-facets with score 2", rows[0]["slug"], rows[0]["score"])
  }
  if rows[1]["slug"] != "one-facet" || rows[1]["score"] != 1 {
    t.Fatalf("second result = %v (score %v), want one-facet with score 1", rows[1]["slug"], rows[1]["score"])
  }
}

func TestMatchEmptyCatalogGivesEmptyList(t *testing.T) {
  repo := &fakePlaydateRepo{}
  svc := newTestMatchService(t, repo, &fakeEntitlementService{}, &fakeAuditService{})
  rows, err := svc.Match(context.Background(), MatchInput{Materials: []string{"cardboard"}})
  if err != nil {
    t.Fatalf("Match() error: %v", err)
  }
  if len(rows) != 0 {
    t.Fatalf("got %d results, want 0", len(rows))
  }
}

func TestMatchTieBreaksAlphabeticallyByTitle(t *testing.T) {
  zebra := testPlaydate("Zebra Crossing", "zebra-crossing", nil, []string{"cardboard"}, []string{"sheet"}, nil)
  apple := testPlaydate("Apple Stack", "apple-stack", nil, []string{"cardboard"}, []string{"sheet"}, nil)
  repo := &fakePlaydateRepo{candidates: []*types.Playdate{zebra, apple}}
  svc := newTestMatchService(t, repo, &fakeEntitlementService{}, &fakeAuditService{})

  input := MatchInput{Materials: []string{"cardboard"}, Forms: []string{"sheet"}, Contexts: []string{"indoor"}}
  rows, err := svc.Match(context.Background(), input)
  if err != nil {
    t.Fatalf("Match() error: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("got %d results, want 2", len(rows))
  }
  if rows[0]["title"] != "Apple Stack" || rows[1]["title"] != "Zebra Crossing" {
    t.Fatalf("tie order = [%v, %v], want alphabetical by title", rows[0]["title"], rows[1]["title"])
  }

  // Same input, same state, same ordering.
  again, err := svc.Match(context.Background(), input)
  if err != nil {
    t.Fatalf("Match() second call error: %v", err)
  }
  for i := range rows {
    if rows[i]["slug"] != again[i]["slug"] {
      t.Fatalf("ordering not deterministic at index %d: %v vs %v", i, rows[i]["slug"], again[i]["slug"])
    }
  }
}

func TestMatchMaterialFacetExcludesNonIntersecting(t *testing.T) {
  cardboard := testPlaydate("Cardboard Castle", "cardboard-castle", nil, []string{"cardboard", "paper"}, nil, nil)
  fabric := testPlaydate("Fabric Fort", "fabric-fort", nil, []string{"fabric"}, nil, nil)
  repo := &fakePlaydateRepo{candidates: []*types.Playdate{cardboard, fabric}}
  svc := newTestMatchService(t, repo, &fakeEntitlementService{}, &fakeAuditService{})

  rows, err := svc.Match(context.Background(), MatchInput{Materials: []string{"cardboard"}})
  if err != nil {
    t.Fatalf("Match() error: %v", err)
  }
  if len(rows) != 1 || rows[0]["slug"] != "cardboard-castle" {
    t.Fatalf("got %v, want only cardboard-castle", rows)
  }
}

func TestMatchAnonymousOmitsGuideFields(t *testing.T) {
  packID := uuid.New()
  p := testPlaydate("Paper Bridges", "paper-bridges", &packID, []string{"paper"}, nil, nil)
  full := *p
  full.SubstitutionsNotes = "cardboard works too"
  full.FindAgainPrompt = "what held the weight?"
  repo := &fakePlaydateRepo{
    candidates: []*types.Playdate{p},
    byID:       map[uuid.UUID]*types.Playdate{p.ID: &full},
  }
  ent := &fakeEntitlementService{owned: map[uuid.UUID]bool{packID: true}}
  svc := newTestMatchService(t, repo, ent, &fakeAuditService{})

  rows, err := svc.Match(context.Background(), MatchInput{Materials: []string{"paper"}})
  if err != nil {
    t.Fatalf("Match() error: %v", err)
  }
  if len(rows) != 1 {
    t.Fatalf("got %d results, want 1", len(rows))
  }
  for _, key := range []string{"substitutions_notes", "find_again_prompt", "find", "fold", "unfold", "find_again_mode"} {
    if _, present := rows[0][key]; present {
      t.Fatalf("anonymous caller received guide field %q", key)
    }
  }
}

func entitledContext(orgID uuid.UUID) context.Context {
  userID := uuid.New()
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
    UserID:         userID,
    OrganizationID: &orgID,
  })
}

func TestMatchEntitledOrgGetsGuideFieldsForOwnedPackOnly(t *testing.T) {
  ownedPack := uuid.New()
  otherPack := uuid.New()
  owned := testPlaydate("Owned Playdate", "owned-playdate", &ownedPack, []string{"paper"}, nil, nil)
  unowned := testPlaydate("Unowned Playdate", "unowned-playdate", &otherPack, []string{"paper"}, nil, nil)

  ownedFull := *owned
  ownedFull.SubstitutionsNotes = "cardboard works too"
  ownedFull.FindAgainMode = "remix"
  unownedFull := *unowned
  unownedFull.SubstitutionsNotes = "should never surface"

  repo := &fakePlaydateRepo{
    candidates: []*types.Playdate{owned, unowned},
    byID: map[uuid.UUID]*types.Playdate{
      owned.ID:   &ownedFull,
      unowned.ID: &unownedFull,
    },
  }
  ent := &fakeEntitlementService{owned: map[uuid.UUID]bool{ownedPack: true}}
  svc := newTestMatchService(t, repo, ent, &fakeAuditService{})

  orgID := uuid.New()
  rows, err := svc.Match(entitledContext(orgID), MatchInput{Materials: []string{"paper"}})
  if err != nil {
    t.Fatalf("Match() error: %v", err)
  }
  if len(rows) != 2 {
    t.Fatalf("got %d results, want 2", len(rows))
  }
  bySlug := map[any]map[string]any{}
  for _, r := range rows {
    bySlug[r["slug"]] = r
  }
  got := bySlug["owned-playdate"]
  if got["substitutions_notes"] != "cardboard works too" || got["find_again_mode"] != "remix" {
    t.Fatalf("owned playdate missing guide fields: %v", got)
  }
  if _, present := bySlug["unowned-playdate"]["substitutions_notes"]; present {
    t.Fatalf("unowned playdate leaked guide fields")
  }
}

func TestMatchEntitlementFailureFailsClosed(t *testing.T) {
  badPack := uuid.New()
  goodPack := uuid.New()
  flaky := testPlaydate("Flaky Pack Playdate", "flaky", &badPack, []string{"paper"}, nil, nil)
  fine := testPlaydate("Working Pack Playdate", "working", &goodPack, []string{"paper"}, nil, nil)
  fineFull := *fine
  fineFull.Find = "gather paper"

  repo := &fakePlaydateRepo{
    candidates: []*types.Playdate{flaky, fine},
    byID:       map[uuid.UUID]*types.Playdate{fine.ID: &fineFull},
  }
  ent := &fakeEntitlementService{
    owned: map[uuid.UUID]bool{goodPack: true, badPack: true},
    fail:  map[uuid.UUID]bool{badPack: true},
  }
  svc := newTestMatchService(t, repo, ent, &fakeAuditService{})

  rows, err := svc.Match(entitledContext(uuid.New()), MatchInput{Materials: []string{"paper"}})
  if err != nil {
    t.Fatalf("Match() error: %v (one failed check must not abort ranking)", err)
  }
  if len(rows) != 2 {
    t.Fatalf("got %d results, want 2", len(rows))
  }
  for _, r := range rows {
    if r["slug"] == "flaky" {
      if _, present := r["find"]; present {
        t.Fatalf("failed entitlement check must not disclose guide fields")
      }
    }
    if r["slug"] == "working" {
      if r["find"] != "gather paper" {
        t.Fatalf("working pack should still be enriched: %v", r)
      }
    }
  }
}

func TestMatchAuditsFacetNamesForAuthenticatedCallers(t *testing.T) {
  p := testPlaydate("Paper Bridges", "paper-bridges", nil, []string{"paper"}, nil, []string{"indoor"})
  repo := &fakePlaydateRepo{candidates: []*types.Playdate{p}}
  audit := &fakeAuditService{}
  svc := newTestMatchService(t, repo, &fakeEntitlementService{}, audit)

  if _, err := svc.Match(entitledContext(uuid.New()), MatchInput{
    Materials: []string{"paper"},
    Contexts:  []string{"indoor"},
  }); err != nil {
    t.Fatalf("Match() error: %v", err)
  }
  if len(audit.actions) != 1 || audit.actions[0] != "playdate.match" {
    t.Fatalf("audit actions = %v, want one playdate.match", audit.actions)
  }
  wantFields := map[string]bool{"materials": true, "contexts": true}
  if len(audit.fields[0]) != 2 {
    t.Fatalf("audit fields = %v, want facet names only", audit.fields[0])
  }
  for _, f := range audit.fields[0] {
    if !wantFields[f] {
      t.Fatalf("unexpected audit field %q", f)
    }
  }
}

func TestMatchNoAuditForAnonymousCallers(t *testing.T) {
  p := testPlaydate("Paper Bridges", "paper-bridges", nil, []string{"paper"}, nil, nil)
  repo := &fakePlaydateRepo{candidates: []*types.Playdate{p}}
  audit := &fakeAuditService{}
  svc := newTestMatchService(t, repo, &fakeEntitlementService{}, audit)

  if _, err := svc.Match(context.Background(), MatchInput{Materials: []string{"paper"}}); err != nil {
    t.Fatalf("Match() error: %v", err)
  }
  if len(audit.actions) != 0 {
    t.Fatalf("anonymous match must not audit, got %v", audit.actions)
  }
}
