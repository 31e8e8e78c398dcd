package services

import (
  "context"
  "fmt"
  "testing"
  "time"
  "github.com/google/uuid"
  "github.com/playmatter/playdate-backend/internal/repos"
  "github.com/playmatter/playdate-backend/internal/types"
)

type memCache struct {
  values map[string]bool
  fail   bool
  dels   int
}

func newMemCache() *memCache {
  return &memCache{values: map[string]bool{}}
}

func (m *memCache) GetBool(ctx context.Context, key string) (bool, bool, error) {
  if m.fail {
    return false, false, fmt.Errorf("cache unavailable")
  }
  v, ok := m.values[key]
  return v, ok, nil
}

func (m *memCache) SetBool(ctx context.Context, key string, value bool, ttl time.Duration) error {
  if m.fail {
    return fmt.Errorf("cache unavailable")
  }
  m.values[key] = value
  return nil
}

func (m *memCache) Del(ctx context.Context, keys ...string) error {
  m.dels++
  for _, k := range keys {
    delete(m.values, k)
  }
  return nil
}

func (m *memCache) Close() error { return nil }

func newEntitlementFixture(t *testing.T, cache *memCache) (EntitlementService, repos.EntitlementRepo) {
  t.Helper()
  log := testLogger(t)
  db := testDB(t, entitlementDDL)
  repo := repos.NewEntitlementRepo(db, log)
  return NewEntitlementService(db, log, repo, cache), repo
}

func TestHasEntitlementReadsThroughCache(t *testing.T) {
  cache := newMemCache()
  svc, repo := newEntitlementFixture(t, cache)
  ctx := context.Background()
  orgID, packID := uuid.New(), uuid.New()

  if _, err := repo.Create(ctx, nil, []*types.Entitlement{{
    ID: uuid.New(), OrganizationID: orgID, PackID: packID, Source: "purchase",
  }}); err != nil {
    t.Fatalf("seeding entitlement: %v", err)
  }

  owns, err := svc.HasEntitlement(ctx, orgID, packID)
  if err != nil || !owns {
    t.Fatalf("HasEntitlement = (%v, %v), want (true, nil)", owns, err)
  }

  // Remove the row; the cached answer should still serve.
  if err := repo.DeleteByOrgAndPack(ctx, nil, orgID, packID); err != nil {
    t.Fatalf("deleting entitlement: %v", err)
  }
  owns, err = svc.HasEntitlement(ctx, orgID, packID)
  if err != nil || !owns {
    t.Fatalf("cached HasEntitlement = (%v, %v), want (true, nil)", owns, err)
  }
}

func TestHasEntitlementCacheFailureFallsBackToDatabase(t *testing.T) {
  cache := newMemCache()
  cache.fail = true
  svc, repo := newEntitlementFixture(t, cache)
  ctx := context.Background()
  orgID, packID := uuid.New(), uuid.New()

  if _, err := repo.Create(ctx, nil, []*types.Entitlement{{
    ID: uuid.New(), OrganizationID: orgID, PackID: packID, Source: "grant",
  }}); err != nil {
    t.Fatalf("seeding entitlement: %v", err)
  }

  owns, err := svc.HasEntitlement(ctx, orgID, packID)
  if err != nil || !owns {
    t.Fatalf("HasEntitlement with broken cache = (%v, %v), want (true, nil)", owns, err)
  }
}

func TestHasEntitlementNilIDsAreNotEntitled(t *testing.T) {
  svc, _ := newEntitlementFixture(t, newMemCache())
  owns, err := svc.HasEntitlement(context.Background(), uuid.Nil, uuid.New())
  if err != nil || owns {
    t.Fatalf("HasEntitlement(nil org) = (%v, %v), want (false, nil)", owns, err)
  }
}

func TestGrantIsIdempotentAndInvalidatesCache(t *testing.T) {
  cache := newMemCache()
  svc, repo := newEntitlementFixture(t, cache)
  ctx := context.Background()
  orgID, packID := uuid.New(), uuid.New()

  // Prime a stale negative answer.
  if owns, err := svc.HasEntitlement(ctx, orgID, packID); err != nil || owns {
    t.Fatalf("pre-grant HasEntitlement = (%v, %v), want (false, nil)", owns, err)
  }

  if err := svc.Grant(ctx, orgID, packID, "purchase"); err != nil {
    t.Fatalf("Grant: %v", err)
  }
  if err := svc.Grant(ctx, orgID, packID, "purchase"); err != nil {
    t.Fatalf("second Grant: %v", err)
  }

  rows, err := repo.GetByOrganizationIDs(ctx, nil, []uuid.UUID{orgID})
  if err != nil {
    t.Fatalf("listing entitlements: %v", err)
  }
  if len(rows) != 1 {
    t.Fatalf("got %d entitlement rows after double grant, want 1", len(rows))
  }
  if cache.dels == 0 {
    t.Fatalf("Grant did not invalidate the cache")
  }
  if owns, err := svc.HasEntitlement(ctx, orgID, packID); err != nil || !owns {
    t.Fatalf("post-grant HasEntitlement = (%v, %v), want (true, nil)", owns, err)
  }
}

func TestRevokeRemovesRowAndInvalidatesCache(t *testing.T) {
  cache := newMemCache()
  svc, repo := newEntitlementFixture(t, cache)
  ctx := context.Background()
  orgID, packID := uuid.New(), uuid.New()

  if err := svc.Grant(ctx, orgID, packID, "grant"); err != nil {
    t.Fatalf("Grant: %v", err)
  }
  if owns, _ := svc.HasEntitlement(ctx, orgID, packID); !owns {
    t.Fatalf("expected entitlement before revoke")
  }
  if err := svc.Revoke(ctx, orgID, packID); err != nil {
    t.Fatalf("Revoke: %v", err)
  }
  if owns, err := svc.HasEntitlement(ctx, orgID, packID); err != nil || owns {
    t.Fatalf("post-revoke HasEntitlement = (%v, %v), want (false, nil)", owns, err)
  }
  rows, err := repo.GetByOrganizationIDs(ctx, nil, []uuid.UUID{orgID})
  if err != nil {
    t.Fatalf("listing entitlements: %v", err)
  }
  if len(rows) != 0 {
    t.Fatalf("got %d entitlement rows after revoke, want 0", len(rows))
  }
}
