package visibility

import "testing"

func mustPanic(t *testing.T, fn func()) (panicked bool) {
  t.Helper()
  defer func() {
    if r := recover(); r != nil {
      panicked = true
    }
  }()
  fn()
  return false
}

func TestAssertNoLeaksRaisesOnForbiddenField(t *testing.T) {
  rows := []map[string]any{
    {"id": "a", "slug": "paper-bridges", "title": "Paper Bridges"},
    {"id": "b", "slug": "fabric-forts", "substitutions_notes": "use a bedsheet"},
  }
  if !mustPanic(t, func() { AssertNoLeaks(rows, EntityPlaydate, TierTeaser) }) {
    t.Fatalf("expected panic for entitled field at teaser tier")
  }
}

func TestAssertNoLeaksAllowsOwnTierFields(t *testing.T) {
  rows := []map[string]any{
    {"id": "a", "slug": "paper-bridges", "find": "gather paper", "substitutions_notes": "cardboard works"},
  }
  if mustPanic(t, func() { AssertNoLeaks(rows, EntityPlaydate, TierEntitled) }) {
    t.Fatalf("unexpected panic for entitled fields at entitled tier")
  }
}

func TestAssertNoLeaksIgnoresComputedKeys(t *testing.T) {
  rows := []map[string]any{
    {"id": "a", "score": 3, "coverage": []string{"materials"}},
  }
  if mustPanic(t, func() { AssertNoLeaks(rows, EntityPlaydate, TierTeaser) }) {
    t.Fatalf("unexpected panic for keys outside the column tables")
  }
}

func TestAssertNoLeaksInternalTierSeesAll(t *testing.T) {
  rows := []map[string]any{
    {"id": "a", "source_system_id": "notion:abc", "ip_tier": "core"},
  }
  if mustPanic(t, func() { AssertNoLeaks(rows, EntityPlaydate, TierInternal) }) {
    t.Fatalf("unexpected panic at internal tier")
  }
}
