package visibility

import "testing"

func TestValidate(t *testing.T) {
  if err := Validate(); err != nil {
    t.Fatalf("Validate() = %v, want nil", err)
  }
}

func TestColumnsForSupersetOrdering(t *testing.T) {
  for _, entity := range []Entity{EntityPlaydate, EntityMaterial} {
    tiers := Tiers()
    for i := 1; i < len(tiers); i++ {
      lower, err := ColumnsFor(entity, tiers[i-1])
      if err != nil {
        t.Fatalf("ColumnsFor(%s, %s): %v", entity, tiers[i-1], err)
      }
      higher, err := ColumnsFor(entity, tiers[i])
      if err != nil {
        t.Fatalf("ColumnsFor(%s, %s): %v", entity, tiers[i], err)
      }
      if len(higher) <= len(lower) {
        t.Fatalf("%s: tier %s has %d columns, not more than %s with %d",
          entity, tiers[i], len(higher), tiers[i-1], len(lower))
      }
      set := make(map[string]struct{}, len(higher))
      for _, c := range higher {
        set[c] = struct{}{}
      }
      for _, c := range lower {
        if _, ok := set[c]; !ok {
          t.Fatalf("%s: column %q visible at %s but missing at %s", entity, c, tiers[i-1], tiers[i])
        }
      }
    }
  }
}

func TestColumnsForNoDuplicates(t *testing.T) {
  for _, entity := range []Entity{EntityPlaydate, EntityMaterial} {
    cols, err := ColumnsFor(entity, TierInternal)
    if err != nil {
      t.Fatalf("ColumnsFor(%s, internal): %v", entity, err)
    }
    seen := make(map[string]struct{}, len(cols))
    for _, c := range cols {
      if _, dup := seen[c]; dup {
        t.Fatalf("%s: duplicate column %q", entity, c)
      }
      seen[c] = struct{}{}
    }
  }
}

func TestColumnsForUnknown(t *testing.T) {
  if _, err := ColumnsFor(Entity("survey"), TierTeaser); err == nil {
    t.Fatalf("expected error for unknown entity")
  }
  if _, err := ColumnsFor(EntityPlaydate, Tier(42)); err == nil {
    t.Fatalf("expected error for unknown tier")
  }
}

func TestIntersect(t *testing.T) {
  cases := []struct {
    name     string
    cols     []string
    existing []string
    want     []string
  }{
    {
      name:     "all_present",
      cols:     []string{"id", "slug", "title"},
      existing: []string{"title", "slug", "id"},
      want:     []string{"id", "slug", "title"},
    },
    {
      name:     "missing_dropped",
      cols:     []string{"id", "remix_ideas", "title"},
      existing: []string{"id", "title"},
      want:     []string{"id", "title"},
    },
    {
      name:     "none_present",
      cols:     []string{"remix_ideas"},
      existing: []string{"id"},
      want:     []string{},
    },
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := Intersect(tc.cols, tc.existing)
      if len(got) != len(tc.want) {
        t.Fatalf("Intersect() = %v, want %v", got, tc.want)
      }
      for i := range got {
        if got[i] != tc.want[i] {
          t.Fatalf("Intersect() = %v, want %v", got, tc.want)
        }
      }
    })
  }
}

func TestParseTier(t *testing.T) {
  if tier, err := ParseTier("  Entitled "); err != nil || tier != TierEntitled {
    t.Fatalf("ParseTier(entitled) = %v, %v", tier, err)
  }
  if _, err := ParseTier("vip"); err == nil {
    t.Fatalf("expected error for unknown tier name")
  }
}
