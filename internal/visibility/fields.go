package visibility

import (
  "fmt"
)

// Entity names a catalog table with tiered columns.
type Entity string

const (
  EntityPlaydate Entity = "playdate"
  EntityMaterial Entity = "material"
)

// tierIncrements lists, per entity, the columns each tier ADDS on top of the
// tier below it. ColumnsFor folds these into cumulative lists, so the
// monotonic-superset property holds by construction; Validate guards against
// duplicate names drifting in across increments.
var tierIncrements = map[Entity]map[Tier][]string{
  EntityPlaydate: {
    TierTeaser: {
      "id", "slug", "pack_id", "title", "headline", "primary_function",
      "arc_emphasis", "friction_dial", "ready_in_120s",
      "material_tags", "form_tags", "slot_tags", "context_tags", "energy_tags",
    },
    TierEntitled: {
      "find", "fold", "unfold",
      "substitutions_notes", "find_again_mode", "find_again_prompt",
    },
    TierCollective: {
      "facilitation_notes", "remix_ideas",
    },
    TierInternal: {
      "published", "sampler_eligible", "source_system_id", "synced_at", "ip_tier",
    },
  },
  EntityMaterial: {
    TierTeaser: {
      "id", "slug", "name", "primary_form", "function_tags", "context_tags",
    },
    TierEntitled: {
      "connector_modes", "shareability", "sourcing_notes",
    },
    TierCollective: {
      "care_notes",
    },
    TierInternal: {
      "published", "source_system_id", "synced_at",
    },
  },
}

// ColumnsFor returns the ordered column list visible at tier for entity. An
// unknown entity or tier is a configuration error, not a runtime condition.
func ColumnsFor(entity Entity, tier Tier) ([]string, error) {
  increments, ok := tierIncrements[entity]
  if !ok {
    return nil, fmt.Errorf("no column sets defined for entity %q", entity)
  }
  if !tier.Valid() {
    return nil, fmt.Errorf("no column set defined for entity %q at tier %q", entity, tier)
  }
  var cols []string
  for _, t := range Tiers() {
    if t > tier {
      break
    }
    cols = append(cols, increments[t]...)
  }
  return cols, nil
}

// TierIncrement returns only the columns tier ADDS over the tier below it,
// for callers that merge higher-tier fields into an already-projected row.
func TierIncrement(entity Entity, tier Tier) ([]string, error) {
  increments, ok := tierIncrements[entity]
  if !ok {
    return nil, fmt.Errorf("no column sets defined for entity %q", entity)
  }
  if !tier.Valid() {
    return nil, fmt.Errorf("no column set defined for entity %q at tier %q", entity, tier)
  }
  return append([]string(nil), increments[tier]...), nil
}

// Intersect keeps only the columns of cols that exist in the live schema,
// preserving order. Missing columns are dropped silently so a deploy that
// races a migration degrades instead of erroring.
func Intersect(cols []string, existing []string) []string {
  have := make(map[string]struct{}, len(existing))
  for _, c := range existing {
    have[c] = struct{}{}
  }
  kept := make([]string, 0, len(cols))
  for _, c := range cols {
    if _, ok := have[c]; ok {
      kept = append(kept, c)
    }
  }
  return kept
}

// forbiddenFor returns every column defined for entity that tier may NOT see.
func forbiddenFor(entity Entity, tier Tier) (map[string]struct{}, error) {
  increments, ok := tierIncrements[entity]
  if !ok {
    return nil, fmt.Errorf("no column sets defined for entity %q", entity)
  }
  if !tier.Valid() {
    return nil, fmt.Errorf("no column set defined for entity %q at tier %q", entity, tier)
  }
  forbidden := make(map[string]struct{})
  for _, t := range Tiers() {
    if t <= tier {
      continue
    }
    for _, c := range increments[t] {
      forbidden[c] = struct{}{}
    }
  }
  return forbidden, nil
}

// Validate checks the column tables for duplicate names within an entity.
// Called once at startup; a failure is a programming error.
func Validate() error {
  for entity, increments := range tierIncrements {
    seen := make(map[string]Tier)
    for _, t := range Tiers() {
      for _, c := range increments[t] {
        if prior, dup := seen[c]; dup {
          return fmt.Errorf("entity %q: column %q declared at both %q and %q", entity, c, prior, t)
        }
        seen[c] = t
      }
    }
  }
  return nil
}
