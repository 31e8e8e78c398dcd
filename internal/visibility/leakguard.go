package visibility

import (
  "fmt"
  "os"
  "strings"
)

// guardActive is resolved once at startup so the production fast path is a
// single bool check.
var guardActive = !isProductionEnv(os.Getenv("APP_ENV"))

func isProductionEnv(env string) bool {
  switch strings.ToLower(strings.TrimSpace(env)) {
  case "prod", "production":
    return true
  }
  return false
}

// AssertNoLeaks verifies that no row carries a column forbidden at tier. It is
// a no-op in production. Outside production it panics on the first violation,
// naming the field and tier; the intent is to fail a test or a dev request the
// moment a query's projection widens past its declared tier.
func AssertNoLeaks(rows []map[string]any, entity Entity, tier Tier) {
  if !guardActive {
    return
  }
  forbidden, err := forbiddenFor(entity, tier)
  if err != nil {
    panic(err)
  }
  for i, row := range rows {
    for key := range row {
      if _, bad := forbidden[key]; bad {
        panic(fmt.Sprintf("visibility: field %q leaked on %s row %d rendered at tier %q", key, entity, i, tier))
      }
    }
  }
}
