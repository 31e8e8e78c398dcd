package visibility

import (
  "fmt"
  "strings"
)

// Tier is the caller-visibility level controlling which columns of a catalog
// entity may be selected and returned. Tiers are strictly ordered and each
// tier's column set contains every lower tier's set.
type Tier int

const (
  TierTeaser Tier = iota
  TierEntitled
  TierCollective
  TierInternal
)

var tierNames = map[Tier]string{
  TierTeaser:     "teaser",
  TierEntitled:   "entitled",
  TierCollective: "collective",
  TierInternal:   "internal",
}

func (t Tier) String() string {
  if name, ok := tierNames[t]; ok {
    return name
  }
  return fmt.Sprintf("tier(%d)", int(t))
}

func (t Tier) Valid() bool {
  _, ok := tierNames[t]
  return ok
}

// AtLeast reports whether t grants everything other does.
func (t Tier) AtLeast(other Tier) bool {
  return t >= other
}

func ParseTier(s string) (Tier, error) {
  switch strings.ToLower(strings.TrimSpace(s)) {
  case "teaser":
    return TierTeaser, nil
  case "entitled":
    return TierEntitled, nil
  case "collective":
    return TierCollective, nil
  case "internal":
    return TierInternal, nil
  }
  return TierTeaser, fmt.Errorf("unknown tier %q", s)
}

// Tiers returns every tier in ascending order.
func Tiers() []Tier {
  return []Tier{TierTeaser, TierEntitled, TierCollective, TierInternal}
}
