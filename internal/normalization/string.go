package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

func ParseInputStringPtr(input *string) *string {
  if input == nil {
    return nil
  }
  normalized := strings.ToLower(strings.TrimSpace(*input))
  return &normalized
}

// ParseStringSlice lowercases and trims every entry, dropping empties and
// duplicates while keeping first-seen order.
func ParseStringSlice(inputs []string) []string {
  out := make([]string, 0, len(inputs))
  seen := make(map[string]struct{}, len(inputs))
  for _, in := range inputs {
    v := ParseInputString(in)
    if v == "" {
      continue
    }
    if _, dup := seen[v]; dup {
      continue
    }
    seen[v] = struct{}{}
    out = append(out, v)
  }
  return out
}

// ParseLooseStringSlice accepts a decoded JSON array that should contain
// strings. Non-string entries are dropped rather than failing the request.
func ParseLooseStringSlice(inputs []any) []string {
  strs := make([]string, 0, len(inputs))
  for _, in := range inputs {
    s, ok := in.(string)
    if !ok {
      continue
    }
    strs = append(strs, s)
  }
  return ParseStringSlice(strs)
}
