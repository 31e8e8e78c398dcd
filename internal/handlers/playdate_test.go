package handlers

import (
  "context"
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"
  "github.com/gin-gonic/gin"
  "github.com/playmatter/playdate-backend/internal/logger"
  "github.com/playmatter/playdate-backend/internal/services"
)

type stubMatchService struct {
  lastInput services.MatchInput
  called    bool
}

func (s *stubMatchService) Match(ctx context.Context, input services.MatchInput) ([]map[string]any, error) {
  s.called = true
  s.lastInput = input
  return []map[string]any{{"slug": "paper-bridges", "score": 1}}, nil
}

func newMatchRouter(t *testing.T, stub *stubMatchService) *gin.Engine {
  t.Helper()
  gin.SetMode(gin.TestMode)
  log, err := logger.New("dev")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }
  h := NewPlaydateHandler(log, nil, stub)
  r := gin.New()
  r.POST("/api/playdates/match", h.Match)
  return r
}

func postMatch(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
  t.Helper()
  req := httptest.NewRequest(http.MethodPost, "/api/playdates/match", strings.NewReader(body))
  req.Header.Set("Content-Type", "application/json")
  w := httptest.NewRecorder()
  r.ServeHTTP(w, req)
  return w
}

func TestMatchRejectsEmptyFilters(t *testing.T) {
  bodies := []string{
    `{}`,
    `{"materials": [], "forms": []}`,
    `{"materials": ["   "], "contexts": [7, true]}`,
  }
  for _, body := range bodies {
    stub := &stubMatchService{}
    r := newMatchRouter(t, stub)
    w := postMatch(t, r, body)
    if w.Code != http.StatusBadRequest {
      t.Fatalf("body %s: status = %d, want 400", body, w.Code)
    }
    if stub.called {
      t.Fatalf("body %s: service was called despite empty filters", body)
    }
  }
}

func TestMatchDropsMalformedEntriesAndNormalizes(t *testing.T) {
  stub := &stubMatchService{}
  r := newMatchRouter(t, stub)
  w := postMatch(t, r, `{"materials": ["  Cardboard ", 42, null, "cardboard"], "energyLevels": ["Low"]}`)
  if w.Code != http.StatusOK {
    t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
  }
  if !stub.called {
    t.Fatalf("service was not called")
  }
  if len(stub.lastInput.Materials) != 1 || stub.lastInput.Materials[0] != "cardboard" {
    t.Fatalf("materials = %v, want [cardboard]", stub.lastInput.Materials)
  }
  if len(stub.lastInput.EnergyLevels) != 1 || stub.lastInput.EnergyLevels[0] != "low" {
    t.Fatalf("energyLevels = %v, want [low]", stub.lastInput.EnergyLevels)
  }

  var resp struct {
    Matches []map[string]any `json:"matches"`
  }
  if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
    t.Fatalf("decoding response: %v", err)
  }
  if len(resp.Matches) != 1 || resp.Matches[0]["slug"] != "paper-bridges" {
    t.Fatalf("matches = %v", resp.Matches)
  }
}

func TestMatchRejectsMalformedJSON(t *testing.T) {
  stub := &stubMatchService{}
  r := newMatchRouter(t, stub)
  w := postMatch(t, r, `{"materials": `)
  if w.Code != http.StatusBadRequest {
    t.Fatalf("status = %d, want 400", w.Code)
  }
}
