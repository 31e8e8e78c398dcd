package services

import (
  "fmt"
  "testing"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"
  "github.com/playmatter/playdate-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("dev")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }
  return log
}

// testDB opens a per-test in-memory database and applies the given DDL. The
// production schema is managed by AutoMigrate against Postgres; tests declare
// the handful of tables they touch directly.
func testDB(t *testing.T, ddl ...string) *gorm.DB {
  t.Helper()
  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("opening test database: %v", err)
  }
  for _, stmt := range ddl {
    if err := db.Exec(stmt).Error; err != nil {
      t.Fatalf("applying test DDL: %v", err)
    }
  }
  return db
}

const entitlementDDL = `
CREATE TABLE entitlement (
  id              text PRIMARY KEY,
  organization_id text NOT NULL,
  pack_id         text NOT NULL,
  source          text NOT NULL DEFAULT 'purchase',
  created_at      datetime
);
CREATE UNIQUE INDEX ux_entitlement_org_pack ON entitlement (organization_id, pack_id);
`
