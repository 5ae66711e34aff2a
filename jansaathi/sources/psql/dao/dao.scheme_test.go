package dao

import (
	"context"
	"testing"

	"jansaathi/jansaathi/sources/psql/models"
	"jansaathi/jansaathi/utils/logging"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSchemeDAO(t *testing.T) *SchemeDAO {
	logging.InitLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Scheme{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	seed := []models.Scheme{
		{ID: uuid.New(), SchemeName: "PM-KISAN", Sector: "Agriculture", Level: "Central", Benefits: "₹6,000/year for small farmers", PriorityScore: 90, IsActive: true},
		{ID: uuid.New(), SchemeName: "Ayushman Bharat", Sector: "Health", Level: "Central", Benefits: "₹5 lakh health coverage", PriorityScore: 100, IsActive: true},
		{ID: uuid.New(), SchemeName: "Raitha Vidya Nidhi", Sector: "Education", Level: "State", State: "Karnataka", Benefits: "Scholarships for farmers' children", PriorityScore: 50, IsActive: true},
		{ID: uuid.New(), SchemeName: "Retired Pilot Scheme", Sector: "Transport", Level: "Central", Benefits: "Discontinued benefit", PriorityScore: 200, IsActive: false},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed schemes: %v", err)
	}
	return NewSchemeDAO(db)
}

func TestListActiveFiltersAndOrders(t *testing.T) {
	dao := setupSchemeDAO(t)
	schemes, err := dao.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(schemes) != 3 {
		t.Fatalf("expected 3 active schemes, got %d", len(schemes))
	}
	// Highest priority first; inactive rows never appear.
	if schemes[0].SchemeName != "Ayushman Bharat" || schemes[1].SchemeName != "PM-KISAN" {
		t.Errorf("unexpected order: %s, %s", schemes[0].SchemeName, schemes[1].SchemeName)
	}
	for _, s := range schemes {
		if !s.IsActive {
			t.Errorf("inactive scheme %s leaked into results", s.SchemeName)
		}
	}
}

func TestListWithFilters(t *testing.T) {
	dao := setupSchemeDAO(t)
	ctx := context.Background()

	bySector, err := dao.List(ctx, SchemeFilter{Sector: "Health"})
	if err != nil || len(bySector) != 1 || bySector[0].SchemeName != "Ayushman Bharat" {
		t.Errorf("sector filter: err=%v result=%+v", err, bySector)
	}

	byLevelState, err := dao.List(ctx, SchemeFilter{Level: "State", State: "Karnataka"})
	if err != nil || len(byLevelState) != 1 || byLevelState[0].SchemeName != "Raitha Vidya Nidhi" {
		t.Errorf("level+state filter: err=%v result=%+v", err, byLevelState)
	}

	bySearch, err := dao.List(ctx, SchemeFilter{Search: "kisan"})
	if err != nil || len(bySearch) != 1 || bySearch[0].SchemeName != "PM-KISAN" {
		t.Errorf("search filter: err=%v result=%+v", err, bySearch)
	}

	all, err := dao.List(ctx, SchemeFilter{})
	if err != nil || len(all) != 3 {
		t.Errorf("empty filter must list all active schemes: err=%v count=%d", err, len(all))
	}
}
