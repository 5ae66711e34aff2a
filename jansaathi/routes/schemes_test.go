package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jansaathi/jansaathi/controllers"
	"jansaathi/jansaathi/sources/psql/dao"
	"jansaathi/jansaathi/sources/psql/models"
	"jansaathi/jansaathi/utils/logging"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSchemesHandler(t *testing.T) http.Handler {
	t.Helper()
	logging.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Scheme{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	seed := []models.Scheme{
		{ID: uuid.New(), SchemeName: "PM-KISAN", Sector: "Agriculture", Level: "Central", Benefits: "₹6,000/year", PriorityScore: 90, IsActive: true},
		{ID: uuid.New(), SchemeName: "Ayushman Bharat", Sector: "Health", Level: "Central", Benefits: "Health cover", PriorityScore: 100, IsActive: true},
		{ID: uuid.New(), SchemeName: "Old Scheme", Sector: "Health", Level: "Central", Benefits: "Gone", PriorityScore: 10, IsActive: false},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return SchemeRoutes(controllers.NewSchemesController(dao.NewSchemeDAO(db)))
}

func TestSchemesListing(t *testing.T) {
	h := newSchemesHandler(t)

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var schemes []models.Scheme
	if err := json.Unmarshal(rr.Body.Bytes(), &schemes); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(schemes) != 2 {
		t.Fatalf("expected 2 active schemes, got %d", len(schemes))
	}
	if schemes[0].SchemeName != "Ayushman Bharat" {
		t.Errorf("expected priority order, got %s first", schemes[0].SchemeName)
	}
}

func TestSchemesFilterQuery(t *testing.T) {
	h := newSchemesHandler(t)

	req := httptest.NewRequest("GET", "/?sector=Agriculture", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var schemes []models.Scheme
	if err := json.Unmarshal(rr.Body.Bytes(), &schemes); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(schemes) != 1 || schemes[0].SchemeName != "PM-KISAN" {
		t.Errorf("sector filter failed: %+v", schemes)
	}
}
