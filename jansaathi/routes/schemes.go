package routes

import (
	"encoding/json"
	"net/http"

	"jansaathi/jansaathi/controllers"
	"jansaathi/jansaathi/sources/psql/dao"
	httputils "jansaathi/jansaathi/utils/http"

	"github.com/go-chi/chi/v5"
)

func SchemeRoutes(ctrl *controllers.SchemesController) chi.Router {
	r := chi.NewRouter()

	// GET /schemes/ : public directory listing with optional filters
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := dao.SchemeFilter{
			Sector: q.Get("sector"),
			Level:  q.Get("level"),
			State:  q.Get("state"),
			Search: q.Get("q"),
		}
		schemes, err := ctrl.List(r.Context(), filter)
		if err != nil {
			httputils.WriteError(w, http.StatusInternalServerError, "Could not load schemes. Please try again.")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(schemes)
	})

	return r
}
