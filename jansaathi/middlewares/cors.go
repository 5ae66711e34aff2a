// jansaathi/middlewares/cors.go
package middlewares

import "net/http"

// Browser clients call this API cross-origin, so every response carries
// permissive CORS headers and preflights short-circuit with 204.
const allowedHeaders = "authorization, x-client-info, apikey, content-type"

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
