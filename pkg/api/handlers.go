package api

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/country-outline/pkg/models"
	"github.com/Sriram-PR/country-outline/pkg/outline"
	"github.com/Sriram-PR/country-outline/pkg/utils"
)

// handleOutline serves GET /api/outline?country=<name>[&format=html].
// Every failure after parameter validation is reported as {"error": ...}
// with status 200.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	values := query["country"]
	if len(values) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: utils.ErrMissingCountry.Error()})
		return
	}
	// A repeated parameter resolves to its last value.
	country := values[len(values)-1]
	reqLog := s.log.WithFields(logrus.Fields{"country": country, "request_id": GetRequestID(r.Context())})

	// Faults inside the pipeline still produce an error payload.
	defer func() {
		if rec := recover(); rec != nil {
			reqLog.Errorf("Recovered panic while building outline: %v", rec)
			writeJSON(w, http.StatusOK, models.ErrorResponse{Error: fmt.Sprint(rec)})
		}
	}()

	result, err := s.outliner.Outline(r.Context(), country)
	if err != nil {
		reqLog.WithField("kind", utils.Kind(err)).Debugf("Outline request failed: %v", err)
		writeJSON(w, http.StatusOK, models.ErrorResponse{Error: utils.ErrorMessage(err)})
		return
	}

	if query.Get("format") == "html" {
		html, err := outline.RenderHTML(result.Outline)
		if err != nil {
			writeJSON(w, http.StatusOK, models.ErrorResponse{Error: err.Error()})
			return
		}
		result.HTML = html
	}

	writeJSON(w, http.StatusOK, result)
}
