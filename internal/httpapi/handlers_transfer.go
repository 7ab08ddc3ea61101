package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/frotafleet/frotafleet/internal/common/apperr"
	"github.com/frotafleet/frotafleet/internal/common/metrics"
)

// maxImportBytes caps the uploaded workbook size.
const maxImportBytes = 10 << 20

// handleImportVehicles accepts a multipart upload under the "file"
// field and returns the per-row import report.
func (a *API) handleImportVehicles(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())

	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		a.respondError(w, r, apperr.Validationf("invalid multipart upload"))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		a.respondError(w, r, apperr.Validationf("no file selected"))
		return
	}
	defer file.Close()

	report, err := a.transfer.ImportVehicles(r.Context(), sess.Tenant, file)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	metrics.ImportRows.WithLabelValues(sess.Tenant, "inserted").Add(float64(report.Inserted))
	metrics.ImportRows.WithLabelValues(sess.Tenant, "skipped").Add(float64(report.Skipped))
	a.log.Infof("import for tenant %q: %d inserted, %d skipped", sess.Tenant, report.Inserted, report.Skipped)
	a.respondJSON(w, http.StatusOK, report)
}

// handleExport streams the requested report as an xlsx attachment.
func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFrom(r.Context())
	kind := chi.URLParam(r, "kind")

	filename, data, err := a.transfer.Export(r.Context(), sess.Tenant, kind)
	if err != nil {
		a.respondError(w, r, err)
		return
	}

	metrics.Exports.WithLabelValues(kind).Inc()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		a.log.Errorf("write export: %v", err)
	}
}
