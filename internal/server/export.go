package server

import (
	"net/http"
	"time"
)

func (s *Server) handleExportCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query().Get("q")
	skill := r.URL.Query().Get("skill")

	data, err := s.exporter.ExportCandidatesXLSX(r.Context(), q, skill)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	filename := "candidates_" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
