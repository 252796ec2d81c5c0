package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ablinov/lifevault/internal/backup"
	"github.com/ablinov/lifevault/internal/backup/envelope"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error  string                `json:"error"`
	Fields []envelope.FieldError `json:"fields"`
}

// handleExport streams the owner's backup document as a download. The
// optional modules query parameter narrows the export, e.g.
// ?modules=finance,workouts.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := userIDFromContext(ctx)

	var modules []string
	if raw := r.URL.Query().Get("modules"); raw != "" {
		modules = strings.Split(raw, ",")
	}

	doc, err := s.exporter.Export(ctx, ownerID, modules)
	if err != nil {
		if errors.Is(err, backup.ErrUnknownModule) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error(ctx, "export failed", "owner_id", ownerID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "export failed"})
		return
	}

	filename := fmt.Sprintf("lifevault-backup-%s-%s.json",
		doc.Meta.OwnerEmail, time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleExportCounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := userIDFromContext(ctx)

	counts, err := s.exporter.Counts(ctx, ownerID)
	if err != nil {
		s.logger.Error(ctx, "export counts failed", "owner_id", ownerID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "counts failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, counts)
}

// decodeBody reads a size-capped JSON body into raw interface values.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request) (any, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDocumentBytes)

	var doc any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge,
				errorResponse{Error: "document too large"})
			return nil, false
		}
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON"})
		return nil, false
	}
	return doc, true
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.decodeBody(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, backup.Preview(doc))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID := userIDFromContext(ctx)

	mode, err := backup.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	raw, ok := s.decodeBody(w, r)
	if !ok {
		return
	}

	vr := envelope.Validate(raw)
	if !vr.Valid {
		s.writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "document failed validation",
			Fields: vr.Errors,
		})
		return
	}

	res, err := s.importer.Import(ctx, ownerID, vr.Backup, mode)
	if err != nil {
		s.logger.Error(ctx, "import failed", "owner_id", ownerID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, res)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}
