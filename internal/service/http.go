package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tabsplit/internal/bill"
	"tabsplit/internal/importer"
	"tabsplit/internal/models"
	"tabsplit/internal/storage"
)

// maxRequestBody bounds JSON request bodies. CSV uploads are bounded
// separately by the importer's row cap.
const maxRequestBody = 1 << 20

// Handler routes the HTTP/JSON surface onto a SessionService.
func Handler(svc *SessionService) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/sessions", func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.CreateSession(r.Context())
		respond(w, snap, err, http.StatusCreated)
	})

	mux.HandleFunc("GET /api/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.GetSnapshot(r.Context(), r.PathValue("id"))
		respond(w, snap, err, http.StatusOK)
	})

	mux.HandleFunc("DELETE /api/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /api/sessions/{id}/members", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name string `json:"name"`
		}
		if !decode(w, r, &req) {
			return
		}
		snap, err := svc.AddMember(r.Context(), r.PathValue("id"), req.Name)
		respond(w, snap, err, http.StatusOK)
	})

	mux.HandleFunc("DELETE /api/sessions/{id}/members/{name}", func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.RemoveMember(r.Context(), r.PathValue("id"), r.PathValue("name"))
		respond(w, snap, err, http.StatusOK)
	})

	mux.HandleFunc("POST /api/sessions/{id}/items", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name     string   `json:"name"`
			Cost     float64  `json:"cost"`
			Assigned []string `json:"assigned"`
		}
		if !decode(w, r, &req) {
			return
		}
		snap, err := svc.AddItem(r.Context(), r.PathValue("id"), req.Name, req.Cost, req.Assigned)
		respond(w, snap, err, http.StatusOK)
	})

	mux.HandleFunc("PATCH /api/sessions/{id}/items/{index}", func(w http.ResponseWriter, r *http.Request) {
		index, ok := itemIndex(w, r)
		if !ok {
			return
		}
		var req struct {
			Name string  `json:"name"`
			Cost float64 `json:"cost"`
		}
		if !decode(w, r, &req) {
			return
		}
		snap, err := svc.UpdateItem(r.Context(), r.PathValue("id"), index, req.Name, req.Cost)
		respond(w, snap, err, http.StatusOK)
	})

	mux.HandleFunc("DELETE /api/sessions/{id}/items/{index}", func(w http.ResponseWriter, r *http.Request) {
		index, ok := itemIndex(w, r)
		if !ok {
			return
		}
		snap, err := svc.RemoveItem(r.Context(), r.PathValue("id"), index)
		respond(w, snap, err, http.StatusOK)
	})

	mux.HandleFunc("PUT /api/sessions/{id}/items/{index}/assignees", func(w http.ResponseWriter, r *http.Request) {
		index, ok := itemIndex(w, r)
		if !ok {
			return
		}
		var req struct {
			Members []string `json:"members"`
		}
		if !decode(w, r, &req) {
			return
		}
		snap, err := svc.SetItemAssignment(r.Context(), r.PathValue("id"), index, req.Members)
		respond(w, snap, err, http.StatusOK)
	})

	mux.HandleFunc("PUT /api/sessions/{id}/tax", amountHandler(svc.SetTax))
	mux.HandleFunc("PUT /api/sessions/{id}/tip", amountHandler(svc.SetTip))
	mux.HandleFunc("PUT /api/sessions/{id}/receipt-subtotal", amountHandler(svc.SetReceiptSubtotal))

	mux.HandleFunc("POST /api/sessions/{id}/import", func(w http.ResponseWriter, r *http.Request) {
		body, err := importBody(r)
		if err != nil {
			writeError(w, err)
			return
		}
		defer body.Close()
		snap, err := svc.ImportCSV(r.Context(), r.PathValue("id"), body)
		respond(w, snap, err, http.StatusOK)
	})

	return mux
}

// amountHandler builds the shared handler for the three decimal
// inputs: tax, tip, and receipt subtotal.
func amountHandler(set func(ctx context.Context, sessionID string, value float64) (*Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Value float64 `json:"value"`
		}
		if !decode(w, r, &req) {
			return
		}
		snap, err := set(r.Context(), r.PathValue("id"), req.Value)
		respond(w, snap, err, http.StatusOK)
	}
}

// importBody extracts the CSV payload: the "file" part of a multipart
// form, or the raw request body otherwise.
func importBody(r *http.Request) (io.ReadCloser, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return r.Body, nil
	}
	if err := r.ParseMultipartForm(maxRequestBody); err != nil {
		return nil, fmt.Errorf("%w: %v", bill.ErrMalformedRow, err)
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: missing file part", bill.ErrMalformedRow)
	}
	return file, nil
}

func itemIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, bill.ErrItemNotFound)
		return 0, false
	}
	return index, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, snap *Snapshot, err error, status int) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		slog.Error("Failed to encode snapshot", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Every mutation
// error is a user-input problem, so nothing here is a 500 except
// genuinely unknown failures.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrSessionNotFound),
		errors.Is(err, bill.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, bill.ErrDuplicateMember):
		status = http.StatusConflict
	case errors.Is(err, bill.ErrCapacityExceeded):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrEmptyName),
		errors.Is(err, models.ErrNameTooLong),
		errors.Is(err, bill.ErrUnknownMember),
		errors.Is(err, bill.ErrInvalidItem),
		errors.Is(err, bill.ErrNegativeAmount),
		errors.Is(err, bill.ErrMissingColumns),
		errors.Is(err, bill.ErrMalformedRow),
		errors.Is(err, importer.ErrTooManyRows):
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
