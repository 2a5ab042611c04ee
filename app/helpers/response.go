package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/unrolled/render"
)

const (
	MinReportDays = 7
	MaxReportDays = 365

	maxJSONBodyBytes = 1 << 20
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError renders err as JSON. Anything that is not an *AppError becomes a
// generic 500 and is logged with the op prefix.
func WriteError(rnd *render.Render, w http.ResponseWriter, op string, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			log.Printf("%s: %v", op, appErr.Err)
		}
		_ = rnd.JSON(w, appErr.Status, ErrorResponse{Error: appErr.Message, Details: appErr.Details})
		return
	}

	log.Printf("%s: %v", op, err)
	_ = rnd.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Terjadi kesalahan pada server."})
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return &AppError{Status: http.StatusBadRequest, Message: "Format JSON tidak valid.", Err: err}
	}
	return nil
}

func ParsePageQuery(r *http.Request) other.PageQuery {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		limit = other.DefaultPageLimit
	}
	if limit > other.MaxPageLimit {
		limit = other.MaxPageLimit
	}

	return other.PageQuery{Page: page, Limit: limit}
}

// ParseDays never fails: non-numeric input falls back to def and the result is
// clamped to [MinReportDays, MaxReportDays].
func ParseDays(raw string, def int) int {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		days = def
	}
	if days < MinReportDays {
		return MinReportDays
	}
	if days > MaxReportDays {
		return MaxReportDays
	}
	return days
}

// ParseOptionalBool returns nil for an empty or unrecognised value.
func ParseOptionalBool(raw string) *bool {
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}
