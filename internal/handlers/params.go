package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	apperrors "github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/models"
)

// Clock returns the current time; handlers resolve range tokens against it.
type Clock func() time.Time

// windowNames are the query parameter names of an explicit window.
type windowNames struct {
	start, end string
}

var yearParam = regexp.MustCompile(`^\d{4}$`)

var (
	snakeWindow = windowNames{"start_date", "end_date"}
	camelWindow = windowNames{"startDate", "endDate"}
)

// parseWindow reads a window from the `time` range token, or else from an
// explicit pair of dates which are then both required.
func parseWindow(r *http.Request, names windowNames, now Clock) (models.Period, error) {
	q := r.URL.Query()
	if token := q.Get("time"); token != "" {
		return models.ResolveRange(token, now())
	}

	start, end := q.Get(names.start), q.Get(names.end)
	if start == "" || end == "" {
		return models.Period{}, apperrors.Validation(names.start + " and " + names.end + " are required")
	}
	return models.ParsePeriod(start, end)
}

// parseYear reads an optional 4-digit year; 0 means absent.
func parseYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, nil
	}
	if !yearParam.MatchString(raw) {
		return 0, apperrors.Validation("year must be a 4-digit year")
	}
	year, _ := strconv.Atoi(raw)
	return year, nil
}

func parsePositiveInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, apperrors.Validation(name + " must be a positive integer")
	}
	return n, nil
}

func optionalString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

func badDate(field string) error {
	return &apperrors.ErrValidation{Field: field, Message: "must be a YYYY-MM-DD date"}
}
