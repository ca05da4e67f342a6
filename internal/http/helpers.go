package http

import (
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/cast"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func writeNotFound(w http.ResponseWriter, what, slug string) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error:   "not_found",
		Message: what + " " + slug + " not found",
	})
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var typed *goerrors.Error
	if goerrors.As(err, &typed) && typed.Category == goerrors.CategoryValidation {
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: typed.Message,
			Fields:  typed.ValidationMap(),
		}
	}
	if goerrors.HasCategory(err, goerrors.CategoryBadInput) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func badQuery(param string, err error) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid query parameter "+param).
		WithTextCode("QUERY_PARAM_INVALID").
		WithMetadata(map[string]any{"param": param})
}

func queryInt(r *http.Request, name string) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return 0, nil
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, badQuery(name, err)
	}
	return n, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return nil, nil
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return nil, badQuery(name, err)
	}
	return &b, nil
}

// parseFilter maps query parameters onto a PostFilter. Enumerations are
// checked by the service.
func parseFilter(r *http.Request) (interfaces.PostFilter, error) {
	q := r.URL.Query()
	filter := interfaces.PostFilter{
		Category:  strings.TrimSpace(q.Get("category")),
		Tag:       strings.TrimSpace(q.Get("tag")),
		Status:    interfaces.PostStatus(strings.TrimSpace(q.Get("status"))),
		SortBy:    interfaces.SortField(strings.TrimSpace(q.Get("sort"))),
		SortOrder: interfaces.SortOrder(strings.ToLower(strings.TrimSpace(q.Get("order")))),
	}
	var err error
	if filter.Featured, err = queryBool(r, "featured"); err != nil {
		return filter, err
	}
	if filter.Page, err = queryInt(r, "page"); err != nil {
		return filter, err
	}
	if filter.PageSize, err = queryInt(r, "pageSize"); err != nil {
		return filter, err
	}
	return filter, nil
}
