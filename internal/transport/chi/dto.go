package chi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/hotelsearch/internal/domain/hotel"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/params"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/query"
	"github.com/kailas-cloud/hotelsearch/internal/domain/search/result"
	indexinguc "github.com/kailas-cloud/hotelsearch/internal/usecase/indexing"
)

// errorCode is the machine-readable error kind in error responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeUnauthorized     errorCode = "unauthorized"
	codeNotFound         errorCode = "not_found"
	codeHotelNotFound    errorCode = "hotel_not_found"
	codeDocumentNotFound errorCode = "document_not_found"
	codeSearchFailed     errorCode = "search_failed"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// searchRequest is the body of /hotel/list and /hotel/filters.
type searchRequest struct {
	Key      string `json:"key"`
	City     string `json:"city"`
	Brand    string `json:"brand"`
	StarName string `json:"starName"`
	MinPrice *int   `json:"minPrice"`
	MaxPrice *int   `json:"maxPrice"`
	Page     *int   `json:"page" validate:"omitempty,min=1"`
	Size     *int   `json:"size" validate:"omitempty,min=1"`
	Location string `json:"location"`
}

type pageResponse struct {
	Total  int64            `json:"total"`
	Exact  bool             `json:"exact"`
	Hotels []hotel.Document `json:"hotels"`
}

type reindexResponse struct {
	RunID    string        `json:"run_id"`
	Total    int           `json:"total"`
	Indexed  int           `json:"indexed"`
	Failed   int           `json:"failed"`
	Failures []failureItem `json:"failures"`
}

type failureItem struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// newValidator reports struct fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage flattens validator errors into one client-safe line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// toParams applies paging defaults. Size bounds are checked by the caller.
func (r searchRequest) toParams(defaultSize int) params.Params {
	p := params.Params{
		Key:      r.Key,
		City:     r.City,
		Brand:    r.Brand,
		StarName: r.StarName,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
		Page:     params.DefaultPage,
		Size:     defaultSize,
		Location: r.Location,
	}
	if r.Page != nil {
		p.Page = *r.Page
	}
	if r.Size != nil {
		p.Size = *r.Size
	}
	return p
}

func pageToResponse(p result.Page) pageResponse {
	return pageResponse{
		Total:  p.Total().Value,
		Exact:  p.Total().Exact(),
		Hotels: p.Hotels(),
	}
}

// facetsToResponse emits every facet key, empty lists included.
func facetsToResponse(f result.Facets) map[string][]string {
	out := make(map[string][]string, len(query.Facets))
	for _, facet := range query.Facets {
		values := f[facet.Name]
		if values == nil {
			values = []string{}
		}
		out[facet.Name] = values
	}
	return out
}

func reportToResponse(rep indexinguc.Report) reindexResponse {
	failures := make([]failureItem, len(rep.Failures))
	for i, f := range rep.Failures {
		failures[i] = failureItem{ID: f.ID, Reason: f.Reason}
	}
	return reindexResponse{
		RunID:    rep.RunID,
		Total:    rep.Total,
		Indexed:  rep.Indexed,
		Failed:   rep.Failed,
		Failures: failures,
	}
}
