package chi

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/aristotle/internal/domain"
	"github.com/kailas-cloud/aristotle/internal/domain/search/request"
)

// queryString binds an optional form-style query parameter.
func queryString(r *http.Request, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", domain.InvalidRequestf("invalid %s parameter", name)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// queryInt binds an optional integer query parameter; absent means zero.
func queryInt(r *http.Request, name string) (int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return 0, domain.InvalidRequestf("invalid %s parameter", name)
	}
	if v == nil {
		return 0, nil
	}
	return *v, nil
}

// page builds a pagination window, falling back to the configured default
// size and clamping to the configured maximum.
func (s *Server) page(offset, size int) (request.Page, error) {
	if size > s.opts.MaxPageSize {
		size = s.opts.MaxPageSize
	}
	p, err := request.NewPageWithDefault(offset, size, s.opts.DefaultPageSize)
	if err != nil {
		return request.Page{}, err //nolint:wrapcheck // domain validation error
	}
	return p, nil
}

// queryPage reads offset (or its alias) and size parameters.
func (s *Server) queryPage(r *http.Request, offsetName string) (request.Page, error) {
	offset, err := queryInt(r, offsetName)
	if err != nil {
		return request.Page{}, err
	}
	size, err := queryInt(r, "size")
	if err != nil {
		return request.Page{}, err
	}
	return s.page(offset, size)
}
