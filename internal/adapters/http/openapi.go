package httpadapter

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var apiSpec []byte

var (
	apiRouterOnce sync.Once
	apiRouter     routers.Router
	apiRouterErr  error
)

func loadAPISpec() (routers.Router, error) {
	apiRouterOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(apiSpec)
		if err != nil {
			apiRouterErr = fmt.Errorf("load openapi spec: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			apiRouterErr = fmt.Errorf("validate openapi spec: %w", err)
			return
		}
		apiRouter, apiRouterErr = legacyrouter.NewRouter(doc)
	})
	return apiRouter, apiRouterErr
}

func mustLoadAPISpec() routers.Router {
	router, err := loadAPISpec()
	if err != nil {
		panic(err)
	}
	return router
}

// openAPIValidationMiddleware checks path and query parameters against the
// embedded contract. Unknown routes fall through to the mux.
func openAPIValidationMiddleware(next http.Handler, router routers.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, pathParams, err := router.FindRoute(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: pathParams,
			Route:      route,
			Options: &openapi3filter.Options{
				ExcludeRequestBody: true,
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func validationMessage(err error) string {
	var requestErr *openapi3filter.RequestError
	if errors.As(err, &requestErr) {
		if requestErr.Parameter != nil {
			return fmt.Sprintf("invalid %s parameter %q", requestErr.Parameter.In, requestErr.Parameter.Name)
		}
		return requestErr.Error()
	}
	return err.Error()
}
