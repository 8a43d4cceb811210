// Пакет contract: OpenAPI-контракт Content API и проверка запросов по нему.
// Документ встраивается в бинарник и используется для сверки запросов backend-клиента.
package contract

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed content-api.yaml
var spec []byte

// Document возвращает сырой YAML контракта.
func Document() []byte {
	return spec
}

// Load разбирает и валидирует встроенный контракт.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("разбор контракта Content API: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("валидация контракта Content API: %w", err)
	}
	return doc, nil
}

// Validator проверяет HTTP-запросы на соответствие контракту.
type Validator struct {
	router routers.Router
}

// NewValidator создаёт валидатор по встроенному контракту.
func NewValidator(ctx context.Context) (*Validator, error) {
	doc, err := Load(ctx)
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("построение маршрутов контракта: %w", err)
	}
	return &Validator{router: router}, nil
}

// ValidateRequest находит операцию по методу и пути и проверяет параметры.
// Тело multipart не проверяется: содержимое файла не входит в схему.
// Возвращает operationId найденной операции.
func (v *Validator) ValidateRequest(r *http.Request) (string, error) {
	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		return "", fmt.Errorf("операция не найдена в контракте: %s %s: %w", r.Method, r.URL.Path, err)
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			ExcludeRequestBody: r.Method == http.MethodPost,
		},
	}
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return route.Operation.OperationID, fmt.Errorf("запрос не соответствует контракту: %w", err)
	}
	return route.Operation.OperationID, nil
}
