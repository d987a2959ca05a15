package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"

	"github.com/zenGate-Global/palmyra-hosting/platform/go/problems"
)

// OperatorSecurityScheme is the contract security scheme that marks administrative operations.
const OperatorSecurityScheme = "operatorAuth"

// ValidateOperatorViaContract satisfies operations that declare operatorAuth in the contract by
// requiring a non-blank operator header. Operations without security pass through.
func ValidateOperatorViaContract(_ context.Context, input *openapi3filter.AuthenticationInput) error {
	if input == nil || input.SecuritySchemeName != OperatorSecurityScheme {
		return nil
	}
	r := input.RequestValidationInput.Request
	if r == nil {
		return fmt.Errorf("no request in validation input")
	}
	if strings.TrimSpace(r.Header.Get(OperatorHeader)) == "" {
		return fmt.Errorf("missing %s header", OperatorHeader)
	}
	return nil
}

// ContractValidator builds request validation middleware for the given document.
// Rejections are written as problem details.
func ContractValidator(spec *openapi3.T) func(http.Handler) http.Handler {
	return oapimiddleware.OapiRequestValidatorWithOptions(spec, &oapimiddleware.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: ValidateOperatorViaContract,
		},
		ErrorHandler: writeContractProblem,
	})
}

func writeContractProblem(w http.ResponseWriter, message string, statusCode int) {
	switch statusCode {
	case http.StatusUnauthorized:
		problems.Write(w, problems.New(statusCode, "Unauthorized", message, problems.TypeUnauthorized, nil))
	case http.StatusNotFound:
		problems.Write(w, problems.New(statusCode, "Not found", message, problems.TypeNotFound, nil))
	default:
		problems.Write(w, problems.New(statusCode, "Invalid request", message, problems.TypeValidation, nil))
	}
}
