package response

import "net/http"

// httpErrorsByStatus lets ToHTTPError translate a bare status code
// into the matching catalog entry. newStatusError fills it as the catalog
// below initializes.
var httpErrorsByStatus = make(map[int]HTTPError, 41)

func newStatusError(status int, code string) HTTPError {
	e := HTTPError{
		Status:  status,
		Code:    code,
		Message: http.StatusText(status),
	}
	httpErrorsByStatus[status] = e
	return e
}

// The catalog: one ready-made HTTPError per client and server error status,
// with codes in snake_case and messages from http.StatusText. Decorate per
// request with WithMessage, WithDetails, or WithError.
var (
	// 4xx
	ErrBadRequest                   = newStatusError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized                 = newStatusError(http.StatusUnauthorized, "unauthorized")
	ErrPaymentRequired              = newStatusError(http.StatusPaymentRequired, "payment_required")
	ErrForbidden                    = newStatusError(http.StatusForbidden, "forbidden")
	ErrNotFound                     = newStatusError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed             = newStatusError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrNotAcceptable                = newStatusError(http.StatusNotAcceptable, "not_acceptable")
	ErrProxyAuthRequired            = newStatusError(http.StatusProxyAuthRequired, "proxy_auth_required")
	ErrRequestTimeout               = newStatusError(http.StatusRequestTimeout, "request_timeout")
	ErrConflict                     = newStatusError(http.StatusConflict, "conflict")
	ErrGone                         = newStatusError(http.StatusGone, "gone")
	ErrLengthRequired               = newStatusError(http.StatusLengthRequired, "length_required")
	ErrPreconditionFailed           = newStatusError(http.StatusPreconditionFailed, "precondition_failed")
	ErrRequestEntityTooLarge        = newStatusError(http.StatusRequestEntityTooLarge, "request_entity_too_large")
	ErrRequestURITooLong            = newStatusError(http.StatusRequestURITooLong, "request_uri_too_long")
	ErrUnsupportedMediaType         = newStatusError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrRequestedRangeNotSatisfiable = newStatusError(http.StatusRequestedRangeNotSatisfiable, "requested_range_not_satisfiable")
	ErrExpectationFailed            = newStatusError(http.StatusExpectationFailed, "expectation_failed")
	ErrTeapot                       = newStatusError(http.StatusTeapot, "teapot")
	ErrMisdirectedRequest           = newStatusError(http.StatusMisdirectedRequest, "misdirected_request")
	ErrUnprocessableEntity          = newStatusError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrLocked                       = newStatusError(http.StatusLocked, "locked")
	ErrFailedDependency             = newStatusError(http.StatusFailedDependency, "failed_dependency")
	ErrTooEarly                     = newStatusError(http.StatusTooEarly, "too_early")
	ErrUpgradeRequired              = newStatusError(http.StatusUpgradeRequired, "upgrade_required")
	ErrPreconditionRequired         = newStatusError(http.StatusPreconditionRequired, "precondition_required")
	ErrTooManyRequests              = newStatusError(http.StatusTooManyRequests, "too_many_requests")
	ErrRequestHeaderFieldsTooLarge  = newStatusError(http.StatusRequestHeaderFieldsTooLarge, "request_header_fields_too_large")
	ErrUnavailableForLegalReasons   = newStatusError(http.StatusUnavailableForLegalReasons, "unavailable_for_legal_reasons")

	// 5xx
	ErrInternalServerError           = newStatusError(http.StatusInternalServerError, "internal_server_error")
	ErrNotImplemented                = newStatusError(http.StatusNotImplemented, "not_implemented")
	ErrBadGateway                    = newStatusError(http.StatusBadGateway, "bad_gateway")
	ErrServiceUnavailable            = newStatusError(http.StatusServiceUnavailable, "service_unavailable")
	ErrGatewayTimeout                = newStatusError(http.StatusGatewayTimeout, "gateway_timeout")
	ErrHTTPVersionNotSupported       = newStatusError(http.StatusHTTPVersionNotSupported, "http_version_not_supported")
	ErrVariantAlsoNegotiates         = newStatusError(http.StatusVariantAlsoNegotiates, "variant_also_negotiates")
	ErrInsufficientStorage           = newStatusError(http.StatusInsufficientStorage, "insufficient_storage")
	ErrLoopDetected                  = newStatusError(http.StatusLoopDetected, "loop_detected")
	ErrNotExtended                   = newStatusError(http.StatusNotExtended, "not_extended")
	ErrNetworkAuthenticationRequired = newStatusError(http.StatusNetworkAuthenticationRequired, "network_authentication_required")
)
