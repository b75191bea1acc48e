package registrytest

import (
	"net/http"

	"myregistrar/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler registers the custom error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
// lease_not_found is the 404 the lease protocol relies on; descriptor and
// parameter problems are the client's fault (400).
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[service.ErrLeaseNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[service.ErrRegistryRejected] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[service.ErrInvalidDescriptor] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[service.ErrTransportFailure] = http.StatusInternalServerError

	return errorCodeToStatusCodeMaps
}

// HTTPErrorHandler maps RegError codes onto HTTP statuses for the fake
// registry's responses.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler handles errors returned by echo handlers.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	regErr := service.ToRegError(err)
	if regErr == nil {
		regErr = service.NewRegError(service.ErrTransportFailure, "an internal server error has occurred", err)
	}

	var statusCode int
	if he, ok := err.(*echo.HTTPError); ok {
		m, _ := he.Message.(string)
		regErr = service.NewRegError(service.ErrRegistryRejected, m, err)
		statusCode = he.Code
	} else {
		statusCode = h.getStatusCode(regErr.Code)
	}

	level.Debug(h.logger).Log(
		"msg", "registry request error",
		"status", statusCode,
		"err", err,
	)

	if !c.Response().Committed {
		_ = c.JSON(statusCode, ErrResponse{Error: regErr})
	}
}

// ErrResponse from the fake registry.
type ErrResponse struct {
	Error *service.RegError `json:"error,omitempty"`
}
