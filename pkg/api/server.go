package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Service health check
	// (GET /health)
	GetHealth(c *gin.Context)
	// OpenAPI document
	// (GET /api/v1/openapi.json)
	GetApiV1OpenapiJson(c *gin.Context)

	// Save the metrics of a day
	// (POST /api/v1/users/{userId}/entries)
	PostApiV1UsersUserIdEntries(c *gin.Context, userId openapi_types.UUID)
	// Every entry keyed by date
	// (GET /api/v1/users/{userId}/entries)
	GetApiV1UsersUserIdEntries(c *gin.Context, userId openapi_types.UUID)
	// Entry of one day
	// (GET /api/v1/users/{userId}/entries/{date})
	GetApiV1UsersUserIdEntriesDate(c *gin.Context, userId openapi_types.UUID, date openapi_types.Date)
	// Score metrics without saving them
	// (POST /api/v1/scores/preview)
	PostApiV1ScoresPreview(c *gin.Context)

	// (GET /api/v1/users/{userId}/medications)
	GetApiV1UsersUserIdMedications(c *gin.Context, userId openapi_types.UUID)
	// (POST /api/v1/users/{userId}/medications)
	PostApiV1UsersUserIdMedications(c *gin.Context, userId openapi_types.UUID)
	// (DELETE /api/v1/users/{userId}/medications/{name})
	DeleteApiV1UsersUserIdMedicationsName(c *gin.Context, userId openapi_types.UUID, name string)

	// (GET /api/v1/users/{userId}/analytics)
	GetApiV1UsersUserIdAnalytics(c *gin.Context, userId openapi_types.UUID, params GetApiV1UsersUserIdAnalyticsParams)
	// (GET /api/v1/users/{userId}/report)
	GetApiV1UsersUserIdReport(c *gin.Context, userId openapi_types.UUID, params GetApiV1UsersUserIdReportParams)
	// (GET /api/v1/users/{userId}/report/export)
	GetApiV1UsersUserIdReportExport(c *gin.Context, userId openapi_types.UUID, params GetApiV1UsersUserIdReportExportParams)
	// Generate and archive a PDF report
	// (POST /api/v1/users/{userId}/reports)
	PostApiV1UsersUserIdReports(c *gin.Context, userId openapi_types.UUID)
	// (GET /api/v1/users/{userId}/reports)
	GetApiV1UsersUserIdReports(c *gin.Context, userId openapi_types.UUID)
	// Download an archived PDF
	// (GET /api/v1/reports/{id})
	GetApiV1ReportsId(c *gin.Context, id openapi_types.UUID)

	// Stateless symptom checker reply
	// (POST /api/v1/chat/respond)
	PostApiV1ChatRespond(c *gin.Context)
	// (POST /api/v1/users/{userId}/chat/sessions)
	PostApiV1UsersUserIdChatSessions(c *gin.Context, userId openapi_types.UUID)
	// (GET /api/v1/users/{userId}/chat/sessions)
	GetApiV1UsersUserIdChatSessions(c *gin.Context, userId openapi_types.UUID)
	// (GET /api/v1/chat/sessions/{id})
	GetApiV1ChatSessionsId(c *gin.Context, id openapi_types.UUID)
	// (DELETE /api/v1/chat/sessions/{id})
	DeleteApiV1ChatSessionsId(c *gin.Context, id openapi_types.UUID)
	// (POST /api/v1/chat/sessions/{id}/messages)
	PostApiV1ChatSessionsIdMessages(c *gin.Context, id openapi_types.UUID)

	// (POST /api/v1/users/{userId}/records)
	PostApiV1UsersUserIdRecords(c *gin.Context, userId openapi_types.UUID)
	// (GET /api/v1/users/{userId}/records)
	GetApiV1UsersUserIdRecords(c *gin.Context, userId openapi_types.UUID)
	// (DELETE /api/v1/records/{id})
	DeleteApiV1RecordsId(c *gin.Context, id openapi_types.UUID)

	// (POST /api/v1/users/{userId}/access-tokens)
	PostApiV1UsersUserIdAccessTokens(c *gin.Context, userId openapi_types.UUID)
	// (GET /api/v1/users/{userId}/access-tokens)
	GetApiV1UsersUserIdAccessTokens(c *gin.Context, userId openapi_types.UUID)
	// (POST /api/v1/access-tokens/{id}/revoke)
	PostApiV1AccessTokensIdRevoke(c *gin.Context, id openapi_types.UUID)
	// (GET /api/v1/access-tokens/{id}/logs)
	GetApiV1AccessTokensIdLogs(c *gin.Context, id openapi_types.UUID)
	// Public QR link resolution
	// (POST /api/v1/access/resolve)
	PostApiV1AccessResolve(c *gin.Context)
}

// MiddlewareFunc runs before a wrapped handler; aborting the context skips the handler.
type MiddlewareFunc func(c *gin.Context)

// ServerInterfaceWrapper converts gin contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandler       func(*gin.Context, error, int)
}

func (siw *ServerInterfaceWrapper) before(c *gin.Context) bool {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return false
		}
	}
	return true
}

func (siw *ServerInterfaceWrapper) pathUUID(c *gin.Context, name string) (openapi_types.UUID, bool) {
	var value openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter %s: %w", name, err), http.StatusBadRequest)
		return value, false
	}
	return value, true
}

func (siw *ServerInterfaceWrapper) rangeParams(c *gin.Context) (RangeParams, bool) {
	var params RangeParams
	query := c.Request.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "start", query, &params.Start); err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter start: %w", err), http.StatusBadRequest)
		return params, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "end", query, &params.End); err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter end: %w", err), http.StatusBadRequest)
		return params, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "preset", query, &params.Preset); err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter preset: %w", err), http.StatusBadRequest)
		return params, false
	}
	return params, true
}

// withUser wraps operations that take only the userId path parameter
func (siw *ServerInterfaceWrapper) withUser(op func(*gin.Context, openapi_types.UUID)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := siw.pathUUID(c, "userId")
		if !ok || !siw.before(c) {
			return
		}
		op(c, userId)
	}
}

// withID wraps operations that take only the id path parameter
func (siw *ServerInterfaceWrapper) withID(op func(*gin.Context, openapi_types.UUID)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := siw.pathUUID(c, "id")
		if !ok || !siw.before(c) {
			return
		}
		op(c, id)
	}
}

// withUserRange wraps operations that take userId plus the range query
func (siw *ServerInterfaceWrapper) withUserRange(op func(*gin.Context, openapi_types.UUID, RangeParams)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := siw.pathUUID(c, "userId")
		if !ok {
			return
		}
		params, ok := siw.rangeParams(c)
		if !ok || !siw.before(c) {
			return
		}
		op(c, userId, params)
	}
}

// plain wraps operations without parameters
func (siw *ServerInterfaceWrapper) plain(op func(*gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !siw.before(c) {
			return
		}
		op(c)
	}
}

// GetApiV1UsersUserIdEntriesDate operation middleware
func (siw *ServerInterfaceWrapper) GetApiV1UsersUserIdEntriesDate(c *gin.Context) {
	userId, ok := siw.pathUUID(c, "userId")
	if !ok {
		return
	}

	var date openapi_types.Date
	err := runtime.BindStyledParameterWithOptions("simple", "date", c.Param("date"), &date,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter date: %w", err), http.StatusBadRequest)
		return
	}

	if !siw.before(c) {
		return
	}
	siw.Handler.GetApiV1UsersUserIdEntriesDate(c, userId, date)
}

// DeleteApiV1UsersUserIdMedicationsName operation middleware
func (siw *ServerInterfaceWrapper) DeleteApiV1UsersUserIdMedicationsName(c *gin.Context) {
	userId, ok := siw.pathUUID(c, "userId")
	if !ok {
		return
	}

	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "name", c.Param("name"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("invalid format for parameter name: %w", err), http.StatusBadRequest)
		return
	}

	if !siw.before(c) {
		return
	}
	siw.Handler.DeleteApiV1UsersUserIdMedicationsName(c, userId, name)
}

// GinServerOptions provides options for the Gin server.
type GinServerOptions struct {
	BaseURL      string
	Middlewares  []MiddlewareFunc
	ErrorHandler func(*gin.Context, error, int)
}

// RegisterHandlers creates http.Handler with routing matching OpenAPI spec.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

// RegisterHandlersWithOptions creates http.Handler with additional options
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(c *gin.Context, err error, statusCode int) {
			details := err.Error()
			c.JSON(statusCode, ErrorResponse{
				Code:    ErrorCodeValidation,
				Message: "Invalid request parameters",
				Details: &details,
			})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandler:       errorHandler,
	}

	base := options.BaseURL

	router.GET(base+"/health", wrapper.plain(si.GetHealth))
	router.GET(base+"/api/v1/openapi.json", wrapper.plain(si.GetApiV1OpenapiJson))

	router.POST(base+"/api/v1/users/:userId/entries", wrapper.withUser(si.PostApiV1UsersUserIdEntries))
	router.GET(base+"/api/v1/users/:userId/entries", wrapper.withUser(si.GetApiV1UsersUserIdEntries))
	router.GET(base+"/api/v1/users/:userId/entries/:date", wrapper.GetApiV1UsersUserIdEntriesDate)
	router.POST(base+"/api/v1/scores/preview", wrapper.plain(si.PostApiV1ScoresPreview))

	router.GET(base+"/api/v1/users/:userId/medications", wrapper.withUser(si.GetApiV1UsersUserIdMedications))
	router.POST(base+"/api/v1/users/:userId/medications", wrapper.withUser(si.PostApiV1UsersUserIdMedications))
	router.DELETE(base+"/api/v1/users/:userId/medications/:name", wrapper.DeleteApiV1UsersUserIdMedicationsName)

	router.GET(base+"/api/v1/users/:userId/analytics", wrapper.withUserRange(si.GetApiV1UsersUserIdAnalytics))
	router.GET(base+"/api/v1/users/:userId/report", wrapper.withUserRange(si.GetApiV1UsersUserIdReport))
	router.GET(base+"/api/v1/users/:userId/report/export", wrapper.withUserRange(si.GetApiV1UsersUserIdReportExport))
	router.POST(base+"/api/v1/users/:userId/reports", wrapper.withUser(si.PostApiV1UsersUserIdReports))
	router.GET(base+"/api/v1/users/:userId/reports", wrapper.withUser(si.GetApiV1UsersUserIdReports))
	router.GET(base+"/api/v1/reports/:id", wrapper.withID(si.GetApiV1ReportsId))

	router.POST(base+"/api/v1/chat/respond", wrapper.plain(si.PostApiV1ChatRespond))
	router.POST(base+"/api/v1/users/:userId/chat/sessions", wrapper.withUser(si.PostApiV1UsersUserIdChatSessions))
	router.GET(base+"/api/v1/users/:userId/chat/sessions", wrapper.withUser(si.GetApiV1UsersUserIdChatSessions))
	router.GET(base+"/api/v1/chat/sessions/:id", wrapper.withID(si.GetApiV1ChatSessionsId))
	router.DELETE(base+"/api/v1/chat/sessions/:id", wrapper.withID(si.DeleteApiV1ChatSessionsId))
	router.POST(base+"/api/v1/chat/sessions/:id/messages", wrapper.withID(si.PostApiV1ChatSessionsIdMessages))

	router.POST(base+"/api/v1/users/:userId/records", wrapper.withUser(si.PostApiV1UsersUserIdRecords))
	router.GET(base+"/api/v1/users/:userId/records", wrapper.withUser(si.GetApiV1UsersUserIdRecords))
	router.DELETE(base+"/api/v1/records/:id", wrapper.withID(si.DeleteApiV1RecordsId))

	router.POST(base+"/api/v1/users/:userId/access-tokens", wrapper.withUser(si.PostApiV1UsersUserIdAccessTokens))
	router.GET(base+"/api/v1/users/:userId/access-tokens", wrapper.withUser(si.GetApiV1UsersUserIdAccessTokens))
	router.POST(base+"/api/v1/access-tokens/:id/revoke", wrapper.withID(si.PostApiV1AccessTokensIdRevoke))
	router.GET(base+"/api/v1/access-tokens/:id/logs", wrapper.withID(si.GetApiV1AccessTokensIdLogs))
	router.POST(base+"/api/v1/access/resolve", wrapper.plain(si.PostApiV1AccessResolve))
}
