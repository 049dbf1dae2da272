// Package api exposes the filtering engine over HTTP: session lifecycle,
// filter mutations, and refresh results.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aclements/quickfilter/config"
	qerrors "github.com/aclements/quickfilter/internal/errors"
	"github.com/aclements/quickfilter/model"
	"github.com/aclements/quickfilter/services"
)

// API holds dependencies for the HTTP handlers, primarily the session
// manager.
type API struct {
	sessions services.SessionManager
}

// NewAPI creates a new API handler structure.
func NewAPI(sessions services.SessionManager) *API {
	return &API{sessions: sessions}
}

// SetupRoutes defines all API routes.
func SetupRoutes(router *gin.Engine, sessions services.SessionManager) {
	apiHandler := NewAPI(sessions)

	router.GET("/health", apiHandler.HealthCheckHandler)

	sessionRoutes := router.Group("/sessions")
	{
		sessionRoutes.POST("", apiHandler.CreateSessionHandler)
		sessionRoutes.GET("", apiHandler.ListSessionsHandler)
		sessionRoutes.GET("/:sessionId", apiHandler.GetSessionHandler)
		sessionRoutes.DELETE("/:sessionId", apiHandler.DeleteSessionHandler)

		sessionRoutes.POST("/:sessionId/refresh", apiHandler.RefreshHandler)
		sessionRoutes.GET("/:sessionId/results", apiHandler.GetResultsHandler)

		facetRoutes := sessionRoutes.Group("/:sessionId/facets/:facetName")
		{
			facetRoutes.PATCH("/selection", apiHandler.UpdateSelectionHandler)
			facetRoutes.PUT("/query", apiHandler.UpdateQueryHandler)
		}
	}
}

// HealthCheckHandler reports liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": len(api.sessions.ListSessions())})
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Objects []model.Object       `json:"objects"`
	Facets  []config.FacetConfig `json:"facets"`
}

// CreateSessionHandler builds a new filtering session over the posted
// objects and facet configurations.
func (api *API) CreateSessionHandler(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if len(req.Facets) == 0 {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "At least one facet is required")
		return
	}
	if conflicts := config.ValidateFacets(req.Facets); len(conflicts) > 0 {
		details := make([]ErrorDetail, len(conflicts))
		for i, conflict := range conflicts {
			details[i] = ErrorDetail{Message: conflict, Code: "VALIDATION_ERROR"}
		}
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Facet configuration is invalid", details...)
		return
	}

	id, err := api.sessions.CreateSession(req.Objects, req.Facets)
	if err != nil {
		if errors.Is(err, qerrors.ErrInvalidInput) || errors.Is(err, qerrors.ErrDuplicateFacet) {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
			return
		}
		SendInternalError(c, "session creation", err)
		return
	}

	sess, err := api.sessions.GetSession(id)
	if err != nil {
		SendInternalError(c, "session creation", err)
		return
	}
	result := sess.Refresh()

	c.JSON(http.StatusCreated, gin.H{
		"session_id": id,
		"result":     result,
	})
}

// ListSessionsHandler returns all session IDs.
func (api *API) ListSessionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": api.sessions.ListSessions()})
}

// GetSessionHandler returns the current facet views of a session without
// recomputing.
func (api *API) GetSessionHandler(c *gin.Context) {
	sess, ok := api.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id":   c.Param("sessionId"),
		"object_count": len(sess.Objects()),
		"facets":       sess.Facets(),
	})
}

// DeleteSessionHandler removes a session.
func (api *API) DeleteSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if err := api.sessions.DeleteSession(sessionID); err != nil {
		if errors.Is(err, qerrors.ErrSessionNotFound) {
			SendSessionNotFoundError(c, sessionID)
			return
		}
		SendInternalError(c, "session deletion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session '" + sessionID + "' deleted"})
}

// RefreshHandler runs one full recomputation pass and returns the result.
func (api *API) RefreshHandler(c *gin.Context) {
	sess, ok := api.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Refresh())
}

// GetResultsHandler refreshes and returns the objects annotated with their
// match flags, in collection order.
func (api *API) GetResultsHandler(c *gin.Context) {
	sess, ok := api.lookupSession(c)
	if !ok {
		return
	}
	result := sess.Refresh()
	objects := sess.Objects()

	matchedOnly := c.Query("matched_only") == "true"
	type annotated struct {
		Object  model.Object `json:"object"`
		Matched bool         `json:"matched"`
	}
	rows := make([]annotated, 0, len(objects))
	matchedCount := 0
	for i, obj := range objects {
		if result.Matched[i] {
			matchedCount++
		}
		if matchedOnly && !result.Matched[i] {
			continue
		}
		rows = append(rows, annotated{Object: obj, Matched: result.Matched[i]})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(objects),
		"matched": matchedCount,
		"objects": rows,
		"facets":  result.Facets,
	})
}

// UpdateSelectionRequest is the body of PATCH .../selection. Exactly one of
// ValueIndex or Value addresses the arena row.
type UpdateSelectionRequest struct {
	ValueIndex *int   `json:"value_index,omitempty"`
	Value      string `json:"value,omitempty"`
	Selected   bool   `json:"selected"`
}

// UpdateSelectionHandler flips one categorical value of a facet.
func (api *API) UpdateSelectionHandler(c *gin.Context) {
	sess, ok := api.lookupSession(c)
	if !ok {
		return
	}
	facetName := c.Param("facetName")

	var req UpdateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	index, ok := api.resolveValueIndex(c, sess, facetName, req)
	if !ok {
		return
	}

	if err := sess.SetSelected(facetName, index, req.Selected); err != nil {
		api.sendMutationError(c, facetName, err)
		return
	}
	c.JSON(http.StatusOK, sess.Refresh())
}

// resolveValueIndex turns an UpdateSelectionRequest into an arena index,
// resolving a value string through the facet's current view when needed.
func (api *API) resolveValueIndex(c *gin.Context, sess services.SessionAccessor, facetName string, req UpdateSelectionRequest) (int, bool) {
	if req.ValueIndex != nil {
		return *req.ValueIndex, true
	}
	if req.Value == "" {
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
			"Either value_index or value is required")
		return 0, false
	}
	for _, view := range sess.Facets() {
		if view.Name != facetName {
			continue
		}
		for i, vv := range view.Values {
			if vv.Value == req.Value {
				return i, true
			}
		}
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed,
			"Value '"+req.Value+"' does not occur in facet '"+facetName+"'")
		return 0, false
	}
	SendFacetNotFoundError(c, facetName)
	return 0, false
}

// UpdateQueryRequest is the body of PUT .../query.
type UpdateQueryRequest struct {
	Query string `json:"query"`
}

// UpdateQueryHandler replaces a free-text facet's query string.
func (api *API) UpdateQueryHandler(c *gin.Context) {
	sess, ok := api.lookupSession(c)
	if !ok {
		return
	}
	facetName := c.Param("facetName")

	var req UpdateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if err := sess.SetQuery(facetName, req.Query); err != nil {
		api.sendMutationError(c, facetName, err)
		return
	}
	c.JSON(http.StatusOK, sess.Refresh())
}

func (api *API) lookupSession(c *gin.Context) (services.SessionAccessor, bool) {
	sessionID := c.Param("sessionId")
	sess, err := api.sessions.GetSession(sessionID)
	if err != nil {
		SendSessionNotFoundError(c, sessionID)
		return nil, false
	}
	return sess, true
}

func (api *API) sendMutationError(c *gin.Context, facetName string, err error) {
	switch {
	case errors.Is(err, qerrors.ErrFacetNotFound):
		SendFacetNotFoundError(c, facetName)
	case errors.Is(err, qerrors.ErrFacetKindMismatch):
		SendError(c, http.StatusBadRequest, ErrorCodeFacetKindMismatch, err.Error())
	case errors.Is(err, qerrors.ErrInvalidInput):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
	default:
		SendInternalError(c, "filter update", err)
	}
}
