// Package http exposes the parcel tracking use cases as a JSON API on echo.
package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases served by the API. CountStoredParcels is
// optional and only set when records live in PostgreSQL.
type Handlers struct {
	IntakeParcel    commands.IntakeParcelCommandHandler
	DispatchNext    commands.DispatchNextCommandHandler
	CancelParcel    commands.CancelParcelCommandHandler
	UndoLastAction  commands.UndoLastActionCommandHandler
	ReopenRoads     commands.ReopenRoadsCommandHandler
	SaveSnapshot    commands.SaveSnapshotCommandHandler
	GetParcel       queries.GetParcelQueryHandler
	ListParcels     queries.ListParcelsQueryHandler
	TrackParcel     queries.TrackParcelQueryHandler
	GetNetwork      queries.GetNetworkQueryHandler
	ActiveShipments queries.ListActiveShipmentsQueryHandler

	CountStoredParcels *queries.CountStoredParcelsQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h Handlers
}

// NewServer creates a server over the given handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")

	g.GET("/parcels", s.ListParcels)
	g.POST("/parcels", s.CreateParcel)
	g.GET("/parcels/:id", s.GetParcel)
	g.DELETE("/parcels/:id", s.CancelParcel)
	g.GET("/track/:id", s.TrackParcel)
	g.POST("/dispatches", s.Dispatch)
	g.POST("/undo", s.Undo)
	g.GET("/network", s.GetNetwork)
	g.POST("/network/reopen", s.ReopenRoads)
	g.GET("/shipments/active", s.GetActiveShipments)
	g.POST("/snapshot", s.SaveSnapshot)
	if s.h.CountStoredParcels != nil {
		g.GET("/snapshot/stats", s.GetStoredCounts)
	}
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body NewParcel
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewIntakeParcelCommand(body.TrackingID, body.Destination, body.Weight, body.Priority)
	if err != nil {
		return respondError(ctx, err, "Invalid parcel data")
	}

	view, err := s.h.IntakeParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to accept parcel")
	}
	return ctx.JSON(http.StatusCreated, toParcel(view))
}

// ListParcels handles GET /api/v1/parcels with an optional status filter.
func (s *Server) ListParcels(ctx echo.Context) error {
	query, err := queries.NewListParcelsQuery(ctx.QueryParam("status"))
	if err != nil {
		return respondError(ctx, err, "Invalid status filter")
	}

	views, err := s.h.ListParcels.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve parcels")
	}
	return ctx.JSON(http.StatusOK, toParcels(views))
}

// GetParcel handles GET /api/v1/parcels/:id.
func (s *Server) GetParcel(ctx echo.Context) error {
	query, err := queries.NewGetParcelQuery(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err, "Invalid tracking id")
	}

	resp, err := s.h.GetParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve parcel")
	}

	out := toParcel(resp.Parcel)
	if resp.Parcel.Status.IsMoving() {
		progress := resp.Progress
		out.Progress = &progress
	}
	return ctx.JSON(http.StatusOK, out)
}

// CancelParcel handles DELETE /api/v1/parcels/:id.
func (s *Server) CancelParcel(ctx echo.Context) error {
	cmd, err := commands.NewCancelParcelCommand(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err, "Invalid tracking id")
	}

	view, err := s.h.CancelParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to cancel parcel")
	}
	return ctx.JSON(http.StatusOK, toParcel(view))
}

// TrackParcel handles GET /api/v1/track/:id. The X-Cache header reports
// whether the summary came from the tracking cache.
func (s *Server) TrackParcel(ctx echo.Context) error {
	query, err := queries.NewTrackParcelQuery(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err, "Invalid tracking id")
	}

	resp, err := s.h.TrackParcel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to track parcel")
	}

	if resp.Cached {
		ctx.Response().Header().Set("X-Cache", "HIT")
	} else {
		ctx.Response().Header().Set("X-Cache", "MISS")
	}
	return ctx.JSON(http.StatusOK, resp.Summary)
}

// Dispatch handles POST /api/v1/dispatches. An empty body takes the shortest
// route; {"route": n} picks candidate n.
func (s *Server) Dispatch(ctx echo.Context) error {
	var body NewDispatch
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(&body); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
		}
	}

	cmd := commands.NewDispatchNextCommand()
	if body.Route != nil {
		var err error
		if cmd, err = commands.NewDispatchNextCommandWithRoute(*body.Route); err != nil {
			return respondError(ctx, err, "Invalid route")
		}
	}

	result, err := s.h.DispatchNext.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err, "Failed to dispatch parcel")
	}
	return ctx.JSON(http.StatusOK, toDispatch(result))
}

// Undo handles POST /api/v1/undo.
func (s *Server) Undo(ctx echo.Context) error {
	outcome, err := s.h.UndoLastAction.Handle(ctx.Request().Context(), commands.NewUndoLastActionCommand())
	if err != nil {
		return respondError(ctx, err, "Failed to undo")
	}
	return ctx.JSON(http.StatusOK, Undo{
		Action:   outcome.Action.String(),
		ParcelID: outcome.ParcelID,
		Status:   outcome.Status.String(),
	})
}

// GetNetwork handles GET /api/v1/network.
func (s *Server) GetNetwork(ctx echo.Context) error {
	snap, err := s.h.GetNetwork.Handle(ctx.Request().Context(), queries.NewGetNetworkQuery())
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve network")
	}
	return ctx.JSON(http.StatusOK, snap)
}

// ReopenRoads handles POST /api/v1/network/reopen.
func (s *Server) ReopenRoads(ctx echo.Context) error {
	reopened, err := s.h.ReopenRoads.Handle(ctx.Request().Context(), commands.NewReopenRoadsCommand())
	if err != nil {
		return respondError(ctx, err, "Failed to reopen roads")
	}

	roads := make([]RoadEnds, len(reopened))
	for i, r := range reopened {
		roads[i] = RoadEnds{From: r[0], To: r[1]}
	}
	return ctx.JSON(http.StatusOK, Reopened{Roads: roads})
}

// GetActiveShipments handles GET /api/v1/shipments/active.
func (s *Server) GetActiveShipments(ctx echo.Context) error {
	shipments, err := s.h.ActiveShipments.Handle(ctx.Request().Context(), queries.NewListActiveShipmentsQuery())
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve shipments")
	}
	return ctx.JSON(http.StatusOK, toActiveShipments(shipments))
}

// SaveSnapshot handles POST /api/v1/snapshot.
func (s *Server) SaveSnapshot(ctx echo.Context) error {
	if err := s.h.SaveSnapshot.Handle(ctx.Request().Context(), commands.NewSaveSnapshotCommand()); err != nil {
		return respondError(ctx, err, "Failed to save snapshot")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetStoredCounts handles GET /api/v1/snapshot/stats.
func (s *Server) GetStoredCounts(ctx echo.Context) error {
	rows, err := s.h.CountStoredParcels.Handle(ctx.Request().Context(), queries.NewCountStoredParcelsQuery())
	if err != nil {
		return respondError(ctx, err, "Failed to count stored parcels")
	}
	return ctx.JSON(http.StatusOK, toStoredCounts(rows))
}
