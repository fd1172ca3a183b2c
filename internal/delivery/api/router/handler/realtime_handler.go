package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"vigil/config"
	deliverycontext "vigil/internal/delivery/context"
	"vigil/internal/infra/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RealtimeHandlerParams holds dependencies for RealtimeHandler, injected by Fx.
type RealtimeHandlerParams struct {
	fx.In

	Hub    *realtime.Hub
	Config *config.Config
	Logger *slog.Logger
}

// RealtimeHandler upgrades browser connections onto the live notification channel.
type RealtimeHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewRealtimeHandler is the constructor for RealtimeHandler
func NewRealtimeHandler(params RealtimeHandlerParams) *RealtimeHandler {
	allowed := params.Config.HTTP.AllowedOrigins

	return &RealtimeHandler{
		hub:    params.Hub,
		logger: params.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin; an empty allow-list admits everyone.
				return origin == "" || len(allowed) == 0 || slices.Contains(allowed, origin)
			},
		},
	}
}

// Connect handles GET /ws
func (h *RealtimeHandler) Connect(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
			Warn("Websocket upgrade failed", slog.Any("error", err))

		return nil
	}

	client := h.hub.Attach(conn)
	h.logger.Debug("Live client connected",
		slog.String("client_id", client.ID()),
		slog.String("remote_ip", c.RealIP()),
	)

	return nil
}
