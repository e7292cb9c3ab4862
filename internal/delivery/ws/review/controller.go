package ws_review

import (
	"log/slog"
	"net/http"
	"strconv"

	http_common "github.com/filmnest/core/internal/delivery/http/common"
	"github.com/filmnest/core/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Controller struct {
	hub    *Hub
	logger *slog.Logger
}

func NewController(hub *Hub) *Controller {
	return &Controller{
		hub:    hub,
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	ws := router.Group("/ws")
	ws.GET("/reviews/:kind/:media_id", c.subscribe)
}

// subscribe upgrades the connection and attaches the client to the change
// feed of one media record.
func (c *Controller) subscribe(ctx *gin.Context) {
	kind, err := model.ParseMediaKind(ctx.Param("kind"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid media kind",
			Code:  http.StatusBadRequest,
		})
		return
	}

	mediaID, err := strconv.ParseInt(ctx.Param("media_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid media ID",
			Code:  http.StatusBadRequest,
		})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := NewClient(conn, kind, mediaID)
	c.hub.RegisterClient(client)

	go c.hub.StartClientWriting(client)
	go c.hub.StartClientReading(client)
}
