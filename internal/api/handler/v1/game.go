package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

type GameService interface {
	Status(ctx context.Context) (domain.GameSetting, error)
	Update(ctx context.Context, setting domain.GameSetting) (domain.GameSetting, error)
}

type GameHandler struct {
	svc GameService
}

func NewGameHandler(svc GameService) *GameHandler {
	return &GameHandler{
		svc: svc,
	}
}

// HandleGetStatus godoc
// @Summary      Get game status
// @Tags         game
// @Produce      json
// @Success      200  {object}  response.GameStatusResponse
// @Failure      500  {object}  response.Err
// @Router       /game/status [get]
func (h *GameHandler) HandleGetStatus(ctx *gin.Context) {
	setting, err := h.svc.Status(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStatus -> h.svc.Status -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewGameStatusResponse(setting))
}

// HandleUpdateStatus godoc
// @Summary      Open, close or schedule the draw
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        request  body      request.GameStatusRequest  true  "new status"
// @Success      200      {object}  response.GameStatusResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/game/status [put]
// @Security BearerAuth
func (h *GameHandler) HandleUpdateStatus(ctx *gin.Context) {
	var req request.GameStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	setting, err := h.svc.Update(ctx.Request.Context(), req.Setting())
	if err != nil {
		err = fmt.Errorf("v1.HandleUpdateStatus -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewGameStatusResponse(setting))
}
