package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/service"
)

type DrawService interface {
	Draw(ctx context.Context, req domain.DrawRequest) (domain.Assignment, error)
}

type DrawHandler struct {
	svc DrawService
}

func NewDrawHandler(svc DrawService) *DrawHandler {
	return &DrawHandler{
		svc: svc,
	}
}

// HandleDraw godoc
// @Summary      Draw a gift recipient
// @Description  Assigns the caller one unclaimed participant, preferring other departments. Calling again returns the same recipient with status ALREADY_DONE. A 409 CONCURRENCY_RETRY means the request should be resubmitted.
// @Tags         draw
// @Accept       json
// @Produce      json
// @Param        request  body      request.DrawRequest  true  "caller identity"
// @Success      200      {object}  response.DrawResponse
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /draw [post]
func (h *DrawHandler) HandleDraw(ctx *gin.Context) {
	var req request.DrawRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	assignment, err := h.svc.Draw(ctx.Request.Context(), domain.DrawRequest{
		Name:       req.Name,
		Phone:      req.Phone,
		PIN:        req.PIN,
		Department: req.Department,
	})
	if err != nil {
		response.RenderErr(ctx, drawErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewDrawResponse(assignment))
}

func drawErr(err error) *response.Err {
	var notStarted *service.GameNotStartedError

	switch {
	case errors.As(err, &notStarted):
		return response.ErrGameNotStarted(notStarted.StartTime)
	case errors.Is(err, service.ErrGameClosed):
		return response.ErrGameClosed()
	case errors.Is(err, service.ErrIdentityNotFound):
		return response.ErrUserNotFound()
	case errors.Is(err, service.ErrIdentityAmbiguous):
		return response.ErrConflict(response.CodeIdentityAmbiguous)
	case errors.Is(err, service.ErrNoCandidatesLeft):
		return response.ErrConflict(response.CodeNoCandidatesLeft)
	case errors.Is(err, service.ErrConcurrencyConflict):
		return response.ErrConflict(response.CodeConcurrencyRetry)
	default:
		return response.ErrInternalServerError(fmt.Errorf("v1.HandleDraw -> h.svc.Draw -> %w", err))
	}
}
