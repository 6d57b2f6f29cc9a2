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

type RegistrationService interface {
	RequestJoin(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	ListPending(ctx context.Context) ([]domain.Registration, error)
	UpdatePending(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	Approve(ctx context.Context, id uint) (domain.Participant, error)
	Reject(ctx context.Context, id uint) error
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleRequestJoin godoc
// @Summary      Ask to join the gift exchange
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.JoinRequest  true  "applicant"
// @Success      201      {object}  response.MessageResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /registrations [post]
func (h *RegistrationHandler) HandleRequestJoin(ctx *gin.Context) {
	var req request.JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	_, err := h.svc.RequestJoin(ctx.Request.Context(), domain.Registration{
		Name:       req.Name,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleRequestJoin -> h.svc.RequestJoin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.MessageResponse{Message: "Request sent successfully!"})
}

// HandleListPending godoc
// @Summary      List pending join requests
// @Tags         registrations
// @Produce      json
// @Success      200  {array}   domain.Registration
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/registrations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleListPending(ctx *gin.Context) {
	registrations, err := h.svc.ListPending(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPending -> h.svc.ListPending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleUpdatePending godoc
// @Summary      Correct a pending join request
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        registrationID  path      int                               true  "Registration ID"
// @Param        request         body      request.UpdateParticipantRequest  true  "corrected fields"
// @Success      200             {object}  domain.Registration
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /admin/registrations/{registrationID} [put]
// @Security BearerAuth
func (h *RegistrationHandler) HandleUpdatePending(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "registrationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdatePending(ctx.Request.Context(), domain.Registration{
		ID:         id,
		Name:       req.Name,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePending -> h.svc.UpdatePending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleApprove godoc
// @Summary      Approve a join request
// @Description  Moves the request into the participant pool.
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      201             {object}  domain.Participant
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      409             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /admin/registrations/{registrationID}/approve [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleApprove(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "registrationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant, err := h.svc.Approve(ctx.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "id", id))
		case errors.Is(err, service.ErrParticipantExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrParticipantExists.Error()))
		default:
			err = fmt.Errorf("v1.HandleApprove -> h.svc.Approve -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, participant)
}

// HandleReject godoc
// @Summary      Reject a join request
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path      int  true  "Registration ID"
// @Success      200             {object}  response.MessageResponse
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /admin/registrations/{registrationID} [delete]
// @Security BearerAuth
func (h *RegistrationHandler) HandleReject(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "registrationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Reject(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleReject -> h.svc.Reject -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Rejected"})
}
