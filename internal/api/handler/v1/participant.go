package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ParticipantService interface {
	AddParticipants(ctx context.Context, participants []domain.Participant) ([]domain.Participant, error)
	ListParticipants(ctx context.Context) ([]domain.Participant, error)
	UpdateParticipant(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	DeleteParticipant(ctx context.Context, id uint) error
	ResetPool(ctx context.Context) error
	SetPIN(ctx context.Context, name, phone, pin string) error
	PoolStats(ctx context.Context) (domain.PoolStats, error)
	OrphanedClaims(ctx context.Context) ([]domain.Participant, error)
	ReleaseOrphanedClaim(ctx context.Context, id uint) error
	ExportAssignments(ctx context.Context, w io.Writer) error
}

type ParticipantHandler struct {
	svc ParticipantService
}

func NewParticipantHandler(svc ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		svc: svc,
	}
}

// HandleListParticipants godoc
// @Summary      List participants
// @Tags         participants
// @Produce      json
// @Success      200  {array}   domain.Participant
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/participants [get]
// @Security BearerAuth
func (h *ParticipantHandler) HandleListParticipants(ctx *gin.Context) {
	participants, err := h.svc.ListParticipants(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListParticipants -> h.svc.ListParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participants)
}

// HandleAddParticipants godoc
// @Summary      Add participants in bulk
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddParticipantsRequest  true  "players"
// @Success      201      {array}   domain.Participant
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/participants [post]
// @Security BearerAuth
func (h *ParticipantHandler) HandleAddParticipants(ctx *gin.Context) {
	var req request.AddParticipantsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participants := make([]domain.Participant, 0, len(req.Players))
	for _, p := range req.Players {
		participants = append(participants, domain.Participant{
			Name:       p.Name,
			Phone:      p.Phone,
			Department: p.Department,
			Email:      p.Email,
		})
	}

	created, err := h.svc.AddParticipants(ctx.Request.Context(), participants)
	if err != nil {
		if errors.Is(err, service.ErrParticipantExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrParticipantExists.Error()))
			return
		}

		err = fmt.Errorf("v1.HandleAddParticipants -> h.svc.AddParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateParticipant godoc
// @Summary      Edit a participant's profile
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        participantID  path      int                               true  "Participant ID"
// @Param        request        body      request.UpdateParticipantRequest  true  "profile"
// @Success      200            {object}  domain.Participant
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /admin/participants/{participantID} [put]
// @Security BearerAuth
func (h *ParticipantHandler) HandleUpdateParticipant(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "participantID")
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

	updated, err := h.svc.UpdateParticipant(ctx.Request.Context(), domain.Participant{
		ID:         id,
		Name:       req.Name,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participant", "id", id))
		case errors.Is(err, service.ErrParticipantExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrParticipantExists.Error()))
		default:
			err = fmt.Errorf("v1.HandleUpdateParticipant -> h.svc.UpdateParticipant -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteParticipant godoc
// @Summary      Delete a participant
// @Tags         participants
// @Produce      json
// @Param        participantID  path      int  true  "Participant ID"
// @Success      200            {object}  response.MessageResponse
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /admin/participants/{participantID} [delete]
// @Security BearerAuth
func (h *ParticipantHandler) HandleDeleteParticipant(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "participantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteParticipant(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("participant", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteParticipant -> h.svc.DeleteParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Participant deleted"})
}

// HandleResetPool godoc
// @Summary      Delete every participant
// @Tags         participants
// @Produce      json
// @Success      200  {object}  response.MessageResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/participants/reset [post]
// @Security BearerAuth
func (h *ParticipantHandler) HandleResetPool(ctx *gin.Context) {
	if err := h.svc.ResetPool(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleResetPool -> h.svc.ResetPool -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Database cleared completely."})
}

// HandleExportAssignments godoc
// @Summary      Download participants and recipients as xlsx
// @Tags         participants
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/participants/export [get]
// @Security BearerAuth
func (h *ParticipantHandler) HandleExportAssignments(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportAssignments(ctx.Request.Context(), &buf); err != nil {
		err = fmt.Errorf("v1.HandleExportAssignments -> h.svc.ExportAssignments -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	filename := fmt.Sprintf("secret-santa-%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// HandleSetPIN godoc
// @Summary      Set a login PIN
// @Description  Lets a participant authenticate draws with a 4-digit PIN instead of the phone number.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        request  body      request.SetPINRequest  true  "identity and PIN"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /participants/pin [post]
func (h *ParticipantHandler) HandleSetPIN(ctx *gin.Context) {
	var req request.SetPINRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.SetPIN(ctx.Request.Context(), req.Name, req.Phone, req.PIN); err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			response.RenderErr(ctx, response.ErrUserNotFound())
			return
		}

		err = fmt.Errorf("v1.HandleSetPIN -> h.svc.SetPIN -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "PIN set successfully"})
}

// HandlePoolStats godoc
// @Summary      Pool statistics
// @Tags         pool
// @Produce      json
// @Success      200  {object}  domain.PoolStats
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/pool/stats [get]
// @Security BearerAuth
func (h *ParticipantHandler) HandlePoolStats(ctx *gin.Context) {
	stats, err := h.svc.PoolStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandlePoolStats -> h.svc.PoolStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleOrphanedClaims godoc
// @Summary      List orphaned claims
// @Description  Participants marked as chosen that no one holds as recipient, left behind when a draw failed between claiming and recording.
// @Tags         pool
// @Produce      json
// @Success      200  {array}   domain.Participant
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/pool/orphans [get]
// @Security BearerAuth
func (h *ParticipantHandler) HandleOrphanedClaims(ctx *gin.Context) {
	orphans, err := h.svc.OrphanedClaims(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleOrphanedClaims -> h.svc.OrphanedClaims -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, orphans)
}

// HandleReleaseOrphanedClaim godoc
// @Summary      Return an orphaned claim to the pool
// @Tags         pool
// @Produce      json
// @Param        participantID  path      int  true  "Participant ID"
// @Success      200            {object}  response.MessageResponse
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /admin/pool/orphans/{participantID}/release [post]
// @Security BearerAuth
func (h *ParticipantHandler) HandleReleaseOrphanedClaim(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "participantID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.ReleaseOrphanedClaim(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participant", "id", id))
		case errors.Is(err, service.ErrClaimNotReleasable):
			response.RenderErr(ctx, response.ErrConflict(service.ErrClaimNotReleasable.Error()))
		default:
			err = fmt.Errorf("v1.HandleReleaseOrphanedClaim -> h.svc.ReleaseOrphanedClaim -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "Claim released"})
}
