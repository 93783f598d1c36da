// Package alertdelivery manages delivery layer of price alerts.
package alertdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/pkg/errorspkg"
	"github.com/go-petr/kantoor/pkg/web"
)

// Service provides service layer interface needed by alert delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package alertdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAlertParams) (domain.PriceAlert, error)
	List(ctx context.Context) []domain.PriceAlert
	Delete(ctx context.Context, id string) error
}

// Handler facilitates alert delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns alert handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type createRequest struct {
	Currency   string `json:"currency" binding:"required,currency"`
	Condition  string `json:"condition" binding:"required,oneof=above below"`
	TargetRate string `json:"targetRate" binding:"required"`
}

type idURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Create handles http request to create a price alert.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	target, err := decimal.NewFromString(req.TargetRate)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(domain.ErrInvalidAmount))

		return
	}

	arg := domain.CreateAlertParams{
		Currency:   req.Currency,
		Condition:  domain.AlertCondition(req.Condition),
		TargetRate: target,
	}

	alert, err := h.service.Create(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrUnsupportedCurrency,
			domain.ErrInvalidCondition,
			domain.ErrNegativeAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: alert})
}

// List handles http request to list all price alerts.
func (h *Handler) List(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, web.Response{Data: h.service.List(gctx.Request.Context())})
}

// Delete handles http request to remove a price alert.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri idURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	if err := h.service.Delete(ctx, uri.ID); err != nil {
		if err == domain.ErrAlertNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
