package handler

import (
	"github.com/labstack/echo/v4"

	"rackup/internal/usecase"
	"rackup/pkg/response"
)

type StatusHandler struct {
	statusUseCase *usecase.StatusUseCase
}

func NewStatusHandler(statusUseCase *usecase.StatusUseCase) *StatusHandler {
	return &StatusHandler{
		statusUseCase: statusUseCase,
	}
}

type createStatusCheckRequest struct {
	ClientName string `json:"client_name" validate:"required"`
}

func (h *StatusHandler) CreateStatusCheck(c echo.Context) error {
	var req createStatusCheckRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	check, err := h.statusUseCase.CreateStatusCheck(c.Request().Context(), req.ClientName)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, check)
}

func (h *StatusHandler) ListStatusChecks(c echo.Context) error {
	checks, err := h.statusUseCase.ListStatusChecks(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, checks)
}
