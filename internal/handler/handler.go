package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"foodparadise/internal/auth"
	apperrors "foodparadise/internal/errors"
)

// bind decodes and validates a request body.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	return nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.ToEcho(apperrors.ErrInvalidID)
	}
	return id, nil
}

func claims(c echo.Context) (*auth.Claims, error) {
	cl, ok := auth.ClaimsFrom(c)
	if !ok {
		return nil, apperrors.ToEcho(apperrors.ErrMissingCredential)
	}
	return cl, nil
}
