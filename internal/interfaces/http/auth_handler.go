package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emmebi/gestione-ore/internal/application/auth"
	"github.com/emmebi/gestione-ore/internal/application/dto"
	"github.com/emmebi/gestione-ore/internal/domain"
)

// AuthHandler gestisce login e master password.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler costruisce l'handler di auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// LoginAdmin godoc
// @Summary      Login amministratore
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "master password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login/admin [post]
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	if in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password richiesta"})
	}
	out, err := h.uc.LoginAsAdmin(in.Password)
	if err != nil {
		if err == domain.ErrLoginFailed {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOGIN_FAILED", Message: "password non corretta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LoginEmployee godoc
// @Summary      Login dipendente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeLoginRequest  true  "employee_id, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login/employee [post]
func (h *AuthHandler) LoginEmployee(c *fiber.Ctx) error {
	var in dto.EmployeeLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	if in.EmployeeID == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employee_id e password sono richiesti"})
	}
	out, err := h.uc.LoginAsEmployee(in.EmployeeID, in.Password)
	if err != nil {
		// Dipendente inesistente e password errata rispondono allo stesso
		// modo per non rivelare quali ID esistono.
		if err == domain.ErrLoginFailed {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "LOGIN_FAILED", Message: "credenziali non valide"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ChangeMasterPassword godoc
// @Summary      Cambio master password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangeMasterPasswordRequest  true  "current_password, new_password"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/master-password [put]
func (h *AuthHandler) ChangeMasterPassword(c *fiber.Ctx) error {
	var in dto.ChangeMasterPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo non valido"})
	}
	if err := h.uc.ChangeMasterPassword(in.CurrentPassword, in.NewPassword); err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la nuova password deve avere almeno 4 caratteri"})
		}
		if err == domain.ErrUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "password attuale non corretta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
