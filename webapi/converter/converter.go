package converter

import (
	"errors"

	"github.com/amirasaad/tokenswap/pkg/converter"
	"github.com/amirasaad/tokenswap/pkg/sanitize"
	"github.com/amirasaad/tokenswap/pkg/selection"
	converterSvc "github.com/amirasaad/tokenswap/pkg/service/converter"
	"github.com/amirasaad/tokenswap/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the converter endpoints.
func Routes(app *fiber.App, svc *converterSvc.Service) {
	api := app.Group("/api")
	api.Get("/currencies", ListCurrencies(svc))
	api.Post("/keystroke", FilterKeystroke())

	sessions := api.Group("/sessions")
	sessions.Post("/", CreateSession(svc))
	sessions.Get("/:id", GetSession(svc))
	sessions.Delete("/:id", DeleteSession(svc))
	sessions.Post("/:id/amount", EditAmount(svc))
	sessions.Post("/:id/select", SelectCurrency(svc))
	sessions.Post("/:id/toggle", ToggleDropdown(svc))
	sessions.Post("/:id/close", CloseDropdowns(svc))
	sessions.Post("/:id/swap", Swap(svc))
}

// ListCurrencies returns the catalog in feed order.
func ListCurrencies(svc *converterSvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currencies, err := svc.Currencies(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Price catalog unavailable", err)
		}
		out := make([]CurrencyResponse, 0, len(currencies))
		for _, cur := range currencies {
			out = append(out, CurrencyResponse{Symbol: cur.Symbol, Price: cur.Price.String()})
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currencies fetched successfully", out)
	}
}

// FilterKeystroke reports whether a key may reach an amount field.
func FilterKeystroke() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[KeystrokeRequest](c)
		if input == nil {
			return err
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Keystroke checked",
			KeystrokeResponse{Accept: sanitize.FilterKeystroke(input.Key)})
	}
}

// CreateSession starts a converter session.
func CreateSession(svc *converterSvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, view, err := svc.Create(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Price catalog unavailable", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Session created",
			SessionResponse{ID: id.String(), View: view})
	}
}

// GetSession returns the current view of a session.
func GetSession(svc *converterSvc.Service) fiber.Handler {
	return withSession(svc, func(c *fiber.Ctx, ctrl *converter.Controller) (converter.View, error) {
		return ctrl.View(), nil
	})
}

// DeleteSession closes a session.
func DeleteSession(svc *converterSvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid session id", err, fiber.StatusBadRequest)
		}
		if err := svc.Delete(id); err != nil {
			return common.ProblemDetailsJSON(c, "Session not found", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// EditAmount applies a user edit to one amount field.
func EditAmount(svc *converterSvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		return withSession(svc, func(c *fiber.Ctx, ctrl *converter.Controller) (converter.View, error) {
			side, err := selection.ParseSide(input.Side)
			if err != nil {
				return converter.View{}, err
			}
			return ctrl.EditAmount(side, input.Value)
		})(c)
	}
}

// SelectCurrency binds a currency to a side.
func SelectCurrency(svc *converterSvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SelectRequest](c)
		if input == nil {
			return err
		}
		return withSession(svc, func(c *fiber.Ctx, ctrl *converter.Controller) (converter.View, error) {
			side, err := selection.ParseSide(input.Side)
			if err != nil {
				return converter.View{}, err
			}
			return ctrl.Select(side, input.Symbol)
		})(c)
	}
}

// ToggleDropdown opens or closes a side's dropdown.
func ToggleDropdown(svc *converterSvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ToggleRequest](c)
		if input == nil {
			return err
		}
		return withSession(svc, func(c *fiber.Ctx, ctrl *converter.Controller) (converter.View, error) {
			side, err := selection.ParseSide(input.Side)
			if err != nil {
				return converter.View{}, err
			}
			return ctrl.ToggleDropdown(side), nil
		})(c)
	}
}

// CloseDropdowns closes every dropdown, as on a click outside of them.
func CloseDropdowns(svc *converterSvc.Service) fiber.Handler {
	return withSession(svc, func(c *fiber.Ctx, ctrl *converter.Controller) (converter.View, error) {
		return ctrl.CloseDropdowns(), nil
	})
}

// Swap exchanges both sides.
func Swap(svc *converterSvc.Service) fiber.Handler {
	return withSession(svc, func(c *fiber.Ctx, ctrl *converter.Controller) (converter.View, error) {
		return ctrl.Swap(), nil
	})
}

type sessionOp func(c *fiber.Ctx, ctrl *converter.Controller) (converter.View, error)

func withSession(svc *converterSvc.Service, op sessionOp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid session id", err, fiber.StatusBadRequest)
		}
		ctrl, err := svc.Get(id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Session not found", err)
		}
		view, err := op(c, ctrl)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Operation rejected", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "OK", SessionResponse{ID: id.String(), View: view})
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Params("id")
	if raw == "" {
		return uuid.Nil, errors.New("missing session id")
	}
	return uuid.Parse(raw)
}
