package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skywave/skywave/internal/dashboard"
	"github.com/skywave/skywave/internal/prefs"
	"github.com/skywave/skywave/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. This layer is
// the presentation adapter: it only ever sees a loading state, a bundle or
// an error, and owns how those map onto HTTP.
func RegisterRoutes(app *fiber.App, ctrl *dashboard.Controller, store prefs.Store) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(dashboardResponse{
			State:       ctrl.State(),
			Preferences: readPreferences(store),
		})
	})

	v1.Post("/lookup", func(c *fiber.Ctx) error {
		var req lookupRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		query, err := req.toQuery()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		bundle, err := ctrl.Lookup(c.Context(), query)
		if err != nil {
			return statusError(err)
		}
		return c.JSON(bundle)
	})

	v1.Get("/preferences", func(c *fiber.Ctx) error {
		return c.JSON(readPreferences(store))
	})

	v1.Put("/preferences", func(c *fiber.Ctx) error {
		var req preferencesUpdate
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if req.Unit != "" {
			if err := store.Set(prefs.KeyUnit, req.Unit); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to save preferences")
			}
		}
		if req.Theme != "" {
			if err := store.Set(prefs.KeyTheme, req.Theme); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "failed to save preferences")
			}
		}

		return c.JSON(readPreferences(store))
	})
}

// statusError maps the lookup error taxonomy onto HTTP statuses.
func statusError(err error) error {
	var fe *weather.FetchError
	if !errors.As(err, &fe) {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	switch fe.Kind {
	case weather.KindNotFound:
		return fiber.NewError(fiber.StatusNotFound, fe.Message)
	case weather.KindLocationUnavailable:
		return fiber.NewError(fiber.StatusServiceUnavailable, fe.Message)
	default:
		return fiber.NewError(fiber.StatusBadGateway, fe.Message)
	}
}

type dashboardResponse struct {
	State       dashboard.State `json:"state"`
	Preferences preferences     `json:"preferences"`
}

// lookupRequest is the body of POST /lookup: a city, a coordinate pair, or
// an auto-detect request. Exactly one form must be present.
type lookupRequest struct {
	City string   `json:"city"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Auto bool     `json:"auto"`
}

func (r lookupRequest) toQuery() (weather.LocationQuery, error) {
	hasCity := r.City != ""
	hasCoords := r.Lat != nil || r.Lon != nil

	switch {
	case hasCity && !hasCoords && !r.Auto:
		return weather.ByName(r.City), nil
	case hasCoords && !hasCity && !r.Auto:
		if r.Lat == nil || r.Lon == nil {
			return weather.LocationQuery{}, errors.New("both lat and lon are required")
		}
		return weather.ByCoordinates(*r.Lat, *r.Lon), nil
	case r.Auto && !hasCity && !hasCoords:
		return weather.Auto(), nil
	default:
		return weather.LocationQuery{}, errors.New("specify exactly one of city, lat/lon, or auto")
	}
}

type preferencesUpdate struct {
	Unit  string `json:"unit" validate:"omitempty,oneof=celsius fahrenheit"`
	Theme string `json:"theme" validate:"omitempty,oneof=dark light"`
}

type preferences struct {
	Unit  string `json:"unit"`
	Theme string `json:"theme"`
}

// readPreferences returns the stored unit and theme with the dashboard's
// defaults filled in. Store failures fall back to defaults; preferences are
// never load-bearing.
func readPreferences(store prefs.Store) preferences {
	p := preferences{Unit: string(weather.UnitCelsius), Theme: "dark"}
	if unit, ok, err := store.Get(prefs.KeyUnit); err == nil && ok {
		p.Unit = unit
	}
	if theme, ok, err := store.Get(prefs.KeyTheme); err == nil && ok {
		p.Theme = theme
	}
	return p
}
