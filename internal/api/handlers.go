package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/ordering"
	"github.com/alexanderramin/kvitko/internal/service"
	"github.com/alexanderramin/kvitko/internal/watering"
	"github.com/labstack/echo/v4"
)

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "ok",
		"uptime_sec": int(time.Since(s.startedAt).Seconds()),
		"species":    len(s.svc.Catalog.List(c.Request().Context())),
		"rules":      s.svc.Catalog.Source(),
	})
}

func (s *Server) listPlants(c echo.Context) error {
	sort := domain.SortCustom
	if q := c.QueryParam("sort"); q != "" {
		var err error
		if sort, err = domain.ParseSortOption(q); err != nil {
			return badRequest(c, err.Error())
		}
	}
	plants, err := s.svc.Plants.List(c.Request().Context(), sort)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPlantsJSON(plants, s.now()))
}

// listRetired sorts by name; ?sort=recent puts the latest retirements first.
func (s *Server) listRetired(c echo.Context) error {
	order := c.QueryParam("sort")
	if order != "" && order != "name" && order != "recent" {
		return badRequest(c, "sort must be name or recent")
	}
	plants, err := s.svc.Plants.ListRetired(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	if order == "recent" {
		plants = ordering.RecentlyRetired(plants)
	}
	return c.JSON(http.StatusOK, toPlantsJSON(plants, s.now()))
}

func (s *Server) getPlant(c echo.Context) error {
	p, err := s.svc.Plants.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPlantJSON(p, s.now()))
}

// mutated answers a plant mutation. A failed reminder update does not undo
// the change, so it is reported alongside the plant rather than as an error.
func (s *Server) mutated(c echo.Context, p *domain.Plant, err error) error {
	if err != nil && !errors.Is(err, service.ErrNotifyFailed) {
		return s.fail(c, err)
	}
	body := echo.Map{"plant": toPlantJSON(p, s.now())}
	if err != nil {
		s.logger.Warn("reminder update failed", "plant_id", p.ID, "error", err)
		body["warning"] = err.Error()
	}
	return c.JSON(http.StatusOK, body)
}

func (s *Server) water(c echo.Context) error {
	var body struct {
		At *time.Time `json:"at"`
	}
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&body); err != nil {
			return badRequest(c, "bad json")
		}
	}
	at := s.now()
	if body.At != nil {
		at = *body.At
	}
	p, err := s.svc.Plants.MarkWatered(c.Request().Context(), c.Param("id"), at)
	return s.mutated(c, p, err)
}

func (s *Server) retire(c echo.Context) error {
	p, err := s.svc.Plants.Retire(c.Request().Context(), c.Param("id"))
	return s.mutated(c, p, err)
}

func (s *Server) reorder(c echo.Context) error {
	var body struct {
		From *int `json:"from"`
		To   *int `json:"to"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "bad json")
	}
	if body.From == nil || body.To == nil {
		return badRequest(c, "from and to are required")
	}
	seq, err := s.svc.Plants.Reorder(c.Request().Context(), *body.From, *body.To)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPlantsJSON(seq, s.now()))
}

func (s *Server) listRooms(c echo.Context) error {
	rooms, err := s.svc.Rooms.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	out := make([]roomJSON, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomJSON{
			ID:               r.ID,
			Name:             r.Name,
			Type:             r.Type,
			CompassDirection: r.CompassDirection,
			CompassPoint:     r.CompassPoint(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) calendar(c echo.Context) error {
	now := s.now()
	ref := now
	if m := c.QueryParam("month"); m != "" {
		parsed, err := time.ParseInLocation("2006-01", m, now.Location())
		if err != nil {
			return badRequest(c, "month must be YYYY-MM")
		}
		ref = parsed
	}
	days, err := s.svc.Calendar.Month(c.Request().Context(), ref)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"month": ref.Format("2006-01"),
		"days":  toCalendarJSON(days, now),
	})
}

func (s *Server) agenda(c echo.Context) error {
	days := 7
	if q := c.QueryParam("days"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			return badRequest(c, "days must be a non-negative integer")
		}
		days = n
	}
	now := s.now()
	a, err := s.svc.Calendar.Agenda(c.Request().Context(), now, days)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, agendaJSON{
		Overdue:  toPlantsJSON(a.Overdue, now),
		Today:    toPlantsJSON(a.Today, now),
		Upcoming: toPlantsJSON(a.Upcoming, now),
	})
}

func (s *Server) listSpecies(c echo.Context) error {
	ctx := c.Request().Context()
	if q := c.QueryParam("q"); q != "" {
		return c.JSON(http.StatusOK, s.svc.Catalog.Search(ctx, q))
	}
	return c.JSON(http.StatusOK, s.svc.Catalog.List(ctx))
}

func (s *Server) showSpecies(c echo.Context) error {
	care := domain.DefaultCare()
	var err error
	if v := c.QueryParam("proximity"); v != "" {
		if care.Proximity, err = domain.ParseProximity(v); err != nil {
			return badRequest(c, err.Error())
		}
	}
	if v := c.QueryParam("pot"); v != "" {
		if care.PotMaterial, err = domain.ParsePotMaterial(v); err != nil {
			return badRequest(c, err.Error())
		}
	}
	if v := c.QueryParam("substrate"); v != "" {
		if care.Substrate, err = domain.ParseSubstrate(v); err != nil {
			return badRequest(c, err.Error())
		}
	}
	if v := c.QueryParam("humidity"); v != "" {
		if care.Humidity, err = domain.ParseHumidity(v); err != nil {
			return badRequest(c, err.Error())
		}
	}

	d, err := s.svc.Catalog.Show(c.Request().Context(), c.Param("key"), care, s.now())
	if errors.Is(err, watering.ErrUnknownSpecies) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, speciesJSON{
		Key:    d.Profile.Key,
		Season: d.Season,
		Care: careJSON{
			Proximity:   d.Care.Proximity,
			PotMaterial: d.Care.PotMaterial,
			Substrate:   d.Care.Substrate,
			Humidity:    d.Care.Humidity,
		},
		Interval: d.Interval,
	})
}
