package maternity

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mamapack/mamapack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/mothers", h.CreateMotherProfile)
	api.GET("/mothers/:id", h.GetMotherProfile)
	api.POST("/mothers/:id/health-records", h.AddHealthRecord)
	api.GET("/mothers/:id/health-records", h.GetMotherHealthRecords)
	api.GET("/critical-cases", h.ListCriticalCases)
	api.GET("/high-risk-profiles", h.ListHighRiskProfiles)
	api.GET("/appointments/upcoming", h.ListUpcomingAppointments)
}

func (h *Handler) CreateMotherProfile(c echo.Context) error {
	var in MotherProfileInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.CreateMotherProfile(c.Request().Context(), in)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetMotherProfile(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetMotherProfile(c.Request().Context(), id)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) AddHealthRecord(c echo.Context) error {
	motherID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mother id")
	}
	var in HealthRecordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in.MotherID = motherID
	rec, err := h.svc.AddHealthRecord(c.Request().Context(), in)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) GetMotherHealthRecords(c echo.Context) error {
	motherID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mother id")
	}
	records, err := h.svc.GetMotherHealthRecords(c.Request().Context(), motherID)
	if err != nil {
		return domainHTTPError(err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) ListCriticalCases(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.CriticalCases(c.Request().Context())
	page, total := pagination.Window(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListHighRiskProfiles(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.HighRiskProfiles(c.Request().Context())
	page, total := pagination.Window(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListUpcomingAppointments(c echo.Context) error {
	windowDays := 7
	if raw := c.QueryParam("window_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid window_days")
		}
		windowDays = n
	}
	items, err := h.svc.UpcomingAppointments(c.Request().Context(), windowDays)
	if err != nil {
		return domainHTTPError(err)
	}
	if items == nil {
		items = []UpcomingAppointment{}
	}
	return c.JSON(http.StatusOK, items)
}

func parseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}

// domainHTTPError maps the store's error taxonomy onto HTTP status codes.
func domainHTTPError(err error) *echo.HTTPError {
	switch {
	case IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
