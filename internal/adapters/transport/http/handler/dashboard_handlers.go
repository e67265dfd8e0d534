package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/transport/http/dto"
	"github.com/2tzz/Wheather-App-Fidenz/internal/adapters/transport/http/middleware"
	dashboardsvc "github.com/2tzz/Wheather-App-Fidenz/internal/app/dashboard/service"
	customErrors "github.com/2tzz/Wheather-App-Fidenz/internal/domain/errors"
)

func (h *Handler) listDashboard(c *gin.Context) {
	entries, err := h.dashboards.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(entries, time.Now()))
}

func toDashboardResponse(entries []dashboardsvc.Entry, now time.Time) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		Cities: make([]dto.DashboardEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		item := dto.DashboardEntryResponse{City: dto.NewCityResponse(e.City)}
		switch {
		case e.Err == nil && e.Weather != nil:
			w := dto.NewWeatherResponse(*e.Weather, now)
			item.Weather = &w
		case customErrors.IsCityNotFound(e.Err):
			item.Error = "city not found"
		default:
			item.Error = "weather unavailable"
		}
		resp.Cities = append(resp.Cities, item)
	}
	return resp
}

func (h *Handler) addCity(c *gin.Context) {
	var body dto.AddCityDTO

	// JSON или form-urlencoded — поддерживаем оба варианта
	switch c.ContentType() {
	case "application/json":
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	default:
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	added, err := h.dashboards.AddCity(c.Request.Context(), middleware.UserID(c), body.Name)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCityResponse(added))
}

func (h *Handler) removeCity(c *gin.Context) {
	cityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid city id"})
		return
	}

	if err := h.dashboards.RemoveCity(c.Request.Context(), middleware.UserID(c), cityID); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "city removed"})
}

func (h *Handler) cityWeather(c *gin.Context) {
	cityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid city id"})
		return
	}

	w, err := h.dashboards.CityWeather(c.Request.Context(), cityID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWeatherResponse(w, time.Now()))
}
