package simulator

import (
	"net/http"
	"strconv"

	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/thermostat"

	"github.com/gin-gonic/gin"
)

const errNoUpdateFields = "expected " + thermostat.FieldSampleRate + " or " + thermostat.FieldTempTarget

// Handler serves the backend endpoints for a House.
type Handler struct {
	house *House
	log   *logger.Logger
}

// NewHandler wires a House to its HTTP endpoints.
func NewHandler(house *House, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{house: house, log: log}
}

// InitRoutes builds the gin router exposing the thermostat backend API.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET(thermostat.PathCurrentTemp, h.currentTemp)
	router.GET(thermostat.PathHeatStatus, h.heatStatus)
	router.POST(thermostat.PathUpdate, h.update)
	return router
}

func (h *Handler) currentTemp(c *gin.Context) {
	c.String(http.StatusOK, h.house.Reading())
}

func (h *Handler) heatStatus(c *gin.Context) {
	c.String(http.StatusOK, h.house.HeatStatus())
}

// update accepts sample_rate and/or temp_target as non-negative integers.
// Nothing is applied unless every supplied field is valid.
func (h *Handler) update(c *gin.Context) {
	rate, hasRate := c.GetPostForm(thermostat.FieldSampleRate)
	target, hasTarget := c.GetPostForm(thermostat.FieldTempTarget)

	if !hasRate && !hasTarget {
		c.String(http.StatusBadRequest, errNoUpdateFields)
		return
	}
	for field, v := range map[string]struct {
		val     string
		present bool
	}{
		thermostat.FieldSampleRate: {rate, hasRate},
		thermostat.FieldTempTarget: {target, hasTarget},
	} {
		if v.present && !isValidNumber(v.val) {
			h.log.Infow("sim_update_rejected", "field", field, "value", v.val)
			c.String(http.StatusBadRequest, "invalid "+field)
			return
		}
	}

	if hasRate {
		n, _ := strconv.Atoi(rate)
		h.house.SetSampleRate(n)
	}
	if hasTarget {
		n, _ := strconv.Atoi(target)
		h.house.SetTarget(n)
	}
	c.String(http.StatusOK, "OK")
}

// isValidNumber reports whether s is a non-empty run of ASCII digits that
// fits in an int.
func isValidNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
