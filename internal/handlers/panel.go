package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"thermostat_panel/internal/service"
	"thermostat_panel/internal/view"

	"github.com/gin-gonic/gin"
)

const (
	statusOK          = "ok"
	statusTargetSet   = "target_set"
	statusIntervalSet = "interval_set"
	statusPushFailed  = "push_failed"

	errGetState     = "failed to load state"
	errChangeTarget = "failed to change target"
	errPushInterval = "poll interval saved but the thermostat did not accept it"

	formPollInterval = "poll_interval"
)

// IntervalRequest is the payload for POST /api/v1/interval. Seconds is the
// raw field value; it is validated server side.
type IntervalRequest struct {
	Seconds IntervalValue `json:"seconds" swaggertype:"string" example:"15"`
}

// IntervalValue accepts a JSON string or a JSON number and keeps its text.
type IntervalValue string

func (v *IntervalValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = IntervalValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("seconds must be a string or a number: %w", err)
	}
	*v = IntervalValue(n.String())
	return nil
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include the current display if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, code int, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if st, err := h.services.Monitoring.GetState(c.Request.Context()); err == nil {
		resp["state"] = view.Project(st)
	}
	c.JSON(code, resp)
}

// respondValidation answers 422 with the inline message and the current display.
func (h *Handler) respondValidation(c *gin.Context, vErr *service.ValidationError) {
	resp := gin.H{"error": vErr.Message, "field": vErr.Field}
	if st, err := h.services.Monitoring.GetState(c.Request.Context()); err == nil {
		resp["state"] = view.Project(st)
	}
	c.JSON(http.StatusUnprocessableEntity, resp)
}

func (h *Handler) page(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "page_get_state_failed", err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.HTML(http.StatusOK, view.PageName, view.NewPage(st))
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get panel display
// @Tags         panel
// @Produce      json
// @Success      200  {object}  view.Display
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/state [get]
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, view.Project(st))
}

// @Summary      Raise target temperature
// @Description  Raises the target by one degree; pushed to the thermostat after a short debounce.
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, target, state"
// @Failure      422  {object}  map[string]interface{}  "error, field, state"
// @Router       /api/v1/target/up [post]
func (h *Handler) targetUp(c *gin.Context) {
	h.changeTarget(c, h.services.Target.Increment)
}

// @Summary      Lower target temperature
// @Description  Lowers the target by one degree; pushed to the thermostat after a short debounce.
// @Tags         panel
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, target, state"
// @Failure      422  {object}  map[string]interface{}  "error, field, state"
// @Router       /api/v1/target/down [post]
func (h *Handler) targetDown(c *gin.Context) {
	h.changeTarget(c, h.services.Target.Decrement)
}

func (h *Handler) changeTarget(c *gin.Context, step func(ctx context.Context) (int, error)) {
	target, err := step(c.Request.Context())
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.respondValidation(c, vErr)
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errChangeTarget, "target_change_failed", err)
		return
	}
	h.respondWithStatusAndState(c, http.StatusOK, statusTargetSet, gin.H{"target": target})
}

// @Summary      Set poll interval
// @Description  Seconds between temperature polls, 5 to 60. Accepts JSON or a form field named poll_interval.
// @Tags         panel
// @Accept       json
// @Produce      json
// @Param        body  body      IntervalRequest  true  "Interval payload"
// @Success      200   {object}  map[string]interface{}  "status, poll_interval, state"
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]interface{}  "error, field, state"
// @Failure      502   {object}  map[string]interface{}
// @Router       /api/v1/interval [post]
func (h *Handler) setInterval(c *gin.Context) {
	raw, ok := h.readInterval(c)
	if !ok {
		return
	}

	seconds, err := h.services.Interval.SetInterval(c.Request.Context(), raw)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			h.respondValidation(c, vErr)
			return
		}
		if h.log != nil {
			h.log.Errorw("interval_push_failed", "err", err, "seconds", seconds)
		}
		h.respondWithStatusAndState(c, http.StatusBadGateway, statusPushFailed, gin.H{"error": errPushInterval, "poll_interval": seconds})
		return
	}
	h.respondWithStatusAndState(c, http.StatusOK, statusIntervalSet, gin.H{"poll_interval": seconds})
}

// readInterval pulls the raw value from a JSON body or a form field.
func (h *Handler) readInterval(c *gin.Context) (string, bool) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		var req IntervalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if h.log != nil {
				h.log.Infow("interval_bad_request_body", "err", err)
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
			return "", false
		}
		return string(req.Seconds), true
	}
	return c.PostForm(formPollInterval), true
}
