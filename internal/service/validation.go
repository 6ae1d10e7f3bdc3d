package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/models"
)

// User-facing validation messages.
const (
	MsgTargetTooHigh   = "I don't care how much you like sitting on the vent, you are not setting the thermostat over 79."
	MsgTargetTooLow    = "Target temperature needs to be 60 or higher... you want your pipes to freeze?!"
	MsgIntervalTooLow  = "Poll interval must be at least 5 seconds."
	MsgIntervalTooHigh = "Poll interval must be at most 60 seconds (1 minute)"
)

const (
	FieldTarget       = "target"
	FieldPollInterval = "poll_interval"
)

// ValidationError is a rejected user edit. Nothing was changed or pushed.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

func checkTarget(next int) error {
	switch {
	case next > models.MaxTarget:
		return &ValidationError{Field: FieldTarget, Value: strconv.Itoa(next), Message: MsgTargetTooHigh}
	case next < models.MinTarget:
		return &ValidationError{Field: FieldTarget, Value: strconv.Itoa(next), Message: MsgTargetTooLow}
	}
	return nil
}

// parseInterval reads the leading integer of raw, the way a browser's
// parseInt does ("10s" is 10, "7.5" is 7), and accepts it when it is in
// [MinPollInterval, MaxPollInterval]. No leading integer counts as too low.
func parseInterval(raw string) (int, error) {
	digits := leadingInt(raw)
	n, err := strconv.Atoi(digits)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(digits, "-"):
		return 0, &ValidationError{Field: FieldPollInterval, Value: raw, Message: MsgIntervalTooHigh}
	case err != nil || n < models.MinPollInterval:
		return 0, &ValidationError{Field: FieldPollInterval, Value: raw, Message: MsgIntervalTooLow}
	case n > models.MaxPollInterval:
		return 0, &ValidationError{Field: FieldPollInterval, Value: raw, Message: MsgIntervalTooHigh}
	}
	return n, nil
}

// leadingInt returns the optional sign and digit run at the start of raw,
// after surrounding whitespace.
func leadingInt(raw string) string {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return ""
	}
	return s[:end]
}

// reject surfaces vErr inline: it becomes the state notice and a REJECTED event.
func (d deps) reject(ctx context.Context, vErr *ValidationError) {
	if _, err := d.stateRepo.Update(ctx, func(s *models.PanelState) error {
		s.Notice = vErr.Message
		return nil
	}); err != nil {
		d.log.Warnw("notice_update_failed", "err", err)
	}
	d.metrics.Incr(metrics.Rejected, "field:"+vErr.Field)
	d.log.Infow("edit_rejected", "field", vErr.Field, "value", vErr.Value)
	d.appendEvent(ctx, models.PanelEvent{
		Type:        models.EventRejected,
		Description: vErr.Message,
		Metadata:    map[string]any{"field": vErr.Field, "value": vErr.Value},
	})
}
