// Package view projects panel state onto what the page displays.
package view

import (
	"embed"
	"html/template"
	"strconv"
	"time"

	"thermostat_panel/internal/models"
)

// PageName is the template name rendered for GET /.
const PageName = "panel.html"

// HeatIsOnClass is set on <body> while the furnace runs.
const HeatIsOnClass = "heat-is-on"

//go:embed templates/panel.html
var templatesFS embed.FS

// Display is the full set of values shown on the page. Every field is
// derived from models.PanelState and nothing else.
type Display struct {
	CurrentTemp     string `json:"current_temp"`
	Humidity        string `json:"humidity"`
	FurnaceSummary  string `json:"furnace_summary"`
	HeatStatusText  string `json:"heat_status_text"`
	HeatIsOn        bool   `json:"heat_is_on"`
	BodyClass       string `json:"body_class"`
	TargetTemp      string `json:"target_temp"`
	TableTargetTemp string `json:"table_target_temp"`
	PollInterval    string `json:"poll_interval"`
	Notice          string `json:"notice,omitempty"`
	ConfirmSeq      uint64 `json:"confirm_seq"`
}

// FadeStep is one step of the confirmation cue played on the target.
type FadeStep struct {
	Opacity    float64 `json:"opacity"`
	DurationMS int64   `json:"duration_ms"`
}

// ConfirmFade is played on the target element after a confirmed push.
var ConfirmFade = []FadeStep{
	{Opacity: 1, DurationMS: (50 * time.Millisecond).Milliseconds()},
	{Opacity: 0, DurationMS: (75 * time.Millisecond).Milliseconds()},
	{Opacity: 1, DurationMS: (75 * time.Millisecond).Milliseconds()},
	{Opacity: 0, DurationMS: (100 * time.Millisecond).Milliseconds()},
	{Opacity: 1, DurationMS: (100 * time.Millisecond).Milliseconds()},
}

// Page is the data handed to the page template.
type Page struct {
	Display
	Fade []FadeStep
}

// Project maps state to display values.
func Project(st models.PanelState) Display {
	target := strconv.Itoa(st.Target)
	d := Display{
		CurrentTemp:     st.CurrentTemp,
		Humidity:        st.Humidity,
		FurnaceSummary:  st.FurnaceSummary,
		HeatIsOn:        st.HeatIsOn,
		TargetTemp:      target,
		TableTargetTemp: target,
		PollInterval:    strconv.Itoa(st.PollInterval),
		Notice:          st.Notice,
		ConfirmSeq:      st.ConfirmSeq,
	}
	if st.HeatStatus != "" {
		d.HeatStatusText = "Furnace is currently " + st.HeatStatus
	}
	if st.HeatIsOn {
		d.BodyClass = HeatIsOnClass
	}
	return d
}

// NewPage builds the template data for st.
func NewPage(st models.PanelState) Page {
	return Page{Display: Project(st), Fade: ConfirmFade}
}

// Template parses the embedded page template.
func Template() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/"+PageName))
}
