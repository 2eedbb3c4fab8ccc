package export

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/claude/paceforge/internal/plan"
)

// TCX document structures, minimal subset of the Garmin schema.

type tcxDatabase struct {
	XMLName    xml.Name      `xml:"TrainingCenterDatabase"`
	Namespace  string        `xml:"xmlns,attr"`
	Activities tcxActivities `xml:"Activities"`
}

type tcxActivities struct {
	Activity []tcxActivity `xml:"Activity"`
}

type tcxActivity struct {
	Sport string   `xml:"Sport,attr"`
	ID    string   `xml:"Id"`
	Laps  []tcxLap `xml:"Lap"`
	Notes string   `xml:"Notes,omitempty"`
}

type tcxLap struct {
	StartTime        string  `xml:"StartTime,attr"`
	TotalTimeSeconds float64 `xml:"TotalTimeSeconds"`
	DistanceMeters   float64 `xml:"DistanceMeters"`
	Intensity        string  `xml:"Intensity"`
	TriggerMethod    string  `xml:"TriggerMethod"`
}

const tcxNamespace = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"

func tcxSport(cat plan.Category) string {
	if cat == plan.CategoryRun {
		return "Running"
	}
	return "Other"
}

func tcxIntensity(i plan.Intensity) string {
	if i == plan.IntensityHigh {
		return "Active"
	}
	return "Resting"
}

// distanceMeters extracts the leading numeric value of a label like
// "8.3 km" and converts it to meters. Unparseable labels yield zero.
func distanceMeters(label string) float64 {
	label = strings.TrimSpace(label)
	end := 0
	for end < len(label) && (label[end] == '.' || label[end] == ',' || (label[end] >= '0' && label[end] <= '9')) {
		end++
	}
	if end == 0 {
		return 0
	}
	km, err := strconv.ParseFloat(strings.ReplaceAll(label[:end], ",", "."), 64)
	if err != nil {
		return 0
	}
	return km * 1000
}

// RenderTCX serializes one completed session as a TCX document.
func RenderTCX(tuple plan.ExportTuple) ([]byte, error) {
	start := tuple.CompletedAt.UTC()

	notes := tuple.Session.Type
	if tuple.Route != "" {
		notes += " / " + tuple.Route
	}

	doc := tcxDatabase{
		Namespace: tcxNamespace,
		Activities: tcxActivities{
			Activity: []tcxActivity{{
				Sport: tcxSport(tuple.Session.Category),
				ID:    start.Format(time.RFC3339),
				Laps: []tcxLap{{
					StartTime:        start.Format(time.RFC3339),
					TotalTimeSeconds: float64(tuple.Duration) * 60,
					DistanceMeters:   distanceMeters(tuple.Distance),
					Intensity:        tcxIntensity(tuple.Session.Intensity),
					TriggerMethod:    "Manual",
				}},
				Notes: notes,
			}},
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling tcx: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
