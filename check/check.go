// Package check runs local, per-command structural checks. Every check
// is pure: it never inspects sibling commands and never fails.
package check

import (
	"fmt"

	"github.com/jsphweid/arcdex/chart"
	"github.com/jsphweid/arcdex/constants"
	"github.com/jsphweid/arcdex/model"
)

// Issue flags one field of a command.
type Issue struct {
	Field   string
	Message string
}

// Report is the outcome of checking a single command.
type Report struct {
	OK     bool
	Issues []Issue
}

// CommandReport ties a report to a command's position in the chart.
// Nested positions are dotted paths like "4.1".
type CommandReport struct {
	Position string
	Command  model.Command
	Report   Report
}

// Command checks one command in isolation.
func Command(cmd model.Command) Report {
	var issues []Issue
	switch v := cmd.(type) {
	case model.Tap:
		issues = checkTap(v)
	case model.Hold:
		issues = checkHold(v)
	case model.Arc:
		issues = checkArc(v)
	case model.Flick:
		issues = checkFlick(v)
	case model.Timing:
		issues = checkTiming(v)
	case model.Camera:
		issues = checkCamera(v)
	case model.SceneControl:
		issues = checkSceneControl(v)
	case model.TimingGroup:
		issues = checkTimingGroup(v)
	case model.Unknown:
		issues = []Issue{{Field: "name", Message: fmt.Sprintf("unrecognized command %q", v.Raw)}}
	}
	return Report{OK: len(issues) == 0, Issues: issues}
}

// Chart batch-checks every command including timing group children,
// collecting all issues without short-circuiting. It also flags
// duplicate top-level timing times, which no local check can see.
func Chart(c *chart.Chart) []CommandReport {
	var reports []CommandReport
	reports = walk(c.Commands(), "", reports)

	seen := make(map[int]bool)
	for i, cmd := range c.Commands() {
		t, ok := cmd.(model.Timing)
		if !ok {
			continue
		}
		if seen[t.Time] {
			reports = append(reports, CommandReport{
				Position: fmt.Sprintf("%d", i),
				Command:  t,
				Report: Report{Issues: []Issue{{
					Field:   "time",
					Message: fmt.Sprintf("duplicate timing at %d ms", t.Time),
				}}},
			})
		}
		seen[t.Time] = true
	}
	return reports
}

func walk(cmds []model.Command, prefix string, reports []CommandReport) []CommandReport {
	for i, cmd := range cmds {
		pos := fmt.Sprintf("%s%d", prefix, i)
		reports = append(reports, CommandReport{Position: pos, Command: cmd, Report: Command(cmd)})
		if group, ok := cmd.(model.TimingGroup); ok {
			reports = walk(group.Children, pos+".", reports)
		}
	}
	return reports
}

func checkLane(lane int, issues []Issue) []Issue {
	if lane < constants.MinLane || lane > constants.MaxLane {
		issues = append(issues, Issue{
			Field:   "lane",
			Message: fmt.Sprintf("lane %d outside [%d, %d]", lane, constants.MinLane, constants.MaxLane),
		})
	}
	return issues
}

func checkNonNegative(field string, t int, issues []Issue) []Issue {
	if t < 0 {
		issues = append(issues, Issue{Field: field, Message: fmt.Sprintf("%s %d is negative", field, t)})
	}
	return issues
}

func checkTap(t model.Tap) []Issue {
	var issues []Issue
	issues = checkNonNegative("time", t.Time, issues)
	issues = checkLane(t.Lane, issues)
	return issues
}

func checkHold(h model.Hold) []Issue {
	var issues []Issue
	issues = checkNonNegative("start", h.Start, issues)
	if h.End <= h.Start {
		issues = append(issues, Issue{
			Field:   "end",
			Message: fmt.Sprintf("end %d not after start %d", h.End, h.Start),
		})
	}
	issues = checkLane(h.Lane, issues)
	return issues
}

func checkArc(a model.Arc) []Issue {
	var issues []Issue
	issues = checkNonNegative("start", a.Start, issues)
	issues = checkNonNegative("end", a.End, issues)
	// only skylines may run backwards
	if a.End < a.Start && !a.IsSkyline() {
		issues = append(issues, Issue{
			Field:   "end",
			Message: fmt.Sprintf("end %d before start %d on a non-skyline arc", a.End, a.Start),
		})
	}
	if !model.Contains(model.ArcEasings, a.Easing) {
		issues = append(issues, Issue{Field: "easing", Message: fmt.Sprintf("unsupported easing %q", a.Easing)})
	}
	if !a.Color.Valid() {
		issues = append(issues, Issue{Field: "color", Message: fmt.Sprintf("color index %d outside palette", int(a.Color))})
	}
	if !model.IsHitSound(a.HitSound) {
		issues = append(issues, Issue{Field: "hitSound", Message: fmt.Sprintf("unsupported hit sound %q", a.HitSound)})
	}
	if !model.Contains(model.SkylineValues, a.Skyline) {
		issues = append(issues, Issue{Field: "skyline", Message: fmt.Sprintf("unsupported skyline value %q", a.Skyline)})
	}
	for i, at := range a.ArcTaps {
		if at.Offset < 0 || a.Start+at.Offset > a.End {
			issues = append(issues, Issue{
				Field:   fmt.Sprintf("arctap[%d]", i),
				Message: fmt.Sprintf("arctap at %d outside arc window [%d, %d]", a.Start+at.Offset, a.Start, a.End),
			})
		}
	}
	return issues
}

func checkFlick(f model.Flick) []Issue {
	return checkNonNegative("time", f.Time, nil)
}

func checkTiming(t model.Timing) []Issue {
	var issues []Issue
	issues = checkNonNegative("time", t.Time, issues)
	if t.Beats == 0 {
		issues = append(issues, Issue{Field: "beats", Message: "beats per bar is zero"})
	}
	// negative bpm is only meaningful after the chart start
	if t.Bpm < 0 && t.Time == 0 {
		issues = append(issues, Issue{Field: "bpm", Message: fmt.Sprintf("negative bpm %v at time 0", t.Bpm)})
	}
	return issues
}

func checkCamera(c model.Camera) []Issue {
	var issues []Issue
	issues = checkNonNegative("time", c.Time, issues)
	if !model.Contains(model.CameraEasings, c.Easing) {
		issues = append(issues, Issue{Field: "easing", Message: fmt.Sprintf("unsupported easing %q", c.Easing)})
	}
	if c.Duration < 0 {
		issues = append(issues, Issue{Field: "duration", Message: fmt.Sprintf("duration %d is negative", c.Duration)})
	}
	return issues
}

func checkSceneControl(s model.SceneControl) []Issue {
	var issues []Issue
	issues = checkNonNegative("time", s.Time, issues)
	if !model.Contains(model.SceneControlKinds, s.Kind) {
		issues = append(issues, Issue{Field: "kind", Message: fmt.Sprintf("unsupported kind %q", s.Kind)})
		return issues
	}
	want := 0
	switch s.Kind {
	case "trackdisplay", "redline", "arcahvdebris", "hidegroup", "enwidenlanes", "enwidencamera":
		want = 2
	}
	if len(s.Params) != want {
		issues = append(issues, Issue{
			Field:   "params",
			Message: fmt.Sprintf("kind %q takes %d parameter(s), got %d", s.Kind, want, len(s.Params)),
		})
	}
	return issues
}

func checkTimingGroup(g model.TimingGroup) []Issue {
	var issues []Issue
	if len(g.Children) == 0 {
		issues = append(issues, Issue{Field: "children", Message: "timing group is empty"})
	}
	for _, t := range g.Types {
		if !model.Contains(model.TimingGroupTypes, t) {
			issues = append(issues, Issue{Field: "types", Message: fmt.Sprintf("unsupported attribute %q", t)})
		}
	}
	return issues
}
