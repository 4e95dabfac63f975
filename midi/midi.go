// Package midi renders a decoded chart as a Standard MIDI File: the
// tempo map comes from the timing commands, the notes from every
// combo-contributing command.
package midi

import (
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/arcdex/chart"
	"github.com/jsphweid/arcdex/model"
)

const TicksPerQuarter = 960

const (
	laneBaseKey   = 59 // lanes 1..4 map to 60..63
	arcKey        = 72
	arcTapKey     = 84
	flickKey      = 67
	noteVelocity  = 100
	tapDurationMs = 60
)

type event struct {
	timeMs float64
	off    bool
	msg    midi.Message
}

// Build converts a chart into a two-track SMF: tempo map plus notes.
func Build(c *chart.Chart) *smf.SMF {
	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	tm := newTempoMap(c.Segments())

	var tempoTrack smf.Track
	var prev uint32
	for _, seg := range c.Segments() {
		bpm := seg.Bpm
		if bpm <= 0 {
			continue
		}
		at := tm.ticksAt(float64(seg.Start))
		tempoTrack.Add(at-prev, smf.MetaTempo(bpm))
		prev = at
	}
	tempoTrack.Close(0)
	s.Tracks = append(s.Tracks, tempoTrack)

	events := collectEvents(c.Commands(), nil)
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].timeMs != events[j].timeMs {
			return events[i].timeMs < events[j].timeMs
		}
		return events[i].off && !events[j].off
	})

	var noteTrack smf.Track
	prev = 0
	for _, evt := range events {
		at := tm.ticksAt(evt.timeMs)
		noteTrack.Add(at-prev, evt.msg)
		prev = at
	}
	noteTrack.Close(0)
	s.Tracks = append(s.Tracks, noteTrack)

	return &s
}

// Write renders the chart to a .mid file.
func Write(c *chart.Chart, path string) error {
	return Build(c).WriteFile(path)
}

func collectEvents(cmds []model.Command, events []event) []event {
	for _, cmd := range cmds {
		switch v := cmd.(type) {
		case model.Tap:
			events = appendNote(events, float64(v.Time), tapDurationMs, laneKey(v.Lane))
		case model.Hold:
			if v.End > v.Start {
				events = appendNote(events, float64(v.Start), float64(v.End-v.Start), laneKey(v.Lane))
			}
		case model.Arc:
			key := uint8(arcKey)
			if v.Color.Valid() {
				key += uint8(v.Color)
			}
			if v.End > v.Start {
				events = appendNote(events, float64(v.Start), float64(v.End-v.Start), key)
			}
			for _, at := range v.ArcTaps {
				events = appendNote(events, float64(v.Start+at.Offset), tapDurationMs, arcTapKey)
			}
		case model.Flick:
			events = appendNote(events, float64(v.Time), tapDurationMs, flickKey)
		case model.TimingGroup:
			if v.NoInput() {
				continue
			}
			events = collectEvents(v.Children, events)
		}
	}
	return events
}

func appendNote(events []event, startMs, durationMs float64, key uint8) []event {
	events = append(events, event{timeMs: startMs, msg: midi.NoteOn(0, key, noteVelocity)})
	events = append(events, event{timeMs: startMs + durationMs, off: true, msg: midi.NoteOff(0, key)})
	return events
}

func laneKey(lane int) uint8 {
	if lane < 1 || lane > 8 {
		lane = 1
	}
	return uint8(laneBaseKey + lane)
}

// tempoMap converts chart milliseconds into SMF ticks by walking the
// tempo segments cumulatively.
type tempoMap struct {
	segments []chart.Segment
	cum      []float64 // ticks elapsed at each segment start
}

func newTempoMap(segments []chart.Segment) *tempoMap {
	tm := &tempoMap{segments: segments, cum: make([]float64, len(segments))}
	var acc float64
	for i, seg := range segments {
		tm.cum[i] = acc
		acc += msToTicks(float64(seg.End-seg.Start), seg.Bpm)
	}
	return tm
}

func (tm *tempoMap) ticksAt(ms float64) uint32 {
	if len(tm.segments) == 0 || ms <= float64(tm.segments[0].Start) {
		return 0
	}
	for i, seg := range tm.segments {
		last := i == len(tm.segments)-1
		if ms < float64(seg.End) || last {
			return uint32(tm.cum[i] + msToTicks(ms-float64(seg.Start), seg.Bpm))
		}
	}
	return 0
}

func msToTicks(ms, bpm float64) float64 {
	if bpm < 0 {
		bpm = -bpm
	}
	if bpm == 0 {
		bpm = 120
	}
	return ms * bpm / 60000.0 * TicksPerQuarter
}
