// Package chart decodes parsed aff command trees into a typed, immutable
// chart and computes statistics over it.
package chart

import (
	"sort"
	"strconv"

	"github.com/jsphweid/arcdex/constants"
	"github.com/jsphweid/arcdex/model"
)

// Segment is a time range over which the bpm is constant, bounded by
// consecutive timing commands.
type Segment struct {
	Start int
	End   int
	Bpm   float64
}

// Config tunes chart construction.
type Config struct {
	// TicksPerBeat is the beat subdivision used when turning a hold's
	// duration into combo ticks.
	TicksPerBeat int
	// BaseBPM is assumed when the chart declares no timing command.
	BaseBPM float64
}

func DefaultConfig() Config {
	return Config{
		TicksPerBeat: constants.DefaultTicksPerBeat,
		BaseBPM:      constants.DefaultBaseBPM,
	}
}

// Chart is the decoded command stream plus derived timing tables.
// It is immutable after construction; statistics are pure reads, so a
// chart can be shared across goroutines freely.
type Chart struct {
	header        map[string]string
	headerOrder   []string
	commands      []model.Command
	audioOffset   int
	densityFactor float64
	ticksPerBeat  int
	baseBPM       float64
	endTime       int
	segments      []Segment
}

func newChart(header map[string]string, headerOrder []string, commands []model.Command, cfg Config) *Chart {
	if cfg.TicksPerBeat <= 0 {
		cfg.TicksPerBeat = constants.DefaultTicksPerBeat
	}
	if cfg.BaseBPM <= 0 {
		cfg.BaseBPM = constants.DefaultBaseBPM
	}

	c := &Chart{
		header:        header,
		headerOrder:   headerOrder,
		commands:      commands,
		densityFactor: constants.DefaultDensityFactor,
		ticksPerBeat:  cfg.TicksPerBeat,
		baseBPM:       cfg.BaseBPM,
	}

	if v, ok := header[model.HeaderAudioOffset]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.audioOffset = n
		}
	}
	if v, ok := header[model.HeaderDensityFactor]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.densityFactor = f
		}
	}

	for _, cmd := range commands {
		if _, end := cmd.Interval(); end > c.endTime {
			c.endTime = end
		}
	}
	c.segments = buildSegments(commands, c.endTime, c.baseBPM)
	return c
}

// buildSegments derives the sorted tempo table from the timing commands
// in cmds. Without any timing the whole span is one implicit segment at
// the base tempo.
func buildSegments(cmds []model.Command, endTime int, baseBPM float64) []Segment {
	var timings []model.Timing
	for _, cmd := range cmds {
		if t, ok := cmd.(model.Timing); ok {
			timings = append(timings, t)
		}
	}
	if len(timings) == 0 {
		return []Segment{{Start: 0, End: endTime, Bpm: baseBPM}}
	}

	sort.SliceStable(timings, func(i, j int) bool {
		return timings[i].Time < timings[j].Time
	})

	segments := make([]Segment, len(timings))
	for i, t := range timings {
		end := endTime
		if i < len(timings)-1 {
			end = timings[i+1].Time
		}
		if end < t.Time {
			end = t.Time
		}
		segments[i] = Segment{Start: t.Time, End: end, Bpm: t.Bpm}
	}
	return segments
}

// Commands returns the top-level commands in source order. Callers must
// treat the slice as read-only.
func (c *Chart) Commands() []model.Command {
	return c.commands
}

// Header returns the value of a header key.
func (c *Chart) Header(key string) (string, bool) {
	v, ok := c.header[key]
	return v, ok
}

// HeaderKeys returns the header keys in file order.
func (c *Chart) HeaderKeys() []string {
	return c.headerOrder
}

// AudioOffset is the audio offset in ms declared by the header.
func (c *Chart) AudioOffset() int {
	return c.audioOffset
}

// DensityFactor is the timing point density factor declared by the
// header, defaulting to 1.
func (c *Chart) DensityFactor() float64 {
	return c.densityFactor
}

// TicksPerBeat is the hold tick subdivision this chart was built with.
func (c *Chart) TicksPerBeat() int {
	return c.ticksPerBeat
}

// EndTime is the largest command end time in ms.
func (c *Chart) EndTime() int {
	return c.endTime
}

// Segments returns the sorted top-level tempo segments. Callers must
// treat the slice as read-only.
func (c *Chart) Segments() []Segment {
	return c.segments
}
