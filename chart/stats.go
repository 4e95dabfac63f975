package chart

import (
	"sort"

	"github.com/jsphweid/arcdex/model"
)

// BpmShare is the fraction of the chart duration spent at one bpm.
type BpmShare struct {
	Bpm      float64
	Fraction float64
}

// TotalCombo sums the combo contribution of every command, recursing
// into timing groups. Taps, flicks and arctaps contribute 1, arcs 1
// plus their arctaps, holds a tempo-derived tick count.
func (c *Chart) TotalCombo() int {
	return c.comboCount(c.commands, c.segments, nil)
}

// ComboOf restricts the same accounting to one command kind, including
// nested occurrences.
func (c *Chart) ComboOf(kind model.Kind) int {
	return c.comboCount(c.commands, c.segments, &kind)
}

func (c *Chart) comboCount(cmds []model.Command, segments []Segment, filter *model.Kind) int {
	total := 0
	for _, cmd := range cmds {
		switch v := cmd.(type) {
		case model.Tap:
			if kindMatches(filter, model.KindTap) {
				total++
			}
		case model.Flick:
			if kindMatches(filter, model.KindFlick) {
				total++
			}
		case model.Arc:
			if kindMatches(filter, model.KindArc) {
				total++
			}
			if kindMatches(filter, model.KindArcTap) {
				total += len(v.ArcTaps)
			}
		case model.Hold:
			if kindMatches(filter, model.KindHold) {
				total += len(c.holdTicks(v, segments))
			}
		case model.TimingGroup:
			if v.NoInput() {
				continue
			}
			total += c.comboCount(v.Children, c.segmentsFor(v.Children, segments), filter)
		}
	}
	return total
}

func kindMatches(filter *model.Kind, kind model.Kind) bool {
	return filter == nil || *filter == kind
}

// holdTicks decomposes a hold into tick timestamps. The [start, end)
// span is intersected with the tempo segments; within a segment ticks
// step by the beat subdivision of its bpm, scaled by the chart density
// factor. A tick landing exactly on a segment boundary is produced by
// the closing segment, so boundaries never double-count.
func (c *Chart) holdTicks(h model.Hold, segments []Segment) []float64 {
	if h.End <= h.Start {
		return nil
	}

	var ticks []float64
	for _, seg := range segments {
		lo, hi := h.Start, h.End
		if seg.Start > lo {
			lo = seg.Start
		}
		if seg.End < hi {
			hi = seg.End
		}
		if hi <= lo {
			continue
		}
		bpm := seg.Bpm
		if bpm < 0 {
			bpm = -bpm
		}
		if bpm == 0 {
			continue
		}
		interval := 60000.0 / bpm / float64(c.ticksPerBeat) / c.densityFactor
		count := int(float64(hi-lo)/interval + 1e-9)
		for k := 1; k <= count; k++ {
			ticks = append(ticks, float64(lo)+interval*float64(k))
		}
	}
	return ticks
}

// segmentsFor returns the tempo table governing a timing group's
// children: the group's own timings when it has any, otherwise the
// enclosing table.
func (c *Chart) segmentsFor(cmds []model.Command, inherited []Segment) []Segment {
	hasTiming := false
	end := 0
	for _, cmd := range cmds {
		if _, ok := cmd.(model.Timing); ok {
			hasTiming = true
		}
		if _, e := cmd.Interval(); e > end {
			end = e
		}
	}
	if !hasTiming {
		return inherited
	}
	return buildSegments(cmds, end, c.baseBPM)
}

// BpmProportion reports how the chart duration splits across distinct
// bpm values, ordered by first occurrence. Fractions sum to 1 within
// floating tolerance; a chart with no events yields no shares.
func (c *Chart) BpmProportion() []BpmShare {
	total := 0
	for _, seg := range c.segments {
		total += seg.End - seg.Start
	}
	if total <= 0 {
		return nil
	}

	var shares []BpmShare
	index := make(map[float64]int)
	for _, seg := range c.segments {
		span := seg.End - seg.Start
		if span == 0 {
			continue
		}
		i, ok := index[seg.Bpm]
		if !ok {
			i = len(shares)
			index[seg.Bpm] = i
			shares = append(shares, BpmShare{Bpm: seg.Bpm})
		}
		shares[i].Fraction += float64(span) / float64(total)
	}
	return shares
}

// EventTimes flattens every combo-contributing time point into one
// sorted timeline: tap, flick and arc start times, absolute arctap
// times, and hold tick timestamps.
func (c *Chart) EventTimes() []float64 {
	times := c.collectEventTimes(c.commands, c.segments, nil)
	sort.Float64s(times)
	return times
}

func (c *Chart) collectEventTimes(cmds []model.Command, segments []Segment, times []float64) []float64 {
	for _, cmd := range cmds {
		switch v := cmd.(type) {
		case model.Tap:
			times = append(times, float64(v.Time))
		case model.Flick:
			times = append(times, float64(v.Time))
		case model.Arc:
			times = append(times, float64(v.Start))
			for _, at := range v.ArcTaps {
				times = append(times, float64(v.Start+at.Offset))
			}
		case model.Hold:
			times = append(times, c.holdTicks(v, segments)...)
		case model.TimingGroup:
			if v.NoInput() {
				continue
			}
			times = c.collectEventTimes(v.Children, c.segmentsFor(v.Children, segments), times)
		}
	}
	return times
}

// Intervals emits the consecutive deltas of the flattened timeline:
// exactly (event count - 1) values, all non-negative.
func (c *Chart) Intervals() []float64 {
	times := c.EventTimes()
	if len(times) < 2 {
		return nil
	}
	deltas := make([]float64, len(times)-1)
	for i := 1; i < len(times); i++ {
		deltas[i-1] = times[i] - times[i-1]
	}
	return deltas
}

// ComboBefore counts the combo events at or before t ms.
func (c *Chart) ComboBefore(t int) int {
	count := 0
	for _, ts := range c.EventTimes() {
		if ts <= float64(t) {
			count++
		}
	}
	return count
}
