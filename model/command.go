package model

// Command is a single decoded aff statement. The set of implementations
// is closed; every variant lives in this file.
type Command interface {
	// Interval returns the start and end time of the command in ms.
	Interval() (int, int)
	command()
}

// Kind identifies a command variant for statistics queries.
type Kind int

const (
	KindTap Kind = iota
	KindHold
	KindArc
	KindArcTap
	KindFlick
	KindTiming
	KindCamera
	KindSceneControl
	KindTimingGroup
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindHold:
		return "hold"
	case KindArc:
		return "arc"
	case KindArcTap:
		return "arctap"
	case KindFlick:
		return "flick"
	case KindTiming:
		return "timing"
	case KindCamera:
		return "camera"
	case KindSceneControl:
		return "scenecontrol"
	case KindTimingGroup:
		return "timinggroup"
	}
	return "unknown"
}

// Tap is a ground tap note.
type Tap struct {
	Time int
	Lane int
}

func (t Tap) Interval() (int, int) { return t.Time, t.Time }
func (Tap) command()               {}

// Hold is a ground hold note.
type Hold struct {
	Start int
	End   int
	Lane  int
}

func (h Hold) Interval() (int, int) { return h.Start, h.End }
func (Hold) command()               {}

// ArcTap is a tap embedded in an arc. Offset is relative to the arc start.
type ArcTap struct {
	Offset int
}

// Arc is a sky note, optionally carrying arctaps.
type Arc struct {
	Start    int
	End      int
	X1, X2   float64
	Easing   string
	Y1, Y2   float64
	Color    Color
	HitSound string
	Skyline  string
	ArcTaps  []ArcTap
}

func (a Arc) Interval() (int, int) { return a.Start, a.End }
func (Arc) command()               {}

// IsSkyline reports whether the arc renders on the sky layer. Anything
// carrying arctaps is a skyline regardless of the declared value.
func (a Arc) IsSkyline() bool {
	return a.Skyline == "true" || a.Skyline == "designant" || len(a.ArcTaps) > 0
}

// Flick is a flick note. Unused by modern charts but still in the format.
type Flick struct {
	Time   int
	X, Y   float64
	VX, VY float64
}

func (f Flick) Interval() (int, int) { return f.Time, f.Time }
func (Flick) command()               {}

// Timing declares the tempo from Time onward.
type Timing struct {
	Time  int
	Bpm   float64
	Beats float64
}

func (t Timing) Interval() (int, int) { return t.Time, t.Time }
func (Timing) command()               {}

// Camera moves the camera over Duration ms.
type Camera struct {
	Time        int
	Transverse  float64
	BottomZoom  float64
	LineZoom    float64
	SteadyAngle float64
	TopZoom     float64
	Angle       float64
	Easing      string
	Duration    int
}

func (c Camera) Interval() (int, int) { return c.Time, c.Time + c.Duration }
func (Camera) command()               {}

// SceneControl triggers an engine effect.
type SceneControl struct {
	Time   int
	Kind   string
	Params []float64
}

func (s SceneControl) Interval() (int, int) { return s.Time, s.Time }
func (SceneControl) command()               {}

// TimingGroup scopes commands under their own timing context.
type TimingGroup struct {
	Types    []string
	Children []Command
}

func (g TimingGroup) Interval() (int, int) {
	// noinput groups never stretch the chart duration (see Aegleseeker FTR).
	if g.NoInput() || len(g.Children) == 0 {
		return 0, 0
	}
	start, end := g.Children[0].Interval()
	for _, child := range g.Children[1:] {
		s, e := child.Interval()
		if s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}
	return start, end
}
func (TimingGroup) command() {}

func (g TimingGroup) NoInput() bool {
	return Contains(g.Types, NoInput)
}

// Unknown preserves an unrecognized statement verbatim.
type Unknown struct {
	Raw string
}

func (Unknown) Interval() (int, int) { return 0, 0 }
func (Unknown) command()             {}

// DecodeWarning records a non-fatal oddity found while decoding.
type DecodeWarning struct {
	Name     string
	Position int
	Raw      string
}
