package chart

import (
	"fmt"
	"strings"

	"github.com/jsphweid/arcdex/aff"
	"github.com/jsphweid/arcdex/model"
)

// DecodeError aborts the whole decode: statistics need a structurally
// consistent chart, so a partial decode is never exposed.
type DecodeError struct {
	Command       string
	Position      int
	ExpectedArity int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %q at position %d: expected %d argument(s) of the declared types",
		e.Command, e.Position, e.ExpectedArity)
}

// Decode maps every top-level parse node into a typed command, in
// source order. Unrecognized command names become model.Unknown plus a
// warning; a wrong argument count or type fails the whole decode.
func Decode(res *aff.Result) (*Chart, []model.DecodeWarning, error) {
	return DecodeWith(res, DefaultConfig())
}

func DecodeWith(res *aff.Result, cfg Config) (*Chart, []model.DecodeWarning, error) {
	commands, warnings, err := decodeAll(res.Nodes())
	if err != nil {
		return nil, nil, err
	}
	return newChart(res.Header, res.HeaderOrder, commands, cfg), warnings, nil
}

func decodeAll(nodes []aff.ParseNode) ([]model.Command, []model.DecodeWarning, error) {
	var commands []model.Command
	var warnings []model.DecodeWarning

	for pos, node := range nodes {
		cmd, err := decodeNode(node, pos)
		if err != nil {
			return nil, nil, err
		}
		if unknown, ok := cmd.(model.Unknown); ok {
			warnings = append(warnings, model.DecodeWarning{
				Name:     node.Name,
				Position: pos,
				Raw:      unknown.Raw,
			})
		}
		if group, ok := cmd.(model.TimingGroup); ok {
			children, childWarnings, err := decodeAll(node.Block)
			if err != nil {
				return nil, nil, err
			}
			group.Children = children
			warnings = append(warnings, childWarnings...)
			cmd = group
		}
		commands = append(commands, cmd)
	}
	return commands, warnings, nil
}

func decodeNode(n aff.ParseNode, pos int) (model.Command, error) {
	switch n.Name {
	case "", "tap": // real charts write taps without the keyword
		return decodeTap(n, pos)
	case model.KeywordTiming:
		return decodeTiming(n, pos)
	case model.KeywordHold:
		return decodeHold(n, pos)
	case model.KeywordArc:
		return decodeArc(n, pos)
	case model.KeywordFlick:
		return decodeFlick(n, pos)
	case model.KeywordCamera:
		return decodeCamera(n, pos)
	case model.KeywordSceneControl:
		return decodeSceneControl(n, pos)
	case model.KeywordTimingGroup:
		return decodeTimingGroup(n, pos)
	}
	return model.Unknown{Raw: n.Raw()}, nil
}

func decodeTap(n aff.ParseNode, pos int) (model.Command, error) {
	fail := &DecodeError{Command: "tap", Position: pos, ExpectedArity: 2}
	if len(n.Args) != 2 {
		return nil, fail
	}
	t, ok1 := n.Args[0].AsInt()
	lane, ok2 := n.Args[1].AsInt()
	if !ok1 || !ok2 {
		return nil, fail
	}
	return model.Tap{Time: t, Lane: lane}, nil
}

func decodeTiming(n aff.ParseNode, pos int) (model.Command, error) {
	fail := &DecodeError{Command: model.KeywordTiming, Position: pos, ExpectedArity: 3}
	if len(n.Args) != 3 {
		return nil, fail
	}
	t, ok1 := n.Args[0].AsInt()
	bpm, ok2 := n.Args[1].AsFloat()
	beats, ok3 := n.Args[2].AsFloat()
	if !ok1 || !ok2 || !ok3 {
		return nil, fail
	}
	return model.Timing{Time: t, Bpm: bpm, Beats: beats}, nil
}

func decodeHold(n aff.ParseNode, pos int) (model.Command, error) {
	fail := &DecodeError{Command: model.KeywordHold, Position: pos, ExpectedArity: 3}
	if len(n.Args) != 3 {
		return nil, fail
	}
	t1, ok1 := n.Args[0].AsInt()
	t2, ok2 := n.Args[1].AsInt()
	lane, ok3 := n.Args[2].AsInt()
	if !ok1 || !ok2 || !ok3 {
		return nil, fail
	}
	return model.Hold{Start: t1, End: t2, Lane: lane}, nil
}

func decodeArc(n aff.ParseNode, pos int) (model.Command, error) {
	fail := &DecodeError{Command: model.KeywordArc, Position: pos, ExpectedArity: 10}
	if len(n.Args) != 10 {
		return nil, fail
	}
	t1, ok1 := n.Args[0].AsInt()
	t2, ok2 := n.Args[1].AsInt()
	x1, ok3 := n.Args[2].AsFloat()
	x2, ok4 := n.Args[3].AsFloat()
	easing, ok5 := n.Args[4].AsIdent()
	y1, ok6 := n.Args[5].AsFloat()
	y2, ok7 := n.Args[6].AsFloat()
	color, ok8 := n.Args[7].AsInt()
	hitSound, ok9 := n.Args[8].AsIdent()
	skyline, ok10 := n.Args[9].AsIdent()
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8 && ok9 && ok10) {
		return nil, fail
	}

	arc := model.Arc{
		Start: t1, End: t2,
		X1: x1, X2: x2,
		Easing: easing,
		Y1:     y1, Y2: y2,
		Color:    model.Color(color),
		HitSound: hitSound,
		Skyline:  skyline,
	}

	// the bracketed sub-list holds arctaps at absolute times; the model
	// keeps them relative to the arc start
	for _, child := range n.Children {
		if child.Name != model.KeywordArcTap || len(child.Args) != 1 {
			return nil, &DecodeError{Command: model.KeywordArcTap, Position: pos, ExpectedArity: 1}
		}
		tn, ok := child.Args[0].AsInt()
		if !ok {
			return nil, &DecodeError{Command: model.KeywordArcTap, Position: pos, ExpectedArity: 1}
		}
		arc.ArcTaps = append(arc.ArcTaps, model.ArcTap{Offset: tn - t1})
	}
	return arc, nil
}

func decodeFlick(n aff.ParseNode, pos int) (model.Command, error) {
	fail := &DecodeError{Command: model.KeywordFlick, Position: pos, ExpectedArity: 5}
	if len(n.Args) != 5 {
		return nil, fail
	}
	t, ok1 := n.Args[0].AsInt()
	x, ok2 := n.Args[1].AsFloat()
	y, ok3 := n.Args[2].AsFloat()
	vx, ok4 := n.Args[3].AsFloat()
	vy, ok5 := n.Args[4].AsFloat()
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return nil, fail
	}
	return model.Flick{Time: t, X: x, Y: y, VX: vx, VY: vy}, nil
}

func decodeCamera(n aff.ParseNode, pos int) (model.Command, error) {
	fail := &DecodeError{Command: model.KeywordCamera, Position: pos, ExpectedArity: 9}
	if len(n.Args) != 9 {
		return nil, fail
	}
	t, ok1 := n.Args[0].AsInt()
	easing, ok2 := n.Args[7].AsIdent()
	duration, ok3 := n.Args[8].AsInt()
	if !ok1 || !ok2 || !ok3 {
		return nil, fail
	}
	var zooms [6]float64
	for i := 0; i < 6; i++ {
		f, ok := n.Args[i+1].AsFloat()
		if !ok {
			return nil, fail
		}
		zooms[i] = f
	}
	return model.Camera{
		Time:        t,
		Transverse:  zooms[0],
		BottomZoom:  zooms[1],
		LineZoom:    zooms[2],
		SteadyAngle: zooms[3],
		TopZoom:     zooms[4],
		Angle:       zooms[5],
		Easing:      easing,
		Duration:    duration,
	}, nil
}

func decodeSceneControl(n aff.ParseNode, pos int) (model.Command, error) {
	fail := &DecodeError{Command: model.KeywordSceneControl, Position: pos, ExpectedArity: 2}
	if len(n.Args) < 2 {
		return nil, fail
	}
	t, ok1 := n.Args[0].AsInt()
	kind, ok2 := n.Args[1].AsIdent()
	if !ok1 || !ok2 {
		return nil, fail
	}
	var params []float64
	for _, arg := range n.Args[2:] {
		f, ok := arg.AsFloat()
		if !ok {
			return nil, fail
		}
		params = append(params, f)
	}
	return model.SceneControl{Time: t, Kind: kind, Params: params}, nil
}

// decodeTimingGroup decodes the group attributes only; the caller
// recurses into the block so nested warnings surface on the shared list.
func decodeTimingGroup(n aff.ParseNode, pos int) (model.Command, error) {
	var types []string
	for _, arg := range n.Args {
		ident, ok := arg.AsIdent()
		if !ok {
			return nil, &DecodeError{Command: model.KeywordTimingGroup, Position: pos, ExpectedArity: len(n.Args)}
		}
		// attributes arrive underscore-joined: timinggroup(noinput_anglex450)
		for _, t := range strings.Split(ident, "_") {
			if t != "" {
				types = append(types, t)
			}
		}
	}
	return model.TimingGroup{Types: types}, nil
}
