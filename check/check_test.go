package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsphweid/arcdex/aff"
	"github.com/jsphweid/arcdex/chart"
	"github.com/jsphweid/arcdex/model"
)

func mustChart(t *testing.T, text string) *chart.Chart {
	t.Helper()
	res, err := aff.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	c, _, err := chart.Decode(res)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return c
}

func goodArc() model.Arc {
	return model.Arc{
		Start: 0, End: 1000,
		X1: 0.25, X2: 0.75,
		Easing:   "s",
		Color:    model.ColorBlue,
		HitSound: "none",
		Skyline:  "false",
	}
}

func TestCommandTable(t *testing.T) {
	backward := goodArc()
	backward.Start, backward.End = 1000, 500
	backwardSkyline := backward
	backwardSkyline.Skyline = "true"

	badEasing := goodArc()
	badEasing.Easing = "bounce"
	badColor := goodArc()
	badColor.Color = model.Color(7)
	badHitSound := goodArc()
	badHitSound.HitSound = "boom"
	customHitSound := goodArc()
	customHitSound.HitSound = "glass_wav"
	designant := goodArc()
	designant.Skyline = "designant"
	strayArcTap := goodArc()
	strayArcTap.Skyline = "true"
	strayArcTap.ArcTaps = []model.ArcTap{{Offset: 1500}}

	cases := []struct {
		name  string
		cmd   model.Command
		ok    bool
		field string
	}{
		{"tap ok", model.Tap{Time: 500, Lane: 4}, true, ""},
		{"tap lane low", model.Tap{Time: 500, Lane: 0}, false, "lane"},
		{"tap lane high", model.Tap{Time: 500, Lane: 9}, false, "lane"},
		{"tap negative time", model.Tap{Time: -1, Lane: 1}, false, "time"},
		{"hold ok", model.Hold{Start: 0, End: 100, Lane: 2}, true, ""},
		{"hold inverted", model.Hold{Start: 100, End: 100, Lane: 2}, false, "end"},
		{"arc ok", goodArc(), true, ""},
		{"arc backward", backward, false, "end"},
		{"arc backward skyline", backwardSkyline, true, ""},
		{"arc bad easing", badEasing, false, "easing"},
		{"arc bad color", badColor, false, "color"},
		{"arc bad hit sound", badHitSound, false, "hitSound"},
		{"arc custom wav hit sound", customHitSound, true, ""},
		{"arc designant skyline", designant, true, ""},
		{"arc arctap outside window", strayArcTap, false, "arctap[0]"},
		{"flick ok", model.Flick{Time: 0, VX: 1}, true, ""},
		{"timing ok", model.Timing{Time: 0, Bpm: 126, Beats: 4}, true, ""},
		{"timing zero beats", model.Timing{Time: 0, Bpm: 126}, false, "beats"},
		{"timing negative bpm at zero", model.Timing{Time: 0, Bpm: -126, Beats: 4}, false, "bpm"},
		{"timing negative bpm later", model.Timing{Time: 100, Bpm: -126, Beats: 4}, true, ""},
		{"camera ok", model.Camera{Time: 0, Easing: "qi", Duration: 100}, true, ""},
		{"camera bad easing", model.Camera{Time: 0, Easing: "zoom", Duration: 100}, false, "easing"},
		{"camera negative duration", model.Camera{Time: 0, Easing: "l", Duration: -5}, false, "duration"},
		{"scenecontrol bare kind", model.SceneControl{Time: 0, Kind: "trackhide"}, true, ""},
		{"scenecontrol with params", model.SceneControl{Time: 0, Kind: "hidegroup", Params: []float64{0, 1}}, true, ""},
		{"scenecontrol missing params", model.SceneControl{Time: 0, Kind: "hidegroup"}, false, "params"},
		{"scenecontrol unknown kind", model.SceneControl{Time: 0, Kind: "confetti"}, false, "kind"},
		{"timinggroup ok", model.TimingGroup{Types: []string{"noinput"}, Children: []model.Command{model.Tap{Time: 0, Lane: 1}}}, true, ""},
		{"timinggroup empty", model.TimingGroup{}, false, "children"},
		{"timinggroup bad attribute", model.TimingGroup{Types: []string{"sideways"}, Children: []model.Command{model.Tap{Time: 0, Lane: 1}}}, false, "types"},
		{"unknown command", model.Unknown{Raw: "sparkle(1,2)"}, false, "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := Command(tc.cmd)
			assert.Equal(t, tc.ok, report.OK)
			if tc.ok {
				assert.Empty(t, report.Issues)
				return
			}
			if assert.NotEmpty(t, report.Issues) {
				assert.Equal(t, tc.field, report.Issues[0].Field)
			}
		})
	}
}

func TestChartWalksNestedGroups(t *testing.T) {
	assert := assert.New(t)

	text := `timing(0,126.00,4.00);
tap(500,9);
timinggroup(){
  tap(600,1);
  hold(700,700,2);
};
`
	reports := Chart(mustChart(t, text))

	byPos := make(map[string]CommandReport)
	for _, r := range reports {
		byPos[r.Position] = r
	}

	assert.True(byPos["0"].Report.OK)
	assert.False(byPos["1"].Report.OK)
	assert.True(byPos["2.0"].Report.OK)
	assert.False(byPos["2.1"].Report.OK)
	assert.Equal("end", byPos["2.1"].Report.Issues[0].Field)
}

func TestChartFlagsDuplicateTimings(t *testing.T) {
	assert := assert.New(t)

	text := `timing(0,126.00,4.00);
timing(0,63.00,4.00);
tap(500,1);
`
	reports := Chart(mustChart(t, text))

	var dup []CommandReport
	for _, r := range reports {
		for _, issue := range r.Report.Issues {
			if issue.Field == "time" {
				dup = append(dup, r)
			}
		}
	}
	assert.Len(dup, 1)
	assert.Equal("1", dup[0].Position)
	assert.Contains(dup[0].Report.Issues[0].Message, "duplicate timing")
}

func TestChartCleanReport(t *testing.T) {
	reports := Chart(mustChart(t, "timing(0,126.00,4.00);\ntap(500,1);\n"))
	for _, r := range reports {
		assert.True(t, r.Report.OK, "position %s", r.Position)
	}
}
