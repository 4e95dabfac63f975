package aff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleChart = `AudioOffset:41
TimingPointDensityFactor:0.80
-
timing(0,126.00,4.00);
(1285,2);
hold(2500,3100,1);
arc(28666,28999,0.25,0.25,s,0.00,0.00,0,none,true)[arctap(28666),arctap(28833)];
camera(1285,24.76,0.00,0.00,0.00,0.00,90.00,l,1);
scenecontrol(0,hidegroup,0.00,1);
timinggroup(noinput){
  timing(0,126.00,4.00);
  (1285,2);
};
`

func TestParseHeader(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse(sampleChart)
	assert.Nil(err)
	assert.Equal("41", res.Header["AudioOffset"])
	assert.Equal("0.80", res.Header["TimingPointDensityFactor"])
	assert.Equal([]string{"AudioOffset", "TimingPointDensityFactor"}, res.HeaderOrder)
}

func TestParseWithoutHeader(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse("(1285,2);\n")
	assert.Nil(err)
	assert.Empty(res.Header)
	assert.Len(res.Nodes(), 1)
}

func TestParseBareTap(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse("(125117,3);")
	assert.Nil(err)

	nodes := res.Nodes()
	assert.Len(nodes, 1)
	assert.Equal("", nodes[0].Name)
	assert.Len(nodes[0].Args, 2)

	tm, ok := nodes[0].Args[0].AsInt()
	assert.True(ok)
	assert.Equal(125117, tm)
	lane, ok := nodes[0].Args[1].AsInt()
	assert.True(ok)
	assert.Equal(3, lane)
}

func TestParseArcWithArctaps(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse("arc(28666,28999,0.25,0.25,s,0.00,0.00,0,none,true)[arctap(28666),arctap(28833)];")
	assert.Nil(err)

	nodes := res.Nodes()
	assert.Len(nodes, 1)

	arc := nodes[0]
	assert.Equal("arc", arc.Name)
	assert.Len(arc.Args, 10)

	easing, ok := arc.Args[4].AsIdent()
	assert.True(ok)
	assert.Equal("s", easing)

	skyline, ok := arc.Args[9].AsBool()
	assert.True(ok)
	assert.True(skyline)

	assert.Len(arc.Children, 2)
	assert.Equal("arctap", arc.Children[0].Name)
	first, ok := arc.Children[0].Args[0].AsInt()
	assert.True(ok)
	assert.Equal(28666, first)
}

func TestParseTimingGroupBlock(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse("timinggroup(noinput_anglex600){\ntiming(0,126.00,4.00);\n(1285,2);\n};")
	assert.Nil(err)

	nodes := res.Nodes()
	assert.Len(nodes, 1)

	group := nodes[0]
	assert.Equal("timinggroup", group.Name)
	attr, ok := group.Args[0].AsIdent()
	assert.True(ok)
	assert.Equal("noinput_anglex600", attr)
	assert.Len(group.Block, 2)
	assert.Equal("timing", group.Block[0].Name)
	assert.Equal("", group.Block[1].Name)
}

func TestParseNegativeNumbers(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse("timing(-200,-126.00,4.00);")
	assert.Nil(err)

	args := res.Nodes()[0].Args
	tm, _ := args[0].AsInt()
	assert.Equal(-200, tm)
	bpm, _ := args[1].AsFloat()
	assert.Equal(-126.0, bpm)
}

func TestByNameGroupsBareTaps(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse(sampleChart)
	assert.Nil(err)

	byName := res.ByName()
	assert.Len(byName["tap"], 1)
	assert.Len(byName["timing"], 1)
	assert.Len(byName["arc"], 1)
	assert.Len(byName["timinggroup"], 1)

	total := 0
	for _, group := range byName {
		total += len(group)
	}
	assert.Equal(len(res.Nodes()), total)
}

func TestNodeCountMatchesStatements(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse(sampleChart)
	assert.Nil(err)
	assert.Len(res.Nodes(), 7)
}

func TestRawRebuildsInvocation(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse("sparkle(1500,3);")
	assert.Nil(err)
	assert.Equal("sparkle(1500,3)", res.Nodes()[0].Raw())
}

func TestSyntaxErrorMissingSemicolon(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("tap(500,1)")
	assert.NotNil(err)

	synErr, ok := err.(*SyntaxError)
	assert.True(ok)
	assert.Equal("';'", synErr.Expected)
	assert.Contains(err.Error(), "expected ';'")
}

func TestSyntaxErrorPositionPastHeader(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("AudioOffset:41\n-\ntap(500,1);\nhold(3,4;\n")
	assert.NotNil(err)

	synErr, ok := err.(*SyntaxError)
	assert.True(ok)
	assert.Equal(4, synErr.Line)
	assert.Equal(9, synErr.Column)
}

func TestSyntaxErrorUnterminatedHeader(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("AudioOffset:41\nTimingPointDensityFactor:0.80\n")
	assert.NotNil(err)
	assert.Contains(err.Error(), "'-' header terminator")
}

func TestStraySemicolonsTolerated(t *testing.T) {
	assert := assert.New(t)

	res, err := Parse(";;tap(500,1);;\n;(1000,2);")
	assert.Nil(err)
	assert.Len(res.Nodes(), 2)
}

func TestParseRejectsUnquotedGarbage(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse(strings.Repeat("#", 3))
	assert.NotNil(err)
}
