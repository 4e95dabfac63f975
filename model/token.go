package model

import "strings"

// Keywords of the aff command stream.
const (
	KeywordArc          = "arc"
	KeywordArcTap       = "arctap"
	KeywordCamera       = "camera"
	KeywordFlick        = "flick"
	KeywordHold         = "hold"
	KeywordSceneControl = "scenecontrol"
	KeywordTiming       = "timing"
	KeywordTimingGroup  = "timinggroup"
)

// Header keys with meaning beyond plain metadata.
const (
	HeaderAudioOffset   = "AudioOffset"
	HeaderDensityFactor = "TimingPointDensityFactor"
)

// Easing kinds an arc can declare.
var ArcEasings = []string{"b", "s", "si", "so", "sisi", "soso", "siso", "sosi"}

// Easing kinds a camera can declare.
var CameraEasings = []string{"qi", "qo", "l", "s", "reset"}

// Skyline judgment values.
var SkylineValues = []string{"true", "false", "designant"}

// Scene control kinds.
var SceneControlKinds = []string{
	"trackhide", "trackshow", "trackdisplay", "redline",
	"arcahvdistort", "arcahvdebris", "hidegroup",
	"enwidenlanes", "enwidencamera",
}

// Timing group attributes.
var TimingGroupTypes = []string{"noinput", "fadingholds", "anglex", "angley"}

// NoInput is the timing group attribute that removes the whole group
// from combo accounting.
const NoInput = "noinput"

// Arctap hit sounds, plus any "<name>_wav" sample reference.
var HitSounds = []string{"none", "full", "incremental", "glass_wav", "voice_wav", "kick_wav"}

func IsHitSound(s string) bool {
	for _, v := range HitSounds {
		if s == v {
			return true
		}
	}
	return strings.HasSuffix(s, "_wav") && len(s) > len("_wav")
}

func Contains(set []string, s string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Color is the palette index of an arc.
type Color int

const (
	ColorBlue  Color = 0
	ColorRed   Color = 1
	ColorGreen Color = 2
	ColorAlpha Color = 3
)

func (c Color) Valid() bool {
	return c >= ColorBlue && c <= ColorAlpha
}

func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorAlpha:
		return "alpha"
	}
	return "error"
}
