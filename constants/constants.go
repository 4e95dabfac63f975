package constants

import "os"

func GetChartDir() string {
	path := os.Getenv("CHART_PATH")
	if path != "" {
		return path
	}
	return "./charts"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// Lanes the ground track supports.
const MinLane = 1
const MaxLane = 4

// DefaultTicksPerBeat is the beat subdivision used to turn a hold's
// duration into combo ticks. Quarter-beat spacing matches the game's
// note density; override it per chart through chart.Config.
const DefaultTicksPerBeat = 4

// DefaultBaseBPM is assumed for charts that declare no timing command.
const DefaultBaseBPM = 100.0

const DefaultDensityFactor = 1.0
