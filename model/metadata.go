package model

type ChartNumToAffPath = map[uint32]string

type SongMetadata struct {
	Title   string
	Artist  string
	Bpm     string
	BpmBase float64
	Year    uint
}
