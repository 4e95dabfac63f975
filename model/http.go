package model

type CreateChartResponse struct {
	Id       string   `json:"id"`
	Warnings []string `json:"warnings"`
}

type BpmShareBody struct {
	Bpm      float64 `json:"bpm"`
	Fraction float64 `json:"fraction"`
}

type StatsResponse struct {
	TotalCombo    int            `json:"total_combo"`
	Combo         map[string]int `json:"combo"`
	BpmProportion []BpmShareBody `json:"bpm_proportion"`
	Intervals     []float64      `json:"intervals"`
	EndTime       int            `json:"end_time"`
}

type IssueBody struct {
	Position string `json:"position"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

type IssuesResponse struct {
	OK     bool        `json:"ok"`
	Issues []IssueBody `json:"issues"`
}

type OverviewResponse struct {
	NumCharts  int `json:"num_charts"`
	TotalCombo int `json:"total_combo"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
