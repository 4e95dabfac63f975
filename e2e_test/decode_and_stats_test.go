//go:build e2e
// +build e2e

package e2e_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/arcdex/cmd"
	"github.com/jsphweid/arcdex/model"
	"github.com/stretchr/testify/assert"
)

const basicChart = `timing(0,120.00,4.00);
tap(500,1);
tap(1000,2);
`

func postChart(t *testing.T, text string) model.CreateChartResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/charts", strings.NewReader(text))
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 200, resp.StatusCode)

	var created model.CreateChartResponse
	err := json.Unmarshal(respBody, &created)
	if err != nil {
		panic(err.Error())
	}
	return created
}

func TestBasicChartStatsE2E(t *testing.T) {
	created := postChart(t, basicChart)

	req := httptest.NewRequest(http.MethodGet, "/charts/"+created.Id+"/stats", nil)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var stats model.StatsResponse
	err := json.Unmarshal(respBody, &stats)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal(2, stats.TotalCombo)
	assert.Equal(2, stats.Combo["tap"])
	assert.Equal(0, stats.Combo["hold"])
	assert.Equal([]model.BpmShareBody{{Bpm: 120, Fraction: 1.0}}, stats.BpmProportion)
	assert.Equal([]float64{500}, stats.Intervals)
	assert.Equal(1000, stats.EndTime)
}

func TestUnknownCommandWarningE2E(t *testing.T) {
	created := postChart(t, basicChart+"sparkle(1500,3);\n")
	assert.Equal(t, []string{"sparkle(1500,3)"}, created.Warnings)
}

func TestUnparseableChartE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/charts", strings.NewReader("tap(500,1)"))
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 400, resp.StatusCode)

	var errResp model.ErrorResponse
	err := json.Unmarshal(respBody, &errResp)
	if err != nil {
		panic(err.Error())
	}
	assert.Contains(t, errResp.Error, "expected ';'")
}

func TestIssuesE2E(t *testing.T) {
	created := postChart(t, "tap(500,9);\n")

	req := httptest.NewRequest(http.MethodGet, "/charts/"+created.Id+"/issues", nil)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)
	assert.Equal(t, 200, resp.StatusCode)

	var issues model.IssuesResponse
	err := json.Unmarshal(respBody, &issues)
	if err != nil {
		panic(err.Error())
	}
	assert.False(t, issues.OK)
	assert.Len(t, issues.Issues, 1)
	assert.Equal(t, "lane", issues.Issues[0].Field)
}
