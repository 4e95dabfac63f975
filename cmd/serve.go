package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/arcdex/aff"
	"github.com/jsphweid/arcdex/chart"
	"github.com/jsphweid/arcdex/check"
	"github.com/jsphweid/arcdex/constants"
	"github.com/jsphweid/arcdex/model"
	"github.com/jsphweid/arcdex/util"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	chartsMu sync.RWMutex
	charts   = make(map[string]*chart.Chart)

	overviewMu sync.RWMutex
	overview   model.OverviewResponse

	// uploads arrive in bursts; recompute the overview once per burst
	debounced = debounce.New(500 * time.Millisecond)
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `Serves decoded charts and their statistics over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadLibrary decodes every chart under the chart dir into memory.
func LoadLibrary() {
	for _, path := range util.GatherAllAffPaths(constants.GetChartDir(), 0) {
		res, err := aff.Parse(util.ReadFileOrPanic(path))
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		c, _, err := chart.Decode(res)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", path, err)
			continue
		}
		id := uuid.New().String()
		chartsMu.Lock()
		charts[id] = c
		chartsMu.Unlock()
		fmt.Printf("Loaded %v as %v\n", filepath.Base(path), id)
	}
	rebuildOverview()
}

func rebuildOverview() {
	var next model.OverviewResponse
	chartsMu.RLock()
	for _, c := range charts {
		next.NumCharts += 1
		next.TotalCombo += c.TotalCombo()
	}
	chartsMu.RUnlock()

	overviewMu.Lock()
	overview = next
	overviewMu.Unlock()
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func getChart(r *http.Request) (*chart.Chart, bool) {
	id := mux.Vars(r)["id"]
	chartsMu.RLock()
	defer chartsMu.RUnlock()
	c, ok := charts[id]
	return c, ok
}

func HandleCreateChart(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return
	}

	res, err := aff.Parse(string(body))
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}
	c, warnings, err := chart.Decode(res)
	if err != nil {
		writeError(w, 400, err.Error())
		return
	}

	id := uuid.New().String()
	chartsMu.Lock()
	charts[id] = c
	chartsMu.Unlock()
	debounced(rebuildOverview)

	resp := model.CreateChartResponse{Id: id, Warnings: make([]string, 0)}
	for _, warning := range warnings {
		resp.Warnings = append(resp.Warnings, warning.Raw)
	}
	json.NewEncoder(w).Encode(resp)
}

func HandleStats(w http.ResponseWriter, r *http.Request) {
	c, ok := getChart(r)
	if !ok {
		writeError(w, 404, "no such chart")
		return
	}

	resp := model.StatsResponse{
		TotalCombo: c.TotalCombo(),
		Combo: map[string]int{
			model.KindTap.String():    c.ComboOf(model.KindTap),
			model.KindHold.String():   c.ComboOf(model.KindHold),
			model.KindArc.String():    c.ComboOf(model.KindArc),
			model.KindArcTap.String(): c.ComboOf(model.KindArcTap),
			model.KindFlick.String():  c.ComboOf(model.KindFlick),
		},
		BpmProportion: make([]model.BpmShareBody, 0),
		Intervals:     c.Intervals(),
		EndTime:       c.EndTime(),
	}
	for _, share := range c.BpmProportion() {
		resp.BpmProportion = append(resp.BpmProportion, model.BpmShareBody{Bpm: share.Bpm, Fraction: share.Fraction})
	}
	json.NewEncoder(w).Encode(resp)
}

func HandleIssues(w http.ResponseWriter, r *http.Request) {
	c, ok := getChart(r)
	if !ok {
		writeError(w, 404, "no such chart")
		return
	}

	resp := model.IssuesResponse{OK: true, Issues: make([]model.IssueBody, 0)}
	for _, report := range check.Chart(c) {
		for _, issue := range report.Report.Issues {
			resp.OK = false
			resp.Issues = append(resp.Issues, model.IssueBody{
				Position: report.Position,
				Field:    issue.Field,
				Message:  issue.Message,
			})
		}
	}
	json.NewEncoder(w).Encode(resp)
}

func HandleOverview(w http.ResponseWriter, r *http.Request) {
	overviewMu.RLock()
	defer overviewMu.RUnlock()
	json.NewEncoder(w).Encode(overview)
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/charts", HandleCreateChart).Methods("POST")
	router.HandleFunc("/charts/{id}/stats", HandleStats).Methods("GET")
	router.HandleFunc("/charts/{id}/issues", HandleIssues).Methods("GET")
	router.HandleFunc("/overview", HandleOverview).Methods("GET")
	return router
}

func serve() {
	LoadLibrary()
	handler := cors.Default().Handler(NewRouter())
	log.Fatal(http.ListenAndServe(":"+constants.GetPort(), handler))
}
