package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/citylens/srscan/internal/config"
	"github.com/citylens/srscan/internal/ingest"
	"github.com/citylens/srscan/internal/logger"
	"github.com/citylens/srscan/internal/stats"
	"github.com/citylens/srscan/internal/store"
	"github.com/citylens/srscan/pkg/models"
)

// Version is set at build time
var Version = "dev"

// benchIterations is how many times the benchmark repeats the borough
// query. Borough returns a large result set, which gives a stable average.
const benchIterations = 10

func main() {
	dataPath := flag.String("data", "", "path to the 311 CSV export (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", Version).Str("path", cfg.Data.Path).Msg("Starting srscan")

	st := store.New(cfg.Data.ExpectedRows)

	// Heap snapshots around the load show what the dataset costs in RAM.
	heapBefore := heapMB()
	st.Load(ingest.NewCSVSource(), cfg.Data.Path)
	heapAfter := heapMB()
	log.Info().
		Float64("heap_before_mb", heapBefore).
		Float64("heap_after_mb", heapAfter).
		Float64("delta_mb", heapAfter-heapBefore).
		Msg("Heap usage across load")

	printStatistics(st, cfg.Stats.TopComplaints)
	runSampleQueries(st, cfg.Data.SampleRecords)
	runBenchmark(st)
}

// heapMB returns the live heap in megabytes.
func heapMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / (1024 * 1024)
}

// printStatistics renders the aggregate report to stdout.
func printStatistics(st *store.Store, topN int) {
	if st.Len() == 0 {
		fmt.Println("No data loaded.")
		return
	}

	s := stats.Summarize(st.Records(), topN)

	fmt.Println("\n=== DATA STATISTICS ===")
	fmt.Printf("Total records : %d\n", s.TotalRecords)
	fmt.Printf("Skipped rows  : %d\n", st.SkippedRows())
	fmt.Printf("Date range    : %s to %s\n", s.MinDate, s.MaxDate)

	fmt.Println("\nBorough distribution:")
	for _, b := range stats.SortedKeys(s.Boroughs) {
		fmt.Printf("  %s: %d records\n", b, s.Boroughs[b])
	}

	fmt.Println("\nStatus distribution:")
	for _, b := range stats.SortedKeys(s.Statuses) {
		fmt.Printf("  %s: %d records\n", b, s.Statuses[b])
	}

	fmt.Printf("\nTop %d complaint types:\n", topN)
	for _, c := range s.TopComplaints {
		fmt.Printf("  %s: %d records\n", c.Type, c.Count)
	}
}

// runSampleQueries issues one query of each kind against the loaded store
// and prints a handful of matching rows, mirroring a typical exploratory
// session over this dataset.
func runSampleQueries(st *store.Store, sampleRows int) {
	fmt.Println("\n=== SAMPLE QUERIES ===")

	fmt.Println("\n1. Records created in 2015:")
	res := st.FilterByDateRange(
		models.ParseDateTime("01/01/2015 12:00:00 AM"),
		models.ParseDateTime("12/31/2015 11:59:59 PM"))
	for _, r := range sample(res, sampleRows) {
		fmt.Printf("  [%s]  %s  -  %s\n", r.CreatedDate, r.Borough, r.ComplaintType)
	}

	fmt.Println("\n2. Records for Brooklyn:")
	res = st.FilterByBorough("BROOKLYN")
	for _, r := range sample(res, sampleRows) {
		fmt.Printf("  %s  -  %s  [%s]\n", r.IncidentAddress, r.ComplaintType, r.Status)
	}

	fmt.Println("\n3. Records for agency NYPD:")
	res = st.FilterByAgency("NYPD")
	for _, r := range sample(res, sampleRows) {
		fmt.Printf("  %s  -  %s  [%s]\n", r.ComplaintType, r.Borough, r.CreatedDate)
	}

	fmt.Println("\n4. Records with complaint type containing 'Noise':")
	res = st.FilterByComplaintType("Noise")
	for _, r := range sample(res, sampleRows) {
		fmt.Printf("  %s  -  %s  [%s]\n", r.ComplaintType, r.Descriptor, r.Borough)
	}

	fmt.Println("\n5. Open records:")
	res = st.FilterByStatus("Open")
	for _, r := range sample(res, sampleRows) {
		fmt.Printf("  %s  -  %s  created: %s\n", r.ComplaintType, r.Borough, r.CreatedDate)
	}

	fmt.Println("\n6. Records for zip 10001 (Midtown West):")
	res = st.FilterByZip(10001)
	for _, r := range sample(res, sampleRows) {
		fmt.Printf("  %s  -  %s\n", r.IncidentAddress, r.ComplaintType)
	}

	fmt.Println("\n7. Records in downtown Manhattan (lat/lon box):")
	res = st.FilterByLatLonBox(40.70, 40.75, -74.02, -73.98)
	for _, r := range sample(res, sampleRows) {
		fmt.Printf("  (%f, %f)  -  %s\n", r.Latitude, r.Longitude, r.ComplaintType)
	}

	fmt.Println("\n8. Records for council district 1:")
	res = st.FilterByCouncilDistrict(1)
	for _, r := range sample(res, sampleRows) {
		fmt.Printf("  %s  -  %s  [%s]\n", r.IncidentAddress, r.ComplaintType, r.Borough)
	}
}

// sample returns up to n matches of a result for display.
func sample(res *store.Result, n int) []*models.ServiceRequest {
	if len(res.Matches) < n {
		n = len(res.Matches)
	}
	return res.Matches[:n]
}

// runBenchmark repeats the borough query and reports the average latency.
func runBenchmark(st *store.Store) {
	fmt.Println("\n=== PERFORMANCE TESTING ===")

	started := time.Now()
	for i := 0; i < benchIterations; i++ {
		st.FilterByBorough("BROOKLYN")
	}
	elapsed := time.Since(started)

	fmt.Printf("%d borough queries took %d microseconds (avg: %d us per query)\n",
		benchIterations, elapsed.Microseconds(),
		elapsed.Microseconds()/benchIterations)
}
