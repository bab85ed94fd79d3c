package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/ridereport/tripstats"
)

var (
	out  = flag.String("out", "tripstats_profile.pb.gz", "file path to output the profile to")
	rows = flag.Int("rows", 1_000_000, "number of trip records to generate")
)

func main() {
	if err := run(); err != nil {
		fmt.Println("failed:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	log.SetOutput(io.Discard)

	fmt.Printf("generating %d trip records\n", *rows)
	input := generate(*rows)

	fmt.Println("starting profile")
	var profile bytes.Buffer
	pprof.StartCPUProfile(&profile)
	start := time.Now()
	a := tripstats.NewAnalyzer()
	sum := a.IngestReader(strings.NewReader(input), tripstats.Parser{})
	zones := a.TopZones(10)
	elapsed := time.Since(start)
	pprof.StopCPUProfile()

	fmt.Printf("ingested %d rows (%d skipped) in %s\n", sum.RowsSeen, sum.RowsSkipped, elapsed)
	for _, z := range zones {
		fmt.Printf("- %s: %d trips\n", z.Zone, z.Count)
	}

	fmt.Println("writing profile to", *out)
	return os.WriteFile(*out, profile.Bytes(), 0644)
}

// generate builds a synthetic trip record file. The seed is fixed so runs are
// comparable. Roughly one row in twenty is dirty, keeping the skip path in
// the profile.
func generate(n int) string {
	rng := rand.New(rand.NewSource(42))
	var b strings.Builder
	b.WriteString("TripID,PickupZoneID,DropoffZoneID,PickupDateTime,TripDistance,FareAmount\n")
	for i := 0; i < n; i++ {
		zone := fmt.Sprintf("Z%03d", rng.Intn(260))
		switch rng.Intn(20) {
		case 0:
			fmt.Fprintf(&b, "T%d,%s\n", i, zone)
		case 1:
			fmt.Fprintf(&b, "T%d,%s,Z900,2024-03-01 99:%02d:00,1.0,10.00\n", i, zone, rng.Intn(60))
		default:
			fmt.Fprintf(&b, "T%d,%s,Z%03d,2024-03-01 %02d:%02d:00,%.1f,%.2f\n",
				i, zone, rng.Intn(260), rng.Intn(24), rng.Intn(60),
				rng.Float64()*20, rng.Float64()*80)
		}
	}
	return b.String()
}
