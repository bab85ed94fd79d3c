package tripstats

import (
	"bufio"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ridereport/tripstats/csv"
	"github.com/ridereport/tripstats/warnings"
)

// IngestSummary describes one ingestion pass.
type IngestSummary struct {
	// RowsSeen is the number of non-empty lines handed to the parser.
	RowsSeen int `json:"rows_seen"`
	// RowsIngested is the number of rows that contributed an observation.
	RowsIngested int `json:"rows_ingested"`
	// RowsSkipped is the number of rows the parser rejected.
	RowsSkipped int `json:"rows_skipped"`
	// Warnings holds one entry per skipped row, in input order.
	Warnings []warnings.RowWarning `json:"-"`
}

// IngestFile ingests the trip records in the named file.
//
// The analyzer is reset at the start of the pass. A file that cannot be
// opened is not an error: the analyzer is left empty, exactly as if the file
// had no valid rows.
func (a *Analyzer) IngestFile(path string, p Parser) IngestSummary {
	f, err := os.Open(path)
	if err != nil {
		a.Reset()
		log.Printf("Skipping input file %s because it cannot be opened: %s", path, err)
		return IngestSummary{}
	}
	defer f.Close()
	return a.IngestReader(f, p)
}

// IngestReader ingests trip records from r, one line at a time, resetting the
// analyzer first.
//
// Lines are stripped of a trailing carriage return and skipped when empty.
// Rows the parser rejects are counted, logged and skipped; they never abort
// the pass. A read error ends the pass early, keeping whatever was ingested
// up to that point.
func (a *Analyzer) IngestReader(r io.Reader, p Parser) IngestSummary {
	a.Reset()
	var sum IngestSummary
	br := bufio.NewReader(csv.BOMAwareReader(r))
	lineNumber := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNumber++
			a.ingestLine(lineNumber, strings.TrimSuffix(line, "\n"), p, &sum)
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("Stopping ingestion at line %d because of a read error: %s", lineNumber, err)
			}
			return sum
		}
	}
}

func (a *Analyzer) ingestLine(lineNumber int, line string, p Parser, sum *IngestSummary) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return
	}
	sum.RowsSeen++
	rec, err := p.Parse(lineNumber, line)
	if err != nil {
		sum.RowsSkipped++
		if w, ok := err.(warnings.RowWarning); ok {
			sum.Warnings = append(sum.Warnings, w)
		}
		log.Print(err)
		return
	}
	a.Record(rec.PickupZone, rec.PickupHour)
	sum.RowsIngested++
}
