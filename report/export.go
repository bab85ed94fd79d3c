package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"
)

//go:embed report.txt.tmpl
var reportTxtTmpl string

var reportTxt *template.Template = template.Must(template.New("report.txt.tmpl").Parse(reportTxtTmpl))

// Export encodes the report in the given format.
func (r Report) Export(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return r.ExportJSON()
	case FormatText:
		return r.ExportText()
	default:
		return nil, fmt.Errorf("unknown report format %d", f)
	}
}

// ExportText renders the report as two labeled blocks: TOP_ZONES with one
// zone,count row per entry, then TOP_SLOTS with one zone,hour,count row per
// entry. The labels are printed even when a block has no rows.
func (r Report) ExportText() ([]byte, error) {
	var b bytes.Buffer
	if err := reportTxt.Execute(&b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// ExportJSON renders the report as indented JSON, terminated by a newline.
func (r Report) ExportJSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
