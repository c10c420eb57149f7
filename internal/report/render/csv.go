package render

import (
	"bytes"
	"strconv"
	"strings"

	reportdomain "github.com/smallbiznis/shiftcount/internal/report/domain"
)

// CSVFilename is the fixed name of the exported report.
const CSVFilename = "bartending-inventory-report.csv"

var csvHeader = []string{"Item", "Category", "Singles", "Cases", "Pack", "Total Units"}

// BuildCSV writes every field quoted, doubling embedded quotes, followed by a
// blank line and the grand total row.
func BuildCSV(report reportdomain.Report) []byte {
	var buf bytes.Buffer
	writeCSVRow(&buf, csvHeader)
	for _, row := range report.Rows {
		writeCSVRow(&buf, []string{
			row.Name,
			row.Category,
			strconv.Itoa(row.Singles),
			strconv.Itoa(row.Cases),
			strconv.Itoa(row.Pack),
			strconv.Itoa(row.Total),
		})
	}
	buf.WriteByte('\n')
	buf.WriteString(quoteCSV("Grand Total"))
	for i := 0; i < 4; i++ {
		buf.WriteString(`,""`)
	}
	buf.WriteByte(',')
	buf.WriteString(quoteCSV(strconv.Itoa(report.GrandTotal)))
	return buf.Bytes()
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quoteCSV(f))
	}
	buf.WriteByte('\n')
}

func quoteCSV(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
