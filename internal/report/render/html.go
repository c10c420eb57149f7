package render

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	reportdomain "github.com/smallbiznis/shiftcount/internal/report/domain"
)

const reportHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: Inter, Arial, sans-serif;
      padding: 24px;
    }
    h1 { margin-bottom: 4px; }
    .generated {
      color: #64748b;
      font-size: 13px;
      margin-bottom: 16px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      border: 1px solid #ddd;
      padding: 10px;
      text-align: center;
    }
    th {
      background: #111;
      color: #fff;
    }
    td:first-child {
      text-align: left;
      font-weight: 600;
    }
    tfoot td {
      font-weight: 700;
      background: #f8fafc;
    }
    @media print {
      body { padding: 0; }
    }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="generated">{{formatTime .GeneratedAt}}</div>

  <table>
    <thead>
      <tr>
        <th>Item</th>
        <th>Singles</th>
        <th>Cases</th>
        <th>Pack</th>
        <th>Total Units</th>
      </tr>
    </thead>
    <tbody>
      {{range .Report.Rows}}
      <tr>
        <td>{{.Name}}</td>
        <td>{{.Singles}}</td>
        <td>{{.Cases}}</td>
        <td>{{.Pack}}</td>
        <td><strong>{{.Total}}</strong></td>
      </tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr>
        <td>Grand Total</td>
        <td colspan="3"></td>
        <td>{{.Report.GrandTotal}}</td>
      </tr>
    </tfoot>
  </table>

  <script>
    window.onload = () => window.print();
  </script>
</body>
</html>
`

// DefaultTitle heads every report when no title is configured.
const DefaultTitle = "End of Night Inventory Report"

type RenderInput struct {
	Title       string
	GeneratedAt time.Time
	Report      reportdomain.Report
}

type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"formatTime": formatTime,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("report").Funcs(funcs).Parse(reportHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	input.Title = TitleOrDefault(input.Title)

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func TitleOrDefault(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format("2006-01-02 15:04")
}
