// internal/tracking/dashboard.go
package tracking

import (
	"html/template"
	"io"
)

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<html>
<head>
<style>
    body { font-family: 'Inter', sans-serif; background: #000; color: #fff; padding: 40px; }
    h1 { color: #3b82f6; letter-spacing: -1px; }
    table { width: 100%; border-collapse: collapse; margin-top: 20px; background: #111; border-radius: 12px; overflow: hidden; }
    th, td { padding: 15px; text-align: left; border-bottom: 1px solid #222; }
    th { background: #1a1a1a; color: #888; font-size: 12px; text-transform: uppercase; letter-spacing: 1px; }
    tr:hover { background: #161616; }
    .token { color: #3b82f6; font-family: monospace; }
    .path { color: #10b981; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<tr><th>ID</th><th>Timestamp</th><th>Path</th><th>User (Session Token)</th></tr>
{{- range .Rows}}
<tr><td>{{.ID}}</td><td>{{.Timestamp}}</td><td><span class="path">{{.Path}}</span></td><td><span class="token">{{.UserToken}}</span></td></tr>
{{- end}}
</table>
</body>
</html>
`))

type dashboardData struct {
	Title string
	Rows  []Interaction
}

// RenderDashboard writes the interaction table. All values are escaped.
func RenderDashboard(w io.Writer, title string, rows []Interaction) error {
	return dashboardTemplate.Execute(w, dashboardData{Title: title, Rows: rows})
}
