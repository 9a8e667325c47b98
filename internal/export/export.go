package export

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"github.com/example/maintenance-agent/internal/models"
)

// ContentType is what the browser is told the sheet is. The document itself
// is a styled HTML table, which spreadsheet applications open natively.
const ContentType = "application/vnd.ms-excel"

// statusStyles maps each status to its color band in the rendered table.
var statusStyles = map[models.TaskStatus]template.CSS{
	models.StatusPending:    "background-color: #FEF3C7; color: #92400E;",
	models.StatusInProgress: "background-color: #DBEAFE; color: #1E40AF;",
	models.StatusCompleted:  "background-color: #D1FAE5; color: #065F46;",
}

var sheetTmpl = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #dddddd; text-align: left; padding: 8px; }
th { background-color: #f2f2f2; font-weight: bold; }
h2 { color: #333; }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
<table>
<thead>
<tr><th>ID</th><th>Description</th><th>Status</th><th>Assigned To</th><th>Date</th></tr>
</thead>
<tbody>
{{range .Tasks}}<tr><td>{{.ID}}</td><td>{{.Description}}</td><td style="{{.Style}}">{{.Status}}</td><td>{{.AssignedTo}}</td><td>{{.Date}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type sheetRow struct {
	models.Task
	Style template.CSS
}

// BuildSheet renders a styled spreadsheet document for the given tasks.
// Pure: same tasks and title always produce the same bytes.
func BuildSheet(tasks []models.Task, title string) []byte {
	rows := make([]sheetRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, sheetRow{Task: t, Style: statusStyles[t.Status]})
	}
	var buf bytes.Buffer
	// the template is static; rendering struct data cannot fail
	_ = sheetTmpl.Execute(&buf, struct {
		Title string
		Tasks []sheetRow
	}{Title: title, Tasks: rows})
	return buf.Bytes()
}

// TaskFilename names the single-task sheet download.
func TaskFilename(id int) string {
	return fmt.Sprintf("task-%d-details.xls", id)
}

// AllTasksFilename names the full-report download.
const AllTasksFilename = "all-tasks-report.xls"

// Staging holds generated sheets until the browser fetches them. It stands
// in for the client-side blob-and-click download trigger.
type Staging struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewStaging() *Staging {
	return &Staging{files: map[string][]byte{}}
}

// Put stages a sheet under its download filename, replacing any prior one.
func (s *Staging) Put(filename string, content []byte) {
	s.mu.Lock()
	s.files[filename] = content
	s.mu.Unlock()
}

// Get returns a staged sheet by filename.
func (s *Staging) Get(filename string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[filename]
	return content, ok
}
