package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/example/maintenance-agent/internal/models"
)

func sampleTasks() []models.Task {
	return []models.Task{
		{ID: 5, Description: "leaking faucet", Status: models.StatusPending, AssignedTo: "Unassigned", Date: "2024-07-20"},
		{ID: 6, Description: "noisy fan", Status: models.StatusInProgress, AssignedTo: "John", Date: "2024-07-21"},
		{ID: 7, Description: "painted wall", Status: models.StatusCompleted, AssignedTo: "Jane", Date: "2024-07-22"},
	}
}

// collect walks the parsed document gathering elements by tag name.
func collect(n *html.Node, tag string, out *[]*html.Node) {
	if n.Type == html.ElementNode && n.Data == tag {
		*out = append(*out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, tag, out)
	}
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestBuildSheetIsPure(t *testing.T) {
	a := BuildSheet(sampleTasks(), "All Tasks Report")
	b := BuildSheet(sampleTasks(), "All Tasks Report")
	require.Equal(t, a, b)
}

func TestBuildSheetStructure(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(string(BuildSheet(sampleTasks(), "All Tasks Report"))))
	require.NoError(t, err)

	var titles []*html.Node
	collect(doc, "h2", &titles)
	require.Len(t, titles, 1)
	require.Equal(t, "All Tasks Report", text(titles[0]))

	var rows []*html.Node
	collect(doc, "tr", &rows)
	require.Len(t, rows, 4) // header + 3 tasks

	var cells []*html.Node
	collect(doc, "td", &cells)
	require.Len(t, cells, 15)
	require.Equal(t, "5", text(cells[0]))
	require.Equal(t, "leaking faucet", text(cells[1]))
}

func TestStatusColorBands(t *testing.T) {
	out := string(BuildSheet(sampleTasks(), "report"))
	require.Contains(t, out, "#FEF3C7") // Pending amber
	require.Contains(t, out, "#DBEAFE") // In Progress blue
	require.Contains(t, out, "#D1FAE5") // Completed green
}

func TestBuildSheetEscapesContent(t *testing.T) {
	tasks := []models.Task{{
		ID: 1, Description: `<script>alert("x")</script>`,
		Status: models.StatusPending, AssignedTo: "a", Date: "2024-01-01",
	}}
	out := string(BuildSheet(tasks, "report"))
	require.NotContains(t, out, "<script>alert")
}

func TestFilenames(t *testing.T) {
	require.Equal(t, "task-5-details.xls", TaskFilename(5))
	require.Equal(t, "all-tasks-report.xls", AllTasksFilename)
}

func TestStaging(t *testing.T) {
	s := NewStaging()
	_, ok := s.Get("missing.xls")
	require.False(t, ok)

	s.Put("a.xls", []byte("one"))
	s.Put("a.xls", []byte("two"))
	got, ok := s.Get("a.xls")
	require.True(t, ok)
	require.Equal(t, []byte("two"), got)
}
