package views

import (
	"fmt"
	"strings"
)

type EventDetailData struct {
	Name         string
	Type         string
	Project      string
	Category     string
	When         string
	EndWhen      string
	Where        string
	Participants []string
	Recurring    bool
	Description  string // markdown
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

// RenderEventDetail shows the selected occurrence's metadata with the
// description rendered as markdown.
func RenderEventDetail(data EventDetailData) string {
	if strings.TrimSpace(data.Name) == "" {
		return "detail:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(fmt.Sprintf("name: %s\n", data.Name))
	b.WriteString(fmt.Sprintf("type: %s\n", data.Type))
	if data.Project != "" {
		b.WriteString(fmt.Sprintf("project: %s (%s)\n", data.Project, data.Category))
	}
	b.WriteString(fmt.Sprintf("when: %s\n", data.When))
	if data.EndWhen != "" {
		b.WriteString(fmt.Sprintf("until: %s\n", data.EndWhen))
	}
	if data.Where != "" {
		b.WriteString(fmt.Sprintf("where: %s\n", data.Where))
	}
	if len(data.Participants) > 0 {
		b.WriteString(fmt.Sprintf("who: %s\n", strings.Join(data.Participants, ", ")))
	}
	if data.Recurring {
		b.WriteString("recurring: yes\n")
	}
	if md := RenderMarkdown(data.Description); md != "" {
		b.WriteString("\n" + md)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
