package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperrors "github.com/mklemetti/geneagraph/pkg/errors"
	"github.com/mklemetti/geneagraph/pkg/mathgenealogy"
)

// lookupCommand creates the lookup command, which fetches one record and
// opens an interactive browser over its advisor and student links.
func (c *CLI) lookupCommand() *cobra.Command {
	var (
		plain   bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <id>",
		Short: "Fetch one record and browse its relations",
		Long: `Fetch a single Math Genealogy record and browse its advisors
and students interactively. Selecting an entry fetches that record;
backspace returns to the previous one.

Examples:
  geneagraph lookup 18231          # browse starting from Jacobi
  geneagraph lookup 18231 --plain  # print the record and exit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			client, err := c.newClient(cmd, noCache)
			if err != nil {
				return err
			}

			spin := newSpinnerWithContext(cmd.Context(), fmt.Sprintf("Fetching record %d", ids[0]))
			spin.Start()
			rec, err := client.FetchRecord(cmd.Context(), ids[0], refresh)
			if err != nil {
				spin.StopWithError(apperrors.UserMessage(err))
				return err
			}
			spin.Stop()

			if plain {
				printRecord(rec)
				return nil
			}

			model := newLookupModel(cmd.Context(), client, rec, refresh)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the record without the interactive browser")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the record cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached records")

	return cmd
}

// printRecord writes a record's fields to stdout.
func printRecord(rec *mathgenealogy.Record) {
	fmt.Println(StyleTitle.Render(rec.Name))
	printKeyValue("id", strconv.Itoa(rec.ID))
	if rec.Institution != nil {
		printKeyValue("institution", *rec.Institution)
	}
	if rec.Year != nil {
		printKeyValue("year", strconv.Itoa(*rec.Year))
	}
	if len(rec.Advisors) > 0 {
		printKeyValue("advisors", joinIDs(rec.Advisors))
	}
	if len(rec.Students) > 0 {
		printKeyValue("students", joinIDs(rec.Students))
	}
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// lookupEntry is one selectable relation in the browser.
type lookupEntry struct {
	id   int
	role string // "advisor" or "student"
}

// recordMsg delivers a fetched record to the model.
type recordMsg struct {
	rec *mathgenealogy.Record
}

// fetchErrMsg delivers a fetch failure to the model.
type fetchErrMsg struct {
	err error
}

// lookupModel is the bubbletea model for the record browser.
type lookupModel struct {
	ctx     context.Context
	client  *mathgenealogy.Client
	refresh bool

	record  *mathgenealogy.Record
	entries []lookupEntry
	history []*mathgenealogy.Record
	cursor  int
	loading bool
	err     error
}

// newLookupModel creates a browser model centered on rec.
func newLookupModel(ctx context.Context, client *mathgenealogy.Client, rec *mathgenealogy.Record, refresh bool) lookupModel {
	m := lookupModel{ctx: ctx, client: client, refresh: refresh}
	m.setRecord(rec)
	return m
}

func (m *lookupModel) setRecord(rec *mathgenealogy.Record) {
	m.record = rec
	m.cursor = 0
	m.entries = nil
	for _, id := range rec.Advisors {
		m.entries = append(m.entries, lookupEntry{id: id, role: "advisor"})
	}
	for _, id := range rec.Students {
		m.entries = append(m.entries, lookupEntry{id: id, role: "student"})
	}
}

func (m lookupModel) Init() tea.Cmd {
	return nil
}

// fetchCmd fetches a record asynchronously.
func (m lookupModel) fetchCmd(id int) tea.Cmd {
	return func() tea.Msg {
		rec, err := m.client.FetchRecord(m.ctx, id, m.refresh)
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return recordMsg{rec: rec}
	}
}

func (m lookupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordMsg:
		m.loading = false
		m.err = nil
		m.history = append(m.history, m.record)
		m.setRecord(msg.rec)
		return m, nil

	case fetchErrMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			if s := msg.String(); s == "q" || s == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			m.loading = true
			return m, m.fetchCmd(m.entries[m.cursor].id)
		case "backspace", "left", "h":
			if n := len(m.history); n > 0 {
				rec := m.history[n-1]
				m.history = m.history[:n-1]
				m.setRecord(rec)
			}
		}
	}
	return m, nil
}

func (m lookupModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.record.Name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("id %d", m.record.ID)))
	if m.record.Institution != nil {
		b.WriteString(StyleDim.Render(" · ") + StyleValue.Render(*m.record.Institution))
	}
	if m.record.Year != nil {
		b.WriteString(StyleDim.Render(" · ") + StyleValue.Render(strconv.Itoa(*m.record.Year)))
	}
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(StyleDim.Render("fetching..."))
		b.WriteString("\n")
		return b.String()
	}
	if m.err != nil {
		b.WriteString(StyleWarning.Render(apperrors.UserMessage(m.err)))
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(StyleDim.Render("no advisor or student links"))
		b.WriteString("\n")
	}
	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-8s %d", cursor, e.role, e.id)
		if i == m.cursor {
			b.WriteString(StyleHighlight.Render(line))
		} else {
			b.WriteString(StyleValue.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ open  ⌫ back  q quit"))
	b.WriteString("\n")
	return b.String()
}
