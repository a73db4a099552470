// Package tui is a small bubbletea explorer for saved runs: page through
// the raw signal, the AMI curve, the divergence curve, the persistence
// barcode and the reconstructed attractor.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/chaoscope/internal/cloud"
	"github.com/san-kum/chaoscope/internal/rips"
	"github.com/san-kum/chaoscope/internal/storage"
	"github.com/san-kum/chaoscope/internal/viz"
)

type page int

const (
	pageSummary page = iota
	pageSignal
	pageAMI
	pageDivergence
	pageBarcode
	pageAttractor
	pageCount
)

var pageNames = [pageCount]string{
	"summary", "signal", "ami", "divergence", "barcode", "attractor",
}

type model struct {
	meta       *storage.RunMetadata
	signal     []float64
	ami        []float64
	divergence []float64
	diagram    rips.Diagram
	pc         cloud.PointCloud

	page   page
	width  int
	height int
}

// Explore loads a saved run and drives the pager until quit.
func Explore(st *storage.Store, runID string) error {
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	m := model{meta: meta, page: pageSummary, width: 80, height: 24}

	// artifacts are independent; a missing one blanks its page only
	m.signal, _ = st.LoadCurve(runID, "signal.csv")
	m.ami, _ = st.LoadCurve(runID, "ami.csv")
	m.divergence, _ = st.LoadCurve(runID, "divergence.csv")
	m.diagram, _ = st.LoadDiagram(runID)
	m.pc, _ = st.LoadCloud(runID)

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "tab":
			m.page = (m.page + 1) % pageCount
		case "left", "h", "shift+tab":
			m.page = (m.page + pageCount - 1) % pageCount
		}
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(viz.Title.Render(fmt.Sprintf("chaoscope · %s", m.meta.ID)))
	sb.WriteString("  ")
	for p := page(0); p < pageCount; p++ {
		name := pageNames[p]
		if p == m.page {
			sb.WriteString(viz.Value.Render("[" + name + "]"))
		} else {
			sb.WriteString(viz.Subtle.Render(" " + name + " "))
		}
	}
	sb.WriteString("\n\n")

	plotW := m.width - 12
	if plotW < 20 {
		plotW = 20
	}
	plotH := m.height - 8
	if plotH < 6 {
		plotH = 6
	}

	switch m.page {
	case pageSummary:
		sb.WriteString(m.summary())
	case pageSignal:
		sb.WriteString(viz.CurvePlot(window(m.signal, 500), "signal (first 500 samples)", plotH, plotW))
	case pageAMI:
		sb.WriteString(viz.CurvePlot(m.ami, "average mutual information vs lag", plotH, plotW))
	case pageDivergence:
		sb.WriteString(viz.CurvePlot(m.divergence, "mean log divergence vs horizon", plotH, plotW))
	case pageBarcode:
		sb.WriteString(viz.Barcode(m.diagram.Significant(0.01), plotW/2))
	case pageAttractor:
		sb.WriteString(viz.AttractorASCII(m.pc, 0, 1, plotW, plotH))
	}

	sb.WriteString("\n")
	sb.WriteString(viz.Subtle.Render("←/→ switch page · q quit"))
	return sb.String()
}

func (m model) summary() string {
	verdict := viz.Regular.Render("regular (λ ≤ 0)")
	if m.meta.Exponent > 0 {
		verdict = viz.Chaotic.Render("chaotic (λ > 0)")
	}

	finite, immortal := m.diagram.Counts()

	lines := []string{
		fmt.Sprintf("%s %s", viz.Label.Render("source:"), viz.Value.Render(m.meta.Source)),
		fmt.Sprintf("%s %s", viz.Label.Render("samples:"), viz.Value.Render(fmt.Sprintf("%d @ dt=%g", m.meta.Length, m.meta.Dt))),
		fmt.Sprintf("%s %s", viz.Label.Render("lag τ:"), viz.Value.Render(fmt.Sprintf("%d", m.meta.Tau))),
		fmt.Sprintf("%s %s  %s", viz.Label.Render("exponent:"), viz.Value.Render(fmt.Sprintf("%.4f", m.meta.Exponent)), verdict),
		fmt.Sprintf("%s %s", viz.Label.Render("subsample:"), viz.Value.Render(fmt.Sprintf("%d points, scale ≤ %g", m.meta.SampleSize, m.meta.MaxScale))),
	}
	for dim := 0; dim <= rips.MaxHomologyDim; dim++ {
		if finite[dim] == 0 && immortal[dim] == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s",
			viz.Label.Render(fmt.Sprintf("H%d:", dim)),
			viz.Value.Render(fmt.Sprintf("%d finite, %d immortal", finite[dim], immortal[dim]))))
	}
	if m.meta.Degenerate {
		lines = append(lines, viz.Regular.Render("degenerate filtration: no edges within max scale"))
	}

	return viz.Panel.Render(strings.Join(lines, "\n"))
}

func window(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	return data[:n]
}
