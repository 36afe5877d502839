package main

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

var (
	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32")).
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("32")).
			Padding(0, 1)

	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(4)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			PaddingLeft(4)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginTop(1)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// renderResponse formats one page of results. offset numbers the rows.
func renderResponse(resp result.Response, offset int, withFacets bool) string {
	var b strings.Builder

	summary := fmt.Sprintf("%d results in %s", resp.Total, resp.QueryTime.Round(time.Microsecond))
	b.WriteString(summaryStyle.Render(summary))
	b.WriteString("\n")

	if len(resp.Results) == 0 {
		b.WriteString(noDataStyle.Render("No results found"))
		b.WriteString("\n")
	}

	for i := range resp.Results {
		b.WriteString(renderResult(&resp.Results[i], offset+i+1))
	}

	if withFacets {
		b.WriteString(renderFacets(resp.Facets))
	}
	return b.String()
}

func renderResult(r *result.Result, n int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%3d. %s %s %s\n",
		n,
		resultTitleStyle.Render(r.Title()),
		typeStyle.Render("["+r.Type().String()+"]"),
		metaStyle.Render(fmt.Sprintf("%.2f", r.Score())),
	)
	if d := r.Description(); d != "" {
		b.WriteString(metaStyle.PaddingLeft(5).Render(d))
		b.WriteString("\n")
	}
	for _, h := range r.Highlights() {
		b.WriteString(highlightStyle.Render(h))
		b.WriteString("\n")
	}
	if u := r.URL(); u != "" {
		b.WriteString(urlStyle.Render(u))
		b.WriteString("\n")
	}
	return b.String()
}

func renderFacets(f result.Facets) string {
	var b strings.Builder
	tables := []struct {
		name   string
		counts map[string]int
	}{
		{"Types", f.Types},
		{"Categories", f.Categories},
		{"Tags", f.Tags},
		{"Dates", f.DateRanges},
	}
	for _, t := range tables {
		if len(t.counts) == 0 {
			continue
		}
		b.WriteString(headerStyle.Render(t.name))
		b.WriteString("\n")
		for _, k := range byCount(t.counts) {
			fmt.Fprintf(&b, "  %-24s %d\n", k, t.counts[k])
		}
	}
	return b.String()
}

// byCount orders facet keys by descending count, then name.
func byCount(counts map[string]int) []string {
	keys := slices.Collect(maps.Keys(counts))
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}

func renderList(title string, items []string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(noDataStyle.Render("Nothing to show"))
		b.WriteString("\n")
		return b.String()
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, item)
	}
	return b.String()
}

func renderCounts(title string, counts map[string]int) string {
	var b strings.Builder
	b.WriteString(summaryStyle.Render(title))
	b.WriteString("\n")
	for _, k := range byCount(counts) {
		fmt.Fprintf(&b, "  %-14s %d\n", k, counts[k])
	}
	return b.String()
}
