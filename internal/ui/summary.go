package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aardwolf-security/krakenbuster/internal/runner"
)

// Summary renders the post-scan panel for every scanner of a session.
func Summary(results []runner.Result) string {
	var b strings.Builder
	t := runner.Total(results)
	b.WriteString(labelStyle.Render("Scan Summary"))
	fmt.Fprintf(&b, "\n%d findings, %d output lines, %d errors in %s\n",
		t.Findings, t.RawLines, t.ErrLines, t.Duration.Round(time.Second))

	for _, r := range results {
		fmt.Fprintf(&b, "\n%s\n", labelStyle.Render(fmt.Sprintf("[%s] %s %s scan of %s", r.Scanner, r.Tool, r.Mode, r.Target)))
		fmt.Fprintf(&b, "  Findings:      %d\n", len(r.Findings))
		fmt.Fprintf(&b, "  Output lines:  %d\n", r.RawLines)
		fmt.Fprintf(&b, "  Elapsed:       %s\n", r.Duration.Round(time.Second))
		fmt.Fprintf(&b, "  Raw log:       %s\n", r.RawPath)
		fmt.Fprintf(&b, "  Findings JSON: %s\n", r.JSONPath)

		if breakdown := statusBreakdown(r); breakdown != "" {
			b.WriteString(breakdown)
		}
		if len(r.Errors) > 0 {
			fmt.Fprintf(&b, "  %s\n", errStyle.Render(fmt.Sprintf("%d scanner errors (last: %s)",
				len(r.Errors), r.Errors[len(r.Errors)-1])))
		}
	}

	return summaryPanelStyle.Render(b.String())
}

// statusBreakdown lists finding counts per status code in ascending order.
func statusBreakdown(r runner.Result) string {
	counts := make(map[int]int)
	for _, f := range r.Findings {
		counts[f.Status]++
	}
	if len(counts) == 0 {
		return ""
	}

	codes := make([]int, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	var b strings.Builder
	b.WriteString("  Status codes:\n")
	for _, code := range codes {
		fmt.Fprintf(&b, "    %s: %d\n",
			statusStyle(code).Render(fmt.Sprintf("%d", code)), counts[code])
	}
	return b.String()
}
