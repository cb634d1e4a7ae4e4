package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ethereum-optimism/infra/op-testkit/discover"
)

// resultsTitle names the run by the Go module under test when the test
// directory sits inside one.
func (k *kit) resultsTitle(runID string, duration time.Duration) string {
	if mod := discover.ModulePath(k.config.TestDir); mod != "" {
		return fmt.Sprintf("Test Results for %s %s (%s)", mod, runID, formatDuration(duration))
	}
	return fmt.Sprintf("Test Results %s (%s)", runID, formatDuration(duration))
}

// printResultsTable prints the per-case outcomes of the run to the console.
func (k *kit) printResultsTable(runID string, duration time.Duration) {
	k.config.Log.Info("Printing results...")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(k.resultsTitle(runID, duration))

	t.AppendHeader(table.Row{
		"Class", "Method", "File", "Line", "Duration", "Status",
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Class", AutoMerge: true},
		{Name: "File", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Line", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
	})

	for _, out := range k.result.Outcomes() {
		loc := out.Case.Location()
		t.AppendRow(table.Row{
			out.Case.ClassName(),
			out.Case.MethodName(),
			filepath.Base(loc.File),
			loc.Line,
			formatDuration(out.Duration),
			getResultString(out.Status),
		})
	}

	t.AppendFooter(table.Row{
		"TOTAL", "", "", "",
		fmt.Sprintf("run:%d pass:%d", k.result.TestsRun(), k.result.Passed()),
		fmt.Sprintf("fail:%d err:%d skip:%d",
			len(k.result.Failures()), len(k.result.Errors()), len(k.result.Skipped())),
	})

	if k.result.WasSuccessful() {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}
	t.Render()
}
