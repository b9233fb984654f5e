package main

import (
	"io"
	"strconv"

	"github.com/nspcc-dev/chunkprune/pkg/metrics"
	"github.com/nspcc-dev/chunkprune/pkg/pruner"
	"github.com/olekukonko/tablewriter"
)

var summaryResults = []pruner.Result{
	pruner.ResultDeleted,
	pruner.ResultCandidate,
	pruner.ResultKept,
	pruner.ResultEmpty,
	pruner.ResultUndecodable,
	pruner.ResultFailed,
	pruner.ResultSkipped,
}

// printSummary writes per-root table of the run results. Roots are listed
// in processing order, the ones not reached have zero counters.
func printSummary(w io.Writer, roots []string, s map[string]metrics.RootSummary) {
	out := tablewriter.NewWriter(w)

	hdr := []string{"Root"}
	for _, r := range summaryResults {
		hdr = append(hdr, string(r))
	}
	out.SetHeader(append(hdr, "Reclaimed bytes"))
	out.SetAlignment(tablewriter.ALIGN_RIGHT)
	out.SetAutoWrapText(false)

	for _, root := range roots {
		rs := s[root]

		row := []string{root}
		for _, r := range summaryResults {
			row = append(row, strconv.FormatUint(rs.Results[string(r)], 10))
		}

		out.Append(append(row, strconv.FormatUint(rs.ReclaimedBytes, 10)))
	}

	out.Render()
}
