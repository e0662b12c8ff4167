package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeSummariesTrivialCases(t *testing.T) {
	require.Equal(t, "", MergeSummaries(nil, StyleBulletPoints))
	require.Equal(t, "only one", MergeSummaries([]string{"only one"}, StyleDetailed))
}

func TestMergeBulletsDeduplicates(t *testing.T) {
	first := "• Revenue grew across all regions\n• Headcount stayed flat this quarter"
	second := "- Revenue grew across all regions\n- Churn dropped below two percent"

	merged := MergeSummaries([]string{first, second}, StyleBulletPoints)
	lines := strings.Split(merged, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "• Revenue grew across all regions", lines[0])
	require.Equal(t, "• Headcount stayed flat this quarter", lines[1])
	require.Equal(t, "• Churn dropped below two percent", lines[2])
}

func TestMergeBulletsDropsShortEntriesAndCaps(t *testing.T) {
	var parts []string
	for i := 0; i < 30; i++ {
		parts = append(parts, "• Finding number "+strings.Repeat("x", i+1)+" with enough substance")
	}
	parts = append(parts, "• tiny")

	merged := MergeSummaries([]string{strings.Join(parts, "\n"), "• tiny"}, StyleBulletPoints)
	lines := strings.Split(merged, "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		require.NotContains(t, line, "tiny")
	}
}

func TestMergeBulletsAcceptsNumberedLists(t *testing.T) {
	merged := MergeSummaries([]string{
		"1. The first observation stands alone",
		"2. The second observation stands alone",
	}, StyleBulletPoints)
	require.Equal(t, "• The first observation stands alone\n• The second observation stands alone", merged)
}

func TestMergeParagraphStylesJoinWithBlankLine(t *testing.T) {
	for _, style := range []Style{StyleParagraph, StyleExecutive} {
		merged := MergeSummaries([]string{"First part.", "Second part."}, style)
		require.Equal(t, "First part.\n\nSecond part.", merged, "style %s", style)
	}
}

func TestMergeStructuredGroupsSections(t *testing.T) {
	first := "## Overview\nThe report covers Q3.\n## Findings\nRevenue is up."
	second := "## Findings\nCosts are down.\n## Outlook\nGrowth continues."

	merged := MergeSummaries([]string{first, second}, StyleDetailed)
	require.Contains(t, merged, "## Overview")
	require.Contains(t, merged, "## Findings")
	require.Contains(t, merged, "## Outlook")

	findings := strings.Index(merged, "## Findings")
	outlook := strings.Index(merged, "## Outlook")
	require.Less(t, findings, outlook)
	require.Contains(t, merged[findings:outlook], "Revenue is up.")
	require.Contains(t, merged[findings:outlook], "Costs are down.")
}

func TestMergeStructuredRecognizesBoldHeadings(t *testing.T) {
	merged := MergeSummaries([]string{
		"**Abstract**\nShort overview.",
		"**Abstract**\nMore context.",
	}, StyleAcademic)
	require.Equal(t, 1, strings.Count(merged, "## Abstract"))
	require.Contains(t, merged, "Short overview.")
	require.Contains(t, merged, "More context.")
}

func TestMergeUnknownStyleUsesSeparator(t *testing.T) {
	merged := MergeSummaries([]string{"a section", "b section"}, Style("mystery"))
	require.Equal(t, "a section\n\n---\n\nb section", merged)
}
