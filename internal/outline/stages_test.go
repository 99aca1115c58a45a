package outline

import (
	"strings"
	"testing"

	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_MergesSpansOfALine(t *testing.T) {
	doc := &doctree.Document{Pages: []*doctree.Page{{
		Number: 2,
		Blocks: []*doctree.Block{{Lines: []*doctree.Line{
			{Spans: []doctree.Span{
				{Text: "  ", Size: 30, BBox: doctree.Rect{Y0: 5}},
				{Text: "Chapter ", Size: 12, BBox: doctree.Rect{Y0: 40}},
				{Text: "Two", Size: 14, Flags: doctree.FlagBold, BBox: doctree.Rect{Y0: 41}},
			}},
			{Spans: []doctree.Span{{Text: "\ufeff \n", Size: 12}}},
		}}},
	}}}

	blocks := Aggregate(doc)

	require.Len(t, blocks, 1)
	assert.Equal(t, TextBlock{Text: "Chapter Two", Size: 14, Bold: true, Page: 2, Y: 40}, blocks[0])
}

func TestAggregate_KeepsEmissionOrderAndNumbersPages(t *testing.T) {
	first := &doctree.Page{}
	first.AddLine(doctree.Span{Text: "bottom", Size: 10, BBox: doctree.Rect{Y0: 500}})
	first.AddLine(doctree.Span{Text: "top", Size: 10, BBox: doctree.Rect{Y0: 10}})
	second := &doctree.Page{}
	second.AddLine(doctree.Span{Text: "next", Size: 10})

	blocks := Aggregate(&doctree.Document{Pages: []*doctree.Page{first, second}})

	require.Len(t, blocks, 3)
	assert.Equal(t, "bottom", blocks[0].Text)
	assert.Equal(t, "top", blocks[1].Text)
	assert.Equal(t, 1, blocks[0].Page)
	assert.Equal(t, 2, blocks[2].Page)
}

func TestIsCandidate(t *testing.T) {
	p := DefaultPolicy()
	thirteen := strings.TrimSpace(strings.Repeat("word ", 13))
	twelve := strings.TrimSpace(strings.Repeat("word ", 12))

	cases := []struct {
		text string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"---", false},
		{". . . . . .", false},
		{"\u2013 \u2014 \u2013", false},
		{"Hi", false},
		{"abc", false},
		{"Abcd", true},
		{thirteen, false},
		{twelve, true},
		{"Introduction", true},
		{"1.2 Scope", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, p.IsCandidate(c.text), "IsCandidate(%q)", c.text)
	}
}

func TestComputeStats(t *testing.T) {
	p := DefaultPolicy()
	blocks := []TextBlock{{Size: 10}, {Size: 20}, {Size: 0}, {Size: 30}}

	st, ok := p.ComputeStats(blocks)
	require.True(t, ok)
	assert.InDelta(t, 20, st.Avg, 1e-9)
	assert.Equal(t, 30.0, st.Max)

	p.ExcludeInvalidSizes = false
	st, ok = p.ComputeStats(blocks)
	require.True(t, ok)
	assert.InDelta(t, 15, st.Avg, 1e-9)

	_, ok = DefaultPolicy().ComputeStats(nil)
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	p := DefaultPolicy()
	st := Stats{Avg: 10, Max: 20}

	cases := []struct {
		block TextBlock
		level Level
		ok    bool
	}{
		{TextBlock{Size: 20}, H1, true},
		{TextBlock{Size: 22}, H1, true},
		{TextBlock{Size: 12}, H2, true},
		{TextBlock{Size: 12, Bold: true}, H2, true},
		{TextBlock{Size: 10.5, Bold: true}, H3, true},
		{TextBlock{Size: 10, Bold: true}, H3, true},
		{TextBlock{Size: 10.5}, "", false},
		{TextBlock{Size: 9, Bold: true}, "", false},
	}
	for _, c := range cases {
		level, ok := p.Classify(c.block, st)
		assert.Equal(t, c.ok, ok, "size=%v bold=%v", c.block.Size, c.block.Bold)
		assert.Equal(t, c.level, level, "size=%v bold=%v", c.block.Size, c.block.Bold)
	}
}

func TestSortByLayout_Stable(t *testing.T) {
	cands := []Candidate{
		{TextBlock: TextBlock{Text: "c", Page: 2, Y: 10}},
		{TextBlock: TextBlock{Text: "a", Page: 1, Y: 50}},
		{TextBlock: TextBlock{Text: "b1", Page: 1, Y: 80}},
		{TextBlock: TextBlock{Text: "b2", Page: 1, Y: 80}},
		{TextBlock: TextBlock{Text: "z", Page: 1, Y: 5}},
	}

	SortByLayout(cands)

	var got []string
	for _, c := range cands {
		got = append(got, c.Text)
	}
	assert.Equal(t, []string{"z", "a", "b1", "b2", "c"}, got)
}

func TestMergeAdjacent(t *testing.T) {
	p := DefaultPolicy()
	cand := func(text string, page int, y float64, level Level) Candidate {
		return Candidate{TextBlock: TextBlock{Text: text, Page: page, Y: y}, Level: level}
	}

	t.Run("close lines merge", func(t *testing.T) {
		got := p.MergeAdjacent([]Candidate{cand("Part One", 3, 100, H1), cand("Beginnings", 3, 104, H2)})
		require.Len(t, got, 1)
		assert.Equal(t, "Part One Beginnings", got[0].Text)
		assert.Equal(t, H1, got[0].Level)
		assert.Equal(t, 100.0, got[0].Y)
	})

	t.Run("distant lines stay apart", func(t *testing.T) {
		got := p.MergeAdjacent([]Candidate{cand("Part One", 3, 100, H1), cand("Beginnings", 3, 115, H1)})
		assert.Len(t, got, 2)
	})

	t.Run("distance is exclusive", func(t *testing.T) {
		got := p.MergeAdjacent([]Candidate{cand("Part One", 3, 100, H1), cand("Beginnings", 3, 108, H1)})
		assert.Len(t, got, 2)
	})

	t.Run("different pages stay apart", func(t *testing.T) {
		got := p.MergeAdjacent([]Candidate{cand("Part One", 3, 100, H1), cand("Beginnings", 4, 100, H1)})
		assert.Len(t, got, 2)
	})

	t.Run("distance measured from first line", func(t *testing.T) {
		got := p.MergeAdjacent([]Candidate{
			cand("Alpha", 1, 100, H1),
			cand("Beta", 1, 105, H1),
			cand("Gamma", 1, 110, H1),
		})
		require.Len(t, got, 2)
		assert.Equal(t, "Alpha Beta", got[0].Text)
		assert.Equal(t, "Gamma", got[1].Text)
	})

	t.Run("contained fragment is not appended", func(t *testing.T) {
		got := p.MergeAdjacent([]Candidate{cand("Results Summary", 1, 100, H1), cand("Summary", 1, 102, H1)})
		require.Len(t, got, 2)
		assert.Equal(t, "Results Summary", got[0].Text)
	})

	t.Run("input untouched", func(t *testing.T) {
		in := []Candidate{cand("Part One", 3, 100, H1), cand("Beginnings", 3, 104, H1)}
		p.MergeAdjacent(in)
		assert.Equal(t, "Part One", in[0].Text)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, p.MergeAdjacent(nil))
	})
}

func TestDedupe(t *testing.T) {
	cands := []Candidate{
		{TextBlock: TextBlock{Text: "Results", Page: 2, Y: 10}, Level: H2},
		{TextBlock: TextBlock{Text: "results", Page: 2, Y: 90}, Level: H1},
		{TextBlock: TextBlock{Text: "Results", Page: 3, Y: 10}, Level: H2},
		{TextBlock: TextBlock{Text: "Appendix", Page: 1, Y: 10}, Level: H3},
	}

	got := Dedupe(cands)

	assert.Equal(t, []Entry{
		{Text: "Results", Level: H2, Page: 2},
		{Text: "Results", Level: H2, Page: 3},
		{Text: "Appendix", Level: H3, Page: 1},
	}, got)
	assert.NotNil(t, Dedupe(nil))
}
