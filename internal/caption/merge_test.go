package caption_test

import (
	"strings"
	"testing"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ReplacesMatchingSpan(t *testing.T) {
	markup := caption.GenerateMarkup(catRecord())

	got, patterns := caption.Merge("A cat sits on a mat.", []caption.ImageRecord{catRecord()})

	assert.Equal(t, "A "+markup+" a mat.", got)
	assert.Equal(t, []string{caption.BuildPattern("cat sits on")}, patterns)
}

func TestMerge_ToleratesInlineTags(t *testing.T) {
	markup := caption.GenerateMarkup(catRecord())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tag around a middle word",
			input:    "<p>A cat <b>sits</b> on a mat.</p>",
			expected: "<p>A " + markup + " a mat.</p>",
		},
		{
			name:     "different letter case",
			input:    "<p>A Cat Sits On a mat.</p>",
			expected: "<p>A " + markup + " a mat.</p>",
		},
		{
			name:     "words broken across lines",
			input:    "<p>A cat\nsits\non a mat.</p>",
			expected: "<p>A " + markup + " a mat.</p>",
		},
		{
			name:     "no-break space between words",
			input:    "<p>A cat\u00a0sits on a mat.</p>",
			expected: "<p>A " + markup + " a mat.</p>",
		},
		{
			name:     "no-break space around an inline tag",
			input:    "<p>A cat\u00a0<b>sits</b>\u2009on a mat.</p>",
			expected: "<p>A " + markup + " a mat.</p>",
		},
		{
			name:     "closing tag after the last word stays",
			input:    "<p>A cat sits on</p><p>next</p>",
			expected: "<p>A " + markup + "</p><p>next</p>",
		},
		{
			name:     "wrapped caption keeps its wrapper balanced",
			input:    "<p><em>cat sits on</em></p>",
			expected: "<p><em>" + markup + "</em></p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := caption.Merge(tt.input, []caption.ImageRecord{catRecord()})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMerge_MatchesNormalizedNoBreakSpace(t *testing.T) {
	doc, err := normalize.Normalize("<p>A cat&#160;sits on a mat.</p>", "https://www.thecollector.com/")
	require.NoError(t, err)

	m := caption.NewMerger(&mockMetadataSink{})
	result := m.Merge(doc, []caption.ImageRecord{catRecord()})

	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 0, result.Prepended)
	assert.Equal(t, "<p>A "+caption.GenerateMarkup(catRecord())+" a mat.</p>", result.Document)
}

func TestMerge_TagOpenedInsideSpanLeavesItsCloseBehind(t *testing.T) {
	markup := caption.GenerateMarkup(catRecord())

	got, _ := caption.Merge("<p>A cat <em>sits on</em> a mat.</p>", []caption.ImageRecord{catRecord()})

	assert.Equal(t, "<p>A "+markup+"</em> a mat.</p>", got)
}

func TestMerge_OnlyFirstMatchIsReplaced(t *testing.T) {
	markup := caption.GenerateMarkup(catRecord())

	got, _ := caption.Merge("cat sits on one. cat sits on two.", []caption.ImageRecord{catRecord()})

	assert.Equal(t, markup+" one. cat sits on two.", got)
}

func TestMerge_UnmatchedCaptionIsPrepended(t *testing.T) {
	markup := caption.GenerateMarkup(dogRecord())

	got, patterns := caption.Merge("A cat sits on a mat.", []caption.ImageRecord{dogRecord()})

	assert.Equal(t, markup+"\n\nA cat sits on a mat.", got)
	assert.Equal(t, []string{caption.BuildPattern("dog runs fast")}, patterns)
}

func TestMerge_EmptyCaptionIsPrependedWithoutPattern(t *testing.T) {
	record := catRecord()
	record.Caption = "   "
	markup := caption.GenerateMarkup(record)

	got, patterns := caption.Merge("body", []caption.ImageRecord{record})

	assert.Equal(t, markup+"\n\nbody", got)
	assert.Empty(t, patterns)
}

func TestMerge_PrependedInRecordOrderWithoutDuplicates(t *testing.T) {
	first := dogRecord()
	second := catRecord()
	second.Caption = ""
	firstMarkup := caption.GenerateMarkup(first)
	secondMarkup := caption.GenerateMarkup(second)

	got, _ := caption.Merge("body", []caption.ImageRecord{first, second, first})

	assert.Equal(t, firstMarkup+"\n\n"+secondMarkup+"\n\nbody", got)
}

func TestMerge_NoImageIsLost(t *testing.T) {
	document := "<p>The cat sits on a mat.</p><p>A bird sings at dawn.</p>"
	bird := caption.ImageRecord{ID: "7", Width: 10, Height: 10, Name: "bird", Caption: "bird sings", URL: "u7"}
	blank := caption.ImageRecord{ID: "8", Width: 10, Height: 10, Name: "blank", URL: "u8"}
	records := []caption.ImageRecord{catRecord(), dogRecord(), bird, blank}

	got, _ := caption.Merge(document, records)

	for _, record := range records {
		markup := caption.GenerateMarkup(record)
		assert.Equal(t, 1, strings.Count(got, markup), "record %s", record.ID)
	}
}

func TestMerge_LaterPatternsDoNotMatchInsideInsertedMarkup(t *testing.T) {
	first := catRecord()
	second := catRecord()
	second.ID = "99"
	secondMarkup := caption.GenerateMarkup(second)

	got, _ := caption.Merge("A cat sits on a mat.", []caption.ImageRecord{first, second})

	// the only span is taken, so the second image falls back to the front
	assert.True(t, strings.HasPrefix(got, secondMarkup+"\n\n"))
	assert.Equal(t, 1, strings.Count(got, caption.GenerateMarkup(first)))
	assert.Equal(t, 1, strings.Count(got, secondMarkup))
}

func TestMerge_Deterministic(t *testing.T) {
	records := []caption.ImageRecord{dogRecord(), catRecord()}
	first, _ := caption.Merge("A cat sits on a mat.", records)
	for i := 0; i < 5; i++ {
		again, _ := caption.Merge("A cat sits on a mat.", records)
		assert.Equal(t, first, again)
	}
}

func TestMerger_ReportsCounts(t *testing.T) {
	mockSink := &mockMetadataSink{}
	m := caption.NewMerger(mockSink)

	result := m.Merge("A cat sits on a mat.", []caption.ImageRecord{catRecord(), dogRecord()})

	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.Prepended)
	assert.Len(t, result.Patterns, 2)
	assert.Empty(t, mockSink.errors)
}

func TestMerger_InvalidPatternFallsBack(t *testing.T) {
	mockSink := &mockMetadataSink{}
	m := caption.NewMerger(mockSink)

	record := catRecord()
	record.Caption = "broken \xff byte"

	result := m.Merge("body", []caption.ImageRecord{record})

	require.Len(t, mockSink.errors, 1)
	assert.Equal(t, "caption", mockSink.errors[0].packageName)
	assert.Equal(t, metadata.CauseContentInvalid, mockSink.errors[0].cause)
	assert.Equal(t, 0, result.Matched)
	assert.Equal(t, 1, result.Prepended)
	assert.True(t, strings.HasSuffix(result.Document, "\n\nbody"))
}

func TestInsert_AcceptsReadyMarkup(t *testing.T) {
	markup := `[caption id="attachment_1"]<img src="x" /> sits on[/caption]`

	result := caption.Insert("A cat sits on a mat.", []string{markup})

	assert.Equal(t, "A cat "+markup+" a mat.", result.Document)
	assert.Equal(t, 1, result.Matched)
}
