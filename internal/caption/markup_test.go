package caption_test

import (
	"testing"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMarkup(t *testing.T) {
	got := caption.GenerateMarkup(catRecord())
	assert.Equal(t,
		`[caption id="attachment_42" align="aligncenter" width="800"]`+
			`<img class="size-full wp-image-42" src="https://cdn.example/cat.jpg" alt="cat on mat" width="800" height="600" /> `+
			`cat sits on[/caption]`,
		got)
}

func TestGenerateMarkup_EscapesAttributes(t *testing.T) {
	record := catRecord()
	record.Name = `Monet "Water-Lilies"`
	record.URL = "https://cdn.example/a.jpg?w=1&h=2"

	got := caption.GenerateMarkup(record)
	assert.Contains(t, got, `alt="Monet &#34;Water Lilies&#34;"`)
	assert.Contains(t, got, `src="https://cdn.example/a.jpg?w=1&amp;h=2"`)
}

func TestGenerateMarkups_KeepsOrder(t *testing.T) {
	markups := caption.GenerateMarkups([]caption.ImageRecord{dogRecord(), catRecord()})
	assert.Len(t, markups, 2)
	assert.Contains(t, markups[0], "attachment_43")
	assert.Contains(t, markups[1], "attachment_42")
}

func TestDescriptiveText(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		text   string
		ok     bool
	}{
		{
			name:   "generated markup",
			markup: caption.GenerateMarkup(catRecord()),
			text:   "cat sits on",
			ok:     true,
		},
		{
			name:   "surrounding whitespace is trimmed",
			markup: "[caption]<img src=\"x\" />  \n Title, 1890 \n[/caption]",
			text:   "Title, 1890",
			ok:     true,
		},
		{
			name:   "empty caption",
			markup: `[caption]<img src="x" /> [/caption]`,
			ok:     false,
		},
		{
			name:   "no image tag",
			markup: `[caption]text[/caption]`,
			ok:     false,
		},
		{
			name:   "no closing shortcode",
			markup: `<img src="x" /> text`,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := caption.DescriptiveText(tt.markup)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestBuildPattern(t *testing.T) {
	assert.Equal(t,
		`cat([\s\p{Zs}]*<[^>]+>[\s\p{Zs}]*)?[\s\p{Zs}]*sits([\s\p{Zs}]*<[^>]+>[\s\p{Zs}]*)?`,
		caption.BuildPattern("cat  sits"))
	assert.Equal(t,
		`Mr\.([\s\p{Zs}]*<[^>]+>[\s\p{Zs}]*)?[\s\p{Zs}]*\(1890\)([\s\p{Zs}]*<[^>]+>[\s\p{Zs}]*)?`,
		caption.BuildPattern("Mr. (1890)"))
}
