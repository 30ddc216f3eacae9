package parser

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/riverfjs/ogtext-go/internal/textarea"
	"github.com/riverfjs/ogtext-go/internal/typeface"
	"github.com/riverfjs/ogtext-go/internal/types"
)

// segmentFor looks up the segment owning the first occurrence of sub.
func segmentFor(t *testing.T, ta *textarea.TextArea, sub string) *textarea.Segment {
	t.Helper()
	full := ta.String()
	i := strings.Index(full, sub)
	if i < 0 {
		t.Fatalf("%q not found in %q", sub, full)
	}
	seg := ta.SegmentAt(textarea.Range{Start: i, End: i + len(sub)})
	if seg == nil {
		t.Fatalf("no single segment owns %q in %q", sub, full)
	}
	return seg
}

func mustParse(t *testing.T, md string, cfg *types.RenderConfig) *textarea.TextArea {
	t.Helper()
	ta, err := Parse(md, cfg)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", md, err)
	}
	return ta
}

func TestParse_Text(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{"plain", "Hello", "Hello"},
		{"soft break becomes space", "a\nb", "a b"},
		{"paragraphs", "a\n\nb", "a\n\nb"},
		{"emphasis markers removed", "Hello, **world**!", "Hello, world!"},
		{"heading then body", "# Title\n\nBody", "Title\n\nBody"},
		{"unordered list", "- a\n- b", "• a\n• b\n"},
		{"ordered list", "1. one\n2. two", "1. one\n2. two\n"},
		{"ordered list start", "3. c\n4. d", "3. c\n4. d\n"},
		{"rule", "a\n\n---\n\nb", "a\n\n————————\n\nb"},
		{"code block", "```go\nx := 1\n```", "x := 1"},
		{"autolink", "<https://go.dev>", "https://go.dev"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := mustParse(t, tt.md, nil)
			if got := ta.String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.md, got, tt.want)
			}
		})
	}
}

func TestParse_Styles(t *testing.T) {
	ta := mustParse(t, "Hello, **world** and *you*, ~~gone~~ [link](https://example.com)", nil)

	if _, ok := segmentFor(t, ta, "Hello").Style(); ok {
		t.Error("unstyled text should be pushed without style")
	}

	style, ok := segmentFor(t, ta, "world").Style()
	if !ok || !style.Bold || style.Italic {
		t.Errorf("world style = %+v, %v, want bold", style, ok)
	}

	style, ok = segmentFor(t, ta, "you").Style()
	if !ok || !style.Italic || style.Bold {
		t.Errorf("you style = %+v, %v, want italic", style, ok)
	}

	style, _ = segmentFor(t, ta, "gone").Style()
	if !style.Strikethrough {
		t.Errorf("gone style = %+v, want strikethrough", style)
	}

	style, _ = segmentFor(t, ta, "link").Style()
	if !style.Link || !style.Underline || style.Fg != types.LinkBlue {
		t.Errorf("link style = %+v, want link", style)
	}
}

func TestParse_NestedEmphasis(t *testing.T) {
	ta := mustParse(t, "**bold *both* bold**", nil)
	style, _ := segmentFor(t, ta, "both").Style()
	if !style.Bold || !style.Italic {
		t.Errorf("nested style = %+v, want bold and italic", style)
	}
	style, _ = segmentFor(t, ta, "bold").Style()
	if !style.Bold || style.Italic {
		t.Errorf("outer style = %+v, want bold only", style)
	}
}

func TestParse_Heading(t *testing.T) {
	ta := mustParse(t, "# Big\n\n## Smaller\n\nbody", nil)

	h1, _ := segmentFor(t, ta, "Big").Style()
	h2, _ := segmentFor(t, ta, "Smaller").Style()
	if h1.Scale != types.StyleH1.Scale || !h1.Bold {
		t.Errorf("H1 style = %+v", h1)
	}
	if h2.Scale != types.StyleH2.Scale {
		t.Errorf("H2 style = %+v", h2)
	}
	if _, ok := segmentFor(t, ta, "body").Style(); ok {
		t.Error("body should not carry a style")
	}
}

func TestParse_CodeFont(t *testing.T) {
	cfg := types.DefaultRenderConfig()
	cfg.CodeFont = gomono.TTF

	ta := mustParse(t, "use `fmt.Println` here", cfg)
	seg := segmentFor(t, ta, "fmt.Println")
	style, ok := seg.Style()
	if !ok || !style.Code {
		t.Errorf("code span style = %+v, %v", style, ok)
	}
	if seg.Font() == nil {
		t.Error("code span should embed the configured font")
	}
	if segmentFor(t, ta, "use").Font() != nil {
		t.Error("plain text should not embed a font")
	}
}

func TestParse_CodeFontDecodedOnce(t *testing.T) {
	cfg := types.DefaultRenderConfig()
	cfg.CodeFont = gomono.TTF

	ta := mustParse(t, "`one` and `two`\n\n```\nthree\n```", cfg)
	first := segmentFor(t, ta, "one").Font()
	if first == nil {
		t.Fatal("code span should embed the configured font")
	}
	for _, sub := range []string{"two", "three"} {
		if got := segmentFor(t, ta, sub).Font(); got != first {
			t.Errorf("%q font = %p, want the shared %p", sub, got, first)
		}
	}
}

func TestParse_NoCodeFont(t *testing.T) {
	ta := mustParse(t, "use `x` here", nil)
	if segmentFor(t, ta, "x").Font() != nil {
		t.Error("code span without CodeFont should not embed a font")
	}
}

func TestParse_InvalidCodeFont(t *testing.T) {
	cfg := types.DefaultRenderConfig()
	cfg.CodeFont = []byte("broken")

	_, err := Parse("before `code` after", cfg)
	if !errors.Is(err, typeface.ErrInvalidFontBytes) {
		t.Fatalf("Parse() error = %v, want ErrInvalidFontBytes", err)
	}

	area := textarea.New()
	_ = ParseInto(area, "before `code` after", cfg)
	if got := area.String(); got != "before " {
		t.Errorf("area after failure = %q, want %q", got, "before ")
	}
}

func TestParse_TaskList(t *testing.T) {
	ta := mustParse(t, "- [x] done\n- [ ] todo", nil)
	text := ta.String()
	if !strings.HasPrefix(text, "[x]") {
		t.Errorf("task list = %q, want [x] prefix", text)
	}
	if strings.Contains(text, "•") {
		t.Errorf("task list = %q should not contain bullets", text)
	}
	if !strings.Contains(text, "done") || !strings.Contains(text, "[ ]") {
		t.Errorf("task list = %q", text)
	}
}

func TestParse_NestedList(t *testing.T) {
	ta := mustParse(t, "- a\n  - b\n- c", nil)
	text := ta.String()
	for _, want := range []string{"• a\n", "  • b\n", "• c\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("nested list = %q, missing %q", text, want)
		}
	}
}

func TestParse_Blockquote(t *testing.T) {
	ta := mustParse(t, "> quoted text", nil)
	text := ta.String()
	if !strings.HasPrefix(text, types.DefaultSymbol().Quote) {
		t.Errorf("blockquote = %q, want quote prefix", text)
	}
	style, _ := segmentFor(t, ta, "quoted").Style()
	if !style.Italic || style.Fg != types.QuoteFg {
		t.Errorf("blockquote style = %+v", style)
	}
}

func TestParse_Table(t *testing.T) {
	ta := mustParse(t, "| a | b |\n|---|---|\n| 1 | 2 |", nil)
	text := ta.String()
	if !strings.Contains(text, "a | b") || !strings.Contains(text, "1 | 2") {
		t.Errorf("table = %q", text)
	}
	style, _ := segmentFor(t, ta, "a | b").Style()
	if !style.Code {
		t.Errorf("table style = %+v, want code", style)
	}
}

func TestParse_CodeBlockStyle(t *testing.T) {
	ta := mustParse(t, "intro\n\n```\nline1\n\tline2\n```", nil)
	if got := ta.String(); got != "intro\n\nline1\n    line2" {
		t.Errorf("String() = %q", got)
	}
	style, _ := segmentFor(t, ta, "line1").Style()
	if !style.Code || !style.Block || style.Bg != types.CodeBg {
		t.Errorf("code block style = %+v", style)
	}
}

func TestParse_Contiguous(t *testing.T) {
	md := "# Title\n\nSome **bold**, *italic* and `code`.\n\n- one\n- [two](https://x.y)\n\n> quote\n\n| h |\n|---|\n| v |"
	ta := mustParse(t, md, nil)

	offset := 0
	for i, s := range ta.Segments() {
		if s.Range().Start != offset {
			t.Fatalf("segment %d starts at %d, want %d", i, s.Range().Start, offset)
		}
		offset = s.Range().End
	}
	if offset != len(ta.String()) {
		t.Errorf("last end %d != len %d", offset, len(ta.String()))
	}
}
