package converter

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/ogtext-go/internal/textarea"
	"github.com/riverfjs/ogtext-go/internal/typeface"
	"github.com/riverfjs/ogtext-go/internal/types"
	"github.com/riverfjs/ogtext-go/internal/util"
)

// EventWalker walks a goldmark AST and appends styled segments to a
// TextArea.
type EventWalker struct {
	area   *textarea.TextArea
	source []byte
	config *types.RenderConfig
	code   *typeface.Font // decoded config.CodeFont
	err    error

	scopes   []StyleScope
	trailing int    // newlines at the end of the written text
	written  bool   // anything written yet
	pending  string // list marker written before the item's first text

	// Block-level state
	blockCount int
	listStack  []*int // nil=unordered, *int=ordered(next number)
	itemIndent string
	quoteDepth int

	// Table state
	tableRows   [][]string
	currentRow  []string
	cellParts   []string
	inTableCell bool
}

// NewEventWalker creates an EventWalker appending to area.
func NewEventWalker(source []byte, area *textarea.TextArea, config *types.RenderConfig) *EventWalker {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	if config.MarkdownSymbol == nil {
		cfg := *config
		cfg.MarkdownSymbol = types.DefaultSymbol()
		config = &cfg
	}
	return &EventWalker{
		area:      area,
		source:    source,
		config:    config,
		scopes:    make([]StyleScope, 0),
		listStack: make([]*int, 0),
	}
}

// Walk visits one AST node.
func (w *EventWalker) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	status := w.visit(node, entering)
	if w.err != nil {
		return ast.WalkStop, w.err
	}
	return status, nil
}

func (w *EventWalker) visit(node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	// --- Inline elements ---
	case *ast.Text:
		if entering {
			w.onText(n.Segment, n.SoftLineBreak(), n.HardLineBreak())
		}

	case *ast.String:
		if entering {
			w.onTextString(n.Value)
		}

	case *ast.CodeSpan:
		if entering {
			w.onInlineCode(n)
			return ast.WalkSkipChildren
		}

	case *ast.Emphasis:
		kind, style := "italic", types.StyleItalic
		if n.Level == 2 {
			kind, style = "bold", types.StyleBold
		}
		if entering {
			w.pushScope(kind, style)
		} else {
			w.popScope(kind)
		}

	case *east.Strikethrough:
		if entering {
			w.pushScope("strikethrough", types.Style{Strikethrough: true})
		} else {
			w.popScope("strikethrough")
		}

	// --- Links & Images ---
	case *ast.Link:
		if entering {
			w.pushScope("link", types.StyleLink)
		} else {
			w.popScope("link")
		}

	case *ast.Image:
		if entering {
			w.write(w.config.MarkdownSymbol.Image + " ")
			w.pushScope("image", types.StyleItalic)
		} else {
			w.popScope("image")
		}

	case *ast.AutoLink:
		if entering {
			w.pushScope("link", types.StyleLink)
			w.write(string(n.Label(w.source)))
			w.popScope("link")
			return ast.WalkSkipChildren
		}

	case *ast.RawHTML:
		// Inline HTML is dropped

	// --- Block elements ---
	case *ast.Paragraph:
		if entering {
			w.onStartParagraph()
		} else {
			w.onEndParagraph()
		}

	case *ast.Heading:
		if entering {
			w.ensureBlockSpacing()
			w.pushScope("heading", types.HeadingStyle(n.Level))
		} else {
			w.popScope("heading")
			w.blockCount++
		}

	case *ast.Blockquote:
		if entering {
			w.ensureBlockSpacing()
			w.pushScope("blockquote", types.Style{Italic: true, Fg: types.QuoteFg})
			w.quoteDepth++
		} else {
			w.popScope("blockquote")
			w.quoteDepth--
			w.blockCount++
		}

	case *ast.List:
		if entering {
			w.onStartList(n)
		} else {
			w.onEndList()
		}

	case *ast.ListItem:
		if entering {
			w.onStartItem()
		} else {
			w.onEndItem()
		}

	case *east.TaskCheckBox:
		if entering {
			w.onTaskCheckBox(n.IsChecked)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			w.onCodeBlock(n)
			return ast.WalkSkipChildren
		}

	case *ast.ThematicBreak:
		if entering {
			w.ensureBlockSpacing()
			w.writePlain(w.config.MarkdownSymbol.Rule)
			w.blockCount++
		}

	case *ast.HTMLBlock:
		return ast.WalkSkipChildren

	// --- Table ---
	case *east.Table:
		if entering {
			w.ensureBlockSpacing()
			w.tableRows = make([][]string, 0)
		} else {
			w.onEndTable()
		}

	case *east.TableHeader, *east.TableRow:
		if entering {
			w.currentRow = make([]string, 0)
		} else {
			w.tableRows = append(w.tableRows, w.currentRow)
			w.currentRow = nil
		}

	case *east.TableCell:
		if entering {
			w.cellParts = make([]string, 0)
			w.inTableCell = true
		} else {
			w.currentRow = append(w.currentRow, strings.Join(w.cellParts, ""))
			w.cellParts = nil
			w.inTableCell = false
		}
	}

	return ast.WalkContinue
}

// Result returns the filled TextArea and the first error met while
// appending to it.
func (w *EventWalker) Result() (*textarea.TextArea, error) {
	return w.area, w.err
}

// --- Text handling ---

func (w *EventWalker) onText(seg text.Segment, softBreak bool, hardBreak bool) {
	textContent := string(seg.Value(w.source))

	if w.inTableCell {
		if softBreak {
			textContent += " "
		}
		w.cellParts = append(w.cellParts, textContent)
		return
	}

	switch {
	case hardBreak:
		textContent += "\n"
	case softBreak:
		textContent += " "
	}
	w.write(textContent)
}

func (w *EventWalker) onTextString(value []byte) {
	if w.inTableCell {
		w.cellParts = append(w.cellParts, string(value))
		return
	}
	w.write(string(value))
}

func (w *EventWalker) onInlineCode(n *ast.CodeSpan) {
	code := extractCodeSpanText(n, w.source)
	if w.inTableCell {
		w.cellParts = append(w.cellParts, code)
		return
	}
	w.flushPending()
	w.emit(code, w.withScope("code", types.StyleCode))
}

// --- Paragraph ---

func (w *EventWalker) onStartParagraph() {
	if len(w.listStack) == 0 {
		w.ensureBlockSpacing()
	}
	if w.quoteDepth > 0 {
		w.write(strings.Repeat(w.config.MarkdownSymbol.Quote, w.quoteDepth))
	}
}

func (w *EventWalker) onEndParagraph() {
	if len(w.listStack) == 0 {
		w.blockCount++
	} else if w.trailing == 0 {
		// paragraphs of a loose list item end their own line
		w.writePlain("\n")
	}
}

// --- Code block ---

func (w *EventWalker) onCodeBlock(n ast.Node) {
	parts := make([]string, 0)
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		parts = append(parts, string(line.Value(w.source)))
	}
	rawCode := strings.TrimSuffix(strings.Join(parts, ""), "\n")
	rawCode = util.ExpandTabs(rawCode, w.config.TabWidth)

	w.ensureBlockSpacing()
	w.emit(rawCode, w.withScope("code_block", types.Style{Code: true, Block: true, Bg: types.CodeBg}))
	w.blockCount++
}

// --- Lists ---

func (w *EventWalker) onStartList(n *ast.List) {
	if len(w.listStack) == 0 {
		w.ensureBlockSpacing()
	}
	if n.IsOrdered() {
		start := n.Start
		w.listStack = append(w.listStack, &start)
	} else {
		w.listStack = append(w.listStack, nil)
	}
}

func (w *EventWalker) onStartItem() {
	depth := len(w.listStack)
	indent := strings.Repeat("  ", depth-1)

	// a nested item starts on its own line
	w.flushPending()
	if w.written && w.trailing == 0 {
		w.writePlain("\n")
	}

	w.itemIndent = indent
	if depth == 0 {
		return
	}
	if num := w.listStack[depth-1]; num != nil {
		w.pending = fmt.Sprintf("%s%d. ", indent, *num)
		*num++
	} else {
		w.pending = fmt.Sprintf("%s%s ", indent, w.config.MarkdownSymbol.Bullet)
	}
}

func (w *EventWalker) onEndItem() {
	w.flushPending()
	if w.trailing == 0 {
		w.writePlain("\n")
	}
}

// onTaskCheckBox replaces the bullet that has not been written yet.
func (w *EventWalker) onTaskCheckBox(checked bool) {
	symbol := w.config.MarkdownSymbol.TaskUncompleted
	if checked {
		symbol = w.config.MarkdownSymbol.TaskCompleted
	}
	w.pending = fmt.Sprintf("%s%s ", w.itemIndent, symbol)
}

func (w *EventWalker) onEndList() {
	if len(w.listStack) > 0 {
		w.listStack = w.listStack[:len(w.listStack)-1]
	}
	if len(w.listStack) == 0 {
		w.blockCount++
	}
}

// --- Tables ---

func (w *EventWalker) onEndTable() {
	tableText := formatTable(w.tableRows)
	w.emit(tableText, w.withScope("table", types.StyleCode))
	w.tableRows = nil
	w.blockCount++
}

func formatTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	numCols := 0
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	colWidths := make([]int, numCols)
	for _, row := range rows {
		for i, cell := range row {
			if w := util.DisplayWidth(cell); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	var lines []string
	for rowIdx, row := range rows {
		cells := make([]string, numCols)
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = util.PadRight(cell, colWidths[i])
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " | "), " "))

		if rowIdx == 0 && len(rows) > 1 {
			sepCells := make([]string, numCols)
			for i := 0; i < numCols; i++ {
				sepCells[i] = strings.Repeat("-", colWidths[i])
			}
			lines = append(lines, strings.Join(sepCells, "-+-"))
		}
	}

	return strings.Join(lines, "\n")
}

// --- Scope helpers ---

func (w *EventWalker) pushScope(kind string, style types.Style) {
	w.scopes = append(w.scopes, StyleScope{Kind: kind, Apply: overlay(style)})
}

func (w *EventWalker) popScope(kind string) {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if w.scopes[i].Kind == kind {
			w.scopes = append(w.scopes[:i], w.scopes[i+1:]...)
			return
		}
	}
}

// withScope returns the open scopes plus one more, leaving w.scopes alone.
func (w *EventWalker) withScope(kind string, style types.Style) []StyleScope {
	scopes := make([]StyleScope, len(w.scopes), len(w.scopes)+1)
	copy(scopes, w.scopes)
	return append(scopes, StyleScope{Kind: kind, Apply: overlay(style)})
}

// --- Output helpers ---

// write appends text with the open scopes' style.
func (w *EventWalker) write(text string) {
	w.flushPending()
	w.emit(text, w.scopes)
}

// writePlain appends structural text that inherits the default style.
func (w *EventWalker) writePlain(text string) {
	w.emit(text, nil)
}

func (w *EventWalker) flushPending() {
	if w.pending == "" {
		return
	}
	pending := w.pending
	w.pending = ""
	w.writePlain(pending)
}

func (w *EventWalker) emit(text string, scopes []StyleScope) {
	if text == "" || w.err != nil {
		return
	}
	style, ok := compose(scopes)
	if !ok {
		w.area.PushText(text)
	} else {
		var f *typeface.Font
		if style.Code {
			var err error
			if f, err = w.codeFont(); err != nil {
				w.err = err
				return
			}
		}
		w.area.PushFont(text, style, f)
	}

	n := len(text) - len(strings.TrimRight(text, "\n"))
	if n == len(text) {
		w.trailing += n
	} else {
		w.trailing = n
	}
	w.written = true
}

// codeFont decodes config.CodeFont on first use and shares the result
// between all code segments of the walk.
func (w *EventWalker) codeFont() (*typeface.Font, error) {
	if w.config.CodeFont == nil {
		return nil, nil
	}
	if w.code == nil {
		f, err := typeface.Parse(w.config.CodeFont)
		if err != nil {
			return nil, errors.Wrap(err, "code font")
		}
		w.code = f
	}
	return w.code, nil
}

func (w *EventWalker) ensureBlockSpacing() {
	// one blank line between blocks
	if w.blockCount > 0 {
		if needed := 2 - w.trailing; needed > 0 {
			w.writePlain(strings.Repeat("\n", needed))
		}
	}
}

// --- Utilities ---

func extractCodeSpanText(n *ast.CodeSpan, source []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			_, _ = buf.Write(t.Segment.Value(source))
		case *ast.String:
			_, _ = buf.Write(t.Value)
		}
	}
	return buf.String()
}
