package parser

import (
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/ogtext-go/internal/converter"
	"github.com/riverfjs/ogtext-go/internal/textarea"
	"github.com/riverfjs/ogtext-go/internal/types"
)

// StandardOptions is the goldmark configuration used for conversion.
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM,            // tables, strikethrough, task lists, autolinks
		extension.DefinitionList,
		extension.Footnote,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
}

// Parse parses markdown and appends its text as segments to a new TextArea.
func Parse(markdown string, config *types.RenderConfig) (*textarea.TextArea, error) {
	area := textarea.New()
	if err := ParseInto(area, markdown, config); err != nil {
		return nil, err
	}
	return area, nil
}

// ParseInto appends the segments of markdown to area. On error area holds
// the segments appended before the failure.
func ParseInto(area *textarea.TextArea, markdown string, config *types.RenderConfig) error {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	source := []byte(markdown)
	node := ParseAST(source)

	walker := converter.NewEventWalker(source, area, config)
	if err := ast.Walk(node, walker.Walk); err != nil {
		return errors.Wrap(err, "walk markdown")
	}
	_, err := walker.Result()
	return err
}

// ParseAST parses source into a goldmark AST without walking it.
func ParseAST(source []byte) ast.Node {
	md := goldmark.New(StandardOptions...)
	return md.Parser().Parse(text.NewReader(source))
}
