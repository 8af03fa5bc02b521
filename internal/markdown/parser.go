package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

// Meta is the front matter block of a rendered document.
type Meta struct {
	Title string `yaml:"title"`
	Elder string `yaml:"elder"`
	Date  string `yaml:"date"`
}

// Parser renders caregiver text to HTML. Line breaks are kept as typed
// and raw HTML in the source is escaped.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.TaskList,
				extension.Linkify,
				&frontmatter.Extender{},
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Parse renders a note body.
func (p *Parser) Parse(source []byte) ([]byte, error) {
	out, _, err := p.convert(source, false)
	return out, err
}

// ParseDocument renders source and decodes its front matter, if any.
// A malformed front matter block is an error.
func (p *Parser) ParseDocument(source []byte) ([]byte, Meta, error) {
	return p.convert(source, true)
}

func (p *Parser) convert(source []byte, withMeta bool) ([]byte, Meta, error) {
	var (
		buf  bytes.Buffer
		meta Meta
	)
	pc := parser.NewContext()
	if err := p.md.Convert(source, &buf, parser.WithContext(pc)); err != nil {
		return nil, meta, fmt.Errorf("render markdown: %w", err)
	}
	if !withMeta {
		return buf.Bytes(), meta, nil
	}
	if fm := frontmatter.Get(pc); fm != nil {
		if err := fm.Decode(&meta); err != nil {
			return nil, meta, fmt.Errorf("decode front matter: %w", err)
		}
	}
	return buf.Bytes(), meta, nil
}
