// Package markdown renders post bodies to HTML with goldmark, exposed as a
// templ component. Fenced code blocks get a language badge wrapper so the
// site's tutorial snippets show which language they are in, and link and
// image destinations are sanitized before rendering.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// engine is stateless after construction and safe for concurrent use.
var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
		extension.Footnote,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(
			util.Prioritized(&safeLinkTransformer{}, 500),
		),
	),
	goldmark.WithRendererOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&codeBlockRenderer{}, 200),
		),
	),
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := Render(&buf, content); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of md to w.
func Render(w io.Writer, md string) error {
	return engine.Convert([]byte(md), w)
}

// codeBlockRenderer renders fenced code blocks with a language badge:
//
//	<div class="code-block-wrapper"><span class="code-lang code-lang-go">go</span>
//	<pre class="code-block"><code class="language-go">...</code></pre></div>
//
// Blocks without an info string render as a bare <pre><code>.
type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(source))
	if entering {
		if lang != "" {
			escapedLang := html.EscapeString(lang)
			w.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + escapedLang + `">` + escapedLang + `</span>`)
			w.WriteString(`<pre class="code-block"><code class="language-` + escapedLang + `">`)
		} else {
			w.WriteString(`<pre class="code-block"><code>`)
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			w.WriteString(html.EscapeString(string(line.Value(source))))
		}
		return ast.WalkContinue, nil
	}
	w.WriteString("</code></pre>")
	if lang != "" {
		w.WriteString("</div>")
	}
	return ast.WalkContinue, nil
}

// safeLinkTransformer rewrites link and image destinations through SafeURL
// so only http(s), mailto, tel, and site-relative targets survive.
type safeLinkTransformer struct{}

func (t *safeLinkTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = []byte(SafeURL(string(v.Destination)))
		case *ast.Image:
			v.Destination = []byte(SafeURL(string(v.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

// SafeURL validates a URL for use as a link or image destination. It
// returns the URL unchanged when allowed and "" otherwise. Relative paths
// and fragments are allowed; absolute URLs must be http, https, mailto,
// or tel.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}
