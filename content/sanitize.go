// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/sanitize.go
// Summary: Input boundary for section bodies.
// Markdown and HTML are rendered, sanitized and flattened into plain-text
// paragraphs before any panel sees them.

package content

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Bullet prefixes flattened list items.
const Bullet = "• "

var (
	markdown     = goldmark.New(goldmark.WithExtensions(extension.GFM))
	bodyPolicy   = newBodyPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Markdown renders src and returns its sanitized paragraphs.
func Markdown(src string) ([]string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", ErrInvalidPage, err)
	}
	return HTML(buf.String()), nil
}

// HTML sanitizes src and flattens it into paragraphs. Script and style
// content is dropped.
func HTML(src string) []string {
	clean := bodyPolicy.Sanitize(src)
	doc, err := html.Parse(strings.NewReader(clean))
	if err != nil {
		// html.Parse only fails on reader errors.
		return Text(strictPolicy.Sanitize(src))
	}
	var f flattener
	f.walk(doc)
	f.flush()
	return f.paras
}

// Text splits plain text into paragraphs on blank lines. Markup is not
// interpreted, so it is stripped rather than shown.
func Text(src string) []string {
	var paras []string
	for _, chunk := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n\n") {
		if p := Plain(chunk); p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// Plain reduces s to a single line of text with all markup removed.
func Plain(s string) string {
	return collapse(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func collapse(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// MediaURL accepts absolute http(s) URLs and relative paths. Anything else,
// including javascript: and data: URLs, is rejected.
func MediaURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return "", false
		}
	case "":
		if u.Host != "" || u.Path == "" || u.Opaque != "" {
			return "", false
		}
	default:
		return "", false
	}
	return u.String(), true
}

// Wrap word-wraps paragraphs to width columns. Words longer than width are
// broken. A blank row separates paragraphs.
func Wrap(paras []string, width int) []string {
	if width < 1 {
		width = 1
	}
	var rows []string
	for i, p := range paras {
		if i > 0 {
			rows = append(rows, "")
		}
		wrapped := wrap.String(wordwrap.String(p, width), width)
		for _, line := range strings.Split(wrapped, "\n") {
			rows = append(rows, strings.TrimRight(line, " "))
		}
	}
	return rows
}

type flattener struct {
	paras  []string
	cur    strings.Builder
	prefix string
}

func (f *flattener) flush() {
	text := collapse(f.cur.String())
	f.cur.Reset()
	if text == "" {
		return
	}
	f.paras = append(f.paras, f.prefix+text)
	f.prefix = ""
}

func (f *flattener) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		f.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head:
			return
		case atom.Br:
			f.flush()
			return
		case atom.Img:
			if alt := attr(n, "alt"); alt != "" {
				f.cur.WriteString(" [" + alt + "] ")
			}
			return
		case atom.Td, atom.Th:
			f.cur.WriteString(" ")
		}
	}

	block := n.Type == html.ElementNode && isBlock(n.DataAtom)
	if block {
		f.flush()
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Li {
		f.prefix = Bullet
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		f.walk(c)
	}
	if block {
		f.flush()
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Li, atom.Blockquote, atom.Pre, atom.Table, atom.Tr,
		atom.Figure, atom.Figcaption, atom.Hr, atom.Section, atom.Article:
		return true
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
