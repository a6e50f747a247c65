package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"net/url"
	"strings"
)

const (
	AuthorName  = "Valve Corporation"
	AuthorEmail = "support@steampowered.com"
	Rights      = "Valve Corporation"
)

type Generator struct {
	name string
}

func NewGenerator(name string) *Generator {
	return &Generator{name: name}
}

// Run serializes items, given newest first, into an RSS 2.0 document that
// lists them oldest first. The output depends on its arguments only.
func (g *Generator) Run(meta Metadata, items []Item) ([]byte, error) {
	if meta.Title == "" || meta.Link == "" {
		return nil, fmt.Errorf("feed metadata requires title and link")
	}

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", meta.Title, 4)
	g.writeElement(&buf, "link", meta.ID, 4)
	g.writeElement(&buf, "description", meta.Description, 4)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(meta.Link)))
	g.writeElement(&buf, "language", meta.Language, 4)

	if len(items) > 0 {
		g.writeElement(&buf, "lastBuildDate", FormatPubDate(items[0].PublishedAt), 4)
	}
	g.writeElement(&buf, "generator", g.name, 4)

	for i := len(items) - 1; i >= 0; i-- {
		g.writeItem(&buf, meta, items[i])
	}

	buf.WriteString("  </channel>\n</rss>\n")

	return buf.Bytes(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, meta Metadata, item Item) {
	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"false\">")
	xml.EscapeText(buf, []byte(item.GUID))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", item.Headline, 6)

	link := ItemLink(item, meta)
	g.writeElement(buf, "link", link, 6)
	buf.WriteString(fmt.Sprintf("      <atom:link href=\"%s\" rel=\"alternate\" type=\"text/html\" hreflang=\"%s\" title=\"%s\" />\n",
		html.EscapeString(link),
		html.EscapeString(meta.Language),
		html.EscapeString(item.Headline)))

	g.writeElement(buf, "pubDate", FormatPubDate(item.PublishedAt), 6)
	g.writeElement(buf, "author", fmt.Sprintf("%s (%s)", AuthorEmail, AuthorName), 6)

	buf.WriteString("      <content:encoded><![CDATA[")
	buf.WriteString(strings.ReplaceAll(item.RenderedBody(), "]]>", "]]]]><![CDATA[>"))
	buf.WriteString("]]></content:encoded>\n")

	g.writeElement(buf, "dc:rights", Rights, 6)

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// ItemLink points news at their own page. Update notices have no page of
// their own and link to the shared updates index in the feed's language.
func ItemLink(item Item, meta Metadata) string {
	if item.Kind == KindNews {
		return item.URL
	}

	lang := meta.LanguageName
	if lang == "" {
		lang = meta.Language
	}

	u, err := url.Parse(item.URL)
	if err != nil {
		return item.URL + "?l=" + url.QueryEscape(lang)
	}
	q := u.Query()
	q.Set("l", lang)
	u.RawQuery = q.Encode()

	return u.String()
}
