// Package htmlfmt pretty-prints HTML fragments. Rendered example markup is
// parsed with golang.org/x/net/html and re-emitted with two-space
// indentation so built artifacts diff cleanly between runs.
package htmlfmt

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const indentUnit = "  "

// voidElements never carry a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements keep their text content byte-for-byte.
var rawTextElements = map[string]bool{
	"script": true, "style": true, "pre": true, "textarea": true,
}

// Pretty formats an HTML fragment with two-space indentation. Text content
// is preserved; surrounding inter-tag whitespace is normalized. The result
// ends with a newline.
func Pretty(markup string) (string, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return "", fmt.Errorf("parsing markup: %w", err)
	}

	var out strings.Builder
	for _, node := range nodes {
		writeNode(&out, node, 0)
	}

	result := out.String()
	if result != "" && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	return result, nil
}

func writeNode(out *strings.Builder, node *html.Node, depth int) {
	switch node.Type {
	case html.TextNode:
		text := strings.TrimSpace(node.Data)
		if text == "" {
			return
		}
		writeIndent(out, depth)
		out.WriteString(html.EscapeString(text))
		out.WriteString("\n")
	case html.CommentNode:
		writeIndent(out, depth)
		out.WriteString("<!--")
		out.WriteString(node.Data)
		out.WriteString("-->\n")
	case html.ElementNode:
		writeElement(out, node, depth)
	default:
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			writeNode(out, child, depth)
		}
	}
}

func writeElement(out *strings.Builder, node *html.Node, depth int) {
	writeIndent(out, depth)
	out.WriteString("<")
	out.WriteString(node.Data)
	for _, attr := range node.Attr {
		out.WriteString(" ")
		out.WriteString(attr.Key)
		out.WriteString(`="`)
		out.WriteString(html.EscapeString(attr.Val))
		out.WriteString(`"`)
	}
	out.WriteString(">")

	if voidElements[node.Data] {
		out.WriteString("\n")
		return
	}

	if rawTextElements[node.Data] {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				out.WriteString(child.Data)
			}
		}
		out.WriteString("</")
		out.WriteString(node.Data)
		out.WriteString(">\n")
		return
	}

	if text, inline := inlineText(node); inline {
		out.WriteString(html.EscapeString(text))
		out.WriteString("</")
		out.WriteString(node.Data)
		out.WriteString(">\n")
		return
	}

	out.WriteString("\n")
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeNode(out, child, depth+1)
	}
	writeIndent(out, depth)
	out.WriteString("</")
	out.WriteString(node.Data)
	out.WriteString(">\n")
}

// inlineText reports whether the element holds only text and can be emitted
// on a single line.
func inlineText(node *html.Node) (string, bool) {
	var text strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.TextNode {
			return "", false
		}
		text.WriteString(child.Data)
	}

	return strings.TrimSpace(text.String()), true
}

func writeIndent(out *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		out.WriteString(indentUnit)
	}
}
