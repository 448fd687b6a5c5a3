package pptx

import (
	"strconv"

	"github.com/antchfx/xmlquery"

	"github.com/sanalabo-jp/script-to-slides/colorspace"
)

// Namespace prefixes inside pptx parts vary between producers, so all
// queries match on local-name() rather than prefixed tags.

func findOne(n *xmlquery.Node, local string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	return xmlquery.FindOne(n, ".//*[local-name()='"+local+"']")
}

func findAll(n *xmlquery.Node, local string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	return xmlquery.Find(n, ".//*[local-name()='"+local+"']")
}

// childByName returns the first direct child element with the given local
// name, without descending further.
func childByName(n *xmlquery.Node, local string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

// colorModifiers collects the OpenXML transform children of a color element
// (<a:lumMod val="75000"/> etc) in document order. Children without a
// numeric val attribute are skipped.
func colorModifiers(colorNode *xmlquery.Node) []colorspace.Modifier {
	if colorNode == nil {
		return nil
	}
	var mods []colorspace.Modifier
	for c := colorNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		val, err := strconv.Atoi(c.SelectAttr("val"))
		if err != nil {
			continue
		}
		mods = append(mods, colorspace.Modifier{Name: c.Data, Val: val})
	}
	return mods
}
