// markdown.go renders blog post bodies to HTML for the public blog route.
package main

import (
	"bytes"

	log "github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		log.Warnf("render markdown: %v", err)
		return ""
	}
	return buf.String()
}
