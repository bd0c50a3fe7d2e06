package ui

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"log"
	"strconv"

	"titanicdash/ports"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}
}

// renderTemplate executes a template into a buffer before writing; a failing
// template yields a JSON 500 instead of a partial page
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("Template error for %s: %v", templateName, err)
		c.AbortWithStatusJSON(500, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}

// dataURI embeds a rendered chart in an img src. nil renders as empty.
func dataURI(img *ports.Image) template.URL {
	if img == nil || len(img.Data) == 0 {
		return ""
	}
	return template.URL("data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data))
}

// renderMarkdown converts a dataset description to HTML. Raw HTML in the
// source is dropped.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}
