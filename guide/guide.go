// Package guide provides the embedded help pages behind "sift guide" and
// the sift_guide MCP tool.
package guide

import (
	"embed"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// Default is the page shown when no topic is given.
const Default = "guide"

// Name returns the page name used for a topic, mapping "" to Default.
func Name(topic string) string {
	if topic == "" {
		return Default
	}
	return topic
}

// Get returns the content of a guide page by name.
func Get(name string) (string, error) {
	data, err := files.ReadFile(Name(name) + ".md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the topic pages (without the .md suffix), sorted. The
// default page is not listed.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name != Default {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
