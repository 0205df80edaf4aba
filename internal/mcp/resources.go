// resources.go exposes the guide pages as MCP resources.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/sift/guide"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const guideURI = "sift://guide/"

func registerResources(s *server.MCPServer) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			guideURI+"{topic}",
			"Guide",
			mcp.WithTemplateDescription("sift guide page by topic"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		readGuide,
	)
}

func readGuide(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	topic := strings.TrimPrefix(req.Params.URI, guideURI)
	content, err := guide.Get(topic)
	if err != nil {
		return nil, fmt.Errorf("guide %q not found", topic)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}, nil
}
