package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCollectionsResource(srv, svc)
	registerCollectionTemplate(srv, svc)
}

func registerCollectionsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"bizdesk://collections",
		"Collections",
		mcp.WithResourceDescription("Known collections with their id field and record counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListCollections(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"collections": summaries,
			"count":       len(summaries),
		})
	})
}

func registerCollectionTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"bizdesk://collections/{key}",
		"Collection Records",
		mcp.WithTemplateDescription("Records stored under a collection key."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		key := templateArg(request.Params.Arguments["key"])
		if key == "" {
			return nil, fmt.Errorf("collection key is required")
		}
		list, err := svc.ListRecords(ctx, key)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, list)
	})
}

// templateArg reads a URI template variable, which may arrive as a string or
// a single-element list.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
