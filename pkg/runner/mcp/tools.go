package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListCollectionsTool(srv, svc)
	registerListRecordsTool(srv, svc)
	registerUpsertRecordTool(srv, svc)
	registerRemoveRecordTool(srv, svc)
	registerSearchRecordsTool(srv, svc)
	registerRemainingDaysTool(srv, svc)
}

func registerListCollectionsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_collections",
		mcp.WithDescription("List the known collections with their id field and record counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries, err := svc.ListCollections(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"collections": summaries,
			"count":       len(summaries),
		})
	})
}

func registerListRecordsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_records",
		mcp.WithDescription("List every record stored under a collection key. Known collections are seeded with their defaults on first use."),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Collection key such as Clients, Employees or @domains_list."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := request.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		list, err := svc.ListRecords(ctx, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(list)
	})
}

func registerUpsertRecordTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"upsert_record",
		mcp.WithDescription("Create a record, or update the record whose id field matches. Omit the id field to create one. Dated records get their Remaining Days recomputed."),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Collection key."),
		),
		mcp.WithObject("fields",
			mcp.Required(),
			mcp.Description("Field names and string values to store, e.g. {\"Client Name\": \"Acme\"}."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Key    string                 `json:"key"`
			Fields map[string]interface{} `json:"fields"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		res, err := svc.UpsertRecord(ctx, args.Key, args.Fields)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerRemoveRecordTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_record",
		mcp.WithDescription("Remove a record by id. Removing an unknown id changes nothing."),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Collection key."),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Value of the collection's id field."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := request.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.RemoveRecord(ctx, key, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerSearchRecordsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_records",
		mcp.WithDescription("Case-insensitive substring search over a collection."),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Collection key."),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to look for. Blank returns everything."),
		),
		mcp.WithArray("fields",
			mcp.Description("Fields to search; defaults to the collection's search fields."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records to return."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Key    string   `json:"key"`
			Query  string   `json:"query"`
			Fields []string `json:"fields"`
			Limit  int      `json:"limit"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		list, err := svc.SearchRecords(ctx, args.Key, args.Query, args.Fields, args.Limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(list)
	})
}

func registerRemainingDaysTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remaining_days",
		mcp.WithDescription("Count business days (Sundays excluded) from max(today, start) through end."),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Start date, YYYY-MM-DD."),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("End date, YYYY-MM-DD, or a span from start such as 3w or 20d."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start, err := request.RequireString("start")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end, err := request.RequireString("end")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.RemainingDays(start, end, svc.now(), svc.App.Threshold)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func (s *Service) now() time.Time {
	if s.App.Now != nil {
		return s.App.Now()
	}
	return time.Now()
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
