package api

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/crosswalk/pkg/kit"
	"github.com/hazyhaar/crosswalk/pkg/match"
)

// RegisterMCPTools registers the crosswalk MCP tools on the server. Every
// tool accepts an optional "user" argument selecting the session; absent it
// targets the anonymous session.
func RegisterMCPTools(srv *server.MCPServer, endpoints Endpoints) {
	registerFilterInputs(srv, endpoints)
	registerSuggestNames(srv, endpoints)
	registerAssignMatch(srv, endpoints)
	registerAssignBulk(srv, endpoints)
	registerSessionStatus(srv, endpoints)
}

// userEnrich builds the context enrichment stamping the caller id.
func userEnrich(args map[string]any) func(context.Context) context.Context {
	user, _ := args["user"].(string)
	if user == "" {
		user = AnonymousUser
	}
	return func(ctx context.Context) context.Context {
		return kit.WithUserID(ctx, user)
	}
}

func registerFilterInputs(srv *server.MCPServer, endpoints Endpoints) {
	tool := mcp.NewTool("filter_inputs",
		mcp.WithDescription("Filter and rank the session's raw facility names against a search term by substring containment and similarity score."),
		mcp.WithString("term", mcp.Description("Search term; empty returns every raw input unranked")),
		mcp.WithNumber("threshold", mcp.Description("Similarity cutoff in [0,1] for fuzzy inclusion (default 0.65)")),
		mcp.WithString("user", mcp.Description("Session owner (default anonymous)")),
	)

	kit.RegisterMCPTool(srv, tool, endpoints.FilterMatches, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		term, _ := args["term"].(string)
		threshold := DefaultThreshold
		if v, ok := args["threshold"].(float64); ok {
			threshold = v
		}
		return &kit.MCPDecodeResult{
			Request:   &filterReq{Term: term, Threshold: threshold},
			EnrichCtx: userEnrich(args),
		}, nil
	})
}

func registerSuggestNames(srv *server.MCPServer, endpoints Endpoints) {
	tool := mcp.NewTool("suggest_names",
		mcp.WithDescription("Rank the session's canonical clean names as assignment candidates for a term."),
		mcp.WithString("term", mcp.Description("Search term; empty browses the list lexicographically")),
		mcp.WithNumber("limit", mcp.Description("Maximum ranked results (default 20)")),
		mcp.WithNumber("min_score", mcp.Description("Minimum score for ranked results (default 0.3)")),
		mcp.WithString("user", mcp.Description("Session owner (default anonymous)")),
	)

	kit.RegisterMCPTool(srv, tool, endpoints.SuggestNames, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		term, _ := args["term"].(string)
		r := &suggestReq{Term: term, Limit: match.DefaultSuggestLimit, MinScore: match.DefaultSuggestMinScore}
		if v, ok := args["limit"].(float64); ok {
			r.Limit = int(v)
		}
		if v, ok := args["min_score"].(float64); ok {
			r.MinScore = v
		}
		return &kit.MCPDecodeResult{Request: r, EnrichCtx: userEnrich(args)}, nil
	})
}

func registerAssignMatch(srv *server.MCPServer, endpoints Endpoints) {
	tool := mcp.NewTool("assign_match",
		mcp.WithDescription("Record a user-confirmed assignment of one raw input to a clean name."),
		mcp.WithNumber("raw_id", mcp.Required(), mcp.Description("Raw input id")),
		mcp.WithString("clean_name", mcp.Required(), mcp.Description("Clean name to assign; must not be blank")),
		mcp.WithString("user", mcp.Description("Session owner (default anonymous)")),
	)

	kit.RegisterMCPTool(srv, tool, endpoints.AssignOne, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		rawID, ok := args["raw_id"].(float64)
		if !ok {
			return nil, fmt.Errorf("raw_id must be a number")
		}
		name, _ := args["clean_name"].(string)
		return &kit.MCPDecodeResult{
			Request:   &assignReq{RawID: int(rawID), CleanName: name},
			EnrichCtx: userEnrich(args),
		}, nil
	})
}

func registerAssignBulk(srv *server.MCPServer, endpoints Endpoints) {
	tool := mcp.NewTool("assign_bulk",
		mcp.WithDescription("Assign one clean name to a caller-supplied set of raw input ids, typically the currently visible filtered set."),
		mcp.WithArray("raw_ids", mcp.Required(), mcp.Description("Raw input ids to assign")),
		mcp.WithString("clean_name", mcp.Required(), mcp.Description("Clean name to assign; must not be blank")),
		mcp.WithString("user", mcp.Description("Session owner (default anonymous)")),
	)

	kit.RegisterMCPTool(srv, tool, endpoints.AssignBulk, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		rawIDs, ok := args["raw_ids"].([]any)
		if !ok {
			return nil, fmt.Errorf("raw_ids must be an array of numbers")
		}
		ids := make([]int, 0, len(rawIDs))
		for _, v := range rawIDs {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("raw_ids must be an array of numbers")
			}
			ids = append(ids, int(f))
		}
		name, _ := args["clean_name"].(string)
		return &kit.MCPDecodeResult{
			Request:   &assignBulkReq{RawIDs: ids, CleanName: name},
			EnrichCtx: userEnrich(args),
		}, nil
	})
}

func registerSessionStatus(srv *server.MCPServer, endpoints Endpoints) {
	tool := mcp.NewTool("session_status",
		mcp.WithDescription("Report the session's counts and completion ratio."),
		mcp.WithString("user", mcp.Description("Session owner (default anonymous)")),
	)

	kit.RegisterMCPTool(srv, tool, endpoints.Status, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil, EnrichCtx: userEnrich(req.GetArguments())}, nil
	})
}
