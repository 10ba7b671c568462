package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/crosswalk/pkg/kit"
	"github.com/hazyhaar/crosswalk/pkg/match"
)

// Shared request/response types used by both HTTP and MCP transports.

type filterReq struct {
	Term      string
	Threshold float64
}

type filterResponse struct {
	Results []match.FilterResult `json:"results"`
	Total   int                  `json:"total"`
}

type suggestReq struct {
	Term     string
	Limit    int
	MinScore float64
}

type suggestResponse struct {
	Names []string `json:"names"`
}

type assignReq struct {
	RawID     int    `json:"raw_id"`
	CleanName string `json:"clean_name"`
}

type assignBulkReq struct {
	RawIDs    []int  `json:"raw_ids"`
	CleanName string `json:"clean_name"`
}

type assignResponse struct {
	Assigned        int     `json:"assigned"`
	CompletionRatio float64 `json:"completion_ratio"`
}

type importReq struct {
	Lines []string
}

type importResponse struct {
	Imported int `json:"imported"`
}

type addCleanResponse struct {
	Added int `json:"added"`
}

type statusResponse struct {
	RawInputs       int     `json:"raw_inputs"`
	CleanNames      int     `json:"clean_names"`
	Matched         int     `json:"matched"`
	CompletionRatio float64 `json:"completion_ratio"`
	LastUpdated     string  `json:"last_updated,omitempty"`
}

// Endpoints are the transport-agnostic session operations, one kit.Endpoint
// per operation. Every endpoint resolves the caller's session from the
// user id on the context.
type Endpoints struct {
	FilterMatches kit.Endpoint
	SuggestNames  kit.Endpoint
	AssignOne     kit.Endpoint
	AssignBulk    kit.Endpoint
	ImportRaw     kit.Endpoint
	AddClean      kit.Endpoint
	Status        kit.Endpoint
	SaveSession   kit.Endpoint
	LoadSession   kit.Endpoint
}

// NewEndpoints wires the session registry into the endpoint set, with the
// logging middleware applied to every operation.
func NewEndpoints(sessions *Sessions, logger *slog.Logger) Endpoints {
	wrap := func(name string, e kit.Endpoint) kit.Endpoint {
		return kit.Logging(logger, name)(e)
	}
	return Endpoints{
		FilterMatches: wrap("filter_matches", filterEndpoint(sessions)),
		SuggestNames:  wrap("suggest_names", suggestEndpoint(sessions)),
		AssignOne:     wrap("assign_one", assignOneEndpoint(sessions)),
		AssignBulk:    wrap("assign_bulk", assignBulkEndpoint(sessions)),
		ImportRaw:     wrap("import_raw", importRawEndpoint(sessions)),
		AddClean:      wrap("add_clean", addCleanEndpoint(sessions)),
		Status:        wrap("status", statusEndpoint(sessions)),
		SaveSession:   wrap("save_session", saveEndpoint(sessions)),
		LoadSession:   wrap("load_session", loadEndpoint(sessions)),
	}
}

func sessionFor(sessions *Sessions, ctx context.Context) *match.SessionModel {
	return sessions.ForUser(kit.GetUserID(ctx))
}

func filterEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*filterReq)
		if req.Threshold < 0 || req.Threshold > 1 {
			return nil, fmt.Errorf("%w: threshold %v outside [0,1]", match.ErrInvalidArgument, req.Threshold)
		}
		sess := sessionFor(sessions, ctx)
		results := sess.Filter(req.Term, req.Threshold)
		return filterResponse{Results: results, Total: len(results)}, nil
	}
}

func suggestEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*suggestReq)
		sess := sessionFor(sessions, ctx)
		return suggestResponse{Names: sess.Suggest(req.Term, req.Limit, req.MinScore)}, nil
	}
}

func assignOneEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*assignReq)
		sess := sessionFor(sessions, ctx)
		if err := sess.AssignOne(req.RawID, req.CleanName); err != nil {
			return nil, err
		}
		return assignResponse{Assigned: 1, CompletionRatio: sess.CompletionRatio()}, nil
	}
}

func assignBulkEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*assignBulkReq)
		sess := sessionFor(sessions, ctx)
		if err := sess.AssignBulk(req.RawIDs, req.CleanName); err != nil {
			return nil, err
		}
		return assignResponse{Assigned: len(req.RawIDs), CompletionRatio: sess.CompletionRatio()}, nil
	}
}

func importRawEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*importReq)
		sess := sessionFor(sessions, ctx)
		return importResponse{Imported: sess.ImportRaw(req.Lines)}, nil
	}
}

func addCleanEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*importReq)
		sess := sessionFor(sessions, ctx)
		return addCleanResponse{Added: sess.AddCleanNames(req.Lines)}, nil
	}
}

func statusEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		sess := sessionFor(sessions, ctx)
		return sessionStatus(sess), nil
	}
}

func saveEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		sess := sessionFor(sessions, ctx)
		if err := sess.Save(ctx); err != nil {
			return nil, err
		}
		return sessionStatus(sess), nil
	}
}

func loadEndpoint(sessions *Sessions) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		sess := sessionFor(sessions, ctx)
		if err := sess.Load(ctx); err != nil {
			return nil, err
		}
		return sessionStatus(sess), nil
	}
}

func sessionStatus(sess *match.SessionModel) statusResponse {
	resp := statusResponse{
		RawInputs:       len(sess.RawInputs()),
		CleanNames:      len(sess.CleanNames()),
		Matched:         len(sess.Matches()),
		CompletionRatio: sess.CompletionRatio(),
	}
	if t := sess.LastUpdated(); !t.IsZero() {
		resp.LastUpdated = t.Format(time.RFC3339)
	}
	return resp
}
