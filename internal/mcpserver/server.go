// Package mcpserver exposes the eclipse catalog as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jwulff/eclipse/internal/eclipse"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// maxListed caps the records returned by one window query.
const maxListed = 200

// Options are the catalog bounds the tools validate against.
type Options struct {
	DateMin     float64
	DateMax     float64
	WindowWidth float64
	Logger      *slog.Logger
}

// Server serves eclipses_in_window and eclipse_detail.
type Server struct {
	catalog *eclipse.Catalog
	opts    Options
	log     *slog.Logger
	mcp     *server.MCPServer
}

// NewServer registers the tools over catalog.
func NewServer(catalog *eclipse.Catalog, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		catalog: catalog,
		opts:    opts,
		log:     log,
		mcp:     server.NewMCPServer("eclipse", Version, server.WithToolCapabilities(false)),
	}
	s.registerTools()
	return s
}

// ServeStdio blocks serving MCP on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("mcp server starting", slog.Int("records", s.catalog.Len()))
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("eclipses_in_window",
		mcp.WithDescription("List the solar eclipses whose year falls in [start_year, start_year+width], both ends inclusive, with per-category counts."),
		mcp.WithNumber("start_year", mcp.Required(), mcp.Description("First year of the window")),
		mcp.WithNumber("width", mcp.Description("Window width in years (default from config)")),
	), s.handleInWindow)

	s.mcp.AddTool(mcp.NewTool("eclipse_detail",
		mcp.WithDescription("Show the detail fields of one eclipse by its catalog ID."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Catalog OBJECTID of the eclipse")),
	), s.handleDetail)
}

type eclipseSummary struct {
	ID              int     `json:"id"`
	Category        string  `json:"category"`
	Subtype         string  `json:"subtype"`
	Title           string  `json:"title"`
	Date            string  `json:"date"`
	DurationSeconds float64 `json:"duration_seconds"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
}

type inWindowOutput struct {
	Window    string           `json:"window"`
	Counts    map[string]int   `json:"counts"`
	Total     int              `json:"total"`
	Truncated bool             `json:"truncated,omitempty"`
	Eclipses  []eclipseSummary `json:"eclipses"`
}

type detailOutput struct {
	ID     int               `json:"id"`
	Title  string            `json:"title"`
	Fields map[string]string `json:"fields"`
	Order  []string          `json:"order"`
	Camera [2]float64        `json:"camera"` // lon, lat the globe flies to
}

func summarize(r eclipse.Record) eclipseSummary {
	return eclipseSummary{
		ID:              r.ID,
		Category:        r.Category.String(),
		Subtype:         r.Subtype,
		Title:           eclipse.Title(r.Subtype),
		Date:            r.Date.UTC().Format(time.DateOnly),
		DurationSeconds: r.DurationSeconds,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
	}
}

func (s *Server) handleInWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := req.RequireFloat("start_year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	width := req.GetFloat("width", s.opts.WindowWidth)
	if width < 0 {
		return mcp.NewToolResultError("width must not be negative"), nil
	}
	if start+width < s.opts.DateMin || start > s.opts.DateMax {
		return mcp.NewToolResultError(fmt.Sprintf("window %.0f–%.0f is outside the catalog range %.0f–%.0f",
			start, start+width, s.opts.DateMin, s.opts.DateMax)), nil
	}

	w := eclipse.Window{StartYear: start, Width: width}
	subset := eclipse.Resolve(s.catalog.Records(), w)
	groups := eclipse.Aggregate(subset)

	out := inWindowOutput{
		Window: w.Label(),
		Counts: map[string]int{},
		Total:  groups.Len(),
	}
	for _, c := range eclipse.Categories {
		out.Counts[c.String()] = len(groups.Group(c))
	}
	for _, r := range subset {
		if !r.Category.Classified() {
			continue
		}
		if len(out.Eclipses) == maxListed {
			out.Truncated = true
			break
		}
		out.Eclipses = append(out.Eclipses, summarize(r))
	}
	s.log.Debug("tool eclipses_in_window", slog.String("window", out.Window), slog.Int("total", out.Total))
	return jsonResult(out)
}

func (s *Server) handleDetail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, ok := s.catalog.ByID(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no eclipse with id %d", id)), nil
	}

	d := eclipse.NewDetail(r)
	cam := eclipse.CameraFor(r)
	out := detailOutput{
		ID:     r.ID,
		Title:  d.Title,
		Fields: make(map[string]string, len(d.Fields)),
		Camera: [2]float64{cam.Center.Lon(), cam.Center.Lat()},
	}
	for _, f := range d.Fields {
		out.Fields[f.Label] = f.Value
		out.Order = append(out.Order, f.Label)
	}
	return jsonResult(out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
