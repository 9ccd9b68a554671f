// Package mcpserver exposes the table parser as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/DemonDamon/tableparser-go/pkg/tableparser"
	"github.com/DemonDamon/tableparser-go/pkg/tableparser/models"
)

var log = logrus.WithField("component", "mcpserver")

// New builds the MCP server with all tools registered.
func New() *server.MCPServer {
	s := server.NewMCPServer("tableparser", "1.0.0", server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("parse_table",
		mcp.WithDescription("Parse a spreadsheet file into Markdown or HTML. "+
			"The auto format picks the encoding by complexity analysis."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the .xlsx/.xlsm/.xls/.csv file")),
		mcp.WithString("output_format", mcp.Description("auto, markdown or html (default auto)")),
		mcp.WithNumber("chunk_rows", mcp.Description("Max data rows per HTML table fragment, 0 = unbounded (default 256)")),
		mcp.WithBoolean("preserve_styles", mcp.Description("Emit inline cell styles in HTML output")),
		mcp.WithBoolean("include_empty_rows", mcp.Description("Keep rows whose cells are all blank")),
		mcp.WithBoolean("show_formulas", mcp.Description("Render formula text instead of cached results")),
	), handleParseTable)

	s.AddTool(mcp.NewTool("analyze_complexity",
		mcp.WithDescription("Score the structural complexity of a spreadsheet without rendering it."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the spreadsheet file")),
	), handleAnalyzeComplexity)

	s.AddTool(mcp.NewTool("preview_table",
		mcp.WithDescription("Return a bounded excerpt of every sheet."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the spreadsheet file")),
		mcp.WithNumber("max_rows", mcp.Description("Max preview rows per sheet (default 10)")),
		mcp.WithNumber("max_cols", mcp.Description("Max preview columns per sheet (default 10)")),
	), handlePreviewTable)

	s.AddTool(mcp.NewTool("batch_parse",
		mcp.WithDescription("Parse multiple spreadsheet files in parallel. Failures are isolated per file."),
		mcp.WithArray("file_paths", mcp.Required(), mcp.Description("Paths to the spreadsheet files")),
		mcp.WithString("output_format", mcp.Description("auto, markdown or html (default auto)")),
		mcp.WithNumber("workers", mcp.Description("Worker pool size (default 4)")),
	), handleBatchParse)

	return s
}

// ServeStdio runs the server on stdin/stdout until the stream closes.
func ServeStdio() error {
	log.Info("serving MCP tools on stdio")
	return server.ServeStdio(New())
}

func optionsFromRequest(req mcp.CallToolRequest) tableparser.ParseOptions {
	opts := tableparser.DefaultParseOptions()
	opts.OutputFormat = models.OutputFormat(req.GetString("output_format", string(models.FormatAuto)))
	opts.ChunkRows = req.GetInt("chunk_rows", opts.ChunkRows)
	opts.PreserveStyles = req.GetBool("preserve_styles", false)
	opts.IncludeEmptyRows = req.GetBool("include_empty_rows", false)
	opts.ShowFormulas = req.GetBool("show_formulas", false)
	return opts
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func handleParseTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result := tableparser.New().Parse(path, optionsFromRequest(req))
	return jsonResult(result)
}

func handleAnalyzeComplexity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	score, err := tableparser.New().AnalyzeOnly(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(score)
}

func handlePreviewTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	previews, err := tableparser.New().Preview(path, req.GetInt("max_rows", 10), req.GetInt("max_cols", 10))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"success": true, "sheets": previews})
}

func handleBatchParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := req.GetArguments()["file_paths"].([]any)
	if !ok || len(raw) == 0 {
		return mcp.NewToolResultError("file_paths must be a non-empty array of strings"), nil
	}
	paths := make([]string, 0, len(raw))
	for _, v := range raw {
		path, ok := v.(string)
		if !ok {
			return mcp.NewToolResultError("file_paths must contain only strings"), nil
		}
		paths = append(paths, path)
	}

	results := tableparser.ParseBatch(ctx, paths, optionsFromRequest(req), req.GetInt("workers", 0))
	return jsonResult(results)
}
