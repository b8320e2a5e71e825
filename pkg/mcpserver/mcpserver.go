// Package mcpserver exposes the Figma pipeline as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	figmamcp "github.com/kataras/figma-mcp"
	"github.com/kataras/figma-mcp/pkg/diag"
	"github.com/kataras/figma-mcp/pkg/figma"
	"github.com/kataras/figma-mcp/pkg/formatter"
	"github.com/kataras/figma-mcp/pkg/imager"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// Name is the server name reported to MCP clients.
const Name = "Figma MCP Server"

// Tool names.
const (
	GetFigmaDataTool   = "get_figma_data"
	DownloadImagesTool = "download_figma_images"
)

const (
	defaultToolTimeout  = 5 * time.Minute
	imageErrorsReported = 10
)

// Config wires the collaborators of a Server.
type Config struct {
	Fetcher     figmamcp.Fetcher
	Images      *imager.Downloader // nil disables download_figma_images
	Format      formatter.Format
	Logger      logrus.FieldLogger
	Diagnostics *diag.Writer

	// Timeout bounds a single tool call. Zero means five minutes.
	Timeout time.Duration
}

// Server holds the MCP server and the tool handlers.
type Server struct {
	cfg Config
	ctx context.Context
	mcp *server.MCPServer
}

// New creates the MCP server and registers its tools.
func New(cfg Config) *Server {
	if cfg.Format == "" {
		cfg.Format = formatter.YAML
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultToolTimeout
	}

	s := &Server{
		cfg: cfg,
		ctx: context.Background(),
		mcp: server.NewMCPServer(Name, figma.Version, server.WithLogging()),
	}
	s.register()
	return s
}

// MCP returns the underlying server, e.g. to wrap it in an SSE transport.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the tools over stdin and stdout until the client disconnects.
// Tool calls run under ctx.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.ctx = ctx
	return server.ServeStdio(s.mcp)
}

func (s *Server) register() {
	getData := mcp.NewTool(GetFigmaDataTool,
		mcp.WithDescription("Get comprehensive Figma file data including layout, content, visuals, and component information"),
		mcp.WithString("fileKey",
			mcp.Required(),
			mcp.Description("The key of the Figma file to fetch, often found in a provided URL like figma.com/(file|design)/<fileKey>/..."),
		),
		mcp.WithString("nodeId",
			mcp.Description("The ID of the node to fetch, often found as URL parameter node-id=<nodeId>, always use if provided. Use format '1234:5678' or 'I5666:180910;1:10515;1:10336' for multiple nodes."),
		),
		mcp.WithNumber("depth",
			mcp.Description("OPTIONAL. Do NOT use unless explicitly requested by the user. Controls how many levels deep to traverse the node tree."),
		),
		mcp.WithBoolean("optimizeForAndroid",
			mcp.Description("OPTIONAL. When true, removes unnecessary data for Android UI development (invisible nodes, slices, design metadata)."),
		),
	)
	s.mcp.AddTool(getData, s.handleGetFigmaData)

	if s.cfg.Images == nil {
		return
	}

	download := mcp.NewTool(DownloadImagesTool,
		mcp.WithDescription("Download SVG and PNG images used in a Figma file based on the IDs of image or icon nodes"),
		mcp.WithString("fileKey",
			mcp.Required(),
			mcp.Description("The key of the Figma file containing the images"),
		),
		mcp.WithString("nodes",
			mcp.Required(),
			mcp.Description(`JSON array of the nodes to fetch as images: [{"nodeId":"1234:5678","imageRef":"...","fileName":"icon.svg"}]. Set imageRef only for image fills.`),
		),
		mcp.WithString("localPath",
			mcp.Required(),
			mcp.Description("The absolute path to the directory where images are stored. Directories are created if needed."),
		),
		mcp.WithString("format",
			mcp.Description("Render format for nodes without imageRef: png, svg, jpg or pdf. Defaults to png."),
		),
		mcp.WithNumber("pngScale",
			mcp.Description("Export scale for raster formats. Defaults to 1."),
		),
	)
	s.mcp.AddTool(download, s.handleDownloadImages)
}

func (s *Server) handleGetFigmaData(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	return toolResult(s.getFigmaData(arguments)), nil
}

func (s *Server) getFigmaData(arguments map[string]interface{}) figmamcp.Result {
	params, err := paramsFromArguments(arguments)
	if err != nil {
		return figmamcp.Result{IsError: true, Text: figmamcp.ErrorPrefix + err.Error()}
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.Timeout)
	defer cancel()

	opts := []figmamcp.Option{figmamcp.WithDiagnostics(s.cfg.Diagnostics)}
	if s.cfg.Logger != nil {
		opts = append(opts, figmamcp.WithLogger(s.cfg.Logger))
	}
	return figmamcp.GetFigmaData(ctx, params, s.cfg.Fetcher, s.cfg.Format, opts...)
}

func (s *Server) handleDownloadImages(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	return toolResult(s.downloadImages(arguments)), nil
}

func (s *Server) downloadImages(arguments map[string]interface{}) figmamcp.Result {
	fail := func(err error) figmamcp.Result {
		if s.cfg.Logger != nil {
			s.cfg.Logger.Errorf("Error downloading images: %v", err)
		}
		return figmamcp.Result{IsError: true, Text: "Error downloading images: " + err.Error()}
	}

	req, err := downloadRequestFromArguments(arguments)
	if err != nil {
		return fail(err)
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.Timeout)
	defer cancel()

	res, err := s.cfg.Images.Download(ctx, req)
	if err != nil {
		return fail(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Downloaded %d of %d images to %s", len(res.Assets), len(req.Nodes), req.OutputDir)
	for _, a := range res.Assets {
		fmt.Fprintf(&b, "\n- %s: %s", a.NodeID, a.FileName)
	}
	for i, e := range res.Errors {
		if i == imageErrorsReported {
			fmt.Fprintf(&b, "\n... and %d more errors", len(res.Errors)-i)
			break
		}
		fmt.Fprintf(&b, "\n! %v", e)
	}
	return figmamcp.Result{IsError: len(res.Assets) == 0 && len(res.Errors) > 0, Text: b.String()}
}

func toolResult(res figmamcp.Result) *mcp.CallToolResult {
	if res.IsError {
		return mcp.NewToolResultError(res.Text)
	}
	return mcp.NewToolResultText(res.Text)
}

// paramsFromArguments converts raw tool arguments. JSON numbers arrive as float64.
func paramsFromArguments(arguments map[string]interface{}) (figmamcp.Params, error) {
	var p figmamcp.Params

	fileKey, ok := arguments["fileKey"].(string)
	if !ok {
		return p, &figmamcp.ValidationError{Field: "fileKey", Message: "required"}
	}
	p.FileKey = fileKey

	if v, ok := arguments["nodeId"]; ok && v != nil {
		nodeID, ok := v.(string)
		if !ok {
			return p, &figmamcp.ValidationError{Field: "nodeId", Message: "must be a string"}
		}
		p.NodeID = nodeID
	}

	if v, ok := arguments["depth"]; ok && v != nil {
		depth, err := intArgument("depth", v)
		if err != nil {
			return p, err
		}
		p.Depth = &depth
	}

	if v, ok := arguments["optimizeForAndroid"]; ok && v != nil {
		optimize, ok := v.(bool)
		if !ok {
			return p, &figmamcp.ValidationError{Field: "optimizeForAndroid", Message: "must be a boolean"}
		}
		p.OptimizeForAndroid = optimize
	}

	return p, nil
}

func intArgument(field string, v interface{}) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, &figmamcp.ValidationError{Field: field, Message: "must be an integer"}
		}
		if math.Abs(n) > math.MaxInt32 {
			return 0, &figmamcp.ValidationError{Field: field, Message: "out of range"}
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, &figmamcp.ValidationError{Field: field, Message: "must be a number"}
	}
}

func downloadRequestFromArguments(arguments map[string]interface{}) (imager.Request, error) {
	var req imager.Request

	fileKey, _ := arguments["fileKey"].(string)
	if !figma.ValidFileKey(fileKey) {
		return req, &figmamcp.ValidationError{Field: "fileKey", Message: "must contain only letters and digits"}
	}
	req.FileKey = fileKey

	nodes, err := nodesArgument(arguments["nodes"])
	if err != nil {
		return req, err
	}
	if len(nodes) == 0 {
		return req, &figmamcp.ValidationError{Field: "nodes", Message: "required"}
	}
	for i := range nodes {
		if !figma.ValidNodeID(nodes[i].NodeID) {
			return req, &figmamcp.ValidationError{Field: "nodes", Message: fmt.Sprintf("malformed node id %q", nodes[i].NodeID)}
		}
		nodes[i].NodeID = figma.NormalizeNodeID(nodes[i].NodeID)
	}
	req.Nodes = nodes

	localPath, _ := arguments["localPath"].(string)
	if strings.TrimSpace(localPath) == "" {
		return req, &figmamcp.ValidationError{Field: "localPath", Message: "required"}
	}
	req.OutputDir = localPath

	if format, ok := arguments["format"].(string); ok {
		req.Format = format
	}
	if v, ok := arguments["pngScale"].(float64); ok {
		req.Scale = v
	}
	return req, nil
}

// nodesArgument accepts the nodes either as a JSON encoded string or as an already decoded array.
func nodesArgument(v interface{}) ([]imager.Node, error) {
	var raw []byte
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		raw = []byte(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return nil, &figmamcp.ValidationError{Field: "nodes", Message: err.Error()}
		}
		raw = b
	}

	var nodes []imager.Node
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, &figmamcp.ValidationError{Field: "nodes", Message: "must be a JSON array of {nodeId, imageRef, fileName}"}
	}
	return nodes, nil
}
