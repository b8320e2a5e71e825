package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	figmamcp "github.com/kataras/figma-mcp"
	"github.com/kataras/figma-mcp/pkg/config"
	"github.com/kataras/figma-mcp/pkg/diag"
	"github.com/kataras/figma-mcp/pkg/figma"
	"github.com/kataras/figma-mcp/pkg/formatter"
	"github.com/kataras/figma-mcp/pkg/imager"
	"github.com/kataras/figma-mcp/pkg/logging"
	"github.com/kataras/figma-mcp/pkg/mcpserver"
	"github.com/kataras/figma-mcp/pkg/metrics"

	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = figma.Version

var (
	envFile     string
	accessToken string
	outputFmt   string

	metricsAddr string
	sseAddr     string
	sseBasePath string

	nodeID    string
	depth     int
	android   bool
	outFile   string
	nodeIDs   string
	imageDir  string
	imageFmt  string
	scale     float64
	withFills bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "figma-mcp",
		Short:         "Serve Figma design data to language models",
		Long:          "An MCP server and CLI that fetches Figma files and turns them into compact JSON or YAML design documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file to load")
	rootCmd.PersistentFlags().StringVarP(&accessToken, "token", "t", "", "Figma Personal Access Token (overrides "+config.EnvAPIKey+")")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "format", "f", "", "Output format: yaml or json (overrides "+config.EnvOutput+")")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to expose Prometheus metrics on, e.g. :9090")
	serveCmd.Flags().StringVar(&sseAddr, "sse-addr", "", "Serve over SSE on this address instead of stdio, e.g. :8080")
	serveCmd.Flags().StringVar(&sseBasePath, "sse-base-path", "/mcp", "Base path for SSE endpoints")

	getCmd := &cobra.Command{
		Use:   "get <figma-url|file-key>",
		Short: "Print the simplified design of a file or node",
		Args:  cobra.ExactArgs(1),
		RunE:  get,
	}
	getCmd.Flags().StringVarP(&nodeID, "node", "n", "", "Node ID to fetch (defaults to the node-id of the URL)")
	getCmd.Flags().IntVarP(&depth, "depth", "d", -1, "Levels below each root to include (-1 for all)")
	getCmd.Flags().BoolVar(&android, "android", false, "Optimize the result for Android UI development")
	getCmd.Flags().StringVarP(&outFile, "output", "o", "", "Write the result to a file instead of stdout")

	imagesCmd := &cobra.Command{
		Use:   "images <figma-url|file-key>",
		Short: "Download rendered nodes and image fills",
		Args:  cobra.ExactArgs(1),
		RunE:  images,
	}
	imagesCmd.Flags().StringVarP(&nodeIDs, "node-ids", "n", "", "Comma-separated node IDs whose exportable descendants are downloaded (defaults to the whole file)")
	imagesCmd.Flags().StringVar(&imageDir, "dir", imager.DefaultOutputDir, "Output directory for images")
	imagesCmd.Flags().StringVar(&imageFmt, "image-format", "png", "Render format: png, svg, jpg, pdf")
	imagesCmd.Flags().Float64Var(&scale, "scale", 1, "Render scale for raster formats")
	imagesCmd.Flags().BoolVar(&withFills, "image-fills", false, "Also download the original images of image fills")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-mcp version %s\n", version)
		},
	}

	rootCmd.AddCommand(serveCmd, getCmd, imagesCmd, versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    config.Config
	logger *logrus.Logger
	client *figma.Client
	diag   *diag.Writer
}

func setup() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if accessToken != "" {
		cfg.APIKey = accessToken
	}
	if outputFmt != "" {
		if cfg.OutputFormat, err = formatter.ParseFormat(outputFmt); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// stdout carries the MCP protocol and the get output.
	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	client := figma.NewClient(cfg.APIKey,
		figma.WithBaseURL(cfg.APIBase),
		figma.WithTimeout(cfg.HTTPTimeout),
	)

	return &app{
		cfg:    cfg,
		logger: logger,
		client: client,
		diag:   diag.NewWriter(cfg.LogsDir, logger),
	}, nil
}

func serve(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if metricsAddr != "" {
		go serveMetrics(ctx, a.logger)
	}

	s := mcpserver.New(mcpserver.Config{
		Fetcher:     a.client,
		Images:      imager.New(a.client, nil),
		Format:      a.cfg.OutputFormat,
		Logger:      a.logger,
		Diagnostics: a.diag,
		Timeout:     a.cfg.HTTPTimeout,
	})

	a.logger.Infof("Starting %s %s (format %s)", mcpserver.Name, version, a.cfg.OutputFormat)
	if a.diag.Enabled() {
		a.logger.Infof("Writing diagnostics to %s", a.diag.Dir())
	}

	if sseAddr == "" {
		return s.ServeStdio(ctx)
	}

	sseServer := server.NewSSEServer(s.MCP(),
		server.WithBasePath(sseBasePath),
		server.WithKeepAlive(true),
	)

	errc := make(chan error, 1)
	go func() {
		a.logger.Infof("Starting SSE server on %s with base path %s", sseAddr, sseBasePath)
		errc <- sseServer.Start(sseAddr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down SSE server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sseServer.Shutdown(shutdownCtx)
}

func serveMetrics(ctx context.Context, logger *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			metrics.UpdateSystemMetrics()
			select {
			case <-ctx.Done():
				srv.Close()
				return
			case <-ticker.C:
			}
		}
	}()

	logger.Infof("Serving metrics on %s/metrics", metricsAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Errorf("metrics server: %v", err)
	}
}

func get(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	params, err := figmamcp.ParamsFromURL(args[0])
	if err != nil {
		return err
	}
	if nodeID != "" {
		params.NodeID = nodeID
	}
	if depth >= 0 {
		params.Depth = &depth
	}
	params.OptimizeForAndroid = android

	result := figmamcp.GetFigmaData(cmd.Context(), params, a.client, a.cfg.OutputFormat,
		figmamcp.WithLogger(a.logger),
		figmamcp.WithDiagnostics(a.diag),
	)
	if result.IsError {
		return fmt.Errorf("%s", result.Text)
	}

	if outFile == "" {
		fmt.Println(result.Text)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(result.Text), 0644); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(os.Stderr, "✓ Wrote %s\n", outFile)
	return nil
}

func images(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	params, err := figmamcp.ParamsFromURL(args[0])
	if err != nil {
		return err
	}

	ids := []string{}
	if nodeIDs != "" {
		if ids, err = figmamcp.ParseNodeIDs(nodeIDs); err != nil {
			return err
		}
	} else if params.NodeID != "" {
		ids = []string{params.NodeID}
	}

	var roots []*figma.Node
	if len(ids) == 0 {
		file, err := a.client.GetRawFile(ctx, params.FileKey, nil)
		if err != nil {
			return err
		}
		roots = append(roots, &file.Document)
	} else {
		for _, id := range ids {
			resp, err := a.client.GetRawNode(ctx, params.FileKey, id, nil)
			if err != nil {
				return err
			}
			for _, key := range resp.OrderedNodeIDs() {
				if data := resp.Nodes[key]; data != nil {
					roots = append(roots, &data.Document)
				}
			}
		}
	}

	var nodes []imager.Node
	for _, root := range roots {
		nodes = append(nodes, imager.CollectExportableNodes(root)...)
		if withFills {
			nodes = append(nodes, imager.CollectImageFillNodes(root)...)
		}
	}
	if len(nodes) == 0 {
		color.New(color.FgYellow).Fprintln(os.Stderr, "⚠ No exportable nodes found")
		return nil
	}

	a.logger.Infof("Downloading %d images to %s", len(nodes), imageDir)
	result, err := imager.New(a.client, nil).Download(ctx, imager.Request{
		FileKey:   params.FileKey,
		Nodes:     nodes,
		OutputDir: imageDir,
		Format:    imageFmt,
		Scale:     scale,
	})
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	for _, asset := range result.Assets {
		green.Printf("✓ %s\n", asset.Path)
	}
	red := color.New(color.FgRed)
	for _, e := range result.Errors {
		red.Printf("✗ %v\n", e)
	}
	if len(result.Assets) == 0 && len(result.Errors) > 0 {
		return fmt.Errorf("no image could be downloaded")
	}
	return nil
}
