package figmamcp

import (
	"context"
	"fmt"
	"time"

	"github.com/kataras/figma-mcp/pkg/diag"
	"github.com/kataras/figma-mcp/pkg/extractor"
	"github.com/kataras/figma-mcp/pkg/figma"
	"github.com/kataras/figma-mcp/pkg/formatter"
	"github.com/kataras/figma-mcp/pkg/metrics"
	"github.com/kataras/figma-mcp/pkg/reducer"
)

// ErrorPrefix starts the text of every error Result.
const ErrorPrefix = "Error fetching file: "

// Diagnostic artifact names.
const (
	SimplifiedArtifact = "figma-simplified.json"
	ResultArtifact     = "figma-result"
)

// Fetcher retrieves raw Figma payloads. *figma.Client implements it.
type Fetcher interface {
	GetRawFile(ctx context.Context, fileKey string, depth *int) (*figma.FileResponse, error)
	GetRawNode(ctx context.Context, fileKey, nodeID string, depth *int) (*figma.NodesResponse, error)
}

// Logger receives progress messages. A nil Logger means silent operation.
// *logrus.Logger and *logrus.Entry satisfy it.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result is the single text payload returned to the client. When IsError is set, Text
// is a human readable message starting with ErrorPrefix.
type Result struct {
	IsError bool
	Text    string
}

// Options configure GetFigmaData.
type Options struct {
	Logger      Logger                // nil = no logging
	Diagnostics *diag.Writer          // nil = no artifacts
	Extractors  []extractor.Extractor // nil = extractor.AllExtractors
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the progress logger.
func WithLogger(logger Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithDiagnostics stores intermediate artifacts through w.
func WithDiagnostics(w *diag.Writer) Option {
	return func(o *Options) {
		o.Diagnostics = w
	}
}

// WithExtractors replaces the set of extractors applied to every node.
func WithExtractors(extractors ...extractor.Extractor) Option {
	return func(o *Options) {
		o.Extractors = extractors
	}
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// GetFigmaData fetches a file, or one node of it, and returns its simplified design
// encoded in format. It never returns an error: every failure, including a panic while
// transforming the payload, becomes a Result with IsError set.
func GetFigmaData(ctx context.Context, params Params, fetcher Fetcher, format formatter.Format, opts ...Option) Result {
	o := new(Options)
	for _, opt := range opts {
		opt(o)
	}

	text, err := run(ctx, params, fetcher, format, o)
	if err != nil {
		o.logError("Error fetching file %s: %v", params.FileKey, err)
		metrics.PipelineRuns.WithLabelValues("error", string(format)).Inc()
		metrics.PipelineErrors.WithLabelValues(errorKind(err)).Inc()
		return Result{IsError: true, Text: ErrorPrefix + err.Error()}
	}

	metrics.PipelineRuns.WithLabelValues("ok", string(format)).Inc()
	metrics.ResponseBytes.Observe(float64(len(text)))
	return Result{Text: text}
}

func run(ctx context.Context, params Params, fetcher Fetcher, format formatter.Format, o *Options) (text string, err error) {
	stage := "validate"
	defer func() {
		if r := recover(); r != nil {
			err = &TransformError{Stage: stage, Value: r}
		}
	}()

	if err := params.Validate(); err != nil {
		return "", err
	}
	if format != formatter.JSON && format != formatter.YAML {
		return "", &ValidationError{Field: "outputFormat", Message: fmt.Sprintf("unknown format %q", format)}
	}

	nodeID := figma.NormalizeNodeID(params.NodeID)

	o.logInfo("Fetching %s of %s %s%s", describeDepth(params.Depth), describeTarget(nodeID), params.FileKey, describeOptimize(params.OptimizeForAndroid))

	walk := extractor.WalkOptions{
		MaxDepth:      params.Depth,
		AfterChildren: extractor.CollapseSVGContainers,
	}
	if params.OptimizeForAndroid {
		walk.NodeFilter = extractor.ExcludeHiddenAndSlices
	}
	simplifyOpts := extractor.Options{Extractors: o.Extractors, Walk: walk}

	stage = "fetch"
	started := time.Now()
	var design *extractor.SimplifiedDesign
	if nodeID != "" {
		resp, err := fetcher.GetRawNode(ctx, params.FileKey, nodeID, params.Depth)
		if err != nil {
			return "", &FetchError{Err: err}
		}
		observe(stage, started)

		stage, started = "simplify", time.Now()
		design = extractor.SimplifyRawNodes(resp, simplifyOpts)
	} else {
		resp, err := fetcher.GetRawFile(ctx, params.FileKey, params.Depth)
		if err != nil {
			return "", &FetchError{Err: err}
		}
		observe(stage, started)

		stage, started = "simplify", time.Now()
		design = extractor.SimplifyRawFile(resp, simplifyOpts)
	}
	observe(stage, started)

	o.Diagnostics.Write(SimplifiedArtifact, design)

	nodes := extractor.CountNodes(design.Nodes)
	metrics.NodesEmitted.Observe(float64(nodes))
	o.logInfo("Successfully extracted data: %d nodes, %d styles", nodes, len(design.GlobalVars.Styles))

	if params.OptimizeForAndroid {
		stage, started = "reduce", time.Now()
		o.logInfo("Applying Android optimization: removing unnecessary properties")
		design = reducer.ForAndroid(design)
		observe(stage, started)
	}

	stage, started = "encode", time.Now()
	o.logInfo("Generating %s result from extracted data", format)
	text, err = formatter.Encode(design, format)
	if err != nil {
		return "", &TransformError{Stage: stage, Value: err}
	}
	observe(stage, started)

	o.Diagnostics.Write(ResultArtifact+"."+format.Ext(), text)

	return text, nil
}

func observe(stage string, started time.Time) {
	metrics.PipelineDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

func describeDepth(depth *int) string {
	if depth == nil {
		return "all layers"
	}
	return fmt.Sprintf("%d layers deep", *depth)
}

func describeTarget(nodeID string) string {
	if nodeID == "" {
		return "full file"
	}
	return "node " + nodeID + " from file"
}

func describeOptimize(optimize bool) string {
	if optimize {
		return " (Android optimized)"
	}
	return ""
}
