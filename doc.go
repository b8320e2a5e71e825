// Package figmamcp turns Figma files into compact design documents for language models
// and serves them over the Model Context Protocol.
//
// A request names a file, optionally one node of it and a depth limit. The raw API
// payload is simplified into uniform nodes whose layout, text styles, fills, strokes and
// effects are shared through a globalVars table, then encoded as JSON or YAML.
//
// The MCP server lives in pkg/mcpserver and the CLI in cmd/figma-mcp; this root package
// exposes the pipeline itself so that callers can embed it in their own tools.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmamcp:
//
//	import "github.com/kataras/figma-mcp" // package figmamcp
//
// # Quick start
//
//	client := figma.NewClient(os.Getenv("FIGMA_API_KEY"))
//	result := figmamcp.GetFigmaData(ctx, figmamcp.Params{
//	    FileKey: "ABC123",
//	    NodeID:  "1234-5678",
//	}, client, formatter.JSON)
//	if result.IsError {
//	    log.Fatal(result.Text)
//	}
//	fmt.Println(result.Text)
//
// # Android optimization
//
// With [Params.OptimizeForAndroid] hidden nodes and slices are skipped, every node keeps
// only the fields an Android layout needs, and numbers in globalVars are rounded to two
// decimals. Fields holding a zero value (an opacity of 0, for example) are dropped as well.
//
// # Logging
//
// Pass a [Logger] implementation through [WithLogger] to receive progress
// messages. A nil Logger silences all output. *logrus.Logger satisfies it.
//
// # Diagnostics
//
// [WithDiagnostics] stores the design before Android reduction as figma-simplified.json
// and the returned text as figma-result.json or figma-result.yaml.
package figmamcp
