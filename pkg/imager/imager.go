// Package imager downloads rendered nodes and image fills of a Figma file to disk.
package imager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kataras/figma-mcp/pkg/figma"
	"github.com/kataras/figma-mcp/pkg/metrics"
)

// Source is the part of the Figma API the downloader needs. *figma.Client implements it.
type Source interface {
	GetImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (*figma.ImagesResponse, error)
	GetImageFills(ctx context.Context, fileKey string) (*figma.FileImagesResponse, error)
}

// Node is one image to download. Nodes with an ImageRef are fetched as the original image
// of that fill; the rest are rendered.
type Node struct {
	NodeID   string `json:"nodeId"`
	Name     string `json:"name,omitempty"`
	ImageRef string `json:"imageRef,omitempty"`
	// FileName overrides the generated file name. Its extension is kept as given.
	FileName string `json:"fileName,omitempty"`
}

// Request describes a download batch.
type Request struct {
	FileKey   string
	Nodes     []Node
	OutputDir string  // local directory, default "figma-assets"
	Format    string  // render format: "png", "svg", "jpg", "pdf"; default "png"
	Scale     float64 // render scale for raster formats; default 1
}

// Asset is a downloaded image.
type Asset struct {
	NodeID   string `json:"nodeId"`
	ImageRef string `json:"imageRef,omitempty"`
	FileName string `json:"fileName"`
	Path     string `json:"path"`
}

// Result holds the outcome of a download batch.
type Result struct {
	Assets []Asset
	Errors []error // non-fatal per-image download failures
}

const (
	// DefaultOutputDir is used when Request.OutputDir is empty.
	DefaultOutputDir = "figma-assets"

	maxNodesPerRequest   = 100
	maxParallelDownloads = 5
)

// Downloader fetches image URLs from a Source and stores the images.
type Downloader struct {
	source     Source
	httpClient *http.Client
}

// New returns a Downloader. A nil httpClient means http.DefaultClient.
func New(source Source, httpClient *http.Client) *Downloader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Downloader{source: source, httpClient: httpClient}
}

type job struct {
	node     Node
	url      string
	fileName string
}

// Download resolves every node to an image URL and downloads them concurrently.
// API failures abort the batch; failures of single downloads are collected in Result.Errors.
func (d *Downloader) Download(ctx context.Context, req Request) (*Result, error) {
	req = withDefaults(req)

	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", req.OutputDir, err)
	}

	result := &Result{}
	var rendered, fills []Node
	for _, n := range req.Nodes {
		if n.ImageRef != "" {
			fills = append(fills, n)
		} else {
			rendered = append(rendered, n)
		}
	}

	var jobs []job
	usedNames := make(map[string]int)

	renderURLs, err := d.renderURLs(ctx, req, rendered)
	if err != nil {
		return nil, err
	}
	for _, n := range rendered {
		imageURL := renderURLs[n.NodeID]
		if imageURL == "" {
			result.Errors = append(result.Errors, fmt.Errorf("no image URL returned for node %s", n.NodeID))
			continue
		}
		name := n.FileName
		if name == "" {
			name = buildFileName(n.Name, n.NodeID, req.Format, req.Scale)
		}
		jobs = append(jobs, job{node: n, url: imageURL, fileName: dedupe(usedNames, sanitizeFileName(name))})
	}

	if len(fills) > 0 {
		fillResp, err := d.source.GetImageFills(ctx, req.FileKey)
		if err != nil {
			return nil, fmt.Errorf("failed to get image fills from Figma API: %w", err)
		}
		for _, n := range fills {
			imageURL := fillResp.Meta.Images[n.ImageRef]
			if imageURL == "" {
				result.Errors = append(result.Errors, fmt.Errorf("no image URL returned for image fill %s", n.ImageRef))
				continue
			}
			name := n.FileName
			if name == "" {
				name = buildFileName(n.Name, n.NodeID, detectExtensionFromURL(imageURL), 1)
			}
			jobs = append(jobs, job{node: n, url: imageURL, fileName: dedupe(usedNames, sanitizeFileName(name))})
		}
	}

	// Download images concurrently with a semaphore.
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxParallelDownloads)
	var mu sync.Mutex

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			destPath := filepath.Join(req.OutputDir, j.fileName)
			if err := d.downloadFile(ctx, j.url, destPath); err != nil {
				metrics.ImagesDownloaded.WithLabelValues("error").Inc()
				mu.Lock()
				result.Errors = append(result.Errors, fmt.Errorf("failed to download %s: %w", j.node.NodeID, err))
				mu.Unlock()
				return
			}

			metrics.ImagesDownloaded.WithLabelValues("ok").Inc()
			mu.Lock()
			result.Assets = append(result.Assets, Asset{
				NodeID:   j.node.NodeID,
				ImageRef: j.node.ImageRef,
				FileName: j.fileName,
				Path:     destPath,
			})
			mu.Unlock()
		}(j)
	}

	wg.Wait()

	return result, nil
}

func withDefaults(req Request) Request {
	if req.OutputDir == "" {
		req.OutputDir = DefaultOutputDir
	}
	req.Format = strings.ToLower(req.Format)
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Scale <= 0 || req.Format == "svg" || req.Format == "pdf" {
		req.Scale = 1
	}
	return req
}

// renderURLs batches node ids (max 100 per API request) through the render endpoint.
func (d *Downloader) renderURLs(ctx context.Context, req Request, nodes []Node) (map[string]string, error) {
	urls := make(map[string]string, len(nodes))
	for i := 0; i < len(nodes); i += maxNodesPerRequest {
		end := i + maxNodesPerRequest
		if end > len(nodes) {
			end = len(nodes)
		}

		batch := make([]string, 0, end-i)
		for _, n := range nodes[i:end] {
			batch = append(batch, n.NodeID)
		}

		imgResp, err := d.source.GetImages(ctx, req.FileKey, batch, req.Format, req.Scale)
		if err != nil {
			return nil, fmt.Errorf("failed to get images from Figma API: %w", err)
		}
		for id, u := range imgResp.Images {
			urls[id] = u
		}
	}
	return urls, nil
}

// downloadFile performs an HTTP GET and saves the response body to destPath.
func (d *Downloader) downloadFile(ctx context.Context, rawURL, destPath string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", destPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write file %q: %w", destPath, err)
	}

	return nil
}

// CollectImageFillNodes returns the nodes of the tree that carry an IMAGE fill, one entry
// per fill, in document order.
func CollectImageFillNodes(root *figma.Node) []Node {
	var nodes []Node
	stack := []*figma.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, fill := range n.Fills {
			if fill.Type == "IMAGE" && fill.ImageRef != "" {
				nodes = append(nodes, Node{NodeID: n.ID, Name: n.Name, ImageRef: fill.ImageRef})
			}
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, &n.Children[i])
		}
	}
	return nodes
}

// CollectExportableNodes returns the nodes of the tree the designer attached export
// settings to, in document order.
func CollectExportableNodes(root *figma.Node) []Node {
	var nodes []Node
	stack := []*figma.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(n.ExportSettings) > 0 {
			nodes = append(nodes, Node{NodeID: n.ID, Name: n.Name})
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, &n.Children[i])
		}
	}
	return nodes
}

// detectExtensionFromURL returns the file extension of the URL path, or "png".
func detectExtensionFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "png"
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if ext == "" {
		return "png"
	}
	return strings.ToLower(ext)
}

// buildFileName creates a sanitized filename from a node name.
// Uses kebab-case, adds @2x/@3x suffix for raster scales > 1,
// falls back to sanitized node ID if name is empty.
func buildFileName(nodeName, nodeID, format string, scale float64) string {
	name := nodeName
	if name == "" {
		name = nodeID
	}

	name = toKebabCase(name)
	if name == "" {
		name = "asset"
	}

	// Add scale suffix for raster formats with scale > 1.
	scaleSuffix := ""
	if scale > 1 && format != "svg" && format != "pdf" {
		scaleSuffix = fmt.Sprintf("@%gx", scale)
	}

	return fmt.Sprintf("%s%s.%s", name, scaleSuffix, format)
}

// sanitizeFileName keeps a caller supplied name inside the output directory.
func sanitizeFileName(name string) string {
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == "" {
		return "asset"
	}
	return name
}

// dedupe returns fileName, or fileName with a -N suffix when it was used before.
func dedupe(used map[string]int, fileName string) string {
	count, exists := used[fileName]
	if !exists {
		used[fileName] = 1
		return fileName
	}

	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	for {
		count++
		candidate := fmt.Sprintf("%s-%d%s", base, count, ext)
		if _, taken := used[candidate]; !taken {
			used[fileName] = count
			used[candidate] = 1
			return candidate
		}
	}
}

// toKebabCase converts a string to kebab-case format (lowercase with hyphens).
func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
