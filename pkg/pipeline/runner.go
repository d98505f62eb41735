package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/matzehuels/influencegraph/pkg/cache"
	"github.com/matzehuels/influencegraph/pkg/graph"
	"github.com/matzehuels/influencegraph/pkg/observability"
)

// Runner executes pipeline stages against a cache. It keeps no results of
// its own, so the preview server shares one Runner between requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner wraps c with cache instrumentation. A nil c disables caching; a
// nil keyer selects [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.Instrument(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute loads the input, lays it out and renders every requested format.
// Integrity issues are logged and returned in the result but never fail
// the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	loadStart := time.Now()
	loaded, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	data := loaded.Data
	result.Data = data
	result.Source = loaded.Source
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(data.Nodes)
	result.Stats.EdgeCount = len(data.Edges)
	result.CacheInfo.LoadHit = loadHit
	result.GraphHash = GraphHash(data)
	result.Issues = graph.Check(data)

	r.Logger.Info("loaded graph",
		"source", loaded.Source,
		"nodes", len(data.Nodes),
		"edges", len(data.Edges),
		"duration", result.Stats.LoadTime)
	for _, issue := range result.Issues {
		r.Logger.Warn("graph issue", "kind", issue.Kind, "id", issue.ID, "detail", issue.Message)
	}

	opts.applyLoaded(loaded)

	layoutStart := time.Now()
	gl, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = gl
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"viz", gl.VizType,
		"placed", len(gl.Positions),
		"compact", gl.Compact,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, gl, data, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo builds graph data from the input and reports whether it
// came from the cache. The key covers the input bytes and, for reports, the
// quote book.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (loaded Loaded, hit bool, err error) {
	if err := opts.ValidateForLoad(); err != nil {
		return Loaded{}, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Input)
	defer func() {
		observability.Pipeline().OnLoadComplete(ctx, loaded.Source, len(loaded.Data.Nodes), time.Since(start), err)
	}()

	input, err := ReadInput(opts)
	if err != nil {
		return Loaded{}, false, err
	}
	book, err := LoadBook(opts)
	if err != nil {
		return Loaded{}, false, err
	}

	cacheKey := r.Keyer.GraphKey(cache.Hash(input), cache.GraphKeyOpts{QuotesHash: bookHash(book)})

	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			var cached Loaded
			if err := json.Unmarshal(data, &cached); err == nil {
				opts.Logger.Debug("graph cache hit", "key", cacheKey)
				return cached, true, nil
			}
		}
	}

	loaded, err = Decode(input, book)
	if err != nil {
		return Loaded{}, false, err
	}

	if data, err := json.Marshal(loaded); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
	}
	return loaded, false, nil
}

// Load is LoadWithCacheInfo without the hit flag.
func (r *Runner) Load(ctx context.Context, opts Options) (Loaded, error) {
	loaded, _, err := r.LoadWithCacheInfo(ctx, opts)
	return loaded, err
}

// GenerateLayoutWithCacheInfo places data on the canvas of opts and reports
// whether the layout came from the cache.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, data graph.Data, opts Options) (gl graph.Layout, hit bool, err error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.VizType, len(data.Nodes))
	defer func() {
		observability.Pipeline().OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	}()

	cacheKey := r.Keyer.LayoutKey(GraphHash(data), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if cached, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			if l, err := graph.UnmarshalLayout(cached); err == nil {
				return l, true, nil
			}
			// undecodable entries are recomputed
		}
	}

	gl, err = GenerateLayout(data, opts)
	if err != nil {
		return graph.Layout{}, false, err
	}

	if encoded, err := graph.MarshalLayout(gl); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, encoded, cache.TTLLayout)
	}
	return gl, false, nil
}

// GenerateLayout is GenerateLayoutWithCacheInfo without the hit flag.
func (r *Runner) GenerateLayout(ctx context.Context, data graph.Data, opts Options) (graph.Layout, error) {
	gl, _, err := r.GenerateLayoutWithCacheInfo(ctx, data, opts)
	return gl, err
}

// RenderWithCacheInfo returns one artifact per format of opts. Cached
// formats are reused and only the rest are drawn; hit is true when nothing
// had to be drawn.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, gl graph.Layout, data graph.Data, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	layoutData, err := graph.MarshalLayout(gl)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	// the drawn labels and tooltips depend on the data as well as positions
	cacheKeyHash := cache.Hash(append(layoutData, GraphHash(data)...))

	artifacts = make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if cached, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
				artifacts[format] = cached
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := RenderFromLayout(ctx, gl, data, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, out := range rendered {
		artifacts[format] = out
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, out, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, gl graph.Layout, data graph.Data, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, gl, data, opts)
	return artifacts, err
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// GraphHash identifies graph data by the hash of its canonical JSON.
func GraphHash(data graph.Data) string {
	encoded, err := graph.Marshal(data)
	if err != nil {
		return ""
	}
	return cache.Hash(encoded)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil || opts.Logger == discard {
		opts.Logger = r.Logger
	}
}

// applyLoaded fills page text from a report unless set explicitly.
func (o *Options) applyLoaded(l Loaded) {
	if o.Title == "" {
		o.Title = l.Title
	}
	if o.Subtitle == "" {
		o.Subtitle = l.Subtitle
	}
	if o.Notes == "" {
		o.Notes = l.Notes
	}
}
