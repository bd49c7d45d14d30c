package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"

	"github.com/kormendi/voromerge/pkg/driver"
	"github.com/kormendi/voromerge/pkg/logger"
	"github.com/kormendi/voromerge/pkg/voronoi"
	"github.com/kormendi/voromerge/static"
)

func generateRandSites(n, width, height int) []voronoi.Site {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	sites := make([]voronoi.Site, n)
	for i := 0; i < n; i++ {
		sites[i] = voronoi.Site{
			ID: i,
			Pt: voronoi.Vertex{X: float64(r.Intn(width)), Y: float64(r.Intn(height))},
		}
	}
	return sites
}

// generateGridSites lays out n sites on a roughly square grid spanning
// width×height, centered within each cell.
func generateGridSites(n, width, height int) []voronoi.Site {
	sites := make([]voronoi.Site, 0, n)

	rows := int(math.Sqrt(float64(n)))
	if rows < 1 {
		rows = 1
	}
	cols := (n + rows - 1) / rows

	xStep := float64(width) / float64(cols)
	yStep := float64(height) / float64(rows)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if len(sites) >= n {
				break
			}
			x := xStep/2 + float64(j)*xStep
			y := yStep/2 + float64(i)*yStep
			sites = append(sites, voronoi.Site{ID: len(sites), Pt: voronoi.Vertex{X: x, Y: y}})
		}
	}

	return sites
}

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Voronoi diagram (divide and conquer merge)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "X",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Y",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

func diagramToEcharts(sites []voronoi.Site, diagram *voronoi.Diagram) *charts.Scatter {
	scatter := charts.NewScatter()

	points := make([]opts.ScatterData, 0, len(sites))
	for _, s := range sites {
		points = append(points, opts.ScatterData{
			Value: []float64{s.Pt.X, s.Pt.Y},
		})
	}

	prepareScatter(scatter)

	scatter.AddSeries("sites", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, edge := range diagram.Edges {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)

		line.AddSeries("edges", []opts.LineData{
			{Value: []float64{edge.Start.X, edge.Start.Y}},
			{Value: []float64{edge.End.X, edge.End.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
		)

		scatter.Overlap(line)
	}

	return scatter
}

// config holds the demo server's flag-derived defaults.
type config struct {
	addr            string
	defaultWidth    int
	defaultHeight   int
	defaultSites    int
	rateLimitPerSec float64
	rateLimitBurst  int
}

func loadConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.addr, "addr", ":8080", "listen address")
	flag.IntVar(&cfg.defaultWidth, "width", 1000, "default canvas width")
	flag.IntVar(&cfg.defaultHeight, "height", 1000, "default canvas height")
	flag.IntVar(&cfg.defaultSites, "sites", 24, "default site count")
	flag.Float64Var(&cfg.rateLimitPerSec, "rate", 5, "requests per second allowed")
	flag.IntVar(&cfg.rateLimitBurst, "rate-burst", 5, "burst size for the request rate limiter")
	flag.Parse()
	return cfg
}

// diagramHandler builds a random or grid site set per request's form values and
// renders the merged diagram alongside the merge engine's trace log.
func diagramHandler(cfg config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		width := cfg.defaultWidth
		height := cfg.defaultHeight
		numSites := cfg.defaultSites
		isRandom := true

		if r.Method == http.MethodPost {
			r.ParseForm()
			if v, err := strconv.Atoi(r.FormValue("width")); err == nil {
				width = v
			}
			if v, err := strconv.Atoi(r.FormValue("height")); err == nil {
				height = v
			}
			if v, err := strconv.Atoi(r.FormValue("sites")); err == nil {
				numSites = v
			}
			isRandom = r.FormValue("layout") != "grid"
		}
		numSites = int(math.Max(1, float64(numSites)))

		var sites []voronoi.Site
		if isRandom {
			sites = generateRandSites(numSites, width, height)
		} else {
			sites = generateGridSites(numSites, width, height)
		}

		traces := make([]*logger.ZapLogger, 0)
		newLogger := func() *logger.ZapLogger {
			l := logger.New()
			traces = append(traces, l)
			return l
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		diagram, err := driver.Build(ctx, sites, newLogger)
		if err != nil {
			http.Error(w, "build diagram: "+err.Error(), http.StatusInternalServerError)
			return
		}

		scatter := diagramToEcharts(sites, diagram)

		fmt.Fprintln(w, static.Part1)

		if err := scatter.Render(w); err != nil {
			log.Println("error rendering chart:", err)
		}

		fmt.Fprintln(w, static.Part2)

		for _, trace := range traces {
			for _, entry := range trace.Logs {
				fmt.Fprintln(w, entry)
			}
		}

		fmt.Fprintln(w, static.Part3)
	}
}

// gzipMiddleware compresses responses for clients that accept it; the
// go-echarts scatter renders a sizable inline JSON payload, so this
// meaningfully shrinks the common response.
func gzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !acceptsGzip(r) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")

		gz := gzip.NewWriter(w)
		defer gz.Close()

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
	})
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

type gzipResponseWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

// rateLimitMiddleware rejects requests once the demo server's shared
// token bucket runs dry, protecting it from a form-submit loop spawning
// unbounded concurrent merges.
func rateLimitMiddleware(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := loadConfig()

	interval := time.Duration(float64(time.Second) / cfg.rateLimitPerSec)
	limiter := rate.NewLimiter(rate.Every(interval), cfg.rateLimitBurst)

	mux := http.NewServeMux()
	mux.HandleFunc("/", diagramHandler(cfg))

	handler := rateLimitMiddleware(limiter, gzipMiddleware(mux))

	fmt.Println("listening on http://" + cfg.addr)
	if err := http.ListenAndServe(cfg.addr, handler); err != nil {
		log.Fatal("listen and serve:", err)
	}
}
