package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

var opts struct {
	Port    int           `long:"port" env:"MOCK_PORT" default:"8081" description:"listen port"`
	Delay   time.Duration `long:"delay" env:"MOCK_DELAY" default:"0s" description:"artificial latency per response"`
	Fail    []string      `long:"fail" env:"MOCK_FAIL" env-delim:"," description:"outlets answering with 503"`
	Items   int           `long:"items" env:"MOCK_ITEMS" default:"12" description:"items per outlet"`
	Garbled []string      `long:"garbled" env:"MOCK_GARBLED" env-delim:"," description:"outlets answering with a malformed body"`
}

// outlet produces one item in the shape the real outlet uses.
type outlet func(i int, ts time.Time) map[string]interface{}

var outlets = map[string]outlet{
	"cnn-news":       standard("cnnindonesia.com", "akcdn.detik.net.id"),
	"cnbc-news":      standard("cnbcindonesia.com", "cdn.cnbcindonesia.com"),
	"republika-news": standard("republika.co.id", "static.republika.co.id"),
	"kumparan-news": func(i int, ts time.Time) map[string]interface{} {
		img := fmt.Sprintf("https://blue.kumparan.com/image/%d", i)
		return map[string]interface{}{
			"title":       fmt.Sprintf("Kumparan %d", i),
			"link":        fmt.Sprintf("https://kumparan.com/berita/%d", i),
			"description": "Ringkasan berita kumparan.",
			"isoDate":     ts.Format(time.RFC3339),
			"image": map[string]string{
				"small":      img + "?w=120",
				"medium":     img + "?w=480",
				"large":      img + "?w=960",
				"extraLarge": img + "?w=1920",
			},
		}
	},
	"voa-news": func(i int, ts time.Time) map[string]interface{} {
		return map[string]interface{}{
			"title":   fmt.Sprintf("VOA %d", i),
			"link":    fmt.Sprintf("https://www.voaindonesia.com/a/%d.html", i),
			"content": "Isi berita VOA Indonesia.",
			"pubDate": ts.Format(time.RFC1123Z),
			"image":   fmt.Sprintf("https://gdb.voanews.com/%d.jpg", i),
		}
	},
}

func standard(site, cdn string) outlet {
	return func(i int, ts time.Time) map[string]interface{} {
		return map[string]interface{}{
			"title":          fmt.Sprintf("%s %d", site, i),
			"link":           fmt.Sprintf("https://www.%s/berita/%d", site, i),
			"contentSnippet": "Cuplikan berita.",
			"isoDate":        ts.Format(time.RFC3339),
			"image": map[string]string{
				"small": fmt.Sprintf("https://%s/thumb/%d.jpg", cdn, i),
				"large": fmt.Sprintf("https://%s/full/%d.jpg", cdn, i),
			},
		}
	}
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	http.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/")
		gen, ok := outlets[id]
		if !ok {
			http.NotFound(w, r)
			return
		}

		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
		if slices.Contains(opts.Fail, id) {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if slices.Contains(opts.Garbled, id) {
			_, _ = w.Write([]byte(`{"messages":"maintenance","data":null}`))
			return
		}

		now := time.Now().Truncate(time.Minute)
		items := make([]map[string]interface{}, 0, opts.Items)
		for i := 0; i < opts.Items; i++ {
			items = append(items, gen(i, now.Add(-time.Duration(i)*17*time.Minute)))
		}
		response := map[string]interface{}{
			"messages": fmt.Sprintf("Result of all news in %s", id),
			"total":    len(items),
			"data":     items,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	})

	addr := fmt.Sprintf(":%d", opts.Port)
	slog.Info("Mock feed server running", "address", addr, "outlets", len(outlets))
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
