package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/latticekit/lattice"
	"github.com/latticekit/lattice/pkg/export"
	"github.com/latticekit/lattice/pkg/observability"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the declared structs over HTTP",
	Long:  `Starts a small HTTP service for constructing structs from JSON bodies, inspecting definitions, and scraping metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd); err != nil {
			fmt.Printf("Serve failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command) error {
	reg, defs, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	metrics := observability.New(reg)
	promReg := prometheus.NewRegistry()
	if err := promReg.Register(metrics); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	slog.Info("serving structs", "addr", serveAddr, "definitions", len(defs))
	return http.ListenAndServe(serveAddr, newHandler(reg, defs, metrics, promReg))
}

// newHandler wires the HTTP surface: definition listing, OpenAPI rendering,
// construction, and Prometheus metrics.
func newHandler(reg *lattice.Registry, defs []*lattice.Definition, metrics *observability.Metrics, promReg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()

	r.Get("/definitions", func(w http.ResponseWriter, req *http.Request) {
		type entry struct {
			Name       string   `json:"name"`
			Abstract   bool     `json:"abstract,omitempty"`
			Attributes []string `json:"attributes"`
		}
		out := make([]entry, 0, len(defs))
		for _, def := range defs {
			out = append(out, entry{Name: def.Name(), Abstract: def.Abstract(), Attributes: def.AttributeNames()})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/definitions/{name}/openapi", func(w http.ResponseWriter, req *http.Request) {
		def, ok := reg.Lookup(chi.URLParam(req, "name"))
		if !ok {
			http.Error(w, "unknown struct", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, export.OpenAPISchema(def))
	})

	r.Post("/construct/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		def, ok := reg.Lookup(name)
		if !ok {
			http.Error(w, "unknown struct", http.StatusNotFound)
			return
		}

		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			slog.Warn("Construct: invalid request body", "struct", name, "error", err)
			return
		}

		inst, err := metrics.Construct(def, body)
		if err != nil {
			var cerr *lattice.ConstructionError
			if errors.As(err, &cerr) {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": cerr.Error()})
				return
			}
			http.Error(w, fmt.Sprintf("Construct error: %v", err), http.StatusInternalServerError)
			slog.Error("Construct failed", "struct", name, "error", err)
			return
		}
		writeJSON(w, http.StatusOK, inst.Attributes())
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
