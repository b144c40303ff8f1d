package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "net/http/pprof"

	"github.com/lintang-b-s/turnguide/pkg/gridmap"
	"github.com/lintang-b-s/turnguide/pkg/guidance"
	"github.com/lintang-b-s/turnguide/pkg/kv"
	"github.com/lintang-b-s/turnguide/pkg/server/rest"
	"github.com/lintang-b-s/turnguide/pkg/server/rest/service"
)

var (
	listenAddr = flag.String("listenaddr", ":5000", "server listen address")
	mapFile    = flag.String("f", "map.txt", "road network map file (grid + way table)")
	kvDir      = flag.String("kvdir", "./turnguide-db", "badger db dir with the preprocessed graph")
	useKV      = flag.Bool("usekv", false, "load the graph from the key-value db instead of parsing the map file")
)

func main() {
	flag.Parse()

	graph, err := loadGraph()
	if err != nil {
		log.Fatal(err)
	}

	engine := guidance.NewEngine(graph)
	navigatorSvc := service.NewNavigationService(graph, engine)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(rest.PromHTTPMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/debug", middleware.Profiler())
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	rest.NavigatorRouter(r, navigatorSvc)

	fmt.Printf("\nguidance engine ready, %d nodes / %d edges loaded", graph.NumNodes(), graph.NumEdges())
	fmt.Printf("\nserver started at %s\n", *listenAddr)

	log.Fatal(http.ListenAndServe(*listenAddr, r))
}

func loadGraph() (*gridmap.Graph, error) {
	if *useKV {
		db, err := badger.Open(badger.DefaultOptions(*kvDir))
		if err != nil {
			return nil, err
		}
		defer db.Close()

		kvDB := kv.NewKVDB(db)
		nodes, edges, labels, banned, err := kvDB.LoadGraph(context.Background())
		if err != nil {
			if errors.Is(err, kv.ErrGraphNotFound) {
				return nil, fmt.Errorf("no preprocessed graph in %s, run the preprocessing command first", *kvDir)
			}
			return nil, err
		}
		return gridmap.NewGraphFromTables(nodes, edges, labels, banned), nil
	}

	f, err := os.Open(*mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	def, err := gridmap.Parse(f)
	if err != nil {
		return nil, err
	}
	return gridmap.Build(def)
}
