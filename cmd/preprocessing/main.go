package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"
	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/lintang-b-s/turnguide/pkg/gridmap"
	"github.com/lintang-b-s/turnguide/pkg/kv"
)

var (
	mapFile = flag.String("f", "map.txt", "road network map file (grid + way table)")
	kvDir   = flag.String("kvdir", "./turnguide-db", "badger db dir for the preprocessed graph")
)

func main() {
	flag.Parse()

	f, err := os.Open(*mapFile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	def, err := gridmap.Parse(f)
	if err != nil {
		log.Fatal(err)
	}
	graph, err := gridmap.Build(def)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("parsed map %s: %d nodes, %d edges", *mapFile, graph.NumNodes(), graph.NumEdges())

	db, err := badger.Open(badger.DefaultOptions(*kvDir))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	edgeBatches := (graph.NumEdges() + 999) / 1000
	bar := progressbar.NewOptions(edgeBatches,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]saving graph to key-value db...[reset]"),
	)

	kvDB := kv.NewKVDB(db)
	err = kvDB.SaveGraph(context.Background(), graph.Nodes(), graph.Edges(), graph.Labels(),
		graph.BannedTurns(), func(batchDone int) {
			bar.Set(batchDone)
		})
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("preprocessing done, graph stored in %s", *kvDir)
}
