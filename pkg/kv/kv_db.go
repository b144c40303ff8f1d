package kv

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dgraph-io/badger/v4"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

var (
	ErrGraphNotFound = errors.New("no preprocessed graph in key-value db")
)

const (
	keyMeta        = "graph:meta"
	keyNodes       = "graph:nodes"
	keyLabels      = "graph:labels"
	keyBannedTurns = "graph:banned_turns"
	edgeBatchKeyFn = "graph:edges:%d"

	edgeBatchSize = 1000
)

// KVDB persists the preprocessed guidance graph: node coordinates, edge
// attribute records (names, refs, lanes, turn-lane tags, geometry), the
// grid label table and the turn-restriction triples.
type KVDB struct {
	db *badger.DB
}

func NewKVDB(db *badger.DB) *KVDB {
	return &KVDB{db}
}

// SaveGraph writes all graph tables in write batches. Edges are chunked so
// one badger value never grows past a few megabytes even for large maps.
func (k *KVDB) SaveGraph(ctx context.Context, nodes []datastructure.Node, edges []datastructure.Edge,
	labels map[byte]int32, bannedTurns [][3]int32, progress func(batchDone int)) error {

	batches := (len(edges) + edgeBatchSize - 1) / edgeBatchSize

	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for i := 0; i < batches; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		end := (i + 1) * edgeBatchSize
		if end > len(edges) {
			end = len(edges)
		}
		val, err := encodeEdges(edges[i*edgeBatchSize : end])
		if err != nil {
			return err
		}
		if err := batch.Set([]byte(fmt.Sprintf(edgeBatchKeyFn, i)), val); err != nil {
			return err
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	nodesVal, err := encodeNodes(nodes)
	if err != nil {
		return err
	}
	if err := batch.Set([]byte(keyNodes), nodesVal); err != nil {
		return err
	}

	labelsVal, err := encodeLabels(labels)
	if err != nil {
		return err
	}
	if err := batch.Set([]byte(keyLabels), labelsVal); err != nil {
		return err
	}

	bannedVal, err := encodeBannedTurns(bannedTurns)
	if err != nil {
		return err
	}
	if err := batch.Set([]byte(keyBannedTurns), bannedVal); err != nil {
		return err
	}

	metaVal, err := encodeMeta(graphMeta{
		NodeCount: int32(len(nodes)),
		EdgeCount: int32(len(edges)),
		Batches:   int32(batches),
	})
	if err != nil {
		return err
	}
	if err := batch.Set([]byte(keyMeta), metaVal); err != nil {
		return err
	}

	if err := batch.Flush(); err != nil {
		log.Printf("error saving graph: %v", err)
		return err
	}
	log.Printf("saved %d nodes and %d edges to key-value db", len(nodes), len(edges))
	return nil
}

// LoadGraph reads the tables back. A missing meta key means preprocessing
// never ran against this db directory.
func (k *KVDB) LoadGraph(ctx context.Context) ([]datastructure.Node, []datastructure.Edge,
	map[byte]int32, [][3]int32, error) {

	metaVal, err := k.get([]byte(keyMeta))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil, nil, nil, ErrGraphNotFound
		}
		return nil, nil, nil, nil, err
	}
	meta, err := decodeMeta(metaVal)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	nodesVal, err := k.get([]byte(keyNodes))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	nodes, err := decodeNodes(nodesVal)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	edges := make([]datastructure.Edge, 0, meta.EdgeCount)
	for i := int32(0); i < meta.Batches; i++ {
		select {
		case <-ctx.Done():
			return nil, nil, nil, nil, fmt.Errorf("context cancelled")
		default:
		}

		val, err := k.get([]byte(fmt.Sprintf(edgeBatchKeyFn, i)))
		if err != nil {
			return nil, nil, nil, nil, err
		}
		batchEdges, err := decodeEdges(val)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		edges = append(edges, batchEdges...)
	}

	labelsVal, err := k.get([]byte(keyLabels))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	labels, err := decodeLabels(labelsVal)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	bannedVal, err := k.get([]byte(keyBannedTurns))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	banned, err := decodeBannedTurns(bannedVal)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return nodes, edges, labels, banned, nil
}

func (k *KVDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (k *KVDB) Close() {
	k.db.Close()
}
