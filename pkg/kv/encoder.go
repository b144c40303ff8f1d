package kv

import (
	"github.com/kelindar/binary"

	"github.com/lintang-b-s/turnguide/pkg/datastructure"
)

type labelPair struct {
	Label  byte
	NodeID int32
}

type graphMeta struct {
	NodeCount int32
	EdgeCount int32
	Batches   int32
}

func encodeEdges(edges []datastructure.Edge) ([]byte, error) {
	bb, err := binary.Marshal(edges)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeEdges(bbCompressed []byte) ([]datastructure.Edge, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	var edges []datastructure.Edge
	err = binary.Unmarshal(bb, &edges)
	return edges, err
}

func encodeNodes(nodes []datastructure.Node) ([]byte, error) {
	bb, err := binary.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeNodes(bbCompressed []byte) ([]datastructure.Node, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	var nodes []datastructure.Node
	err = binary.Unmarshal(bb, &nodes)
	return nodes, err
}

func encodeLabels(labels map[byte]int32) ([]byte, error) {
	pairs := make([]labelPair, 0, len(labels))
	for label, id := range labels {
		pairs = append(pairs, labelPair{Label: label, NodeID: id})
	}
	bb, err := binary.Marshal(pairs)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeLabels(bbCompressed []byte) (map[byte]int32, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	var pairs []labelPair
	if err = binary.Unmarshal(bb, &pairs); err != nil {
		return nil, err
	}
	labels := make(map[byte]int32, len(pairs))
	for _, p := range pairs {
		labels[p.Label] = p.NodeID
	}
	return labels, nil
}

func encodeBannedTurns(banned [][3]int32) ([]byte, error) {
	bb, err := binary.Marshal(banned)
	if err != nil {
		return nil, err
	}
	return compress(bb)
}

func decodeBannedTurns(bbCompressed []byte) ([][3]int32, error) {
	bb, err := decompress(bbCompressed)
	if err != nil {
		return nil, err
	}
	var banned [][3]int32
	err = binary.Unmarshal(bb, &banned)
	return banned, err
}

func encodeMeta(meta graphMeta) ([]byte, error) {
	return binary.Marshal(meta)
}

func decodeMeta(bb []byte) (graphMeta, error) {
	var meta graphMeta
	err := binary.Unmarshal(bb, &meta)
	return meta, err
}
