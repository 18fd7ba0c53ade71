// Package snapper implements ConnectivitySnapper: it maps each POI
// (lon, lat) to the single graph node that is close AND well-connected
// enough to seed shortest-path propagation, avoiding the dead-end service
// roads a naive nearest-neighbor snap would pick.
//
// The k-nearest-node query is a small, self-contained static k-d tree
// (kdtree.go). The bounded max-heap that keeps the k closest candidates
// during a query (heap.go) is sized to k and rebuilt per query.
package snapper
