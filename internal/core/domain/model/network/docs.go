// Package network models the delivery network as an undirected weighted graph
// of cities.
//
// FindPaths enumerates up to PathLimit simple paths between two cities with a
// backtracking depth-first search that never follows a blocked road, and
// PickShortest ranks them. BlockRandomRoad simulates a live road closure.
// DefaultDefinition describes the stock ten-city network with Lahore as hub.
package network
