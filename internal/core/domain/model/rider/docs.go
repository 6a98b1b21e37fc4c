// Package rider models delivery riders and the FIFO pool the dispatch engine
// draws them from.
package rider
