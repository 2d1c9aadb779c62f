// Package evo implements the generational genetic-programming loop.
//
// An Engine owns a population of block programs and repeats
// evaluate → select → breed for a configured number of generations, across
// independent trials, reporting progress to a Sink. Fitness evaluation fans
// out over a bounded worker pool; every other step runs on the coordinating
// goroutine, which also owns the engine's random source. Nothing in the loop
// is fatal: malformed candidates degrade to warnings and safe substitutes.
package evo
