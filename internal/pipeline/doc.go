// Package pipeline coordinates an extraction run: it discovers archives in a
// source directory, reads them on a bounded pool of workers and forwards
// every decoded record to a sink as soon as its read completes.
//
// Per-archive failures never abort a run. They are logged by the reader and
// collected as diagnostics in the Report. Only setup errors (bad source
// directory, bad filter) and sink write errors are returned as errors.
//
// Records reach the sink in completion order, which differs between runs.
package pipeline
