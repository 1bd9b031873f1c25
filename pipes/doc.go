// Package pipes provides ready-made pipes and pipe sets for the dispatch
// engine: request id propagation, structured access logging, HTTP basic
// authentication and Prometheus metrics.
//
// Pipes that need both a before and an after half (request id, access
// log, metrics) are exposed as dispatch.PipeSet values, so an action or a
// base template includes them as one unit and the halves stay paired:
//
//	set := pipes.RequestID(pipes.RequestIDConfig{})
//	b.Action(dispatch.ActionConfig{
//		ID:       "Users::Show",
//		PipeSets: []dispatch.PipeSet{set},
//		Handler:  showUser,
//	})
//
// Single-direction pipes (basic auth) are plain dispatch.Pipe values.
package pipes
