/*
Package diagnostics carries the non-fatal findings of a merge.

When two models disagree on a shared setting the first value wins and a Conflict
is reported to a Sink. Sinks are injected into the engine, so callers decide
whether conflicts go to a logger, a metrics counter, a report, or all three:

	rec := &diagnostics.Recorder{}
	eng := mjmerge.New(mjmerge.WithSink(diagnostics.Multi(rec, diagnostics.LogSink(logger))))
*/
package diagnostics
