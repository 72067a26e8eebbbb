package rendering

import "log"

// DiagnosticKind classifies recoverable render failures surfaced to the host.
type DiagnosticKind string

const (
	DiagMissingGrid         DiagnosticKind = "missing-grid"
	DiagDimensionMismatch   DiagnosticKind = "dimension-mismatch"
	DiagDegenerateBounds    DiagnosticKind = "degenerate-bounds"
	DiagTextureSizeExceeded DiagnosticKind = "texture-size-exceeded"
)

// Diagnostic is one structured warning. The core never fails a whole render
// call: a layer that cannot build reports a diagnostic and the remaining
// layers still render.
type Diagnostic struct {
	Kind    DiagnosticKind
	Layer   string
	Message string
}

// diagnosticSink collects diagnostics and logs each kind at most once per
// render pass so a bad grid does not spam the log every frame.
type diagnosticSink struct {
	list   []Diagnostic
	logged map[DiagnosticKind]bool
}

func newDiagnosticSink() *diagnosticSink {
	return &diagnosticSink{logged: make(map[DiagnosticKind]bool)}
}

func (d *diagnosticSink) add(kind DiagnosticKind, layer, message string) {
	d.list = append(d.list, Diagnostic{Kind: kind, Layer: layer, Message: message})
	if !d.logged[kind] {
		d.logged[kind] = true
		log.Printf("WARNING: layer %s: %s (%s)", layer, message, kind)
	}
}
