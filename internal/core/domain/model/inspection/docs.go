// Package inspection provides the QualityInspection aggregate root for the
// quality control gate between collection and dispatch.
//
// Every part collected from a garage is inspected before it may travel to the
// customer. The aggregate enforces the verdict rules: failed parts must carry
// an actionable failure reason and category, passed parts get a quality grade,
// and findings merge rather than overwrite across re-submissions.
package inspection
