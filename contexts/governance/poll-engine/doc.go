// Package pollengine implements the poll question engine inside the
// governance context.
//
// The module owns questions, their options, and raw answer recording and
// counting. Answering is strictly one-shot per question per responder, and
// the duplicate check is an atomic repository operation so the survey and
// vote services inherit identical semantics without re-implementing it. It
// keeps business rules in application/domain layers and isolates
// infrastructure concerns behind ports and adapters.
package pollengine
