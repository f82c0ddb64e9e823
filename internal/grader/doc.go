// Package grader defines the domain types and collaborator interfaces shared by
// the site analysis pipeline: fetch responses, parsed documents, raw metrics,
// score sets, per-site results and the batch report handed to callers.
package grader
