// Package jursearch searches a legal and accounting content API and the
// open web, turns the API's nested JSON document trees into clean plain
// text, and serves merged, ranked results to an LLM agent through tools.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, trafilatura/, gemini/).
// The document-tree extractor itself lives in doctree/.
package jursearch
