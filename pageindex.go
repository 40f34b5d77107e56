// Package pageindex answers natural-language questions about a single long
// structured document by navigating its outline instead of searching flat
// text. An oracle judges each visited section and decides whether to
// descend, extract, backtrack or stop; the collected sections are then
// synthesized into an answer with provenance.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goldmark/).
package pageindex
