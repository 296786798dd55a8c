// Package eldin provides a retrieval-augmented question-answering gateway
// over a markdown document provider. The gateway turns a free-text question
// into a bounded, citation-backed answer by composing three provider calls
// (document search, section listing, excerpt fetch) under strict character
// budgets; the provider indexes a corpus of markdown documents and serves
// them through that fixed set of retrieval primitives.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/) or their domain
// role (retrieve/, markdown/).
package eldin
