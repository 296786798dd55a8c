// Package retrieve implements the gateway's orchestration core: heading
// relevance scoring, excerpt budget allocation, the staged retrieval
// protocol against a provider, and extractive answer synthesis.
package retrieve
