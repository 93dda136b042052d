// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding and LLM services, the similarity
// index, the session store, record sources, and prompt storage.
package driven
