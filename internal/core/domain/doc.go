// Package domain contains the core business entities for sparc-chat:
// raw connectivity records, canonical connection documents, conversation
// turns, and the chat request/response contract. It has no dependencies on
// adapters or infrastructure.
package domain
