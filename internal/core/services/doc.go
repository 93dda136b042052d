// Package services implements the core pipeline: record normalisation,
// prompt rendering, model-output parsing, ingest, and the conversational
// chat service that composes them.
package services
