// Package file provides file-based implementations of driven port interfaces.
// These adapters read configuration and prompt templates from the local
// filesystem.
//
// Adapters:
//   - Config: TOML-based service configuration
//   - PromptStore: user-editable prompt templates with hot reload
package file
