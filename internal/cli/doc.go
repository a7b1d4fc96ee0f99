// Package cli is the interactive notesum terminal client.
//
// It wires configuration, the local user database, the extraction
// dispatcher, the Gemini-backed summarizer and speech recognizer into a REPL.
// Typical flow: register or log in, load a note (typed, uploaded, dictated or
// an image), summarize it and export the summary.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli
