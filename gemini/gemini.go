// Package gemini implements [vigil.Provider] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK, flattening the SDK's
// iter.Seq2 streaming iterator into the pull-based [vigil.Source] of
// plain text deltas. Hosted reasoning parts are skipped: the classifier
// downstream only deals in inline think markers, and Gemini reports its
// thinking out of band.
package gemini

const defaultModel = "gemini-2.5-flash"
