// Package whisper wraps the faster-whisper CLI as the transcription
// collaborator: audio in, English translation out.
//
// The Service execs whisper-ctranslate2 (via uvx) with translate task and
// VAD filtering, parses the JSON it writes beside the staged audio file,
// and shapes the outcome into the fixed Result schema that is persisted as
// the artifact. A command runner hook keeps the subprocess out of tests.
package whisper
