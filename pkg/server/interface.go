/*
Package server implements msgpack IPC for sentence completion.

Clients write one msgpack map per request to the server's input and read one
msgpack map per response from its output. Requests are processed in order,
synchronously, with timing info included in completion responses.

# IPC

On start the server writes a ready message:

	{"status": "ready"}

Completion requests carry an ID and a prompt. The action defaults to "complete":

	{"id": "req_001", "p": "th"}

The response holds the single most frequent sentence starting with the prompt,
its frequency, a found flag and the time taken in microseconds:

	{"id": "req_001", "s": "there", "f": 42, "n": true, "t": 3}

A prompt with no completion is not an error; "n" is false and "s" is empty.

Other actions:

	{"id": "f1", "action": "freq", "p": "there"}   -> {"id": "f1", "f": 42}
	{"id": "s1", "action": "stats"}                -> {"id": "s1", "stats": {...}}
	{"id": "h1", "action": "health"}               -> {"id": "h1", "status": "ok"}

Malformed requests, unknown actions and prompts outside the configured length
bounds get an error message:

	{"id": "req_002", "e": "prompt exceeds maximum length of 256", "c": 400}

A well-formed msgpack value that is not a request map is answered with a 400
and the loop continues. Bytes that are not valid msgpack cannot be framed, so
the server answers with a 400 carrying an empty ID and stops reading.
*/
package server

// Request is the union of every message a client may send.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action,omitempty"` // "complete" (default), "freq", "stats", "health"
	Prompt string `msgpack:"p"`
}

// CompletionRequest is the minimal completion request
type CompletionRequest struct {
	ID     string `msgpack:"id"`
	Prompt string `msgpack:"p"`
}

// CompletionResponse carries the best completion for a prompt
type CompletionResponse struct {
	ID        string `msgpack:"id"`
	Sentence  string `msgpack:"s"`
	Frequency int    `msgpack:"f"`
	Found     bool   `msgpack:"n"`
	TimeTaken int64  `msgpack:"t"`
}

// FrequencyResponse answers a "freq" action
type FrequencyResponse struct {
	ID        string `msgpack:"id"`
	Frequency int    `msgpack:"f"`
}

// StatsResponse answers a "stats" action
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// StatusResponse is used for the ready message and "health"
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// CompletionError holds basic error information for a failed request
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
