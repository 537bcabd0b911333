package server

import (
	"context"
	"encoding/json"

	"github.com/inglify/inglify"
)

// ErrorBody is the JSON body of every failed gateway call.
type ErrorBody struct {
	Error string `json:"error"`
}

// Respond runs one gateway call for a raw JSON body and returns the HTTP
// status and payload to encode. It is shared by the HTTP server and the
// Lambda handler.
func Respond(ctx context.Context, t inglify.Translator, body []byte) (int, any) {
	var req inglify.TranslationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		err = &inglify.ValidationError{Message: inglify.MsgRequired}
		return inglify.StatusCode(err), ErrorBody{Error: inglify.PublicMessage(err, inglify.MsgInternal)}
	}

	resp, err := t.Translate(ctx, req)
	if err != nil {
		return inglify.StatusCode(err), ErrorBody{Error: inglify.PublicMessage(err, inglify.MsgInternal)}
	}
	return inglify.StatusCode(nil), resp
}
