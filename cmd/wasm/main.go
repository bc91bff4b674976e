//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"syscall/js"

	"github.com/himanishpuri/ringabell/pkg/logger"
	"github.com/himanishpuri/ringabell/pkg/ringabell"
)

// Error codes returned to JavaScript
const (
	ErrorNone = iota
	ErrorInvalidArgs
	ErrorMalformedInput
	ErrorPrecondition
	ErrorInternal
)

var service ringabell.Service

// bytesArg copies a Uint8Array argument into Go memory.
func bytesArg(v js.Value) ([]byte, error) {
	if v.Type() != js.TypeObject || v.Get("byteLength").Type() != js.TypeNumber {
		return nil, fmt.Errorf("expected a Uint8Array")
	}
	buf := make([]byte, v.Get("byteLength").Int())
	js.CopyBytesToGo(buf, v)
	return buf, nil
}

func errorCode(err error) int {
	switch ringabell.KindOf(err) {
	case ringabell.KindMalformedInput:
		return ErrorMalformedInput
	case ringabell.KindPreconditionViolation:
		return ErrorPrecondition
	default:
		return ErrorInternal
	}
}

// register(name, bytes) adds a recording to the index.
// Returns: {error: number, data: string}, data is the entry as JSON.
func register(this js.Value, args []js.Value) any {
	if len(args) < 2 || args[0].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 2 arguments: name, audioBytes")
	}
	raw, err := bytesArg(args[1])
	if err != nil {
		return makeErrorResponse(ErrorInvalidArgs, err.Error())
	}

	entry, err := service.Register(context.Background(), args[0].String(), raw)
	if err != nil {
		return makeErrorResponse(errorCode(err), err.Error())
	}
	b, err := json.Marshal(entry)
	if err != nil {
		return makeErrorResponse(ErrorInternal, err.Error())
	}
	return makeResponse(string(b))
}

// search(bytes) matches a query clip.
// Returns: {error: number, data: string}, data is {"songName":...,"score":...}.
func search(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected 1 argument: audioBytes")
	}
	raw, err := bytesArg(args[0])
	if err != nil {
		return makeErrorResponse(ErrorInvalidArgs, err.Error())
	}

	result, err := service.SearchJSON(context.Background(), raw)
	if err != nil {
		return makeErrorResponse(errorCode(err), err.Error())
	}
	return makeResponse(result)
}

func makeResponse(data string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", data)
	return result
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	log := logger.New(logger.Config{Level: logger.WARN, Output: os.Stdout})

	var err error
	service, err = ringabell.NewService(ringabell.WithLogger(log))
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}

	js.Global().Set("register", js.FuncOf(register))
	js.Global().Set("search", js.FuncOf(search))

	window := js.Global().Get("window")
	if !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		window.Call("dispatchEvent", js.Global().Get("CustomEvent").New("wasmReady", eventInit))
	}

	select {}
}
