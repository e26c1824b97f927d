package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
	orchestratorx "github.com/tanpawarit/agentic-todos/agent/orchestrator"
)

type createTodoRequest struct {
	Prompt string `json:"prompt"`
}

type createTodoResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newMux(o *orchestratorx.Orchestrator, requestTimeout time.Duration) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/todo/create", func(w http.ResponseWriter, r *http.Request) {
		var req createTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		ctx := r.Context()
		if requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, requestTimeout)
			defer cancel()
		}

		reply, err := o.CreateTodo(ctx, req.Prompt)
		if err != nil {
			writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, createTodoResponse{Reply: reply})
	})

	mux.HandleFunc("GET /api/todo/list", func(w http.ResponseWriter, r *http.Request) {
		todos, err := o.ListTodos(r.Context())
		if err != nil {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}
		if todos == nil {
			todos = []contractx.Todo{}
		}
		writeJSON(w, http.StatusOK, todos)
	})

	return mux
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, contractx.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, contractx.ErrLoopBudget):
		return http.StatusBadGateway
	case errors.Is(err, contractx.ErrModelInvoke):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}
