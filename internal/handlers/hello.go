package handlers

import (
	"net/http"
	"strconv"
)

// HelloResponse is the body of GET /hello/dto.
type HelloResponse struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// Hello answers plain text "hello".
func Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("hello"))
}

// HelloDTO echoes the name and amount query parameters as JSON.
func HelloDTO(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.Atoi(q.Get("amount"))
	if err != nil {
		JSONError(w, "amount must be an integer", http.StatusBadRequest)
		return
	}

	writeJSON(w, HelloResponse{Name: q.Get("name"), Amount: amount})
}
