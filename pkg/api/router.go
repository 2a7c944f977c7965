package api

import (
	"net/http"

	"promptpad/pkg/api/middleware"
)

type Handler interface {
	Register(mux *http.ServeMux)
}

func NewRouter(handlers ...Handler) http.Handler {
	mux := http.NewServeMux()
	for _, h := range handlers {
		h.Register(mux)
	}
	return middleware.RequestID(mux)
}
