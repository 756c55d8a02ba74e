package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/json/formats", HandlerAjaxFormats).Methods(http.MethodGet)
	r.HandleFunc("/decode/{format}/{width:[0-9]+}/{height:[0-9]+}", HandlerDecode).Methods(http.MethodPost)
	r.HandleFunc("/ws/status", HandlerStatusWs)
	return r
}

func StartServer(addr string) error {
	h := handlers.LoggingHandler(os.Stdout, NewRouter())
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
