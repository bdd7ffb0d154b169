package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/intio/tilewm/client"
)

type APIServer struct {
	server *http.Server
	wm     *WM
}

func jsonResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	log.Debug("api", "status", status, "method", r.Method, "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	e := json.NewEncoder(w)
	if err := e.Encode(data); err != nil {
		log.Warn("api: encoding response", "err", err)
	}
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, err error) {
	jsonResponse(w, r, status, map[string]interface{}{"error": err.Error()})
}

func NewAPIServer(wm *WM, listenAddr string) (as *APIServer) {
	router := mux.NewRouter()
	server := &http.Server{
		Addr:    listenAddr,
		Handler: router,
		// No read/write timeouts: /events connections are long-lived.
		ReadHeaderTimeout: 1 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	as = &APIServer{
		server: server,
		wm:     wm,
	}

	// do runs fn on the window manager loop, answering 503 if the
	// request gives up first.
	do := func(w http.ResponseWriter, r *http.Request, fn func()) bool {
		if err := wm.Do(r.Context(), fn); err != nil {
			errorResponse(w, r, http.StatusServiceUnavailable, err)
			return false
		}
		return true
	}

	router.HandleFunc("/workspaces/", func(w http.ResponseWriter, r *http.Request) {
		var items []WorkspaceState
		if !do(w, r, func() { items = wm.Snapshot() }) {
			return
		}
		jsonResponse(w, r, http.StatusOK, map[string]interface{}{"items": items})
	}).Methods("GET")

	router.HandleFunc("/workspaces/{idx:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		idx, _ := strconv.Atoi(mux.Vars(r)["idx"])
		var items []WorkspaceState
		if !do(w, r, func() { items = wm.Snapshot() }) {
			return
		}
		if idx >= len(items) {
			jsonResponse(w, r, http.StatusNotFound, nil)
			return
		}
		jsonResponse(w, r, http.StatusOK, map[string]interface{}{"item": items[idx]})
	}).Methods("GET")

	router.HandleFunc("/clients/", func(w http.ResponseWriter, r *http.Request) {
		var items []client.Client
		if !do(w, r, func() { items = wm.ClientList() }) {
			return
		}
		jsonResponse(w, r, http.StatusOK, map[string]interface{}{"items": items})
	}).Methods("GET")

	getID := func(r *http.Request) (client.WinID, bool) {
		id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
		if err != nil {
			return client.None, false
		}
		return client.WinID(id), true
	}

	router.HandleFunc("/clients/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := getID(r)
		if !ok {
			jsonResponse(w, r, http.StatusNotFound, nil)
			return
		}
		var (
			found bool
			item  client.Client
			err   error
		)
		if !do(w, r, func() {
			c, ok := wm.clients.Get(id)
			if !ok {
				return
			}
			found, item = true, *c
			if r.Method == http.MethodDelete {
				err = wm.x.Close(id, false)
			}
		}) {
			return
		}
		switch {
		case !found:
			jsonResponse(w, r, http.StatusNotFound, nil)
		case err != nil:
			errorResponse(w, r, http.StatusInternalServerError, err)
		default:
			jsonResponse(w, r, http.StatusOK, map[string]interface{}{"item": item})
		}
	}).Methods("GET", "DELETE")

	router.HandleFunc("/commands", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Command string `json:"command"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			errorResponse(w, r, http.StatusUnprocessableEntity, err)
			return
		}
		if err := checkCommand(body.Command); err != nil {
			errorResponse(w, r, http.StatusBadRequest, err)
			return
		}
		var err error
		if !do(w, r, func() { err = wm.Exec(body.Command) }) {
			return
		}
		if err != nil {
			errorResponse(w, r, http.StatusBadRequest, err)
			return
		}
		jsonResponse(w, r, http.StatusOK, map[string]interface{}{"ok": true})
	}).Methods("POST")

	router.Handle("/metrics", metricsHandler()).Methods("GET")
	router.HandleFunc("/events", makeWSHandler(wm.hub.serve))

	router.PathPrefix("/").Handler(http.NotFoundHandler())
	return as
}

func (as *APIServer) Start() {
	log.Info("listening", "addr", "http://"+as.server.Addr)
	if err := as.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api server", "err", err)
	}
}
