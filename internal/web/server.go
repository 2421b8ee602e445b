package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vaultlens/vaultlens/internal/domain"
	"github.com/vaultlens/vaultlens/internal/events"
)

type runSnapshotReader interface {
	SnapshotsAfter(index uint64) ([]domain.RunSnapshotRecord, error)
}

// Server exposes HTTP endpoints serving the HTML dashboard and an SSE
// stream of enrichment runs.
type Server struct {
	Addr   string
	Store  runSnapshotReader
	Events *events.RefreshBroadcaster
	Chains domain.ChainTable
}

// NewServer creates a new web server instance.
func NewServer(addr string, store runSnapshotReader, broadcaster *events.RefreshBroadcaster, chains domain.ChainTable) *Server {
	return &Server{Addr: addr, Store: store, Events: broadcaster, Chains: chains}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/vaults/stream", s.handleVaultStream)
	mux.HandleFunc("/chains", s.handleChains)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Chains); err != nil {
		log.Printf("encode chain table: %v", err)
	}
}

func (s *Server) handleVaultStream(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil || s.Events == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "snapshot stream not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	send := func(snapshot domain.RunSnapshot) error {
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "event: run\n")
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return nil
	}

	// subscribe before replay so runs landing mid-replay are not lost
	updates := s.Events.Subscribe()
	defer s.Events.Unsubscribe(updates)

	records, err := s.Store.SnapshotsAfter(0)
	if err != nil {
		http.Error(w, "failed to load snapshots", http.StatusInternalServerError)
		log.Printf("vault stream initial load: %v", err)
		return
	}
	for _, record := range records {
		if err := send(record.Snapshot); err != nil {
			log.Printf("vault stream replay: %v", err)
			return
		}
	}

	// send a comment heartbeat every 30s so proxies keep connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case snapshot, ok := <-updates:
			if !ok {
				return
			}
			if err := send(snapshot); err != nil {
				log.Printf("vault stream push: %v", err)
				return
			}
		}
	}
}
