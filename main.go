package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"TraceBoard/internal/config"
	"TraceBoard/internal/export"
	boardnet "TraceBoard/internal/net"
	"TraceBoard/internal/state"
	"TraceBoard/internal/ui"
)

const CustomURLScheme = "traceboard://"

type options struct {
	configPath  string
	libraryPath string
	port        int
	discover    bool
	exportPath  string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.DefaultFilename, "Path to the YAML config file.")
	flag.StringVar(&opts.libraryPath, "library", "", "Picture library file (overrides library_path).")
	flag.IntVar(&opts.port, "port", 0, "Port to share the library on (overrides port).")
	flag.BoolVar(&opts.discover, "discover", false, "Join the first board found on the local network.")
	flag.StringVar(&opts.exportPath, "export", "", "Write the picture library to this PDF and exit.")
	flag.Parse()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	if opts.libraryPath != "" {
		cfg.LibraryPath = opts.libraryPath
	}
	if opts.port != 0 {
		cfg.Port = opts.port
	}

	args := flag.Args()
	switch {
	case opts.exportPath != "":
		if err := exportLibrary(cfg.LibraryPath, opts.exportPath); err != nil {
			log.Fatalf("Export: %v", err)
		}
	case len(args) > 0 && strings.HasPrefix(args[0], CustomURLScheme):
		runClient(cfg, hostAddress(args[0]))
	case opts.discover:
		log.Println("Looking for a board on the local network...")
		addr, err := boardnet.Discover(3 * time.Second)
		if err != nil {
			log.Fatalf("Discover: %v", err)
		}
		runClient(cfg, addr)
	default:
		runHost(cfg)
	}
}

func exportLibrary(libraryPath, pdfPath string) error {
	pictures, err := state.LoadFile(libraryPath)
	if err != nil {
		return err
	}
	if err := export.PicturesPDF(pdfPath, pictures); err != nil {
		return fmt.Errorf("writing %s: %w", pdfPath, err)
	}
	log.Printf("Exported %d pictures to %s", len(pictures), pdfPath)
	return nil
}

func hostAddress(link string) string {
	address := strings.TrimPrefix(link, CustomURLScheme)
	return strings.TrimSuffix(address, "/")
}

func runHost(cfg config.Config) {
	log.Println("Starting as HOST")
	pictures, err := state.LoadFile(cfg.LibraryPath)
	if err != nil {
		log.Printf("[HOST] Could not load library, starting empty: %v", err)
		pictures = nil
	}
	lib := state.NewLibrary(pictures)
	board := ui.NewBoard(lib, cfg.Tracker())
	hub := boardnet.NewHub(lib)

	lib.OnChange = func(snap state.Snapshot, local bool) {
		if err := state.SaveFile(cfg.LibraryPath, snap.Pictures); err != nil {
			log.Printf("[HOST] Save failed: %v", err)
			board.SetStatus("Could not save pictures")
		}
		if local {
			hub.Broadcast(snap, nil)
		}
		board.LibraryChanged()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := hub.ListenAndServe(ctx, cfg.Port); err != nil {
			log.Printf("[HOST] Library server stopped: %v", err)
			board.SetStatus("Sharing unavailable: " + err.Error())
		}
	}()

	if cfg.ShouldAdvertise() {
		server, err := boardnet.Advertise(cfg.Port)
		if err != nil {
			log.Printf("[HOST] %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	shareLink := fmt.Sprintf("%s%s:%d", CustomURLScheme, boardnet.GetOutgoingIP(), cfg.Port)
	board.Run(shareLink)
}

// hostLink holds the client's connection once it is up, so library edits
// made before then are simply not sent.
type hostLink struct {
	mu   sync.Mutex
	peer *boardnet.Peer
}

func (h *hostLink) set(p *boardnet.Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peer = p
}

func (h *hostLink) send(snap state.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.peer == nil {
		return
	}
	if err := h.peer.Send(snap); err != nil {
		log.Printf("[CLIENT] Failed to send library: %v", err)
	}
}

func runClient(cfg config.Config, addr string) {
	log.Println("Starting as CLIENT")
	lib := state.NewLibrary(nil)
	board := ui.NewBoard(lib, cfg.Tracker())

	link := &hostLink{}
	lib.OnChange = func(snap state.Snapshot, local bool) {
		if local {
			link.send(snap)
		}
		board.LibraryChanged()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go connectToHost(ctx, addr, lib, board, link)
	board.Run("")
}

func connectToHost(ctx context.Context, addr string, lib *state.Library, board *ui.Board, link *hostLink) {
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	peer, err := boardnet.Dial(dialCtx, addr)
	if err != nil {
		board.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer peer.Close()
	go func() {
		<-ctx.Done()
		peer.Close()
	}()

	link.set(peer)
	defer link.set(nil)
	board.SetStatus("Connected to " + addr)

	err = peer.Listen(func(snap state.Snapshot) {
		lib.Merge(snap)
	})
	log.Printf("[CLIENT] Disconnected from %s: %v", addr, err)
	board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
}
