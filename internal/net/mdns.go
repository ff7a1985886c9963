package net

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_traceboard._tcp"

// Advertise publishes this board's library service on the local network.
// Callers shut the returned server down when the board closes.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,        // instance name
		serviceType, // service
		"",          // domain, defaults to .local
		"",          // host name, defaults to the OS host name
		port,
		nil, // IPs, auto-detected
		[]string{"TraceBoard"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	log.Printf("[HOST] Advertising %s on port %d", serviceType, port)
	return server, nil
}

// Browse looks for boards for up to timeout and calls found with the
// host:port of each one.
func Browse(timeout time.Duration, found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	<-done
	if err != nil {
		return fmt.Errorf("mDNS lookup: %w", err)
	}
	return nil
}

// Discover returns the first board found within timeout.
func Discover(timeout time.Duration) (string, error) {
	var first string
	err := Browse(timeout, func(addr string) {
		if first == "" {
			first = addr
		}
	})
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", fmt.Errorf("no board found on the local network")
	}
	return first, nil
}
