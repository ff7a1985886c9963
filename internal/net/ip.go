package net

import (
	"log"
	"net"
)

// GetOutgoingIP finds the preferred local IP address for the host to share.
func GetOutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; fall back to the local interfaces.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String()
}

// getLocalIPFallback is used on networks without internet access.
func getLocalIPFallback() string {
	if ip := firstIPv4(); ip != nil {
		return ip.String()
	}
	log.Println("No suitable local IP found, share link may not work from other machines.")
	return "127.0.0.1"
}

// firstIPv4 returns the first IPv4 address of an interface that is up and
// not a loopback.
func firstIPv4() net.IP {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return nil
}
