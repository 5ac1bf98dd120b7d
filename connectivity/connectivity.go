// Package connectivity reports whether the host has a usable network path.
// The reporting core never consults it; callers that want to skip reporting
// while offline can gate on it.
package connectivity

import "net"

// Checker answers whether the host currently has network connectivity.
type Checker interface {
	IsConnected() bool
}

// InterfaceChecker decides connectivity from the host's network interfaces:
// connected means at least one interface is up, not loopback, and holds an
// address. It does not probe remote reachability.
type InterfaceChecker struct {
	// Lookup functions are swappable for tests; nil means the net package.
	interfaces func() ([]net.Interface, error)
	addrs      func(*net.Interface) ([]net.Addr, error)
}

// NewInterfaceChecker creates a checker backed by the OS interface list.
func NewInterfaceChecker() *InterfaceChecker {
	return &InterfaceChecker{}
}

func (c *InterfaceChecker) IsConnected() bool {
	listIfaces := c.interfaces
	if listIfaces == nil {
		listIfaces = net.Interfaces
	}
	listAddrs := c.addrs
	if listAddrs == nil {
		listAddrs = (*net.Interface).Addrs
	}

	ifaces, err := listIfaces()
	if err != nil {
		return false
	}

	for i := range ifaces {
		iface := &ifaces[i]
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := listAddrs(iface)
		if err != nil {
			continue
		}
		if len(addrs) > 0 {
			return true
		}
	}
	return false
}
