package infrastructure

import (
	"fmt"

	"go.bug.st/serial/enumerator"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
)

// SerialPortLister enumerates the serial ports of the host.
type SerialPortLister struct {
	list func() ([]*enumerator.PortDetails, error)
}

// ListPorts returns every serial port in enumeration order.
func (l *SerialPortLister) ListPorts() ([]monitorDomain.PortInfo, error) {
	details, err := l.list()
	if err != nil {
		return nil, err
	}

	ports := make([]monitorDomain.PortInfo, 0, len(details))
	for _, d := range details {
		if d == nil {
			continue
		}
		ports = append(ports, monitorDomain.PortInfo{
			Path:        monitorDomain.PortPath(d.Name),
			Description: portDescription(d),
		})
	}
	return ports, nil
}

func portDescription(d *enumerator.PortDetails) string {
	switch {
	case d.Product != "":
		return d.Product
	case d.IsUSB:
		return fmt.Sprintf("USB device %s:%s", d.VID, d.PID)
	default:
		return "serial port"
	}
}

// NewSerialPortLister creates a lister backed by the operating system.
func NewSerialPortLister() *SerialPortLister {
	return &SerialPortLister{list: enumerator.GetDetailedPortsList}
}
