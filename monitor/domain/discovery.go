package domain

import "errors"

// PortInfo describes a candidate serial port.
type PortInfo struct {
	Path        PortPath
	Description string
}

// DiscoveryResult is the outcome of probing one candidate port.
// It carries either a device or an error, never both.
type DiscoveryResult struct {
	Description string
	Port        PortPath

	device Device
	err    error
}

// DeviceFound builds a successful result. A nil device is recorded as a failure.
func DeviceFound(candidate PortInfo, device Device) DiscoveryResult {
	if device == nil {
		return DeviceFailed(candidate, errors.New("no device returned for port"))
	}
	return DiscoveryResult{
		Description: candidate.Description,
		Port:        candidate.Path,
		device:      device,
	}
}

// DeviceFailed builds a failed result.
func DeviceFailed(candidate PortInfo, err error) DiscoveryResult {
	if err == nil {
		err = errors.New("unknown error")
	}
	return DiscoveryResult{
		Description: candidate.Description,
		Port:        candidate.Path,
		err:         err,
	}
}

// Device returns the discovered device and true, or nil and false on failure.
func (r DiscoveryResult) Device() (Device, bool) {
	return r.device, r.device != nil
}

// Err returns the discovery error, nil on success.
func (r DiscoveryResult) Err() error {
	return r.err
}

// UsableDevices extracts devices from discovery results, preserving order.
// It returns ErrNoSerialPorts for an empty result set and ErrNoUsableDevices
// when every candidate failed.
func UsableDevices(results []DiscoveryResult) ([]Device, error) {
	if len(results) == 0 {
		return nil, ErrNoSerialPorts
	}

	var devices []Device
	for _, r := range results {
		if device, ok := r.Device(); ok {
			devices = append(devices, device)
		}
	}
	if len(devices) == 0 {
		return nil, ErrNoUsableDevices
	}
	return devices, nil
}
