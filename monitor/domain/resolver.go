package domain

import (
	"context"
	"fmt"
)

// PortLister enumerates the serial ports present on the host.
type PortLister interface {
	ListPorts() ([]PortInfo, error)
}

// DeviceOpener connects to a port and performs the sensor handshake.
type DeviceOpener interface {
	Open(ctx context.Context, port PortInfo) (Device, error)
}

// DeviceResolver turns an optional port filter into discovery results.
type DeviceResolver struct {
	lister PortLister
	opener DeviceOpener
	logger Logger
}

// Resolve probes every candidate port, or only filter when it is set.
// The result holds one entry per candidate in scan order; a failing port
// never stops the scan. Zero candidates yield an empty slice and no error.
// Only a failure to enumerate ports is returned as an error.
func (r *DeviceResolver) Resolve(ctx context.Context, filter PortPath) ([]DiscoveryResult, error) {
	candidates, err := r.candidates(filter)
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}

	results := make([]DiscoveryResult, 0, len(candidates))
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			results = append(results, DeviceFailed(candidate, err))
			continue
		}

		r.logger.Debug("probing %s (%s)", candidate.Path, candidate.Description)
		device, err := r.opener.Open(ctx, candidate)
		if err != nil {
			r.logger.Debug("%s rejected: %s", candidate.Path, err.Error())
			results = append(results, DeviceFailed(candidate, err))
			continue
		}
		results = append(results, DeviceFound(candidate, device))
	}

	return results, nil
}

func (r *DeviceResolver) candidates(filter PortPath) ([]PortInfo, error) {
	if filter != "" {
		return []PortInfo{{Path: filter, Description: "user-specified port"}}, nil
	}
	return r.lister.ListPorts()
}

// NewDeviceResolver creates a resolver over the given port lister and opener.
func NewDeviceResolver(lister PortLister, opener DeviceOpener, logger Logger) *DeviceResolver {
	return &DeviceResolver{
		lister: lister,
		opener: opener,
		logger: logger,
	}
}
