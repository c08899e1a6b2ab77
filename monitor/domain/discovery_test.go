package domain

import (
	"errors"
	"testing"
)

func TestDiscoveryResult_ExactlyOneOutcome(t *testing.T) {
	port := PortInfo{Path: "/dev/ttyUSB0", Description: "CP2102"}

	found := DeviceFound(port, newMockDevice("/dev/ttyUSB0"))
	if _, ok := found.Device(); !ok || found.Err() != nil {
		t.Errorf("found result should carry only a device: %+v", found)
	}

	failed := DeviceFailed(port, errPermissionDenied)
	if _, ok := failed.Device(); ok || !errors.Is(failed.Err(), errPermissionDenied) {
		t.Errorf("failed result should carry only an error: %+v", failed)
	}

	nilDevice := DeviceFound(port, nil)
	if _, ok := nilDevice.Device(); ok || nilDevice.Err() == nil {
		t.Error("a nil device must be recorded as a failure")
	}

	nilErr := DeviceFailed(port, nil)
	if nilErr.Err() == nil {
		t.Error("a failure must always carry an error")
	}

	if failed.Port != port.Path || failed.Description != port.Description {
		t.Errorf("port metadata not kept: %+v", failed)
	}
}

func TestUsableDevices(t *testing.T) {
	t.Run("no candidates", func(t *testing.T) {
		_, err := UsableDevices(nil)
		if !errors.Is(err, ErrNoSerialPorts) {
			t.Errorf("expected ErrNoSerialPorts, got %v", err)
		}
	})

	t.Run("all failed", func(t *testing.T) {
		results := []DiscoveryResult{
			DeviceFailed(PortInfo{Path: "/dev/ttyS0"}, errPermissionDenied),
			DeviceFailed(PortInfo{Path: "/dev/ttyS1"}, errPermissionDenied),
		}
		_, err := UsableDevices(results)
		if !errors.Is(err, ErrNoUsableDevices) {
			t.Errorf("expected ErrNoUsableDevices, got %v", err)
		}
	})

	t.Run("keeps discovery order", func(t *testing.T) {
		results := []DiscoveryResult{
			DeviceFound(PortInfo{Path: "/dev/ttyUSB1"}, newMockDevice("/dev/ttyUSB1")),
			DeviceFailed(PortInfo{Path: "/dev/ttyS0"}, errPermissionDenied),
			DeviceFound(PortInfo{Path: "/dev/ttyUSB0"}, newMockDevice("/dev/ttyUSB0")),
		}
		devices, err := UsableDevices(results)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(devices) != 2 || devices[0].ID() != "ttyUSB1" || devices[1].ID() != "ttyUSB0" {
			t.Errorf("unexpected devices: %v", devices)
		}
	})
}

func TestDeviceIDFromPort(t *testing.T) {
	tests := []struct {
		port PortPath
		want string
	}{
		{"/dev/ttyUSB0", "ttyUSB0"},
		{"/dev/serial/by-id/usb-Silicon_Labs_CP2102-if00", "usb-Silicon_Labs_CP2102-if00"},
		{"COM3", "COM3"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DeviceIDFromPort(tt.port); got != tt.want {
			t.Errorf("DeviceIDFromPort(%q) = %q, want %q", tt.port, got, tt.want)
		}
	}
}
