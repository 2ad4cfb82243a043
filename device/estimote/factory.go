package estimote

import (
  "fmt"
  "net"
  "strings"

  "github.com/go-beacons/estimote-exporter/device"
  "github.com/rs/zerolog/log"
)

type Factory struct{}

func (f *Factory) FromSpec(spec device.DeviceSpec) (device.Device, error) {
  d := Device{}

  addr := spec.Addr()

  if name := spec.Name(); name != "" {
    d.name = name
  } else {
    d.name = "estimote-" + strings.ToLower(strings.ReplaceAll(addr, ":", ""))
  }

  hwAddr, err := net.ParseMAC(addr)
  if err != nil {
    return nil, fmt.Errorf("invalid addr: %w", err)
  }

  d.addr = hwAddr

  // telemetry and nearable frames are plain advertisements, so a passive scan
  // sees everything. Active scans remain opt-in for beacons configured to
  // split data into scan responses.
  if d.activeScan = spec.Bool("active-scan"); d.activeScan {
    log.Debug().Stringer("Device", &d).Msg("estimote: requesting active scans for device")
  }

  d.backend = &backendPassive{}

  return &d, nil
}

func (f *Factory) Help() string {
  return `Supported parameters:
addr (string, required): MAC address of this Estimote beacon
name (string): Name of this Estimote beacon
active-scan (bool): Request scan responses while scanning. Only needed for beacons configured to use them.`
}
