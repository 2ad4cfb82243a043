package estimote

import (
  "fmt"
  "net"

  "github.com/go-beacons/estimote-exporter/device"
)

type Device struct {
  name string
  addr net.HardwareAddr
  activeScan bool
  backend device.Backend
}

func (d *Device) Name() string {
  return d.name
}

func (d *Device) Addr() net.HardwareAddr {
  return d.addr
}

func (d *Device) Flags() (f device.Flags) {
  if d.activeScan {
    f |= device.FlagRequiresBleActiveScan
  }

  return f
}

func (d *Device) Backend() device.Backend {
  return d.backend
}

func (d *Device) String() string {
  return fmt.Sprintf("estimote[name=%q, addr=%v]", d.name, d.addr.String())
}
