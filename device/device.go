package device

import (
	"errors"
	"net"

	"github.com/go-ble/ble"
)

var (
  ErrInvalidData = errors.New("invalid data")
  ErrForeignPacket = errors.New("packet belongs to another vendor or format")
)

type Flags uint8

const (
  FlagRequiresBleActiveScan Flags = 1 << iota
)

type Device interface {
  Name() string
  Addr() net.HardwareAddr
  Flags() Flags
  Backend() Backend
  String() string
}

// PassiveBackendScanType is the BLE scan type used to discover the device.
type PassiveBackendScanType uint8

const (
  PassiveBackendScanTypePassive PassiveBackendScanType = iota
  PassiveBackendScanTypeActive
)

// PassiveBackend represents a device that is read entirely from its broadcast
// advertisements, without ever establishing a connection.
type PassiveBackend interface {
  ScanType() PassiveBackendScanType
  ParseAdvertisement(a ble.Advertisement) (Reading, error)
}

type Backend any
