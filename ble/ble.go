package ble

import (
  "fmt"
  "net"

  "github.com/go-beacons/estimote-exporter/utils"
  "github.com/go-ble/ble"
  "github.com/go-ble/ble/linux"
  "github.com/go-ble/ble/linux/hci/cmd"
  "github.com/prometheus/client_golang/prometheus"
  "github.com/rs/zerolog/log"
)

type Advertisement = ble.Advertisement
type ServiceData = ble.ServiceData

type Handle struct {
  dev *linux.Device
}

func UUID16(i uint16) ble.UUID {
  return ble.UUID16(i)
}

func RegisterMetrics(reg prometheus.Registerer) {
  reg.MustRegister(
    advertisementsSeenCounter,
    advertisementsMatchedCounter,
    scansStartedCounter,
  )
}

func Init(deviceId int, flags Flags) (*Handle, error) {
  return InitWithScanParams(
    deviceId,
    ScanParamsDefault,
    flags,
  )
}

func InitWithScanParams(deviceId int, scanParams ScanParams, flags Flags) (*Handle, error) {
  var scanType scanType = scanTypePassive
  var filterPolicy filterPolicy = filterPolicyAcceptAll

  if flags & FlagScanTypeActive == FlagScanTypeActive {
    scanType = scanTypeActive
  }

  if flags & FlagEnableDeviceAllowList == FlagEnableDeviceAllowList {
    filterPolicy = filterPolicyAllowListedOnly
  }

  log.Debug().
    Stringer("ScanType", scanType).
    Stringer("FilterPolicy", filterPolicy).
    Stringer("ScanParams", &scanParams).
    Stringer("Flags", flags).
    Int("DeviceID", deviceId).
    Msg("Initializing Bluetooth device")

  params := scanParams.AdapterOptions()
  params.LEScanType = uint8(scanType)               // 0x00: passive, 0x01: active
  params.ScanningFilterPolicy = uint8(filterPolicy) // 0x00: accept all, 0x01: ignore non-allow-listed.

  dev, err := linux.NewDevice(
    ble.OptDeviceID(deviceId),
    ble.OptScanParams(params),
  )

  if err != nil {
    return nil, fmt.Errorf("failed to init bluetooth device: %w", err)
  }

  ble.SetDefaultDevice(dev)

  return &Handle{dev: dev}, nil
}

func (h *Handle) SetAllowListedAddresses(a []net.HardwareAddr) error {
  log.Debug().
    Array("DeviceAddresses", utils.ToZeroLogArray(a)).
    Msg("Allow-listing the requested Bluetooth devices")

  // clear the white list to make sure we're starting from an empty slate.
  var res cmd.LEClearWhiteListRP

  err := h.dev.HCI.Send(&cmd.LEClearWhiteList{}, &res)

  if err != nil {
    return fmt.Errorf("failed to clear allow-list: %w", err)
  }

  if res.Status != 0 {
    return fmt.Errorf("failed to clear allow-list: got status: %v", res.Status)
  }

  for _, addr := range a {
    bytes := []byte(addr)

    if len(bytes) != 6 {
      panic("got non-6 byte device MAC address!?")
    }

    // the HCI wants the address little-endian
    bytes = utils.Reverse(bytes)

    var res cmd.LEAddDeviceToWhiteListRP

    err := h.dev.HCI.Send(&cmd.LEAddDeviceToWhiteList{
      AddressType: 0x00, // public
      Address:     [6]byte{
        bytes[0],
        bytes[1],
        bytes[2],
        bytes[3],
        bytes[4],
        bytes[5],
      },
    }, &res)

    if err != nil {
      return fmt.Errorf("failed to allow-list device %q: %w", addr.String(), err)
    }

    if res.Status != 0 {
      return fmt.Errorf("failed to allow-list device %q: got status: %v", addr.String(), res.Status)
    }
  }

  return nil
}

func (h *Handle) Stop() {
  h.dev.Stop()
}
