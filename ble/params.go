package ble

import (
  "fmt"
  "slices"

  "github.com/go-ble/ble/linux/hci/cmd"
)

type ScanParams string

const (
  ScanParamsDefault  ScanParams = "default"
  ScanParamsLowPower ScanParams = "low-power"
)

// *flag.Value
func (s *ScanParams) String() string {
  return string(*s)
}

func (s *ScanParams) Set(v string) error {
  if v == "" {
    *s = ScanParamsDefault
    return nil
  }

  allParams := []ScanParams{ScanParamsDefault, ScanParamsLowPower}
  p := ScanParams(v)

  if !slices.Contains(allParams, p) {
    return fmt.Errorf("unknown scan param %v (must be one of %v)", p, allParams)
  }

  *s = p
  return nil
}

func (s ScanParams) AdapterOptions() cmd.LESetScanParameters {
  p := cmd.LESetScanParameters{
    LEScanType:     0x00,   // 0x00: passive, 0x01: active; overridden from Flags
    LEScanInterval: 0x0004, // 0x0004 - 0x4000; N * 0.625 msec
    LEScanWindow:   0x0004, // 0x0004 - 0x4000; N * 0.625 msec
    OwnAddressType: 0x00,   // 0x00: public, 0x01: random
  }

  switch s {
  case ScanParamsDefault:
    break
  case ScanParamsLowPower:
    // scan ~30ms out of every 300ms instead of continuously. Telemetry is
    // rebroadcast several times per second, so a sparse window still catches
    // both subframes within a collection timeout while keeping the radio
    // (and CPU on small boards) mostly idle.
    p.LEScanInterval = 0x01e0 // 300ms
    p.LEScanWindow   = 0x0030 // 30ms
  default:
    panic("unknown Bluetooth scan param: " + s)
  }

  return p
}
