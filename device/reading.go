package device

import (
  "fmt"
  "strings"
)

type Vec3 struct {
  X, Y, Z float32
}

// Reading is the exporter-facing view of one decoded advertisement. Every
// field is optional: a Has* flag set to false means the packet did not carry
// that quantity (beacons spread their sensors across multiple packet types),
// not that the value is zero.
type Reading struct {
  Temperature float32 // °C
  Acceleration Vec3 // g
  MagneticField Vec3 // normalized [-1, 1]
  AmbientLight float32 // lux
  Pressure float32 // Pa
  IsMoving bool
  BatteryVoltage uint16 // mV
  BatteryLevel uint8 // percent
  UptimeSeconds uint64
  HasFirmwareError bool
  HasClockError bool

  HasTemperature bool
  HasAcceleration bool
  HasMagneticField bool
  HasAmbientLight bool
  HasPressure bool
  HasMotion bool
  HasBatteryVoltage bool
  HasBatteryLevel bool
  HasUptime bool
  HasErrors bool
}

func (r Reading) String() string {
  var fields []string

  if r.HasTemperature {
    fields = append(fields, fmt.Sprintf("Temperature=%.2f°C", r.Temperature))
  }

  if r.HasAcceleration {
    fields = append(fields, fmt.Sprintf("Acceleration=%v", r.Acceleration))
  }

  if r.HasMagneticField {
    fields = append(fields, fmt.Sprintf("MagneticField=%v", r.MagneticField))
  }

  if r.HasAmbientLight {
    fields = append(fields, fmt.Sprintf("AmbientLight=%.1flx", r.AmbientLight))
  }

  if r.HasPressure {
    fields = append(fields, fmt.Sprintf("Pressure=%.1fPa", r.Pressure))
  }

  if r.HasMotion {
    fields = append(fields, fmt.Sprintf("Moving=%v", r.IsMoving))
  }

  if r.HasBatteryVoltage {
    fields = append(fields, fmt.Sprintf("Battery=%dmV", r.BatteryVoltage))
  }

  if r.HasBatteryLevel {
    fields = append(fields, fmt.Sprintf("Battery=%d%%", r.BatteryLevel))
  }

  if r.HasUptime {
    fields = append(fields, fmt.Sprintf("Uptime=%ds", r.UptimeSeconds))
  }

  if r.HasErrors {
    fields = append(fields, fmt.Sprintf("FirmwareError=%v,ClockError=%v",
      r.HasFirmwareError, r.HasClockError))
  }

  return fmt.Sprintf("Reading[%v]", strings.Join(fields, ","))
}
