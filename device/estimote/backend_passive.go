package estimote

import (
  "github.com/go-beacons/estimote-exporter/ble"
  "github.com/go-beacons/estimote-exporter/device"
  "github.com/pkg/errors"
)

// Estimote service UUID carrying telemetry frames as service data.
const telemetryServiceUuid = 0xfe9a

type backendPassive struct {}

func (b backendPassive) ScanType() device.PassiveBackendScanType {
  return device.PassiveBackendScanTypePassive
}

// ParseAdvertisement decodes a single advertisement: nearable frames arrive
// as manufacturer data, telemetry frames as service data scoped to the
// Estimote service UUID. One advertisement carries at most one of the two.
func (b backendPassive) ParseAdvertisement(a ble.Advertisement) (reading device.Reading, err error) {
  if data := a.ManufacturerData(); len(data) > 0 {
    nearable, err := ParseNearable(data)

    if err != nil {
      return reading, errors.Wrap(device.ErrInvalidData, err.Error())
    }

    if nearable != nil {
      return nearableReading(nearable), nil
    }
  }

  for _, sd := range a.ServiceData() {
    if !sd.UUID.Equal(ble.UUID16(telemetryServiceUuid)) {
      continue
    }

    telemetry, err := ParseTelemetry(sd.Data)

    if err != nil {
      return reading, errors.Wrap(device.ErrInvalidData, err.Error())
    }

    if telemetry != nil {
      return telemetryReading(telemetry), nil
    }
  }

  return reading, errors.Wrap(device.ErrForeignPacket,
    "estimote: no nearable or telemetry frame in advertisement")
}

func nearableReading(n *Nearable) (r device.Reading) {
  r.HasTemperature = true
  r.Temperature = float32(n.Temperature)

  r.HasMotion = true
  r.IsMoving = n.IsMoving

  // nearables report milli-g, readings are in g
  r.HasAcceleration = true
  r.Acceleration = device.Vec3{
    X: float32(n.Acceleration.X / 1000),
    Y: float32(n.Acceleration.Y / 1000),
    Z: float32(n.Acceleration.Z / 1000),
  }

  return r
}

func telemetryReading(t *Telemetry) (r device.Reading) {
  if t.HasErrors {
    r.HasErrors = true
    r.HasFirmwareError = t.Errors.HasFirmwareError
    r.HasClockError = t.Errors.HasClockError
  }

  if t.SubFrame == SubFrameA {
    r.HasAcceleration = true
    r.Acceleration = device.Vec3{
      X: float32(t.Acceleration.X),
      Y: float32(t.Acceleration.Y),
      Z: float32(t.Acceleration.Z),
    }

    r.HasMotion = true
    r.IsMoving = t.IsMoving

    if t.HasPressure {
      r.HasPressure = true
      r.Pressure = float32(t.Pressure)
    }

    return r
  }

  r.HasMagneticField = true
  r.MagneticField = device.Vec3{
    X: float32(t.MagneticField.X),
    Y: float32(t.MagneticField.Y),
    Z: float32(t.MagneticField.Z),
  }

  r.HasAmbientLight = true
  r.AmbientLight = float32(t.AmbientLight)

  r.HasTemperature = true
  r.Temperature = float32(t.Temperature)

  r.HasUptime = true
  r.UptimeSeconds = t.Uptime.Seconds()

  if t.HasBatteryVoltage {
    r.HasBatteryVoltage = true
    r.BatteryVoltage = t.BatteryVoltage
  }

  if t.HasBatteryLevel {
    r.HasBatteryLevel = true
    r.BatteryLevel = t.BatteryLevel
  }

  return r
}
