package estimote

import (
  "encoding/binary"
  "encoding/hex"
  "math"

  "github.com/pkg/errors"
)

const (
  telemetryFrameType = 0x02
  telemetryMaxVersion = 2
  telemetryMinLength = 20

  // 14-bit battery voltage / 8-bit battery level sentinels for
  // "not yet measured".
  batteryVoltageUnmeasured = 0x3fff
  batteryLevelUnmeasured = 0xff
)

// ParseTelemetry decodes a telemetry advertisement from raw service data
// scoped to the Estimote service UUID. The buffer must start at the frame
// byte. Returns (nil, nil) for other frame types, protocol versions newer
// than 2 and unknown subframes, so that future packet revisions are skipped
// rather than mis-decoded.
func ParseTelemetry(data []byte) (*Telemetry, error) {
  if len(data) < 1 || data[0] & 0x0f != telemetryFrameType {
    return nil, nil
  }

  version := data[0] >> 4

  if version > telemetryMaxVersion {
    return nil, nil
  }

  if len(data) < telemetryMinLength {
    return nil, errors.Wrapf(ErrTruncatedData,
      "telemetry packet has %d bytes, want >= %d", len(data), telemetryMinLength)
  }

  t := Telemetry{
    ShortID: hex.EncodeToString(data[1:9]),
    ProtocolVersion: version,
  }

  switch data[9] & 0x03 {
  case 0:
    t.SubFrame = SubFrameA
    parseSubFrameA(data, &t)
  case 1:
    t.SubFrame = SubFrameB
    parseSubFrameB(data, &t)
  default:
    // no C/D subframe exists
    return nil, nil
  }

  return &t, nil
}

func parseSubFrameA(data []byte, t *Telemetry) {
  t.Acceleration = Vector{
    X: float64(int8(data[10])) * 2 / 127.0,
    Y: float64(int8(data[11])) * 2 / 127.0,
    Z: float64(int8(data[12])) * 2 / 127.0,
  }

  t.IsMoving = data[15] & 0x03 == 1

  // previous first, unlike the nearable layout
  t.Motion = MotionState{
    Previous: decodeDuration(data[13], telemetryWeeksFrom),
    Current: decodeDuration(data[14], telemetryWeeksFrom),
  }

  for pin := 0; pin < 4; pin++ {
    if data[15] >> (4 + pin) & 1 == 1 {
      t.GPIO[pin] = GPIOLevelHigh
    } else {
      t.GPIO[pin] = GPIOLevelLow
    }
  }

  switch t.ProtocolVersion {
  case 2:
    t.HasErrors = true
    t.Errors = PacketErrors{
      HasFirmwareError: data[15] & 0x04 != 0,
      HasClockError: data[15] & 0x08 != 0,
    }

    t.HasPressure = true
    t.Pressure = float64(binary.LittleEndian.Uint32(data[16:])) / 256.0
  case 1:
    t.HasErrors = true
    t.Errors = PacketErrors{
      HasFirmwareError: data[16] & 0x01 != 0,
      HasClockError: data[16] & 0x02 != 0,
    }
  }
  // version 0 reports errors in subframe B instead
}

func parseSubFrameB(data []byte, t *Telemetry) {
  t.MagneticField = Vector{
    X: float64(int8(data[10])) / 128.0,
    Y: float64(int8(data[11])) / 128.0,
    Z: float64(int8(data[12])) / 128.0,
  }

  exponent := data[13] >> 4
  mantissa := data[13] & 0x0f
  t.AmbientLight = math.Pow(2, float64(exponent)) * float64(mantissa) * 0.72

  t.Uptime = Duration{
    Number: uint16(data[14]) | uint16(data[15] & 0x0f) << 8,
    // 0=seconds, 1=minutes, 2=hours, 3=days; the uptime field has no week unit
    Unit: DurationUnit(data[15] >> 4 & 0x03),
  }

  // 12 bits spanning the top 2 bits of byte 15, byte 16 and the low 2 bits
  // of byte 17
  rawTemp := extractBits(data, 15 * 8 + 6, 12)
  t.Temperature = float64(signedFromUnsigned(rawTemp, 12)) / 16.0

  voltage := extractBits(data, 17 * 8 + 2, 14)

  if voltage != batteryVoltageUnmeasured {
    t.HasBatteryVoltage = true
    t.BatteryVoltage = uint16(voltage)
  }

  if t.ProtocolVersion == 0 {
    t.HasErrors = true
    t.Errors = PacketErrors{
      HasFirmwareError: data[19] & 0x01 != 0,
      HasClockError: data[19] & 0x02 != 0,
    }
  } else if data[19] != batteryLevelUnmeasured {
    t.HasBatteryLevel = true
    t.BatteryLevel = data[19]
  }
}
