package estimote

import (
  "fmt"
  "strconv"
)

type DurationUnit uint8

const (
  DurationUnitSeconds DurationUnit = iota
  DurationUnitMinutes
  DurationUnitHours
  DurationUnitDays
  DurationUnitWeeks
)

func (u DurationUnit) String() string {
  switch u {
  case DurationUnitSeconds:
    return "seconds"
  case DurationUnitMinutes:
    return "minutes"
  case DurationUnitHours:
    return "hours"
  case DurationUnitDays:
    return "days"
  case DurationUnitWeeks:
    return "weeks"
  default:
    panic("unknown duration unit: " + strconv.Itoa(int(u)))
  }
}

// Duration is a coarse beacon-side duration: a magnitude paired with a unit.
type Duration struct {
  Number uint16
  Unit DurationUnit
}

func (d Duration) String() string {
  return fmt.Sprintf("%d %v", d.Number, d.Unit)
}

// Seconds converts the duration to plain seconds.
func (d Duration) Seconds() uint64 {
  n := uint64(d.Number)

  switch d.Unit {
  case DurationUnitSeconds:
    return n
  case DurationUnitMinutes:
    return n * 60
  case DurationUnitHours:
    return n * 3600
  case DurationUnitDays:
    return n * 86400
  case DurationUnitWeeks:
    return n * 604800
  default:
    panic("unknown duration unit: " + strconv.Itoa(int(d.Unit)))
  }
}

// MotionState reports for how long the beacon has been in its current motion
// state, and for how long it was in the previous one.
type MotionState struct {
  Current Duration
  Previous Duration
}

type Vector struct {
  X, Y, Z float64
}

func (v Vector) String() string {
  return fmt.Sprintf("[%g, %g, %g]", v.X, v.Y, v.Z)
}

type GPIOLevel uint8

const (
  GPIOLevelLow GPIOLevel = iota
  GPIOLevelHigh
)

func (l GPIOLevel) String() string {
  switch l {
  case GPIOLevelLow:
    return "low"
  case GPIOLevelHigh:
    return "high"
  default:
    panic("unknown GPIO level: " + strconv.Itoa(int(l)))
  }
}

// PacketErrors carries the self-diagnostic bits a beacon reports about itself.
type PacketErrors struct {
  HasFirmwareError bool
  HasClockError bool
}

// Nearable is a decoded sticker (nearable) advertisement.
type Nearable struct {
  // ID is the 8-byte nearable identifier, lowercase hex.
  ID string

  // Temperature is the ambient temperature in degrees Celsius.
  Temperature float64

  IsMoving bool
  Motion MotionState

  // Acceleration per axis, in milli-g.
  Acceleration Vector
}

func (n *Nearable) String() string {
  return fmt.Sprintf("nearable[id=%s, temp=%.2f°C, moving=%v, accel=%v]",
    n.ID, n.Temperature, n.IsMoving, n.Acceleration)
}

type SubFrame uint8

const (
  SubFrameA SubFrame = iota
  SubFrameB
)

func (s SubFrame) String() string {
  switch s {
  case SubFrameA:
    return "A"
  case SubFrameB:
    return "B"
  default:
    panic("unknown subframe: " + strconv.Itoa(int(s)))
  }
}

// Telemetry is a decoded telemetry advertisement. The packet is split across
// two interleaved subframes - each decoded Telemetry carries the fields of one
// subframe only, with SubFrame saying which. Optional fields are guarded by
// Has* flags: a false flag means the beacon did not transmit (or has not yet
// measured) the value, never that it measured zero.
type Telemetry struct {
  // ShortID is the first half of the beacon identifier, lowercase hex.
  ShortID string
  ProtocolVersion uint8
  SubFrame SubFrame

  // Subframe A.
  Acceleration Vector // g
  IsMoving bool
  Motion MotionState
  GPIO [4]GPIOLevel
  Pressure float64 // Pa
  HasPressure bool

  // Subframe B.
  MagneticField Vector // normalized [-1, 1]; 0 may mean "uncalibrated"
  AmbientLight float64 // lux
  Temperature float64 // °C
  Uptime Duration
  BatteryVoltage uint16 // mV
  HasBatteryVoltage bool
  BatteryLevel uint8 // percent
  HasBatteryLevel bool

  // Either subframe, version-dependent.
  Errors PacketErrors
  HasErrors bool
}

func (t *Telemetry) String() string {
  if t.SubFrame == SubFrameA {
    return fmt.Sprintf("telemetry[id=%s, v%d, subframe=A, accel=%v, moving=%v]",
      t.ShortID, t.ProtocolVersion, t.Acceleration, t.IsMoving)
  }

  return fmt.Sprintf("telemetry[id=%s, v%d, subframe=B, temp=%.2f°C, light=%.1flx, uptime=%v]",
    t.ShortID, t.ProtocolVersion, t.Temperature, t.AmbientLight, t.Uptime)
}
