package estimote

import (
  "encoding/binary"
  "encoding/hex"

  "github.com/pkg/errors"
)

// ErrTruncatedData is returned when a buffer carries the right discriminators
// for a format but is too short to hold all of its fields. This is distinct
// from the (nil, nil) result used for foreign or unsupported packets, so
// callers can tell "not ours" apart from "ours, but cut short".
var ErrTruncatedData = errors.New("truncated packet data")

const (
  // Estimote's Bluetooth SIG company identifier.
  companyID = 0x015d

  nearableFrameType = 0x01
  nearableMinLength = 21
)

// ParseNearable decodes a nearable advertisement from raw manufacturer data.
// The buffer must start at the company identifier. Returns (nil, nil) when the
// data belongs to another vendor or an unknown nearable sub-format.
func ParseNearable(data []byte) (*Nearable, error) {
  if len(data) < 3 {
    // too short to even check the discriminators: not ours.
    return nil, nil
  }

  if binary.LittleEndian.Uint16(data) != companyID {
    return nil, nil
  }

  if data[2] != nearableFrameType {
    return nil, nil
  }

  if len(data) < nearableMinLength {
    return nil, errors.Wrapf(ErrTruncatedData,
      "nearable packet has %d bytes, want >= %d", len(data), nearableMinLength)
  }

  rawTemp := binary.LittleEndian.Uint16(data[13:]) & 0x0fff

  n := Nearable{
    ID: hex.EncodeToString(data[3:11]),
    Temperature: float64(signedFromUnsigned(uint32(rawTemp), 12)) / 16.0,

    // the reference firmware docs compare this masked byte against 1, which
    // can never hold; the intended semantics is plainly bit 6 set.
    IsMoving: data[15] & 0x40 == 0x40,

    Motion: MotionState{
      Current: decodeDuration(data[19], nearableWeeksFrom),
      Previous: decodeDuration(data[20], nearableWeeksFrom),
    },

    Acceleration: Vector{
      X: float64(int8(data[16])) * 15.625,
      Y: float64(int8(data[17])) * 15.625,
      Z: float64(int8(data[18])) * 15.625,
    },
  }

  return &n, nil
}
