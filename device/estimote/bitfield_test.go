package estimote

import (
  "testing"
)

func TestSignedFromUnsigned_12Bit(t *testing.T) {
  cases := map[uint32]int32{
    0: 0,
    1: 1,
    2047: 2047,
    2048: -2048,
    4095: -1,
  }

  for raw, want := range cases {
    if got := signedFromUnsigned(raw, 12); got != want {
      t.Errorf("signedFromUnsigned(%d, 12): got %d, wanted %d", raw, got, want)
    }
  }
}

func TestSignedFromUnsigned_8Bit(t *testing.T) {
  // width 8 must behave exactly like a native signed byte read
  for raw := uint32(0); raw <= 255; raw++ {
    want := int32(int8(raw))

    if got := signedFromUnsigned(raw, 8); got != want {
      t.Errorf("signedFromUnsigned(%d, 8): got %d, wanted %d", raw, got, want)
    }
  }
}

func TestExtractBits_SubByte(t *testing.T) {
  data := []byte{0b1010_0110}

  if got := extractBits(data, 0, 4); got != 0b0110 {
    t.Errorf("extractBits(low nibble): got %#b, wanted 0b0110", got)
  }

  if got := extractBits(data, 4, 4); got != 0b1010 {
    t.Errorf("extractBits(high nibble): got %#b, wanted 0b1010", got)
  }
}

func TestExtractBits_AcrossByteBoundary(t *testing.T) {
  // 12-bit field: top 2 bits of byte 0, all of byte 1, low 2 bits of byte 2.
  // field value 0b01_10010101 ..01 assembled LSB-first.
  data := []byte{0b0100_0000, 0b0110_0101, 0b0000_0001}

  want := uint32(0b01_0110_0101_01)

  if got := extractBits(data, 6, 12); got != want {
    t.Errorf("extractBits(6, 12): got %#b, wanted %#b", got, want)
  }
}

func TestExtractBits_14Bit(t *testing.T) {
  // top 6 bits of byte 0 + all of byte 1
  data := []byte{0b1101_0100, 0b1011_1110}

  want := uint32(0b1011_1110_110101)

  if got := extractBits(data, 2, 14); got != want {
    t.Errorf("extractBits(2, 14): got %#b, wanted %#b", got, want)
  }
}

func TestDecodeDuration_Simple(t *testing.T) {
  cases := map[byte]Duration{
    0b00_000101: {Number: 5, Unit: DurationUnitSeconds},
    0b01_111111: {Number: 63, Unit: DurationUnitMinutes},
    0b10_000001: {Number: 1, Unit: DurationUnitHours},
  }

  for b, want := range cases {
    if got := decodeDuration(b, nearableWeeksFrom); got != want {
      t.Errorf("decodeDuration(%#08b): got %v, wanted %v", b, got, want)
    }
  }
}

// The days/weeks split point of unit code 3 differs by one between the two
// packet formats. These boundary cases pin down both rules.
func TestDecodeDuration_NearableWeeksBoundary(t *testing.T) {
  if got, want := decodeDuration(0b11_011111, nearableWeeksFrom),
      (Duration{Number: 31, Unit: DurationUnitDays}); got != want {
    t.Errorf("nearable duration (magnitude 31): got %v, wanted %v", got, want)
  }

  if got, want := decodeDuration(0b11_100000, nearableWeeksFrom),
      (Duration{Number: 0, Unit: DurationUnitWeeks}); got != want {
    t.Errorf("nearable duration (magnitude 32): got %v, wanted %v", got, want)
  }
}

func TestDecodeDuration_TelemetryWeeksBoundary(t *testing.T) {
  if got, want := decodeDuration(0b11_100000, telemetryWeeksFrom),
      (Duration{Number: 32, Unit: DurationUnitDays}); got != want {
    t.Errorf("telemetry duration (magnitude 32): got %v, wanted %v", got, want)
  }

  if got, want := decodeDuration(0b11_100001, telemetryWeeksFrom),
      (Duration{Number: 1, Unit: DurationUnitWeeks}); got != want {
    t.Errorf("telemetry duration (magnitude 33): got %v, wanted %v", got, want)
  }
}

func TestDurationSeconds(t *testing.T) {
  cases := map[Duration]uint64{
    {Number: 42, Unit: DurationUnitSeconds}: 42,
    {Number: 3, Unit: DurationUnitMinutes}: 180,
    {Number: 2, Unit: DurationUnitHours}: 7200,
    {Number: 1, Unit: DurationUnitDays}: 86400,
    {Number: 2, Unit: DurationUnitWeeks}: 1209600,
  }

  for d, want := range cases {
    if got := d.Seconds(); got != want {
      t.Errorf("(%v).Seconds(): got %d, wanted %d", d, got, want)
    }
  }
}
