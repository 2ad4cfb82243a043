package estimote_test

import (
  "errors"
  "reflect"
  "testing"

  "github.com/go-beacons/estimote-exporter/device/estimote"
)

func nearableData() []byte {
  return []byte{
    0x5d, 0x01, // Estimote company ID, little-endian
    0x01,       // nearable frame type
    0xa0, 0xb1, 0xc2, 0xd3, 0xe4, 0xf5, 0x06, 0x17, // identifier
    0x00, 0x00, // (firmware state, unused here)
    0x00, 0x01, // temperature: raw 0x0100 = 256 -> 16.0°C
    0x40,       // motion bit set
    10, 0xec, 30, // acceleration: 10, -20, 30
    0x05, // current motion state: 5 seconds
    0x45, // previous motion state: 5 minutes
  }
}

func TestParseNearable(t *testing.T) {
  data := nearableData()

  got, err := estimote.ParseNearable(data)

  if err != nil {
    t.Fatalf("ParseNearable(%x) got error: %v", data, err)
  }

  want := &estimote.Nearable{
    ID: "a0b1c2d3e4f50617",
    Temperature: 16.0,
    IsMoving: true,
    Motion: estimote.MotionState{
      Current: estimote.Duration{Number: 5, Unit: estimote.DurationUnitSeconds},
      Previous: estimote.Duration{Number: 5, Unit: estimote.DurationUnitMinutes},
    },
    Acceleration: estimote.Vector{X: 156.25, Y: -312.5, Z: 468.75},
  }

  if !reflect.DeepEqual(got, want) {
    t.Fatalf("ParseNearable(%x): got %+#v, wanted %+#v", data, got, want)
  }
}

func TestParseNearable_TemperatureMasksHighBits(t *testing.T) {
  data := nearableData()

  // the upper 4 bits of the 16-bit word at offset 13 are not part of the
  // temperature and must be masked off
  data[13] = 0x00
  data[14] = 0x10 // raw word 0x1000 -> masked to 0 -> 0°C

  got, err := estimote.ParseNearable(data)

  if err != nil {
    t.Fatalf("ParseNearable(%x) got error: %v", data, err)
  }

  if got.Temperature != 0 {
    t.Fatalf("ParseNearable: got temperature %v, wanted 0", got.Temperature)
  }
}

func TestParseNearable_NegativeTemperature(t *testing.T) {
  data := nearableData()

  data[13] = 0xff
  data[14] = 0x0f // raw 0x0fff = -1 in 12-bit two's complement

  got, err := estimote.ParseNearable(data)

  if err != nil {
    t.Fatalf("ParseNearable(%x) got error: %v", data, err)
  }

  if want := -1 / 16.0; got.Temperature != want {
    t.Fatalf("ParseNearable: got temperature %v, wanted %v", got.Temperature, want)
  }
}

func TestParseNearable_NotMoving(t *testing.T) {
  data := nearableData()
  data[15] = 0xbf // every bit except the motion one

  got, err := estimote.ParseNearable(data)

  if err != nil {
    t.Fatalf("ParseNearable(%x) got error: %v", data, err)
  }

  if got.IsMoving {
    t.Fatalf("ParseNearable: got IsMoving = true, wanted false")
  }
}

func TestParseNearable_ForeignCompany(t *testing.T) {
  data := nearableData()
  data[0], data[1] = 0x4c, 0x00 // some other vendor

  got, err := estimote.ParseNearable(data)

  if got != nil || err != nil {
    t.Fatalf("ParseNearable(foreign company): got (%v, %v), wanted (nil, nil)", got, err)
  }
}

func TestParseNearable_UnknownFrameType(t *testing.T) {
  data := nearableData()
  data[2] = 0x02

  got, err := estimote.ParseNearable(data)

  if got != nil || err != nil {
    t.Fatalf("ParseNearable(unknown frame type): got (%v, %v), wanted (nil, nil)", got, err)
  }
}

func TestParseNearable_Truncated(t *testing.T) {
  data := nearableData()[:15]

  got, err := estimote.ParseNearable(data)

  if got != nil {
    t.Fatalf("ParseNearable(truncated): got %v, wanted nil", got)
  }

  if !errors.Is(err, estimote.ErrTruncatedData) {
    t.Fatalf("ParseNearable(truncated): got error %v, wanted ErrTruncatedData", err)
  }
}

func TestParseNearable_Idempotent(t *testing.T) {
  data := nearableData()

  first, err := estimote.ParseNearable(data)

  if err != nil {
    t.Fatalf("ParseNearable(%x) got error: %v", data, err)
  }

  second, err := estimote.ParseNearable(data)

  if err != nil {
    t.Fatalf("ParseNearable(%x) got error: %v", data, err)
  }

  if !reflect.DeepEqual(first, second) {
    t.Fatalf("ParseNearable not idempotent: %+#v != %+#v", first, second)
  }
}
