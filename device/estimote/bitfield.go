package estimote

// Bit-level helpers shared by the nearable and telemetry parsers. Several
// fields in these packets are not byte-aligned (e.g. a 12-bit temperature
// spanning the top 2 bits of one byte, all of the next and the bottom 2 bits
// of a third), so extraction is done once here instead of with per-field
// shift soup.

// signedFromUnsigned reinterprets the low `width` bits of raw as a
// two's-complement signed integer.
func signedFromUnsigned(raw uint32, width uint) int32 {
  if raw > 1<<(width-1)-1 {
    return int32(raw) - 1<<width
  }

  return int32(raw)
}

// extractBits reads `width` contiguous bits starting `bitOffset` bits into
// the buffer. Bit order is little-endian within the field: the bit at
// bitOffset becomes the least significant bit of the result.
func extractBits(data []byte, bitOffset, width uint) uint32 {
  var out uint32

  for i := uint(0); i < width; i++ {
    pos := bitOffset + i
    bit := data[pos/8] >> (pos % 8) & 1

    out |= uint32(bit) << i
  }

  return out
}

// Weeks thresholds for the days/weeks split of duration unit code 3. The two
// packet formats genuinely disagree by one: nearables report weeks from
// magnitude 32, telemetry from magnitude 33. Do not unify.
const (
  nearableWeeksFrom = 32
  telemetryWeeksFrom = 33
)

// decodeDuration decodes a packed duration byte: low 6 bits are the
// magnitude, high 2 bits the unit. Unit code 3 means days or weeks depending
// on the magnitude, with the split point given by weeksFrom.
func decodeDuration(b byte, weeksFrom uint8) Duration {
  magnitude := b & 0x3f

  switch b >> 6 {
  case 0:
    return Duration{Number: uint16(magnitude), Unit: DurationUnitSeconds}
  case 1:
    return Duration{Number: uint16(magnitude), Unit: DurationUnitMinutes}
  case 2:
    return Duration{Number: uint16(magnitude), Unit: DurationUnitHours}
  default:
    if magnitude >= weeksFrom {
      return Duration{Number: uint16(magnitude - 32), Unit: DurationUnitWeeks}
    }

    return Duration{Number: uint16(magnitude), Unit: DurationUnitDays}
  }
}
