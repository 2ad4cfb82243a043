package estimote_test

import (
  "errors"
  "reflect"
  "testing"

  ble_mod "github.com/go-ble/ble"

  "github.com/go-beacons/estimote-exporter/device"
  "github.com/go-beacons/estimote-exporter/device/estimote"
)

func estimoteDevice(t *testing.T) device.Device {
  t.Helper()

  f := estimote.Factory{}

  dev, err := f.FromSpec(device.DeviceSpec{
    "addr": "f0:0d:12:34:56:78",
  })

  if err != nil {
    t.Fatalf("FromSpec got error: %v", err)
  }

  return dev
}

func TestBackendPassive_Nearable(t *testing.T) {
  advertisement := FakeAdvertisement{
    manufacturerData: nearableData(),
  }

  dev := estimoteDevice(t)
  got, err := dev.Backend().(device.PassiveBackend).ParseAdvertisement(advertisement)

  if err != nil {
    t.Fatalf("ParseAdvertisement got error: %v", err)
  }

  want := device.Reading{
    Temperature: 16.0,
    IsMoving: true,
    // milli-g flattened to g
    Acceleration: device.Vec3{X: 0.15625, Y: -0.3125, Z: 0.46875},
    HasTemperature: true,
    HasMotion: true,
    HasAcceleration: true,
  }

  if !reflect.DeepEqual(got, want) {
    t.Fatalf("ParseAdvertisement: got %+#v, wanted %+#v", got, want)
  }
}

func TestBackendPassive_Telemetry(t *testing.T) {
  advertisement := FakeAdvertisement{
    serviceData: []ble_mod.ServiceData{
      {UUID: ble_mod.UUID16(0x180f), Data: []byte{0x64}}, // unrelated service
      {UUID: ble_mod.UUID16(0xfe9a), Data: telemetryDataA()},
    },
  }

  dev := estimoteDevice(t)
  got, err := dev.Backend().(device.PassiveBackend).ParseAdvertisement(advertisement)

  if err != nil {
    t.Fatalf("ParseAdvertisement got error: %v", err)
  }

  want := device.Reading{
    Acceleration: device.Vec3{X: 2.0, Y: -2.0, Z: 0},
    IsMoving: true,
    Pressure: float32(float64(0x018898fc) / 256.0),
    HasAcceleration: true,
    HasMotion: true,
    HasPressure: true,
    HasErrors: true,
  }

  if !reflect.DeepEqual(got, want) {
    t.Fatalf("ParseAdvertisement: got %+#v, wanted %+#v", got, want)
  }
}

func TestBackendPassive_ForeignAdvertisement(t *testing.T) {
  advertisement := FakeAdvertisement{
    manufacturerData: []byte{0x4c, 0x00, 0x02, 0x15}, // some other vendor
    serviceData: []ble_mod.ServiceData{
      {UUID: ble_mod.UUID16(0x180f), Data: []byte{0x64}},
    },
  }

  dev := estimoteDevice(t)
  _, err := dev.Backend().(device.PassiveBackend).ParseAdvertisement(advertisement)

  if !errors.Is(err, device.ErrForeignPacket) {
    t.Fatalf("ParseAdvertisement(foreign): got error %v, wanted ErrForeignPacket", err)
  }
}

func TestBackendPassive_TruncatedTelemetry(t *testing.T) {
  advertisement := FakeAdvertisement{
    serviceData: []ble_mod.ServiceData{
      {UUID: ble_mod.UUID16(0xfe9a), Data: telemetryDataA()[:10]},
    },
  }

  dev := estimoteDevice(t)
  _, err := dev.Backend().(device.PassiveBackend).ParseAdvertisement(advertisement)

  if !errors.Is(err, device.ErrInvalidData) {
    t.Fatalf("ParseAdvertisement(truncated): got error %v, wanted ErrInvalidData", err)
  }
}

type FakeAdvertisement struct {
  name string
  manufacturerData []byte
  serviceData []ble_mod.ServiceData
  addr ble_mod.Addr
}

func (f FakeAdvertisement) LocalName() string {
  return f.name
}

func (f FakeAdvertisement) ManufacturerData() []byte {
  return f.manufacturerData
}

func (f FakeAdvertisement) ServiceData() []ble_mod.ServiceData {
  return f.serviceData
}

func (f FakeAdvertisement) Services() []ble_mod.UUID {
  return nil
}

func (f FakeAdvertisement) OverflowService() []ble_mod.UUID {
  return nil
}

func (f FakeAdvertisement) TxPowerLevel() int {
  return 0
}

func (f FakeAdvertisement) Connectable() bool {
  return false
}

func (f FakeAdvertisement) SolicitedService() []ble_mod.UUID {
  return nil
}

func (f FakeAdvertisement) RSSI() int {
  return 0
}

func (f FakeAdvertisement) Addr() ble_mod.Addr {
  return f.addr
}
