package metrics

import (
  "time"

  "github.com/go-beacons/estimote-exporter/device"
  "github.com/prometheus/client_golang/prometheus"
)

var (
  descTemperature = prometheus.NewDesc(
    "beacon_temperature_celsius",
    "Ambient temperature reported by the beacon in Celsius.",
    []string{"name"},
    nil,
  )

  descAcceleration = prometheus.NewDesc(
    "beacon_acceleration_g",
    "Acceleration per axis reported by the beacon, in g.",
    []string{"name", "axis"},
    nil,
  )

  descMoving = prometheus.NewDesc(
    "beacon_moving",
    "Whether the beacon's motion sensor reports movement. 0 = still, 1 = moving.",
    []string{"name"},
    nil,
  )

  descMagneticField = prometheus.NewDesc(
    "beacon_magnetic_field_ratio",
    "Magnetic field per axis reported by the beacon, normalized to [-1, 1]. " +
      "A reading of 0 may mean the magnetometer is uncalibrated.",
    []string{"name", "axis"},
    nil,
  )

  descAmbientLight = prometheus.NewDesc(
    "beacon_ambient_light_lux",
    "Ambient light level reported by the beacon in lux.",
    []string{"name"},
    nil,
  )

  descPressure = prometheus.NewDesc(
    "beacon_pressure_pascals",
    "Atmospheric pressure reported by the beacon in Pascals (not sea-level normalized).",
    []string{"name"},
    nil,
  )

  descBatteryLevel = prometheus.NewDesc(
    "beacon_battery_ratio",
    "Battery percentage reported by the beacon.",
    []string{"name"},
    nil,
  )

  descBatteryVoltage = prometheus.NewDesc(
    "beacon_battery_volts",
    "Battery voltage reported by the beacon in volts.",
    []string{"name"},
    nil,
  )

  descUptime = prometheus.NewDesc(
    "beacon_uptime_seconds",
    "Beacon uptime in seconds, at the resolution the beacon reports it.",
    []string{"name"},
    nil,
  )

  descErrors = prometheus.NewDesc(
    "beacon_error_info",
    "Self-diagnostic errors reported by the beacon. 1 = error present.",
    []string{"name", "kind"},
    nil,
  )
)

var axes = [3]string{"x", "y", "z"}

type CollectFunc func() (map[device.Device]device.Reading, time.Time)

type collector struct {
  CollectFunc
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
  prometheus.DescribeByCollect(c, ch)
}

func boolToFloat(b bool) float64 {
  if b {
    return 1
  }

  return 0
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
  out, ts := c.CollectFunc()

  if out == nil {
    panic("collector got empty data!")
  }

  for device, reading := range out {
    emit := func(desc *prometheus.Desc, value float64, labels... string) {
      m := prometheus.MustNewConstMetric(
        desc,
        prometheus.GaugeValue,
        value,
        append([]string{device.Name()}, labels...)...,
      )

      ch <- prometheus.NewMetricWithTimestamp(ts, m)
    }

    if reading.HasTemperature {
      emit(descTemperature, float64(reading.Temperature))
    }

    if reading.HasAcceleration {
      for i, v := range [3]float32{
        reading.Acceleration.X, reading.Acceleration.Y, reading.Acceleration.Z,
      } {
        emit(descAcceleration, float64(v), axes[i])
      }
    }

    if reading.HasMotion {
      emit(descMoving, boolToFloat(reading.IsMoving))
    }

    if reading.HasMagneticField {
      for i, v := range [3]float32{
        reading.MagneticField.X, reading.MagneticField.Y, reading.MagneticField.Z,
      } {
        emit(descMagneticField, float64(v), axes[i])
      }
    }

    if reading.HasAmbientLight {
      emit(descAmbientLight, float64(reading.AmbientLight))
    }

    if reading.HasPressure {
      emit(descPressure, float64(reading.Pressure))
    }

    if reading.HasBatteryLevel {
      emit(descBatteryLevel, float64(reading.BatteryLevel) / 100)
    }

    if reading.HasBatteryVoltage {
      emit(descBatteryVoltage, float64(reading.BatteryVoltage) / 1000)
    }

    if reading.HasUptime {
      emit(descUptime, float64(reading.UptimeSeconds))
    }

    if reading.HasErrors {
      emit(descErrors, boolToFloat(reading.HasFirmwareError), "firmware")
      emit(descErrors, boolToFloat(reading.HasClockError), "clock")
    }
  }
}

func RegisterCollector(f CollectFunc, reg prometheus.Registerer) {
  c := &collector{f}

  reg.MustRegister(c)
}
