// Package k30 drives a Senseair K30 CO2 sensor on an RS485 bus.
//
// The sensor answers two fixed queries: CO2 concentration in ppm and meter
// status. CO2 readings are kept for a running average.
//
// Responses are not checksum-validated unless the driver is built with
// WithCRCValidation(true).
package k30
