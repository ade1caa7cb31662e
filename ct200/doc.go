// Package ct200 drives CT200 infrared temperature probes on an RS485 bus.
//
// Several probes share one bus, each answering on its own address. Every
// request is CRC-framed, sent with the half-duplex settle timing the probes
// require, and retried up to the configured count. Successful temperature
// readings are kept per probe for running averages.
//
//	drv, err := ct200.Open("/dev/ttyUSB0", []uint8{1, 2}, ct200.WithRetryCount(3))
//	if err != nil {
//		return err
//	}
//	defer drv.Close()
//
//	reading, err := drv.ReadTemperature(ctx, 1)
//
// WriteID and SetEmissivity are broadcast writes. Only one probe may be
// connected while they run.
package ct200
