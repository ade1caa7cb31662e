// Package bus runs request/response exchanges on a half-duplex RS485 bus.
//
// A Transceiver performs exactly one write-then-read exchange: it switches the
// RS485 driver to transmit with the DTR and RTS lines, waits for the bus to
// settle, writes the request (optionally splitting off the first byte), waits
// for the last byte to leave the wire, switches back to receive and reads the
// response. The delays are part of the device contract and are never skipped.
//
// A Retrier repeats an operation up to a fixed number of attempts without
// backoff. Each failed attempt is logged and counted. When the budget is used
// up the caller receives an *ExhaustedError listing every attempt's failure.
// Errors wrapped with Permanent end the loop at once.
//
// Neither type is goroutine-safe. The bus has one owner.
package bus
