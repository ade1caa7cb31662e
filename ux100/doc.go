// Package ux100 reads the process temperature of a UX100 temperature controller
// over its RS485 ASCII protocol. Readings are kept for a running average.
package ux100
