// Package registry tracks the devices configured on a bus and accumulates their
// decoded readings for running averages.
//
// Devices are created once from the configured id list and kept in an
// id-indexed map, so lookups are O(1) and iteration follows registration order.
// Readings are only recorded after a response passed validation. An average of
// an empty buffer is the empty Average, never a division by zero.
package registry
