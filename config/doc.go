// Package config loads the YAML description of the sensors attached to a host
// and opens their drivers.
//
//	log_level: info
//	ct200:
//	  port: /dev/ttyUSB0
//	  ids: [1, 2]
//	  retry: 3
//	k30:
//	  port: /dev/ttyUSB1
//	  retry: 3
//	ux100:
//	  port: /dev/ttyUSB2
//	  retry: 3
//
// Every sensor section is optional. Load decodes strictly, fills defaults with
// Normalize and checks the result with Validate.
package config
