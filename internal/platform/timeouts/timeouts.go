// Package timeouts defines shared timeout constants used by the commands.
package timeouts

import "time"

// OTelShutdown limits how long a command waits for pending spans to flush
// on exit.
const OTelShutdown = 5 * time.Second
